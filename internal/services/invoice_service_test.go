// internal/services/invoice_service_test.go
package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/easyfix/electrox-backend/internal/models"
	"github.com/easyfix/electrox-backend/internal/utils"
)

func TestCreateInvoiceComputesTotals(t *testing.T) {
	db := setupTestDB(t)
	svc := NewInvoiceService(db)

	invoice, err := svc.CreateInvoice(&CreateInvoiceRequest{
		ClientName: "Kigali Motors Ltd",
		ClientTIN:  "987654321",
		Notes:      "Valid for 30 days",
		Items: []LineItemRequest{
			{Description: "CCTV camera", Quantity: 4, UnitPrice: 85000},
			{Description: "Installation", Quantity: 1, UnitPrice: 50000},
		},
	})
	require.NoError(t, err)

	assert.Equal(t, 390000.0, invoice.TotalAmount)
	assert.Equal(t, "987654321", invoice.ClientTIN)
	assert.Equal(t, "Valid for 30 days", invoice.Notes)
	assert.Equal(t, models.DocumentStatusDraft, invoice.Status)
	require.Len(t, invoice.Items, 2)
	assert.Equal(t, 340000.0, invoice.Items[0].TotalPrice)
}

func TestUpdateInvoiceReplacesItems(t *testing.T) {
	db := setupTestDB(t)
	svc := NewInvoiceService(db)

	invoice, err := svc.CreateInvoice(&CreateInvoiceRequest{
		ClientName: "Client",
		Items:      []LineItemRequest{{Description: "Old", Quantity: 1, UnitPrice: 100}},
	})
	require.NoError(t, err)

	updated, err := svc.UpdateInvoice(invoice.ID, &UpdateInvoiceRequest{
		ClientName: "Client Renamed",
		ClientTIN:  "111222333",
		Items: []LineItemRequest{
			{Description: "New", Quantity: 2, UnitPrice: 300},
		},
		Status: models.DocumentStatusSent,
	})
	require.NoError(t, err)

	assert.Equal(t, "Client Renamed", updated.ClientName)
	assert.Equal(t, 600.0, updated.TotalAmount)
	assert.Equal(t, models.DocumentStatusSent, updated.Status)
	require.Len(t, updated.Items, 1)
	assert.Equal(t, "New", updated.Items[0].Description)
}

func TestCreateInvoiceRejectsEmptyItems(t *testing.T) {
	db := setupTestDB(t)
	svc := NewInvoiceService(db)

	_, err := svc.CreateInvoice(&CreateInvoiceRequest{
		ClientName: "Client",
		Items:      []LineItemRequest{},
	})
	assert.Error(t, err)
}

func TestListInvoicesSearchesByClientName(t *testing.T) {
	db := setupTestDB(t)
	svc := NewInvoiceService(db)

	for _, name := range []string{"Alpha Traders", "Beta Supplies", "Alpha Tech"} {
		_, err := svc.CreateInvoice(&CreateInvoiceRequest{
			ClientName: name,
			Items:      []LineItemRequest{{Description: "Item", Quantity: 1, UnitPrice: 10}},
		})
		require.NoError(t, err)
	}

	invoices, total, err := svc.ListInvoices(utils.PaginationParams{
		Page: 1, Limit: 10, Sort: "created_at", Order: "desc", Search: "Alpha",
	})
	require.NoError(t, err)
	assert.Equal(t, int64(2), total)
	assert.Len(t, invoices, 2)
}

func TestDeleteInvoiceNotFound(t *testing.T) {
	db := setupTestDB(t)
	svc := NewInvoiceService(db)

	invoice, err := svc.CreateInvoice(&CreateInvoiceRequest{
		ClientName: "Client",
		Items:      []LineItemRequest{{Description: "Item", Quantity: 1, UnitPrice: 10}},
	})
	require.NoError(t, err)

	require.NoError(t, svc.DeleteInvoice(invoice.ID))
	assert.Error(t, svc.DeleteInvoice(invoice.ID))
}
