// internal/services/pdf_service_test.go
package services

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/easyfix/electrox-backend/internal/models"
)

func TestRenderFacture(t *testing.T) {
	svc := NewPDFService(testConfig())

	now := time.Now()
	facture := &models.Facture{
		Number:     42,
		ClientName: "Jean Claude",
		IssuedAt:   now,
		Items: models.LineItems{
			{Description: "HP EliteBook 840", Quantity: 2, UnitPrice: 450000, TotalPrice: 900000},
			{Description: "Laptop bag", Quantity: 1, UnitPrice: 25000, TotalPrice: 25000},
		},
		TotalAmount: 925000,
		Status:      models.DocumentStatusSent,
	}

	data, err := svc.RenderFacture(facture)
	require.NoError(t, err)

	require.NotEmpty(t, data)
	assert.Equal(t, "%PDF", string(data[:4]))
}

func TestRenderInvoice(t *testing.T) {
	svc := NewPDFService(testConfig())

	invoice := &models.Invoice{
		ClientName: "Kigali Motors Ltd",
		ClientTIN:  "987654321",
		Notes:      "Valid for 30 days",
		Items: models.LineItems{
			{Description: "CCTV camera", Quantity: 4, UnitPrice: 85000, TotalPrice: 340000},
		},
		TotalAmount: 340000,
		Status:      models.DocumentStatusDraft,
	}

	data, err := svc.RenderInvoice(invoice)
	require.NoError(t, err)

	require.NotEmpty(t, data)
	assert.Equal(t, "%PDF", string(data[:4]))
}

func TestRenderFactureWithoutItems(t *testing.T) {
	svc := NewPDFService(testConfig())

	facture := &models.Facture{
		Number:     1,
		ClientName: "Client",
		IssuedAt:   time.Now(),
		Items:      models.LineItems{},
		Status:     models.DocumentStatusDraft,
	}

	data, err := svc.RenderFacture(facture)
	require.NoError(t, err)
	assert.NotEmpty(t, data)
}
