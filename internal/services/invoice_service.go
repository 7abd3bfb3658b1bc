// internal/services/invoice_service.go
package services

import (
	"errors"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/easyfix/electrox-backend/internal/models"
	"github.com/easyfix/electrox-backend/internal/utils"
)

// InvoiceService manages proforma invoices. Unlike factures these
// carry no display number and may include the client's TIN and notes.
type InvoiceService struct {
	db *gorm.DB
}

type CreateInvoiceRequest struct {
	ClientName  string                `json:"client_name" validate:"required,min=2,max=200"`
	ClientPhone string                `json:"client_phone,omitempty"`
	ClientTIN   string                `json:"client_tin,omitempty"`
	Items       []LineItemRequest     `json:"items" validate:"required,min=1,dive"`
	Status      models.DocumentStatus `json:"status,omitempty" validate:"omitempty,oneof=draft sent paid"`
	Notes       string                `json:"notes,omitempty"`
}

type UpdateInvoiceRequest struct {
	ClientName  string                `json:"client_name" validate:"required,min=2,max=200"`
	ClientPhone string                `json:"client_phone,omitempty"`
	ClientTIN   string                `json:"client_tin,omitempty"`
	Items       []LineItemRequest     `json:"items" validate:"required,min=1,dive"`
	Status      models.DocumentStatus `json:"status,omitempty" validate:"omitempty,oneof=draft sent paid"`
	Notes       string                `json:"notes,omitempty"`
}

func NewInvoiceService(db *gorm.DB) *InvoiceService {
	return &InvoiceService{db: db}
}

func (s *InvoiceService) CreateInvoice(req *CreateInvoiceRequest) (*models.Invoice, error) {
	// Validate request
	if err := utils.ValidateStruct(req); err != nil {
		return nil, fmt.Errorf("validation failed: %w", err)
	}

	items := buildLineItems(req.Items)

	status := req.Status
	if status == "" {
		status = models.DocumentStatusDraft
	}

	invoice := &models.Invoice{
		ClientName:  req.ClientName,
		ClientPhone: req.ClientPhone,
		ClientTIN:   req.ClientTIN,
		Items:       items,
		Status:      status,
		Notes:       req.Notes,
		TotalAmount: items.Total(),
	}

	if err := s.db.Create(invoice).Error; err != nil {
		return nil, fmt.Errorf("failed to create invoice: %w", err)
	}

	return invoice, nil
}

func (s *InvoiceService) UpdateInvoice(id uuid.UUID, req *UpdateInvoiceRequest) (*models.Invoice, error) {
	// Validate request
	if err := utils.ValidateStruct(req); err != nil {
		return nil, fmt.Errorf("validation failed: %w", err)
	}

	var invoice models.Invoice
	if err := s.db.First(&invoice, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errors.New("invoice not found")
		}
		return nil, fmt.Errorf("database error: %w", err)
	}

	items := buildLineItems(req.Items)

	invoice.ClientName = req.ClientName
	invoice.ClientPhone = req.ClientPhone
	invoice.ClientTIN = req.ClientTIN
	invoice.Items = items
	invoice.Notes = req.Notes
	invoice.TotalAmount = items.Total()
	if req.Status != "" {
		invoice.Status = req.Status
	}

	if err := s.db.Save(&invoice).Error; err != nil {
		return nil, fmt.Errorf("failed to update invoice: %w", err)
	}

	return &invoice, nil
}

func (s *InvoiceService) GetInvoice(id uuid.UUID) (*models.Invoice, error) {
	var invoice models.Invoice
	if err := s.db.First(&invoice, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errors.New("invoice not found")
		}
		return nil, fmt.Errorf("database error: %w", err)
	}
	return &invoice, nil
}

func (s *InvoiceService) ListInvoices(params utils.PaginationParams) ([]models.Invoice, int64, error) {
	query := s.db.Model(&models.Invoice{})

	if params.Search != "" {
		searchTerm := "%" + params.Search + "%"
		query = query.Where("client_name LIKE ?", searchTerm)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to count invoices: %w", err)
	}

	allowedSortFields := []string{"created_at", "client_name", "total_amount"}
	query = utils.ApplySort(query, params, allowedSortFields)
	query = utils.ApplyPagination(query, params)

	var invoices []models.Invoice
	if err := query.Find(&invoices).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to fetch invoices: %w", err)
	}

	return invoices, total, nil
}

func (s *InvoiceService) DeleteInvoice(id uuid.UUID) error {
	result := s.db.Delete(&models.Invoice{}, id)
	if result.Error != nil {
		return fmt.Errorf("failed to delete invoice: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return errors.New("invoice not found")
	}
	return nil
}
