// internal/services/facture_service.go
package services

import (
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/easyfix/electrox-backend/internal/models"
	"github.com/easyfix/electrox-backend/internal/utils"
)

type FactureService struct {
	db *gorm.DB
}

type LineItemRequest struct {
	Description string  `json:"description" validate:"required"`
	Quantity    float64 `json:"quantity" validate:"required,gt=0"`
	UnitPrice   float64 `json:"unit_price" validate:"required,gte=0"`
}

type CreateFactureRequest struct {
	ClientName  string                `json:"client_name" validate:"required,min=2,max=200"`
	ClientPhone string                `json:"client_phone,omitempty"`
	Items       []LineItemRequest     `json:"items" validate:"required,min=1,dive"`
	Status      models.DocumentStatus `json:"status,omitempty" validate:"omitempty,oneof=draft sent paid"`
	IssuedAt    *time.Time            `json:"date,omitempty"`
}

type UpdateFactureRequest struct {
	ClientName  string                `json:"client_name" validate:"required,min=2,max=200"`
	ClientPhone string                `json:"client_phone,omitempty"`
	Items       []LineItemRequest     `json:"items" validate:"required,min=1,dive"`
	Status      models.DocumentStatus `json:"status,omitempty" validate:"omitempty,oneof=draft sent paid"`
	IssuedAt    *time.Time            `json:"date,omitempty"`
}

func NewFactureService(db *gorm.DB) *FactureService {
	return &FactureService{db: db}
}

// CreateFacture assigns the next display number as count + 1 and
// recomputes every line total and the grand total from quantity and
// unit price, ignoring whatever totals the client sent.
func (s *FactureService) CreateFacture(req *CreateFactureRequest) (*models.Facture, error) {
	// Validate request
	if err := utils.ValidateStruct(req); err != nil {
		return nil, fmt.Errorf("validation failed: %w", err)
	}

	var count int64
	if err := s.db.Model(&models.Facture{}).Count(&count).Error; err != nil {
		return nil, fmt.Errorf("failed to count factures: %w", err)
	}

	items := buildLineItems(req.Items)

	status := req.Status
	if status == "" {
		status = models.DocumentStatusDraft
	}

	issuedAt := time.Now()
	if req.IssuedAt != nil {
		issuedAt = *req.IssuedAt
	}

	facture := &models.Facture{
		Number:      int(count) + 1,
		ClientName:  req.ClientName,
		ClientPhone: req.ClientPhone,
		Items:       items,
		Status:      status,
		TotalAmount: items.Total(),
		IssuedAt:    issuedAt,
	}

	if err := s.db.Create(facture).Error; err != nil {
		return nil, fmt.Errorf("failed to create facture: %w", err)
	}

	return facture, nil
}

// UpdateFacture replaces the document wholesale. Last writer wins;
// the display number never changes after creation.
func (s *FactureService) UpdateFacture(id uuid.UUID, req *UpdateFactureRequest) (*models.Facture, error) {
	// Validate request
	if err := utils.ValidateStruct(req); err != nil {
		return nil, fmt.Errorf("validation failed: %w", err)
	}

	var facture models.Facture
	if err := s.db.First(&facture, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errors.New("facture not found")
		}
		return nil, fmt.Errorf("database error: %w", err)
	}

	items := buildLineItems(req.Items)

	facture.ClientName = req.ClientName
	facture.ClientPhone = req.ClientPhone
	facture.Items = items
	facture.TotalAmount = items.Total()
	if req.Status != "" {
		facture.Status = req.Status
	}
	if req.IssuedAt != nil {
		facture.IssuedAt = *req.IssuedAt
	}

	if err := s.db.Save(&facture).Error; err != nil {
		return nil, fmt.Errorf("failed to update facture: %w", err)
	}

	return &facture, nil
}

func (s *FactureService) GetFacture(id uuid.UUID) (*models.Facture, error) {
	var facture models.Facture
	if err := s.db.First(&facture, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errors.New("facture not found")
		}
		return nil, fmt.Errorf("database error: %w", err)
	}
	return &facture, nil
}

// ListFactures returns newest first.
func (s *FactureService) ListFactures(params utils.PaginationParams) ([]models.Facture, int64, error) {
	query := s.db.Model(&models.Facture{})

	if params.Search != "" {
		searchTerm := "%" + params.Search + "%"
		query = query.Where("client_name LIKE ?", searchTerm)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to count factures: %w", err)
	}

	allowedSortFields := []string{"created_at", "number", "client_name", "total_amount", "issued_at"}
	query = utils.ApplySort(query, params, allowedSortFields)
	query = utils.ApplyPagination(query, params)

	var factures []models.Facture
	if err := query.Find(&factures).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to fetch factures: %w", err)
	}

	return factures, total, nil
}

func (s *FactureService) DeleteFacture(id uuid.UUID) error {
	result := s.db.Delete(&models.Facture{}, id)
	if result.Error != nil {
		return fmt.Errorf("failed to delete facture: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return errors.New("facture not found")
	}
	return nil
}

func buildLineItems(reqs []LineItemRequest) models.LineItems {
	items := make(models.LineItems, 0, len(reqs))
	for _, r := range reqs {
		items = append(items, models.LineItem{
			Description: r.Description,
			Quantity:    r.Quantity,
			UnitPrice:   r.UnitPrice,
			TotalPrice:  r.Quantity * r.UnitPrice,
		})
	}
	return items
}
