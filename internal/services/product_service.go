// internal/services/product_service.go
package services

import (
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"

	"github.com/easyfix/electrox-backend/internal/models"
	"github.com/easyfix/electrox-backend/internal/utils"
)

type ProductService struct {
	db    *gorm.DB
	blobs BlobStore
}

type CreateProductRequest struct {
	Name           string                  `json:"name" validate:"required,min=2,max=255"`
	Description    string                  `json:"description" validate:"required,min=10"`
	Brand          string                  `json:"brand,omitempty"`
	Category       string                  `json:"category" validate:"required"`
	Price          float64                 `json:"price" validate:"required,min=0.01"`
	OriginalPrice  *float64                `json:"original_price,omitempty" validate:"omitempty,min=0.01"`
	Stock          int                     `json:"stock" validate:"min=0"`
	SerialNumber   string                  `json:"serial_number,omitempty"`
	Images         []string                `json:"images" validate:"required,min=1"`
	Condition      models.ProductCondition `json:"condition,omitempty" validate:"omitempty,oneof='New' 'Like New' 'Good' 'Used'"`
	Badge          models.ProductBadge     `json:"badge,omitempty" validate:"omitempty,oneof=NEW HOT SALE Deals"`
	WarrantyMonths *int                    `json:"warranty_months,omitempty" validate:"omitempty,min=0"`
	Tags           []string                `json:"tags,omitempty"`
}

type UpdateProductRequest struct {
	Name           string                  `json:"name,omitempty" validate:"omitempty,min=2,max=255"`
	Description    string                  `json:"description,omitempty" validate:"omitempty,min=10"`
	Brand          *string                 `json:"brand,omitempty"`
	Category       string                  `json:"category,omitempty"`
	Price          float64                 `json:"price,omitempty" validate:"omitempty,min=0.01"`
	OriginalPrice  *float64                `json:"original_price,omitempty" validate:"omitempty,min=0.01"`
	Stock          *int                    `json:"stock,omitempty" validate:"omitempty,min=0"`
	SerialNumber   *string                 `json:"serial_number,omitempty"`
	Images         []string                `json:"images,omitempty" validate:"omitempty,min=1"`
	Condition      models.ProductCondition `json:"condition,omitempty" validate:"omitempty,oneof='New' 'Like New' 'Good' 'Used'"`
	Badge          *models.ProductBadge    `json:"badge,omitempty"`
	WarrantyMonths *int                    `json:"warranty_months,omitempty" validate:"omitempty,min=0"`
	Tags           []string                `json:"tags,omitempty"`
	Status         models.ProductStatus    `json:"status,omitempty" validate:"omitempty,oneof=draft active inactive"`
}

type ProductSearchParams struct {
	utils.PaginationParams
	CreatedBy *uuid.UUID              `json:"created_by,omitempty"`
	Status    *models.ProductStatus   `json:"status,omitempty"`
	Badge     *models.ProductBadge    `json:"badge,omitempty"`
	Condition *models.ProductCondition `json:"condition,omitempty"`
	Brand     string                  `json:"brand,omitempty"`
	PriceMin  *float64                `json:"price_min,omitempty"`
	PriceMax  *float64                `json:"price_max,omitempty"`
	Tags      []string                `json:"tags,omitempty"`
	InStock   *bool                   `json:"in_stock,omitempty"`
}

func NewProductService(db *gorm.DB, blobs BlobStore) *ProductService {
	return &ProductService{
		db:    db,
		blobs: blobs,
	}
}

// CreateProduct inserts a new catalog entry. A product without at
// least one uploaded image ref is rejected up front, the storefront
// has no placeholder-only card state.
func (s *ProductService) CreateProduct(creatorID uuid.UUID, req *CreateProductRequest) (*models.Product, error) {
	// Validate request
	if err := utils.ValidateStruct(req); err != nil {
		return nil, fmt.Errorf("validation failed: %w", err)
	}

	// Verify creator exists and is active
	var creator models.User
	if err := s.db.First(&creator, creatorID).Error; err != nil {
		return nil, fmt.Errorf("creator not found: %w", err)
	}

	if creator.Status != models.UserStatusActive {
		return nil, errors.New("creator account is not active")
	}

	condition := req.Condition
	if condition == "" {
		condition = models.ProductConditionNew
	}

	product := &models.Product{
		CreatedBy:      creatorID,
		Name:           req.Name,
		Description:    req.Description,
		Brand:          req.Brand,
		Category:       req.Category,
		Price:          req.Price,
		OriginalPrice:  req.OriginalPrice,
		Stock:          req.Stock,
		SerialNumber:   req.SerialNumber,
		Images:         pq.StringArray(req.Images),
		Status:         models.ProductStatusActive,
		Condition:      condition,
		Badge:          req.Badge,
		WarrantyMonths: req.WarrantyMonths,
		Tags:           pq.StringArray(req.Tags),
	}

	if err := s.db.Create(product).Error; err != nil {
		return nil, fmt.Errorf("failed to create product: %w", err)
	}

	// Load relationships
	s.db.Preload("Creator").First(product, product.ID)

	return product, nil
}

func (s *ProductService) GetProduct(id uuid.UUID, userID *uuid.UUID) (*models.Product, error) {
	var product models.Product
	if err := s.db.Preload("Creator").First(&product, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errors.New("product not found")
		}
		return nil, fmt.Errorf("database error: %w", err)
	}

	// Non-active products are visible only to their creator
	if product.Status != models.ProductStatusActive {
		if userID == nil || *userID != product.CreatedBy {
			return nil, errors.New("product not found")
		}
	}

	// Increment view count if not the creator viewing
	if userID == nil || *userID != product.CreatedBy {
		go s.incrementViewCount(id)
	}

	return &product, nil
}

// UpdateProduct applies a single patch. The caller sends the full
// merged image ref list when images change; refs dropped from the list
// are reclaimed from blob storage only after the row write succeeds,
// so a failed update never orphans a live product image.
func (s *ProductService) UpdateProduct(id uuid.UUID, updaterID uuid.UUID, req *UpdateProductRequest) (*models.Product, error) {
	// Validate request
	if err := utils.ValidateStruct(req); err != nil {
		return nil, fmt.Errorf("validation failed: %w", err)
	}

	var product models.Product
	if err := s.db.First(&product, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errors.New("product not found")
		}
		return nil, fmt.Errorf("database error: %w", err)
	}

	previousImages := []string(product.Images)

	// Prepare updates
	updates := make(map[string]interface{})
	if req.Name != "" {
		updates["name"] = req.Name
	}
	if req.Description != "" {
		updates["description"] = req.Description
	}
	if req.Brand != nil {
		updates["brand"] = *req.Brand
	}
	if req.Category != "" {
		updates["category"] = req.Category
	}
	if req.Price > 0 {
		updates["price"] = req.Price
	}
	if req.OriginalPrice != nil {
		updates["original_price"] = *req.OriginalPrice
	}
	if req.Stock != nil {
		updates["stock"] = *req.Stock
	}
	if req.SerialNumber != nil {
		updates["serial_number"] = *req.SerialNumber
	}
	if req.Images != nil {
		updates["images"] = pq.StringArray(req.Images)
	}
	if req.Condition != "" {
		updates["condition"] = req.Condition
	}
	if req.Badge != nil {
		updates["badge"] = *req.Badge
	}
	if req.WarrantyMonths != nil {
		updates["warranty_months"] = *req.WarrantyMonths
	}
	if req.Tags != nil {
		updates["tags"] = pq.StringArray(req.Tags)
	}
	if req.Status != "" {
		updates["status"] = req.Status
	}

	if err := s.db.Model(&product).Updates(updates).Error; err != nil {
		return nil, fmt.Errorf("failed to update product: %w", err)
	}

	// Reclaim blobs for refs removed by this patch
	if req.Images != nil {
		s.deleteRemovedBlobs(previousImages, req.Images)
	}

	// Reload with relationships
	s.db.Preload("Creator").First(&product, id)

	return &product, nil
}

// DeleteProduct removes the product and its image blobs. Blobs go
// first, so a storage failure leaves the row intact and the delete
// retryable rather than leaving unreferenced blobs behind.
func (s *ProductService) DeleteProduct(id uuid.UUID) error {
	var product models.Product
	if err := s.db.First(&product, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return errors.New("product not found")
		}
		return fmt.Errorf("database error: %w", err)
	}

	for _, ref := range product.Images {
		if err := s.blobs.Delete(ref); err != nil {
			return fmt.Errorf("failed to delete product image %s: %w", ref, err)
		}
	}

	// Soft delete
	if err := s.db.Delete(&product).Error; err != nil {
		return fmt.Errorf("failed to delete product: %w", err)
	}

	return nil
}

func (s *ProductService) SearchProducts(params ProductSearchParams) ([]models.Product, int64, error) {
	query := s.db.Model(&models.Product{}).Preload("Creator")

	// Apply filters
	if params.CreatedBy != nil {
		query = query.Where("created_by = ?", *params.CreatedBy)
	}

	if params.Status != nil {
		query = query.Where("status = ?", *params.Status)
	} else {
		// Default to active products only
		query = query.Where("status = ?", models.ProductStatusActive)
	}

	if params.Badge != nil {
		query = query.Where("badge = ?", *params.Badge)
	}

	if params.Condition != nil {
		query = query.Where("condition = ?", *params.Condition)
	}

	if params.Brand != "" {
		query = query.Where("brand = ?", params.Brand)
	}

	if params.Category != "" {
		query = query.Where("category = ?", params.Category)
	}

	if params.Search != "" {
		searchTerm := "%" + strings.ToLower(params.Search) + "%"
		query = query.Where("LOWER(name) LIKE ? OR LOWER(description) LIKE ?", searchTerm, searchTerm)
	}

	if params.PriceMin != nil {
		query = query.Where("price >= ?", *params.PriceMin)
	}

	if params.PriceMax != nil {
		query = query.Where("price <= ?", *params.PriceMax)
	}

	if len(params.Tags) > 0 {
		query = query.Where("tags && ?", pq.StringArray(params.Tags))
	}

	if params.InStock != nil && *params.InStock {
		query = query.Where("stock > 0")
	}

	// Get total count
	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to count products: %w", err)
	}

	// Apply sorting
	allowedSortFields := []string{"created_at", "updated_at", "name", "price", "view_count", "like_count", "rating"}
	query = utils.ApplySort(query, params.PaginationParams, allowedSortFields)

	// Apply pagination
	query = utils.ApplyPagination(query, params.PaginationParams)

	// Execute query
	var products []models.Product
	if err := query.Find(&products).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to fetch products: %w", err)
	}

	return products, total, nil
}

func (s *ProductService) LikeProduct(productID uuid.UUID) error {
	result := s.db.Model(&models.Product{}).Where("id = ?", productID).
		UpdateColumn("like_count", gorm.Expr("like_count + 1"))
	if result.Error != nil {
		return fmt.Errorf("failed to like product: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return errors.New("product not found")
	}
	return nil
}

// Helper methods

func (s *ProductService) incrementViewCount(productID uuid.UUID) {
	s.db.Model(&models.Product{}).Where("id = ?", productID).
		UpdateColumn("view_count", gorm.Expr("view_count + 1"))
}

func (s *ProductService) deleteRemovedBlobs(previous, current []string) {
	kept := make(map[string]bool, len(current))
	for _, ref := range current {
		kept[ref] = true
	}
	for _, ref := range previous {
		if !kept[ref] {
			if err := s.blobs.Delete(ref); err != nil {
				logrus.WithError(err).WithField("ref", ref).Warn("Failed to reclaim removed product image")
			}
		}
	}
}
