// internal/services/catalog_service.go
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

// CatalogService is the storefront read side. It returns denormalized
// product views with image refs resolved to URLs and the creator name
// attached, so the storefront renders a card without extra lookups.
type CatalogService struct {
	db    *gorm.DB
	blobs BlobStore
}

type ProductView struct {
	ID             uuid.UUID               `json:"id"`
	Name           string                  `json:"name"`
	Description    string                  `json:"description"`
	Brand          string                  `json:"brand,omitempty"`
	Category       string                  `json:"category"`
	Price          float64                 `json:"price"`
	OriginalPrice  *float64                `json:"original_price,omitempty"`
	Currency       string                  `json:"currency"`
	Stock          int                     `json:"stock"`
	ImageURLs      []string                `json:"image_urls"`
	Condition      models.ProductCondition `json:"condition"`
	Badge          models.ProductBadge     `json:"badge,omitempty"`
	WarrantyMonths *int                    `json:"warranty_months,omitempty"`
	Tags           []string                `json:"tags,omitempty"`
	ViewCount      int64                   `json:"view_count"`
	LikeCount      int64                   `json:"like_count"`
	Rating         float64                 `json:"rating"`
	CreatedByName  string                  `json:"created_by_name"`
	CreatedAt      time.Time               `json:"created_at"`
}

type CatalogParams struct {
	utils.PaginationParams
	Category string               `json:"category,omitempty"`
	Badge    *models.ProductBadge `json:"badge,omitempty"`
	Brand    string               `json:"brand,omitempty"`
}

func NewCatalogService(db *gorm.DB, blobs BlobStore) *CatalogService {
	return &CatalogService{
		db:    db,
		blobs: blobs,
	}
}

// ListProducts returns active products for the storefront.
func (s *CatalogService) ListProducts(params CatalogParams) ([]ProductView, int64, error) {
	query := s.db.Model(&models.Product{}).Preload("Creator").
		Where("status = ?", models.ProductStatusActive)

	if params.Category != "" {
		query = query.Where("category = ?", params.Category)
	}
	if params.Badge != nil {
		query = query.Where("badge = ?", *params.Badge)
	}
	if params.Brand != "" {
		query = query.Where("brand = ?", params.Brand)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to count products: %w", err)
	}

	allowedSortFields := []string{"created_at", "price", "name", "like_count", "rating"}
	query = utils.ApplySort(query, params.PaginationParams, allowedSortFields)
	query = utils.ApplyPagination(query, params.PaginationParams)

	var products []models.Product
	if err := query.Find(&products).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to fetch products: %w", err)
	}

	views := make([]ProductView, 0, len(products))
	for i := range products {
		views = append(views, s.buildView(&products[i]))
	}

	return views, total, nil
}

func (s *CatalogService) GetProduct(id uuid.UUID) (*ProductView, error) {
	var product models.Product
	if err := s.db.Preload("Creator").
		Where("status = ?", models.ProductStatusActive).
		First(&product, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errors.New("product not found")
		}
		return nil, fmt.Errorf("database error: %w", err)
	}

	go s.incrementViewCount(product.ID)

	view := s.buildView(&product)
	return &view, nil
}

func (s *CatalogService) incrementViewCount(productID uuid.UUID) {
	s.db.Model(&models.Product{}).Where("id = ?", productID).
		UpdateColumn("view_count", gorm.Expr("view_count + 1"))
}

func (s *CatalogService) GetDeals(limit int) ([]ProductView, error) {
	var products []models.Product
	if err := s.db.Preload("Creator").
		Where("status = ? AND badge IN ?", models.ProductStatusActive,
			[]models.ProductBadge{models.ProductBadgeSale, models.ProductBadgeDeals}).
		Order("created_at DESC").
		Limit(limit).
		Find(&products).Error; err != nil {
		return nil, fmt.Errorf("failed to fetch deals: %w", err)
	}

	views := make([]ProductView, 0, len(products))
	for i := range products {
		views = append(views, s.buildView(&products[i]))
	}
	return views, nil
}

// GetPopular ranks active products by engagement for the home page.
func (s *CatalogService) GetPopular(limit int) ([]ProductView, error) {
	var products []models.Product
	if err := s.db.Preload("Creator").
		Where("status = ?", models.ProductStatusActive).
		Order("like_count DESC, rating DESC, view_count DESC").
		Limit(limit).
		Find(&products).Error; err != nil {
		return nil, fmt.Errorf("failed to fetch popular products: %w", err)
	}

	views := make([]ProductView, 0, len(products))
	for i := range products {
		views = append(views, s.buildView(&products[i]))
	}
	return views, nil
}

func (s *CatalogService) GetCategories() ([]string, error) {
	var categories []string
	if err := s.db.Model(&models.Product{}).
		Where("status = ?", models.ProductStatusActive).
		Distinct("category").
		Order("category").
		Pluck("category", &categories).Error; err != nil {
		return nil, fmt.Errorf("failed to fetch categories: %w", err)
	}
	return categories, nil
}

// buildView denormalizes one product. Every stored ref resolves to a
// URL; a deleted creator account degrades to "Unknown User" instead of
// breaking the card.
func (s *CatalogService) buildView(p *models.Product) ProductView {
	urls := make([]string, 0, len(p.Images))
	for _, ref := range p.Images {
		urls = append(urls, s.blobs.ResolveURL(ref))
	}

	return ProductView{
		ID:             p.ID,
		Name:           p.Name,
		Description:    p.Description,
		Brand:          p.Brand,
		Category:       p.Category,
		Price:          p.Price,
		OriginalPrice:  p.OriginalPrice,
		Currency:       p.Currency,
		Stock:          p.Stock,
		ImageURLs:      urls,
		Condition:      p.Condition,
		Badge:          p.Badge,
		WarrantyMonths: p.WarrantyMonths,
		Tags:           p.Tags,
		ViewCount:      p.ViewCount,
		LikeCount:      p.LikeCount,
		Rating:         p.Rating,
		CreatedByName:  p.Creator.DisplayName(),
		CreatedAt:      p.CreatedAt,
	}
}
