// internal/services/cart_service.go
package services

import (
	"errors"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/easyfix/electrox-backend/internal/models"
	"github.com/easyfix/electrox-backend/internal/utils"
)

type CartService struct {
	db    *gorm.DB
	blobs BlobStore
}

type AddToCartRequest struct {
	ProductID uuid.UUID `json:"product_id" validate:"required"`
	Quantity  int       `json:"quantity" validate:"omitempty,min=1"`
}

type UpdateCartItemRequest struct {
	Quantity int `json:"quantity" validate:"required,min=1"`
}

// CartItemView is a cart row with the product's first image resolved
// for display.
type CartItemView struct {
	models.CartItem
	ImageURL string `json:"image_url,omitempty"`
}

type CartSummary struct {
	Items      []CartItemView `json:"items"`
	ItemCount  int            `json:"item_count"`
	TotalPrice float64        `json:"total_price"`
}

func NewCartService(db *gorm.DB, blobs BlobStore) *CartService {
	return &CartService{db: db, blobs: blobs}
}

// AddToCart upserts. Adding a product already in the cart increments
// its quantity instead of creating a second row.
func (s *CartService) AddToCart(userID uuid.UUID, req *AddToCartRequest) (*models.CartItem, error) {
	// Validate request
	if err := utils.ValidateStruct(req); err != nil {
		return nil, fmt.Errorf("validation failed: %w", err)
	}

	quantity := req.Quantity
	if quantity == 0 {
		quantity = 1
	}

	// Verify product exists and is purchasable
	var product models.Product
	if err := s.db.First(&product, req.ProductID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errors.New("product not found")
		}
		return nil, fmt.Errorf("database error: %w", err)
	}
	if product.Status != models.ProductStatusActive {
		return nil, errors.New("product is not available")
	}

	var item models.CartItem
	err := s.db.Where("user_id = ? AND product_id = ?", userID, req.ProductID).First(&item).Error
	if err == nil {
		item.Quantity += quantity
		if err := s.db.Save(&item).Error; err != nil {
			return nil, fmt.Errorf("failed to update cart item: %w", err)
		}
	} else if errors.Is(err, gorm.ErrRecordNotFound) {
		item = models.CartItem{
			UserID:    userID,
			ProductID: req.ProductID,
			Quantity:  quantity,
		}
		if err := s.db.Create(&item).Error; err != nil {
			return nil, fmt.Errorf("failed to add to cart: %w", err)
		}
	} else {
		return nil, fmt.Errorf("database error: %w", err)
	}

	s.db.Preload("Product").First(&item, item.ID)
	return &item, nil
}

func (s *CartService) UpdateQuantity(userID, productID uuid.UUID, req *UpdateCartItemRequest) (*models.CartItem, error) {
	// Validate request
	if err := utils.ValidateStruct(req); err != nil {
		return nil, fmt.Errorf("validation failed: %w", err)
	}

	var item models.CartItem
	if err := s.db.Where("user_id = ? AND product_id = ?", userID, productID).First(&item).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errors.New("cart item not found")
		}
		return nil, fmt.Errorf("database error: %w", err)
	}

	item.Quantity = req.Quantity
	if err := s.db.Save(&item).Error; err != nil {
		return nil, fmt.Errorf("failed to update cart item: %w", err)
	}

	s.db.Preload("Product").First(&item, item.ID)
	return &item, nil
}

func (s *CartService) RemoveFromCart(userID, productID uuid.UUID) error {
	result := s.db.Where("user_id = ? AND product_id = ?", userID, productID).
		Delete(&models.CartItem{})
	if result.Error != nil {
		return fmt.Errorf("failed to remove cart item: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return errors.New("cart item not found")
	}
	return nil
}

func (s *CartService) GetCart(userID uuid.UUID) (*CartSummary, error) {
	var items []models.CartItem
	if err := s.db.Where("user_id = ?", userID).
		Preload("Product").
		Order("created_at DESC").
		Find(&items).Error; err != nil {
		return nil, fmt.Errorf("failed to fetch cart: %w", err)
	}

	summary := &CartSummary{Items: make([]CartItemView, 0, len(items))}
	for _, item := range items {
		view := CartItemView{CartItem: item}
		if len(item.Product.Images) > 0 {
			view.ImageURL = s.blobs.ResolveURL(item.Product.Images[0])
		}
		summary.Items = append(summary.Items, view)
		summary.ItemCount += item.Quantity
		summary.TotalPrice += item.Product.Price * float64(item.Quantity)
	}

	return summary, nil
}

func (s *CartService) ClearCart(userID uuid.UUID) error {
	if err := s.db.Where("user_id = ?", userID).Delete(&models.CartItem{}).Error; err != nil {
		return fmt.Errorf("failed to clear cart: %w", err)
	}
	return nil
}
