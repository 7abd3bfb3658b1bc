// internal/services/wishlist_service.go
package services

import (
	"errors"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/easyfix/electrox-backend/internal/models"
)

type WishlistService struct {
	db *gorm.DB
}

func NewWishlistService(db *gorm.DB) *WishlistService {
	return &WishlistService{db: db}
}

// AddToWishlist is idempotent. Saving a product already on the list
// returns the existing entry unchanged.
func (s *WishlistService) AddToWishlist(userID, productID uuid.UUID) (*models.WishlistItem, error) {
	// Verify product exists
	var product models.Product
	if err := s.db.First(&product, productID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errors.New("product not found")
		}
		return nil, fmt.Errorf("database error: %w", err)
	}

	var item models.WishlistItem
	err := s.db.Where("user_id = ? AND product_id = ?", userID, productID).First(&item).Error
	if err == nil {
		return &item, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("database error: %w", err)
	}

	item = models.WishlistItem{
		UserID:    userID,
		ProductID: productID,
	}
	if err := s.db.Create(&item).Error; err != nil {
		return nil, fmt.Errorf("failed to add to wishlist: %w", err)
	}

	s.db.Preload("Product").First(&item, item.ID)
	return &item, nil
}

func (s *WishlistService) RemoveFromWishlist(userID, productID uuid.UUID) error {
	result := s.db.Where("user_id = ? AND product_id = ?", userID, productID).
		Delete(&models.WishlistItem{})
	if result.Error != nil {
		return fmt.Errorf("failed to remove wishlist item: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return errors.New("wishlist item not found")
	}
	return nil
}

func (s *WishlistService) GetWishlist(userID uuid.UUID) ([]models.WishlistItem, error) {
	var items []models.WishlistItem
	if err := s.db.Where("user_id = ?", userID).
		Preload("Product").
		Order("created_at DESC").
		Find(&items).Error; err != nil {
		return nil, fmt.Errorf("failed to fetch wishlist: %w", err)
	}
	return items, nil
}

func (s *WishlistService) Contains(userID, productID uuid.UUID) (bool, error) {
	var count int64
	if err := s.db.Model(&models.WishlistItem{}).
		Where("user_id = ? AND product_id = ?", userID, productID).
		Count(&count).Error; err != nil {
		return false, fmt.Errorf("database error: %w", err)
	}
	return count > 0, nil
}
