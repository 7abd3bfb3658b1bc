// internal/models/cart.go
package models

import "github.com/google/uuid"

// CartItem holds one (user, product) pair. The composite unique index
// backs the upsert semantics of Add: at most one row per pair, quantity
// incremented on repeat adds.
type CartItem struct {
	BaseModel
	UserID    uuid.UUID `json:"user_id" gorm:"type:uuid;not null;uniqueIndex:idx_cart_user_product"`
	ProductID uuid.UUID `json:"product_id" gorm:"type:uuid;not null;uniqueIndex:idx_cart_user_product"`
	Quantity  int       `json:"quantity" gorm:"not null;default:1"`

	// Relationships
	Product Product `json:"product,omitempty" gorm:"foreignKey:ProductID"`
}

// WishlistItem is the quantity-less counterpart; add is idempotent.
type WishlistItem struct {
	BaseModel
	UserID    uuid.UUID `json:"user_id" gorm:"type:uuid;not null;uniqueIndex:idx_wishlist_user_product"`
	ProductID uuid.UUID `json:"product_id" gorm:"type:uuid;not null;uniqueIndex:idx_wishlist_user_product"`

	// Relationships
	Product Product `json:"product,omitempty" gorm:"foreignKey:ProductID"`
}
