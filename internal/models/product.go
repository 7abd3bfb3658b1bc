// internal/models/product.go
package models

import (
	"github.com/google/uuid"
	"github.com/lib/pq"
)

type Product struct {
	BaseModel
	CreatedBy      uuid.UUID        `json:"created_by" gorm:"type:uuid;not null;index"`
	Name           string           `json:"name" gorm:"size:200;not null"`
	Description    string           `json:"description" gorm:"type:text"`
	Brand          string           `json:"brand" gorm:"size:100"`
	Category       string           `json:"category" gorm:"size:100;index"`
	Price          float64          `json:"price" gorm:"type:decimal(12,2);not null"`
	OriginalPrice  *float64         `json:"original_price,omitempty" gorm:"type:decimal(12,2)"`
	Currency       string           `json:"currency" gorm:"size:10;default:'Rwf'"`
	Stock          int              `json:"stock" gorm:"default:0"`
	SerialNumber   string           `json:"serial_number" gorm:"size:100"`
	Images         pq.StringArray   `json:"images" gorm:"type:text[]"`
	Status         ProductStatus    `json:"status" gorm:"type:varchar(20);default:'draft';index"`
	Condition      ProductCondition `json:"condition" gorm:"type:varchar(20)"`
	Badge          ProductBadge     `json:"badge" gorm:"type:varchar(20);index"`
	WarrantyMonths *int             `json:"warranty_months,omitempty"`
	Tags           pq.StringArray   `json:"tags" gorm:"type:text[]"`
	ViewCount      int64            `json:"view_count" gorm:"default:0"`
	LikeCount      int64            `json:"like_count" gorm:"default:0"`
	Rating         float64          `json:"rating" gorm:"type:decimal(3,2);default:0"`

	// Relationships
	Creator User `json:"creator,omitempty" gorm:"foreignKey:CreatedBy"`
}

// Listable reports whether the product may appear in the public catalog.
// A product needs at least one stored image reference before it is listable.
func (p *Product) Listable() bool {
	return p.Status == ProductStatusActive && len(p.Images) > 0
}
