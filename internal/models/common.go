// internal/models/common.go
package models

import (
	"database/sql/driver"
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Base model with common fields
type BaseModel struct {
	ID        uuid.UUID      `json:"id" gorm:"type:uuid;primary_key"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `json:"deleted_at,omitempty" gorm:"index"`
}

// BeforeCreate assigns the UUID in the application so the same models work
// against Postgres and the in-memory SQLite used by tests.
func (m *BaseModel) BeforeCreate(tx *gorm.DB) error {
	if m.ID == uuid.Nil {
		m.ID = uuid.New()
	}
	return nil
}

// JSONB type for PostgreSQL
type JSONB map[string]interface{}

func (j JSONB) Value() (driver.Value, error) {
	if j == nil {
		return nil, nil
	}
	return json.Marshal(j)
}

func (j *JSONB) Scan(value interface{}) error {
	if value == nil {
		*j = nil
		return nil
	}

	switch v := value.(type) {
	case []byte:
		return json.Unmarshal(v, j)
	case string:
		return json.Unmarshal([]byte(v), j)
	}
	return nil
}

// Enums
type UserRole string

const (
	UserRoleAdmin  UserRole = "admin"
	UserRoleClient UserRole = "client"
)

type UserStatus string

const (
	UserStatusActive    UserStatus = "active"
	UserStatusSuspended UserStatus = "suspended"
	UserStatusBanned    UserStatus = "banned"
)

type ProductStatus string

const (
	ProductStatusDraft    ProductStatus = "draft"
	ProductStatusActive   ProductStatus = "active"
	ProductStatusInactive ProductStatus = "inactive"
)

type ProductCondition string

const (
	ProductConditionNew     ProductCondition = "New"
	ProductConditionLikeNew ProductCondition = "Like New"
	ProductConditionGood    ProductCondition = "Good"
	ProductConditionUsed    ProductCondition = "Used"
)

type ProductBadge string

const (
	ProductBadgeNew   ProductBadge = "NEW"
	ProductBadgeHot   ProductBadge = "HOT"
	ProductBadgeSale  ProductBadge = "SALE"
	ProductBadgeDeals ProductBadge = "Deals"
)

// DocumentStatus covers both proforma invoices and factures.
type DocumentStatus string

const (
	DocumentStatusDraft DocumentStatus = "draft"
	DocumentStatusSent  DocumentStatus = "sent"
	DocumentStatusPaid  DocumentStatus = "paid"
)

type OrderStatus string

const (
	OrderStatusPending  OrderStatus = "pending"
	OrderStatusPaid     OrderStatus = "paid"
	OrderStatusFailed   OrderStatus = "failed"
	OrderStatusRefunded OrderStatus = "refunded"
)
