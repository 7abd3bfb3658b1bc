// internal/models/order.go
package models

import (
	"database/sql/driver"
	"encoding/json"
	"time"

	"github.com/google/uuid"
)

// OrderLine snapshots a cart row at checkout time so later product edits
// don't rewrite order history.
type OrderLine struct {
	ProductID   uuid.UUID `json:"product_id"`
	ProductName string    `json:"product_name"`
	UnitPrice   float64   `json:"unit_price"`
	Quantity    int       `json:"quantity"`
	LineTotal   float64   `json:"line_total"`
}

type OrderLines []OrderLine

func (o OrderLines) Value() (driver.Value, error) {
	if o == nil {
		return nil, nil
	}
	return json.Marshal(o)
}

func (o *OrderLines) Scan(value interface{}) error {
	if value == nil {
		*o = nil
		return nil
	}

	switch v := value.(type) {
	case []byte:
		return json.Unmarshal(v, o)
	case string:
		return json.Unmarshal([]byte(v), o)
	}
	return nil
}

type Order struct {
	BaseModel
	BuyerID          uuid.UUID   `json:"buyer_id" gorm:"type:uuid;not null;index"`
	Lines            OrderLines  `json:"lines" gorm:"type:jsonb"`
	Amount           float64     `json:"amount" gorm:"type:decimal(14,2);not null"`
	Currency         string      `json:"currency" gorm:"size:10;default:'Rwf'"`
	PaymentReference string      `json:"payment_reference" gorm:"size:255"`
	Status           OrderStatus `json:"status" gorm:"type:varchar(20);default:'pending';index"`
	ProcessedAt      *time.Time  `json:"processed_at"`
	RefundedAt       *time.Time  `json:"refunded_at"`
	RefundReason     string      `json:"refund_reason,omitempty" gorm:"type:text"`

	// Relationships
	Buyer User `json:"buyer,omitempty" gorm:"foreignKey:BuyerID"`
}
