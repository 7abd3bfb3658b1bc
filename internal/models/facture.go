// internal/models/facture.go
package models

import (
	"database/sql/driver"
	"encoding/json"
	"time"
)

// LineItem is one row of a facture or proforma invoice. TotalPrice is
// recomputed server-side on every save; clients cannot set it directly.
type LineItem struct {
	Description string  `json:"description"`
	Quantity    float64 `json:"quantity"`
	UnitPrice   float64 `json:"unit_price"`
	TotalPrice  float64 `json:"total_price"`
}

// LineItems is stored as a single JSON column, mirroring the document
// shape the items had in the original store.
type LineItems []LineItem

func (l LineItems) Value() (driver.Value, error) {
	if l == nil {
		return nil, nil
	}
	return json.Marshal(l)
}

func (l *LineItems) Scan(value interface{}) error {
	if value == nil {
		*l = nil
		return nil
	}

	switch v := value.(type) {
	case []byte:
		return json.Unmarshal(v, l)
	case string:
		return json.Unmarshal([]byte(v), l)
	}
	return nil
}

// Total sums the line totals.
func (l LineItems) Total() float64 {
	var total float64
	for _, item := range l {
		total += item.TotalPrice
	}
	return total
}

// Facture is a final client invoice. Number is assigned at creation as
// count-of-existing + 1; nothing guards two concurrent creations from
// reading the same count, so duplicate numbers are possible. That matches
// the behavior of the system this one replaces and is deliberately kept.
type Facture struct {
	BaseModel
	Number      int            `json:"facture_number" gorm:"index"`
	ClientName  string         `json:"client_name" gorm:"size:200;not null"`
	ClientPhone string         `json:"client_phone,omitempty" gorm:"size:30"`
	Items       LineItems      `json:"items" gorm:"type:jsonb"`
	Status      DocumentStatus `json:"status" gorm:"type:varchar(10);default:'draft';index"`
	TotalAmount float64        `json:"total_amount" gorm:"type:decimal(14,2)"`
	IssuedAt    time.Time      `json:"date"`
}

// Invoice is a proforma document. It has no assigned display number and
// carries the client's tax number and free-form notes.
type Invoice struct {
	BaseModel
	ClientName  string         `json:"client_name" gorm:"size:200;not null"`
	ClientPhone string         `json:"client_phone,omitempty" gorm:"size:30"`
	ClientTIN   string         `json:"client_tin,omitempty" gorm:"size:50"`
	Items       LineItems      `json:"items" gorm:"type:jsonb"`
	Status      DocumentStatus `json:"status" gorm:"type:varchar(10);default:'draft';index"`
	Notes       string         `json:"notes,omitempty" gorm:"type:text"`
	TotalAmount float64        `json:"total_amount" gorm:"type:decimal(14,2)"`
}
