// internal/models/admin.go
package models

import (
	"github.com/google/uuid"
)

// AdminSettings holds back-office configurable values (shop identity,
// invoice footer text, upload limits) keyed by category.
type AdminSettings struct {
	BaseModel
	Category    string    `json:"category" gorm:"size:50;not null;index"`
	Key         string    `json:"key" gorm:"size:100;not null;index"`
	Value       JSONB     `json:"value" gorm:"type:jsonb;not null"`
	DataType    string    `json:"data_type" gorm:"size:20;not null"`
	Description string    `json:"description" gorm:"type:text"`
	UpdatedBy   uuid.UUID `json:"updated_by" gorm:"type:uuid;not null"`

	// Relationships
	UpdatedByUser User `json:"updated_by_user,omitempty" gorm:"foreignKey:UpdatedBy"`
}

type AuditLog struct {
	BaseModel
	UserID       *uuid.UUID `json:"user_id" gorm:"type:uuid;index"`
	Action       string     `json:"action" gorm:"size:100;not null;index"`
	ResourceType string     `json:"resource_type" gorm:"size:50;not null;index"`
	ResourceID   *uuid.UUID `json:"resource_id" gorm:"type:uuid;index"`
	NewValues    JSONB      `json:"new_values" gorm:"type:jsonb"`
	IPAddress    string     `json:"ip_address" gorm:"size:45"`
	UserAgent    string     `json:"user_agent" gorm:"type:text"`

	// Relationships
	User *User `json:"user,omitempty" gorm:"foreignKey:UserID"`
}
