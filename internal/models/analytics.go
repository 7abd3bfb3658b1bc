// internal/models/analytics.go
package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"
)

// Visit aggregates a visitor's storefront activity into one row. A
// visitor is identified by account when signed in, otherwise by the
// anonymous ID the frontend stores client-side. Paths are deduplicated;
// the row tells which pages a visitor has seen, not how often.
type Visit struct {
	BaseModel
	UserID       *uuid.UUID     `json:"user_id,omitempty" gorm:"type:uuid;index"`
	AnonymousID  string         `json:"anonymous_id,omitempty" gorm:"size:100;index"`
	PathsVisited pq.StringArray `json:"paths_visited" gorm:"type:text[]"`
	UserAgent    string         `json:"user_agent" gorm:"type:text"`
	Country      string         `json:"country" gorm:"size:100;default:'Unknown'"`
	LastVisitAt  time.Time      `json:"last_visit_at"`

	// Relationships
	User *User `json:"user,omitempty" gorm:"foreignKey:UserID"`
}

// HasVisited reports whether the path is already recorded.
func (v *Visit) HasVisited(path string) bool {
	for _, p := range v.PathsVisited {
		if p == path {
			return true
		}
	}
	return false
}
