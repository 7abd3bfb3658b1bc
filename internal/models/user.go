// internal/models/user.go
package models

import (
	"time"

	"golang.org/x/crypto/bcrypt"
)

type User struct {
	BaseModel
	Username        string     `json:"username" gorm:"uniqueIndex;size:50;not null"`
	Email           string     `json:"email" gorm:"uniqueIndex;size:255;not null"`
	PasswordHash    string     `json:"-" gorm:"size:255;not null"`
	Role            UserRole   `json:"role" gorm:"type:varchar(20);not null;default:'client'"`
	Status          UserStatus `json:"status" gorm:"type:varchar(20);default:'active'"`
	PictureURL      string     `json:"picture_url" gorm:"size:512"`
	ProfileData     JSONB      `json:"profile_data" gorm:"type:jsonb"`
	EmailVerifiedAt *time.Time `json:"email_verified_at"`
	LastLoginAt     *time.Time `json:"last_login_at"`

	// Relationships
	Products []Product `json:"products,omitempty" gorm:"foreignKey:CreatedBy"`
	Orders   []Order   `json:"orders,omitempty" gorm:"foreignKey:BuyerID"`
}

func (u *User) SetPassword(password string) error {
	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	u.PasswordHash = string(hashedPassword)
	return nil
}

func (u *User) CheckPassword(password string) error {
	return bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(password))
}

// DisplayName is what the catalog shows next to a listing.
func (u *User) DisplayName() string {
	if u == nil || u.Username == "" {
		return "Unknown User"
	}
	return u.Username
}
