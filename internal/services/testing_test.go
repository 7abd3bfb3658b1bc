// internal/services/testing_test.go
package services

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/easyfix/electrox-backend/internal/config"
	"github.com/easyfix/electrox-backend/internal/models"
)

func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	err = db.AutoMigrate(
		&models.User{},
		&models.Product{},
		&models.Facture{},
		&models.Invoice{},
		&models.CartItem{},
		&models.WishlistItem{},
		&models.Order{},
		&models.AdminSettings{},
		&models.AuditLog{},
		&models.Visit{},
	)
	require.NoError(t, err)

	return db
}

func testConfig() *config.Config {
	return &config.Config{
		Environment: "test",
		Server: config.ServerConfig{
			Port: "8080",
		},
		JWT: config.JWTConfig{
			SecretKey:       "test-secret",
			AccessTokenTTL:  1,
			RefreshTokenTTL: 24,
		},
		Payment: config.PaymentConfig{
			Currency: "rwf",
		},
		Shop: config.ShopConfig{
			Name:     "EASYFIX TECH",
			Address:  "NYARUGENGE, Kigali",
			Phone:    "+250 788 000 000",
			TIN:      "123456789",
			Currency: "Rwf",
		},
		Frontend: config.FrontendConfig{
			BaseURL: "http://localhost:3000",
		},
	}
}

func createTestUser(t *testing.T, db *gorm.DB, username string, role models.UserRole) *models.User {
	t.Helper()

	user := &models.User{
		Username: username,
		Email:    username + "@example.com",
		Role:     role,
		Status:   models.UserStatusActive,
	}
	require.NoError(t, user.SetPassword("Passw0rd!x"))
	require.NoError(t, db.Create(user).Error)
	return user
}

func createTestProduct(t *testing.T, db *gorm.DB, creatorID uuid.UUID, name string, price float64, stock int) *models.Product {
	t.Helper()

	product := &models.Product{
		CreatedBy:   creatorID,
		Name:        name,
		Description: "A reliable refurbished device in good shape",
		Category:    "laptops",
		Price:       price,
		Stock:       stock,
		Images:      []string{"products/" + name + ".jpg"},
		Status:      models.ProductStatusActive,
		Condition:   models.ProductConditionNew,
	}
	require.NoError(t, db.Create(product).Error)
	return product
}

// memoryBlobStore stands in for S3 in tests.
type memoryBlobStore struct {
	deleted []string
}

func (m *memoryBlobStore) ResolveURL(ref string) string {
	return "https://cdn.example.com/" + ref
}

func (m *memoryBlobStore) Delete(ref string) error {
	m.deleted = append(m.deleted, ref)
	return nil
}
