// internal/database/connection.go
package database

import (
	"fmt"
	"log"
	"time"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/easyfix/electrox-backend/internal/config"
	"github.com/easyfix/electrox-backend/internal/models"
)

var DB *gorm.DB

func Initialize(cfg config.DatabaseConfig) (*gorm.DB, error) {
	var err error
	var gormConfig *gorm.Config

	// Configure GORM logger
	if cfg.LogLevel == "silent" {
		gormConfig = &gorm.Config{
			Logger: logger.Default.LogMode(logger.Silent),
		}
	} else {
		gormConfig = &gorm.Config{
			Logger: logger.Default.LogMode(logger.Info),
		}
	}

	// Connect to database
	DB, err = gorm.Open(postgres.Open(cfg.DSN()), gormConfig)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	// Get underlying sql.DB
	sqlDB, err := DB.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get underlying sql.DB: %w", err)
	}

	// Configure connection pool
	sqlDB.SetMaxOpenConns(cfg.MaxOpenConns)
	sqlDB.SetMaxIdleConns(cfg.MaxIdleConns)
	sqlDB.SetConnMaxLifetime(time.Duration(cfg.MaxLifetime) * time.Second)

	// Test connection
	if err := sqlDB.Ping(); err != nil {
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	log.Println("Database connection established successfully")
	return DB, nil
}

func Close(db *gorm.DB) {
	sqlDB, err := db.DB()
	if err != nil {
		log.Printf("Error getting underlying sql.DB: %v", err)
		return
	}

	if err := sqlDB.Close(); err != nil {
		log.Printf("Error closing database connection: %v", err)
	} else {
		log.Println("Database connection closed successfully")
	}
}

func RunMigrations(db *gorm.DB) error {
	log.Println("Running database migrations...")

	// Run auto-migrations
	err := db.AutoMigrate(
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

	if err != nil {
		return fmt.Errorf("failed to run migrations: %w", err)
	}

	// Create indexes (Postgres only; tests run on SQLite)
	if db.Dialector.Name() == "postgres" {
		if err := createIndexes(db); err != nil {
			return fmt.Errorf("failed to create indexes: %w", err)
		}
	}

	log.Println("Database migrations completed successfully")
	return nil
}

func createIndexes(db *gorm.DB) error {
	indexes := []string{
		// User indexes
		"CREATE INDEX IF NOT EXISTS idx_users_email ON users(email)",
		"CREATE INDEX IF NOT EXISTS idx_users_role_status ON users(role, status)",

		// Product indexes
		"CREATE INDEX IF NOT EXISTS idx_products_creator ON products(created_by)",
		"CREATE INDEX IF NOT EXISTS idx_products_category_status ON products(category, status)",
		"CREATE INDEX IF NOT EXISTS idx_products_badge ON products(badge)",
		"CREATE INDEX IF NOT EXISTS idx_products_price ON products(price)",
		"CREATE INDEX IF NOT EXISTS idx_products_created_at ON products(created_at DESC)",

		// Invoicing indexes
		"CREATE INDEX IF NOT EXISTS idx_factures_number ON factures(number)",
		"CREATE INDEX IF NOT EXISTS idx_factures_status ON factures(status, created_at DESC)",
		"CREATE INDEX IF NOT EXISTS idx_invoices_status ON invoices(status, created_at DESC)",

		// Order indexes
		"CREATE INDEX IF NOT EXISTS idx_orders_buyer ON orders(buyer_id)",
		"CREATE INDEX IF NOT EXISTS idx_orders_status ON orders(status, created_at DESC)",

		// Audit indexes
		"CREATE INDEX IF NOT EXISTS idx_audit_logs_user_action ON audit_logs(user_id, action)",
		"CREATE INDEX IF NOT EXISTS idx_audit_logs_resource ON audit_logs(resource_type, resource_id)",
		"CREATE INDEX IF NOT EXISTS idx_audit_logs_created ON audit_logs(created_at DESC)",

		// Full-text search indexes
		"CREATE INDEX IF NOT EXISTS idx_products_search ON products USING GIN(to_tsvector('english', name || ' ' || description))",
	}

	for _, index := range indexes {
		if err := db.Exec(index).Error; err != nil {
			log.Printf("Warning: Failed to create index: %s, Error: %v", index, err)
			// Continue with other indexes instead of failing completely
		}
	}

	return nil
}

// Seed initial data
func SeedInitialData(db *gorm.DB) error {
	log.Println("Seeding initial data...")

	// Create default admin user
	var adminCount int64
	db.Model(&models.User{}).Where("role = ?", models.UserRoleAdmin).Count(&adminCount)

	if adminCount == 0 {
		admin := &models.User{
			Username: "admin",
			Email:    "admin@easyfix.rw",
			Role:     models.UserRoleAdmin,
			Status:   models.UserStatusActive,
			ProfileData: models.JSONB{
				"first_name": "System",
				"last_name":  "Administrator",
			},
		}

		if err := admin.SetPassword("admin123!@#"); err != nil {
			return fmt.Errorf("failed to set admin password: %w", err)
		}

		if err := db.Create(admin).Error; err != nil {
			return fmt.Errorf("failed to create admin user: %w", err)
		}

		log.Println("Default admin user created successfully")
	}

	// Create default platform settings
	defaultSettings := []models.AdminSettings{
		{
			Category:    "general",
			Key:         "shop_name",
			Value:       models.JSONB{"value": "ElectroX"},
			DataType:    "string",
			Description: "Storefront name displayed to users",
		},
		{
			Category:    "invoicing",
			Key:         "pdf_footer",
			Value:       models.JSONB{"value": "Thank you for your business"},
			DataType:    "string",
			Description: "Footer line printed on exported invoices",
		},
		{
			Category:    "content",
			Key:         "max_file_size",
			Value:       models.JSONB{"value": 10},
			DataType:    "integer",
			Description: "Maximum file size in MB for image uploads",
		},
		{
			Category:    "content",
			Key:         "max_images_per_product",
			Value:       models.JSONB{"value": 8},
			DataType:    "integer",
			Description: "Maximum number of images per product",
		},
	}

	for _, setting := range defaultSettings {
		var count int64
		db.Model(&models.AdminSettings{}).Where("category = ? AND key = ?", setting.Category, setting.Key).Count(&count)

		if count == 0 {
			var admin models.User
			if err := db.Where("role = ?", models.UserRoleAdmin).First(&admin).Error; err == nil {
				setting.UpdatedBy = admin.ID
				if err := db.Create(&setting).Error; err != nil {
					log.Printf("Warning: Failed to create setting %s.%s: %v", setting.Category, setting.Key, err)
				}
			}
		}
	}

	log.Println("Initial data seeding completed")
	return nil
}

// Transaction helper
func WithTransaction(db *gorm.DB, fn func(*gorm.DB) error) error {
	tx := db.Begin()
	if tx.Error != nil {
		return tx.Error
	}

	defer func() {
		if r := recover(); r != nil {
			tx.Rollback()
			panic(r)
		}
	}()

	if err := fn(tx); err != nil {
		tx.Rollback()
		return err
	}

	return tx.Commit().Error
}
