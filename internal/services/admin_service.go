// internal/services/admin_service.go
package services

import (
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/easyfix/electrox-backend/internal/models"
	"github.com/easyfix/electrox-backend/internal/utils"
)

type AdminService struct {
	db *gorm.DB
}

type AdminDashboardStats struct {
	TotalUsers        int64   `json:"total_users"`
	ActiveUsers       int64   `json:"active_users"`
	NewUsersThisMonth int64   `json:"new_users_this_month"`
	TotalProducts     int64   `json:"total_products"`
	OutOfStock        int64   `json:"out_of_stock"`
	TotalOrders       int64   `json:"total_orders"`
	TotalRevenue      float64 `json:"total_revenue"`
	MonthlyRevenue    float64 `json:"monthly_revenue"`
	TotalFactures     int64   `json:"total_factures"`
	TotalInvoices     int64   `json:"total_invoices"`
	UserGrowth        float64 `json:"user_growth"`
	RevenueGrowth     float64 `json:"revenue_growth"`
}

type AdminUserFilter struct {
	utils.PaginationParams
	Role          *models.UserRole   `json:"role,omitempty"`
	Status        *models.UserStatus `json:"status,omitempty"`
	CreatedAfter  *time.Time         `json:"created_after,omitempty"`
	CreatedBefore *time.Time         `json:"created_before,omitempty"`
}

type AdminOrderFilter struct {
	utils.PaginationParams
	Status        *models.OrderStatus `json:"status,omitempty"`
	BuyerID       *uuid.UUID          `json:"buyer_id,omitempty"`
	AmountMin     *float64            `json:"amount_min,omitempty"`
	AmountMax     *float64            `json:"amount_max,omitempty"`
	CreatedAfter  *time.Time          `json:"created_after,omitempty"`
	CreatedBefore *time.Time          `json:"created_before,omitempty"`
}

func NewAdminService(db *gorm.DB) *AdminService {
	return &AdminService{db: db}
}

// Dashboard Statistics
func (s *AdminService) GetDashboardStats() (*AdminDashboardStats, error) {
	stats := &AdminDashboardStats{}
	now := time.Now()
	monthStart := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location())
	lastMonthStart := monthStart.AddDate(0, -1, 0)

	// User statistics
	s.db.Model(&models.User{}).Count(&stats.TotalUsers)
	s.db.Model(&models.User{}).Where("status = ?", models.UserStatusActive).Count(&stats.ActiveUsers)
	s.db.Model(&models.User{}).Where("created_at >= ?", monthStart).Count(&stats.NewUsersThisMonth)

	// Catalog statistics
	s.db.Model(&models.Product{}).Where("status = ?", models.ProductStatusActive).Count(&stats.TotalProducts)
	s.db.Model(&models.Product{}).
		Where("status = ? AND stock = 0", models.ProductStatusActive).
		Count(&stats.OutOfStock)

	// Order and revenue statistics
	s.db.Model(&models.Order{}).Count(&stats.TotalOrders)
	s.db.Model(&models.Order{}).
		Where("status = ?", models.OrderStatusPaid).
		Select("COALESCE(SUM(amount), 0)").Scan(&stats.TotalRevenue)
	s.db.Model(&models.Order{}).
		Where("status = ? AND created_at >= ?", models.OrderStatusPaid, monthStart).
		Select("COALESCE(SUM(amount), 0)").Scan(&stats.MonthlyRevenue)

	// Document statistics
	s.db.Model(&models.Facture{}).Count(&stats.TotalFactures)
	s.db.Model(&models.Invoice{}).Count(&stats.TotalInvoices)

	// Growth calculations
	var lastMonthUsers int64
	s.db.Model(&models.User{}).
		Where("created_at >= ? AND created_at < ?", lastMonthStart, monthStart).
		Count(&lastMonthUsers)

	var lastMonthRevenue float64
	s.db.Model(&models.Order{}).
		Where("status = ? AND created_at >= ? AND created_at < ?",
			models.OrderStatusPaid, lastMonthStart, monthStart).
		Select("COALESCE(SUM(amount), 0)").Scan(&lastMonthRevenue)

	if lastMonthUsers > 0 {
		stats.UserGrowth = float64(stats.NewUsersThisMonth-lastMonthUsers) / float64(lastMonthUsers) * 100
	}
	if lastMonthRevenue > 0 {
		stats.RevenueGrowth = (stats.MonthlyRevenue - lastMonthRevenue) / lastMonthRevenue * 100
	}

	return stats, nil
}

// User Management
func (s *AdminService) GetUsers(filter AdminUserFilter) ([]models.User, int64, error) {
	query := s.db.Model(&models.User{})

	// Apply filters
	if filter.Role != nil {
		query = query.Where("role = ?", *filter.Role)
	}
	if filter.Status != nil {
		query = query.Where("status = ?", *filter.Status)
	}
	if filter.Search != "" {
		searchTerm := "%" + filter.Search + "%"
		query = query.Where("username ILIKE ? OR email ILIKE ?", searchTerm, searchTerm)
	}
	if filter.CreatedAfter != nil {
		query = query.Where("created_at >= ?", *filter.CreatedAfter)
	}
	if filter.CreatedBefore != nil {
		query = query.Where("created_at <= ?", *filter.CreatedBefore)
	}

	// Get total count
	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to count users: %w", err)
	}

	// Apply sorting and pagination
	allowedSortFields := []string{"created_at", "updated_at", "username", "email", "role", "status"}
	query = utils.ApplySort(query, filter.PaginationParams, allowedSortFields)
	query = utils.ApplyPagination(query, filter.PaginationParams)

	// Execute query
	var users []models.User
	if err := query.Find(&users).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to fetch users: %w", err)
	}

	return users, total, nil
}

func (s *AdminService) UpdateUserStatus(userID uuid.UUID, status models.UserStatus, adminID uuid.UUID, reason string) error {
	// Find user
	var user models.User
	if err := s.db.First(&user, userID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return errors.New("user not found")
		}
		return fmt.Errorf("database error: %w", err)
	}

	// Admins cannot suspend each other
	if user.Role == models.UserRoleAdmin && user.ID != adminID {
		return errors.New("cannot modify another admin's status")
	}

	oldStatus := user.Status
	user.Status = status

	if err := s.db.Save(&user).Error; err != nil {
		return fmt.Errorf("failed to update user status: %w", err)
	}

	// Create audit log
	go s.createAuditLog(adminID, "UPDATE_USER_STATUS", "user", &userID, models.JSONB{
		"old_status": string(oldStatus),
		"new_status": string(status),
		"reason":     reason,
	})

	return nil
}

// PromoteUser grants the admin role.
func (s *AdminService) PromoteUser(userID uuid.UUID, adminID uuid.UUID) error {
	var user models.User
	if err := s.db.First(&user, userID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return errors.New("user not found")
		}
		return fmt.Errorf("database error: %w", err)
	}

	if user.Role == models.UserRoleAdmin {
		return errors.New("user is already an admin")
	}

	user.Role = models.UserRoleAdmin
	if err := s.db.Save(&user).Error; err != nil {
		return fmt.Errorf("failed to promote user: %w", err)
	}

	go s.createAuditLog(adminID, "PROMOTE_USER", "user", &userID, models.JSONB{
		"new_role": string(models.UserRoleAdmin),
	})

	return nil
}

// Order Management
func (s *AdminService) GetOrders(filter AdminOrderFilter) ([]models.Order, int64, error) {
	query := s.db.Model(&models.Order{}).Preload("Buyer")

	if filter.Status != nil {
		query = query.Where("status = ?", *filter.Status)
	}
	if filter.BuyerID != nil {
		query = query.Where("buyer_id = ?", *filter.BuyerID)
	}
	if filter.AmountMin != nil {
		query = query.Where("amount >= ?", *filter.AmountMin)
	}
	if filter.AmountMax != nil {
		query = query.Where("amount <= ?", *filter.AmountMax)
	}
	if filter.CreatedAfter != nil {
		query = query.Where("created_at >= ?", *filter.CreatedAfter)
	}
	if filter.CreatedBefore != nil {
		query = query.Where("created_at <= ?", *filter.CreatedBefore)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to count orders: %w", err)
	}

	allowedSortFields := []string{"created_at", "amount", "status"}
	query = utils.ApplySort(query, filter.PaginationParams, allowedSortFields)
	query = utils.ApplyPagination(query, filter.PaginationParams)

	var orders []models.Order
	if err := query.Find(&orders).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to fetch orders: %w", err)
	}

	return orders, total, nil
}

// Settings
func (s *AdminService) GetSettings(category string) ([]models.AdminSettings, error) {
	query := s.db.Model(&models.AdminSettings{})
	if category != "" {
		query = query.Where("category = ?", category)
	}

	var settings []models.AdminSettings
	if err := query.Order("category, key").Find(&settings).Error; err != nil {
		return nil, fmt.Errorf("failed to fetch settings: %w", err)
	}
	return settings, nil
}

func (s *AdminService) UpdateSetting(category, key string, value models.JSONB, adminID uuid.UUID) (*models.AdminSettings, error) {
	var setting models.AdminSettings
	err := s.db.Where("category = ? AND key = ?", category, key).First(&setting).Error
	if err != nil {
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("database error: %w", err)
		}
		setting = models.AdminSettings{
			Category: category,
			Key:      key,
		}
	}

	setting.Value = value
	setting.UpdatedBy = adminID

	if err := s.db.Save(&setting).Error; err != nil {
		return nil, fmt.Errorf("failed to save setting: %w", err)
	}

	go s.createAuditLog(adminID, "UPDATE_SETTING", "setting", &setting.ID, value)

	return &setting, nil
}

// Audit Logs
func (s *AdminService) GetAuditLogs(params utils.PaginationParams) ([]models.AuditLog, int64, error) {
	query := s.db.Model(&models.AuditLog{})

	if params.Search != "" {
		searchTerm := "%" + params.Search + "%"
		query = query.Where("action LIKE ? OR resource_type LIKE ?", searchTerm, searchTerm)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to count audit logs: %w", err)
	}

	allowedSortFields := []string{"created_at", "action", "resource_type"}
	query = utils.ApplySort(query, params, allowedSortFields)
	query = utils.ApplyPagination(query, params)

	var logs []models.AuditLog
	if err := query.Find(&logs).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to fetch audit logs: %w", err)
	}

	return logs, total, nil
}

func (s *AdminService) createAuditLog(adminID uuid.UUID, action, resourceType string, resourceID *uuid.UUID, values models.JSONB) {
	log := &models.AuditLog{
		UserID:       &adminID,
		Action:       action,
		ResourceType: resourceType,
		ResourceID:   resourceID,
		NewValues:    values,
	}
	s.db.Create(log)
}
