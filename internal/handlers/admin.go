// internal/handlers/admin.go
package handlers

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/easyfix/electrox-backend/internal/i18n"
	"github.com/easyfix/electrox-backend/internal/models"
	"github.com/easyfix/electrox-backend/internal/services"
	"github.com/easyfix/electrox-backend/internal/utils"
)

type AdminHandler struct {
	adminService    *services.AdminService
	checkoutService *services.CheckoutService
}

func NewAdminHandler(adminService *services.AdminService, checkoutService *services.CheckoutService) *AdminHandler {
	return &AdminHandler{
		adminService:    adminService,
		checkoutService: checkoutService,
	}
}

// GET /admin/dashboard
func (h *AdminHandler) GetDashboard(c *gin.Context) {
	stats, err := h.adminService.GetDashboardStats()
	if err != nil {
		utils.InternalErrorResponse(c, err.Error())
		return
	}

	utils.SuccessResponse(c, stats)
}

// GET /admin/users
func (h *AdminHandler) GetUsers(c *gin.Context) {
	filter := services.AdminUserFilter{
		PaginationParams: utils.GetPaginationParams(c),
	}

	if role := c.Query("role"); role != "" {
		r := models.UserRole(role)
		filter.Role = &r
	}
	if status := c.Query("status"); status != "" {
		s := models.UserStatus(status)
		filter.Status = &s
	}

	users, total, err := h.adminService.GetUsers(filter)
	if err != nil {
		utils.InternalErrorResponse(c, err.Error())
		return
	}

	result := utils.CreatePaginationResult(users, total, filter.PaginationParams)
	utils.PaginatedResponse(c, result)
}

// PUT /admin/users/:id/status
func (h *AdminHandler) UpdateUserStatus(c *gin.Context) {
	lang := utils.GetLangFromContext(c)

	adminID, ok := requireUserID(c)
	if !ok {
		return
	}

	userID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		utils.BadRequestResponse(c, "Invalid user ID", nil)
		return
	}

	var req struct {
		Status models.UserStatus `json:"status" validate:"required,oneof=active suspended banned"`
		Reason string            `json:"reason,omitempty"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequestResponse(c, i18n.T(lang, i18n.KeyValidationInvalid, "input"), err.Error())
		return
	}

	if validationErrors := utils.GetValidationErrors(utils.ValidateStruct(&req)); len(validationErrors) > 0 {
		utils.ValidationErrorResponse(c, validationErrors)
		return
	}

	if err := h.adminService.UpdateUserStatus(userID, req.Status, adminID, req.Reason); err != nil {
		utils.BadRequestResponse(c, err.Error(), nil)
		return
	}

	utils.SuccessResponse(c, gin.H{
		"message": i18n.T(lang, i18n.KeyAdminActionSuccess),
	})
}

// POST /admin/users/:id/promote
func (h *AdminHandler) PromoteUser(c *gin.Context) {
	lang := utils.GetLangFromContext(c)

	adminID, ok := requireUserID(c)
	if !ok {
		return
	}

	userID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		utils.BadRequestResponse(c, "Invalid user ID", nil)
		return
	}

	if err := h.adminService.PromoteUser(userID, adminID); err != nil {
		utils.BadRequestResponse(c, err.Error(), nil)
		return
	}

	utils.SuccessResponse(c, gin.H{
		"message": i18n.T(lang, i18n.KeyAdminActionSuccess),
	})
}

// GET /admin/orders
func (h *AdminHandler) GetOrders(c *gin.Context) {
	filter := services.AdminOrderFilter{
		PaginationParams: utils.GetPaginationParams(c),
	}

	if status := c.Query("status"); status != "" {
		s := models.OrderStatus(status)
		filter.Status = &s
	}
	if buyer := c.Query("buyer_id"); buyer != "" {
		if id, err := uuid.Parse(buyer); err == nil {
			filter.BuyerID = &id
		}
	}

	orders, total, err := h.adminService.GetOrders(filter)
	if err != nil {
		utils.InternalErrorResponse(c, err.Error())
		return
	}

	result := utils.CreatePaginationResult(orders, total, filter.PaginationParams)
	utils.PaginatedResponse(c, result)
}

// POST /admin/orders/refund
func (h *AdminHandler) RefundOrder(c *gin.Context) {
	lang := utils.GetLangFromContext(c)

	var req services.RefundRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequestResponse(c, i18n.T(lang, i18n.KeyValidationInvalid, "input"), err.Error())
		return
	}

	if validationErrors := utils.GetValidationErrors(utils.ValidateStruct(&req)); len(validationErrors) > 0 {
		utils.ValidationErrorResponse(c, validationErrors)
		return
	}

	if err := h.checkoutService.Refund(&req); err != nil {
		utils.BadRequestResponse(c, err.Error(), nil)
		return
	}

	utils.SuccessResponse(c, gin.H{
		"message": i18n.T(lang, i18n.KeyAdminActionSuccess),
	})
}

// GET /admin/settings
func (h *AdminHandler) GetSettings(c *gin.Context) {
	settings, err := h.adminService.GetSettings(c.Query("category"))
	if err != nil {
		utils.InternalErrorResponse(c, err.Error())
		return
	}

	utils.SuccessResponse(c, gin.H{"settings": settings})
}

// PUT /admin/settings/:category/:key
func (h *AdminHandler) UpdateSetting(c *gin.Context) {
	lang := utils.GetLangFromContext(c)

	adminID, ok := requireUserID(c)
	if !ok {
		return
	}

	var value models.JSONB
	if err := c.ShouldBindJSON(&value); err != nil {
		utils.BadRequestResponse(c, i18n.T(lang, i18n.KeyValidationInvalid, "input"), err.Error())
		return
	}

	setting, err := h.adminService.UpdateSetting(c.Param("category"), c.Param("key"), value, adminID)
	if err != nil {
		utils.InternalErrorResponse(c, err.Error())
		return
	}

	utils.SuccessResponse(c, gin.H{
		"message": i18n.T(lang, i18n.KeyAdminActionSuccess),
		"setting": setting,
	})
}

// GET /admin/audit-logs
func (h *AdminHandler) GetAuditLogs(c *gin.Context) {
	params := utils.GetPaginationParams(c)

	logs, total, err := h.adminService.GetAuditLogs(params)
	if err != nil {
		utils.InternalErrorResponse(c, err.Error())
		return
	}

	result := utils.CreatePaginationResult(logs, total, params)
	utils.PaginatedResponse(c, result)
}
