// internal/handlers/checkout.go
package handlers

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/easyfix/electrox-backend/internal/i18n"
	"github.com/easyfix/electrox-backend/internal/services"
	"github.com/easyfix/electrox-backend/internal/utils"
)

type CheckoutHandler struct {
	checkoutService *services.CheckoutService
}

func NewCheckoutHandler(checkoutService *services.CheckoutService) *CheckoutHandler {
	return &CheckoutHandler{
		checkoutService: checkoutService,
	}
}

// POST /checkout
func (h *CheckoutHandler) Checkout(c *gin.Context) {
	lang := utils.GetLangFromContext(c)

	userID, ok := requireUserID(c)
	if !ok {
		return
	}

	resp, err := h.checkoutService.Checkout(userID)
	if err != nil {
		utils.BadRequestResponse(c, err.Error(), nil)
		return
	}

	utils.CreatedResponse(c, gin.H{
		"message":       i18n.T(lang, i18n.KeyOrderCreated),
		"order":         resp.Order,
		"client_secret": resp.ClientSecret,
	})
}

// POST /checkout/confirm
func (h *CheckoutHandler) ConfirmPayment(c *gin.Context) {
	lang := utils.GetLangFromContext(c)

	var req services.ConfirmPaymentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequestResponse(c, i18n.T(lang, i18n.KeyValidationInvalid, "input"), err.Error())
		return
	}

	if validationErrors := utils.GetValidationErrors(utils.ValidateStruct(&req)); len(validationErrors) > 0 {
		utils.ValidationErrorResponse(c, validationErrors)
		return
	}

	if err := h.checkoutService.ConfirmPayment(&req); err != nil {
		utils.BadRequestResponse(c, i18n.T(lang, i18n.KeyPaymentFailed), err.Error())
		return
	}

	utils.SuccessResponse(c, gin.H{
		"message": i18n.T(lang, i18n.KeyPaymentSuccess),
	})
}

// GET /orders
func (h *CheckoutHandler) ListOrders(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}

	params := utils.GetPaginationParams(c)

	orders, total, err := h.checkoutService.ListOrders(userID, params)
	if err != nil {
		utils.InternalErrorResponse(c, err.Error())
		return
	}

	result := utils.CreatePaginationResult(orders, total, params)
	utils.PaginatedResponse(c, result)
}

// GET /orders/:id
func (h *CheckoutHandler) GetOrder(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}

	orderID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		utils.BadRequestResponse(c, "Invalid order ID", nil)
		return
	}

	order, err := h.checkoutService.GetOrder(orderID, userID)
	if err != nil {
		utils.NotFoundResponse(c, i18n.KeyOrderNotFound)
		return
	}

	utils.SuccessResponse(c, gin.H{"order": order})
}
