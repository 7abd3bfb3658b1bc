// internal/handlers/cart.go
package handlers

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/easyfix/electrox-backend/internal/i18n"
	"github.com/easyfix/electrox-backend/internal/services"
	"github.com/easyfix/electrox-backend/internal/utils"
)

type CartHandler struct {
	cartService *services.CartService
}

func NewCartHandler(cartService *services.CartService) *CartHandler {
	return &CartHandler{
		cartService: cartService,
	}
}

// GET /cart
func (h *CartHandler) GetCart(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}

	cart, err := h.cartService.GetCart(userID)
	if err != nil {
		utils.InternalErrorResponse(c, err.Error())
		return
	}

	utils.SuccessResponse(c, cart)
}

// POST /cart/items
func (h *CartHandler) AddToCart(c *gin.Context) {
	lang := utils.GetLangFromContext(c)

	userID, ok := requireUserID(c)
	if !ok {
		return
	}

	var req services.AddToCartRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequestResponse(c, i18n.T(lang, i18n.KeyValidationInvalid, "input"), err.Error())
		return
	}

	if validationErrors := utils.GetValidationErrors(utils.ValidateStruct(&req)); len(validationErrors) > 0 {
		utils.ValidationErrorResponse(c, validationErrors)
		return
	}

	item, err := h.cartService.AddToCart(userID, &req)
	if err != nil {
		utils.BadRequestResponse(c, err.Error(), nil)
		return
	}

	utils.SuccessResponse(c, gin.H{
		"message": i18n.T(lang, i18n.KeyCartItemAdded),
		"item":    item,
	})
}

// PUT /cart/items/:productId
func (h *CartHandler) UpdateQuantity(c *gin.Context) {
	lang := utils.GetLangFromContext(c)

	userID, ok := requireUserID(c)
	if !ok {
		return
	}

	productID, err := uuid.Parse(c.Param("productId"))
	if err != nil {
		utils.BadRequestResponse(c, "Invalid product ID", nil)
		return
	}

	var req services.UpdateCartItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequestResponse(c, i18n.T(lang, i18n.KeyValidationInvalid, "input"), err.Error())
		return
	}

	if validationErrors := utils.GetValidationErrors(utils.ValidateStruct(&req)); len(validationErrors) > 0 {
		utils.ValidationErrorResponse(c, validationErrors)
		return
	}

	item, err := h.cartService.UpdateQuantity(userID, productID, &req)
	if err != nil {
		utils.BadRequestResponse(c, err.Error(), nil)
		return
	}

	utils.SuccessResponse(c, gin.H{"item": item})
}

// DELETE /cart/items/:productId
func (h *CartHandler) RemoveFromCart(c *gin.Context) {
	lang := utils.GetLangFromContext(c)

	userID, ok := requireUserID(c)
	if !ok {
		return
	}

	productID, err := uuid.Parse(c.Param("productId"))
	if err != nil {
		utils.BadRequestResponse(c, "Invalid product ID", nil)
		return
	}

	if err := h.cartService.RemoveFromCart(userID, productID); err != nil {
		utils.BadRequestResponse(c, err.Error(), nil)
		return
	}

	utils.SuccessResponse(c, gin.H{
		"message": i18n.T(lang, i18n.KeyCartItemRemoved),
	})
}

// DELETE /cart
func (h *CartHandler) ClearCart(c *gin.Context) {
	lang := utils.GetLangFromContext(c)

	userID, ok := requireUserID(c)
	if !ok {
		return
	}

	if err := h.cartService.ClearCart(userID); err != nil {
		utils.InternalErrorResponse(c, err.Error())
		return
	}

	utils.SuccessResponse(c, gin.H{
		"message": i18n.T(lang, i18n.KeyCartCleared),
	})
}
