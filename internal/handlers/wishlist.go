// internal/handlers/wishlist.go
package handlers

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/easyfix/electrox-backend/internal/i18n"
	"github.com/easyfix/electrox-backend/internal/services"
	"github.com/easyfix/electrox-backend/internal/utils"
)

type WishlistHandler struct {
	wishlistService *services.WishlistService
}

func NewWishlistHandler(wishlistService *services.WishlistService) *WishlistHandler {
	return &WishlistHandler{
		wishlistService: wishlistService,
	}
}

// GET /wishlist
func (h *WishlistHandler) GetWishlist(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}

	items, err := h.wishlistService.GetWishlist(userID)
	if err != nil {
		utils.InternalErrorResponse(c, err.Error())
		return
	}

	utils.SuccessResponse(c, gin.H{"items": items})
}

// POST /wishlist/:productId
func (h *WishlistHandler) AddToWishlist(c *gin.Context) {
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

	item, err := h.wishlistService.AddToWishlist(userID, productID)
	if err != nil {
		utils.BadRequestResponse(c, err.Error(), nil)
		return
	}

	utils.SuccessResponse(c, gin.H{
		"message": i18n.T(lang, i18n.KeyWishlistItemAdded),
		"item":    item,
	})
}

// DELETE /wishlist/:productId
func (h *WishlistHandler) RemoveFromWishlist(c *gin.Context) {
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

	if err := h.wishlistService.RemoveFromWishlist(userID, productID); err != nil {
		utils.BadRequestResponse(c, err.Error(), nil)
		return
	}

	utils.SuccessResponse(c, gin.H{
		"message": i18n.T(lang, i18n.KeyWishlistItemRemoved),
	})
}

// GET /wishlist/:productId
func (h *WishlistHandler) Contains(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}

	productID, err := uuid.Parse(c.Param("productId"))
	if err != nil {
		utils.BadRequestResponse(c, "Invalid product ID", nil)
		return
	}

	contained, err := h.wishlistService.Contains(userID, productID)
	if err != nil {
		utils.InternalErrorResponse(c, err.Error())
		return
	}

	utils.SuccessResponse(c, gin.H{"in_wishlist": contained})
}
