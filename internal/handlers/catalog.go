// internal/handlers/catalog.go
package handlers

import (
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/easyfix/electrox-backend/internal/i18n"
	"github.com/easyfix/electrox-backend/internal/models"
	"github.com/easyfix/electrox-backend/internal/services"
	"github.com/easyfix/electrox-backend/internal/utils"
)

// CatalogHandler serves the public storefront. No auth required.
type CatalogHandler struct {
	catalogService *services.CatalogService
}

func NewCatalogHandler(catalogService *services.CatalogService) *CatalogHandler {
	return &CatalogHandler{
		catalogService: catalogService,
	}
}

// GET /catalog/products
func (h *CatalogHandler) ListProducts(c *gin.Context) {
	params := services.CatalogParams{
		PaginationParams: utils.GetPaginationParams(c),
		Category:         c.Query("category"),
		Brand:            c.Query("brand"),
	}

	if badge := c.Query("badge"); badge != "" {
		b := models.ProductBadge(badge)
		params.Badge = &b
	}

	products, total, err := h.catalogService.ListProducts(params)
	if err != nil {
		utils.InternalErrorResponse(c, err.Error())
		return
	}

	result := utils.CreatePaginationResult(products, total, params.PaginationParams)
	utils.PaginatedResponse(c, result)
}

// GET /catalog/products/:id
func (h *CatalogHandler) GetProduct(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		utils.BadRequestResponse(c, "Invalid product ID", nil)
		return
	}

	product, err := h.catalogService.GetProduct(id)
	if err != nil {
		utils.NotFoundResponse(c, i18n.KeyProductNotFound)
		return
	}

	utils.SuccessResponse(c, gin.H{"product": product})
}

// GET /catalog/deals
func (h *CatalogHandler) GetDeals(c *gin.Context) {
	limit := 12
	if l, err := strconv.Atoi(c.Query("limit")); err == nil && l > 0 && l <= 50 {
		limit = l
	}

	deals, err := h.catalogService.GetDeals(limit)
	if err != nil {
		utils.InternalErrorResponse(c, err.Error())
		return
	}

	utils.SuccessResponse(c, gin.H{"deals": deals})
}

// GET /catalog/popular
func (h *CatalogHandler) GetPopular(c *gin.Context) {
	limit := 12
	if l, err := strconv.Atoi(c.Query("limit")); err == nil && l > 0 && l <= 50 {
		limit = l
	}

	products, err := h.catalogService.GetPopular(limit)
	if err != nil {
		utils.InternalErrorResponse(c, err.Error())
		return
	}

	utils.SuccessResponse(c, gin.H{"products": products})
}

// GET /catalog/categories
func (h *CatalogHandler) GetCategories(c *gin.Context) {
	categories, err := h.catalogService.GetCategories()
	if err != nil {
		utils.InternalErrorResponse(c, err.Error())
		return
	}

	utils.SuccessResponse(c, gin.H{"categories": categories})
}
