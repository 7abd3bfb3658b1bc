// internal/handlers/product.go
package handlers

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/easyfix/electrox-backend/internal/i18n"
	"github.com/easyfix/electrox-backend/internal/models"
	"github.com/easyfix/electrox-backend/internal/services"
	"github.com/easyfix/electrox-backend/internal/utils"
)

// ProductHandler is the back-office write side of the catalog.
type ProductHandler struct {
	productService *services.ProductService
	storageService *services.StorageService
}

func NewProductHandler(productService *services.ProductService, storageService *services.StorageService) *ProductHandler {
	return &ProductHandler{
		productService: productService,
		storageService: storageService,
	}
}

// POST /products/upload-slot
func (h *ProductHandler) CreateUploadSlot(c *gin.Context) {
	lang := utils.GetLangFromContext(c)

	var req struct {
		ContentType string `json:"content_type" validate:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequestResponse(c, i18n.T(lang, i18n.KeyValidationInvalid, "input"), err.Error())
		return
	}

	if validationErrors := utils.GetValidationErrors(utils.ValidateStruct(&req)); len(validationErrors) > 0 {
		utils.ValidationErrorResponse(c, validationErrors)
		return
	}

	slot, err := h.storageService.CreateUploadSlot(req.ContentType)
	if err != nil {
		utils.InternalErrorResponse(c, err.Error())
		return
	}

	utils.SuccessResponse(c, slot)
}

// POST /products/upload
// Multipart upload for clients that cannot do a direct presigned PUT.
// Each file succeeds or fails on its own; one bad file does not sink
// the rest of the batch.
func (h *ProductHandler) UploadImages(c *gin.Context) {
	lang := utils.GetLangFromContext(c)

	form, err := c.MultipartForm()
	if err != nil {
		utils.BadRequestResponse(c, i18n.T(lang, i18n.KeyFileUploadFailed), err.Error())
		return
	}

	files := form.File["images"]
	if len(files) == 0 {
		utils.BadRequestResponse(c, i18n.T(lang, i18n.KeyValidationRequired, "images"), nil)
		return
	}

	options := h.storageService.GetDefaultUploadOptions("products")

	type uploadFailure struct {
		Filename string `json:"filename"`
		Error    string `json:"error"`
	}

	var uploaded []services.UploadResult
	var failed []uploadFailure

	for _, header := range files {
		file, err := header.Open()
		if err != nil {
			failed = append(failed, uploadFailure{Filename: header.Filename, Error: err.Error()})
			continue
		}

		result, err := h.storageService.UploadFile(file, header, options)
		file.Close()
		if err != nil {
			failed = append(failed, uploadFailure{Filename: header.Filename, Error: err.Error()})
			continue
		}
		uploaded = append(uploaded, *result)
	}

	utils.SuccessResponse(c, gin.H{
		"message":  i18n.T(lang, i18n.KeyFileUploadSuccess),
		"uploaded": uploaded,
		"failed":   failed,
	})
}

// POST /products
func (h *ProductHandler) CreateProduct(c *gin.Context) {
	lang := utils.GetLangFromContext(c)

	userID, ok := requireUserID(c)
	if !ok {
		return
	}

	var req services.CreateProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequestResponse(c, i18n.T(lang, i18n.KeyValidationInvalid, "input"), err.Error())
		return
	}

	if len(req.Images) == 0 {
		utils.BadRequestResponse(c, i18n.T(lang, i18n.KeyProductImageRequired), nil)
		return
	}

	if validationErrors := utils.GetValidationErrors(utils.ValidateStruct(&req)); len(validationErrors) > 0 {
		utils.ValidationErrorResponse(c, validationErrors)
		return
	}

	product, err := h.productService.CreateProduct(userID, &req)
	if err != nil {
		utils.BadRequestResponse(c, err.Error(), nil)
		return
	}

	utils.CreatedResponse(c, gin.H{
		"message": i18n.T(lang, i18n.KeyProductCreated),
		"product": product,
	})
}

// GET /products (admin listing, includes non-active)
func (h *ProductHandler) ListProducts(c *gin.Context) {
	params := services.ProductSearchParams{
		PaginationParams: utils.GetPaginationParams(c),
	}

	if status := c.Query("status"); status != "" {
		s := models.ProductStatus(status)
		params.Status = &s
	}
	if badge := c.Query("badge"); badge != "" {
		b := models.ProductBadge(badge)
		params.Badge = &b
	}
	params.Category = c.Query("category")
	params.Brand = c.Query("brand")

	products, total, err := h.productService.SearchProducts(params)
	if err != nil {
		utils.InternalErrorResponse(c, err.Error())
		return
	}

	result := utils.CreatePaginationResult(products, total, params.PaginationParams)
	utils.PaginatedResponse(c, result)
}

// GET /products/:id
func (h *ProductHandler) GetProduct(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		utils.BadRequestResponse(c, "Invalid product ID", nil)
		return
	}

	var userID *uuid.UUID
	if userIDStr, exists := utils.GetUserIDFromContext(c); exists {
		if parsed, err := uuid.Parse(userIDStr); err == nil {
			userID = &parsed
		}
	}

	product, err := h.productService.GetProduct(id, userID)
	if err != nil {
		utils.NotFoundResponse(c, i18n.KeyProductNotFound)
		return
	}

	utils.SuccessResponse(c, gin.H{"product": product})
}

// PUT /products/:id
func (h *ProductHandler) UpdateProduct(c *gin.Context) {
	lang := utils.GetLangFromContext(c)

	userID, ok := requireUserID(c)
	if !ok {
		return
	}

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		utils.BadRequestResponse(c, "Invalid product ID", nil)
		return
	}

	var req services.UpdateProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequestResponse(c, i18n.T(lang, i18n.KeyValidationInvalid, "input"), err.Error())
		return
	}

	if validationErrors := utils.GetValidationErrors(utils.ValidateStruct(&req)); len(validationErrors) > 0 {
		utils.ValidationErrorResponse(c, validationErrors)
		return
	}

	product, err := h.productService.UpdateProduct(id, userID, &req)
	if err != nil {
		utils.BadRequestResponse(c, err.Error(), nil)
		return
	}

	utils.SuccessResponse(c, gin.H{
		"message": i18n.T(lang, i18n.KeyProductUpdated),
		"product": product,
	})
}

// DELETE /products/:id
func (h *ProductHandler) DeleteProduct(c *gin.Context) {
	lang := utils.GetLangFromContext(c)

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		utils.BadRequestResponse(c, "Invalid product ID", nil)
		return
	}

	if err := h.productService.DeleteProduct(id); err != nil {
		utils.BadRequestResponse(c, err.Error(), nil)
		return
	}

	utils.SuccessResponse(c, gin.H{
		"message": i18n.T(lang, i18n.KeyProductDeleted),
	})
}

// POST /products/:id/like
func (h *ProductHandler) LikeProduct(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		utils.BadRequestResponse(c, "Invalid product ID", nil)
		return
	}

	if err := h.productService.LikeProduct(id); err != nil {
		utils.NotFoundResponse(c, i18n.KeyProductNotFound)
		return
	}

	utils.SuccessResponse(c, gin.H{"liked": true})
}

func requireUserID(c *gin.Context) (uuid.UUID, bool) {
	userIDStr, exists := utils.GetUserIDFromContext(c)
	if !exists {
		utils.UnauthorizedResponse(c, "")
		return uuid.Nil, false
	}
	userID, err := uuid.Parse(userIDStr)
	if err != nil {
		utils.BadRequestResponse(c, "Invalid user ID", nil)
		return uuid.Nil, false
	}
	return userID, true
}
