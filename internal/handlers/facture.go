// internal/handlers/facture.go
package handlers

import (
	"fmt"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/easyfix/electrox-backend/internal/i18n"
	"github.com/easyfix/electrox-backend/internal/services"
	"github.com/easyfix/electrox-backend/internal/utils"
)

type FactureHandler struct {
	factureService *services.FactureService
	pdfService     *services.PDFService
}

func NewFactureHandler(factureService *services.FactureService, pdfService *services.PDFService) *FactureHandler {
	return &FactureHandler{
		factureService: factureService,
		pdfService:     pdfService,
	}
}

// POST /factures
func (h *FactureHandler) CreateFacture(c *gin.Context) {
	lang := utils.GetLangFromContext(c)

	var req services.CreateFactureRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequestResponse(c, i18n.T(lang, i18n.KeyValidationInvalid, "input"), err.Error())
		return
	}

	if validationErrors := utils.GetValidationErrors(utils.ValidateStruct(&req)); len(validationErrors) > 0 {
		utils.ValidationErrorResponse(c, validationErrors)
		return
	}

	facture, err := h.factureService.CreateFacture(&req)
	if err != nil {
		utils.BadRequestResponse(c, err.Error(), nil)
		return
	}

	utils.CreatedResponse(c, gin.H{
		"message": i18n.T(lang, i18n.KeyFactureCreated),
		"facture": facture,
	})
}

// GET /factures
func (h *FactureHandler) ListFactures(c *gin.Context) {
	params := utils.GetPaginationParams(c)

	factures, total, err := h.factureService.ListFactures(params)
	if err != nil {
		utils.InternalErrorResponse(c, err.Error())
		return
	}

	result := utils.CreatePaginationResult(factures, total, params)
	utils.PaginatedResponse(c, result)
}

// GET /factures/:id
func (h *FactureHandler) GetFacture(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		utils.BadRequestResponse(c, "Invalid facture ID", nil)
		return
	}

	facture, err := h.factureService.GetFacture(id)
	if err != nil {
		utils.NotFoundResponse(c, i18n.KeyFactureNotFound)
		return
	}

	utils.SuccessResponse(c, gin.H{"facture": facture})
}

// PUT /factures/:id
func (h *FactureHandler) UpdateFacture(c *gin.Context) {
	lang := utils.GetLangFromContext(c)

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		utils.BadRequestResponse(c, "Invalid facture ID", nil)
		return
	}

	var req services.UpdateFactureRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequestResponse(c, i18n.T(lang, i18n.KeyValidationInvalid, "input"), err.Error())
		return
	}

	if validationErrors := utils.GetValidationErrors(utils.ValidateStruct(&req)); len(validationErrors) > 0 {
		utils.ValidationErrorResponse(c, validationErrors)
		return
	}

	facture, err := h.factureService.UpdateFacture(id, &req)
	if err != nil {
		utils.BadRequestResponse(c, err.Error(), nil)
		return
	}

	utils.SuccessResponse(c, gin.H{
		"message": i18n.T(lang, i18n.KeyFactureUpdated),
		"facture": facture,
	})
}

// DELETE /factures/:id
func (h *FactureHandler) DeleteFacture(c *gin.Context) {
	lang := utils.GetLangFromContext(c)

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		utils.BadRequestResponse(c, "Invalid facture ID", nil)
		return
	}

	if err := h.factureService.DeleteFacture(id); err != nil {
		utils.NotFoundResponse(c, i18n.KeyFactureNotFound)
		return
	}

	utils.SuccessResponse(c, gin.H{
		"message": i18n.T(lang, i18n.KeyFactureDeleted),
	})
}

// GET /factures/:id/pdf
func (h *FactureHandler) DownloadPDF(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		utils.BadRequestResponse(c, "Invalid facture ID", nil)
		return
	}

	facture, err := h.factureService.GetFacture(id)
	if err != nil {
		utils.NotFoundResponse(c, i18n.KeyFactureNotFound)
		return
	}

	pdfBytes, err := h.pdfService.RenderFacture(facture)
	if err != nil {
		utils.InternalErrorResponse(c, err.Error())
		return
	}

	filename := fmt.Sprintf("facture-%d.pdf", facture.Number)
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	c.Data(200, "application/pdf", pdfBytes)
}
