// internal/handlers/invoice.go
package handlers

import (
	"fmt"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/easyfix/electrox-backend/internal/i18n"
	"github.com/easyfix/electrox-backend/internal/services"
	"github.com/easyfix/electrox-backend/internal/utils"
)

type InvoiceHandler struct {
	invoiceService *services.InvoiceService
	pdfService     *services.PDFService
}

func NewInvoiceHandler(invoiceService *services.InvoiceService, pdfService *services.PDFService) *InvoiceHandler {
	return &InvoiceHandler{
		invoiceService: invoiceService,
		pdfService:     pdfService,
	}
}

// POST /invoices
func (h *InvoiceHandler) CreateInvoice(c *gin.Context) {
	lang := utils.GetLangFromContext(c)

	var req services.CreateInvoiceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequestResponse(c, i18n.T(lang, i18n.KeyValidationInvalid, "input"), err.Error())
		return
	}

	if validationErrors := utils.GetValidationErrors(utils.ValidateStruct(&req)); len(validationErrors) > 0 {
		utils.ValidationErrorResponse(c, validationErrors)
		return
	}

	invoice, err := h.invoiceService.CreateInvoice(&req)
	if err != nil {
		utils.BadRequestResponse(c, err.Error(), nil)
		return
	}

	utils.CreatedResponse(c, gin.H{
		"message": i18n.T(lang, i18n.KeyInvoiceCreated),
		"invoice": invoice,
	})
}

// GET /invoices
func (h *InvoiceHandler) ListInvoices(c *gin.Context) {
	params := utils.GetPaginationParams(c)

	invoices, total, err := h.invoiceService.ListInvoices(params)
	if err != nil {
		utils.InternalErrorResponse(c, err.Error())
		return
	}

	result := utils.CreatePaginationResult(invoices, total, params)
	utils.PaginatedResponse(c, result)
}

// GET /invoices/:id
func (h *InvoiceHandler) GetInvoice(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		utils.BadRequestResponse(c, "Invalid invoice ID", nil)
		return
	}

	invoice, err := h.invoiceService.GetInvoice(id)
	if err != nil {
		utils.NotFoundResponse(c, i18n.KeyInvoiceNotFound)
		return
	}

	utils.SuccessResponse(c, gin.H{"invoice": invoice})
}

// PUT /invoices/:id
func (h *InvoiceHandler) UpdateInvoice(c *gin.Context) {
	lang := utils.GetLangFromContext(c)

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		utils.BadRequestResponse(c, "Invalid invoice ID", nil)
		return
	}

	var req services.UpdateInvoiceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequestResponse(c, i18n.T(lang, i18n.KeyValidationInvalid, "input"), err.Error())
		return
	}

	if validationErrors := utils.GetValidationErrors(utils.ValidateStruct(&req)); len(validationErrors) > 0 {
		utils.ValidationErrorResponse(c, validationErrors)
		return
	}

	invoice, err := h.invoiceService.UpdateInvoice(id, &req)
	if err != nil {
		utils.BadRequestResponse(c, err.Error(), nil)
		return
	}

	utils.SuccessResponse(c, gin.H{
		"message": i18n.T(lang, i18n.KeyInvoiceUpdated),
		"invoice": invoice,
	})
}

// DELETE /invoices/:id
func (h *InvoiceHandler) DeleteInvoice(c *gin.Context) {
	lang := utils.GetLangFromContext(c)

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		utils.BadRequestResponse(c, "Invalid invoice ID", nil)
		return
	}

	if err := h.invoiceService.DeleteInvoice(id); err != nil {
		utils.NotFoundResponse(c, i18n.KeyInvoiceNotFound)
		return
	}

	utils.SuccessResponse(c, gin.H{
		"message": i18n.T(lang, i18n.KeyInvoiceDeleted),
	})
}

// GET /invoices/:id/pdf
func (h *InvoiceHandler) DownloadPDF(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		utils.BadRequestResponse(c, "Invalid invoice ID", nil)
		return
	}

	invoice, err := h.invoiceService.GetInvoice(id)
	if err != nil {
		utils.NotFoundResponse(c, i18n.KeyInvoiceNotFound)
		return
	}

	pdfBytes, err := h.pdfService.RenderInvoice(invoice)
	if err != nil {
		utils.InternalErrorResponse(c, err.Error())
		return
	}

	filename := fmt.Sprintf("proforma-%s.pdf", invoice.ID)
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	c.Data(200, "application/pdf", pdfBytes)
}
