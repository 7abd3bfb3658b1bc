// internal/services/pdf_service.go
package services

import (
	"bytes"
	"fmt"

	"github.com/jung-kurt/gofpdf"

	"github.com/easyfix/electrox-backend/internal/config"
	"github.com/easyfix/electrox-backend/internal/models"
)

// PDFService renders factures and proforma invoices into downloadable
// PDF documents carrying the shop letterhead.
type PDFService struct {
	config *config.Config
}

func NewPDFService(config *config.Config) *PDFService {
	return &PDFService{config: config}
}

// RenderFacture produces the final invoice PDF.
func (s *PDFService) RenderFacture(facture *models.Facture) ([]byte, error) {
	pdf := s.newDocument()

	s.writeLetterhead(pdf, fmt.Sprintf("FACTURE N° %d", facture.Number))

	// Client block
	pdf.SetFont("Arial", "B", 11)
	pdf.CellFormat(0, 6, "Client", "", 1, "L", false, 0, "")
	pdf.SetFont("Arial", "", 10)
	pdf.CellFormat(0, 5, facture.ClientName, "", 1, "L", false, 0, "")
	if facture.ClientPhone != "" {
		pdf.CellFormat(0, 5, "Tel: "+facture.ClientPhone, "", 1, "L", false, 0, "")
	}
	pdf.CellFormat(0, 5, "Date: "+facture.IssuedAt.Format("02/01/2006"), "", 1, "L", false, 0, "")
	pdf.Ln(4)

	s.writeItemsTable(pdf, facture.Items)
	s.writeTotal(pdf, facture.TotalAmount)
	s.writeFooter(pdf)

	return s.output(pdf)
}

// RenderInvoice produces the proforma PDF.
func (s *PDFService) RenderInvoice(invoice *models.Invoice) ([]byte, error) {
	pdf := s.newDocument()

	s.writeLetterhead(pdf, "FACTURE PROFORMA")

	// Client block
	pdf.SetFont("Arial", "B", 11)
	pdf.CellFormat(0, 6, "Client", "", 1, "L", false, 0, "")
	pdf.SetFont("Arial", "", 10)
	pdf.CellFormat(0, 5, invoice.ClientName, "", 1, "L", false, 0, "")
	if invoice.ClientPhone != "" {
		pdf.CellFormat(0, 5, "Tel: "+invoice.ClientPhone, "", 1, "L", false, 0, "")
	}
	if invoice.ClientTIN != "" {
		pdf.CellFormat(0, 5, "TIN: "+invoice.ClientTIN, "", 1, "L", false, 0, "")
	}
	pdf.CellFormat(0, 5, "Date: "+invoice.CreatedAt.Format("02/01/2006"), "", 1, "L", false, 0, "")
	pdf.Ln(4)

	s.writeItemsTable(pdf, invoice.Items)
	s.writeTotal(pdf, invoice.TotalAmount)

	if invoice.Notes != "" {
		pdf.Ln(4)
		pdf.SetFont("Arial", "I", 9)
		pdf.MultiCell(0, 5, "Notes: "+invoice.Notes, "", "L", false)
	}

	s.writeFooter(pdf)

	return s.output(pdf)
}

func (s *PDFService) newDocument() *gofpdf.Fpdf {
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetMargins(15, 15, 15)
	pdf.AddPage()
	return pdf
}

func (s *PDFService) writeLetterhead(pdf *gofpdf.Fpdf, title string) {
	pdf.SetFont("Arial", "B", 18)
	pdf.SetTextColor(20, 20, 20)
	pdf.CellFormat(0, 9, s.config.Shop.Name, "", 1, "L", false, 0, "")

	pdf.SetFont("Arial", "", 9)
	pdf.SetTextColor(90, 90, 90)
	pdf.CellFormat(0, 4, s.config.Shop.Address, "", 1, "L", false, 0, "")
	if s.config.Shop.Phone != "" {
		pdf.CellFormat(0, 4, "Tel: "+s.config.Shop.Phone, "", 1, "L", false, 0, "")
	}
	if s.config.Shop.TIN != "" {
		pdf.CellFormat(0, 4, "TIN: "+s.config.Shop.TIN, "", 1, "L", false, 0, "")
	}

	pdf.Ln(4)
	pdf.SetDrawColor(30, 30, 30)
	x, y := pdf.GetXY()
	pdf.Line(x, y, 195, y)
	pdf.Ln(4)

	pdf.SetFont("Arial", "B", 14)
	pdf.SetTextColor(20, 20, 20)
	pdf.CellFormat(0, 8, title, "", 1, "C", false, 0, "")
	pdf.Ln(2)
}

func (s *PDFService) writeItemsTable(pdf *gofpdf.Fpdf, items models.LineItems) {
	// Header row
	pdf.SetFillColor(40, 40, 40)
	pdf.SetTextColor(255, 255, 255)
	pdf.SetFont("Arial", "B", 10)
	pdf.CellFormat(90, 8, "Description", "1", 0, "L", true, 0, "")
	pdf.CellFormat(25, 8, "Qty", "1", 0, "C", true, 0, "")
	pdf.CellFormat(32, 8, "Unit Price", "1", 0, "R", true, 0, "")
	pdf.CellFormat(33, 8, "Total", "1", 1, "R", true, 0, "")

	// Item rows
	pdf.SetTextColor(20, 20, 20)
	pdf.SetFont("Arial", "", 10)
	fill := false
	for _, item := range items {
		pdf.SetFillColor(245, 245, 245)
		pdf.CellFormat(90, 7, item.Description, "1", 0, "L", fill, 0, "")
		pdf.CellFormat(25, 7, formatQuantity(item.Quantity), "1", 0, "C", fill, 0, "")
		pdf.CellFormat(32, 7, s.formatAmount(item.UnitPrice), "1", 0, "R", fill, 0, "")
		pdf.CellFormat(33, 7, s.formatAmount(item.TotalPrice), "1", 1, "R", fill, 0, "")
		fill = !fill
	}
}

func (s *PDFService) writeTotal(pdf *gofpdf.Fpdf, total float64) {
	pdf.SetFont("Arial", "B", 11)
	pdf.CellFormat(147, 9, "TOTAL", "1", 0, "R", false, 0, "")
	pdf.CellFormat(33, 9, s.formatAmount(total), "1", 1, "R", false, 0, "")
}

func (s *PDFService) writeFooter(pdf *gofpdf.Fpdf) {
	pdf.Ln(10)
	pdf.SetFont("Arial", "I", 8)
	pdf.SetTextColor(120, 120, 120)
	pdf.CellFormat(0, 5, "Merci pour votre confiance / Thank you for your business", "", 1, "C", false, 0, "")
}

func (s *PDFService) formatAmount(amount float64) string {
	return fmt.Sprintf("%.0f %s", amount, s.config.Shop.Currency)
}

func formatQuantity(q float64) string {
	if q == float64(int64(q)) {
		return fmt.Sprintf("%d", int64(q))
	}
	return fmt.Sprintf("%.2f", q)
}

func (s *PDFService) output(pdf *gofpdf.Fpdf) ([]byte, error) {
	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("failed to render PDF: %w", err)
	}
	return buf.Bytes(), nil
}
