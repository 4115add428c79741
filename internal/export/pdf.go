package export

import (
	"fmt"
	"io"

	"invoice-desk/internal/core"

	"github.com/jung-kurt/gofpdf"
)

const pdfDateFormat = "02 Jan 2006"

// WriteInvoicePDF renders a fixed A4 invoice layout: header with number and
// dates, company block on the right, bill-to block, item table, totals
// block and a notes footer.
func WriteInvoicePDF(w io.Writer, inv core.Invoice, company core.CompanyInfo) error {
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.AddPage()
	pageWidth, _ := pdf.GetPageSize()
	margin := 15.0
	usable := pageWidth - 2*margin

	// Header
	pdf.SetFont("Helvetica", "B", 22)
	pdf.Text(margin, 25, "Invoice")
	pdf.SetFont("Helvetica", "", 10)
	pdf.Text(margin, 32, "Invoice #: "+inv.InvoiceNumber)
	pdf.Text(margin, 37, "Date: "+inv.InvoiceDate.Format(pdfDateFormat))
	pdf.Text(margin, 42, "Due: "+inv.DueDate.Format(pdfDateFormat))

	// Company (from) block, right aligned
	pdf.SetFont("Helvetica", "B", 12)
	pdf.SetXY(margin, 20)
	pdf.CellFormat(usable, 5, company.Name, "", 1, "R", false, 0, "")
	pdf.SetFont("Helvetica", "", 10)
	pdf.SetX(margin)
	pdf.CellFormat(usable, 5, company.Address, "", 1, "R", false, 0, "")
	pdf.SetX(margin)
	pdf.CellFormat(usable, 5, company.Phone, "", 1, "R", false, 0, "")
	pdf.SetX(margin)
	pdf.CellFormat(usable, 5, "GSTIN: "+company.GSTIN, "", 1, "R", false, 0, "")

	pdf.SetDrawColor(200, 200, 200)
	pdf.Line(margin, 48, pageWidth-margin, 48)

	// Bill-to block
	y := 55.0
	pdf.SetFont("Helvetica", "B", 11)
	pdf.Text(margin, y, "Bill To")
	pdf.SetFont("Helvetica", "", 10)
	if inv.Customer != nil {
		pdf.Text(margin, y+6, inv.Customer.Name)
		pdf.Text(margin, y+11, inv.Customer.Address)
		pdf.Text(margin, y+16, inv.Customer.Phone)
		if inv.Customer.GSTIN != "" {
			pdf.Text(margin, y+21, "GSTIN: "+inv.Customer.GSTIN)
		}
	}

	// Item table
	y = 85.0
	colItem := usable * 0.5
	colQty := usable * 0.12
	colPrice := usable * 0.19
	colTotal := usable * 0.19

	pdf.SetXY(margin, y)
	pdf.SetFont("Helvetica", "B", 10)
	pdf.SetFillColor(240, 240, 240)
	pdf.CellFormat(colItem, 8, "Item", "1", 0, "L", true, 0, "")
	pdf.CellFormat(colQty, 8, "Qty", "1", 0, "R", true, 0, "")
	pdf.CellFormat(colPrice, 8, "Unit Price", "1", 0, "R", true, 0, "")
	pdf.CellFormat(colTotal, 8, "Line Total", "1", 1, "R", true, 0, "")

	pdf.SetFont("Helvetica", "", 10)
	for _, item := range inv.Items {
		pdf.SetX(margin)
		pdf.CellFormat(colItem, 7, item.Name, "1", 0, "L", false, 0, "")
		pdf.CellFormat(colQty, 7, fmt.Sprintf("%d", item.Quantity), "1", 0, "R", false, 0, "")
		pdf.CellFormat(colPrice, 7, item.UnitPrice.StringFixed(2), "1", 0, "R", false, 0, "")
		pdf.CellFormat(colTotal, 7, item.LineTotal.StringFixed(2), "1", 1, "R", false, 0, "")
	}

	// Totals block
	labelWidth := colItem + colQty
	pdf.SetX(margin)
	pdf.CellFormat(labelWidth, 7, "", "", 0, "L", false, 0, "")
	pdf.CellFormat(colPrice, 7, "Subtotal", "1", 0, "R", false, 0, "")
	pdf.CellFormat(colTotal, 7, inv.Subtotal.StringFixed(2), "1", 1, "R", false, 0, "")
	pdf.SetX(margin)
	pdf.CellFormat(labelWidth, 7, "", "", 0, "L", false, 0, "")
	pdf.CellFormat(colPrice, 7, "Tax ("+inv.TaxPercent.String()+"%)", "1", 0, "R", false, 0, "")
	pdf.CellFormat(colTotal, 7, inv.TaxAmount.StringFixed(2), "1", 1, "R", false, 0, "")
	pdf.SetFont("Helvetica", "B", 10)
	pdf.SetX(margin)
	pdf.CellFormat(labelWidth, 8, "", "", 0, "L", false, 0, "")
	pdf.CellFormat(colPrice, 8, "Total", "1", 0, "R", false, 0, "")
	pdf.CellFormat(colTotal, 8, inv.TotalAmount.StringFixed(2), "1", 1, "R", false, 0, "")

	// Notes footer
	if inv.Notes != "" {
		pdf.Ln(8)
		pdf.SetX(margin)
		pdf.SetFont("Helvetica", "B", 10)
		pdf.CellFormat(usable, 6, "Notes", "", 1, "L", false, 0, "")
		pdf.SetX(margin)
		pdf.SetFont("Helvetica", "", 9)
		pdf.MultiCell(usable, 5, inv.Notes, "", "L", false)
	}

	if err := pdf.Output(w); err != nil {
		return fmt.Errorf("render invoice pdf: %w", err)
	}
	return nil
}
