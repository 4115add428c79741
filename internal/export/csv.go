package export

import (
	"encoding/csv"
	"fmt"
	"io"
	"time"

	"invoice-desk/internal/core"
)

// utf8BOM makes spreadsheet applications detect the encoding correctly.
var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

const csvDateFormat = "02 Jan 2006"

// WriteInvoicesCSV serialises the invoice list to CSV: one row per invoice
// with number, customer name, formatted dates, total and status. Fields
// containing quotes, commas or newlines are quoted per standard CSV rules.
func WriteInvoicesCSV(w io.Writer, invoices []core.Invoice) error {
	if _, err := w.Write(utf8BOM); err != nil {
		return fmt.Errorf("write BOM: %w", err)
	}

	writer := csv.NewWriter(w)
	defer writer.Flush()

	if err := writer.Write([]string{"Invoice #", "Customer", "Invoice Date", "Due Date", "Amount", "Status"}); err != nil {
		return err
	}
	for _, inv := range invoices {
		customerName := ""
		if inv.Customer != nil {
			customerName = inv.Customer.Name
		}
		if err := writer.Write([]string{
			inv.InvoiceNumber,
			customerName,
			formatCSVDate(inv.InvoiceDate),
			formatCSVDate(inv.DueDate),
			inv.TotalAmount.StringFixed(2),
			string(inv.Status),
		}); err != nil {
			return err
		}
	}
	writer.Flush()
	return writer.Error()
}

func formatCSVDate(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.Format(csvDateFormat)
}
