package core

import (
	"fmt"
	"strconv"
	"strings"
)

const invoiceNumberPrefix = "INV"

// FormatInvoiceNumber renders an invoice number as INV-<year>-<seq> with the
// sequence zero-padded to three digits. Sequences past 999 simply grow wider.
func FormatInvoiceNumber(year int, seq int64) string {
	return fmt.Sprintf("%s-%d-%03d", invoiceNumberPrefix, year, seq)
}

// FirstInvoiceNumber is the number allocated when an owner has no prior
// invoices, or when the previous number cannot be parsed.
func FirstInvoiceNumber(year int) string {
	return FormatInvoiceNumber(year, 1)
}

// NextInvoiceNumberAfter increments the trailing numeric segment of the
// most recent invoice number and stamps it with the given calendar year.
// The sequence deliberately continues from the latest row regardless of
// which year that row belongs to; only the prefix tracks the current year.
// An unparseable previous number restarts the sequence at 001.
func NextInvoiceNumberAfter(previous string, year int) string {
	idx := strings.LastIndex(previous, "-")
	if idx < 0 || idx == len(previous)-1 {
		return FirstInvoiceNumber(year)
	}
	last, err := strconv.ParseInt(previous[idx+1:], 10, 64)
	if err != nil {
		return FirstInvoiceNumber(year)
	}
	return FormatInvoiceNumber(year, last+1)
}
