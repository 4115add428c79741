package core

import (
	"strconv"
	"strings"

	"github.com/shopspring/decimal"
)

// LineInput is a raw, unvalidated line item as entered in the editor.
// Price and quantity arrive as free text.
type LineInput struct {
	Name      string
	UnitPrice string
	Quantity  string
}

// Totals holds the derived monetary amounts of an invoice.
type Totals struct {
	Subtotal  decimal.Decimal
	TaxAmount decimal.Decimal
	Total     decimal.Decimal
}

// ParseAmount returns the decimal value of s. Anything that does not parse
// as a number is treated as zero.
func ParseAmount(s string) decimal.Decimal {
	d, err := decimal.NewFromString(strings.TrimSpace(s))
	if err != nil {
		return decimal.Zero
	}
	return d
}

// ParseQuantity returns the integer value of s, or zero when s is not an
// integer.
func ParseQuantity(s string) int64 {
	n, err := strconv.ParseInt(strings.TrimSpace(s), 10, 64)
	if err != nil {
		return 0
	}
	return n
}

// BuildItems converts raw line inputs into invoice items, computing each
// line total as unit price times quantity.
func BuildItems(inputs []LineInput) []InvoiceItem {
	items := make([]InvoiceItem, 0, len(inputs))
	for _, in := range inputs {
		price := ParseAmount(in.UnitPrice)
		qty := ParseQuantity(in.Quantity)
		items = append(items, InvoiceItem{
			Name:      strings.TrimSpace(in.Name),
			UnitPrice: price,
			Quantity:  qty,
			LineTotal: price.Mul(decimal.NewFromInt(qty)),
		})
	}
	return items
}

// ComputeTotals derives subtotal, tax amount and grand total from the given
// items and a flat tax percentage. Arithmetic is exact decimal; there is no
// rounding step, so Subtotal + TaxAmount always equals Total exactly.
func ComputeTotals(items []InvoiceItem, taxPercent decimal.Decimal) Totals {
	subtotal := decimal.Zero
	for _, it := range items {
		subtotal = subtotal.Add(it.UnitPrice.Mul(decimal.NewFromInt(it.Quantity)))
	}
	taxAmount := subtotal.Mul(taxPercent).Div(decimal.NewFromInt(100))
	return Totals{
		Subtotal:  subtotal,
		TaxAmount: taxAmount,
		Total:     subtotal.Add(taxAmount),
	}
}
