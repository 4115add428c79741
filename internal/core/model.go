package core

import (
	"time"

	"github.com/shopspring/decimal"
)

type InvoiceStatus string

const (
	StatusDraft   InvoiceStatus = "Draft"
	StatusUnpaid  InvoiceStatus = "Unpaid"
	StatusPaid    InvoiceStatus = "Paid"
	StatusOverdue InvoiceStatus = "Overdue"
)

// ValidStatus reports whether s is one of the four invoice statuses.
func ValidStatus(s InvoiceStatus) bool {
	switch s {
	case StatusDraft, StatusUnpaid, StatusPaid, StatusOverdue:
		return true
	}
	return false
}

type Customer struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Address   string    `json:"address"`
	Phone     string    `json:"phone"`
	GSTIN     string    `json:"gstin"`
	UserID    string    `json:"user_id,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

// Product is a pricing template for composing invoice line items.
// Edits to a product never propagate to invoices already created from it.
type Product struct {
	ID        string          `json:"id"`
	Name      string          `json:"name"`
	UnitPrice decimal.Decimal `json:"unit_price"`
	UserID    string          `json:"user_id,omitempty"`
	CreatedAt time.Time       `json:"created_at"`
}

// CompanyInfo is the singleton-per-owner "from" party printed on invoices.
type CompanyInfo struct {
	ID        int64     `json:"id"`
	Name      string    `json:"name"`
	Address   string    `json:"address"`
	Phone     string    `json:"phone"`
	GSTIN     string    `json:"gstin"`
	UserID    string    `json:"user_id,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

// InvoiceItem is one priced, quantified line on an invoice. Items are not
// independently persisted; they live as an ordered JSONB sequence inside
// the invoice row.
type InvoiceItem struct {
	Name      string          `json:"name"`
	UnitPrice decimal.Decimal `json:"unit_price"`
	Quantity  int64           `json:"quantity"`
	LineTotal decimal.Decimal `json:"line_total"`
}

// Invoice is the denormalized view the rest of the application consumes:
// the stored row paired with its owning customer.
type Invoice struct {
	ID            string          `json:"id"`
	InvoiceNumber string          `json:"invoice_number"`
	InvoiceDate   time.Time       `json:"invoice_date"`
	DueDate       time.Time       `json:"due_date"`
	CustomerID    string          `json:"customer_id"`
	Customer      *Customer       `json:"customer,omitempty"`
	Items         []InvoiceItem   `json:"items"`
	Subtotal      decimal.Decimal `json:"subtotal"`
	TaxPercent    decimal.Decimal `json:"tax_percent"`
	TaxAmount     decimal.Decimal `json:"tax_amount"`
	TotalAmount   decimal.Decimal `json:"total_amount"`
	Notes         string          `json:"notes"`
	Status        InvoiceStatus   `json:"status"`
	UserID        string          `json:"user_id,omitempty"`
	CreatedAt     time.Time       `json:"created_at"`
}

// SaveCustomerRequest carries only the normalized customer fields.
// An empty ID means insert; otherwise update by ID and owner.
type SaveCustomerRequest struct {
	ID      string
	Name    string
	Address string
	Phone   string
	GSTIN   string
}

// SaveProductRequest carries only the normalized product fields.
type SaveProductRequest struct {
	ID        string
	Name      string
	UnitPrice decimal.Decimal
}

// SaveCompanyRequest carries only the normalized company profile fields.
type SaveCompanyRequest struct {
	Name    string
	Address string
	Phone   string
	GSTIN   string
}

// SaveInvoiceRequest is the explicit write-path shape for an invoice: only
// normalized storage fields, no view-model extras. The owner reference is
// injected by the service, never by the caller.
type SaveInvoiceRequest struct {
	ID            string // empty means insert
	InvoiceNumber string
	InvoiceDate   time.Time
	DueDate       time.Time
	CustomerID    string
	Items         []InvoiceItem
	Subtotal      decimal.Decimal
	TaxPercent    decimal.Decimal
	TaxAmount     decimal.Decimal
	TotalAmount   decimal.Decimal
	Notes         string
	Status        StatusInput
}
