package app

import "invoice-desk/internal/core"

// CustomerListResult is returned by ListCustomers.
type CustomerListResult struct {
	Customers []core.Customer
}

// CustomerResult is returned by customer lookups and saves. Customer is
// nil when the lookup matched no row.
type CustomerResult struct {
	Customer *core.Customer
}

// ProductListResult is returned by ListProducts.
type ProductListResult struct {
	Products []core.Product
}

// ProductResult is returned by SaveProduct.
type ProductResult struct {
	Product *core.Product
}

// CompanyResult is returned by company profile operations.
type CompanyResult struct {
	Company *core.CompanyInfo
}

// InvoiceListResult is returned by ListInvoices.
type InvoiceListResult struct {
	Invoices []core.Invoice
}

// InvoiceResult is returned by invoice lifecycle operations. Invoice is
// nil when the target row was not found.
type InvoiceResult struct {
	Invoice *core.Invoice
}

// NextNumberResult is returned by NextInvoiceNumber.
type NextNumberResult struct {
	InvoiceNumber string
}
