package app

import "context"

// ApplicationService is the single interface all delivery adapters call.
// It decouples presentation from business logic; implementations contain
// no display logic of any kind.
//
// ownerID is the authenticated owner's identity (empty when the request is
// unauthenticated). Reads with no owner return empty results; writes fail
// with core.ErrNotAuthenticated.
type ApplicationService interface {
	// ListCustomers returns the owner's customers, ordered by name.
	ListCustomers(ctx context.Context, ownerID string) (*CustomerListResult, error)

	// GetCustomer returns one customer, or a nil-valued result when missing.
	GetCustomer(ctx context.Context, ownerID, id string) (*CustomerResult, error)

	// SaveCustomer inserts or updates a customer.
	SaveCustomer(ctx context.Context, ownerID string, req SaveCustomerRequest) (*CustomerResult, error)

	// DeleteCustomer removes a customer. Invoices referencing it remain in
	// storage but disappear from subsequent invoice listings.
	DeleteCustomer(ctx context.Context, ownerID, id string) error

	// ListProducts returns the owner's products, ordered by name.
	ListProducts(ctx context.Context, ownerID string) (*ProductListResult, error)

	// GetProduct returns one product, or a nil-valued result when missing.
	GetProduct(ctx context.Context, ownerID, id string) (*ProductResult, error)

	// SaveProduct inserts or updates a product template.
	SaveProduct(ctx context.Context, ownerID string, req SaveProductRequest) (*ProductResult, error)

	DeleteProduct(ctx context.Context, ownerID, id string) error

	// GetCompanyInfo returns the owner's company profile, falling back to
	// the built-in defaults for new owners.
	GetCompanyInfo(ctx context.Context, ownerID string) (*CompanyResult, error)

	// SaveCompanyInfo upserts the singleton company profile.
	SaveCompanyInfo(ctx context.Context, ownerID string, req SaveCompanyRequest) (*CompanyResult, error)

	// ListInvoices returns assembled invoices, newest number first.
	ListInvoices(ctx context.Context, ownerID string) (*InvoiceListResult, error)

	// GetInvoice returns one assembled invoice, or a nil-valued result.
	GetInvoice(ctx context.Context, ownerID, id string) (*InvoiceResult, error)

	// SaveInvoice validates the editor input, computes totals, resolves
	// the status and persists the invoice.
	SaveInvoice(ctx context.Context, ownerID string, req SaveInvoiceRequest) (*InvoiceResult, error)

	DeleteInvoice(ctx context.Context, ownerID, id string) error

	// UpdateInvoiceStatus persists an explicit status transition verbatim.
	UpdateInvoiceStatus(ctx context.Context, ownerID, id, status string) (*InvoiceResult, error)

	// NextInvoiceNumber allocates the next sequential invoice number.
	NextInvoiceNumber(ctx context.Context, ownerID string) (*NextNumberResult, error)

	// GenerateInvoice sends the editor draft through the drafting service,
	// recomputes the monetary totals from the returned items, and saves
	// the result as a regular invoice.
	GenerateInvoice(ctx context.Context, ownerID string, req GenerateInvoiceRequest) (*InvoiceResult, error)
}
