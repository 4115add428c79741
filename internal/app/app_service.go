package app

import (
	"context"
	"fmt"
	"time"

	"invoice-desk/internal/ai"
	"invoice-desk/internal/core"
)

type appService struct {
	customers core.CustomerService
	products  core.ProductService
	company   core.CompanyService
	invoices  core.InvoiceService
	drafter   ai.InvoiceDrafter
}

// NewAppService constructs an appService that satisfies ApplicationService.
func NewAppService(
	customers core.CustomerService,
	products core.ProductService,
	company core.CompanyService,
	invoices core.InvoiceService,
	drafter ai.InvoiceDrafter,
) ApplicationService {
	return &appService{
		customers: customers,
		products:  products,
		company:   company,
		invoices:  invoices,
		drafter:   drafter,
	}
}

func (s *appService) ListCustomers(ctx context.Context, ownerID string) (*CustomerListResult, error) {
	customers, err := s.customers.GetCustomers(ctx, ownerID)
	if err != nil {
		return nil, err
	}
	return &CustomerListResult{Customers: customers}, nil
}

func (s *appService) GetCustomer(ctx context.Context, ownerID, id string) (*CustomerResult, error) {
	customer, err := s.customers.GetCustomerByID(ctx, ownerID, id)
	if err != nil {
		return nil, err
	}
	return &CustomerResult{Customer: customer}, nil
}

func (s *appService) SaveCustomer(ctx context.Context, ownerID string, req SaveCustomerRequest) (*CustomerResult, error) {
	customer, err := s.customers.SaveCustomer(ctx, ownerID, core.SaveCustomerRequest{
		ID:      req.ID,
		Name:    req.Name,
		Address: req.Address,
		Phone:   req.Phone,
		GSTIN:   req.GSTIN,
	})
	if err != nil {
		return nil, err
	}
	return &CustomerResult{Customer: customer}, nil
}

func (s *appService) DeleteCustomer(ctx context.Context, ownerID, id string) error {
	return s.customers.DeleteCustomer(ctx, ownerID, id)
}

func (s *appService) ListProducts(ctx context.Context, ownerID string) (*ProductListResult, error) {
	products, err := s.products.GetProducts(ctx, ownerID)
	if err != nil {
		return nil, err
	}
	return &ProductListResult{Products: products}, nil
}

func (s *appService) GetProduct(ctx context.Context, ownerID, id string) (*ProductResult, error) {
	product, err := s.products.GetProductByID(ctx, ownerID, id)
	if err != nil {
		return nil, err
	}
	return &ProductResult{Product: product}, nil
}

func (s *appService) SaveProduct(ctx context.Context, ownerID string, req SaveProductRequest) (*ProductResult, error) {
	product, err := s.products.SaveProduct(ctx, ownerID, core.SaveProductRequest{
		ID:        req.ID,
		Name:      req.Name,
		UnitPrice: core.ParseAmount(req.UnitPrice),
	})
	if err != nil {
		return nil, err
	}
	return &ProductResult{Product: product}, nil
}

func (s *appService) DeleteProduct(ctx context.Context, ownerID, id string) error {
	return s.products.DeleteProduct(ctx, ownerID, id)
}

func (s *appService) GetCompanyInfo(ctx context.Context, ownerID string) (*CompanyResult, error) {
	company, err := s.company.GetCompanyInfo(ctx, ownerID)
	if err != nil {
		return nil, err
	}
	return &CompanyResult{Company: company}, nil
}

func (s *appService) SaveCompanyInfo(ctx context.Context, ownerID string, req SaveCompanyRequest) (*CompanyResult, error) {
	company, err := s.company.SaveCompanyInfo(ctx, ownerID, core.SaveCompanyRequest{
		Name:    req.Name,
		Address: req.Address,
		Phone:   req.Phone,
		GSTIN:   req.GSTIN,
	})
	if err != nil {
		return nil, err
	}
	return &CompanyResult{Company: company}, nil
}

func (s *appService) ListInvoices(ctx context.Context, ownerID string) (*InvoiceListResult, error) {
	invoices, err := s.invoices.GetInvoices(ctx, ownerID)
	if err != nil {
		return nil, err
	}
	return &InvoiceListResult{Invoices: invoices}, nil
}

func (s *appService) GetInvoice(ctx context.Context, ownerID, id string) (*InvoiceResult, error) {
	invoice, err := s.invoices.GetInvoiceByID(ctx, ownerID, id)
	if err != nil {
		return nil, err
	}
	return &InvoiceResult{Invoice: invoice}, nil
}

func (s *appService) SaveInvoice(ctx context.Context, ownerID string, req SaveInvoiceRequest) (*InvoiceResult, error) {
	saveReq, err := buildSaveRequest(req.ID, req.InvoiceNumber, req.InvoiceDate, req.DueDate,
		req.CustomerID, req.Items, req.TaxPercent, req.Notes, req.Status)
	if err != nil {
		return nil, err
	}

	invoice, err := s.invoices.SaveInvoice(ctx, ownerID, saveReq)
	if err != nil {
		return nil, err
	}
	return &InvoiceResult{Invoice: invoice}, nil
}

func (s *appService) DeleteInvoice(ctx context.Context, ownerID, id string) error {
	return s.invoices.DeleteInvoice(ctx, ownerID, id)
}

func (s *appService) UpdateInvoiceStatus(ctx context.Context, ownerID, id, status string) (*InvoiceResult, error) {
	invoice, err := s.invoices.UpdateInvoiceStatus(ctx, ownerID, id, core.InvoiceStatus(status))
	if err != nil {
		return nil, err
	}
	return &InvoiceResult{Invoice: invoice}, nil
}

func (s *appService) NextInvoiceNumber(ctx context.Context, ownerID string) (*NextNumberResult, error) {
	number, err := s.invoices.NextInvoiceNumber(ctx, ownerID)
	if err != nil {
		return nil, err
	}
	return &NextNumberResult{InvoiceNumber: number}, nil
}

func (s *appService) GenerateInvoice(ctx context.Context, ownerID string, req GenerateInvoiceRequest) (*InvoiceResult, error) {
	customer, err := s.customers.GetCustomerByID(ctx, ownerID, req.CustomerID)
	if err != nil {
		return nil, err
	}
	if customer == nil {
		return nil, fmt.Errorf("generate invoice: customer %s not found", req.CustomerID)
	}

	lines := make([]core.LineInput, len(req.Items))
	for i, item := range req.Items {
		lines[i] = core.LineInput{Name: item.Name, UnitPrice: item.UnitPrice, Quantity: item.Quantity}
	}

	draft, err := s.drafter.DraftInvoice(ctx, ai.DraftRequest{
		Customer:      *customer,
		Items:         lines,
		InvoiceNumber: req.InvoiceNumber,
		InvoiceDate:   req.InvoiceDate,
		DueDate:       req.DueDate,
		TaxPercent:    req.TaxPercent,
		Notes:         req.Notes,
	})
	if err != nil {
		return nil, fmt.Errorf("drafting service: %w", err)
	}

	// The drafting service is opaque: rebuild the items and totals from
	// its output so the monetary invariants hold no matter what it said.
	draftLines := make([]core.LineInput, len(draft.Items))
	for i, item := range draft.Items {
		draftLines[i] = core.LineInput{
			Name:      item.Name,
			UnitPrice: item.UnitPrice,
			Quantity:  fmt.Sprintf("%d", item.Quantity),
		}
	}

	saveReq, err := buildSaveRequest(req.ID, draft.InvoiceNumber, draft.InvoiceDate, draft.DueDate,
		req.CustomerID, nil, draft.TaxPercent, draft.Notes, req.Status)
	if err != nil {
		return nil, err
	}
	items := core.BuildItems(draftLines)
	totals := core.ComputeTotals(items, core.ParseAmount(draft.TaxPercent))
	saveReq.Items = items
	saveReq.Subtotal = totals.Subtotal
	saveReq.TaxAmount = totals.TaxAmount
	saveReq.TotalAmount = totals.Total

	invoice, err := s.invoices.SaveInvoice(ctx, ownerID, saveReq)
	if err != nil {
		return nil, err
	}
	return &InvoiceResult{Invoice: invoice}, nil
}

// buildSaveRequest parses editor input into the normalized core save shape,
// computing line totals and monetary totals along the way.
func buildSaveRequest(id, number, invoiceDate, dueDate, customerID string,
	items []LineItemInput, taxPercent, notes, status string) (core.SaveInvoiceRequest, error) {

	invDate, err := parseDate("invoice date", invoiceDate)
	if err != nil {
		return core.SaveInvoiceRequest{}, err
	}
	due, err := parseDate("due date", dueDate)
	if err != nil {
		return core.SaveInvoiceRequest{}, err
	}

	statusInput := core.DeriveStatus()
	if status != "" {
		if !core.ValidStatus(core.InvoiceStatus(status)) {
			return core.SaveInvoiceRequest{}, fmt.Errorf("invalid invoice status %q", status)
		}
		statusInput = core.ExplicitStatus(core.InvoiceStatus(status))
	}

	lines := make([]core.LineInput, len(items))
	for i, item := range items {
		lines[i] = core.LineInput{Name: item.Name, UnitPrice: item.UnitPrice, Quantity: item.Quantity}
	}
	built := core.BuildItems(lines)
	pct := core.ParseAmount(taxPercent)
	totals := core.ComputeTotals(built, pct)

	return core.SaveInvoiceRequest{
		ID:            id,
		InvoiceNumber: number,
		InvoiceDate:   invDate,
		DueDate:       due,
		CustomerID:    customerID,
		Items:         built,
		Subtotal:      totals.Subtotal,
		TaxPercent:    pct,
		TaxAmount:     totals.TaxAmount,
		TotalAmount:   totals.Total,
		Notes:         notes,
		Status:        statusInput,
	}, nil
}

func parseDate(field, value string) (time.Time, error) {
	t, err := time.Parse("2006-01-02", value)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid %s %q: %w", field, value, err)
	}
	return t, nil
}
