package app_test

import (
	"context"
	"fmt"
	"testing"

	"invoice-desk/internal/ai"
	"invoice-desk/internal/app"
	"invoice-desk/internal/core"

	"github.com/shopspring/decimal"
)

type fakeCustomers struct {
	core.CustomerService
	byID map[string]*core.Customer
}

func (f *fakeCustomers) GetCustomerByID(_ context.Context, _, id string) (*core.Customer, error) {
	return f.byID[id], nil
}

type fakeInvoices struct {
	core.InvoiceService
	saved *core.SaveInvoiceRequest
}

func (f *fakeInvoices) SaveInvoice(_ context.Context, _ string, req core.SaveInvoiceRequest) (*core.Invoice, error) {
	f.saved = &req
	return &core.Invoice{
		ID:            "generated-id",
		InvoiceNumber: req.InvoiceNumber,
		Items:         req.Items,
		Subtotal:      req.Subtotal,
		TaxPercent:    req.TaxPercent,
		TaxAmount:     req.TaxAmount,
		TotalAmount:   req.TotalAmount,
		Notes:         req.Notes,
	}, nil
}

type fakeDrafter struct {
	draft *ai.InvoiceDraft
	err   error
	got   *ai.DraftRequest
}

func (f *fakeDrafter) DraftInvoice(_ context.Context, req ai.DraftRequest) (*ai.InvoiceDraft, error) {
	f.got = &req
	return f.draft, f.err
}

func TestGenerateInvoice_RecomputesTotals(t *testing.T) {
	customers := &fakeCustomers{byID: map[string]*core.Customer{
		"cust-1": {ID: "cust-1", Name: "Acme Corp"},
	}}
	invoices := &fakeInvoices{}

	// The drafting service reports totals that contradict its own items.
	// The app must trust the items and recompute everything else.
	drafter := &fakeDrafter{draft: &ai.InvoiceDraft{
		InvoiceNumber: "INV-2025-001",
		InvoiceDate:   "2025-06-01",
		DueDate:       "2025-06-15",
		Items: []ai.DraftItem{
			{Name: "Consulting", UnitPrice: "100.00", Quantity: 2, LineTotal: "999.99"},
			{Name: "Hosting", UnitPrice: "50.00", Quantity: 1, LineTotal: "0.01"},
		},
		Subtotal:    "1.00",
		TaxPercent:  "18",
		TaxAmount:   "2.00",
		TotalAmount: "3.00",
		Notes:       "Polished notes.",
	}}

	svc := app.NewAppService(customers, nil, nil, invoices, drafter)

	result, err := svc.GenerateInvoice(context.Background(), "owner-1", app.GenerateInvoiceRequest{
		CustomerID:    "cust-1",
		InvoiceNumber: "INV-2025-001",
		InvoiceDate:   "2025-06-01",
		DueDate:       "2025-06-15",
		TaxPercent:    "18",
		Items: []app.LineItemInput{
			{Name: "consulting", UnitPrice: "100", Quantity: "2"},
		},
	})
	if err != nil {
		t.Fatalf("GenerateInvoice: %v", err)
	}

	saved := invoices.saved
	if saved == nil {
		t.Fatal("expected an invoice to be saved")
	}
	if !saved.Subtotal.Equal(decimal.RequireFromString("250")) {
		t.Errorf("Subtotal = %s, want recomputed 250", saved.Subtotal)
	}
	if !saved.TaxAmount.Equal(decimal.RequireFromString("45")) {
		t.Errorf("TaxAmount = %s, want recomputed 45", saved.TaxAmount)
	}
	if !saved.TotalAmount.Equal(decimal.RequireFromString("295")) {
		t.Errorf("TotalAmount = %s, want recomputed 295", saved.TotalAmount)
	}
	if len(saved.Items) != 2 {
		t.Fatalf("expected 2 items from the draft, got %d", len(saved.Items))
	}
	if !saved.Items[0].LineTotal.Equal(decimal.RequireFromString("200")) {
		t.Errorf("line total = %s, want recomputed 200", saved.Items[0].LineTotal)
	}
	if result.Invoice.Notes != "Polished notes." {
		t.Errorf("Notes = %q, want the drafted notes", result.Invoice.Notes)
	}

	if drafter.got == nil || drafter.got.Customer.Name != "Acme Corp" {
		t.Error("drafter should receive the resolved customer")
	}
}

func TestGenerateInvoice_UnknownCustomer(t *testing.T) {
	svc := app.NewAppService(&fakeCustomers{byID: map[string]*core.Customer{}}, nil, nil, &fakeInvoices{}, &fakeDrafter{})

	_, err := svc.GenerateInvoice(context.Background(), "owner-1", app.GenerateInvoiceRequest{CustomerID: "missing"})
	if err == nil {
		t.Fatal("expected an error for an unknown customer")
	}
}

func TestGenerateInvoice_DrafterFailure(t *testing.T) {
	customers := &fakeCustomers{byID: map[string]*core.Customer{
		"cust-1": {ID: "cust-1", Name: "Acme Corp"},
	}}
	drafter := &fakeDrafter{err: fmt.Errorf("model unavailable")}
	svc := app.NewAppService(customers, nil, nil, &fakeInvoices{}, drafter)

	_, err := svc.GenerateInvoice(context.Background(), "owner-1", app.GenerateInvoiceRequest{
		CustomerID: "cust-1",
	})
	if err == nil {
		t.Fatal("expected the drafting failure to propagate")
	}
}

func TestSaveInvoice_InvalidInput(t *testing.T) {
	svc := app.NewAppService(nil, nil, nil, &fakeInvoices{}, nil)

	tests := []struct {
		name string
		req  app.SaveInvoiceRequest
	}{
		{
			name: "bad invoice date",
			req: app.SaveInvoiceRequest{
				InvoiceNumber: "INV-2025-001",
				InvoiceDate:   "06/01/2025",
				DueDate:       "2025-06-15",
			},
		},
		{
			name: "bad due date",
			req: app.SaveInvoiceRequest{
				InvoiceNumber: "INV-2025-001",
				InvoiceDate:   "2025-06-01",
				DueDate:       "someday",
			},
		},
		{
			name: "unknown status",
			req: app.SaveInvoiceRequest{
				InvoiceNumber: "INV-2025-001",
				InvoiceDate:   "2025-06-01",
				DueDate:       "2025-06-15",
				Status:        "Cancelled",
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := svc.SaveInvoice(context.Background(), "owner-1", tt.req); err == nil {
				t.Error("expected a validation error")
			}
		})
	}
}

func TestSaveInvoice_ComputesTotalsFromItems(t *testing.T) {
	invoices := &fakeInvoices{}
	svc := app.NewAppService(nil, nil, nil, invoices, nil)

	_, err := svc.SaveInvoice(context.Background(), "owner-1", app.SaveInvoiceRequest{
		InvoiceNumber: "INV-2025-001",
		InvoiceDate:   "2025-06-01",
		DueDate:       "2025-06-15",
		CustomerID:    "cust-1",
		TaxPercent:    "18",
		Items: []app.LineItemInput{
			{Name: "Consulting", UnitPrice: "100", Quantity: "2"},
			{Name: "Hosting", UnitPrice: "50", Quantity: "1"},
		},
	})
	if err != nil {
		t.Fatalf("SaveInvoice: %v", err)
	}

	saved := invoices.saved
	if !saved.Subtotal.Equal(decimal.RequireFromString("250")) {
		t.Errorf("Subtotal = %s, want 250", saved.Subtotal)
	}
	if !saved.TotalAmount.Equal(decimal.RequireFromString("295")) {
		t.Errorf("TotalAmount = %s, want 295", saved.TotalAmount)
	}
	if saved.Status.IsExplicit() {
		t.Error("empty status should request derivation, not an explicit value")
	}
}
