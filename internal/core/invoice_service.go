package core

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"
)

type InvoiceService interface {
	// GetInvoices returns the owner's invoices, newest invoice number
	// first, each paired with its customer. Invoices whose customer no
	// longer exists are dropped with a diagnostic.
	GetInvoices(ctx context.Context, ownerID string) ([]Invoice, error)
	// GetInvoiceByID returns one assembled invoice, or nil when no row
	// matches or its customer is gone.
	GetInvoiceByID(ctx context.Context, ownerID, id string) (*Invoice, error)
	// SaveInvoice resolves the status, writes the normalized row, then
	// re-assembles it through the read path so the caller always receives
	// the full denormalized view.
	SaveInvoice(ctx context.Context, ownerID string, req SaveInvoiceRequest) (*Invoice, error)
	// UpdateInvoiceStatus persists an explicit status verbatim. A missing
	// row is tolerated with a warning and a nil result.
	UpdateInvoiceStatus(ctx context.Context, ownerID, id string, status InvoiceStatus) (*Invoice, error)
	DeleteInvoice(ctx context.Context, ownerID, id string) error
	// NextInvoiceNumber allocates the next sequential number for the
	// owner, scoped to the current calendar year.
	NextInvoiceNumber(ctx context.Context, ownerID string) (string, error)
}

type invoiceService struct {
	pool *pgxpool.Pool
	log  zerolog.Logger
	now  func() time.Time
}

// NewInvoiceService constructs an InvoiceService backed by PostgreSQL.
func NewInvoiceService(pool *pgxpool.Pool, log zerolog.Logger) InvoiceService {
	return &invoiceService{pool: pool, log: log, now: time.Now}
}

const invoiceColumns = `id, invoice_number, invoice_date, due_date, customer_id, items,
	subtotal, tax_percent, tax_amount, total_amount, notes, status, user_id, created_at`

// scanInvoice reads a raw storage row; the customer is attached later by
// the assembler.
func scanInvoice(row pgx.Row) (*Invoice, error) {
	var inv Invoice
	var itemsJSON []byte
	var status string
	if err := row.Scan(
		&inv.ID, &inv.InvoiceNumber, &inv.InvoiceDate, &inv.DueDate, &inv.CustomerID, &itemsJSON,
		&inv.Subtotal, &inv.TaxPercent, &inv.TaxAmount, &inv.TotalAmount, &inv.Notes, &status,
		&inv.UserID, &inv.CreatedAt,
	); err != nil {
		return nil, err
	}
	inv.Status = InvoiceStatus(status)
	if len(itemsJSON) > 0 {
		if err := json.Unmarshal(itemsJSON, &inv.Items); err != nil {
			return nil, fmt.Errorf("decode invoice items: %w", err)
		}
	}
	return &inv, nil
}

// assemble pairs raw invoice rows with their customers. All distinct
// customer references are fetched in one query; rows whose reference no
// longer resolves are dropped silently apart from a warn-level diagnostic.
func (s *invoiceService) assemble(ctx context.Context, raw []Invoice) ([]Invoice, error) {
	if len(raw) == 0 {
		return nil, nil
	}

	seen := make(map[string]bool, len(raw))
	ids := make([]string, 0, len(raw))
	for _, inv := range raw {
		if !seen[inv.CustomerID] {
			seen[inv.CustomerID] = true
			ids = append(ids, inv.CustomerID)
		}
	}

	rows, err := s.pool.Query(ctx, `
		SELECT `+customerColumns+`
		FROM customers
		WHERE id = ANY($1::uuid[])`,
		ids,
	)
	if err != nil {
		return nil, classifyStoreError("fetch related customers", "customers", err)
	}
	defer rows.Close()

	customers := make(map[string]*Customer, len(ids))
	for rows.Next() {
		c, err := scanCustomer(rows)
		if err != nil {
			return nil, fmt.Errorf("scan related customer: %w", err)
		}
		customers[c.ID] = c
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("fetch related customers: %w", err)
	}

	assembled := make([]Invoice, 0, len(raw))
	for _, inv := range raw {
		customer, ok := customers[inv.CustomerID]
		if !ok {
			s.log.Warn().
				Str("invoice_id", inv.ID).
				Str("customer_id", inv.CustomerID).
				Msg("dropping invoice with dangling customer reference")
			continue
		}
		inv.Customer = customer
		assembled = append(assembled, inv)
	}
	return assembled, nil
}

func (s *invoiceService) GetInvoices(ctx context.Context, ownerID string) ([]Invoice, error) {
	if ownerID == "" {
		return nil, nil
	}
	rows, err := s.pool.Query(ctx, `
		SELECT `+invoiceColumns+`
		FROM invoices
		WHERE user_id = $1
		ORDER BY invoice_number DESC`,
		ownerID,
	)
	if err != nil {
		return nil, classifyStoreError("get invoices", "invoices", err)
	}
	defer rows.Close()

	var raw []Invoice
	for rows.Next() {
		inv, err := scanInvoice(rows)
		if err != nil {
			return nil, fmt.Errorf("scan invoice: %w", err)
		}
		raw = append(raw, *inv)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("get invoices: %w", err)
	}
	return s.assemble(ctx, raw)
}

func (s *invoiceService) GetInvoiceByID(ctx context.Context, ownerID, id string) (*Invoice, error) {
	if ownerID == "" {
		return nil, nil
	}
	inv, err := scanInvoice(s.pool.QueryRow(ctx, `
		SELECT `+invoiceColumns+`
		FROM invoices
		WHERE id = $1 AND user_id = $2`,
		id, ownerID,
	))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, classifyStoreError("get invoice", "invoices", err)
	}

	assembled, err := s.assemble(ctx, []Invoice{*inv})
	if err != nil {
		return nil, err
	}
	if len(assembled) == 0 {
		return nil, nil
	}
	return &assembled[0], nil
}

func (s *invoiceService) SaveInvoice(ctx context.Context, ownerID string, req SaveInvoiceRequest) (*Invoice, error) {
	if ownerID == "" {
		return nil, fmt.Errorf("save invoice: %w", ErrNotAuthenticated)
	}

	// Resolve-status happens before the write, never after.
	status := string(req.Status.Resolve(req.DueDate, s.now()))

	itemsJSON, err := json.Marshal(req.Items)
	if err != nil {
		return nil, fmt.Errorf("encode invoice items: %w", err)
	}

	var row pgx.Row
	if req.ID != "" {
		row = s.pool.QueryRow(ctx, `
			UPDATE invoices
			SET invoice_number = $1, invoice_date = $2, due_date = $3, customer_id = $4,
			    items = $5, subtotal = $6, tax_percent = $7, tax_amount = $8,
			    total_amount = $9, notes = $10, status = $11
			WHERE id = $12 AND user_id = $13
			RETURNING `+invoiceColumns,
			req.InvoiceNumber, req.InvoiceDate, req.DueDate, req.CustomerID,
			itemsJSON, req.Subtotal, req.TaxPercent, req.TaxAmount,
			req.TotalAmount, req.Notes, status, req.ID, ownerID,
		)
	} else {
		row = s.pool.QueryRow(ctx, `
			INSERT INTO invoices (invoice_number, invoice_date, due_date, customer_id,
			                      items, subtotal, tax_percent, tax_amount,
			                      total_amount, notes, status, user_id)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
			RETURNING `+invoiceColumns,
			req.InvoiceNumber, req.InvoiceDate, req.DueDate, req.CustomerID,
			itemsJSON, req.Subtotal, req.TaxPercent, req.TaxAmount,
			req.TotalAmount, req.Notes, status, ownerID,
		)
	}

	saved, err := scanInvoice(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("save invoice %s: %w", req.ID, ErrNotFound)
		}
		return nil, classifyStoreError("save invoice", "invoices", err)
	}

	assembled, err := s.assemble(ctx, []Invoice{*saved})
	if err != nil {
		return nil, err
	}
	if len(assembled) == 0 {
		return nil, fmt.Errorf("save invoice: customer %s not found for saved invoice", saved.CustomerID)
	}
	return &assembled[0], nil
}

func (s *invoiceService) UpdateInvoiceStatus(ctx context.Context, ownerID, id string, status InvoiceStatus) (*Invoice, error) {
	if ownerID == "" {
		return nil, fmt.Errorf("update invoice status: %w", ErrNotAuthenticated)
	}
	if !ValidStatus(status) {
		return nil, fmt.Errorf("update invoice status: invalid status %q", status)
	}

	inv, err := scanInvoice(s.pool.QueryRow(ctx, `
		UPDATE invoices
		SET status = $1
		WHERE id = $2 AND user_id = $3
		RETURNING `+invoiceColumns,
		string(status), id, ownerID,
	))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			s.log.Warn().Str("invoice_id", id).Msg("invoice not found for status update")
			return nil, nil
		}
		return nil, classifyStoreError("update invoice status", "invoices", err)
	}

	assembled, err := s.assemble(ctx, []Invoice{*inv})
	if err != nil {
		return nil, err
	}
	if len(assembled) == 0 {
		return nil, nil
	}
	return &assembled[0], nil
}

func (s *invoiceService) DeleteInvoice(ctx context.Context, ownerID, id string) error {
	if ownerID == "" {
		return fmt.Errorf("delete invoice: %w", ErrNotAuthenticated)
	}
	if _, err := s.pool.Exec(ctx, `DELETE FROM invoices WHERE id = $1 AND user_id = $2`, id, ownerID); err != nil {
		return fmt.Errorf("delete invoice %s: %w", id, err)
	}
	return nil
}

// NextInvoiceNumber derives the next number from the single most recently
// created invoice. There is no reservation; two concurrent allocations for
// the same owner can race. Single-operator use is assumed.
func (s *invoiceService) NextInvoiceNumber(ctx context.Context, ownerID string) (string, error) {
	year := s.now().Year()
	if ownerID == "" {
		return FirstInvoiceNumber(year), nil
	}

	var previous string
	err := s.pool.QueryRow(ctx, `
		SELECT invoice_number
		FROM invoices
		WHERE user_id = $1
		ORDER BY created_at DESC
		LIMIT 1`,
		ownerID,
	).Scan(&previous)
	if err != nil {
		if !errors.Is(err, pgx.ErrNoRows) {
			s.log.Warn().Err(err).Msg("could not fetch latest invoice number, starting from 001")
		}
		return FirstInvoiceNumber(year), nil
	}
	return NextInvoiceNumberAfter(previous, year), nil
}
