package core

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type CustomerService interface {
	// GetCustomers returns all customers for the owner, ordered by name.
	// An empty owner yields an empty list, never an error.
	GetCustomers(ctx context.Context, ownerID string) ([]Customer, error)
	// GetCustomerByID returns a customer by id, or nil when no row matches.
	GetCustomerByID(ctx context.Context, ownerID, id string) (*Customer, error)
	// SaveCustomer inserts (empty request ID) or updates by id and owner.
	SaveCustomer(ctx context.Context, ownerID string, req SaveCustomerRequest) (*Customer, error)
	// DeleteCustomer removes a customer. Invoices referencing it are left
	// untouched; the assembler filters the dangling rows on read.
	DeleteCustomer(ctx context.Context, ownerID, id string) error
}

type customerService struct {
	pool *pgxpool.Pool
}

// NewCustomerService constructs a CustomerService backed by PostgreSQL.
func NewCustomerService(pool *pgxpool.Pool) CustomerService {
	return &customerService{pool: pool}
}

const customerColumns = "id, name, address, phone, gstin, user_id, created_at"

func scanCustomer(row pgx.Row) (*Customer, error) {
	var c Customer
	if err := row.Scan(&c.ID, &c.Name, &c.Address, &c.Phone, &c.GSTIN, &c.UserID, &c.CreatedAt); err != nil {
		return nil, err
	}
	return &c, nil
}

func (s *customerService) GetCustomers(ctx context.Context, ownerID string) ([]Customer, error) {
	if ownerID == "" {
		return nil, nil
	}
	rows, err := s.pool.Query(ctx, `
		SELECT `+customerColumns+`
		FROM customers
		WHERE user_id = $1
		ORDER BY name`,
		ownerID,
	)
	if err != nil {
		return nil, classifyStoreError("get customers", "customers", err)
	}
	defer rows.Close()

	var customers []Customer
	for rows.Next() {
		c, err := scanCustomer(rows)
		if err != nil {
			return nil, fmt.Errorf("scan customer: %w", err)
		}
		customers = append(customers, *c)
	}
	return customers, rows.Err()
}

func (s *customerService) GetCustomerByID(ctx context.Context, ownerID, id string) (*Customer, error) {
	if ownerID == "" {
		return nil, nil
	}
	c, err := scanCustomer(s.pool.QueryRow(ctx, `
		SELECT `+customerColumns+`
		FROM customers
		WHERE id = $1 AND user_id = $2`,
		id, ownerID,
	))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, classifyStoreError("get customer", "customers", err)
	}
	return c, nil
}

func (s *customerService) SaveCustomer(ctx context.Context, ownerID string, req SaveCustomerRequest) (*Customer, error) {
	if ownerID == "" {
		return nil, fmt.Errorf("save customer: %w", ErrNotAuthenticated)
	}

	var row pgx.Row
	if req.ID != "" {
		row = s.pool.QueryRow(ctx, `
			UPDATE customers
			SET name = $1, address = $2, phone = $3, gstin = $4
			WHERE id = $5 AND user_id = $6
			RETURNING `+customerColumns,
			req.Name, req.Address, req.Phone, req.GSTIN, req.ID, ownerID,
		)
	} else {
		row = s.pool.QueryRow(ctx, `
			INSERT INTO customers (name, address, phone, gstin, user_id)
			VALUES ($1, $2, $3, $4, $5)
			RETURNING `+customerColumns,
			req.Name, req.Address, req.Phone, req.GSTIN, ownerID,
		)
	}

	c, err := scanCustomer(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("save customer %s: %w", req.ID, ErrNotFound)
		}
		return nil, classifyStoreError("save customer", "customers", err)
	}
	return c, nil
}

func (s *customerService) DeleteCustomer(ctx context.Context, ownerID, id string) error {
	if ownerID == "" {
		return fmt.Errorf("delete customer: %w", ErrNotAuthenticated)
	}
	if _, err := s.pool.Exec(ctx, `DELETE FROM customers WHERE id = $1 AND user_id = $2`, id, ownerID); err != nil {
		return fmt.Errorf("delete customer %s: %w", id, err)
	}
	return nil
}
