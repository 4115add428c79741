package core

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type ProductService interface {
	// GetProducts returns all products for the owner, ordered by name.
	GetProducts(ctx context.Context, ownerID string) ([]Product, error)
	// GetProductByID returns a product by id, or nil when no row matches.
	GetProductByID(ctx context.Context, ownerID, id string) (*Product, error)
	// SaveProduct inserts (empty request ID) or updates by id and owner.
	SaveProduct(ctx context.Context, ownerID string, req SaveProductRequest) (*Product, error)
	DeleteProduct(ctx context.Context, ownerID, id string) error
}

type productService struct {
	pool *pgxpool.Pool
}

// NewProductService constructs a ProductService backed by PostgreSQL.
func NewProductService(pool *pgxpool.Pool) ProductService {
	return &productService{pool: pool}
}

const productColumns = "id, name, unit_price, user_id, created_at"

func scanProduct(row pgx.Row) (*Product, error) {
	var p Product
	if err := row.Scan(&p.ID, &p.Name, &p.UnitPrice, &p.UserID, &p.CreatedAt); err != nil {
		return nil, err
	}
	return &p, nil
}

func (s *productService) GetProducts(ctx context.Context, ownerID string) ([]Product, error) {
	if ownerID == "" {
		return nil, nil
	}
	rows, err := s.pool.Query(ctx, `
		SELECT `+productColumns+`
		FROM products
		WHERE user_id = $1
		ORDER BY name`,
		ownerID,
	)
	if err != nil {
		return nil, classifyStoreError("get products", "products", err)
	}
	defer rows.Close()

	var products []Product
	for rows.Next() {
		p, err := scanProduct(rows)
		if err != nil {
			return nil, fmt.Errorf("scan product: %w", err)
		}
		products = append(products, *p)
	}
	return products, rows.Err()
}

func (s *productService) GetProductByID(ctx context.Context, ownerID, id string) (*Product, error) {
	if ownerID == "" {
		return nil, nil
	}
	p, err := scanProduct(s.pool.QueryRow(ctx, `
		SELECT `+productColumns+`
		FROM products
		WHERE id = $1 AND user_id = $2`,
		id, ownerID,
	))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, classifyStoreError("get product", "products", err)
	}
	return p, nil
}

func (s *productService) SaveProduct(ctx context.Context, ownerID string, req SaveProductRequest) (*Product, error) {
	if ownerID == "" {
		return nil, fmt.Errorf("save product: %w", ErrNotAuthenticated)
	}

	var row pgx.Row
	if req.ID != "" {
		row = s.pool.QueryRow(ctx, `
			UPDATE products
			SET name = $1, unit_price = $2
			WHERE id = $3 AND user_id = $4
			RETURNING `+productColumns,
			req.Name, req.UnitPrice, req.ID, ownerID,
		)
	} else {
		row = s.pool.QueryRow(ctx, `
			INSERT INTO products (name, unit_price, user_id)
			VALUES ($1, $2, $3)
			RETURNING `+productColumns,
			req.Name, req.UnitPrice, ownerID,
		)
	}

	p, err := scanProduct(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("save product %s: %w", req.ID, ErrNotFound)
		}
		return nil, classifyStoreError("save product", "products", err)
	}
	return p, nil
}

func (s *productService) DeleteProduct(ctx context.Context, ownerID, id string) error {
	if ownerID == "" {
		return fmt.Errorf("delete product: %w", ErrNotAuthenticated)
	}
	if _, err := s.pool.Exec(ctx, `DELETE FROM products WHERE id = $1 AND user_id = $2`, id, ownerID); err != nil {
		return fmt.Errorf("delete product %s: %w", id, err)
	}
	return nil
}
