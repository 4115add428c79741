package core

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// DefaultCompanyInfo is returned for owners who have not saved a profile
// yet. The row itself is created lazily on first save.
var DefaultCompanyInfo = CompanyInfo{
	Name:    "Sriyantra Solutions",
	Address: "123 Tech Park, Bangalore, Karnataka 560001",
	Phone:   "+91 80 1234 5678",
	GSTIN:   "29ABCDE1234F1Z5",
}

type CompanyService interface {
	// GetCompanyInfo returns the owner's company profile, or the defaults
	// when no profile exists yet or no owner is present.
	GetCompanyInfo(ctx context.Context, ownerID string) (*CompanyInfo, error)
	// SaveCompanyInfo upserts the singleton profile for the owner.
	SaveCompanyInfo(ctx context.Context, ownerID string, req SaveCompanyRequest) (*CompanyInfo, error)
}

type companyService struct {
	pool *pgxpool.Pool
}

// NewCompanyService constructs a CompanyService backed by PostgreSQL.
func NewCompanyService(pool *pgxpool.Pool) CompanyService {
	return &companyService{pool: pool}
}

const companyColumns = "id, name, address, phone, gstin, user_id, created_at"

func scanCompany(row pgx.Row) (*CompanyInfo, error) {
	var c CompanyInfo
	if err := row.Scan(&c.ID, &c.Name, &c.Address, &c.Phone, &c.GSTIN, &c.UserID, &c.CreatedAt); err != nil {
		return nil, err
	}
	return &c, nil
}

func (s *companyService) GetCompanyInfo(ctx context.Context, ownerID string) (*CompanyInfo, error) {
	if ownerID == "" {
		def := DefaultCompanyInfo
		return &def, nil
	}
	c, err := scanCompany(s.pool.QueryRow(ctx, `
		SELECT `+companyColumns+`
		FROM company_info
		WHERE user_id = $1`,
		ownerID,
	))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			// Expected for new owners.
			def := DefaultCompanyInfo
			def.UserID = ownerID
			return &def, nil
		}
		return nil, classifyStoreError("get company info", "company_info", err)
	}
	return c, nil
}

func (s *companyService) SaveCompanyInfo(ctx context.Context, ownerID string, req SaveCompanyRequest) (*CompanyInfo, error) {
	if ownerID == "" {
		return nil, fmt.Errorf("save company info: %w", ErrNotAuthenticated)
	}

	// Select-then-write keyed by owner: the profile is a singleton per
	// owner, so the id never participates in the decision.
	var existingID int64
	err := s.pool.QueryRow(ctx, `SELECT id FROM company_info WHERE user_id = $1`, ownerID).Scan(&existingID)
	exists := true
	if err != nil {
		if !errors.Is(err, pgx.ErrNoRows) {
			return nil, classifyStoreError("check company info", "company_info", err)
		}
		exists = false
	}

	var row pgx.Row
	if exists {
		row = s.pool.QueryRow(ctx, `
			UPDATE company_info
			SET name = $1, address = $2, phone = $3, gstin = $4
			WHERE user_id = $5
			RETURNING `+companyColumns,
			req.Name, req.Address, req.Phone, req.GSTIN, ownerID,
		)
	} else {
		row = s.pool.QueryRow(ctx, `
			INSERT INTO company_info (name, address, phone, gstin, user_id)
			VALUES ($1, $2, $3, $4, $5)
			RETURNING `+companyColumns,
			req.Name, req.Address, req.Phone, req.GSTIN, ownerID,
		)
	}

	c, err := scanCompany(row)
	if err != nil {
		return nil, classifyStoreError("save company info", "company_info", err)
	}
	return c, nil
}
