package core_test

import (
	"context"
	"errors"
	"testing"

	"invoice-desk/internal/core"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

func TestProductService_RoundTrip(t *testing.T) {
	pool := setupTestDB(t)
	defer pool.Close()

	svc := core.NewProductService(pool)
	ctx := context.Background()
	owner := uuid.NewString()

	created, err := svc.SaveProduct(ctx, owner, core.SaveProductRequest{
		Name:      "Consulting Hour",
		UnitPrice: decimal.RequireFromString("150.00"),
	})
	if err != nil {
		t.Fatalf("SaveProduct insert: %v", err)
	}
	if created.ID == "" {
		t.Fatal("insert should assign an id")
	}
	if !created.UnitPrice.Equal(decimal.RequireFromString("150.00")) {
		t.Errorf("UnitPrice = %s after round trip", created.UnitPrice)
	}

	fetched, err := svc.GetProductByID(ctx, owner, created.ID)
	if err != nil {
		t.Fatalf("GetProductByID: %v", err)
	}
	if fetched == nil || fetched.Name != "Consulting Hour" {
		t.Fatalf("fetched = %+v", fetched)
	}

	updated, err := svc.SaveProduct(ctx, owner, core.SaveProductRequest{
		ID:        created.ID,
		Name:      "Consulting Hour",
		UnitPrice: decimal.RequireFromString("175.00"),
	})
	if err != nil {
		t.Fatalf("SaveProduct update: %v", err)
	}
	if !updated.UnitPrice.Equal(decimal.RequireFromString("175.00")) {
		t.Errorf("UnitPrice = %s after update", updated.UnitPrice)
	}

	if err := svc.DeleteProduct(ctx, owner, created.ID); err != nil {
		t.Fatalf("DeleteProduct: %v", err)
	}
	gone, err := svc.GetProductByID(ctx, owner, created.ID)
	if err != nil {
		t.Fatalf("GetProductByID after delete: %v", err)
	}
	if gone != nil {
		t.Errorf("expected nil after delete, got %+v", gone)
	}
}

func TestProductService_Unauthenticated(t *testing.T) {
	pool := setupTestDB(t)
	defer pool.Close()

	svc := core.NewProductService(pool)
	ctx := context.Background()

	list, err := svc.GetProducts(ctx, "")
	if err != nil {
		t.Fatalf("GetProducts with no owner: %v", err)
	}
	if len(list) != 0 {
		t.Errorf("expected empty list without owner, got %d", len(list))
	}

	if _, err := svc.SaveProduct(ctx, "", core.SaveProductRequest{Name: "X"}); !errors.Is(err, core.ErrNotAuthenticated) {
		t.Errorf("save without owner should be ErrNotAuthenticated, got %v", err)
	}
}
