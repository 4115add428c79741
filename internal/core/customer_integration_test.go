package core_test

import (
	"context"
	"errors"
	"os"
	"testing"

	"invoice-desk/internal/core"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/joho/godotenv"
)

func setupTestDB(t *testing.T) *pgxpool.Pool {
	_ = godotenv.Load("../../.env")

	// Use a dedicated TEST database to avoid wiping the live app database.
	// Set TEST_DATABASE_URL in your .env or environment to run integration tests.
	dbURL := os.Getenv("TEST_DATABASE_URL")
	if dbURL == "" {
		t.Skip("TEST_DATABASE_URL not set — skipping integration test to protect live database")
	}

	ctx := context.Background()
	pool, err := pgxpool.New(ctx, dbURL)
	if err != nil {
		t.Fatalf("Failed to connect to test database: %v", err)
	}

	_, err = pool.Exec(ctx, `TRUNCATE TABLE invoices, customers, products, company_info CASCADE`)
	if err != nil {
		t.Fatalf("Failed to clean test database: %v", err)
	}

	return pool
}

func TestCustomerService_RoundTrip(t *testing.T) {
	pool := setupTestDB(t)
	defer pool.Close()

	svc := core.NewCustomerService(pool)
	ctx := context.Background()
	owner := uuid.NewString()

	created, err := svc.SaveCustomer(ctx, owner, core.SaveCustomerRequest{
		Name:    "Acme Corp",
		Address: "1 Industrial Way",
		Phone:   "+91 98765 43210",
		GSTIN:   "29AAACA1234A1Z5",
	})
	if err != nil {
		t.Fatalf("SaveCustomer insert: %v", err)
	}
	if created.ID == "" {
		t.Fatal("insert should assign an id")
	}
	if created.UserID != owner {
		t.Errorf("UserID = %q, want %q", created.UserID, owner)
	}

	fetched, err := svc.GetCustomerByID(ctx, owner, created.ID)
	if err != nil {
		t.Fatalf("GetCustomerByID: %v", err)
	}
	if fetched == nil || fetched.Name != "Acme Corp" {
		t.Fatalf("fetched = %+v, want Acme Corp", fetched)
	}

	created.Name = "Acme Corporation"
	updated, err := svc.SaveCustomer(ctx, owner, core.SaveCustomerRequest{
		ID:      created.ID,
		Name:    "Acme Corporation",
		Address: created.Address,
		Phone:   created.Phone,
		GSTIN:   created.GSTIN,
	})
	if err != nil {
		t.Fatalf("SaveCustomer update: %v", err)
	}
	if updated.ID != created.ID {
		t.Errorf("update changed the id: %q -> %q", created.ID, updated.ID)
	}
	if updated.Name != "Acme Corporation" {
		t.Errorf("Name = %q after update", updated.Name)
	}

	if err := svc.DeleteCustomer(ctx, owner, created.ID); err != nil {
		t.Fatalf("DeleteCustomer: %v", err)
	}
	gone, err := svc.GetCustomerByID(ctx, owner, created.ID)
	if err != nil {
		t.Fatalf("GetCustomerByID after delete: %v", err)
	}
	if gone != nil {
		t.Errorf("expected nil after delete, got %+v", gone)
	}
}

func TestCustomerService_OwnerScoping(t *testing.T) {
	pool := setupTestDB(t)
	defer pool.Close()

	svc := core.NewCustomerService(pool)
	ctx := context.Background()
	ownerA := uuid.NewString()
	ownerB := uuid.NewString()

	created, err := svc.SaveCustomer(ctx, ownerA, core.SaveCustomerRequest{Name: "Private Client"})
	if err != nil {
		t.Fatalf("SaveCustomer: %v", err)
	}

	// Other owners must not see the row.
	other, err := svc.GetCustomerByID(ctx, ownerB, created.ID)
	if err != nil {
		t.Fatalf("GetCustomerByID as other owner: %v", err)
	}
	if other != nil {
		t.Error("customer leaked across owners")
	}

	list, err := svc.GetCustomers(ctx, ownerB)
	if err != nil {
		t.Fatalf("GetCustomers as other owner: %v", err)
	}
	if len(list) != 0 {
		t.Errorf("expected empty list for other owner, got %d", len(list))
	}

	// Update attempts by other owners must not match.
	if _, err := svc.SaveCustomer(ctx, ownerB, core.SaveCustomerRequest{ID: created.ID, Name: "Hijacked"}); !errors.Is(err, core.ErrNotFound) {
		t.Errorf("cross-owner update should be ErrNotFound, got %v", err)
	}
}

func TestCustomerService_Unauthenticated(t *testing.T) {
	pool := setupTestDB(t)
	defer pool.Close()

	svc := core.NewCustomerService(pool)
	ctx := context.Background()

	list, err := svc.GetCustomers(ctx, "")
	if err != nil {
		t.Fatalf("GetCustomers with no owner: %v", err)
	}
	if len(list) != 0 {
		t.Errorf("expected empty list without owner, got %d", len(list))
	}

	if _, err := svc.SaveCustomer(ctx, "", core.SaveCustomerRequest{Name: "X"}); !errors.Is(err, core.ErrNotAuthenticated) {
		t.Errorf("save without owner should be ErrNotAuthenticated, got %v", err)
	}
	if err := svc.DeleteCustomer(ctx, "", uuid.NewString()); !errors.Is(err, core.ErrNotAuthenticated) {
		t.Errorf("delete without owner should be ErrNotAuthenticated, got %v", err)
	}
}

func TestCustomerService_ListOrderedByName(t *testing.T) {
	pool := setupTestDB(t)
	defer pool.Close()

	svc := core.NewCustomerService(pool)
	ctx := context.Background()
	owner := uuid.NewString()

	for _, name := range []string{"Zeta Traders", "Alpha Exports", "Madhouse Media"} {
		if _, err := svc.SaveCustomer(ctx, owner, core.SaveCustomerRequest{Name: name}); err != nil {
			t.Fatalf("SaveCustomer %q: %v", name, err)
		}
	}

	list, err := svc.GetCustomers(ctx, owner)
	if err != nil {
		t.Fatalf("GetCustomers: %v", err)
	}
	want := []string{"Alpha Exports", "Madhouse Media", "Zeta Traders"}
	if len(list) != len(want) {
		t.Fatalf("expected %d customers, got %d", len(want), len(list))
	}
	for i, name := range want {
		if list[i].Name != name {
			t.Errorf("list[%d].Name = %q, want %q", i, list[i].Name, name)
		}
	}
}

func TestCompanyService_DefaultsAndUpsert(t *testing.T) {
	pool := setupTestDB(t)
	defer pool.Close()

	svc := core.NewCompanyService(pool)
	ctx := context.Background()
	owner := uuid.NewString()

	// New owners see the built-in defaults.
	info, err := svc.GetCompanyInfo(ctx, owner)
	if err != nil {
		t.Fatalf("GetCompanyInfo: %v", err)
	}
	if info.Name != core.DefaultCompanyInfo.Name {
		t.Errorf("Name = %q, want default %q", info.Name, core.DefaultCompanyInfo.Name)
	}

	saved, err := svc.SaveCompanyInfo(ctx, owner, core.SaveCompanyRequest{
		Name:    "My Studio",
		Address: "42 Workshop Lane",
		Phone:   "+91 12345 67890",
		GSTIN:   "27AAAAA0000A1Z5",
	})
	if err != nil {
		t.Fatalf("SaveCompanyInfo insert: %v", err)
	}
	if saved.Name != "My Studio" {
		t.Errorf("Name = %q after save", saved.Name)
	}

	// Second save updates the same singleton row.
	again, err := svc.SaveCompanyInfo(ctx, owner, core.SaveCompanyRequest{Name: "My Studio Renamed"})
	if err != nil {
		t.Fatalf("SaveCompanyInfo update: %v", err)
	}
	if again.ID != saved.ID {
		t.Errorf("upsert created a second row: id %d -> %d", saved.ID, again.ID)
	}
	if again.Name != "My Studio Renamed" {
		t.Errorf("Name = %q after update", again.Name)
	}
}
