package catalog

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/dapursupply/erp-backend/pkg/db/models"
	pkgerrors "github.com/dapursupply/erp-backend/pkg/errors"
)

type stubRepo struct {
	created    *models.Product
	loaded     *models.Product
	updated    *models.Product
	deleteRows int64
	lowStock   []models.Product
	lastLimit  int
}

func (s *stubRepo) WithTx(tx *gorm.DB) Repository { return s }

func (s *stubRepo) Create(ctx context.Context, product *models.Product) error {
	s.created = product
	return nil
}

func (s *stubRepo) List(ctx context.Context) ([]models.Product, error) {
	return nil, nil
}

func (s *stubRepo) GetByID(ctx context.Context, id uuid.UUID) (*models.Product, error) {
	return s.loaded, nil
}

func (s *stubRepo) Update(ctx context.Context, product *models.Product) error {
	s.updated = product
	return nil
}

func (s *stubRepo) Delete(ctx context.Context, id uuid.UUID) (int64, error) {
	return s.deleteRows, nil
}

func (s *stubRepo) LowStock(ctx context.Context, threshold decimal.Decimal, limit int) ([]models.Product, error) {
	s.lastLimit = limit
	return s.lowStock, nil
}

func TestCreateSeedsInitialStock(t *testing.T) {
	repo := &stubRepo{}
	svc, err := NewService(repo)
	if err != nil {
		t.Fatalf("service constructor failed: %v", err)
	}

	product, err := svc.Create(context.Background(), CreateInput{
		SKU:          "RICE-1KG",
		Name:         "Rice 1kg",
		Category:     "staples",
		Price:        decimal.RequireFromString("18.00"),
		Cost:         decimal.RequireFromString("15.50"),
		InitialStock: decimal.NewFromInt(50),
	})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if !product.Stock.Equal(decimal.NewFromInt(50)) {
		t.Fatalf("unexpected stock %s", product.Stock)
	}
	if repo.created != product {
		t.Fatal("expected product to be persisted")
	}
}

func TestCreateValidatesInput(t *testing.T) {
	svc, _ := NewService(&stubRepo{})

	cases := []struct {
		name  string
		input CreateInput
	}{
		{"missing sku", CreateInput{Name: "Rice"}},
		{"missing name", CreateInput{SKU: "RICE-1KG"}},
		{"negative price", CreateInput{SKU: "RICE-1KG", Name: "Rice", Price: decimal.NewFromInt(-1)}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := svc.Create(context.Background(), tc.input)
			typed := pkgerrors.As(err)
			if typed == nil || typed.Code() != pkgerrors.CodeValidation {
				t.Fatalf("expected validation error, got %v", err)
			}
		})
	}
}

func TestUpdateNeverTouchesStock(t *testing.T) {
	id := uuid.New()
	repo := &stubRepo{
		loaded: &models.Product{
			ID:    id,
			SKU:   "RICE-1KG",
			Name:  "Rice 1kg",
			Stock: decimal.NewFromInt(42),
		},
	}
	svc, _ := NewService(repo)

	updated, err := svc.Update(context.Background(), UpdateInput{
		ID:    id,
		SKU:   "RICE-1KG",
		Name:  "Rice 1kg premium",
		Price: decimal.NewFromInt(20),
		Cost:  decimal.NewFromInt(16),
	})
	if err != nil {
		t.Fatalf("update: %v", err)
	}
	if updated.Name != "Rice 1kg premium" {
		t.Fatalf("unexpected name %q", updated.Name)
	}
	if !updated.Stock.Equal(decimal.NewFromInt(42)) {
		t.Fatalf("update must not change stock, got %s", updated.Stock)
	}
}

func TestDeleteUnknownProduct(t *testing.T) {
	svc, _ := NewService(&stubRepo{deleteRows: 0})

	err := svc.Delete(context.Background(), uuid.New())
	typed := pkgerrors.As(err)
	if typed == nil || typed.Code() != pkgerrors.CodeNotFound {
		t.Fatalf("expected not found, got %v", err)
	}
}

func TestLowStockDefaultsLimit(t *testing.T) {
	repo := &stubRepo{}
	svc, _ := NewService(repo)

	if _, err := svc.LowStock(context.Background(), 0); err != nil {
		t.Fatalf("low stock: %v", err)
	}
	if repo.lastLimit != 5 {
		t.Fatalf("expected default limit 5, got %d", repo.lastLimit)
	}
}
