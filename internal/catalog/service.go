// Package catalog implements product master data. Product rows own the
// stock column, but this package never edits it; stock only moves through
// the document flows.
package catalog

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/dapursupply/erp-backend/pkg/db/models"
	pkgerrors "github.com/dapursupply/erp-backend/pkg/errors"
)

// Default threshold under which a product counts as low stock.
var DefaultLowStockThreshold = decimal.NewFromInt(10)

// Service defines product master data operations.
type Service interface {
	Create(ctx context.Context, input CreateInput) (*models.Product, error)
	List(ctx context.Context) ([]models.Product, error)
	Get(ctx context.Context, id uuid.UUID) (*models.Product, error)
	Update(ctx context.Context, input UpdateInput) (*models.Product, error)
	Delete(ctx context.Context, id uuid.UUID) error
	LowStock(ctx context.Context, limit int) ([]models.Product, error)
}

// CreateInput captures a new product. InitialStock seeds the opening
// balance; afterwards stock changes only through documents.
type CreateInput struct {
	SKU          string
	Name         string
	Category     string
	Price        decimal.Decimal
	Cost         decimal.Decimal
	InitialStock decimal.Decimal
	ImageURL     *string
}

// UpdateInput rewrites the editable product fields. Stock is deliberately
// absent.
type UpdateInput struct {
	ID       uuid.UUID
	SKU      string
	Name     string
	Category string
	Price    decimal.Decimal
	Cost     decimal.Decimal
	ImageURL *string
}

type service struct {
	repo Repository
}

// NewService wires a catalog service with the provided repository.
func NewService(repo Repository) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("catalog repository required")
	}
	return &service{repo: repo}, nil
}

func (s *service) Create(ctx context.Context, input CreateInput) (*models.Product, error) {
	if input.SKU == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "sku required")
	}
	if input.Name == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "name required")
	}
	if input.Price.IsNegative() || input.Cost.IsNegative() {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "price and cost must not be negative")
	}

	product := &models.Product{
		SKU:      input.SKU,
		Name:     input.Name,
		Category: input.Category,
		Price:    input.Price,
		Cost:     input.Cost,
		Stock:    input.InitialStock,
		ImageURL: input.ImageURL,
	}
	if err := s.repo.Create(ctx, product); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "create product")
	}
	return product, nil
}

func (s *service) List(ctx context.Context) ([]models.Product, error) {
	products, err := s.repo.List(ctx)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list products")
	}
	return products, nil
}

func (s *service) Get(ctx context.Context, id uuid.UUID) (*models.Product, error) {
	if id == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "product id required")
	}
	product, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load product")
	}
	if product == nil {
		return nil, pkgerrors.New(pkgerrors.CodeNotFound, "product not found")
	}
	return product, nil
}

func (s *service) Update(ctx context.Context, input UpdateInput) (*models.Product, error) {
	if input.ID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "product id required")
	}
	if input.SKU == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "sku required")
	}
	if input.Name == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "name required")
	}
	if input.Price.IsNegative() || input.Cost.IsNegative() {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "price and cost must not be negative")
	}

	product, err := s.Get(ctx, input.ID)
	if err != nil {
		return nil, err
	}

	product.SKU = input.SKU
	product.Name = input.Name
	product.Category = input.Category
	product.Price = input.Price
	product.Cost = input.Cost
	product.ImageURL = input.ImageURL

	if err := s.repo.Update(ctx, product); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "update product")
	}
	return product, nil
}

func (s *service) Delete(ctx context.Context, id uuid.UUID) error {
	if id == uuid.Nil {
		return pkgerrors.New(pkgerrors.CodeValidation, "product id required")
	}
	rows, err := s.repo.Delete(ctx, id)
	if err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "delete product")
	}
	if rows == 0 {
		return pkgerrors.New(pkgerrors.CodeNotFound, "product not found")
	}
	return nil
}

func (s *service) LowStock(ctx context.Context, limit int) ([]models.Product, error) {
	if limit <= 0 {
		limit = 5
	}
	products, err := s.repo.LowStock(ctx, DefaultLowStockThreshold, limit)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list low stock products")
	}
	return products, nil
}
