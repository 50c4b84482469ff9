// Package bom resolves bills of materials: which ingredient quantities one
// unit of a finished product consumes, and how much a manufacturing order
// for N units needs in total.
package bom

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/dapursupply/erp-backend/pkg/db/models"
	pkgerrors "github.com/dapursupply/erp-backend/pkg/errors"
)

// Service defines bill-of-materials operations.
type Service interface {
	Create(ctx context.Context, input CreateBOMInput) (*models.BOM, error)
	List(ctx context.Context) ([]models.BOM, error)
	Get(ctx context.Context, id uuid.UUID) (*models.BOM, error)
	// Resolve returns the recipe used for the product. Several BOMs may
	// target the same product; the oldest one wins.
	Resolve(ctx context.Context, tx *gorm.DB, productID uuid.UUID) (*models.BOM, error)
	// Explode multiplies the resolved recipe by factor, preserving the
	// recipe's line order.
	Explode(ctx context.Context, tx *gorm.DB, productID uuid.UUID, factor decimal.Decimal) ([]Requirement, error)
}

// Requirement is one exploded ingredient line.
type Requirement struct {
	ProductID uuid.UUID       `json:"product_id"`
	Qty       decimal.Decimal `json:"qty"`
}

// CreateBOMInput captures a recipe with its ingredient lines.
type CreateBOMInput struct {
	Name      string
	ProductID uuid.UUID
	Items     []BOMItemInput
}

// BOMItemInput is one ingredient line of a new recipe.
type BOMItemInput struct {
	ProductID uuid.UUID
	Qty       decimal.Decimal
}

type service struct {
	repo Repository
}

// NewService wires a BOM service with the provided repository.
func NewService(repo Repository) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("bom repository required")
	}
	return &service{repo: repo}, nil
}

func (s *service) Create(ctx context.Context, input CreateBOMInput) (*models.BOM, error) {
	if input.Name == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "bom name required")
	}
	if input.ProductID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "product id required")
	}
	if len(input.Items) == 0 {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "at least one ingredient required")
	}

	record := &models.BOM{
		Name:      input.Name,
		ProductID: input.ProductID,
	}
	for _, item := range input.Items {
		if item.ProductID == uuid.Nil {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, "ingredient product id required")
		}
		if !item.Qty.IsPositive() {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, "ingredient qty must be positive")
		}
		record.Items = append(record.Items, models.BOMItem{
			ProductID: item.ProductID,
			Qty:       item.Qty,
		})
	}

	if err := s.repo.Create(ctx, record); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "create bom")
	}
	return record, nil
}

func (s *service) List(ctx context.Context) ([]models.BOM, error) {
	boms, err := s.repo.List(ctx)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list boms")
	}
	return boms, nil
}

func (s *service) Get(ctx context.Context, id uuid.UUID) (*models.BOM, error) {
	if id == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "bom id required")
	}
	bom, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load bom")
	}
	if bom == nil {
		return nil, pkgerrors.New(pkgerrors.CodeNotFound, "bom not found")
	}
	return bom, nil
}

func (s *service) Resolve(ctx context.Context, tx *gorm.DB, productID uuid.UUID) (*models.BOM, error) {
	if productID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "product id required")
	}

	repo := s.repo.WithTx(tx)
	bom, err := repo.OldestForProduct(ctx, productID)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "resolve bom")
	}
	if bom == nil {
		return nil, pkgerrors.New(pkgerrors.CodeNoRecipe, "no bill of materials for product")
	}
	return bom, nil
}

func (s *service) Explode(ctx context.Context, tx *gorm.DB, productID uuid.UUID, factor decimal.Decimal) ([]Requirement, error) {
	if !factor.IsPositive() {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "explode factor must be positive")
	}

	bom, err := s.Resolve(ctx, tx, productID)
	if err != nil {
		return nil, err
	}

	requirements := make([]Requirement, 0, len(bom.Items))
	for _, item := range bom.Items {
		requirements = append(requirements, Requirement{
			ProductID: item.ProductID,
			Qty:       item.Qty.Mul(factor),
		})
	}
	return requirements, nil
}
