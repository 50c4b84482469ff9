// Package manufacturing implements production orders. Completing an order
// consumes the product's bill of materials and adds the produced units, all
// inside one transaction: if the product has no recipe nothing moves, and a
// repeated completion request is answered as a no-op.
package manufacturing

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/dapursupply/erp-backend/internal/bom"
	"github.com/dapursupply/erp-backend/internal/stock"
	"github.com/dapursupply/erp-backend/pkg/db/models"
	"github.com/dapursupply/erp-backend/pkg/enums"
	pkgerrors "github.com/dapursupply/erp-backend/pkg/errors"
	"github.com/dapursupply/erp-backend/pkg/refcode"
)

type txRunner interface {
	WithTx(ctx context.Context, fn func(tx *gorm.DB) error) error
}

// Recipes is the slice of the BOM service the production flow depends on.
type Recipes interface {
	Explode(ctx context.Context, tx *gorm.DB, productID uuid.UUID, factor decimal.Decimal) ([]bom.Requirement, error)
}

// Service defines manufacturing order operations.
type Service interface {
	Create(ctx context.Context, input CreateInput) (*models.ManufacturingOrder, error)
	List(ctx context.Context) ([]models.ManufacturingOrder, error)
	Get(ctx context.Context, id uuid.UUID) (*models.ManufacturingOrder, error)
	UpdateStatus(ctx context.Context, id uuid.UUID, status enums.ManufacturingStatus) (*models.ManufacturingOrder, error)
}

// CreateInput captures a new manufacturing order.
type CreateInput struct {
	ProductID    uuid.UUID
	QtyToProduce decimal.Decimal
}

type service struct {
	repo    Repository
	tx      txRunner
	recipes Recipes
	ledger  stock.Ledger
	codes   *refcode.Generator
}

// NewService builds a manufacturing service with the required dependencies.
func NewService(repo Repository, tx txRunner, recipes Recipes, ledger stock.Ledger, codes *refcode.Generator) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("manufacturing repository required")
	}
	if tx == nil {
		return nil, fmt.Errorf("transaction runner required")
	}
	if recipes == nil {
		return nil, fmt.Errorf("recipe resolver required")
	}
	if ledger == nil {
		return nil, fmt.Errorf("stock ledger required")
	}
	if codes == nil {
		return nil, fmt.Errorf("code generator required")
	}
	return &service{repo: repo, tx: tx, recipes: recipes, ledger: ledger, codes: codes}, nil
}

func (s *service) Create(ctx context.Context, input CreateInput) (*models.ManufacturingOrder, error) {
	if input.ProductID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "product id required")
	}
	if !input.QtyToProduce.IsPositive() {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "qty to produce must be positive")
	}

	order := &models.ManufacturingOrder{
		Code:         s.codes.New(refcode.PrefixManufacturingOrder),
		ProductID:    input.ProductID,
		QtyToProduce: input.QtyToProduce,
		Status:       enums.ManufacturingStatusDraft,
	}
	if err := s.repo.Create(ctx, order); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "create manufacturing order")
	}
	return order, nil
}

func (s *service) List(ctx context.Context) ([]models.ManufacturingOrder, error) {
	orders, err := s.repo.List(ctx)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list manufacturing orders")
	}
	return orders, nil
}

func (s *service) Get(ctx context.Context, id uuid.UUID) (*models.ManufacturingOrder, error) {
	if id == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "manufacturing order id required")
	}
	order, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load manufacturing order")
	}
	if order == nil {
		return nil, pkgerrors.New(pkgerrors.CodeNotFound, "manufacturing order not found")
	}
	return order, nil
}

func (s *service) UpdateStatus(ctx context.Context, id uuid.UUID, status enums.ManufacturingStatus) (*models.ManufacturingOrder, error) {
	if id == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "manufacturing order id required")
	}
	if !status.IsValid() {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, fmt.Sprintf("invalid manufacturing status %q", status))
	}

	var result *models.ManufacturingOrder
	err := s.tx.WithTx(ctx, func(tx *gorm.DB) error {
		repo := s.repo.WithTx(tx)

		if status != enums.ManufacturingStatusDone {
			rows, err := repo.UpdateStatus(ctx, id, status)
			if err != nil {
				return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "update manufacturing status")
			}
			if rows == 0 {
				order, err := repo.GetByID(ctx, id)
				if err != nil {
					return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "reload manufacturing order")
				}
				if order == nil {
					return pkgerrors.New(pkgerrors.CodeNotFound, "manufacturing order not found")
				}
				// The order is already Done. Done is terminal: its stock
				// effect is booked, so every later status request is
				// answered with the completed row unchanged.
				result = order
				return nil
			}
			result, err = repo.GetByID(ctx, id)
			if err != nil {
				return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "reload manufacturing order")
			}
			return nil
		}

		claimed, err := repo.ClaimDone(ctx, id)
		if err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "claim manufacturing completion")
		}

		order, err := repo.GetByID(ctx, id)
		if err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "reload manufacturing order")
		}
		if order == nil {
			return pkgerrors.New(pkgerrors.CodeNotFound, "manufacturing order not found")
		}
		result = order

		// Lost the claim: the order was already completed and its stock
		// effect applied.
		if claimed == 0 {
			return nil
		}

		requirements, err := s.recipes.Explode(ctx, tx, order.ProductID, order.QtyToProduce)
		if err != nil {
			return err
		}
		for _, req := range requirements {
			if err := s.ledger.Adjust(ctx, tx, req.ProductID, req.Qty.Neg()); err != nil {
				return err
			}
		}
		return s.ledger.Adjust(ctx, tx, order.ProductID, order.QtyToProduce)
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}
