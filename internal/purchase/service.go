// Package purchase implements the procurement document: purchase orders and
// their receipt into stock. Received is terminal; the receipt applies each
// line's quantity and cost to the product through the stock ledger, in the
// same transaction as the status change.
package purchase

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/dapursupply/erp-backend/internal/stock"
	"github.com/dapursupply/erp-backend/pkg/db/models"
	"github.com/dapursupply/erp-backend/pkg/enums"
	pkgerrors "github.com/dapursupply/erp-backend/pkg/errors"
	"github.com/dapursupply/erp-backend/pkg/refcode"
)

type txRunner interface {
	WithTx(ctx context.Context, fn func(tx *gorm.DB) error) error
}

// Service defines purchase order operations.
type Service interface {
	Create(ctx context.Context, input CreateInput) (*models.PurchaseOrder, error)
	Update(ctx context.Context, input UpdateInput) (*models.PurchaseOrder, error)
	List(ctx context.Context) ([]models.PurchaseOrder, error)
	Get(ctx context.Context, id uuid.UUID) (*models.PurchaseOrder, error)
	Items(ctx context.Context, orderID uuid.UUID) ([]models.PurchaseItem, error)
}

// ItemInput is one purchase order line.
type ItemInput struct {
	ProductID uuid.UUID
	Qty       decimal.Decimal
	Cost      decimal.Decimal
}

// CreateInput captures a new purchase order. Creating directly in the
// Received state applies the stock effect immediately.
type CreateInput struct {
	VendorID uuid.UUID
	Status   enums.PurchaseStatus
	Items    []ItemInput
}

// UpdateInput replaces the header and lines of an existing order.
type UpdateInput struct {
	ID       uuid.UUID
	VendorID uuid.UUID
	Status   enums.PurchaseStatus
	Items    []ItemInput
}

type service struct {
	repo   Repository
	tx     txRunner
	ledger stock.Ledger
	codes  *refcode.Generator
}

// NewService builds a purchase service with the required dependencies.
func NewService(repo Repository, tx txRunner, ledger stock.Ledger, codes *refcode.Generator) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("purchase repository required")
	}
	if tx == nil {
		return nil, fmt.Errorf("transaction runner required")
	}
	if ledger == nil {
		return nil, fmt.Errorf("stock ledger required")
	}
	if codes == nil {
		return nil, fmt.Errorf("code generator required")
	}
	return &service{repo: repo, tx: tx, ledger: ledger, codes: codes}, nil
}

func (s *service) Create(ctx context.Context, input CreateInput) (*models.PurchaseOrder, error) {
	if input.VendorID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "vendor id required")
	}
	status := input.Status
	if status == "" {
		status = enums.PurchaseStatusDraft
	}
	if !status.IsValid() {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, fmt.Sprintf("invalid purchase status %q", input.Status))
	}
	items, total, err := buildItems(input.Items)
	if err != nil {
		return nil, err
	}

	order := &models.PurchaseOrder{
		Code:     s.codes.New(refcode.PrefixPurchaseOrder),
		VendorID: input.VendorID,
		Total:    total,
		Status:   status,
		Items:    items,
	}

	err = s.tx.WithTx(ctx, func(tx *gorm.DB) error {
		repo := s.repo.WithTx(tx)
		if err := repo.Create(ctx, order); err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "create purchase order")
		}
		if status == enums.PurchaseStatusReceived {
			return s.receiveItems(ctx, tx, order.Items)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return order, nil
}

func (s *service) Update(ctx context.Context, input UpdateInput) (*models.PurchaseOrder, error) {
	if input.ID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "purchase order id required")
	}
	if input.VendorID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "vendor id required")
	}
	if !input.Status.IsValid() {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, fmt.Sprintf("invalid purchase status %q", input.Status))
	}
	items, total, err := buildItems(input.Items)
	if err != nil {
		return nil, err
	}

	var updated *models.PurchaseOrder
	err = s.tx.WithTx(ctx, func(tx *gorm.DB) error {
		repo := s.repo.WithTx(tx)

		claimed, err := repo.ClaimUpdate(ctx, input.ID, HeaderUpdate{
			VendorID: input.VendorID,
			Total:    total,
			Status:   input.Status,
		})
		if err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "update purchase order")
		}
		if claimed == 0 {
			exists, err := repo.Exists(ctx, input.ID)
			if err != nil {
				return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "check purchase order")
			}
			if !exists {
				return pkgerrors.New(pkgerrors.CodeNotFound, "purchase order not found")
			}
			return pkgerrors.New(pkgerrors.CodeStateConflict, "purchase order already received")
		}

		if err := repo.ReplaceItems(ctx, input.ID, items); err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "replace purchase items")
		}
		if input.Status == enums.PurchaseStatusReceived {
			if err := s.receiveItems(ctx, tx, items); err != nil {
				return err
			}
		}

		updated, err = repo.GetByID(ctx, input.ID)
		if err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "reload purchase order")
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return updated, nil
}

func (s *service) List(ctx context.Context) ([]models.PurchaseOrder, error) {
	orders, err := s.repo.List(ctx)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list purchase orders")
	}
	return orders, nil
}

func (s *service) Get(ctx context.Context, id uuid.UUID) (*models.PurchaseOrder, error) {
	if id == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "purchase order id required")
	}
	order, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load purchase order")
	}
	if order == nil {
		return nil, pkgerrors.New(pkgerrors.CodeNotFound, "purchase order not found")
	}
	return order, nil
}

func (s *service) Items(ctx context.Context, orderID uuid.UUID) ([]models.PurchaseItem, error) {
	if orderID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "purchase order id required")
	}
	items, err := s.repo.ListItems(ctx, orderID)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list purchase items")
	}
	return items, nil
}

func (s *service) receiveItems(ctx context.Context, tx *gorm.DB, items []models.PurchaseItem) error {
	for _, item := range items {
		if err := s.ledger.Receive(ctx, tx, item.ProductID, item.Qty, item.Cost); err != nil {
			return err
		}
	}
	return nil
}

func buildItems(inputs []ItemInput) ([]models.PurchaseItem, decimal.Decimal, error) {
	if len(inputs) == 0 {
		return nil, decimal.Zero, pkgerrors.New(pkgerrors.CodeValidation, "at least one item required")
	}
	items := make([]models.PurchaseItem, 0, len(inputs))
	total := decimal.Zero
	for _, in := range inputs {
		if in.ProductID == uuid.Nil {
			return nil, decimal.Zero, pkgerrors.New(pkgerrors.CodeValidation, "item product id required")
		}
		if !in.Qty.IsPositive() {
			return nil, decimal.Zero, pkgerrors.New(pkgerrors.CodeValidation, "item qty must be positive")
		}
		if in.Cost.IsNegative() {
			return nil, decimal.Zero, pkgerrors.New(pkgerrors.CodeValidation, "item cost must not be negative")
		}
		items = append(items, models.PurchaseItem{
			ProductID: in.ProductID,
			Qty:       in.Qty,
			Cost:      in.Cost,
		})
		total = total.Add(in.Qty.Mul(in.Cost))
	}
	return items, total, nil
}
