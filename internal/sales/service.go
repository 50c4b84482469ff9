// Package sales implements the outbound document chain: sales orders and
// the deliveries that fulfill them. Creating a sales order never moves
// stock; the delivery's transition to Shipped is the stock-moving event and
// happens at most once per delivery.
package sales

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/dapursupply/erp-backend/pkg/db/models"
	pkgerrors "github.com/dapursupply/erp-backend/pkg/errors"
	"github.com/dapursupply/erp-backend/pkg/refcode"
)

// Sales order statuses are free text carried from the order lifecycle; only
// these two are written by the system.
const (
	OrderStatusNew  = "Sales Order"
	OrderStatusSent = "Sent"
)

type txRunner interface {
	WithTx(ctx context.Context, fn func(tx *gorm.DB) error) error
}

// Service defines sales order operations.
type Service interface {
	Create(ctx context.Context, input CreateInput) (*models.SalesOrder, error)
	List(ctx context.Context) ([]models.SalesOrder, error)
	Get(ctx context.Context, id uuid.UUID) (*models.SalesOrder, error)
	Items(ctx context.Context, orderID uuid.UUID) ([]models.SalesOrderItem, error)
}

// ItemInput is one sales order line.
type ItemInput struct {
	ProductID uuid.UUID
	Qty       decimal.Decimal
	Price     decimal.Decimal
}

// CreateInput captures a new sales order.
type CreateInput struct {
	CustomerID uuid.UUID
	OrderDate  time.Time
	Items      []ItemInput
}

type service struct {
	repo  Repository
	tx    txRunner
	codes *refcode.Generator
	now   func() time.Time
}

// NewService builds a sales order service with the required dependencies.
func NewService(repo Repository, tx txRunner, codes *refcode.Generator) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("sales repository required")
	}
	if tx == nil {
		return nil, fmt.Errorf("transaction runner required")
	}
	if codes == nil {
		return nil, fmt.Errorf("code generator required")
	}
	return &service{repo: repo, tx: tx, codes: codes, now: time.Now}, nil
}

func (s *service) Create(ctx context.Context, input CreateInput) (*models.SalesOrder, error) {
	if input.CustomerID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "customer id required")
	}
	if len(input.Items) == 0 {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "at least one item required")
	}

	items := make([]models.SalesOrderItem, 0, len(input.Items))
	total := decimal.Zero
	for _, in := range input.Items {
		if in.ProductID == uuid.Nil {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, "item product id required")
		}
		if !in.Qty.IsPositive() {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, "item qty must be positive")
		}
		if in.Price.IsNegative() {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, "item price must not be negative")
		}
		items = append(items, models.SalesOrderItem{
			ProductID: in.ProductID,
			Qty:       in.Qty,
			Price:     in.Price,
		})
		total = total.Add(in.Qty.Mul(in.Price))
	}

	orderDate := input.OrderDate
	if orderDate.IsZero() {
		orderDate = s.now()
	}

	order := &models.SalesOrder{
		Code:       s.codes.New(refcode.PrefixSalesOrder),
		CustomerID: input.CustomerID,
		Total:      total,
		Status:     OrderStatusNew,
		OrderDate:  orderDate,
		Items:      items,
	}

	err := s.tx.WithTx(ctx, func(tx *gorm.DB) error {
		if err := s.repo.WithTx(tx).Create(ctx, order); err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "create sales order")
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return order, nil
}

func (s *service) List(ctx context.Context) ([]models.SalesOrder, error) {
	orders, err := s.repo.List(ctx)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list sales orders")
	}
	return orders, nil
}

func (s *service) Get(ctx context.Context, id uuid.UUID) (*models.SalesOrder, error) {
	if id == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "sales order id required")
	}
	order, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load sales order")
	}
	if order == nil {
		return nil, pkgerrors.New(pkgerrors.CodeNotFound, "sales order not found")
	}
	return order, nil
}

func (s *service) Items(ctx context.Context, orderID uuid.UUID) ([]models.SalesOrderItem, error) {
	if orderID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "sales order id required")
	}
	items, err := s.repo.ListItems(ctx, orderID)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list sales order items")
	}
	return items, nil
}
