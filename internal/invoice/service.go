// Package invoice implements billing documents. An invoice bills the caller's
// total or, by default, the linked sales order's total, and never moves
// stock; at most one exists per sales order. The finance summary nets paid
// invoices against received purchase orders.
package invoice

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/dapursupply/erp-backend/pkg/db/models"
	"github.com/dapursupply/erp-backend/pkg/enums"
	pkgerrors "github.com/dapursupply/erp-backend/pkg/errors"
	"github.com/dapursupply/erp-backend/pkg/refcode"
)

// Payment terms applied to every new invoice.
const dueTerm = 30 * 24 * time.Hour

// SalesOrders is the slice of the sales module the billing flow depends on.
type SalesOrders interface {
	Get(ctx context.Context, id uuid.UUID) (*models.SalesOrder, error)
}

// Expenses reports the money spent on received purchase orders.
type Expenses interface {
	SumReceived(ctx context.Context) (decimal.Decimal, error)
}

// CreateInput captures a new invoice. Total, when given, is the amount
// billed; when absent the sales order total is billed.
type CreateInput struct {
	SalesOrderID uuid.UUID
	Total        *decimal.Decimal
}

// Service defines invoice operations.
type Service interface {
	Create(ctx context.Context, input CreateInput) (*models.Invoice, error)
	List(ctx context.Context) ([]models.Invoice, error)
	Get(ctx context.Context, id uuid.UUID) (*models.Invoice, error)
	UpdateStatus(ctx context.Context, id uuid.UUID, status enums.InvoiceStatus) (*models.Invoice, error)
	FinanceSummary(ctx context.Context) (*FinanceSummary, error)
}

// FinanceSummary nets recognized income against procurement spend.
type FinanceSummary struct {
	Income  decimal.Decimal `json:"income"`
	Expense decimal.Decimal `json:"expense"`
	Profit  decimal.Decimal `json:"profit"`
}

type service struct {
	repo     Repository
	orders   SalesOrders
	expenses Expenses
	codes    *refcode.Generator
	now      func() time.Time
}

// NewService builds an invoice service with the required dependencies.
func NewService(repo Repository, orders SalesOrders, expenses Expenses, codes *refcode.Generator) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("invoice repository required")
	}
	if orders == nil {
		return nil, fmt.Errorf("sales order reader required")
	}
	if expenses == nil {
		return nil, fmt.Errorf("expense reader required")
	}
	if codes == nil {
		return nil, fmt.Errorf("code generator required")
	}
	return &service{repo: repo, orders: orders, expenses: expenses, codes: codes, now: time.Now}, nil
}

func (s *service) Create(ctx context.Context, input CreateInput) (*models.Invoice, error) {
	if input.SalesOrderID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "sales order id required")
	}

	order, err := s.orders.Get(ctx, input.SalesOrderID)
	if err != nil {
		return nil, err
	}

	existing, err := s.repo.FindBySalesOrder(ctx, input.SalesOrderID)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "check existing invoice")
	}
	if existing != nil {
		return nil, pkgerrors.New(pkgerrors.CodeConflict, "sales order already invoiced")
	}

	total := order.Total
	if input.Total != nil {
		total = *input.Total
	}

	invoice := &models.Invoice{
		Code:         s.codes.New(refcode.PrefixInvoice),
		SalesOrderID: order.ID,
		Total:        total,
		DueDate:      s.now().Add(dueTerm),
		Status:       enums.InvoiceStatusUnpaid,
	}
	if err := s.repo.Create(ctx, invoice); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "create invoice")
	}
	return invoice, nil
}

func (s *service) List(ctx context.Context) ([]models.Invoice, error) {
	invoices, err := s.repo.List(ctx)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list invoices")
	}
	return invoices, nil
}

func (s *service) Get(ctx context.Context, id uuid.UUID) (*models.Invoice, error) {
	if id == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "invoice id required")
	}
	invoice, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load invoice")
	}
	if invoice == nil {
		return nil, pkgerrors.New(pkgerrors.CodeNotFound, "invoice not found")
	}
	return invoice, nil
}

func (s *service) UpdateStatus(ctx context.Context, id uuid.UUID, status enums.InvoiceStatus) (*models.Invoice, error) {
	if id == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "invoice id required")
	}
	if !status.IsValid() {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, fmt.Sprintf("invalid invoice status %q", status))
	}

	rows, err := s.repo.UpdateStatus(ctx, id, status)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "update invoice status")
	}
	if rows == 0 {
		return nil, pkgerrors.New(pkgerrors.CodeNotFound, "invoice not found")
	}
	return s.Get(ctx, id)
}

func (s *service) FinanceSummary(ctx context.Context) (*FinanceSummary, error) {
	income, err := s.repo.SumPaid(ctx)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "sum paid invoices")
	}
	expense, err := s.expenses.SumReceived(ctx)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "sum received purchases")
	}
	return &FinanceSummary{
		Income:  income,
		Expense: expense,
		Profit:  income.Sub(expense),
	}, nil
}
