// Package stock is the only writer of the products.stock column. Every
// movement is a single conditional UPDATE executed inside the caller's
// transaction, so concurrent documents serialize on the product row and a
// failed document write never leaves a stock change behind.
package stock

import (
	"context"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	pkgerrors "github.com/dapursupply/erp-backend/pkg/errors"
)

// Ledger applies stock movements to product rows.
type Ledger interface {
	// Adjust adds delta (which may be negative) to the product's stock.
	Adjust(ctx context.Context, tx *gorm.DB, productID uuid.UUID, delta decimal.Decimal) error
	// Receive adds qty to stock and records the latest purchase cost.
	Receive(ctx context.Context, tx *gorm.DB, productID uuid.UUID, qty, cost decimal.Decimal) error
}

type ledgerImpl struct{}

// NewLedger exposes the default stock ledger implementation.
func NewLedger() Ledger {
	return ledgerImpl{}
}

func (ledgerImpl) Adjust(ctx context.Context, tx *gorm.DB, productID uuid.UUID, delta decimal.Decimal) error {
	if delta.IsZero() {
		return nil
	}
	if tx == nil {
		return pkgerrors.New(pkgerrors.CodeDependency, "transaction required for stock adjustment")
	}

	res := tx.WithContext(ctx).Exec(`
		UPDATE products
		SET stock = stock + ?,
			updated_at = CURRENT_TIMESTAMP
		WHERE id = ?
	`, delta, productID)
	if res.Error != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, res.Error, "adjust stock")
	}
	if res.RowsAffected == 0 {
		return pkgerrors.New(pkgerrors.CodeNotFound, "product not found")
	}
	return nil
}

func (ledgerImpl) Receive(ctx context.Context, tx *gorm.DB, productID uuid.UUID, qty, cost decimal.Decimal) error {
	if qty.IsZero() {
		return nil
	}
	if tx == nil {
		return pkgerrors.New(pkgerrors.CodeDependency, "transaction required for stock receipt")
	}

	// Last receipt wins on cost.
	res := tx.WithContext(ctx).Exec(`
		UPDATE products
		SET stock = stock + ?,
			cost = ?,
			updated_at = CURRENT_TIMESTAMP
		WHERE id = ?
	`, qty, cost, productID)
	if res.Error != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, res.Error, "receive stock")
	}
	if res.RowsAffected == 0 {
		return pkgerrors.New(pkgerrors.CodeNotFound, "product not found")
	}
	return nil
}
