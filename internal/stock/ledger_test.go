package stock

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	pkgerrors "github.com/dapursupply/erp-backend/pkg/errors"
)

func setupStockTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open("file::memory:?cache=shared"), &gorm.Config{})
	require.NoError(t, err)

	products := `
CREATE TABLE IF NOT EXISTS products (
  id TEXT PRIMARY KEY,
  sku TEXT NOT NULL,
  name TEXT NOT NULL,
  category TEXT NOT NULL DEFAULT '',
  price NUMERIC NOT NULL DEFAULT 0,
  cost NUMERIC NOT NULL DEFAULT 0,
  stock NUMERIC NOT NULL DEFAULT 0,
  image_url TEXT,
  created_at DATETIME,
  updated_at DATETIME
);`
	require.NoError(t, db.Exec(products).Error)
	return db
}

func insertProduct(t *testing.T, db *gorm.DB, stock string) uuid.UUID {
	t.Helper()
	id := uuid.New()
	require.NoError(t, db.Exec(
		`INSERT INTO products (id, sku, name, stock) VALUES (?, ?, ?, ?)`,
		id, "SKU-"+id.String()[:8], "Test Product", stock,
	).Error)
	return id
}

func productStock(t *testing.T, db *gorm.DB, id uuid.UUID) decimal.Decimal {
	t.Helper()
	var raw string
	require.NoError(t, db.Raw(`SELECT stock FROM products WHERE id = ?`, id).Scan(&raw).Error)
	value, err := decimal.NewFromString(raw)
	require.NoError(t, err)
	return value
}

func TestAdjustAddsAndSubtracts(t *testing.T) {
	db := setupStockTestDB(t)
	ledger := NewLedger()
	ctx := context.Background()

	id := insertProduct(t, db, "50")

	require.NoError(t, ledger.Adjust(ctx, db, id, decimal.NewFromInt(10)))
	require.True(t, productStock(t, db, id).Equal(decimal.NewFromInt(60)))

	require.NoError(t, ledger.Adjust(ctx, db, id, decimal.NewFromInt(-25)))
	require.True(t, productStock(t, db, id).Equal(decimal.NewFromInt(35)))
}

func TestAdjustAllowsNegativeStock(t *testing.T) {
	db := setupStockTestDB(t)
	ledger := NewLedger()

	id := insertProduct(t, db, "5")

	require.NoError(t, ledger.Adjust(context.Background(), db, id, decimal.NewFromInt(-8)))
	require.True(t, productStock(t, db, id).Equal(decimal.NewFromInt(-3)))
}

func TestAdjustZeroDeltaIsNoOp(t *testing.T) {
	db := setupStockTestDB(t)
	ledger := NewLedger()

	id := insertProduct(t, db, "7")

	require.NoError(t, ledger.Adjust(context.Background(), db, id, decimal.Zero))
	require.True(t, productStock(t, db, id).Equal(decimal.NewFromInt(7)))
}

func TestAdjustUnknownProductReturnsNotFound(t *testing.T) {
	db := setupStockTestDB(t)
	ledger := NewLedger()

	err := ledger.Adjust(context.Background(), db, uuid.New(), decimal.NewFromInt(1))
	require.Error(t, err)

	typed := pkgerrors.As(err)
	require.NotNil(t, typed)
	require.Equal(t, pkgerrors.CodeNotFound, typed.Code())
}

func TestAdjustRequiresTransaction(t *testing.T) {
	ledger := NewLedger()

	err := ledger.Adjust(context.Background(), nil, uuid.New(), decimal.NewFromInt(1))
	require.Error(t, err)

	typed := pkgerrors.As(err)
	require.NotNil(t, typed)
	require.Equal(t, pkgerrors.CodeDependency, typed.Code())
}

func TestReceiveAddsStockAndRewritesCost(t *testing.T) {
	db := setupStockTestDB(t)
	ledger := NewLedger()
	ctx := context.Background()

	id := insertProduct(t, db, "10")

	require.NoError(t, ledger.Receive(ctx, db, id, decimal.NewFromInt(4), decimal.RequireFromString("2.50")))
	require.True(t, productStock(t, db, id).Equal(decimal.NewFromInt(14)))

	var rawCost string
	require.NoError(t, db.Raw(`SELECT cost FROM products WHERE id = ?`, id).Scan(&rawCost).Error)
	cost, err := decimal.NewFromString(rawCost)
	require.NoError(t, err)
	require.True(t, cost.Equal(decimal.RequireFromString("2.50")))

	// a later receipt overwrites the cost
	require.NoError(t, ledger.Receive(ctx, db, id, decimal.NewFromInt(1), decimal.RequireFromString("3.10")))
	require.NoError(t, db.Raw(`SELECT cost FROM products WHERE id = ?`, id).Scan(&rawCost).Error)
	cost, err = decimal.NewFromString(rawCost)
	require.NoError(t, err)
	require.True(t, cost.Equal(decimal.RequireFromString("3.10")))
}

func TestReceiveFractionalQty(t *testing.T) {
	db := setupStockTestDB(t)
	ledger := NewLedger()

	id := insertProduct(t, db, "0")

	require.NoError(t, ledger.Receive(context.Background(), db, id, decimal.RequireFromString("2.5"), decimal.NewFromInt(1)))
	require.True(t, productStock(t, db, id).Equal(decimal.RequireFromString("2.5")))
}
