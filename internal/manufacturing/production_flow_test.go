package manufacturing

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/dapursupply/erp-backend/internal/bom"
	"github.com/dapursupply/erp-backend/internal/stock"
	"github.com/dapursupply/erp-backend/pkg/enums"
)

type dbTxRunner struct {
	db *gorm.DB
}

func (r dbTxRunner) WithTx(ctx context.Context, fn func(tx *gorm.DB) error) error {
	return r.db.WithContext(ctx).Transaction(fn)
}

func setupProductionTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open("file::memory:?cache=shared"), &gorm.Config{})
	require.NoError(t, err)

	schema := []string{
		`CREATE TABLE IF NOT EXISTS products (
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
);`,
		`CREATE TABLE IF NOT EXISTS boms (
  id TEXT PRIMARY KEY,
  name TEXT NOT NULL,
  product_id TEXT NOT NULL,
  created_at DATETIME,
  updated_at DATETIME
);`,
		`CREATE TABLE IF NOT EXISTS bom_items (
  id TEXT PRIMARY KEY,
  bom_id TEXT NOT NULL,
  product_id TEXT NOT NULL,
  qty NUMERIC NOT NULL,
  created_at DATETIME
);`,
		`CREATE TABLE IF NOT EXISTS manufacturing_orders (
  id TEXT PRIMARY KEY,
  code TEXT NOT NULL,
  product_id TEXT NOT NULL,
  qty_to_produce NUMERIC NOT NULL,
  status TEXT NOT NULL,
  created_at DATETIME,
  updated_at DATETIME
);`,
	}
	for _, stmt := range schema {
		require.NoError(t, db.Exec(stmt).Error)
	}
	return db
}

func seedProduct(t *testing.T, db *gorm.DB, name, stockQty string) uuid.UUID {
	t.Helper()
	id := uuid.New()
	require.NoError(t, db.Exec(
		`INSERT INTO products (id, sku, name, stock) VALUES (?, ?, ?, ?)`,
		id, "SKU-"+id.String()[:8], name, stockQty,
	).Error)
	return id
}

func seedManufacturingOrder(t *testing.T, db *gorm.DB, productID uuid.UUID, qty string) uuid.UUID {
	t.Helper()
	id := uuid.New()
	require.NoError(t, db.Exec(
		`INSERT INTO manufacturing_orders (id, code, product_id, qty_to_produce, status, created_at, updated_at)
		 VALUES (?, ?, ?, ?, ?, CURRENT_TIMESTAMP, CURRENT_TIMESTAMP)`,
		id, "MO-1700000000000", productID, qty, enums.ManufacturingStatusDraft,
	).Error)
	return id
}

func currentStock(t *testing.T, db *gorm.DB, id uuid.UUID) decimal.Decimal {
	t.Helper()
	var raw string
	require.NoError(t, db.Raw(`SELECT stock FROM products WHERE id = ?`, id).Scan(&raw).Error)
	value, err := decimal.NewFromString(raw)
	require.NoError(t, err)
	return value
}

// Completing an order for 10 units whose recipe consumes one ingredient per
// unit moves exactly 10 units from the ingredient to the product, once.
func TestProductionFlowMovesStockExactlyOnce(t *testing.T) {
	db := setupProductionTestDB(t)
	ctx := context.Background()

	ingredient := seedProduct(t, db, "Rice 1kg", "50")
	product := seedProduct(t, db, "Nasi Box", "0")

	bomID := uuid.New()
	require.NoError(t, db.Exec(
		`INSERT INTO boms (id, name, product_id, created_at, updated_at) VALUES (?, ?, ?, CURRENT_TIMESTAMP, CURRENT_TIMESTAMP)`,
		bomID, "Nasi Box recipe", product,
	).Error)
	require.NoError(t, db.Exec(
		`INSERT INTO bom_items (id, bom_id, product_id, qty, created_at) VALUES (?, ?, ?, ?, CURRENT_TIMESTAMP)`,
		uuid.New(), bomID, ingredient, "1",
	).Error)

	recipes, err := bom.NewService(bom.NewRepository(db))
	require.NoError(t, err)

	svc, err := NewService(NewRepository(db), dbTxRunner{db: db}, recipes, stock.NewLedger(), testCodes())
	require.NoError(t, err)

	orderID := seedManufacturingOrder(t, db, product, "10")

	done, err := svc.UpdateStatus(ctx, orderID, enums.ManufacturingStatusDone)
	require.NoError(t, err)
	require.Equal(t, enums.ManufacturingStatusDone, done.Status)

	require.True(t, currentStock(t, db, ingredient).Equal(decimal.NewFromInt(40)))
	require.True(t, currentStock(t, db, product).Equal(decimal.NewFromInt(10)))

	// a second completion request changes nothing
	again, err := svc.UpdateStatus(ctx, orderID, enums.ManufacturingStatusDone)
	require.NoError(t, err)
	require.Equal(t, enums.ManufacturingStatusDone, again.Status)
	require.True(t, currentStock(t, db, ingredient).Equal(decimal.NewFromInt(40)))
	require.True(t, currentStock(t, db, product).Equal(decimal.NewFromInt(10)))
}

// A completed order ignores every later status request: a Cancelled request
// leaves it Done, and a further Done request does not book the recipe again.
func TestCancelledRequestAfterCompletionChangesNothing(t *testing.T) {
	db := setupProductionTestDB(t)
	ctx := context.Background()

	ingredient := seedProduct(t, db, "Rice 1kg", "50")
	product := seedProduct(t, db, "Nasi Box", "0")

	bomID := uuid.New()
	require.NoError(t, db.Exec(
		`INSERT INTO boms (id, name, product_id, created_at, updated_at) VALUES (?, ?, ?, CURRENT_TIMESTAMP, CURRENT_TIMESTAMP)`,
		bomID, "Nasi Box recipe", product,
	).Error)
	require.NoError(t, db.Exec(
		`INSERT INTO bom_items (id, bom_id, product_id, qty, created_at) VALUES (?, ?, ?, ?, CURRENT_TIMESTAMP)`,
		uuid.New(), bomID, ingredient, "1",
	).Error)

	recipes, err := bom.NewService(bom.NewRepository(db))
	require.NoError(t, err)

	svc, err := NewService(NewRepository(db), dbTxRunner{db: db}, recipes, stock.NewLedger(), testCodes())
	require.NoError(t, err)

	orderID := seedManufacturingOrder(t, db, product, "10")

	done, err := svc.UpdateStatus(ctx, orderID, enums.ManufacturingStatusDone)
	require.NoError(t, err)
	require.Equal(t, enums.ManufacturingStatusDone, done.Status)

	cancelled, err := svc.UpdateStatus(ctx, orderID, enums.ManufacturingStatusCancelled)
	require.NoError(t, err)
	require.Equal(t, enums.ManufacturingStatusDone, cancelled.Status)

	again, err := svc.UpdateStatus(ctx, orderID, enums.ManufacturingStatusDone)
	require.NoError(t, err)
	require.Equal(t, enums.ManufacturingStatusDone, again.Status)

	require.True(t, currentStock(t, db, ingredient).Equal(decimal.NewFromInt(40)))
	require.True(t, currentStock(t, db, product).Equal(decimal.NewFromInt(10)))
}

// A completion that fails recipe resolution leaves both the order status and
// all stock untouched.
func TestProductionFlowWithoutRecipeRollsBack(t *testing.T) {
	db := setupProductionTestDB(t)
	ctx := context.Background()

	product := seedProduct(t, db, "Mystery Box", "0")

	recipes, err := bom.NewService(bom.NewRepository(db))
	require.NoError(t, err)

	svc, err := NewService(NewRepository(db), dbTxRunner{db: db}, recipes, stock.NewLedger(), testCodes())
	require.NoError(t, err)

	orderID := seedManufacturingOrder(t, db, product, "5")

	_, err = svc.UpdateStatus(ctx, orderID, enums.ManufacturingStatusDone)
	require.Error(t, err)

	reloaded, err := svc.Get(ctx, orderID)
	require.NoError(t, err)
	require.Equal(t, enums.ManufacturingStatusDraft, reloaded.Status)
	require.True(t, currentStock(t, db, product).Equal(decimal.Zero))
}
