package purchase

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/dapursupply/erp-backend/pkg/db/models"
	"github.com/dapursupply/erp-backend/pkg/enums"
	pkgerrors "github.com/dapursupply/erp-backend/pkg/errors"
	"github.com/dapursupply/erp-backend/pkg/refcode"
)

type stubRepo struct {
	created       *models.PurchaseOrder
	claimRows     int64
	claimedUpdate *HeaderUpdate
	exists        bool
	replaced      []models.PurchaseItem
	loaded        *models.PurchaseOrder
}

func (s *stubRepo) WithTx(tx *gorm.DB) Repository { return s }

func (s *stubRepo) Create(ctx context.Context, order *models.PurchaseOrder) error {
	s.created = order
	return nil
}

func (s *stubRepo) List(ctx context.Context) ([]models.PurchaseOrder, error) {
	return nil, nil
}

func (s *stubRepo) GetByID(ctx context.Context, id uuid.UUID) (*models.PurchaseOrder, error) {
	return s.loaded, nil
}

func (s *stubRepo) ListItems(ctx context.Context, orderID uuid.UUID) ([]models.PurchaseItem, error) {
	return nil, nil
}

func (s *stubRepo) ClaimUpdate(ctx context.Context, id uuid.UUID, update HeaderUpdate) (int64, error) {
	s.claimedUpdate = &update
	return s.claimRows, nil
}

func (s *stubRepo) ReplaceItems(ctx context.Context, orderID uuid.UUID, items []models.PurchaseItem) error {
	s.replaced = items
	return nil
}

func (s *stubRepo) Exists(ctx context.Context, id uuid.UUID) (bool, error) {
	return s.exists, nil
}

func (s *stubRepo) SumReceived(ctx context.Context) (decimal.Decimal, error) {
	return decimal.Zero, nil
}

type receiveCall struct {
	productID uuid.UUID
	qty       decimal.Decimal
	cost      decimal.Decimal
}

type stubLedger struct {
	receives []receiveCall
	adjusts  []receiveCall
	err      error
}

func (s *stubLedger) Adjust(ctx context.Context, tx *gorm.DB, productID uuid.UUID, delta decimal.Decimal) error {
	if s.err != nil {
		return s.err
	}
	s.adjusts = append(s.adjusts, receiveCall{productID: productID, qty: delta})
	return nil
}

func (s *stubLedger) Receive(ctx context.Context, tx *gorm.DB, productID uuid.UUID, qty, cost decimal.Decimal) error {
	if s.err != nil {
		return s.err
	}
	s.receives = append(s.receives, receiveCall{productID: productID, qty: qty, cost: cost})
	return nil
}

type stubTxRunner struct{}

func (stubTxRunner) WithTx(ctx context.Context, fn func(tx *gorm.DB) error) error {
	return fn(nil)
}

func testCodes() *refcode.Generator {
	return refcode.NewGeneratorAt(func() time.Time { return time.UnixMilli(1700000000000) })
}

func TestCreateDraftDoesNotTouchStock(t *testing.T) {
	repo := &stubRepo{}
	ledger := &stubLedger{}
	svc, err := NewService(repo, stubTxRunner{}, ledger, testCodes())
	if err != nil {
		t.Fatalf("service constructor failed: %v", err)
	}

	order, err := svc.Create(context.Background(), CreateInput{
		VendorID: uuid.New(),
		Items: []ItemInput{
			{ProductID: uuid.New(), Qty: decimal.NewFromInt(10), Cost: decimal.NewFromInt(2)},
		},
	})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if order.Status != enums.PurchaseStatusDraft {
		t.Fatalf("expected draft status, got %s", order.Status)
	}
	if order.Code != "PO-1700000000000" {
		t.Fatalf("unexpected code %q", order.Code)
	}
	if !order.Total.Equal(decimal.NewFromInt(20)) {
		t.Fatalf("unexpected total %s", order.Total)
	}
	if len(ledger.receives) != 0 {
		t.Fatalf("draft create must not move stock, got %d receives", len(ledger.receives))
	}
}

func TestCreateReceivedAppliesStockPerLine(t *testing.T) {
	repo := &stubRepo{}
	ledger := &stubLedger{}
	svc, _ := NewService(repo, stubTxRunner{}, ledger, testCodes())

	flour := uuid.New()
	sugar := uuid.New()
	_, err := svc.Create(context.Background(), CreateInput{
		VendorID: uuid.New(),
		Status:   enums.PurchaseStatusReceived,
		Items: []ItemInput{
			{ProductID: flour, Qty: decimal.NewFromInt(10), Cost: decimal.RequireFromString("1.50")},
			{ProductID: sugar, Qty: decimal.NewFromInt(5), Cost: decimal.NewFromInt(3)},
		},
	})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if len(ledger.receives) != 2 {
		t.Fatalf("expected 2 receives, got %d", len(ledger.receives))
	}
	if ledger.receives[0].productID != flour || !ledger.receives[0].qty.Equal(decimal.NewFromInt(10)) {
		t.Fatalf("unexpected first receive %+v", ledger.receives[0])
	}
	if !ledger.receives[1].cost.Equal(decimal.NewFromInt(3)) {
		t.Fatalf("unexpected second receive cost %s", ledger.receives[1].cost)
	}
}

func TestCreateValidatesItems(t *testing.T) {
	svc, _ := NewService(&stubRepo{}, stubTxRunner{}, &stubLedger{}, testCodes())

	_, err := svc.Create(context.Background(), CreateInput{VendorID: uuid.New()})
	typed := pkgerrors.As(err)
	if typed == nil || typed.Code() != pkgerrors.CodeValidation {
		t.Fatalf("expected validation error, got %v", err)
	}

	_, err = svc.Create(context.Background(), CreateInput{
		VendorID: uuid.New(),
		Items:    []ItemInput{{ProductID: uuid.New(), Qty: decimal.Zero, Cost: decimal.NewFromInt(1)}},
	})
	typed = pkgerrors.As(err)
	if typed == nil || typed.Code() != pkgerrors.CodeValidation {
		t.Fatalf("expected validation error for zero qty, got %v", err)
	}
}

func TestUpdateReceivedOrderIsRejected(t *testing.T) {
	repo := &stubRepo{claimRows: 0, exists: true}
	ledger := &stubLedger{}
	svc, _ := NewService(repo, stubTxRunner{}, ledger, testCodes())

	_, err := svc.Update(context.Background(), UpdateInput{
		ID:       uuid.New(),
		VendorID: uuid.New(),
		Status:   enums.PurchaseStatusOrdered,
		Items:    []ItemInput{{ProductID: uuid.New(), Qty: decimal.NewFromInt(1), Cost: decimal.NewFromInt(1)}},
	})
	typed := pkgerrors.As(err)
	if typed == nil || typed.Code() != pkgerrors.CodeStateConflict {
		t.Fatalf("expected state conflict, got %v", err)
	}
	if len(ledger.receives) != 0 {
		t.Fatal("rejected update must not move stock")
	}
}

func TestUpdateMissingOrderIsNotFound(t *testing.T) {
	repo := &stubRepo{claimRows: 0, exists: false}
	svc, _ := NewService(repo, stubTxRunner{}, &stubLedger{}, testCodes())

	_, err := svc.Update(context.Background(), UpdateInput{
		ID:       uuid.New(),
		VendorID: uuid.New(),
		Status:   enums.PurchaseStatusOrdered,
		Items:    []ItemInput{{ProductID: uuid.New(), Qty: decimal.NewFromInt(1), Cost: decimal.NewFromInt(1)}},
	})
	typed := pkgerrors.As(err)
	if typed == nil || typed.Code() != pkgerrors.CodeNotFound {
		t.Fatalf("expected not found, got %v", err)
	}
}

func TestUpdateToReceivedReplacesItemsAndReceives(t *testing.T) {
	orderID := uuid.New()
	repo := &stubRepo{claimRows: 1, loaded: &models.PurchaseOrder{ID: orderID}}
	ledger := &stubLedger{}
	svc, _ := NewService(repo, stubTxRunner{}, ledger, testCodes())

	product := uuid.New()
	updated, err := svc.Update(context.Background(), UpdateInput{
		ID:       orderID,
		VendorID: uuid.New(),
		Status:   enums.PurchaseStatusReceived,
		Items:    []ItemInput{{ProductID: product, Qty: decimal.NewFromInt(4), Cost: decimal.NewFromInt(2)}},
	})
	if err != nil {
		t.Fatalf("update: %v", err)
	}
	if updated == nil || updated.ID != orderID {
		t.Fatalf("unexpected updated order %+v", updated)
	}
	if repo.claimedUpdate == nil || !repo.claimedUpdate.Total.Equal(decimal.NewFromInt(8)) {
		t.Fatalf("unexpected header update %+v", repo.claimedUpdate)
	}
	if len(repo.replaced) != 1 || repo.replaced[0].ProductID != product {
		t.Fatalf("unexpected replaced items %+v", repo.replaced)
	}
	if len(ledger.receives) != 1 || !ledger.receives[0].qty.Equal(decimal.NewFromInt(4)) {
		t.Fatalf("unexpected receives %+v", ledger.receives)
	}
}

func TestUpdateWithoutReceiveKeepsStockUntouched(t *testing.T) {
	orderID := uuid.New()
	repo := &stubRepo{claimRows: 1, loaded: &models.PurchaseOrder{ID: orderID}}
	ledger := &stubLedger{}
	svc, _ := NewService(repo, stubTxRunner{}, ledger, testCodes())

	_, err := svc.Update(context.Background(), UpdateInput{
		ID:       orderID,
		VendorID: uuid.New(),
		Status:   enums.PurchaseStatusOrdered,
		Items:    []ItemInput{{ProductID: uuid.New(), Qty: decimal.NewFromInt(4), Cost: decimal.NewFromInt(2)}},
	})
	if err != nil {
		t.Fatalf("update: %v", err)
	}
	if len(ledger.receives) != 0 {
		t.Fatal("ordered update must not move stock")
	}
}
