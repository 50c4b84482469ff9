package manufacturing

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/dapursupply/erp-backend/internal/bom"
	"github.com/dapursupply/erp-backend/pkg/db/models"
	"github.com/dapursupply/erp-backend/pkg/enums"
	pkgerrors "github.com/dapursupply/erp-backend/pkg/errors"
	"github.com/dapursupply/erp-backend/pkg/refcode"
)

type stubRepo struct {
	created     *models.ManufacturingOrder
	order       *models.ManufacturingOrder
	claimRows   int64
	updateRows  int64
	claimCalled bool
}

func (s *stubRepo) WithTx(tx *gorm.DB) Repository { return s }

func (s *stubRepo) Create(ctx context.Context, order *models.ManufacturingOrder) error {
	s.created = order
	return nil
}

func (s *stubRepo) List(ctx context.Context) ([]models.ManufacturingOrder, error) {
	return nil, nil
}

func (s *stubRepo) GetByID(ctx context.Context, id uuid.UUID) (*models.ManufacturingOrder, error) {
	return s.order, nil
}

func (s *stubRepo) ClaimDone(ctx context.Context, id uuid.UUID) (int64, error) {
	s.claimCalled = true
	return s.claimRows, nil
}

func (s *stubRepo) UpdateStatus(ctx context.Context, id uuid.UUID, status enums.ManufacturingStatus) (int64, error) {
	return s.updateRows, nil
}

type stubRecipes struct {
	requirements []bom.Requirement
	err          error
}

func (s *stubRecipes) Explode(ctx context.Context, tx *gorm.DB, productID uuid.UUID, factor decimal.Decimal) ([]bom.Requirement, error) {
	if s.err != nil {
		return nil, s.err
	}
	return s.requirements, nil
}

type adjustCall struct {
	productID uuid.UUID
	delta     decimal.Decimal
}

type stubLedger struct {
	adjusts []adjustCall
	err     error
}

func (s *stubLedger) Adjust(ctx context.Context, tx *gorm.DB, productID uuid.UUID, delta decimal.Decimal) error {
	if s.err != nil {
		return s.err
	}
	s.adjusts = append(s.adjusts, adjustCall{productID: productID, delta: delta})
	return nil
}

func (s *stubLedger) Receive(ctx context.Context, tx *gorm.DB, productID uuid.UUID, qty, cost decimal.Decimal) error {
	return nil
}

type stubTxRunner struct{}

func (stubTxRunner) WithTx(ctx context.Context, fn func(tx *gorm.DB) error) error {
	return fn(nil)
}

func testCodes() *refcode.Generator {
	return refcode.NewGeneratorAt(func() time.Time { return time.UnixMilli(1700000000000) })
}

func newTestService(t *testing.T, repo *stubRepo, recipes *stubRecipes, ledger *stubLedger) Service {
	t.Helper()
	svc, err := NewService(repo, stubTxRunner{}, recipes, ledger, testCodes())
	if err != nil {
		t.Fatalf("service constructor failed: %v", err)
	}
	return svc
}

func TestCreateStartsDraft(t *testing.T) {
	repo := &stubRepo{}
	svc := newTestService(t, repo, &stubRecipes{}, &stubLedger{})

	order, err := svc.Create(context.Background(), CreateInput{
		ProductID:    uuid.New(),
		QtyToProduce: decimal.NewFromInt(10),
	})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if order.Status != enums.ManufacturingStatusDraft {
		t.Fatalf("unexpected status %s", order.Status)
	}
	if order.Code != "MO-1700000000000" {
		t.Fatalf("unexpected code %q", order.Code)
	}
}

func TestCreateRequiresPositiveQty(t *testing.T) {
	svc := newTestService(t, &stubRepo{}, &stubRecipes{}, &stubLedger{})

	_, err := svc.Create(context.Background(), CreateInput{
		ProductID:    uuid.New(),
		QtyToProduce: decimal.Zero,
	})
	typed := pkgerrors.As(err)
	if typed == nil || typed.Code() != pkgerrors.CodeValidation {
		t.Fatalf("expected validation error, got %v", err)
	}
}

func TestCompleteConsumesRecipeAndAddsProduct(t *testing.T) {
	orderID := uuid.New()
	product := uuid.New()
	flour := uuid.New()
	egg := uuid.New()

	repo := &stubRepo{
		claimRows: 1,
		order: &models.ManufacturingOrder{
			ID:           orderID,
			ProductID:    product,
			QtyToProduce: decimal.NewFromInt(10),
			Status:       enums.ManufacturingStatusDone,
		},
	}
	recipes := &stubRecipes{
		requirements: []bom.Requirement{
			{ProductID: flour, Qty: decimal.NewFromInt(10)},
			{ProductID: egg, Qty: decimal.NewFromInt(20)},
		},
	}
	ledger := &stubLedger{}
	svc := newTestService(t, repo, recipes, ledger)

	result, err := svc.UpdateStatus(context.Background(), orderID, enums.ManufacturingStatusDone)
	if err != nil {
		t.Fatalf("update status: %v", err)
	}
	if result.Status != enums.ManufacturingStatusDone {
		t.Fatalf("unexpected status %s", result.Status)
	}
	if len(ledger.adjusts) != 3 {
		t.Fatalf("expected 3 adjustments, got %d", len(ledger.adjusts))
	}
	if ledger.adjusts[0].productID != flour || !ledger.adjusts[0].delta.Equal(decimal.NewFromInt(-10)) {
		t.Fatalf("unexpected flour adjustment %+v", ledger.adjusts[0])
	}
	if ledger.adjusts[1].productID != egg || !ledger.adjusts[1].delta.Equal(decimal.NewFromInt(-20)) {
		t.Fatalf("unexpected egg adjustment %+v", ledger.adjusts[1])
	}
	if ledger.adjusts[2].productID != product || !ledger.adjusts[2].delta.Equal(decimal.NewFromInt(10)) {
		t.Fatalf("unexpected product adjustment %+v", ledger.adjusts[2])
	}
}

func TestCompleteTwiceIsANoOp(t *testing.T) {
	orderID := uuid.New()
	repo := &stubRepo{
		claimRows: 0, // already done
		order: &models.ManufacturingOrder{
			ID:     orderID,
			Status: enums.ManufacturingStatusDone,
		},
	}
	ledger := &stubLedger{}
	svc := newTestService(t, repo, &stubRecipes{}, ledger)

	result, err := svc.UpdateStatus(context.Background(), orderID, enums.ManufacturingStatusDone)
	if err != nil {
		t.Fatalf("update status: %v", err)
	}
	if result == nil || result.Status != enums.ManufacturingStatusDone {
		t.Fatalf("unexpected result %+v", result)
	}
	if len(ledger.adjusts) != 0 {
		t.Fatalf("repeat completion must not move stock, got %d adjustments", len(ledger.adjusts))
	}
}

func TestCompleteWithoutRecipeAborts(t *testing.T) {
	orderID := uuid.New()
	repo := &stubRepo{
		claimRows: 1,
		order: &models.ManufacturingOrder{
			ID:           orderID,
			ProductID:    uuid.New(),
			QtyToProduce: decimal.NewFromInt(5),
		},
	}
	recipes := &stubRecipes{err: pkgerrors.New(pkgerrors.CodeNoRecipe, "no bill of materials for product")}
	ledger := &stubLedger{}
	svc := newTestService(t, repo, recipes, ledger)

	_, err := svc.UpdateStatus(context.Background(), orderID, enums.ManufacturingStatusDone)
	typed := pkgerrors.As(err)
	if typed == nil || typed.Code() != pkgerrors.CodeNoRecipe {
		t.Fatalf("expected no-recipe error, got %v", err)
	}
	if len(ledger.adjusts) != 0 {
		t.Fatal("failed completion must not move stock")
	}
}

func TestCompleteUnknownOrderIsNotFound(t *testing.T) {
	repo := &stubRepo{claimRows: 0, order: nil}
	svc := newTestService(t, repo, &stubRecipes{}, &stubLedger{})

	_, err := svc.UpdateStatus(context.Background(), uuid.New(), enums.ManufacturingStatusDone)
	typed := pkgerrors.As(err)
	if typed == nil || typed.Code() != pkgerrors.CodeNotFound {
		t.Fatalf("expected not found, got %v", err)
	}
}

func TestCancelIsAPlainWrite(t *testing.T) {
	orderID := uuid.New()
	repo := &stubRepo{
		updateRows: 1,
		order: &models.ManufacturingOrder{
			ID:     orderID,
			Status: enums.ManufacturingStatusCancelled,
		},
	}
	ledger := &stubLedger{}
	svc := newTestService(t, repo, &stubRecipes{}, ledger)

	result, err := svc.UpdateStatus(context.Background(), orderID, enums.ManufacturingStatusCancelled)
	if err != nil {
		t.Fatalf("update status: %v", err)
	}
	if result.Status != enums.ManufacturingStatusCancelled {
		t.Fatalf("unexpected status %s", result.Status)
	}
	if repo.claimCalled {
		t.Fatal("cancel must not claim completion")
	}
	if len(ledger.adjusts) != 0 {
		t.Fatal("cancel must not move stock")
	}
}

func TestCancelAfterCompleteKeepsOrderDone(t *testing.T) {
	orderID := uuid.New()
	repo := &stubRepo{
		updateRows: 0, // conditional write refuses completed orders
		order: &models.ManufacturingOrder{
			ID:     orderID,
			Status: enums.ManufacturingStatusDone,
		},
	}
	ledger := &stubLedger{}
	svc := newTestService(t, repo, &stubRecipes{}, ledger)

	result, err := svc.UpdateStatus(context.Background(), orderID, enums.ManufacturingStatusCancelled)
	if err != nil {
		t.Fatalf("update status: %v", err)
	}
	if result.Status != enums.ManufacturingStatusDone {
		t.Fatalf("completed order must stay Done, got %s", result.Status)
	}
	if repo.claimCalled {
		t.Fatal("cancel must not claim completion")
	}
	if len(ledger.adjusts) != 0 {
		t.Fatal("cancel must not move stock")
	}
}
