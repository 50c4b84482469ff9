// Package rfq implements requests for quotation, the pre-purchase document
// sent to vendors. RFQs never move stock.
package rfq

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/dapursupply/erp-backend/pkg/db/models"
	"github.com/dapursupply/erp-backend/pkg/enums"
	pkgerrors "github.com/dapursupply/erp-backend/pkg/errors"
	"github.com/dapursupply/erp-backend/pkg/refcode"
)

// Service defines RFQ operations.
type Service interface {
	Create(ctx context.Context, input CreateInput) (*models.RFQ, error)
	List(ctx context.Context) ([]models.RFQ, error)
	Get(ctx context.Context, id uuid.UUID) (*models.RFQ, error)
	Items(ctx context.Context, rfqID uuid.UUID) ([]models.RFQItem, error)
	UpdateStatus(ctx context.Context, id uuid.UUID, status enums.RFQStatus) (*models.RFQ, error)
}

// ItemInput is one requested line.
type ItemInput struct {
	ProductID uuid.UUID
	Qty       decimal.Decimal
}

// CreateInput captures a new request for quotation.
type CreateInput struct {
	VendorID uuid.UUID
	Items    []ItemInput
}

type service struct {
	repo  Repository
	codes *refcode.Generator
}

// NewService wires an RFQ service with the provided dependencies.
func NewService(repo Repository, codes *refcode.Generator) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("rfq repository required")
	}
	if codes == nil {
		return nil, fmt.Errorf("code generator required")
	}
	return &service{repo: repo, codes: codes}, nil
}

func (s *service) Create(ctx context.Context, input CreateInput) (*models.RFQ, error) {
	if input.VendorID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "vendor id required")
	}
	if len(input.Items) == 0 {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "at least one item required")
	}

	record := &models.RFQ{
		Code:     s.codes.New(refcode.PrefixRFQ),
		VendorID: input.VendorID,
		Status:   enums.RFQStatusDraft,
	}
	for _, item := range input.Items {
		if item.ProductID == uuid.Nil {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, "item product id required")
		}
		if !item.Qty.IsPositive() {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, "item qty must be positive")
		}
		record.Items = append(record.Items, models.RFQItem{
			ProductID: item.ProductID,
			Qty:       item.Qty,
		})
	}

	if err := s.repo.Create(ctx, record); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "create rfq")
	}
	return record, nil
}

func (s *service) List(ctx context.Context) ([]models.RFQ, error) {
	rfqs, err := s.repo.List(ctx)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list rfqs")
	}
	return rfqs, nil
}

func (s *service) Get(ctx context.Context, id uuid.UUID) (*models.RFQ, error) {
	if id == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "rfq id required")
	}
	rfq, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load rfq")
	}
	if rfq == nil {
		return nil, pkgerrors.New(pkgerrors.CodeNotFound, "rfq not found")
	}
	return rfq, nil
}

func (s *service) Items(ctx context.Context, rfqID uuid.UUID) ([]models.RFQItem, error) {
	if rfqID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "rfq id required")
	}
	items, err := s.repo.ListItems(ctx, rfqID)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list rfq items")
	}
	return items, nil
}

func (s *service) UpdateStatus(ctx context.Context, id uuid.UUID, status enums.RFQStatus) (*models.RFQ, error) {
	if id == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "rfq id required")
	}
	if !status.IsValid() {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, fmt.Sprintf("invalid rfq status %q", status))
	}

	rows, err := s.repo.UpdateStatus(ctx, id, status)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "update rfq status")
	}
	if rows == 0 {
		return nil, pkgerrors.New(pkgerrors.CodeNotFound, "rfq not found")
	}
	return s.Get(ctx, id)
}
