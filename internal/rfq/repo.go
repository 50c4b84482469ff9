package rfq

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/dapursupply/erp-backend/pkg/db/models"
	"github.com/dapursupply/erp-backend/pkg/enums"
)

// Repository manages persistence for requests for quotation.
type Repository interface {
	WithTx(tx *gorm.DB) Repository
	Create(ctx context.Context, rfq *models.RFQ) error
	List(ctx context.Context) ([]models.RFQ, error)
	GetByID(ctx context.Context, id uuid.UUID) (*models.RFQ, error)
	ListItems(ctx context.Context, rfqID uuid.UUID) ([]models.RFQItem, error)
	UpdateStatus(ctx context.Context, id uuid.UUID, status enums.RFQStatus) (int64, error)
}

type repository struct {
	db *gorm.DB
}

// NewRepository returns an RFQ repository bound to the provided database.
func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) WithTx(tx *gorm.DB) Repository {
	if tx == nil {
		return r
	}
	return &repository{db: tx}
}

func (r *repository) Create(ctx context.Context, rfq *models.RFQ) error {
	return r.db.WithContext(ctx).Create(rfq).Error
}

func (r *repository) List(ctx context.Context) ([]models.RFQ, error) {
	var rfqs []models.RFQ
	if err := r.db.WithContext(ctx).
		Preload("Items").
		Order("created_at DESC").
		Find(&rfqs).Error; err != nil {
		return nil, err
	}
	return rfqs, nil
}

func (r *repository) GetByID(ctx context.Context, id uuid.UUID) (*models.RFQ, error) {
	var rfq models.RFQ
	err := r.db.WithContext(ctx).
		Preload("Items").
		First(&rfq, "id = ?", id).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, nil
		}
		return nil, err
	}
	return &rfq, nil
}

func (r *repository) ListItems(ctx context.Context, rfqID uuid.UUID) ([]models.RFQItem, error) {
	var items []models.RFQItem
	if err := r.db.WithContext(ctx).
		Where("rfq_id = ?", rfqID).
		Order("created_at ASC").
		Find(&items).Error; err != nil {
		return nil, err
	}
	return items, nil
}

func (r *repository) UpdateStatus(ctx context.Context, id uuid.UUID, status enums.RFQStatus) (int64, error) {
	res := r.db.WithContext(ctx).
		Model(&models.RFQ{}).
		Where("id = ?", id).
		Update("status", status)
	if res.Error != nil {
		return 0, res.Error
	}
	return res.RowsAffected, nil
}
