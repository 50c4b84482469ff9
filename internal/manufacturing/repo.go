package manufacturing

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/dapursupply/erp-backend/pkg/db/models"
	"github.com/dapursupply/erp-backend/pkg/enums"
)

// Repository manages persistence for manufacturing orders.
type Repository interface {
	WithTx(tx *gorm.DB) Repository
	Create(ctx context.Context, order *models.ManufacturingOrder) error
	List(ctx context.Context) ([]models.ManufacturingOrder, error)
	GetByID(ctx context.Context, id uuid.UUID) (*models.ManufacturingOrder, error)
	// ClaimDone flips the order to Done only if it is not done yet.
	// Returns the number of rows claimed (0 or 1).
	ClaimDone(ctx context.Context, id uuid.UUID) (int64, error)
	// UpdateStatus writes the requested status unless the order is
	// already Done; Done is terminal. Returns the number of rows written.
	UpdateStatus(ctx context.Context, id uuid.UUID, status enums.ManufacturingStatus) (int64, error)
}

type repository struct {
	db *gorm.DB
}

// NewRepository returns a manufacturing repository bound to the provided
// database.
func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) WithTx(tx *gorm.DB) Repository {
	if tx == nil {
		return r
	}
	return &repository{db: tx}
}

func (r *repository) Create(ctx context.Context, order *models.ManufacturingOrder) error {
	return r.db.WithContext(ctx).Create(order).Error
}

func (r *repository) List(ctx context.Context) ([]models.ManufacturingOrder, error) {
	var orders []models.ManufacturingOrder
	if err := r.db.WithContext(ctx).
		Order("created_at DESC").
		Find(&orders).Error; err != nil {
		return nil, err
	}
	return orders, nil
}

func (r *repository) GetByID(ctx context.Context, id uuid.UUID) (*models.ManufacturingOrder, error) {
	var order models.ManufacturingOrder
	err := r.db.WithContext(ctx).First(&order, "id = ?", id).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, nil
		}
		return nil, err
	}
	return &order, nil
}

func (r *repository) ClaimDone(ctx context.Context, id uuid.UUID) (int64, error) {
	res := r.db.WithContext(ctx).Exec(`
		UPDATE manufacturing_orders
		SET status = ?,
			updated_at = CURRENT_TIMESTAMP
		WHERE id = ? AND status <> ?
	`, enums.ManufacturingStatusDone, id, enums.ManufacturingStatusDone)
	if res.Error != nil {
		return 0, res.Error
	}
	return res.RowsAffected, nil
}

func (r *repository) UpdateStatus(ctx context.Context, id uuid.UUID, status enums.ManufacturingStatus) (int64, error) {
	res := r.db.WithContext(ctx).
		Model(&models.ManufacturingOrder{}).
		Where("id = ? AND status <> ?", id, enums.ManufacturingStatusDone).
		Update("status", status)
	if res.Error != nil {
		return 0, res.Error
	}
	return res.RowsAffected, nil
}
