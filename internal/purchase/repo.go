package purchase

import (
	"context"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/dapursupply/erp-backend/pkg/db/models"
	"github.com/dapursupply/erp-backend/pkg/enums"
)

// Repository manages persistence for purchase orders.
type Repository interface {
	WithTx(tx *gorm.DB) Repository
	Create(ctx context.Context, order *models.PurchaseOrder) error
	List(ctx context.Context) ([]models.PurchaseOrder, error)
	GetByID(ctx context.Context, id uuid.UUID) (*models.PurchaseOrder, error)
	ListItems(ctx context.Context, orderID uuid.UUID) ([]models.PurchaseItem, error)
	// ClaimUpdate rewrites the order header only while the order has not
	// been received yet. Returns the number of rows claimed (0 or 1).
	ClaimUpdate(ctx context.Context, id uuid.UUID, update HeaderUpdate) (int64, error)
	ReplaceItems(ctx context.Context, orderID uuid.UUID, items []models.PurchaseItem) error
	Exists(ctx context.Context, id uuid.UUID) (bool, error)
	// SumReceived totals all received purchase orders.
	SumReceived(ctx context.Context) (decimal.Decimal, error)
}

// HeaderUpdate carries the replaceable purchase order header fields.
type HeaderUpdate struct {
	VendorID uuid.UUID
	Total    decimal.Decimal
	Status   enums.PurchaseStatus
}

type repository struct {
	db *gorm.DB
}

// NewRepository returns a purchase repository bound to the provided database.
func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) WithTx(tx *gorm.DB) Repository {
	if tx == nil {
		return r
	}
	return &repository{db: tx}
}

func (r *repository) Create(ctx context.Context, order *models.PurchaseOrder) error {
	return r.db.WithContext(ctx).Create(order).Error
}

func (r *repository) List(ctx context.Context) ([]models.PurchaseOrder, error) {
	var orders []models.PurchaseOrder
	if err := r.db.WithContext(ctx).
		Preload("Items").
		Order("created_at DESC").
		Find(&orders).Error; err != nil {
		return nil, err
	}
	return orders, nil
}

func (r *repository) GetByID(ctx context.Context, id uuid.UUID) (*models.PurchaseOrder, error) {
	var order models.PurchaseOrder
	err := r.db.WithContext(ctx).
		Preload("Items").
		First(&order, "id = ?", id).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, nil
		}
		return nil, err
	}
	return &order, nil
}

func (r *repository) ListItems(ctx context.Context, orderID uuid.UUID) ([]models.PurchaseItem, error) {
	var items []models.PurchaseItem
	if err := r.db.WithContext(ctx).
		Where("purchase_order_id = ?", orderID).
		Order("created_at ASC").
		Find(&items).Error; err != nil {
		return nil, err
	}
	return items, nil
}

func (r *repository) ClaimUpdate(ctx context.Context, id uuid.UUID, update HeaderUpdate) (int64, error) {
	res := r.db.WithContext(ctx).Exec(`
		UPDATE purchase_orders
		SET vendor_id = ?,
			total = ?,
			status = ?,
			updated_at = CURRENT_TIMESTAMP
		WHERE id = ? AND status <> ?
	`, update.VendorID, update.Total, update.Status, id, enums.PurchaseStatusReceived)
	if res.Error != nil {
		return 0, res.Error
	}
	return res.RowsAffected, nil
}

func (r *repository) ReplaceItems(ctx context.Context, orderID uuid.UUID, items []models.PurchaseItem) error {
	if err := r.db.WithContext(ctx).
		Where("purchase_order_id = ?", orderID).
		Delete(&models.PurchaseItem{}).Error; err != nil {
		return err
	}
	if len(items) == 0 {
		return nil
	}
	for i := range items {
		items[i].PurchaseOrderID = orderID
	}
	return r.db.WithContext(ctx).Create(&items).Error
}

func (r *repository) SumReceived(ctx context.Context) (decimal.Decimal, error) {
	var raw *string
	err := r.db.WithContext(ctx).
		Model(&models.PurchaseOrder{}).
		Select("SUM(total)").
		Where("status = ?", enums.PurchaseStatusReceived).
		Scan(&raw).Error
	if err != nil {
		return decimal.Zero, err
	}
	if raw == nil {
		return decimal.Zero, nil
	}
	return decimal.NewFromString(*raw)
}

func (r *repository) Exists(ctx context.Context, id uuid.UUID) (bool, error) {
	var count int64
	if err := r.db.WithContext(ctx).
		Model(&models.PurchaseOrder{}).
		Where("id = ?", id).
		Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}
