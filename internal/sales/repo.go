package sales

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/dapursupply/erp-backend/pkg/db/models"
	"github.com/dapursupply/erp-backend/pkg/enums"
)

// Repository manages persistence for sales orders.
type Repository interface {
	WithTx(tx *gorm.DB) Repository
	Create(ctx context.Context, order *models.SalesOrder) error
	List(ctx context.Context) ([]models.SalesOrder, error)
	GetByID(ctx context.Context, id uuid.UUID) (*models.SalesOrder, error)
	ListItems(ctx context.Context, orderID uuid.UUID) ([]models.SalesOrderItem, error)
	UpdateStatus(ctx context.Context, id uuid.UUID, status string) error
}

type repository struct {
	db *gorm.DB
}

// NewRepository returns a sales repository bound to the provided database.
func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) WithTx(tx *gorm.DB) Repository {
	if tx == nil {
		return r
	}
	return &repository{db: tx}
}

func (r *repository) Create(ctx context.Context, order *models.SalesOrder) error {
	return r.db.WithContext(ctx).Create(order).Error
}

func (r *repository) List(ctx context.Context) ([]models.SalesOrder, error) {
	var orders []models.SalesOrder
	if err := r.db.WithContext(ctx).
		Preload("Items").
		Order("created_at DESC").
		Find(&orders).Error; err != nil {
		return nil, err
	}
	return orders, nil
}

func (r *repository) GetByID(ctx context.Context, id uuid.UUID) (*models.SalesOrder, error) {
	var order models.SalesOrder
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

func (r *repository) ListItems(ctx context.Context, orderID uuid.UUID) ([]models.SalesOrderItem, error) {
	var items []models.SalesOrderItem
	if err := r.db.WithContext(ctx).
		Where("sales_order_id = ?", orderID).
		Order("created_at ASC").
		Find(&items).Error; err != nil {
		return nil, err
	}
	return items, nil
}

func (r *repository) UpdateStatus(ctx context.Context, id uuid.UUID, status string) error {
	return r.db.WithContext(ctx).
		Model(&models.SalesOrder{}).
		Where("id = ?", id).
		Update("status", status).Error
}

// DeliveryRepository manages persistence for delivery documents.
type DeliveryRepository interface {
	WithTx(tx *gorm.DB) DeliveryRepository
	Create(ctx context.Context, delivery *models.Delivery) error
	List(ctx context.Context) ([]models.Delivery, error)
	GetByID(ctx context.Context, id uuid.UUID) (*models.Delivery, error)
	// ClaimShip flips the delivery to Shipped only if it is not shipped
	// yet. Returns the number of rows claimed (0 or 1).
	ClaimShip(ctx context.Context, id uuid.UUID) (int64, error)
	UpdateStatus(ctx context.Context, id uuid.UUID, status enums.DeliveryStatus) (int64, error)
}

type deliveryRepository struct {
	db *gorm.DB
}

// NewDeliveryRepository returns a delivery repository bound to the provided
// database.
func NewDeliveryRepository(db *gorm.DB) DeliveryRepository {
	return &deliveryRepository{db: db}
}

func (r *deliveryRepository) WithTx(tx *gorm.DB) DeliveryRepository {
	if tx == nil {
		return r
	}
	return &deliveryRepository{db: tx}
}

func (r *deliveryRepository) Create(ctx context.Context, delivery *models.Delivery) error {
	return r.db.WithContext(ctx).Create(delivery).Error
}

func (r *deliveryRepository) List(ctx context.Context) ([]models.Delivery, error) {
	var deliveries []models.Delivery
	if err := r.db.WithContext(ctx).
		Order("created_at DESC").
		Find(&deliveries).Error; err != nil {
		return nil, err
	}
	return deliveries, nil
}

func (r *deliveryRepository) GetByID(ctx context.Context, id uuid.UUID) (*models.Delivery, error) {
	var delivery models.Delivery
	err := r.db.WithContext(ctx).First(&delivery, "id = ?", id).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, nil
		}
		return nil, err
	}
	return &delivery, nil
}

func (r *deliveryRepository) ClaimShip(ctx context.Context, id uuid.UUID) (int64, error) {
	res := r.db.WithContext(ctx).Exec(`
		UPDATE deliveries
		SET status = ?,
			updated_at = CURRENT_TIMESTAMP
		WHERE id = ? AND status <> ?
	`, enums.DeliveryStatusShipped, id, enums.DeliveryStatusShipped)
	if res.Error != nil {
		return 0, res.Error
	}
	return res.RowsAffected, nil
}

func (r *deliveryRepository) UpdateStatus(ctx context.Context, id uuid.UUID, status enums.DeliveryStatus) (int64, error) {
	res := r.db.WithContext(ctx).
		Model(&models.Delivery{}).
		Where("id = ?", id).
		Update("status", status)
	if res.Error != nil {
		return 0, res.Error
	}
	return res.RowsAffected, nil
}
