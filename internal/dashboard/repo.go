package dashboard

import (
	"context"

	"gorm.io/gorm"

	"github.com/dapursupply/erp-backend/internal/sales"
	"github.com/dapursupply/erp-backend/pkg/db/models"
)

// Repository runs the dashboard aggregate queries.
type Repository interface {
	CountActiveSalesOrders(ctx context.Context) (int64, error)
	RecentSales(ctx context.Context, limit int) ([]models.SalesOrder, error)
}

type repository struct {
	db *gorm.DB
}

// NewRepository returns a dashboard repository bound to the provided
// database.
func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) CountActiveSalesOrders(ctx context.Context) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&models.SalesOrder{}).
		Where("status <> ?", sales.OrderStatusSent).
		Count(&count).Error
	return count, err
}

func (r *repository) RecentSales(ctx context.Context, limit int) ([]models.SalesOrder, error) {
	var orders []models.SalesOrder
	if err := r.db.WithContext(ctx).
		Order("created_at DESC").
		Limit(limit).
		Find(&orders).Error; err != nil {
		return nil, err
	}
	return orders, nil
}
