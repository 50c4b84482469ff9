package bom

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/dapursupply/erp-backend/pkg/db/models"
)

// Repository manages persistence for bills of materials.
type Repository interface {
	WithTx(tx *gorm.DB) Repository
	Create(ctx context.Context, bom *models.BOM) error
	List(ctx context.Context) ([]models.BOM, error)
	GetByID(ctx context.Context, id uuid.UUID) (*models.BOM, error)
	// OldestForProduct returns the oldest BOM targeting the product with its
	// items preloaded, or nil when the product has no BOM.
	OldestForProduct(ctx context.Context, productID uuid.UUID) (*models.BOM, error)
}

type repository struct {
	db *gorm.DB
}

// NewRepository returns a BOM repository bound to the provided database.
func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) WithTx(tx *gorm.DB) Repository {
	if tx == nil {
		return r
	}
	return &repository{db: tx}
}

func (r *repository) Create(ctx context.Context, bom *models.BOM) error {
	return r.db.WithContext(ctx).Create(bom).Error
}

func (r *repository) List(ctx context.Context) ([]models.BOM, error) {
	var boms []models.BOM
	if err := r.db.WithContext(ctx).
		Preload("Items").
		Order("created_at DESC").
		Find(&boms).Error; err != nil {
		return nil, err
	}
	return boms, nil
}

func (r *repository) GetByID(ctx context.Context, id uuid.UUID) (*models.BOM, error) {
	var bom models.BOM
	err := r.db.WithContext(ctx).
		Preload("Items").
		First(&bom, "id = ?", id).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, nil
		}
		return nil, err
	}
	return &bom, nil
}

func (r *repository) OldestForProduct(ctx context.Context, productID uuid.UUID) (*models.BOM, error) {
	var bom models.BOM
	err := r.db.WithContext(ctx).
		Preload("Items", func(db *gorm.DB) *gorm.DB {
			return db.Order("created_at ASC")
		}).
		Where("product_id = ?", productID).
		Order("created_at ASC").
		First(&bom).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, nil
		}
		return nil, err
	}
	return &bom, nil
}
