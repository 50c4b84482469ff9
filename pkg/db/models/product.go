package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Product is the master-data row whose Stock column is the single piece of
// shared mutable state in the system. Stock is adjusted only through the
// stock ledger; it is NUMERIC because bill-of-materials ratios may be
// fractional, and it may legally go negative.
type Product struct {
	ID        uuid.UUID       `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	SKU       string          `gorm:"column:sku;not null" json:"sku"`
	Name      string          `gorm:"column:name;not null" json:"name"`
	Category  string          `gorm:"column:category" json:"category"`
	Price     decimal.Decimal `gorm:"column:price;type:numeric(14,2);not null;default:0" json:"price"`
	Cost      decimal.Decimal `gorm:"column:cost;type:numeric(14,2);not null;default:0" json:"cost"`
	Stock     decimal.Decimal `gorm:"column:stock;type:numeric(14,3);not null;default:0" json:"stock"`
	ImageURL  *string         `gorm:"column:image_url" json:"image_url,omitempty"`
	CreatedAt time.Time       `gorm:"column:created_at;autoCreateTime" json:"created_at"`
	UpdatedAt time.Time       `gorm:"column:updated_at;autoUpdateTime" json:"updated_at"`
}
