package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/dapursupply/erp-backend/pkg/enums"
)

// ManufacturingOrder asks production to turn raw ingredients into
// QtyToProduce units of the finished product. Done is terminal: the BOM has
// been consumed and the finished stock added, so later status requests are
// answered as safe no-ops.
type ManufacturingOrder struct {
	ID           uuid.UUID                 `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	Code         string                    `gorm:"column:code;not null" json:"code"`
	ProductID    uuid.UUID                 `gorm:"column:product_id;type:uuid;not null" json:"product_id"`
	QtyToProduce decimal.Decimal           `gorm:"column:qty_to_produce;type:numeric(14,3);not null" json:"qty_to_produce"`
	Status       enums.ManufacturingStatus `gorm:"column:status;not null" json:"status"`
	CreatedAt    time.Time                 `gorm:"column:created_at;autoCreateTime" json:"created_at"`
	UpdatedAt    time.Time                 `gorm:"column:updated_at;autoUpdateTime" json:"updated_at"`
}
