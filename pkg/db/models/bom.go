package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// BOM maps one finished product to the ingredient quantities a single unit
// consumes. When several BOMs target the same product the resolver uses the
// oldest one; nothing enforces uniqueness.
type BOM struct {
	ID        uuid.UUID `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	Name      string    `gorm:"column:name;not null" json:"name"`
	ProductID uuid.UUID `gorm:"column:product_id;type:uuid;not null" json:"product_id"`
	Items     []BOMItem `gorm:"foreignKey:BOMID;constraint:OnDelete:CASCADE" json:"items,omitempty"`
	CreatedAt time.Time `gorm:"column:created_at;autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"column:updated_at;autoUpdateTime" json:"updated_at"`
}

// BOMItem is one ingredient line. Qty is per produced unit and may be
// fractional.
type BOMItem struct {
	ID        uuid.UUID       `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	BOMID     uuid.UUID       `gorm:"column:bom_id;type:uuid;not null" json:"bom_id"`
	ProductID uuid.UUID       `gorm:"column:product_id;type:uuid;not null" json:"product_id"`
	Qty       decimal.Decimal `gorm:"column:qty;type:numeric(14,3);not null" json:"qty"`
	CreatedAt time.Time       `gorm:"column:created_at;autoCreateTime" json:"created_at"`
}
