package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/dapursupply/erp-backend/pkg/enums"
)

// PurchaseOrder tracks goods bought from a vendor. Received is terminal:
// once a PO is received its stock effect has been applied and the document
// can no longer be edited.
type PurchaseOrder struct {
	ID        uuid.UUID            `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	Code      string               `gorm:"column:code;not null" json:"code"`
	VendorID  uuid.UUID            `gorm:"column:vendor_id;type:uuid;not null" json:"vendor_id"`
	Total     decimal.Decimal      `gorm:"column:total;type:numeric(14,2);not null;default:0" json:"total"`
	Status    enums.PurchaseStatus `gorm:"column:status;not null" json:"status"`
	Items     []PurchaseItem       `gorm:"foreignKey:PurchaseOrderID;constraint:OnDelete:CASCADE" json:"items,omitempty"`
	CreatedAt time.Time            `gorm:"column:created_at;autoCreateTime" json:"created_at"`
	UpdatedAt time.Time            `gorm:"column:updated_at;autoUpdateTime" json:"updated_at"`
}

// PurchaseItem carries the negotiated unit cost; on receipt that cost is
// written back to the product (last write wins).
type PurchaseItem struct {
	ID              uuid.UUID       `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	PurchaseOrderID uuid.UUID       `gorm:"column:purchase_order_id;type:uuid;not null" json:"purchase_order_id"`
	ProductID       uuid.UUID       `gorm:"column:product_id;type:uuid;not null" json:"product_id"`
	Qty             decimal.Decimal `gorm:"column:qty;type:numeric(14,3);not null" json:"qty"`
	Cost            decimal.Decimal `gorm:"column:cost;type:numeric(14,2);not null" json:"cost"`
	CreatedAt       time.Time       `gorm:"column:created_at;autoCreateTime" json:"created_at"`
}
