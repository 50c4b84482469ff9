package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/dapursupply/erp-backend/pkg/enums"
)

// RFQ is a request for quotation sent to a vendor before a purchase order
// exists. It never moves stock.
type RFQ struct {
	ID        uuid.UUID       `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	Code      string          `gorm:"column:code;not null" json:"code"`
	VendorID  uuid.UUID       `gorm:"column:vendor_id;type:uuid;not null" json:"vendor_id"`
	Status    enums.RFQStatus `gorm:"column:status;not null" json:"status"`
	Items     []RFQItem       `gorm:"foreignKey:RFQID;constraint:OnDelete:CASCADE" json:"items,omitempty"`
	CreatedAt time.Time       `gorm:"column:created_at;autoCreateTime" json:"created_at"`
	UpdatedAt time.Time       `gorm:"column:updated_at;autoUpdateTime" json:"updated_at"`
}

type RFQItem struct {
	ID        uuid.UUID       `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	RFQID     uuid.UUID       `gorm:"column:rfq_id;type:uuid;not null" json:"rfq_id"`
	ProductID uuid.UUID       `gorm:"column:product_id;type:uuid;not null" json:"product_id"`
	Qty       decimal.Decimal `gorm:"column:qty;type:numeric(14,3);not null" json:"qty"`
	CreatedAt time.Time       `gorm:"column:created_at;autoCreateTime" json:"created_at"`
}
