package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/dapursupply/erp-backend/pkg/enums"
)

// Invoice tracks cash recognition for one sales order; it never moves
// stock. At most one invoice may exist per sales order.
type Invoice struct {
	ID           uuid.UUID           `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	Code         string              `gorm:"column:code;not null" json:"code"`
	SalesOrderID uuid.UUID           `gorm:"column:sales_order_id;type:uuid;not null;uniqueIndex" json:"sales_order_id"`
	Total        decimal.Decimal     `gorm:"column:total;type:numeric(14,2);not null;default:0" json:"total"`
	DueDate      time.Time           `gorm:"column:due_date;not null" json:"due_date"`
	Status       enums.InvoiceStatus `gorm:"column:status;not null" json:"status"`
	CreatedAt    time.Time           `gorm:"column:created_at;autoCreateTime" json:"created_at"`
	UpdatedAt    time.Time           `gorm:"column:updated_at;autoUpdateTime" json:"updated_at"`
}
