package models

import (
	"time"

	"github.com/google/uuid"

	"github.com/dapursupply/erp-backend/pkg/enums"
)

// Delivery is the fulfillment document for one sales order. The transition
// to Shipped is the stock-moving event for a sale and happens at most once.
type Delivery struct {
	ID           uuid.UUID            `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	Code         string               `gorm:"column:code;not null" json:"code"`
	SalesOrderID uuid.UUID            `gorm:"column:sales_order_id;type:uuid;not null" json:"sales_order_id"`
	Status       enums.DeliveryStatus `gorm:"column:status;not null" json:"status"`
	CreatedAt    time.Time            `gorm:"column:created_at;autoCreateTime" json:"created_at"`
	UpdatedAt    time.Time            `gorm:"column:updated_at;autoUpdateTime" json:"updated_at"`
}
