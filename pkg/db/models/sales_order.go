package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// SalesOrder records what a customer ordered. Creating one never moves
// stock; shipment of the linked delivery does. Status is free text
// ("Sales Order", "Sent", ...) mirroring how the sales flow labels it.
type SalesOrder struct {
	ID         uuid.UUID        `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	Code       string           `gorm:"column:code;not null" json:"code"`
	CustomerID uuid.UUID        `gorm:"column:customer_id;type:uuid;not null" json:"customer_id"`
	Total      decimal.Decimal  `gorm:"column:total;type:numeric(14,2);not null;default:0" json:"total"`
	Status     string           `gorm:"column:status;not null" json:"status"`
	OrderDate  time.Time        `gorm:"column:order_date;not null" json:"order_date"`
	Items      []SalesOrderItem `gorm:"foreignKey:SalesOrderID;constraint:OnDelete:CASCADE" json:"items,omitempty"`
	CreatedAt  time.Time        `gorm:"column:created_at;autoCreateTime" json:"created_at"`
	UpdatedAt  time.Time        `gorm:"column:updated_at;autoUpdateTime" json:"updated_at"`
}

type SalesOrderItem struct {
	ID           uuid.UUID       `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	SalesOrderID uuid.UUID       `gorm:"column:sales_order_id;type:uuid;not null" json:"sales_order_id"`
	ProductID    uuid.UUID       `gorm:"column:product_id;type:uuid;not null" json:"product_id"`
	Qty          decimal.Decimal `gorm:"column:qty;type:numeric(14,3);not null" json:"qty"`
	Price        decimal.Decimal `gorm:"column:price;type:numeric(14,2);not null" json:"price"`
	CreatedAt    time.Time       `gorm:"column:created_at;autoCreateTime" json:"created_at"`
}
