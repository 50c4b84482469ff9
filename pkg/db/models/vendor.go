package models

import (
	"time"

	"github.com/google/uuid"
)

// Vendor supplies the goods bought through RFQs and purchase orders.
type Vendor struct {
	ID            uuid.UUID `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	Name          string    `gorm:"column:name;not null" json:"name"`
	ContactPerson *string   `gorm:"column:contact_person" json:"contact_person,omitempty"`
	Phone         *string   `gorm:"column:phone" json:"phone,omitempty"`
	Email         *string   `gorm:"column:email" json:"email,omitempty"`
	Address       *string   `gorm:"column:address" json:"address,omitempty"`
	CreatedAt     time.Time `gorm:"column:created_at;autoCreateTime" json:"created_at"`
	UpdatedAt     time.Time `gorm:"column:updated_at;autoUpdateTime" json:"updated_at"`
}
