package models

import (
	"time"

	"github.com/shopspring/decimal"
)

type Order struct {
	ID uint `gorm:"primaryKey" json:"id"`

	UserID uint            `gorm:"index;not null" json:"user_id"`
	Total  decimal.Decimal `gorm:"type:numeric(12,2);not null" json:"total"`

	Products []OrderLine `gorm:"constraint:OnDelete:CASCADE" json:"products,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// OrderLine exists only as a child of an order. Updates replace the
// whole set, never diff it.
type OrderLine struct {
	ID        uint `gorm:"primaryKey" json:"id"`
	OrderID   uint `gorm:"index;not null" json:"order_id"`
	ProductID uint `gorm:"not null" json:"product_id"`
	Quantity  int  `gorm:"not null" json:"quantity"`

	Product Product `gorm:"constraint:OnUpdate:CASCADE,OnDelete:SET NULL;" json:"product"`

	CreatedAt time.Time `json:"created_at"`
}
