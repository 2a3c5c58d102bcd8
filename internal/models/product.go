package models

import (
	"time"

	"github.com/shopspring/decimal"
)

type Product struct {
	ID uint `gorm:"primaryKey" json:"id"`

	Name        string          `gorm:"size:100;not null" json:"name"`
	Description string          `gorm:"size:255" json:"description"`
	Price       decimal.Decimal `gorm:"type:numeric(12,2);not null" json:"price"`
	Stock       int             `gorm:"not null" json:"stock"`
	Discount    bool            `gorm:"default:false" json:"discount"`
	Hit         bool            `gorm:"default:false" json:"hit"`

	Categories []Category `gorm:"many2many:product_categories;" json:"categories,omitempty"`
	Images     []Image    `gorm:"constraint:OnDelete:CASCADE" json:"images,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Image belongs to exactly one product. Rows are replaced wholesale
// whenever new files are uploaded for the product.
type Image struct {
	ID        uint   `gorm:"primaryKey" json:"id"`
	URL       string `gorm:"size:255;not null" json:"url"`
	ProductID uint   `gorm:"index;not null" json:"product_id"`

	CreatedAt time.Time `json:"created_at"`
}
