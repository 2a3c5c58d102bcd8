package order

import (
	"context"

	"github.com/shopspring/decimal"

	"github.com/BruksfildServices01/shop-api/internal/models"
)

// Line is the caller-facing shape of one order item before it is
// accepted as an OrderLine row.
type Line struct {
	ProductID uint `json:"productId" binding:"required"`
	Quantity  int  `json:"quantity" binding:"required"`
}

type Repository interface {
	UserExists(ctx context.Context, id uint) (bool, error)

	// ProductsByIDs returns the products matching ids; callers compare
	// counts against the requested set to detect dangling references.
	ProductsByIDs(ctx context.Context, ids []uint) ([]models.Product, error)

	// Create persists the order and all its lines atomically.
	Create(ctx context.Context, o *models.Order) error

	// ReplaceLines swaps the full line set and the total atomically.
	// Delete-all-then-recreate, never a diff.
	ReplaceLines(ctx context.Context, o *models.Order, lines []models.OrderLine, total decimal.Decimal) error

	GetByID(ctx context.Context, id uint) (*models.Order, error)
}
