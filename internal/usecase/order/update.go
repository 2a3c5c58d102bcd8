package order

import (
	"context"
	"errors"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	domain "github.com/BruksfildServices01/shop-api/internal/domain/order"
	"github.com/BruksfildServices01/shop-api/internal/httperr"
	"github.com/BruksfildServices01/shop-api/internal/models"
)

type UpdateOrderInput struct {
	OrderID uint
	Total   decimal.Decimal
	Lines   []domain.Line
}

type UpdateOrder struct {
	repo domain.Repository
}

func NewUpdateOrder(repo domain.Repository) *UpdateOrder {
	return &UpdateOrder{repo: repo}
}

func (uc *UpdateOrder) Execute(ctx context.Context, in UpdateOrderInput) (*models.Order, error) {
	o, err := uc.repo.GetByID(ctx, in.OrderID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, httperr.ErrBusiness("order_not_found")
		}
		return nil, err
	}

	lines, err := buildLines(ctx, uc.repo, in.Lines, in.Total)
	if err != nil {
		return nil, err
	}

	if err := uc.repo.ReplaceLines(ctx, o, lines, in.Total); err != nil {
		return nil, err
	}

	return o, nil
}
