package order

import (
	"context"

	"github.com/shopspring/decimal"

	domain "github.com/BruksfildServices01/shop-api/internal/domain/order"
	"github.com/BruksfildServices01/shop-api/internal/httperr"
	"github.com/BruksfildServices01/shop-api/internal/models"
)

type CreateOrderInput struct {
	UserID uint
	Total  decimal.Decimal
	Lines  []domain.Line
}

type CreateOrder struct {
	repo domain.Repository
}

func NewCreateOrder(repo domain.Repository) *CreateOrder {
	return &CreateOrder{repo: repo}
}

func (uc *CreateOrder) Execute(ctx context.Context, in CreateOrderInput) (*models.Order, error) {
	exists, err := uc.repo.UserExists(ctx, in.UserID)
	if err != nil {
		return nil, err
	}
	if !exists {
		return nil, httperr.ErrBusiness("user_not_found")
	}

	lines, err := buildLines(ctx, uc.repo, in.Lines, in.Total)
	if err != nil {
		return nil, err
	}

	o := &models.Order{
		UserID:   in.UserID,
		Total:    in.Total,
		Products: lines,
	}

	if err := uc.repo.Create(ctx, o); err != nil {
		return nil, err
	}

	return o, nil
}
