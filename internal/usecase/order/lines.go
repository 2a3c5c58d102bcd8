package order

import (
	"context"

	"github.com/shopspring/decimal"

	domain "github.com/BruksfildServices01/shop-api/internal/domain/order"
	"github.com/BruksfildServices01/shop-api/internal/httperr"
	"github.com/BruksfildServices01/shop-api/internal/models"
)

// buildLines validates the submitted line set against the catalog and
// prices it. Every product must exist, every quantity must be positive,
// and the caller's total must equal the priced sum.
func buildLines(
	ctx context.Context,
	repo domain.Repository,
	lines []domain.Line,
	total decimal.Decimal,
) ([]models.OrderLine, error) {

	if len(lines) == 0 {
		return nil, httperr.ErrBusiness("empty_order")
	}

	var ids []uint
	seen := make(map[uint]bool)
	for _, line := range lines {
		if line.Quantity <= 0 {
			return nil, httperr.ErrBusiness("invalid_quantity")
		}
		if !seen[line.ProductID] {
			seen[line.ProductID] = true
			ids = append(ids, line.ProductID)
		}
	}

	products, err := repo.ProductsByIDs(ctx, ids)
	if err != nil {
		return nil, err
	}
	if len(products) != len(ids) {
		return nil, httperr.ErrBusiness("product_not_found")
	}

	priceByID := make(map[uint]decimal.Decimal, len(products))
	for _, p := range products {
		priceByID[p.ID] = p.Price
	}

	sum := decimal.Zero
	built := make([]models.OrderLine, 0, len(lines))
	for _, line := range lines {
		sum = sum.Add(priceByID[line.ProductID].Mul(decimal.NewFromInt(int64(line.Quantity))))
		built = append(built, models.OrderLine{
			ProductID: line.ProductID,
			Quantity:  line.Quantity,
		})
	}

	if !sum.Equal(total) {
		return nil, httperr.ErrBusiness("total_mismatch")
	}

	return built, nil
}
