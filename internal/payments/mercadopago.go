package payments

import (
	"context"
	"strconv"

	mpconfig "github.com/mercadopago/sdk-go/pkg/config"
	"github.com/mercadopago/sdk-go/pkg/preference"
	"github.com/shopspring/decimal"
)

type Item struct {
	Title     string
	Quantity  int
	UnitPrice decimal.Decimal
}

type Preference struct {
	ID        string `json:"preference_id"`
	InitPoint string `json:"init_point"`
}

// Checkout creates Mercado Pago checkout preferences for orders.
type Checkout struct {
	prefs    preference.Client
	currency string
}

func New(accessToken, currency string) (*Checkout, error) {
	cfg, err := mpconfig.New(accessToken)
	if err != nil {
		return nil, err
	}

	return &Checkout{
		prefs:    preference.NewClient(cfg),
		currency: currency,
	}, nil
}

func (ch *Checkout) CreatePreference(ctx context.Context, orderID uint, items []Item) (*Preference, error) {
	req := preference.Request{
		ExternalReference: strconv.FormatUint(uint64(orderID), 10),
	}

	for _, item := range items {
		unitPrice, _ := item.UnitPrice.Float64()
		req.Items = append(req.Items, preference.ItemRequest{
			Title:      item.Title,
			Quantity:   item.Quantity,
			UnitPrice:  unitPrice,
			CurrencyID: ch.currency,
		})
	}

	resp, err := ch.prefs.Create(ctx, req)
	if err != nil {
		return nil, err
	}

	return &Preference{ID: resp.ID, InitPoint: resp.InitPoint}, nil
}
