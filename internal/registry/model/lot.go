package model

import (
	"time"

	"github.com/shopspring/decimal"
)

func init() {
	// Prices travel as JSON numbers, which is what browser clients send and expect.
	decimal.MarshalJSONWithoutQuotes = true
}

// Lot is a sales/delivery lot owned by the customer named in CustomerCode.
type Lot struct {
	LotID         int64           `json:"lotId"`
	LotName       string          `json:"lotName"`
	CustomerCode  string          `json:"customerCode"`
	Price         decimal.Decimal `json:"price"`
	CurrencyCode  string          `json:"currencyCode"`
	NdsRate       string          `json:"ndsRate"`
	PlaceDelivery string          `json:"placeDelivery"`
	DateDelivery  time.Time       `json:"dateDelivery"`

	CreatedAt time.Time `json:"-"`
	UpdatedAt time.Time `json:"-"`
}
