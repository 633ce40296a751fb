package model

import (
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// DateDeliveryLayouts are the accepted spellings of dateDelivery. The short
// forms are what an HTML datetime-local input produces; they are read as UTC.
var DateDeliveryLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05",
	"2006-01-02T15:04",
	"2006-01-02",
}

// UpsertLotReq is the body of POST /api/lots and PUT /api/lots/:id.
type UpsertLotReq struct {
	LotName       string          `json:"lotName" validate:"required,max=255"`
	CustomerCode  string          `json:"customerCode" validate:"required,max=50"`
	Price         decimal.Decimal `json:"price" validate:"positive"`
	CurrencyCode  string          `json:"currencyCode" validate:"required,currency"`
	NdsRate       string          `json:"ndsRate" validate:"required,nds_rate"`
	PlaceDelivery string          `json:"placeDelivery" validate:"required,max=500"`
	DateDelivery  string          `json:"dateDelivery" validate:"required"`

	dateDelivery time.Time
}

func (r *UpsertLotReq) Validate() error {
	r.LotName = strings.TrimSpace(r.LotName)
	r.CustomerCode = strings.TrimSpace(r.CustomerCode)
	r.CurrencyCode = strings.ToUpper(strings.TrimSpace(r.CurrencyCode))
	r.NdsRate = strings.TrimSpace(r.NdsRate)
	r.PlaceDelivery = strings.TrimSpace(r.PlaceDelivery)
	r.DateDelivery = strings.TrimSpace(r.DateDelivery)

	if err := GetValidator().Struct(r); err != nil {
		return FormatValidationError(err)
	}

	t, ok := ParseDateDelivery(r.DateDelivery)
	if !ok {
		return &ErrorDetail{
			Code:    "bad_request",
			Message: "dateDelivery must be an ISO 8601 date-time",
			Fields:  map[string]string{"dateDelivery": "datetime"},
		}
	}
	r.dateDelivery = t
	return nil
}

// ToLot builds the record for this request. Validate must have succeeded.
func (r *UpsertLotReq) ToLot() *Lot {
	return &Lot{
		LotName:       r.LotName,
		CustomerCode:  r.CustomerCode,
		Price:         r.Price,
		CurrencyCode:  r.CurrencyCode,
		NdsRate:       r.NdsRate,
		PlaceDelivery: r.PlaceDelivery,
		DateDelivery:  r.dateDelivery,
	}
}

func ParseDateDelivery(s string) (time.Time, bool) {
	for _, layout := range DateDeliveryLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t.UTC(), true
		}
	}
	return time.Time{}, false
}
