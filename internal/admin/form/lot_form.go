package form

import (
	"net/url"
	"strings"
	"time"

	"lotadmin/internal/registry/model"

	"github.com/shopspring/decimal"
)

// DateTimeLocalLayout is what an HTML datetime-local input submits.
const DateTimeLocalLayout = "2006-01-02T15:04"

// dateTimeLocalSecondsLayout keeps seconds and any fraction so an unedited
// date survives a save unchanged.
const dateTimeLocalSecondsLayout = "2006-01-02T15:04:05.999999999"

var lotMessages = map[string]string{
	"lotName.required":            "Название лота обязательно",
	"customerCode.required":       "Код клиента обязателен",
	"price.required":              "Цена обязательна",
	"price.numeric":               "Цена должна быть числом",
	"price.positive":              "Цена должна быть положительной",
	"currencyCode.required":       "Валюта обязательна",
	"currencyCode.currency":       "Неизвестная валюта",
	"ndsRate.required":            "Ставка НДС обязательна",
	"ndsRate.nds_rate":            "Неизвестная ставка НДС",
	"placeDelivery.required":      "Место доставки обязательно",
	"dateDelivery.required":       "Дата доставки обязательна",
	"dateDelivery.datetime":       "Неверная дата доставки",
	"dateDelivery.datetime_local": "Неверная дата доставки",
}

// LotForm holds the lot modal inputs as submitted. Price stays text so a
// non-numeric entry can be shown back to the user.
type LotForm struct {
	LotName       string `form:"lotName" validate:"required"`
	CustomerCode  string `form:"customerCode" validate:"required"`
	Price         string `form:"price" validate:"required,numeric,positive"`
	CurrencyCode  string `form:"currencyCode" validate:"required,currency"`
	NdsRate       string `form:"ndsRate" validate:"required,nds_rate"`
	PlaceDelivery string `form:"placeDelivery" validate:"required"`
	DateDelivery  string `form:"dateDelivery" validate:"required,datetime_local"`
}

// NewLotForm returns the values of an empty "new lot" modal.
func NewLotForm() LotForm {
	return LotForm{
		Price:        "0",
		CurrencyCode: model.CurrencyOptions[0],
		NdsRate:      model.NdsRateOptions[0],
	}
}

// LotFormFrom pre-fills the modal from an existing record.
func LotFormFrom(l *model.Lot) LotForm {
	f := LotForm{
		LotName:       l.LotName,
		CustomerCode:  l.CustomerCode,
		Price:         l.Price.String(),
		CurrencyCode:  l.CurrencyCode,
		NdsRate:       l.NdsRate,
		PlaceDelivery: l.PlaceDelivery,
	}
	if !l.DateDelivery.IsZero() {
		f.DateDelivery = formatDateTimeLocal(l.DateDelivery)
	}
	return f
}

func formatDateTimeLocal(t time.Time) string {
	t = t.UTC()
	if t.Second() == 0 && t.Nanosecond() == 0 {
		return t.Format(DateTimeLocalLayout)
	}
	return t.Format(dateTimeLocalSecondsLayout)
}

// ParseLotForm reads a submitted lot modal. A decimal comma is accepted.
func ParseLotForm(values url.Values) LotForm {
	return LotForm{
		LotName:       trim(values.Get("lotName")),
		CustomerCode:  trim(values.Get("customerCode")),
		Price:         strings.ReplaceAll(trim(values.Get("price")), ",", "."),
		CurrencyCode:  strings.ToUpper(trim(values.Get("currencyCode"))),
		NdsRate:       trim(values.Get("ndsRate")),
		PlaceDelivery: trim(values.Get("placeDelivery")),
		DateDelivery:  trim(values.Get("dateDelivery")),
	}
}

// Validate returns nil when the form can be sent.
func (f LotForm) Validate() Errors {
	return check(f, lotMessages)
}

// APIErrors translates the field map of a rejected request.
func (f LotForm) APIErrors(fields map[string]string) Errors {
	return fromAPI(fields, lotMessages)
}

// ToRequest builds the API payload. Validate must have succeeded.
func (f LotForm) ToRequest() model.UpsertLotReq {
	price, _ := decimal.NewFromString(f.Price)
	return model.UpsertLotReq{
		LotName:       f.LotName,
		CustomerCode:  f.CustomerCode,
		Price:         price,
		CurrencyCode:  f.CurrencyCode,
		NdsRate:       f.NdsRate,
		PlaceDelivery: f.PlaceDelivery,
		DateDelivery:  f.DateDelivery,
	}
}
