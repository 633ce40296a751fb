package model

// Currencies a lot can be priced in.
const (
	CurrencyRUB = "RUB"
	CurrencyUSD = "USD"
	CurrencyEUR = "EUR"
)

// VAT (НДС) rate labels, stored verbatim.
const (
	NdsRateNone = "Без НДС"
	NdsRate18   = "18%"
	NdsRate20   = "20%"
)

// CurrencyOptions lists currencies in display order; the first one is the default.
var CurrencyOptions = []string{CurrencyRUB, CurrencyUSD, CurrencyEUR}

// NdsRateOptions lists VAT rates in display order; the first one is the default.
var NdsRateOptions = []string{NdsRateNone, NdsRate18, NdsRate20}

var allowedCurrencies = map[string]bool{
	CurrencyRUB: true,
	CurrencyUSD: true,
	CurrencyEUR: true,
}

var allowedNdsRates = map[string]bool{
	NdsRateNone: true,
	NdsRate18:   true,
	NdsRate20:   true,
}

// Record kinds
const (
	KindCustomer = "customer"
	KindLot      = "lot"
)

// History operations
const (
	OpCreate = "create"
	OpUpdate = "update"
	OpDelete = "delete"
)

const MaxCodeLength = 50

func IsCurrency(code string) bool {
	return allowedCurrencies[code]
}

func IsNdsRate(rate string) bool {
	return allowedNdsRates[rate]
}
