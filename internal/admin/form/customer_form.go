package form

import (
	"net/url"

	"lotadmin/internal/registry/model"
)

var customerMessages = map[string]string{
	"customerCode.required":          "Код обязателен",
	"customerCode.max":               "Код слишком длинный",
	"customerName.required":          "Название обязательно",
	"customerInn.required":           "ИНН обязателен",
	"customerKpp.required":           "КПП обязателен",
	"customerLegalAddress.required":  "Юр. адрес обязателен",
	"customerPostalAddress.required": "Почтовый адрес обязателен",
	"customerEmail.required":         "Email обязателен",
	"customerEmail.email":            "Неверный email",
	"customerCodeMain.nefield":       "Основной код не может совпадать с кодом клиента",
	"customerCodeMain.max":           "Код слишком длинный",
}

// CustomerForm holds the customer modal inputs as submitted.
type CustomerForm struct {
	CustomerCode          string `form:"customerCode" validate:"required,max=50"`
	CustomerName          string `form:"customerName" validate:"required"`
	CustomerInn           string `form:"customerInn" validate:"required"`
	CustomerKpp           string `form:"customerKpp" validate:"required"`
	CustomerLegalAddress  string `form:"customerLegalAddress" validate:"required"`
	CustomerPostalAddress string `form:"customerPostalAddress" validate:"required"`
	CustomerEmail         string `form:"customerEmail" validate:"required,email"`
	CustomerCodeMain      string `form:"customerCodeMain" validate:"omitempty,max=50,nefield=CustomerCode"`
	IsOrganization        bool   `form:"isOrganization"`
}

// NewCustomerForm returns the values of an empty "new customer" modal.
func NewCustomerForm() CustomerForm {
	return CustomerForm{IsOrganization: true}
}

// CustomerFormFrom pre-fills the modal from an existing record.
func CustomerFormFrom(c *model.Customer) CustomerForm {
	return CustomerForm{
		CustomerCode:          c.CustomerCode,
		CustomerName:          c.CustomerName,
		CustomerInn:           c.CustomerInn,
		CustomerKpp:           c.CustomerKpp,
		CustomerLegalAddress:  c.CustomerLegalAddress,
		CustomerPostalAddress: c.CustomerPostalAddress,
		CustomerEmail:         c.CustomerEmail,
		CustomerCodeMain:      c.ParentCode(),
		IsOrganization:        c.IsOrganization,
	}
}

// ParseCustomerForm reads a submitted customer modal. An unchecked
// isOrganization box is absent from the body and means false.
func ParseCustomerForm(values url.Values) CustomerForm {
	return CustomerForm{
		CustomerCode:          trim(values.Get("customerCode")),
		CustomerName:          trim(values.Get("customerName")),
		CustomerInn:           trim(values.Get("customerInn")),
		CustomerKpp:           trim(values.Get("customerKpp")),
		CustomerLegalAddress:  trim(values.Get("customerLegalAddress")),
		CustomerPostalAddress: trim(values.Get("customerPostalAddress")),
		CustomerEmail:         trim(values.Get("customerEmail")),
		CustomerCodeMain:      trim(values.Get("customerCodeMain")),
		IsOrganization:        checked(values, "isOrganization"),
	}
}

// Validate returns nil when the form can be sent.
func (f CustomerForm) Validate() Errors {
	return check(f, customerMessages)
}

// APIErrors translates the field map of a rejected request.
func (f CustomerForm) APIErrors(fields map[string]string) Errors {
	return fromAPI(fields, customerMessages)
}

// ToRequest builds the API payload. An empty parent code is left out.
func (f CustomerForm) ToRequest() model.UpsertCustomerReq {
	org := f.IsOrganization
	req := model.UpsertCustomerReq{
		CustomerCode:          f.CustomerCode,
		CustomerName:          f.CustomerName,
		CustomerInn:           f.CustomerInn,
		CustomerKpp:           f.CustomerKpp,
		CustomerLegalAddress:  f.CustomerLegalAddress,
		CustomerPostalAddress: f.CustomerPostalAddress,
		CustomerEmail:         f.CustomerEmail,
		IsOrganization:        &org,
	}
	if f.CustomerCodeMain != "" {
		main := f.CustomerCodeMain
		req.CustomerCodeMain = &main
	}
	return req
}

func checked(values url.Values, key string) bool {
	if _, ok := values[key]; !ok {
		return false
	}
	switch values.Get(key) {
	case "", "0", "false", "off":
		return false
	default:
		return true
	}
}
