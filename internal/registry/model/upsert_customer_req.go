package model

import "strings"

// UpsertCustomerReq is the body of POST /api/customers and PUT /api/customers/:id.
type UpsertCustomerReq struct {
	CustomerCode          string  `json:"customerCode" validate:"required,max=50"`
	CustomerName          string  `json:"customerName" validate:"required,max=255"`
	CustomerInn           string  `json:"customerInn" validate:"required,max=32"`
	CustomerKpp           string  `json:"customerKpp" validate:"required,max=32"`
	CustomerLegalAddress  string  `json:"customerLegalAddress" validate:"required,max=500"`
	CustomerPostalAddress string  `json:"customerPostalAddress" validate:"required,max=500"`
	CustomerEmail         string  `json:"customerEmail" validate:"required,email,max=255"`
	CustomerCodeMain      *string `json:"customerCodeMain,omitempty" validate:"omitempty,max=50"`
	IsOrganization        *bool   `json:"isOrganization" validate:"required"`
}

func (r *UpsertCustomerReq) Validate() error {
	r.CustomerCode = strings.TrimSpace(r.CustomerCode)
	r.CustomerName = strings.TrimSpace(r.CustomerName)
	r.CustomerInn = strings.TrimSpace(r.CustomerInn)
	r.CustomerKpp = strings.TrimSpace(r.CustomerKpp)
	r.CustomerLegalAddress = strings.TrimSpace(r.CustomerLegalAddress)
	r.CustomerPostalAddress = strings.TrimSpace(r.CustomerPostalAddress)
	r.CustomerEmail = strings.TrimSpace(r.CustomerEmail)

	// An empty parent code means "no parent".
	if r.CustomerCodeMain != nil {
		main := strings.TrimSpace(*r.CustomerCodeMain)
		if main == "" {
			r.CustomerCodeMain = nil
		} else {
			r.CustomerCodeMain = &main
		}
	}

	if err := GetValidator().Struct(r); err != nil {
		return FormatValidationError(err)
	}

	if r.CustomerCodeMain != nil && *r.CustomerCodeMain == r.CustomerCode {
		return &ErrorDetail{
			Code:    "bad_request",
			Message: "customerCodeMain must differ from customerCode",
			Fields:  map[string]string{"customerCodeMain": "nefield"},
		}
	}
	return nil
}

// ToCustomer builds the record for this request. The id is left to the caller.
func (r *UpsertCustomerReq) ToCustomer() *Customer {
	c := &Customer{
		CustomerCode:          r.CustomerCode,
		CustomerName:          r.CustomerName,
		CustomerInn:           r.CustomerInn,
		CustomerKpp:           r.CustomerKpp,
		CustomerLegalAddress:  r.CustomerLegalAddress,
		CustomerPostalAddress: r.CustomerPostalAddress,
		CustomerEmail:         r.CustomerEmail,
		CustomerCodeMain:      r.CustomerCodeMain,
	}
	if r.IsOrganization != nil {
		c.IsOrganization = *r.IsOrganization
	}
	c.Normalize()
	return c
}
