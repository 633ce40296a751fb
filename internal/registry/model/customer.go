package model

import "time"

// Customer is a counterparty that lots are sold to. CustomerCodeMain optionally
// points at a parent customer by code.
type Customer struct {
	CustomerID            int64   `json:"customerId" bson:"_id"`
	CustomerCode          string  `json:"customerCode" bson:"customer_code"`
	CustomerName          string  `json:"customerName" bson:"customer_name"`
	CustomerInn           string  `json:"customerInn" bson:"customer_inn"`
	CustomerKpp           string  `json:"customerKpp" bson:"customer_kpp"`
	CustomerLegalAddress  string  `json:"customerLegalAddress" bson:"customer_legal_address"`
	CustomerPostalAddress string  `json:"customerPostalAddress" bson:"customer_postal_address"`
	CustomerEmail         string  `json:"customerEmail" bson:"customer_email"`
	CustomerCodeMain      *string `json:"customerCodeMain" bson:"customer_code_main,omitempty"`
	IsOrganization        bool    `json:"isOrganization" bson:"is_organization"`
	IsPerson              bool    `json:"isPerson" bson:"-"`

	CreatedAt time.Time `json:"-" bson:"created_at"`
	UpdatedAt time.Time `json:"-" bson:"updated_at"`
}

// Normalize fills derived fields after a load.
func (c *Customer) Normalize() {
	c.IsPerson = !c.IsOrganization
	if c.CustomerCodeMain != nil && *c.CustomerCodeMain == "" {
		c.CustomerCodeMain = nil
	}
}

// ParentCode returns the parent customer code or "".
func (c *Customer) ParentCode() string {
	if c.CustomerCodeMain == nil {
		return ""
	}
	return *c.CustomerCodeMain
}
