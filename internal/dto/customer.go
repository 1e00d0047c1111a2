package dto

import "github.com/shopspring/decimal"

// CreateCustomerRequest defines the data needed to register a customer.
type CreateCustomerRequest struct {
	Name            string           `json:"name" binding:"required"`
	Phone           string           `json:"phone"`
	Address         string           `json:"address"`
	CreditLimit     *decimal.Decimal `json:"creditLimit,omitempty"`
	PaymentTerms    string           `json:"paymentTerms"`
	IsCreditEnabled *bool            `json:"isCreditEnabled,omitempty"`
}

// UpdateCustomerRequest defines the editable contact fields.
type UpdateCustomerRequest struct {
	Name    *string `json:"name,omitempty"`
	Phone   *string `json:"phone,omitempty"`
	Address *string `json:"address,omitempty"`
}

// UpdateCreditRequest replaces a customer's credit settings. A null
// creditLimit removes the limit.
type UpdateCreditRequest struct {
	CustomerID      string           `json:"customerID"`
	CreditLimit     *decimal.Decimal `json:"creditLimit"`
	PaymentTerms    string           `json:"paymentTerms"`
	IsCreditEnabled bool             `json:"isCreditEnabled"`
}

// ListCustomersParams defines the query parameters for listing customers.
type ListCustomersParams struct {
	Search string `form:"search"`
	Limit  int    `form:"limit,default=50" binding:"min=0,max=500"`
	Offset int    `form:"offset,default=0" binding:"min=0"`
}
