package domain

import "github.com/shopspring/decimal"

// DefaultPaymentTerms is applied to customers created without explicit terms.
const DefaultPaymentTerms = "Net 30"

var hundred = decimal.NewFromInt(100)

// Customer is a buyer who may carry a credit balance.
// CreditBalance always equals the sum of OutstandingAmount over the customer's sales.
type Customer struct {
	CustomerID      string           `json:"customerID"`
	Name            string           `json:"name"`
	Phone           string           `json:"phone"`
	Address         string           `json:"address"`
	CreditLimit     *decimal.Decimal `json:"creditLimit,omitempty"` // nil means no limit configured
	CreditBalance   decimal.Decimal  `json:"creditBalance"`
	PaymentTerms    string           `json:"paymentTerms"`
	IsCreditEnabled bool             `json:"isCreditEnabled"`
	IsActive        bool             `json:"isActive"`
	AuditFields
}

// HasCreditLimit reports whether a credit limit has been configured.
func (c Customer) HasCreditLimit() bool {
	return c.CreditLimit != nil
}

// ExceedsCreditLimit reports whether amount is above the configured limit.
// Always false when no limit is set.
func (c Customer) ExceedsCreditLimit(amount decimal.Decimal) bool {
	return c.CreditLimit != nil && amount.GreaterThan(*c.CreditLimit)
}

// CreditUtilization is outstanding as a percentage of the credit limit,
// or zero when no (or a zero) limit is set.
func (c Customer) CreditUtilization(outstanding decimal.Decimal) decimal.Decimal {
	if c.CreditLimit == nil || c.CreditLimit.IsZero() {
		return decimal.Zero
	}
	return outstanding.Div(*c.CreditLimit).Mul(hundred)
}

// Snapshot captures the contact details stored on a sale at creation time.
func (c Customer) Snapshot() CustomerSnapshot {
	return CustomerSnapshot{Name: c.Name, Phone: c.Phone, Address: c.Address}
}

// CustomerFilter narrows a customer listing.
type CustomerFilter struct {
	SearchTerm      string
	IncludeInactive bool
	Limit           int
	Offset          int
}
