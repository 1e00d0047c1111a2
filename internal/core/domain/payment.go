package domain

import (
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// PaymentMethod is how the customer paid.
type PaymentMethod string

const (
	MethodCash          PaymentMethod = "cash"
	MethodCard          PaymentMethod = "card"
	MethodCreditCard    PaymentMethod = "credit_card"
	MethodDebitCard     PaymentMethod = "debit_card"
	MethodBankTransfer  PaymentMethod = "bank_transfer"
	MethodCheck         PaymentMethod = "check"
	MethodMobilePayment PaymentMethod = "mobile_payment"
	MethodOther         PaymentMethod = "other"
)

var paymentMethods = map[PaymentMethod]struct{}{
	MethodCash: {}, MethodCard: {}, MethodCreditCard: {}, MethodDebitCard: {},
	MethodBankTransfer: {}, MethodCheck: {}, MethodMobilePayment: {}, MethodOther: {},
}

// ParsePaymentMethod matches s case-insensitively against the known methods.
// An empty string means cash.
func ParsePaymentMethod(s string) (PaymentMethod, bool) {
	s = strings.ToLower(strings.TrimSpace(s))
	if s == "" {
		return MethodCash, true
	}
	m := PaymentMethod(s)
	_, ok := paymentMethods[m]
	return m, ok
}

// PaymentTypePayment is the only payment type written today.
const PaymentTypePayment = "payment"

// PaymentRecord is a payment history row. Each processed payment writes one
// anchor record without a SaleID and one record per sale it was applied to.
type PaymentRecord struct {
	PaymentID       string          `json:"paymentID"`
	CustomerID      string          `json:"customerID"`
	SaleID          *string         `json:"saleID,omitempty"`
	Amount          decimal.Decimal `json:"amount"`
	Method          PaymentMethod   `json:"method"`
	PaymentType     string          `json:"paymentType"`
	ReferenceNumber *string         `json:"referenceNumber,omitempty"`
	Notes           string          `json:"notes"`
	PaymentDate     time.Time       `json:"paymentDate"`
	CreatedBy       *string         `json:"createdBy,omitempty"`
}

// IsAnchor reports whether this is the top-level record for a payment.
func (p PaymentRecord) IsAnchor() bool {
	return p.SaleID == nil
}

// PaymentFilter narrows a payment history listing. Results are newest first;
// AfterDate/AfterID continue from a previous page.
type PaymentFilter struct {
	CustomerID  string
	AnchorsOnly bool
	Limit       int
	AfterDate   *time.Time
	AfterID     string
}

// SaleAllocation is how much of a payment landed on one sale.
type SaleAllocation struct {
	SaleID         string          `json:"saleID"`
	AmountPaid     decimal.Decimal `json:"amountPaid"`
	NewOutstanding decimal.Decimal `json:"newOutstanding"`
	PaymentStatus  PaymentStatus   `json:"paymentStatus"`
}

// AllocationResult reports the outcome of processing a payment.
// AmountApplied + RemainingCredit always equals the requested amount.
type AllocationResult struct {
	PaymentID         string           `json:"paymentID"`
	AmountApplied     decimal.Decimal  `json:"amountApplied"`
	RemainingCredit   decimal.Decimal  `json:"remainingCredit"`
	UpdatedSales      []SaleAllocation `json:"updatedSales"`
	TotalSalesUpdated int              `json:"totalSalesUpdated"`
}
