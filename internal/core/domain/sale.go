package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// PaymentStatus is derived from a sale's paid and outstanding amounts.
type PaymentStatus string

const (
	PaymentPending PaymentStatus = "pending"
	PaymentPartial PaymentStatus = "partial"
	PaymentPaid    PaymentStatus = "paid"
)

// DerivePaymentStatus returns paid when nothing is outstanding, partial when
// something has been paid and something is still owed, and pending otherwise.
func DerivePaymentStatus(totalPaid, outstanding decimal.Decimal) PaymentStatus {
	switch {
	case outstanding.Sign() <= 0:
		return PaymentPaid
	case totalPaid.Sign() > 0:
		return PaymentPartial
	default:
		return PaymentPending
	}
}

// StatusAfterAllocation is the status a sale takes once a payment leaves it with
// newOutstanding still owed out of total.
func StatusAfterAllocation(newOutstanding, total decimal.Decimal) PaymentStatus {
	switch {
	case newOutstanding.IsZero():
		return PaymentPaid
	case newOutstanding.Sign() > 0 && newOutstanding.LessThan(total):
		return PaymentPartial
	default:
		return PaymentPending
	}
}

// LineItem is one immutable cart line captured at sale time.
type LineItem struct {
	ProductID   string          `json:"productID"`
	ProductName string          `json:"productName"`
	Quantity    int             `json:"quantity"`
	UnitPrice   decimal.Decimal `json:"unitPrice"`
}

// Subtotal is UnitPrice × Quantity.
func (li LineItem) Subtotal() decimal.Decimal {
	return li.UnitPrice.Mul(decimal.NewFromInt(int64(li.Quantity)))
}

// CustomerSnapshot holds the customer's contact details as they were when the
// sale was made. It is never re-synced with the live customer record.
type CustomerSnapshot struct {
	Name    string `json:"name"`
	Phone   string `json:"phone"`
	Address string `json:"address"`
}

// Sale is a completed checkout. Only the payment allocator changes TotalPaid,
// OutstandingAmount and PaymentStatus after creation.
type Sale struct {
	SaleID            string           `json:"saleID"`
	CustomerID        string           `json:"customerID"`
	Customer          CustomerSnapshot `json:"customer"`
	Items             []LineItem       `json:"items"`
	TotalAmount       decimal.Decimal  `json:"totalAmount"`
	TotalPaid         decimal.Decimal  `json:"totalPaid"`
	OutstandingAmount decimal.Decimal  `json:"outstandingAmount"`
	PaymentStatus     PaymentStatus    `json:"paymentStatus"`
	AuditFields
}

// ItemsTotal sums the line item subtotals.
func ItemsTotal(items []LineItem) decimal.Decimal {
	total := decimal.Zero
	for _, item := range items {
		total = total.Add(item.Subtotal())
	}
	return total
}

// AgeInDays is the number of whole days between the sale's creation and now.
func (s Sale) AgeInDays(now time.Time) int {
	return DaysBetween(s.CreatedAt, now)
}

// SaleFilter narrows a sale listing.
type SaleFilter struct {
	CustomerID string
	From       *time.Time
	To         *time.Time
	Limit      int
	Offset     int
}
