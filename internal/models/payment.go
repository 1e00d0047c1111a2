package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// PaymentRecord is a row of the payment_history table.
type PaymentRecord struct {
	PaymentID       string          `db:"payment_id"`
	CustomerID      string          `db:"customer_id"`
	SaleID          *string         `db:"sale_id"`
	Amount          decimal.Decimal `db:"amount"`
	Method          string          `db:"payment_method"`
	PaymentType     string          `db:"payment_type"`
	ReferenceNumber *string         `db:"reference_number"`
	Notes           string          `db:"notes"`
	PaymentDate     time.Time       `db:"payment_date"`
	CreatedBy       *string         `db:"created_by"`
}
