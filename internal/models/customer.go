package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Customer is a row of the customers table. A NULL credit_limit means no limit.
type Customer struct {
	CustomerID      string              `db:"customer_id"`
	Name            string              `db:"name"`
	Phone           string              `db:"phone"`
	Address         string              `db:"address"`
	CreditLimit     decimal.NullDecimal `db:"credit_limit"`
	CreditBalance   decimal.Decimal     `db:"credit_balance"`
	PaymentTerms    string              `db:"payment_terms"`
	IsCreditEnabled bool                `db:"is_credit_enabled"`
	IsActive        bool                `db:"is_active"`
	AuditFields
}

// OutstandingBalance is a row of outstanding_payments_view.
type OutstandingBalance struct {
	CustomerID            string              `db:"customer_id"`
	CustomerName          string              `db:"customer_name"`
	Phone                 string              `db:"phone"`
	CreditLimit           decimal.NullDecimal `db:"credit_limit"`
	TotalOutstanding      decimal.Decimal     `db:"total_outstanding"`
	OutstandingSalesCount int                 `db:"outstanding_sales_count"`
	LatestSaleAt          time.Time           `db:"latest_sale_at"`
	SaleIDs               []string            `db:"sale_ids"`
}
