package models

import "github.com/shopspring/decimal"

// SaleItem is one element of the sales.items JSONB array.
type SaleItem struct {
	ProductID   string          `json:"product_id"`
	ProductName string          `json:"product_name"`
	Quantity    int             `json:"quantity"`
	UnitPrice   decimal.Decimal `json:"unit_price"`
}

// Sale is a row of the sales table. The customer_* columns hold the contact
// snapshot taken at checkout.
type Sale struct {
	SaleID            string          `db:"sale_id"`
	CustomerID        string          `db:"customer_id"`
	CustomerName      string          `db:"customer_name"`
	CustomerPhone     string          `db:"customer_phone"`
	CustomerAddress   string          `db:"customer_address"`
	Items             []SaleItem      `db:"items"`
	TotalAmount       decimal.Decimal `db:"total_amount"`
	TotalPaid         decimal.Decimal `db:"total_paid"`
	OutstandingAmount decimal.Decimal `db:"outstanding_amount"`
	PaymentStatus     string          `db:"payment_status"`
	AuditFields
}
