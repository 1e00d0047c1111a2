package models

import "github.com/shopspring/decimal"

// Product is a row of the products table.
type Product struct {
	ProductID string          `db:"product_id"`
	Name      string          `db:"name"`
	Price     decimal.Decimal `db:"price"`
	Quantity  int             `db:"quantity"`
	Type      string          `db:"type"`
	Featured  bool            `db:"featured"`
	Rating    int             `db:"rating"`
	IsActive  bool            `db:"is_active"`
	AuditFields
}
