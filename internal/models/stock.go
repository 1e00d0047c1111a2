package models

import "time"

// StockMovement is a row of the stock_movements table.
type StockMovement struct {
	MovementID string    `db:"movement_id"`
	ProductID  string    `db:"product_id"`
	Quantity   int       `db:"quantity"`
	Type       string    `db:"movement_type"`
	SaleID     *string   `db:"sale_id"`
	CreatedAt  time.Time `db:"created_at"`
	CreatedBy  string    `db:"created_by"`
}
