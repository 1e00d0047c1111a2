package domain

import "time"

// MovementType tags why a product's quantity changed. Free-form reasons are
// allowed for manual adjustments.
type MovementType string

const (
	MovementRestock    MovementType = "restock"
	MovementSale       MovementType = "sale"
	MovementAdjustment MovementType = "adjustment"
	MovementReturn     MovementType = "return"
)

// StockMovement is one append-only entry in a product's stock ledger.
// Positive quantities add stock, negative ones consume it.
type StockMovement struct {
	MovementID string       `json:"movementID"`
	ProductID  string       `json:"productID"`
	Quantity   int          `json:"quantity"`
	Type       MovementType `json:"type"`
	SaleID     *string      `json:"saleID,omitempty"`
	CreatedAt  time.Time    `json:"createdAt"`
	CreatedBy  string       `json:"createdBy"`
}

// StockFilter narrows a movement listing. An empty ProductID lists all products.
type StockFilter struct {
	ProductID string
	Limit     int
	Offset    int
}
