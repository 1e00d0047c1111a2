package dto

import "github.com/shopspring/decimal"

// SaleItemRequest is one cart line. UnitPrice defaults to the product's current price.
type SaleItemRequest struct {
	ProductID string           `json:"productID" binding:"required"`
	Quantity  int              `json:"quantity" binding:"required,min=1,max=2147483647"`
	UnitPrice *decimal.Decimal `json:"unitPrice,omitempty"`
}

// CreateSaleRequest defines the data needed to check out a cart.
type CreateSaleRequest struct {
	CustomerID string            `json:"customerID" binding:"required"`
	Items      []SaleItemRequest `json:"items" binding:"required,min=1,dive"`
	AmountPaid decimal.Decimal   `json:"amountPaid"`
}

// ListSalesParams defines the query parameters for listing sales.
// From and To are YYYY-MM-DD dates, both inclusive.
type ListSalesParams struct {
	CustomerID string `form:"customerID"`
	From       string `form:"from"`
	To         string `form:"to"`
	Limit      int    `form:"limit,default=50" binding:"min=0,max=500"`
	Offset     int    `form:"offset,default=0" binding:"min=0"`
}
