package domain

import (
	"math"

	"github.com/shopspring/decimal"
)

// LowStockThreshold is the quantity below which a product is reported as low on stock.
const LowStockThreshold = 10

// MaxStockQuantity is the largest quantity a product or a single stock change
// may carry. Quantities are stored as 32-bit integers.
const MaxStockQuantity = math.MaxInt32

// Product is a sellable item. Quantity changes only through stock movements.
type Product struct {
	ProductID string          `json:"productID"`
	Name      string          `json:"name"`
	Price     decimal.Decimal `json:"price"`
	Quantity  int             `json:"quantity"`
	Type      string          `json:"type"`
	Featured  bool            `json:"featured"`
	Rating    int             `json:"rating"`
	IsActive  bool            `json:"isActive"`
	AuditFields
}

// IsLowStock reports whether the quantity on hand has dropped below LowStockThreshold.
func (p Product) IsLowStock() bool {
	return p.Quantity < LowStockThreshold
}

// ProductFilter narrows a product listing.
type ProductFilter struct {
	SearchTerm      string
	Type            string
	LowStockOnly    bool
	IncludeInactive bool
	Limit           int
	Offset          int
}

// ProductBatch is the outcome of a bulk catalog change.
type ProductBatch struct {
	Created []Product `json:"created"`
	Updated []Product `json:"updated"`
}
