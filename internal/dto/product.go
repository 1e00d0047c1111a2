package dto

import "github.com/shopspring/decimal"

// CreateProductRequest defines the data needed to add a product to the catalog.
// Quantity is the opening stock and is recorded as a restock movement.
type CreateProductRequest struct {
	Name     string          `json:"name" binding:"required"`
	Price    decimal.Decimal `json:"price"`
	Quantity int             `json:"quantity" binding:"min=0,max=2147483647"`
	Type     string          `json:"type"`
	Featured bool            `json:"featured"`
	Rating   int             `json:"rating" binding:"min=0,max=5"`
}

// UpdateProductRequest defines the editable product fields. Quantity is not one of them.
type UpdateProductRequest struct {
	Name     *string          `json:"name,omitempty"`
	Price    *decimal.Decimal `json:"price,omitempty"`
	Type     *string          `json:"type,omitempty"`
	Featured *bool            `json:"featured,omitempty"`
	Rating   *int             `json:"rating,omitempty" binding:"omitempty,min=0,max=5"`
}

// ListProductsParams defines the query parameters for listing products.
type ListProductsParams struct {
	Search   string `form:"search"`
	Type     string `form:"type"`
	LowStock bool   `form:"lowStock"`
	Limit    int    `form:"limit,default=50" binding:"min=0,max=500"`
	Offset   int    `form:"offset,default=0" binding:"min=0"`
}

// BulkProductUpdate names the product an UpdateProductRequest applies to.
type BulkProductUpdate struct {
	ProductID string `json:"productID" binding:"required"`
	UpdateProductRequest
}

// BulkProductsRequest creates and updates products in one unit of work.
type BulkProductsRequest struct {
	Create []CreateProductRequest `json:"create" binding:"max=500,dive"`
	Update []BulkProductUpdate    `json:"update" binding:"max=500,dive"`
}
