package dto

// AddStockRequest receives new units of a product.
type AddStockRequest struct {
	ProductID string `json:"productID" binding:"required"`
	Quantity  int    `json:"quantity" binding:"required,min=1,max=2147483647"`
	Reason    string `json:"reason"`
}

// AdjustStockRequest sets a product's quantity after a count.
type AdjustStockRequest struct {
	ProductID   string `json:"productID" binding:"required"`
	NewQuantity int    `json:"newQuantity" binding:"min=0,max=2147483647"`
	Reason      string `json:"reason"`
}

// ListStockParams defines the query parameters for the stock movement log.
type ListStockParams struct {
	ProductID string `form:"productID"`
	Limit     int    `form:"limit,default=100" binding:"min=0,max=1000"`
	Offset    int    `form:"offset,default=0" binding:"min=0"`
}
