package handlers

import (
	"fmt"
	"net/http"

	portssvc "github.com/SscSPs/shop_ledger/internal/core/ports/services"
	"github.com/SscSPs/shop_ledger/internal/dto"
	"github.com/gin-gonic/gin"
)

// productHandler handles HTTP requests related to the catalog.
type productHandler struct {
	productService portssvc.ProductSvcFacade
	stockService   portssvc.StockSvcFacade
}

func newProductHandler(ps portssvc.ProductSvcFacade, ss portssvc.StockSvcFacade) *productHandler {
	return &productHandler{productService: ps, stockService: ss}
}

func registerProductRoutes(rg *gin.RouterGroup, productService portssvc.ProductSvcFacade, stockService portssvc.StockSvcFacade) {
	h := newProductHandler(productService, stockService)

	products := rg.Group("/products")
	{
		products.POST("", h.createProduct)
		products.POST("/bulk", h.bulkProducts)
		products.GET("", h.listProducts)
		products.GET("/:productID", h.getProduct)
		products.PUT("/:productID", h.updateProduct)
		products.DELETE("/:productID", h.deactivateProduct)
		products.GET("/:productID/movements", h.listMovements)
	}
}

// createProduct godoc
// @Summary Create a product
// @Description Adds a product to the catalog. The opening quantity is recorded as a restock movement.
// @Tags products
// @Accept json
// @Produce json
// @Param product body dto.CreateProductRequest true "Product details"
// @Success 201 {object} dto.APIResponse{data=domain.Product}
// @Failure 400 {object} dto.APIResponse
// @Failure 500 {object} dto.APIResponse
// @Security BearerAuth
// @Router /products [post]
func (h *productHandler) createProduct(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}
	var req dto.CreateProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}

	product, err := h.productService.CreateProduct(c.Request.Context(), req, userID)
	if err != nil {
		respondError(c, err, "Failed to create product")
		return
	}
	respondOK(c, http.StatusCreated, product, "Product created successfully")
}

// bulkProducts godoc
// @Summary Create and update products in bulk
// @Description Creates then updates products in one transaction. One bad entry rejects the whole batch.
// @Tags products
// @Accept json
// @Produce json
// @Param batch body dto.BulkProductsRequest true "Products to create and update"
// @Success 200 {object} dto.APIResponse{data=domain.ProductBatch}
// @Failure 400 {object} dto.APIResponse
// @Failure 404 {object} dto.APIResponse
// @Failure 500 {object} dto.APIResponse
// @Security BearerAuth
// @Router /products/bulk [post]
func (h *productHandler) bulkProducts(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}
	var req dto.BulkProductsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}

	batch, err := h.productService.ApplyProductBatch(c.Request.Context(), req, userID)
	if err != nil {
		respondError(c, err, "Bulk product update failed")
		return
	}
	respondOK(c, http.StatusOK, batch, fmt.Sprintf("%d products created, %d updated", len(batch.Created), len(batch.Updated)))
}

// listProducts godoc
// @Summary List products
// @Tags products
// @Produce json
// @Param search query string false "Name contains"
// @Param type query string false "Product type"
// @Param lowStock query bool false "Only products below the low stock threshold"
// @Param limit query int false "Page size" default(50)
// @Param offset query int false "Offset" default(0)
// @Success 200 {object} dto.APIResponse{data=[]domain.Product}
// @Failure 400 {object} dto.APIResponse
// @Security BearerAuth
// @Router /products [get]
func (h *productHandler) listProducts(c *gin.Context) {
	var params dto.ListProductsParams
	if err := c.ShouldBindQuery(&params); err != nil {
		respondBindError(c, err)
		return
	}

	products, err := h.productService.ListProducts(c.Request.Context(), params)
	if err != nil {
		respondError(c, err, "Failed to list products")
		return
	}
	respondOK(c, http.StatusOK, products, "Products retrieved successfully")
}

// getProduct godoc
// @Summary Get a product
// @Tags products
// @Produce json
// @Param productID path string true "Product ID"
// @Success 200 {object} dto.APIResponse{data=domain.Product}
// @Failure 404 {object} dto.APIResponse
// @Security BearerAuth
// @Router /products/{productID} [get]
func (h *productHandler) getProduct(c *gin.Context) {
	product, err := h.productService.GetProduct(c.Request.Context(), c.Param("productID"))
	if err != nil {
		respondError(c, err, "Failed to retrieve product")
		return
	}
	respondOK(c, http.StatusOK, product, "Product retrieved successfully")
}

// updateProduct godoc
// @Summary Update a product
// @Description Changes descriptive fields. Quantity only moves through stock operations.
// @Tags products
// @Accept json
// @Produce json
// @Param productID path string true "Product ID"
// @Param product body dto.UpdateProductRequest true "Fields to change"
// @Success 200 {object} dto.APIResponse{data=domain.Product}
// @Failure 400 {object} dto.APIResponse
// @Failure 404 {object} dto.APIResponse
// @Security BearerAuth
// @Router /products/{productID} [put]
func (h *productHandler) updateProduct(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}
	var req dto.UpdateProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}

	product, err := h.productService.UpdateProduct(c.Request.Context(), c.Param("productID"), req, userID)
	if err != nil {
		respondError(c, err, "Failed to update product")
		return
	}
	respondOK(c, http.StatusOK, product, "Product updated successfully")
}

// deactivateProduct godoc
// @Summary Deactivate a product
// @Tags products
// @Produce json
// @Param productID path string true "Product ID"
// @Success 200 {object} dto.APIResponse
// @Failure 404 {object} dto.APIResponse
// @Security BearerAuth
// @Router /products/{productID} [delete]
func (h *productHandler) deactivateProduct(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}
	if err := h.productService.DeactivateProduct(c.Request.Context(), c.Param("productID"), userID); err != nil {
		respondError(c, err, "Failed to deactivate product")
		return
	}
	respondOK(c, http.StatusOK, nil, "Product deactivated successfully")
}

// listMovements godoc
// @Summary Stock movements for a product
// @Description Every movement for the product, oldest first.
// @Tags products
// @Produce json
// @Param productID path string true "Product ID"
// @Success 200 {object} dto.APIResponse{data=[]domain.StockMovement}
// @Failure 404 {object} dto.APIResponse
// @Security BearerAuth
// @Router /products/{productID}/movements [get]
func (h *productHandler) listMovements(c *gin.Context) {
	movements, err := h.stockService.GetMovementsForProduct(c.Request.Context(), c.Param("productID"))
	if err != nil {
		respondError(c, err, "Failed to retrieve stock movements")
		return
	}
	respondOK(c, http.StatusOK, movements, "Stock movements retrieved successfully")
}
