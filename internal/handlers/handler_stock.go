package handlers

import (
	"net/http"

	portssvc "github.com/SscSPs/shop_ledger/internal/core/ports/services"
	"github.com/SscSPs/shop_ledger/internal/dto"
	"github.com/gin-gonic/gin"
)

// stockHandler handles operator driven stock changes.
type stockHandler struct {
	stockService portssvc.StockSvcFacade
}

func newStockHandler(ss portssvc.StockSvcFacade) *stockHandler {
	return &stockHandler{stockService: ss}
}

func registerStockRoutes(rg *gin.RouterGroup, stockService portssvc.StockSvcFacade) {
	h := newStockHandler(stockService)

	stock := rg.Group("/stock")
	{
		stock.GET("", h.listStock)
		stock.POST("/add", h.addStock)
		stock.POST("/adjust", h.adjustStock)
	}
}

// addStock godoc
// @Summary Receive stock
// @Tags stock
// @Accept json
// @Produce json
// @Param stock body dto.AddStockRequest true "Units received"
// @Success 201 {object} dto.APIResponse{data=domain.StockMovement}
// @Failure 400 {object} dto.APIResponse
// @Failure 404 {object} dto.APIResponse
// @Security BearerAuth
// @Router /stock/add [post]
func (h *stockHandler) addStock(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}
	var req dto.AddStockRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}

	movement, err := h.stockService.AddStock(c.Request.Context(), req, userID)
	if err != nil {
		respondError(c, err, "Failed to add stock")
		return
	}
	respondOK(c, http.StatusCreated, movement, "Stock added successfully")
}

// adjustStock godoc
// @Summary Adjust stock after a count
// @Description Sets the quantity on hand. No movement is written when the quantity is already correct.
// @Tags stock
// @Accept json
// @Produce json
// @Param stock body dto.AdjustStockRequest true "Counted quantity"
// @Success 200 {object} dto.APIResponse{data=domain.StockMovement}
// @Failure 400 {object} dto.APIResponse
// @Failure 404 {object} dto.APIResponse
// @Security BearerAuth
// @Router /stock/adjust [post]
func (h *stockHandler) adjustStock(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}
	var req dto.AdjustStockRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}

	movement, err := h.stockService.AdjustStock(c.Request.Context(), req, userID)
	if err != nil {
		respondError(c, err, "Failed to adjust stock")
		return
	}
	if movement == nil {
		respondOK(c, http.StatusOK, nil, "Stock already at requested quantity")
		return
	}
	respondOK(c, http.StatusOK, movement, "Stock adjusted successfully")
}

// listStock godoc
// @Summary Stock movement log
// @Description Newest first, optionally for one product.
// @Tags stock
// @Produce json
// @Param productID query string false "Product ID"
// @Param limit query int false "Page size" default(100)
// @Param offset query int false "Offset" default(0)
// @Success 200 {object} dto.APIResponse{data=[]domain.StockMovement}
// @Security BearerAuth
// @Router /stock [get]
func (h *stockHandler) listStock(c *gin.Context) {
	var params dto.ListStockParams
	if err := c.ShouldBindQuery(&params); err != nil {
		respondBindError(c, err)
		return
	}

	movements, err := h.stockService.ListStock(c.Request.Context(), params)
	if err != nil {
		respondError(c, err, "Failed to list stock movements")
		return
	}
	respondOK(c, http.StatusOK, movements, "Stock movements retrieved successfully")
}
