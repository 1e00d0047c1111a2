package handlers

import (
	"log/slog"
	"net/http"

	portssvc "github.com/SscSPs/shop_ledger/internal/core/ports/services"
	"github.com/SscSPs/shop_ledger/internal/dto"
	"github.com/SscSPs/shop_ledger/internal/middleware"
	"github.com/gin-gonic/gin"
)

// saleHandler handles checkout and sale lookups.
type saleHandler struct {
	saleService portssvc.SaleSvcFacade
}

func newSaleHandler(ss portssvc.SaleSvcFacade) *saleHandler {
	return &saleHandler{saleService: ss}
}

func registerSaleRoutes(rg *gin.RouterGroup, saleService portssvc.SaleSvcFacade) {
	h := newSaleHandler(saleService)

	sales := rg.Group("/sales")
	{
		sales.POST("", h.createSale)
		sales.GET("", h.listSales)
		sales.GET("/:saleID", h.getSale)
	}
}

// createSale godoc
// @Summary Create a sale
// @Description Checks out a cart: decrements stock, records the sale and adds any unpaid amount to the customer's balance.
// @Tags sales
// @Accept json
// @Produce json
// @Param sale body dto.CreateSaleRequest true "Cart"
// @Success 201 {object} dto.APIResponse{data=domain.Sale}
// @Failure 400 {object} dto.APIResponse
// @Failure 404 {object} dto.APIResponse
// @Failure 409 {object} dto.APIResponse "Insufficient stock"
// @Failure 422 {object} dto.APIResponse "Amount paid exceeds total"
// @Failure 500 {object} dto.APIResponse
// @Security BearerAuth
// @Router /sales [post]
func (h *saleHandler) createSale(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}
	var req dto.CreateSaleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}

	sale, err := h.saleService.CreateSale(c.Request.Context(), req, userID)
	if err != nil {
		respondError(c, err, "Failed to create sale")
		return
	}

	middleware.GetLoggerFromCtx(c.Request.Context()).Info("Sale created", slog.String("sale_id", sale.SaleID))
	respondOK(c, http.StatusCreated, sale, "Sale created successfully")
}

// listSales godoc
// @Summary List sales
// @Description Newest first. from and to are inclusive YYYY-MM-DD dates.
// @Tags sales
// @Produce json
// @Param customerID query string false "Customer ID"
// @Param from query string false "From date"
// @Param to query string false "To date"
// @Param limit query int false "Page size" default(50)
// @Param offset query int false "Offset" default(0)
// @Success 200 {object} dto.APIResponse{data=[]domain.Sale}
// @Failure 400 {object} dto.APIResponse
// @Security BearerAuth
// @Router /sales [get]
func (h *saleHandler) listSales(c *gin.Context) {
	var params dto.ListSalesParams
	if err := c.ShouldBindQuery(&params); err != nil {
		respondBindError(c, err)
		return
	}

	sales, err := h.saleService.ListSales(c.Request.Context(), params)
	if err != nil {
		respondError(c, err, "Failed to list sales")
		return
	}
	respondOK(c, http.StatusOK, sales, "Sales retrieved successfully")
}

// getSale godoc
// @Summary Get a sale
// @Tags sales
// @Produce json
// @Param saleID path string true "Sale ID"
// @Success 200 {object} dto.APIResponse{data=domain.Sale}
// @Failure 404 {object} dto.APIResponse
// @Security BearerAuth
// @Router /sales/{saleID} [get]
func (h *saleHandler) getSale(c *gin.Context) {
	sale, err := h.saleService.GetSale(c.Request.Context(), c.Param("saleID"))
	if err != nil {
		respondError(c, err, "Failed to retrieve sale")
		return
	}
	respondOK(c, http.StatusOK, sale, "Sale retrieved successfully")
}
