package handlers

import (
	"net/http"

	portssvc "github.com/SscSPs/shop_ledger/internal/core/ports/services"
	"github.com/SscSPs/shop_ledger/internal/dto"
	"github.com/gin-gonic/gin"
)

// reportingHandler handles HTTP requests related to sales and inventory reports
type reportingHandler struct {
	reportingService portssvc.ReportingSvc
}

// newReportingHandler creates a new reportingHandler
func newReportingHandler(rs portssvc.ReportingSvc) *reportingHandler {
	return &reportingHandler{
		reportingService: rs,
	}
}

// registerReportingRoutes registers routes related to reports
func registerReportingRoutes(rg *gin.RouterGroup, reportingService portssvc.ReportingSvc) {
	h := newReportingHandler(reportingService)

	reportingGroup := rg.Group("/reports")
	{
		reportingGroup.GET("/sales", h.getSalesReport)
		reportingGroup.GET("/inventory", h.getInventoryReport)
		reportingGroup.GET("/analytics", h.getAnalytics)
	}
}

// getSalesReport godoc
// @Summary Generate sales report
// @Description Totals for sales created in the range, with one entry per day keyed by YYYY-MM-DD
// @Tags reports
// @Produce json
// @Param from query string false "First day (YYYY-MM-DD)"
// @Param to query string false "Last day (YYYY-MM-DD)"
// @Success 200 {object} dto.APIResponse{data=domain.SalesReport}
// @Failure 400 {object} dto.APIResponse "Invalid date"
// @Failure 500 {object} dto.APIResponse
// @Security BearerAuth
// @Router /reports/sales [get]
func (h *reportingHandler) getSalesReport(c *gin.Context) {
	var params dto.ReportRangeParams
	if err := c.ShouldBindQuery(&params); err != nil {
		respondBindError(c, err)
		return
	}

	report, err := h.reportingService.GetSalesReport(c.Request.Context(), params)
	if err != nil {
		respondError(c, err, "Failed to generate sales report")
		return
	}
	respondOK(c, http.StatusOK, report, "Sales report generated successfully")
}

// getInventoryReport godoc
// @Summary Generate inventory report
// @Description Active products below the low-stock threshold
// @Tags reports
// @Produce json
// @Success 200 {object} dto.APIResponse{data=domain.InventoryReport}
// @Failure 500 {object} dto.APIResponse
// @Security BearerAuth
// @Router /reports/inventory [get]
func (h *reportingHandler) getInventoryReport(c *gin.Context) {
	report, err := h.reportingService.GetInventoryReport(c.Request.Context())
	if err != nil {
		respondError(c, err, "Failed to generate inventory report")
		return
	}
	respondOK(c, http.StatusOK, report, "Inventory report generated successfully")
}

// getAnalytics godoc
// @Summary Generate analytics
// @Description Catalog value, customer count and sales in the range with monthly trends
// @Tags reports
// @Produce json
// @Param from query string false "First day (YYYY-MM-DD)"
// @Param to query string false "Last day (YYYY-MM-DD)"
// @Success 200 {object} dto.APIResponse{data=domain.Analytics}
// @Failure 400 {object} dto.APIResponse "Invalid date"
// @Failure 500 {object} dto.APIResponse
// @Security BearerAuth
// @Router /reports/analytics [get]
func (h *reportingHandler) getAnalytics(c *gin.Context) {
	var params dto.ReportRangeParams
	if err := c.ShouldBindQuery(&params); err != nil {
		respondBindError(c, err)
		return
	}

	analytics, err := h.reportingService.GetAnalytics(c.Request.Context(), params)
	if err != nil {
		respondError(c, err, "Failed to generate analytics")
		return
	}
	respondOK(c, http.StatusOK, analytics, "Analytics generated successfully")
}
