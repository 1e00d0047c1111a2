package handlers

import (
	"log/slog"
	"net/http"

	portssvc "github.com/SscSPs/shop_ledger/internal/core/ports/services"
	"github.com/SscSPs/shop_ledger/internal/dto"
	"github.com/SscSPs/shop_ledger/internal/middleware"
	"github.com/gin-gonic/gin"
)

// paymentHandler handles payments and the outstanding debt views.
type paymentHandler struct {
	paymentService     portssvc.PaymentSvcFacade
	outstandingService portssvc.OutstandingSvc
}

func newPaymentHandler(ps portssvc.PaymentSvcFacade, outs portssvc.OutstandingSvc) *paymentHandler {
	return &paymentHandler{paymentService: ps, outstandingService: outs}
}

func registerPaymentRoutes(rg *gin.RouterGroup, paymentService portssvc.PaymentSvcFacade, outstandingService portssvc.OutstandingSvc) {
	h := newPaymentHandler(paymentService, outstandingService)

	payments := rg.Group("/payments")
	{
		payments.POST("", h.processPayment)
		payments.GET("/outstanding", h.getOutstanding)
		payments.GET("/customers/:customerID", h.getCustomerDetail)
		payments.GET("/history", h.getHistory)
		payments.GET("/report", h.getReport)
	}
}

// processPayment godoc
// @Summary Process a customer payment
// @Description Applies the amount to the customer's outstanding sales, oldest first. Any excess is returned as remainingCredit.
// @Tags payments
// @Accept json
// @Produce json
// @Param payment body dto.ProcessPaymentRequest true "Payment"
// @Success 200 {object} dto.APIResponse{data=domain.AllocationResult}
// @Failure 400 {object} dto.APIResponse
// @Failure 404 {object} dto.APIResponse
// @Failure 422 {object} dto.APIResponse "No outstanding balance"
// @Failure 500 {object} dto.APIResponse
// @Security BearerAuth
// @Router /payments [post]
func (h *paymentHandler) processPayment(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}
	var req dto.ProcessPaymentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}

	result, err := h.paymentService.ProcessPayment(c.Request.Context(), req, userID)
	if err != nil {
		respondError(c, err, "Failed to process payment")
		return
	}

	middleware.GetLoggerFromCtx(c.Request.Context()).Info("Payment processed", slog.String("payment_id", result.PaymentID))
	respondOK(c, http.StatusOK, result, "Payment processed successfully")
}

// getOutstanding godoc
// @Summary Outstanding balances
// @Description One row per customer that owes money, largest balance first.
// @Tags payments
// @Produce json
// @Param search query string false "Customer name or phone contains"
// @Param aging query string false "current, 31-60, 61-90, 90+ or overdue"
// @Param customerID query string false "Customer ID"
// @Param page query int false "Page" default(1)
// @Param limit query int false "Page size" default(50)
// @Success 200 {object} dto.APIResponse{data=domain.OutstandingList}
// @Failure 400 {object} dto.APIResponse
// @Security BearerAuth
// @Router /payments/outstanding [get]
func (h *paymentHandler) getOutstanding(c *gin.Context) {
	var params dto.OutstandingParams
	if err := c.ShouldBindQuery(&params); err != nil {
		respondBindError(c, err)
		return
	}

	list, err := h.outstandingService.GetOutstanding(c.Request.Context(), params)
	if err != nil {
		respondError(c, err, "Failed to retrieve outstanding payments")
		return
	}
	respondOK(c, http.StatusOK, list, "Outstanding payments retrieved successfully")
}

// getCustomerDetail godoc
// @Summary Customer payment details
// @Description Outstanding sales, payment history, aging buckets and credit utilization for one customer.
// @Tags payments
// @Produce json
// @Param customerID path string true "Customer ID"
// @Success 200 {object} dto.APIResponse{data=domain.CustomerDetail}
// @Failure 404 {object} dto.APIResponse
// @Security BearerAuth
// @Router /payments/customers/{customerID} [get]
func (h *paymentHandler) getCustomerDetail(c *gin.Context) {
	detail, err := h.outstandingService.GetCustomerDetail(c.Request.Context(), c.Param("customerID"))
	if err != nil {
		respondError(c, err, "Failed to retrieve customer payment details")
		return
	}
	respondOK(c, http.StatusOK, detail, "Customer payment details retrieved successfully")
}

// getHistory godoc
// @Summary Payment history
// @Description Newest first. Pass nextToken from a previous page to continue.
// @Tags payments
// @Produce json
// @Param customerID query string false "Customer ID"
// @Param limit query int false "Page size" default(100)
// @Param nextToken query string false "Continuation token"
// @Success 200 {object} dto.APIResponse{data=dto.PaymentHistoryResponse}
// @Failure 400 {object} dto.APIResponse
// @Security BearerAuth
// @Router /payments/history [get]
func (h *paymentHandler) getHistory(c *gin.Context) {
	var params dto.PaymentHistoryParams
	if err := c.ShouldBindQuery(&params); err != nil {
		respondBindError(c, err)
		return
	}

	history, err := h.paymentService.GetHistory(c.Request.Context(), params)
	if err != nil {
		respondError(c, err, "Failed to retrieve payment history")
		return
	}
	respondOK(c, http.StatusOK, history, "Payment history retrieved successfully")
}

// getReport godoc
// @Summary Outstanding report
// @Description Totals, aging breakdown, risk classification and the ten largest debtors.
// @Tags payments
// @Produce json
// @Param search query string false "Customer name or phone contains"
// @Param aging query string false "current, 31-60, 61-90, 90+ or overdue"
// @Param customerID query string false "Customer ID"
// @Success 200 {object} dto.APIResponse{data=domain.OutstandingReport}
// @Failure 400 {object} dto.APIResponse
// @Security BearerAuth
// @Router /payments/report [get]
func (h *paymentHandler) getReport(c *gin.Context) {
	var params dto.OutstandingParams
	if err := c.ShouldBindQuery(&params); err != nil {
		respondBindError(c, err)
		return
	}

	report, err := h.outstandingService.GetReport(c.Request.Context(), params)
	if err != nil {
		respondError(c, err, "Failed to generate outstanding report")
		return
	}
	respondOK(c, http.StatusOK, report, "Outstanding report generated successfully")
}
