package handlers

import (
	"net/http"

	portssvc "github.com/SscSPs/shop_ledger/internal/core/ports/services"
	"github.com/SscSPs/shop_ledger/internal/dto"
	"github.com/gin-gonic/gin"
)

// customerHandler handles HTTP requests related to customers and their credit settings.
type customerHandler struct {
	customerService portssvc.CustomerSvcFacade
	creditService   portssvc.CreditSvc
}

func newCustomerHandler(cs portssvc.CustomerSvcFacade, credit portssvc.CreditSvc) *customerHandler {
	return &customerHandler{customerService: cs, creditService: credit}
}

func registerCustomerRoutes(rg *gin.RouterGroup, customerService portssvc.CustomerSvcFacade, creditService portssvc.CreditSvc) {
	h := newCustomerHandler(customerService, creditService)

	customers := rg.Group("/customers")
	{
		customers.POST("", h.createCustomer)
		customers.GET("", h.listCustomers)
		customers.GET("/:customerID", h.getCustomer)
		customers.PUT("/:customerID", h.updateCustomer)
		customers.DELETE("/:customerID", h.deactivateCustomer)
		customers.PUT("/:customerID/credit", h.updateCredit)
	}
}

// createCustomer godoc
// @Summary Create a customer
// @Tags customers
// @Accept json
// @Produce json
// @Param customer body dto.CreateCustomerRequest true "Customer details"
// @Success 201 {object} dto.APIResponse{data=domain.Customer}
// @Failure 400 {object} dto.APIResponse
// @Security BearerAuth
// @Router /customers [post]
func (h *customerHandler) createCustomer(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}
	var req dto.CreateCustomerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}

	customer, err := h.customerService.CreateCustomer(c.Request.Context(), req, userID)
	if err != nil {
		respondError(c, err, "Failed to create customer")
		return
	}
	respondOK(c, http.StatusCreated, customer, "Customer created successfully")
}

// listCustomers godoc
// @Summary List customers
// @Tags customers
// @Produce json
// @Param search query string false "Name or phone contains"
// @Param limit query int false "Page size" default(50)
// @Param offset query int false "Offset" default(0)
// @Success 200 {object} dto.APIResponse{data=[]domain.Customer}
// @Security BearerAuth
// @Router /customers [get]
func (h *customerHandler) listCustomers(c *gin.Context) {
	var params dto.ListCustomersParams
	if err := c.ShouldBindQuery(&params); err != nil {
		respondBindError(c, err)
		return
	}

	customers, err := h.customerService.ListCustomers(c.Request.Context(), params)
	if err != nil {
		respondError(c, err, "Failed to list customers")
		return
	}
	respondOK(c, http.StatusOK, customers, "Customers retrieved successfully")
}

// getCustomer godoc
// @Summary Get a customer
// @Tags customers
// @Produce json
// @Param customerID path string true "Customer ID"
// @Success 200 {object} dto.APIResponse{data=domain.Customer}
// @Failure 404 {object} dto.APIResponse
// @Security BearerAuth
// @Router /customers/{customerID} [get]
func (h *customerHandler) getCustomer(c *gin.Context) {
	customer, err := h.customerService.GetCustomer(c.Request.Context(), c.Param("customerID"))
	if err != nil {
		respondError(c, err, "Failed to retrieve customer")
		return
	}
	respondOK(c, http.StatusOK, customer, "Customer retrieved successfully")
}

// updateCustomer godoc
// @Summary Update customer contact details
// @Tags customers
// @Accept json
// @Produce json
// @Param customerID path string true "Customer ID"
// @Param customer body dto.UpdateCustomerRequest true "Fields to change"
// @Success 200 {object} dto.APIResponse{data=domain.Customer}
// @Failure 400 {object} dto.APIResponse
// @Failure 404 {object} dto.APIResponse
// @Security BearerAuth
// @Router /customers/{customerID} [put]
func (h *customerHandler) updateCustomer(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}
	var req dto.UpdateCustomerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}

	customer, err := h.customerService.UpdateCustomer(c.Request.Context(), c.Param("customerID"), req, userID)
	if err != nil {
		respondError(c, err, "Failed to update customer")
		return
	}
	respondOK(c, http.StatusOK, customer, "Customer updated successfully")
}

// deactivateCustomer godoc
// @Summary Deactivate a customer
// @Description Refused while the customer still owes money.
// @Tags customers
// @Produce json
// @Param customerID path string true "Customer ID"
// @Success 200 {object} dto.APIResponse
// @Failure 400 {object} dto.APIResponse
// @Failure 404 {object} dto.APIResponse
// @Security BearerAuth
// @Router /customers/{customerID} [delete]
func (h *customerHandler) deactivateCustomer(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}
	if err := h.customerService.DeactivateCustomer(c.Request.Context(), c.Param("customerID"), userID); err != nil {
		respondError(c, err, "Failed to deactivate customer")
		return
	}
	respondOK(c, http.StatusOK, nil, "Customer deactivated successfully")
}

// updateCredit godoc
// @Summary Update credit settings
// @Description Replaces the credit limit, payment terms and credit flag. The balance is never changed here.
// @Tags customers
// @Accept json
// @Produce json
// @Param customerID path string true "Customer ID"
// @Param credit body dto.UpdateCreditRequest true "Credit settings"
// @Success 200 {object} dto.APIResponse{data=domain.Customer}
// @Failure 400 {object} dto.APIResponse
// @Failure 404 {object} dto.APIResponse
// @Security BearerAuth
// @Router /customers/{customerID}/credit [put]
func (h *customerHandler) updateCredit(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}
	var req dto.UpdateCreditRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}
	req.CustomerID = c.Param("customerID")

	customer, err := h.creditService.UpdateCreditSettings(c.Request.Context(), req, userID)
	if err != nil {
		respondError(c, err, "Failed to update credit settings")
		return
	}
	respondOK(c, http.StatusOK, customer, "Credit settings updated successfully")
}
