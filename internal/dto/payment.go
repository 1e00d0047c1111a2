package dto

import (
	"github.com/SscSPs/shop_ledger/internal/core/domain"
	"github.com/shopspring/decimal"
)

// ProcessPaymentRequest defines an incoming customer payment. Method defaults to cash.
type ProcessPaymentRequest struct {
	CustomerID      string          `json:"customerID"`
	Amount          decimal.Decimal `json:"amount"`
	Method          string          `json:"method"`
	Notes           string          `json:"notes"`
	ReferenceNumber *string         `json:"referenceNumber,omitempty"`
}

// OutstandingParams defines the query parameters for the outstanding list and report.
type OutstandingParams struct {
	Search     string `form:"search"`
	Aging      string `form:"aging" binding:"omitempty,oneof=current 31-60 61-90 90+ overdue"`
	CustomerID string `form:"customerID"`
	Page       int    `form:"page,default=1" binding:"min=1"`
	Limit      int    `form:"limit,default=50" binding:"min=0,max=500"`
}

// PaymentHistoryParams defines the query parameters for payment history.
type PaymentHistoryParams struct {
	CustomerID string  `form:"customerID"`
	Limit      int     `form:"limit,default=100" binding:"min=0,max=1000"`
	NextToken  *string `form:"nextToken"`
}

// PaymentHistoryResponse is one page of payment history.
type PaymentHistoryResponse struct {
	Payments  []domain.PaymentRecord `json:"payments"`
	NextToken *string                `json:"nextToken,omitempty"`
}
