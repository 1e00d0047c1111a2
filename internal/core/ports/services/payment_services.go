package services

import (
	"context"

	"github.com/SscSPs/shop_ledger/internal/core/domain"
	"github.com/SscSPs/shop_ledger/internal/dto"
)

// PaymentSvcFacade defines payment operations
type PaymentSvcFacade interface {
	// ProcessPayment applies a payment across the customer's outstanding sales, oldest first.
	ProcessPayment(ctx context.Context, req dto.ProcessPaymentRequest, userID string) (*domain.AllocationResult, error)
	GetHistory(ctx context.Context, params dto.PaymentHistoryParams) (*dto.PaymentHistoryResponse, error)
}

// OutstandingSvc defines the read-only views over outstanding debt
type OutstandingSvc interface {
	GetOutstanding(ctx context.Context, params dto.OutstandingParams) (*domain.OutstandingList, error)
	GetCustomerDetail(ctx context.Context, customerID string) (*domain.CustomerDetail, error)
	GetReport(ctx context.Context, params dto.OutstandingParams) (*domain.OutstandingReport, error)
}
