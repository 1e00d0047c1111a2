package repositories

import (
	"context"

	"github.com/SscSPs/shop_ledger/internal/core/domain"
)

// PaymentReader defines read operations for payment history
type PaymentReader interface {
	// ListPayments retrieves payment records newest first.
	ListPayments(ctx context.Context, filter domain.PaymentFilter) ([]domain.PaymentRecord, error)
}

// PaymentWriter defines write operations for payment history
type PaymentWriter interface {
	// SavePayment appends a payment record.
	SavePayment(ctx context.Context, record domain.PaymentRecord) error
}

// PaymentRepositoryFacade combines all payment-related repository interfaces
type PaymentRepositoryFacade interface {
	PaymentReader
	PaymentWriter
}
