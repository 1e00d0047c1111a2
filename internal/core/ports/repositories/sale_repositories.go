package repositories

import (
	"context"
	"time"

	"github.com/SscSPs/shop_ledger/internal/core/domain"
	"github.com/shopspring/decimal"
)

// SaleReader defines read operations for sale data
type SaleReader interface {
	// FindSaleByID retrieves a sale with its line items.
	FindSaleByID(ctx context.Context, saleID string) (*domain.Sale, error)

	// ListSales retrieves sales newest first.
	ListSales(ctx context.Context, filter domain.SaleFilter) ([]domain.Sale, error)

	// ListOutstandingSalesByCustomer retrieves the customer's sales with an
	// outstanding amount above zero, oldest first.
	ListOutstandingSalesByCustomer(ctx context.Context, customerID string) ([]domain.Sale, error)

	// SummarizeOutstanding returns one balance per customer that still owes money.
	SummarizeOutstanding(ctx context.Context) ([]domain.CustomerBalance, error)
}

// SaleWriter defines write operations for sale data
type SaleWriter interface {
	// SaveSale persists a new sale with its line items.
	SaveSale(ctx context.Context, sale domain.Sale) error

	// UpdateSalePayment records the outcome of applying a payment to a sale.
	UpdateSalePayment(ctx context.Context, saleID string, totalPaid, outstanding decimal.Decimal, status domain.PaymentStatus, now time.Time) error
}

// SaleRepositoryFacade combines all sale-related repository interfaces
type SaleRepositoryFacade interface {
	SaleReader
	SaleWriter
}
