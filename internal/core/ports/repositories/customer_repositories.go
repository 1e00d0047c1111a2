package repositories

import (
	"context"
	"time"

	"github.com/SscSPs/shop_ledger/internal/core/domain"
	"github.com/shopspring/decimal"
)

// CustomerReader defines read operations for customer data
type CustomerReader interface {
	// FindCustomerByID retrieves a customer, returning apperrors.ErrNotFound when absent.
	FindCustomerByID(ctx context.Context, customerID string) (*domain.Customer, error)

	// ListCustomers retrieves customers ordered by name.
	ListCustomers(ctx context.Context, filter domain.CustomerFilter) ([]domain.Customer, error)
}

// CustomerWriter defines write operations for customer data
type CustomerWriter interface {
	// SaveCustomer persists a new customer.
	SaveCustomer(ctx context.Context, customer domain.Customer) error

	// UpdateCustomer stores contact details, credit settings and the active flag.
	// The credit balance is never written here.
	UpdateCustomer(ctx context.Context, customer domain.Customer) error

	// AdjustCreditBalance adds delta to the customer's credit balance.
	AdjustCreditBalance(ctx context.Context, customerID string, delta decimal.Decimal, now time.Time) error
}

// CustomerRepositoryFacade combines all customer-related repository interfaces
type CustomerRepositoryFacade interface {
	CustomerReader
	CustomerWriter
}
