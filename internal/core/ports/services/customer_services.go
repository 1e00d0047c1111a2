package services

import (
	"context"

	"github.com/SscSPs/shop_ledger/internal/core/domain"
	"github.com/SscSPs/shop_ledger/internal/dto"
)

// CustomerReaderSvc defines read operations on customers
type CustomerReaderSvc interface {
	GetCustomer(ctx context.Context, customerID string) (*domain.Customer, error)
	ListCustomers(ctx context.Context, params dto.ListCustomersParams) ([]domain.Customer, error)
}

// CustomerWriterSvc defines write operations on customers
type CustomerWriterSvc interface {
	CreateCustomer(ctx context.Context, req dto.CreateCustomerRequest, userID string) (*domain.Customer, error)
	UpdateCustomer(ctx context.Context, customerID string, req dto.UpdateCustomerRequest, userID string) (*domain.Customer, error)
	DeactivateCustomer(ctx context.Context, customerID string, userID string) error
}

// CustomerSvcFacade combines all customer-related service interfaces
type CustomerSvcFacade interface {
	CustomerReaderSvc
	CustomerWriterSvc
}

// CreditSvc owns a customer's credit limit, payment terms and credit flag.
// It never touches the credit balance.
type CreditSvc interface {
	UpdateCreditSettings(ctx context.Context, req dto.UpdateCreditRequest, userID string) (*domain.Customer, error)
}
