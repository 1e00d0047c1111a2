package services

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/SscSPs/shop_ledger/internal/apperrors"
	"github.com/SscSPs/shop_ledger/internal/core/domain"
	portsrepo "github.com/SscSPs/shop_ledger/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/shop_ledger/internal/core/ports/services"
	"github.com/SscSPs/shop_ledger/internal/dto"
)

// creditService manages credit settings. The balance belongs to sales and payments.
type creditService struct {
	BaseService
	store portsrepo.Store
}

// NewCreditService creates a new credit service.
func NewCreditService(store portsrepo.Store, options ...ServiceOption) portssvc.CreditSvc {
	return &creditService{
		BaseService: newBaseService(options),
		store:       store,
	}
}

var _ portssvc.CreditSvc = (*creditService)(nil)

func (s *creditService) validateCreditSettings(req dto.UpdateCreditRequest) error {
	var problems []string
	if strings.TrimSpace(req.CustomerID) == "" {
		problems = append(problems, "Valid customer ID is required")
	}
	problems = append(problems, s.creditLimitProblems(req.CreditLimit)...)
	if strings.TrimSpace(req.PaymentTerms) == "" {
		problems = append(problems, "Payment terms are required")
	}
	return apperrors.NewValidation(problems...)
}

// UpdateCreditSettings replaces the customer's limit, terms and credit flag.
// A limit below the current balance is accepted.
func (s *creditService) UpdateCreditSettings(ctx context.Context, req dto.UpdateCreditRequest, userID string) (*domain.Customer, error) {
	logger := s.GetLogger(ctx).With(slog.String("customer_id", req.CustomerID))

	if err := s.validateCreditSettings(req); err != nil {
		logger.Warn("Credit settings failed validation", slog.String("error", err.Error()))
		return nil, err
	}

	var updated domain.Customer
	err := s.runInTx(ctx, s.store, "update credit settings", func(ctx context.Context, tx portsrepo.Store) error {
		customer, err := tx.Customers().FindCustomerByID(ctx, req.CustomerID)
		if err != nil {
			return err
		}

		now := s.Now()
		customer.CreditLimit = req.CreditLimit
		customer.PaymentTerms = strings.TrimSpace(req.PaymentTerms)
		customer.IsCreditEnabled = req.IsCreditEnabled
		customer.LastUpdatedAt = now
		customer.LastUpdatedBy = userID
		if err := tx.Customers().UpdateCustomer(ctx, *customer); err != nil {
			return fmt.Errorf("failed to update customer credit settings: %w", err)
		}
		updated = *customer
		return nil
	})
	if err != nil {
		return nil, err
	}

	if updated.ExceedsCreditLimit(updated.CreditBalance) {
		logger.Warn("Credit limit set below current balance",
			slog.String("credit_limit", updated.CreditLimit.String()),
			slog.String("credit_balance", updated.CreditBalance.String()))
	}
	logger.Info("Credit settings updated")
	s.invalidateReports(ctx)
	s.publish(ctx, domain.EventCreditUpdated, updated.CustomerID, updated)
	return &updated, nil
}
