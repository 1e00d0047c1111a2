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
	"github.com/SscSPs/shop_ledger/internal/utils"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type customerService struct {
	BaseService
	store portsrepo.Store
}

// NewCustomerService creates a new customer service.
func NewCustomerService(store portsrepo.Store, options ...ServiceOption) portssvc.CustomerSvcFacade {
	return &customerService{
		BaseService: newBaseService(options),
		store:       store,
	}
}

var _ portssvc.CustomerSvcFacade = (*customerService)(nil)

// normalizePhone returns the E.164 form of phone, or "" when phone is blank.
// ok is false when the number cannot be parsed for the configured region.
func (s *customerService) normalizePhone(phone string) (normalized string, ok bool) {
	if strings.TrimSpace(phone) == "" {
		return "", true
	}
	normalized, err := utils.NormalizePhoneNumber(phone, s.limits.PhoneRegion)
	if err != nil {
		return "", false
	}
	return normalized, true
}

func (s *customerService) CreateCustomer(ctx context.Context, req dto.CreateCustomerRequest, userID string) (*domain.Customer, error) {
	var problems []string
	if strings.TrimSpace(req.Name) == "" {
		problems = append(problems, "Customer name is required")
	}
	phone, ok := s.normalizePhone(req.Phone)
	if !ok {
		problems = append(problems, fmt.Sprintf("Invalid phone number %q", req.Phone))
	}
	problems = append(problems, s.creditLimitProblems(req.CreditLimit)...)
	if err := apperrors.NewValidation(problems...); err != nil {
		return nil, err
	}

	terms := strings.TrimSpace(req.PaymentTerms)
	if terms == "" {
		terms = s.limits.DefaultPaymentTerms
	}
	creditEnabled := true
	if req.IsCreditEnabled != nil {
		creditEnabled = *req.IsCreditEnabled
	}

	now := s.Now()
	customer := domain.Customer{
		CustomerID:      uuid.NewString(),
		Name:            strings.TrimSpace(req.Name),
		Phone:           phone,
		Address:         strings.TrimSpace(req.Address),
		CreditLimit:     req.CreditLimit,
		CreditBalance:   decimal.Zero,
		PaymentTerms:    terms,
		IsCreditEnabled: creditEnabled,
		IsActive:        true,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     userID,
			LastUpdatedAt: now,
			LastUpdatedBy: userID,
		},
	}
	if err := s.store.Customers().SaveCustomer(ctx, customer); err != nil {
		return nil, fmt.Errorf("failed to save customer: %w", err)
	}

	s.LogInfo(ctx, "Customer created", slog.String("customer_id", customer.CustomerID))
	return &customer, nil
}

func (s *customerService) GetCustomer(ctx context.Context, customerID string) (*domain.Customer, error) {
	return s.store.Customers().FindCustomerByID(ctx, customerID)
}

func (s *customerService) ListCustomers(ctx context.Context, params dto.ListCustomersParams) ([]domain.Customer, error) {
	customers, err := s.store.Customers().ListCustomers(ctx, domain.CustomerFilter{
		SearchTerm: strings.TrimSpace(params.Search),
		Limit:      params.Limit,
		Offset:     params.Offset,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to list customers: %w", err)
	}
	return customers, nil
}

// UpdateCustomer edits contact details. Existing sales keep the snapshot taken when they were made.
func (s *customerService) UpdateCustomer(ctx context.Context, customerID string, req dto.UpdateCustomerRequest, userID string) (*domain.Customer, error) {
	customer, err := s.store.Customers().FindCustomerByID(ctx, customerID)
	if err != nil {
		return nil, err
	}

	var problems []string
	if req.Name != nil {
		if strings.TrimSpace(*req.Name) == "" {
			problems = append(problems, "Customer name cannot be empty")
		}
		customer.Name = strings.TrimSpace(*req.Name)
	}
	if req.Phone != nil {
		phone, ok := s.normalizePhone(*req.Phone)
		if !ok {
			problems = append(problems, fmt.Sprintf("Invalid phone number %q", *req.Phone))
		}
		customer.Phone = phone
	}
	if err := apperrors.NewValidation(problems...); err != nil {
		return nil, err
	}
	if req.Address != nil {
		customer.Address = strings.TrimSpace(*req.Address)
	}
	customer.LastUpdatedAt = s.Now()
	customer.LastUpdatedBy = userID

	if err := s.store.Customers().UpdateCustomer(ctx, *customer); err != nil {
		return nil, fmt.Errorf("failed to update customer: %w", err)
	}
	s.invalidateReports(ctx)
	return customer, nil
}

// DeactivateCustomer refuses while the customer still owes money.
func (s *customerService) DeactivateCustomer(ctx context.Context, customerID string, userID string) error {
	customer, err := s.store.Customers().FindCustomerByID(ctx, customerID)
	if err != nil {
		return err
	}
	if customer.CreditBalance.IsPositive() {
		return apperrors.NewValidation(fmt.Sprintf("Customer has an outstanding balance of %s", customer.CreditBalance.StringFixed(2)))
	}
	if !customer.IsActive {
		return nil
	}
	customer.IsActive = false
	customer.LastUpdatedAt = s.Now()
	customer.LastUpdatedBy = userID
	if err := s.store.Customers().UpdateCustomer(ctx, *customer); err != nil {
		return fmt.Errorf("failed to deactivate customer: %w", err)
	}
	s.LogInfo(ctx, "Customer deactivated", slog.String("customer_id", customerID))
	return nil
}
