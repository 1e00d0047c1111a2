package services

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/SscSPs/shop_ledger/internal/apperrors"
	"github.com/SscSPs/shop_ledger/internal/core/domain"
	portsrepo "github.com/SscSPs/shop_ledger/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/shop_ledger/internal/core/ports/services"
	"github.com/SscSPs/shop_ledger/internal/dto"
	"github.com/SscSPs/shop_ledger/internal/utils"
	"github.com/SscSPs/shop_ledger/internal/utils/pagination"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

const defaultHistoryLimit = 100

// paymentService applies customer payments to outstanding sales.
type paymentService struct {
	BaseService
	store portsrepo.Store
}

// NewPaymentService creates a new payment service.
func NewPaymentService(store portsrepo.Store, options ...ServiceOption) portssvc.PaymentSvcFacade {
	return &paymentService{
		BaseService: newBaseService(options),
		store:       store,
	}
}

var _ portssvc.PaymentSvcFacade = (*paymentService)(nil)

func (s *paymentService) validatePayment(req dto.ProcessPaymentRequest) (domain.PaymentMethod, error) {
	var problems []string
	if strings.TrimSpace(req.CustomerID) == "" {
		problems = append(problems, "Valid customer ID is required")
	}
	if req.Amount.Sign() <= 0 {
		problems = append(problems, "Payment amount must be greater than 0")
	}
	if !utils.HasMoneyPrecision(req.Amount) {
		problems = append(problems, "Payment amount cannot have more than 2 decimal places")
	}
	if req.Amount.GreaterThan(s.limits.MaxPaymentAmount) {
		problems = append(problems, "Payment amount exceeds maximum allowed limit")
	}
	method, ok := domain.ParsePaymentMethod(req.Method)
	if !ok {
		problems = append(problems, "Invalid payment method")
	}
	return method, apperrors.NewValidation(problems...)
}

// ProcessPayment writes an anchor record for the full amount, then walks the
// customer's outstanding sales oldest first, paying each down until the amount
// runs out. Each touched sale gets its own payment record. The customer's credit
// balance drops by exactly what was applied. Anything left over is returned as
// RemainingCredit and is not stored.
func (s *paymentService) ProcessPayment(ctx context.Context, req dto.ProcessPaymentRequest, userID string) (*domain.AllocationResult, error) {
	logger := s.GetLogger(ctx).With(slog.String("customer_id", req.CustomerID))

	method, err := s.validatePayment(req)
	if err != nil {
		logger.Warn("Payment request failed validation", slog.String("error", err.Error()))
		return nil, err
	}

	var createdBy *string
	if userID != "" {
		createdBy = &userID
	}

	var result domain.AllocationResult
	err = s.runInTx(ctx, s.store, "process payment", func(ctx context.Context, tx portsrepo.Store) error {
		if _, err := tx.Customers().FindCustomerByID(ctx, req.CustomerID); err != nil {
			return err
		}
		sales, err := tx.Sales().ListOutstandingSalesByCustomer(ctx, req.CustomerID)
		if err != nil {
			return fmt.Errorf("failed to load outstanding sales: %w", err)
		}
		if len(sales) == 0 {
			return apperrors.New(apperrors.ErrNoOutstandingBalance, "No outstanding balance found for this customer")
		}

		now := s.Now()
		anchor := domain.PaymentRecord{
			PaymentID:       uuid.NewString(),
			CustomerID:      req.CustomerID,
			Amount:          req.Amount,
			Method:          method,
			PaymentType:     domain.PaymentTypePayment,
			ReferenceNumber: req.ReferenceNumber,
			Notes:           req.Notes,
			PaymentDate:     now,
			CreatedBy:       createdBy,
		}
		if err := tx.Payments().SavePayment(ctx, anchor); err != nil {
			return fmt.Errorf("failed to record payment: %w", err)
		}

		remaining := req.Amount
		allocations := make([]domain.SaleAllocation, 0, len(sales))
		for _, sale := range sales {
			if remaining.Sign() <= 0 {
				break
			}
			allocation, err := s.applyToSale(ctx, tx, sale, remaining, anchor, now)
			if err != nil {
				return err
			}
			remaining = remaining.Sub(allocation.AmountPaid)
			allocations = append(allocations, allocation)
		}

		applied := req.Amount.Sub(remaining)
		if err := tx.Customers().AdjustCreditBalance(ctx, req.CustomerID, applied.Neg(), now); err != nil {
			return fmt.Errorf("failed to lower credit balance: %w", err)
		}

		result = domain.AllocationResult{
			PaymentID:         anchor.PaymentID,
			AmountApplied:     applied,
			RemainingCredit:   remaining,
			UpdatedSales:      allocations,
			TotalSalesUpdated: len(allocations),
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	if result.RemainingCredit.Sign() > 0 {
		// TODO: persist the excess as customer credit once a prepayment policy is agreed.
		logger.Warn("Payment exceeds outstanding balance, excess not applied",
			slog.String("payment_id", result.PaymentID),
			slog.String("remaining_credit", utils.FormatAmount(result.RemainingCredit)))
	}
	logger.Info("Payment processed",
		slog.String("payment_id", result.PaymentID),
		slog.String("amount_applied", utils.FormatAmount(result.AmountApplied)),
		slog.Int("sales_updated", result.TotalSalesUpdated))

	s.invalidateReports(ctx)
	s.publish(ctx, domain.EventPaymentProcessed, req.CustomerID, result)
	return &result, nil
}

func (s *paymentService) applyToSale(ctx context.Context, tx portsrepo.Store, sale domain.Sale, remaining decimal.Decimal, anchor domain.PaymentRecord, now time.Time) (domain.SaleAllocation, error) {
	applied := decimal.Min(remaining, sale.OutstandingAmount)
	newOutstanding := sale.OutstandingAmount.Sub(applied)
	status := domain.StatusAfterAllocation(newOutstanding, sale.TotalAmount)

	if err := tx.Sales().UpdateSalePayment(ctx, sale.SaleID, sale.TotalPaid.Add(applied), newOutstanding, status, now); err != nil {
		return domain.SaleAllocation{}, fmt.Errorf("failed to update sale %s: %w", sale.SaleID, err)
	}

	saleID := sale.SaleID
	record := domain.PaymentRecord{
		PaymentID:       uuid.NewString(),
		CustomerID:      anchor.CustomerID,
		SaleID:          &saleID,
		Amount:          applied,
		Method:          anchor.Method,
		PaymentType:     domain.PaymentTypePayment,
		ReferenceNumber: anchor.ReferenceNumber,
		Notes:           fmt.Sprintf("Payment applied to sale #%s", sale.SaleID),
		PaymentDate:     now,
		CreatedBy:       anchor.CreatedBy,
	}
	if err := tx.Payments().SavePayment(ctx, record); err != nil {
		return domain.SaleAllocation{}, fmt.Errorf("failed to record payment for sale %s: %w", sale.SaleID, err)
	}

	return domain.SaleAllocation{
		SaleID:         sale.SaleID,
		AmountPaid:     applied,
		NewOutstanding: newOutstanding,
		PaymentStatus:  status,
	}, nil
}

// GetHistory lists payment records newest first, optionally for one customer.
func (s *paymentService) GetHistory(ctx context.Context, params dto.PaymentHistoryParams) (*dto.PaymentHistoryResponse, error) {
	limit := params.Limit
	if limit <= 0 {
		limit = defaultHistoryLimit
	}
	filter := domain.PaymentFilter{
		CustomerID: params.CustomerID,
		Limit:      limit + 1,
	}
	if params.NextToken != nil && *params.NextToken != "" {
		afterDate, afterID, err := pagination.DecodePaymentToken(*params.NextToken)
		if err != nil {
			return nil, apperrors.NewValidation("Invalid pagination token")
		}
		filter.AfterDate = &afterDate
		filter.AfterID = afterID
	}

	records, err := s.store.Payments().ListPayments(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("failed to list payment history: %w", err)
	}

	resp := &dto.PaymentHistoryResponse{Payments: records}
	if len(records) > limit {
		resp.Payments = records[:limit]
		last := resp.Payments[limit-1]
		token := pagination.EncodePaymentToken(last.PaymentDate, last.PaymentID)
		resp.NextToken = &token
	}
	return resp, nil
}
