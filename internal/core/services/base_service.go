package services

import (
	"context"
	"log/slog"
	"time"

	"github.com/SscSPs/shop_ledger/internal/apperrors"
	portsrepo "github.com/SscSPs/shop_ledger/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/shop_ledger/internal/core/ports/services"
	"github.com/SscSPs/shop_ledger/internal/middleware"
	"github.com/SscSPs/shop_ledger/internal/utils"
	"github.com/shopspring/decimal"
)

// Limits holds the configurable business ceilings.
type Limits struct {
	MaxPaymentAmount    decimal.Decimal
	MaxCreditLimit      decimal.Decimal
	DefaultPaymentTerms string
	PhoneRegion         string
}

// DefaultLimits returns the ceilings used when none are configured.
func DefaultLimits() Limits {
	return Limits{
		MaxPaymentAmount:    decimal.NewFromInt(1_000_000),
		MaxCreditLimit:      decimal.NewFromInt(10_000_000),
		DefaultPaymentTerms: "Net 30",
		PhoneRegion:         "US",
	}
}

// BaseService provides common functionality for all services
type BaseService struct {
	clock  func() time.Time
	events portssvc.EventPublisher
	cache  portssvc.ReportCache
	limits Limits
}

// ServiceOption is a functional option shared by every service constructor
type ServiceOption func(*BaseService)

// WithClock replaces the wall clock, mostly for tests.
func WithClock(clock func() time.Time) ServiceOption {
	return func(s *BaseService) {
		s.clock = clock
	}
}

// WithEventPublisher adds an event sink for sale, payment and credit events.
func WithEventPublisher(p portssvc.EventPublisher) ServiceOption {
	return func(s *BaseService) {
		s.events = p
	}
}

// WithReportCache adds the cache that outstanding views read through and writers invalidate.
func WithReportCache(c portssvc.ReportCache) ServiceOption {
	return func(s *BaseService) {
		s.cache = c
	}
}

// WithLimits overrides the default business ceilings.
func WithLimits(l Limits) ServiceOption {
	return func(s *BaseService) {
		s.limits = l
	}
}

func newBaseService(options []ServiceOption) BaseService {
	b := BaseService{limits: DefaultLimits()}
	for _, option := range options {
		option(&b)
	}
	return b
}

// Now returns the current time in UTC.
func (s *BaseService) Now() time.Time {
	if s.clock != nil {
		return s.clock().UTC()
	}
	return time.Now().UTC()
}

// GetLogger gets the logger from context or returns a default one
func (s *BaseService) GetLogger(ctx context.Context) *slog.Logger {
	return middleware.GetLoggerFromCtx(ctx)
}

// LogError logs an error with consistent formatting
func (s *BaseService) LogError(ctx context.Context, err error, msg string, keyvals ...any) {
	logger := s.GetLogger(ctx)
	args := make([]any, 0, len(keyvals)+1)
	args = append(args, slog.String("error", err.Error()))
	args = append(args, keyvals...)
	logger.Error(msg, args...)
}

// LogInfo logs an info message with consistent formatting
func (s *BaseService) LogInfo(ctx context.Context, msg string, keyvals ...any) {
	s.GetLogger(ctx).Info(msg, keyvals...)
}

// LogDebug logs a debug message with consistent formatting
func (s *BaseService) LogDebug(ctx context.Context, msg string, keyvals ...any) {
	s.GetLogger(ctx).Debug(msg, keyvals...)
}

// publish emits an event if a publisher is configured.
func (s *BaseService) publish(ctx context.Context, eventType, key string, payload any) {
	if s.events == nil {
		return
	}
	s.events.Publish(ctx, eventType, key, payload)
}

// invalidateReports bumps the report cache version. Failures only cost a stale
// read until the TTL expires, so they are logged and dropped.
func (s *BaseService) invalidateReports(ctx context.Context) {
	if s.cache == nil {
		return
	}
	if err := s.cache.Bump(ctx); err != nil {
		s.LogError(ctx, err, "Failed to invalidate report cache")
	}
}

// creditLimitProblems checks a credit limit against the configured ceiling.
// A nil limit means the customer has no limit.
func (s *BaseService) creditLimitProblems(limit *decimal.Decimal) []string {
	switch {
	case limit == nil:
		return nil
	case limit.IsNegative():
		return []string{"Credit limit cannot be negative"}
	case !utils.HasMoneyPrecision(*limit):
		return []string{"Credit limit cannot have more than 2 decimal places"}
	case limit.GreaterThan(s.limits.MaxCreditLimit):
		return []string{"Credit limit exceeds maximum allowed amount"}
	}
	return nil
}

// runInTx runs fn in one store transaction. Errors that already carry a domain
// kind pass through; anything else is reported as TransactionFailed.
func (s *BaseService) runInTx(ctx context.Context, store portsrepo.TransactionManager, operation string, fn portsrepo.TxFunc) error {
	err := store.WithTx(ctx, fn)
	if err == nil {
		return nil
	}
	if apperrors.Kind(err) != "Internal" {
		return err
	}
	s.LogError(ctx, err, "Transaction rolled back", slog.String("operation", operation))
	return apperrors.Wrap(apperrors.ErrTransactionFailed, err, "Failed to %s", operation)
}

const dateLayout = "2006-01-02"

// parseDateRange reads inclusive YYYY-MM-DD bounds. The upper bound is moved to
// the last instant of its day. Empty bounds come back nil.
func parseDateRange(fromStr, toStr string) (from, to *time.Time, err error) {
	if fromStr != "" {
		t, err := time.Parse(dateLayout, fromStr)
		if err != nil {
			return nil, nil, apperrors.NewValidation("Invalid from date. Use YYYY-MM-DD")
		}
		from = &t
	}
	if toStr != "" {
		t, err := time.Parse(dateLayout, toStr)
		if err != nil {
			return nil, nil, apperrors.NewValidation("Invalid to date. Use YYYY-MM-DD")
		}
		endOfDay := t.Add(24*time.Hour - time.Nanosecond)
		to = &endOfDay
	}
	return from, to, nil
}
