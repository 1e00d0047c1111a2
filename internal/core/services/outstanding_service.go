package services

import (
	"context"
	"fmt"
	"slices"
	"strconv"
	"strings"

	"github.com/SscSPs/shop_ledger/internal/apperrors"
	"github.com/SscSPs/shop_ledger/internal/core/domain"
	portsrepo "github.com/SscSPs/shop_ledger/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/shop_ledger/internal/core/ports/services"
	"github.com/SscSPs/shop_ledger/internal/dto"
	"github.com/SscSPs/shop_ledger/internal/utils"
	"github.com/shopspring/decimal"
	"golang.org/x/sync/errgroup"
)

const defaultOutstandingLimit = 50

// outstandingService builds the read-only views over outstanding debt.
type outstandingService struct {
	BaseService
	store portsrepo.Store
}

// NewOutstandingService creates a new outstanding service.
func NewOutstandingService(store portsrepo.Store, options ...ServiceOption) portssvc.OutstandingSvc {
	return &outstandingService{
		BaseService: newBaseService(options),
		store:       store,
	}
}

var _ portssvc.OutstandingSvc = (*outstandingService)(nil)

func toOutstandingFilter(params dto.OutstandingParams) (domain.OutstandingFilter, error) {
	if !domain.ValidAgingFilter(params.Aging) {
		return domain.OutstandingFilter{}, apperrors.NewValidation(fmt.Sprintf("Invalid aging filter %q", params.Aging))
	}
	page := params.Page
	if page < 1 {
		page = 1
	}
	return domain.OutstandingFilter{
		SearchTerm:  strings.TrimSpace(params.Search),
		AgingFilter: params.Aging,
		CustomerID:  params.CustomerID,
		Page:        page,
		Limit:       params.Limit,
	}, nil
}

// GetOutstanding lists customers who still owe money, largest balance first.
// A customer's age is that of their freshest outstanding sale.
func (s *outstandingService) GetOutstanding(ctx context.Context, params dto.OutstandingParams) (*domain.OutstandingList, error) {
	filter, err := toOutstandingFilter(params)
	if err != nil {
		return nil, err
	}

	list, err := readThrough(ctx, &s.BaseService, func(ctx context.Context) (domain.OutstandingList, error) {
		return s.buildOutstandingList(ctx, filter)
	}, "outstanding", "list", s.Now().Format(dateLayout), filter.SearchTerm, filter.AgingFilter, filter.CustomerID,
		strconv.Itoa(filter.Page), strconv.Itoa(filter.Limit))
	if err != nil {
		return nil, err
	}
	return &list, nil
}

func (s *outstandingService) buildOutstandingList(ctx context.Context, filter domain.OutstandingFilter) (domain.OutstandingList, error) {
	rows, err := s.filteredRows(ctx, filter)
	if err != nil {
		return domain.OutstandingList{}, err
	}

	list := domain.OutstandingList{
		TotalAmount:    decimal.Zero,
		TotalCustomers: len(rows),
		Summary: domain.OutstandingSummary{
			Current: domain.BucketTotal{Amount: decimal.Zero},
			Overdue: domain.BucketTotal{Amount: decimal.Zero},
		},
		Page:  filter.Page,
		Limit: filter.Limit,
	}
	for _, row := range rows {
		list.TotalAmount = list.TotalAmount.Add(row.TotalOutstanding)
		if row.DaysOutstanding <= 30 {
			list.Summary.Current = list.Summary.Current.Add(row.TotalOutstanding)
		} else {
			list.Summary.Overdue = list.Summary.Overdue.Add(row.TotalOutstanding)
		}
	}

	limit := filter.Limit
	if limit <= 0 {
		limit = defaultOutstandingLimit
		list.Limit = limit
	}
	start := (filter.Page - 1) * limit
	switch {
	case start >= len(rows):
		list.Rows = []domain.OutstandingRow{}
	case start+limit > len(rows):
		list.Rows = rows[start:]
	default:
		list.Rows = rows[start : start+limit]
	}
	return list, nil
}

// filteredRows turns the store's per-customer balances into rows, applies the
// filter and sorts by outstanding amount descending.
func (s *outstandingService) filteredRows(ctx context.Context, filter domain.OutstandingFilter) ([]domain.OutstandingRow, error) {
	balances, err := s.store.Sales().SummarizeOutstanding(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to summarize outstanding balances: %w", err)
	}

	now := s.Now()
	term := strings.ToLower(filter.SearchTerm)
	rows := make([]domain.OutstandingRow, 0, len(balances))
	for _, b := range balances {
		if filter.CustomerID != "" && b.CustomerID != filter.CustomerID {
			continue
		}
		if term != "" && !strings.Contains(strings.ToLower(b.CustomerName), term) && !strings.Contains(strings.ToLower(b.Phone), term) {
			continue
		}
		days := domain.DaysBetween(b.LatestSaleAt, now)
		if !domain.MatchesAgingFilter(filter.AgingFilter, days) {
			continue
		}
		rows = append(rows, domain.OutstandingRow{
			CustomerID:            b.CustomerID,
			CustomerName:          b.CustomerName,
			Phone:                 b.Phone,
			CreditLimit:           b.CreditLimit,
			TotalOutstanding:      b.TotalOutstanding,
			OutstandingSalesCount: b.OutstandingSalesCount,
			DaysOutstanding:       days,
			AgingBucket:           domain.BucketForDays(days),
			SaleIDs:               b.SaleIDs,
		})
	}

	slices.SortFunc(rows, func(a, b domain.OutstandingRow) int {
		if c := b.TotalOutstanding.Cmp(a.TotalOutstanding); c != 0 {
			return c
		}
		if c := strings.Compare(a.CustomerName, b.CustomerName); c != 0 {
			return c
		}
		return strings.Compare(a.CustomerID, b.CustomerID)
	})
	return rows, nil
}

// GetCustomerDetail loads one customer's outstanding sales and payment history.
// Aging here is computed per sale, unlike the list view.
func (s *outstandingService) GetCustomerDetail(ctx context.Context, customerID string) (*domain.CustomerDetail, error) {
	var (
		customer *domain.Customer
		sales    []domain.Sale
		history  []domain.PaymentRecord
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		customer, err = s.store.Customers().FindCustomerByID(gctx, customerID)
		return err
	})
	g.Go(func() error {
		var err error
		sales, err = s.store.Sales().ListOutstandingSalesByCustomer(gctx, customerID)
		if err != nil {
			return fmt.Errorf("failed to load outstanding sales: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		var err error
		history, err = s.store.Payments().ListPayments(gctx, domain.PaymentFilter{CustomerID: customerID})
		if err != nil {
			return fmt.Errorf("failed to load payment history: %w", err)
		}
		return nil
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	now := s.Now()
	detail := &domain.CustomerDetail{
		Customer:         *customer,
		OutstandingSales: sales,
		PaymentHistory:   history,
		TotalOutstanding: decimal.Zero,
		AgingAnalysis:    emptyAgingAnalysis(),
		PaymentSummary:   summarizePayments(history),
	}
	for _, sale := range sales {
		detail.TotalOutstanding = detail.TotalOutstanding.Add(sale.OutstandingAmount)
		bucket := domain.BucketForDays(sale.AgeInDays(now))
		detail.AgingAnalysis[bucket] = detail.AgingAnalysis[bucket].Add(sale.OutstandingAmount)
	}
	detail.CreditUtilization = utils.RoundAmount(customer.CreditUtilization(detail.TotalOutstanding))
	return detail, nil
}

func emptyAgingAnalysis() map[domain.AgingBucket]domain.BucketTotal {
	out := make(map[domain.AgingBucket]domain.BucketTotal, len(domain.AgingBuckets))
	for _, b := range domain.AgingBuckets {
		out[b] = domain.BucketTotal{Amount: decimal.Zero}
	}
	return out
}

// summarizePayments counts anchor records only, so a payment split over
// several sales is one payment.
func summarizePayments(history []domain.PaymentRecord) domain.PaymentSummary {
	summary := domain.PaymentSummary{TotalPaid: decimal.Zero, AveragePayment: decimal.Zero}
	for _, p := range history {
		if !p.IsAnchor() {
			continue
		}
		if summary.LastPayment == nil {
			summary.LastPayment = &domain.LastPayment{Amount: p.Amount, Date: p.PaymentDate, Method: p.Method}
		}
		summary.TotalPaid = summary.TotalPaid.Add(p.Amount)
		summary.PaymentCount++
	}
	if summary.PaymentCount > 0 {
		summary.AveragePayment = utils.RoundAmount(summary.TotalPaid.Div(decimal.NewFromInt(int64(summary.PaymentCount))))
	}
	return summary
}

// GetReport summarises outstanding debt. Paging parameters are ignored.
func (s *outstandingService) GetReport(ctx context.Context, params dto.OutstandingParams) (*domain.OutstandingReport, error) {
	filter, err := toOutstandingFilter(params)
	if err != nil {
		return nil, err
	}

	report, err := readThrough(ctx, &s.BaseService, func(ctx context.Context) (domain.OutstandingReport, error) {
		return s.buildReport(ctx, filter)
	}, "outstanding", "report", s.Now().Format(dateLayout), filter.SearchTerm, filter.AgingFilter, filter.CustomerID)
	if err != nil {
		return nil, err
	}
	return &report, nil
}

func (s *outstandingService) buildReport(ctx context.Context, filter domain.OutstandingFilter) (domain.OutstandingReport, error) {
	rows, err := s.filteredRows(ctx, filter)
	if err != nil {
		return domain.OutstandingReport{}, err
	}

	report := domain.OutstandingReport{
		Summary: domain.ReportSummary{
			TotalCustomers:     len(rows),
			TotalOutstanding:   decimal.Zero,
			AverageOutstanding: decimal.Zero,
		},
		AgingBreakdown: make(map[domain.AgingBucket]int, len(domain.AgingBuckets)),
		RiskAnalysis: domain.RiskAnalysis{
			HighRisk:   domain.BucketTotal{Amount: decimal.Zero},
			MediumRisk: domain.BucketTotal{Amount: decimal.Zero},
			LowRisk:    domain.BucketTotal{Amount: decimal.Zero},
		},
		GeneratedAt: s.Now(),
	}
	for _, b := range domain.AgingBuckets {
		report.AgingBreakdown[b] = 0
	}

	for _, row := range rows {
		report.Summary.TotalOutstanding = report.Summary.TotalOutstanding.Add(row.TotalOutstanding)
		report.AgingBreakdown[row.AgingBucket]++
		switch domain.ClassifyRisk(row.DaysOutstanding, row.TotalOutstanding, row.CreditLimit) {
		case domain.RiskHigh:
			report.RiskAnalysis.HighRisk = report.RiskAnalysis.HighRisk.Add(row.TotalOutstanding)
		case domain.RiskMedium:
			report.RiskAnalysis.MediumRisk = report.RiskAnalysis.MediumRisk.Add(row.TotalOutstanding)
		default:
			report.RiskAnalysis.LowRisk = report.RiskAnalysis.LowRisk.Add(row.TotalOutstanding)
		}
	}
	if len(rows) > 0 {
		report.Summary.AverageOutstanding = utils.RoundAmount(report.Summary.TotalOutstanding.Div(decimal.NewFromInt(int64(len(rows)))))
	}

	top := min(len(rows), domain.TopDebtorsLimit)
	report.TopDebtors = slices.Clone(rows[:top])
	return report, nil
}

// readThrough serves a view from the report cache when one is configured.
// Cache trouble falls back to loading directly; loader errors are returned as is.
func readThrough[T any](ctx context.Context, s *BaseService, load func(context.Context) (T, error), keyParts ...string) (T, error) {
	if s.cache == nil {
		return load(ctx)
	}

	var out T
	key, err := s.cache.BuildKey(ctx, keyParts...)
	if err != nil {
		s.LogError(ctx, err, "Failed to build report cache key")
		return load(ctx)
	}

	var loadErr error
	err = s.cache.FetchJSON(ctx, key, &out, func(ctx context.Context) (any, error) {
		v, err := load(ctx)
		loadErr = err
		return v, err
	})
	if loadErr != nil {
		return out, loadErr
	}
	if err != nil {
		s.LogError(ctx, err, "Report cache read failed, loading directly")
		return load(ctx)
	}
	return out, nil
}
