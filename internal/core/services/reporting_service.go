package services

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/SscSPs/shop_ledger/internal/core/domain"
	portsrepo "github.com/SscSPs/shop_ledger/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/shop_ledger/internal/core/ports/services"
	"github.com/SscSPs/shop_ledger/internal/dto"
	"github.com/SscSPs/shop_ledger/internal/utils"
	"github.com/shopspring/decimal"
)

// reportingService implements the ReportingSvc interface
type reportingService struct {
	BaseService
	store portsrepo.Store
}

// NewReportingService creates a new reporting service
func NewReportingService(store portsrepo.Store, options ...ServiceOption) portssvc.ReportingSvc {
	return &reportingService{
		BaseService: newBaseService(options),
		store:       store,
	}
}

// Ensure reportingService implements the ReportingSvc interface
var _ portssvc.ReportingSvc = (*reportingService)(nil)

func toReportRange(params dto.ReportRangeParams) (domain.ReportRange, error) {
	from, to, err := parseDateRange(params.From, params.To)
	if err != nil {
		return domain.ReportRange{}, err
	}
	return domain.ReportRange{From: from, To: to}, nil
}

// average divides total by count, rounded to cents. Zero when count is zero.
func average(total decimal.Decimal, count int) decimal.Decimal {
	if count == 0 {
		return decimal.Zero
	}
	return utils.RoundAmount(total.Div(decimal.NewFromInt(int64(count))))
}

func zeroTotals() domain.SalesTotals {
	return domain.SalesTotals{TotalRevenue: decimal.Zero, TotalPaid: decimal.Zero, TotalOutstanding: decimal.Zero}
}

// GetSalesReport totals sales per UTC day. Sales and payments invalidate the cached copy.
func (s *reportingService) GetSalesReport(ctx context.Context, params dto.ReportRangeParams) (*domain.SalesReport, error) {
	rng, err := toReportRange(params)
	if err != nil {
		return nil, err
	}

	report, err := readThrough(ctx, &s.BaseService, func(ctx context.Context) (domain.SalesReport, error) {
		return s.buildSalesReport(ctx, rng)
	}, "reports", "sales", params.From, params.To)
	if err != nil {
		return nil, err
	}
	return &report, nil
}

func (s *reportingService) buildSalesReport(ctx context.Context, rng domain.ReportRange) (domain.SalesReport, error) {
	days, err := s.store.Reports().SummarizeSales(ctx, rng, domain.PeriodDay)
	if err != nil {
		s.LogError(ctx, err, "Failed to summarize sales")
		return domain.SalesReport{}, fmt.Errorf("failed to retrieve sales summary: %w", err)
	}

	report := domain.SalesReport{
		SalesTotals: zeroTotals(),
		SalesByDate: make(map[string]domain.SalesBucket, len(days)),
		GeneratedAt: s.Now(),
	}
	for _, day := range days {
		report.SalesTotals = report.SalesTotals.Add(day)
		report.SalesByDate[day.Period] = day
	}
	report.AverageSaleAmount = average(report.TotalRevenue, report.TotalSales)

	s.LogInfo(ctx, "Sales report generated",
		slog.Int("sales", report.TotalSales),
		slog.Int("days", len(days)),
		slog.String("revenue", utils.FormatAmount(report.TotalRevenue)))
	return report, nil
}

// GetInventoryReport lists active products below the low-stock threshold, by name.
func (s *reportingService) GetInventoryReport(ctx context.Context) (*domain.InventoryReport, error) {
	summary, err := s.store.Reports().SummarizeInventory(ctx)
	if err != nil {
		s.LogError(ctx, err, "Failed to summarize inventory")
		return nil, fmt.Errorf("failed to retrieve inventory summary: %w", err)
	}
	low, err := s.store.Products().ListProducts(ctx, domain.ProductFilter{LowStockOnly: true})
	if err != nil {
		s.LogError(ctx, err, "Failed to list low-stock products")
		return nil, fmt.Errorf("failed to list low-stock products: %w", err)
	}

	report := &domain.InventoryReport{
		TotalProducts:    summary.TotalProducts,
		LowStockItems:    len(low),
		LowStockProducts: make([]domain.LowStockProduct, len(low)),
		GeneratedAt:      s.Now(),
	}
	for i, p := range low {
		report.LowStockProducts[i] = domain.LowStockProduct{ProductID: p.ProductID, Name: p.Name, Quantity: p.Quantity, Type: p.Type}
	}

	s.LogInfo(ctx, "Inventory report generated",
		slog.Int("products", report.TotalProducts),
		slog.Int("low_stock", report.LowStockItems))
	return report, nil
}

// GetAnalytics combines the catalog and customer counts with sales in the range.
// Catalog figures ignore the range.
func (s *reportingService) GetAnalytics(ctx context.Context, params dto.ReportRangeParams) (*domain.Analytics, error) {
	rng, err := toReportRange(params)
	if err != nil {
		return nil, err
	}

	reports := s.store.Reports()
	inventory, err := reports.SummarizeInventory(ctx)
	if err != nil {
		s.LogError(ctx, err, "Failed to summarize inventory")
		return nil, fmt.Errorf("failed to retrieve inventory summary: %w", err)
	}
	top, err := reports.ListTopStockedProducts(ctx, domain.TopProductsLimit)
	if err != nil {
		s.LogError(ctx, err, "Failed to list top stocked products")
		return nil, fmt.Errorf("failed to list top stocked products: %w", err)
	}
	customers, err := reports.CountActiveCustomers(ctx)
	if err != nil {
		s.LogError(ctx, err, "Failed to count customers")
		return nil, fmt.Errorf("failed to count customers: %w", err)
	}
	months, err := reports.SummarizeSales(ctx, rng, domain.PeriodMonth)
	if err != nil {
		s.LogError(ctx, err, "Failed to summarize sales")
		return nil, fmt.Errorf("failed to retrieve sales summary: %w", err)
	}

	sales := domain.SalesAnalytics{SalesTotals: zeroTotals(), MonthlyTrends: make([]domain.MonthlyTrend, len(months))}
	for i, m := range months {
		sales.SalesTotals = sales.SalesTotals.Add(m)
		sales.MonthlyTrends[i] = domain.MonthlyTrend{Month: m.Period, Sales: m.TotalAmount, Revenue: m.TotalPaid, Orders: m.Count}
	}

	analytics := &domain.Analytics{
		Overview: domain.AnalyticsOverview{
			TotalProducts:     inventory.TotalProducts,
			TotalCustomers:    customers,
			TotalSales:        sales.TotalSales,
			TotalRevenue:      sales.TotalRevenue,
			AverageOrderValue: average(sales.TotalRevenue, sales.TotalSales),
		},
		Inventory:   domain.InventoryAnalytics{InventorySummary: inventory, TopProducts: top},
		Sales:       sales,
		GeneratedAt: s.Now(),
	}

	s.LogInfo(ctx, "Analytics generated",
		slog.Int("sales", sales.TotalSales),
		slog.Int("months", len(months)))
	return analytics, nil
}
