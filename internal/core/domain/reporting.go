package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// ReportPeriod is the calendar unit sales are grouped by. Periods are taken in UTC.
type ReportPeriod string

const (
	PeriodDay   ReportPeriod = "day"
	PeriodMonth ReportPeriod = "month"
)

// Layout is the time layout that names one period, e.g. 2024-03-01 or 2024-03.
func (p ReportPeriod) Layout() string {
	if p == PeriodMonth {
		return "2006-01"
	}
	return "2006-01-02"
}

// ReportRange bounds a report by sale creation time. Nil ends are open.
type ReportRange struct {
	From *time.Time
	To   *time.Time
}

// Contains reports whether t falls inside the range, both ends inclusive.
func (r ReportRange) Contains(t time.Time) bool {
	if r.From != nil && t.Before(*r.From) {
		return false
	}
	if r.To != nil && t.After(*r.To) {
		return false
	}
	return true
}

// SalesBucket totals the sales of one period.
type SalesBucket struct {
	Period      string          `json:"date"`
	Count       int             `json:"count"`
	TotalAmount decimal.Decimal `json:"totalAmount"`
	TotalPaid   decimal.Decimal `json:"totalPaid"`
	Outstanding decimal.Decimal `json:"outstanding"`
}

// SalesTotals is the headline shared by the sales report and analytics.
type SalesTotals struct {
	TotalSales       int             `json:"totalSales"`
	TotalRevenue     decimal.Decimal `json:"totalRevenue"`
	TotalPaid        decimal.Decimal `json:"totalPaid"`
	TotalOutstanding decimal.Decimal `json:"totalOutstanding"`
}

// Add folds one bucket into the totals.
func (t SalesTotals) Add(b SalesBucket) SalesTotals {
	return SalesTotals{
		TotalSales:       t.TotalSales + b.Count,
		TotalRevenue:     t.TotalRevenue.Add(b.TotalAmount),
		TotalPaid:        t.TotalPaid.Add(b.TotalPaid),
		TotalOutstanding: t.TotalOutstanding.Add(b.Outstanding),
	}
}

// SalesReport totals sales in a range, with one bucket per day keyed by YYYY-MM-DD.
type SalesReport struct {
	SalesTotals
	AverageSaleAmount decimal.Decimal        `json:"averageSaleAmount"`
	SalesByDate       map[string]SalesBucket `json:"salesByDate"`
	GeneratedAt       time.Time              `json:"generatedAt"`
}

// LowStockProduct is one entry of the inventory report.
type LowStockProduct struct {
	ProductID string `json:"productID"`
	Name      string `json:"name"`
	Quantity  int    `json:"quantity"`
	Type      string `json:"type"`
}

// InventoryReport lists active products below LowStockThreshold.
type InventoryReport struct {
	TotalProducts    int               `json:"totalProducts"`
	LowStockItems    int               `json:"lowStockItems"`
	LowStockProducts []LowStockProduct `json:"lowStockProducts"`
	GeneratedAt      time.Time         `json:"generatedAt"`
}

// InventorySummary aggregates the active catalog.
type InventorySummary struct {
	TotalProducts   int             `json:"totalProducts"`
	TotalValue      decimal.Decimal `json:"totalValue"`
	LowStockItems   int             `json:"lowStockItems"`
	OutOfStockItems int             `json:"outOfStockItems"`
}

// StockedProduct is a product with the value of its stock on hand.
type StockedProduct struct {
	Name     string          `json:"name"`
	Quantity int             `json:"quantity"`
	Value    decimal.Decimal `json:"value"`
}

// TopProductsLimit caps the best-stocked list in analytics.
const TopProductsLimit = 10

// MonthlyTrend is one month of sales. Sales is the billed total and Revenue
// what was collected on those sales.
type MonthlyTrend struct {
	Month   string          `json:"month"`
	Sales   decimal.Decimal `json:"sales"`
	Revenue decimal.Decimal `json:"revenue"`
	Orders  int             `json:"orders"`
}

// AnalyticsOverview is the headline of the analytics view.
type AnalyticsOverview struct {
	TotalProducts     int             `json:"totalProducts"`
	TotalCustomers    int             `json:"totalCustomers"`
	TotalSales        int             `json:"totalSales"`
	TotalRevenue      decimal.Decimal `json:"totalRevenue"`
	AverageOrderValue decimal.Decimal `json:"averageOrderValue"`
}

// InventoryAnalytics describes the catalog's stock on hand.
type InventoryAnalytics struct {
	InventorySummary
	TopProducts []StockedProduct `json:"topProducts"`
}

// SalesAnalytics is the sales side of analytics, trends oldest month first.
type SalesAnalytics struct {
	SalesTotals
	MonthlyTrends []MonthlyTrend `json:"monthlyTrends"`
}

// Analytics combines catalog, customer and sales figures for a range.
type Analytics struct {
	Overview    AnalyticsOverview  `json:"overview"`
	Inventory   InventoryAnalytics `json:"inventory"`
	Sales       SalesAnalytics     `json:"sales"`
	GeneratedAt time.Time          `json:"generatedAt"`
}
