package pgsql

import (
	"context"
	"fmt"
	"strings"

	"github.com/SscSPs/shop_ledger/internal/core/domain"
	portsrepo "github.com/SscSPs/shop_ledger/internal/core/ports/repositories"
)

// PgxReportingRepository runs the aggregate queries behind the sales and inventory reports
type PgxReportingRepository struct {
	BaseRepository
}

var _ portsrepo.ReportingRepository = (*PgxReportingRepository)(nil)

// periodFormats maps a report period to its to_char pattern.
var periodFormats = map[domain.ReportPeriod]string{
	domain.PeriodDay:   "YYYY-MM-DD",
	domain.PeriodMonth: "YYYY-MM",
}

// SummarizeSales groups sales by UTC day or month
func (r *PgxReportingRepository) SummarizeSales(ctx context.Context, rng domain.ReportRange, period domain.ReportPeriod) ([]domain.SalesBucket, error) {
	format, ok := periodFormats[period]
	if !ok {
		return nil, fmt.Errorf("unknown report period %q", period)
	}

	var (
		conditions []string
		args       []any
	)
	arg := func(v any) string {
		args = append(args, v)
		return fmt.Sprintf("$%d", len(args))
	}
	if rng.From != nil {
		conditions = append(conditions, "created_at >= "+arg(*rng.From))
	}
	if rng.To != nil {
		conditions = append(conditions, "created_at <= "+arg(*rng.To))
	}

	query := `
		SELECT
			to_char(created_at AT TIME ZONE 'UTC', '` + format + `') AS period,
			COUNT(*),
			COALESCE(SUM(total_amount), 0),
			COALESCE(SUM(total_paid), 0),
			COALESCE(SUM(outstanding_amount), 0)
		FROM sales`
	if len(conditions) > 0 {
		query += " WHERE " + strings.Join(conditions, " AND ")
	}
	query += " GROUP BY period ORDER BY period"

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("error querying sales summary: %w", err)
	}
	defer rows.Close()

	result := []domain.SalesBucket{}
	for rows.Next() {
		var b domain.SalesBucket
		if err := rows.Scan(&b.Period, &b.Count, &b.TotalAmount, &b.TotalPaid, &b.Outstanding); err != nil {
			return nil, fmt.Errorf("error scanning sales summary row: %w", err)
		}
		result = append(result, b)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating sales summary rows: %w", err)
	}
	return result, nil
}

// SummarizeInventory aggregates the active catalog in one pass
func (r *PgxReportingRepository) SummarizeInventory(ctx context.Context) (domain.InventorySummary, error) {
	var s domain.InventorySummary
	err := r.db.QueryRow(ctx, `
		SELECT
			COUNT(*),
			COALESCE(SUM(price * quantity), 0),
			COUNT(*) FILTER (WHERE quantity < $1),
			COUNT(*) FILTER (WHERE quantity = 0)
		FROM products
		WHERE is_active`,
		domain.LowStockThreshold,
	).Scan(&s.TotalProducts, &s.TotalValue, &s.LowStockItems, &s.OutOfStockItems)
	if err != nil {
		return domain.InventorySummary{}, fmt.Errorf("error querying inventory summary: %w", err)
	}
	return s, nil
}

// ListTopStockedProducts returns the active products with the most units on hand
func (r *PgxReportingRepository) ListTopStockedProducts(ctx context.Context, limit int) ([]domain.StockedProduct, error) {
	rows, err := r.db.Query(ctx, `
		SELECT name, quantity, price * quantity AS value
		FROM products
		WHERE is_active
		ORDER BY quantity DESC, name, product_id
		LIMIT $1`,
		limit,
	)
	if err != nil {
		return nil, fmt.Errorf("error querying top stocked products: %w", err)
	}
	defer rows.Close()

	result := []domain.StockedProduct{}
	for rows.Next() {
		var p domain.StockedProduct
		if err := rows.Scan(&p.Name, &p.Quantity, &p.Value); err != nil {
			return nil, fmt.Errorf("error scanning top stocked product: %w", err)
		}
		result = append(result, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating top stocked products: %w", err)
	}
	return result, nil
}

func (r *PgxReportingRepository) CountActiveCustomers(ctx context.Context) (int, error) {
	var n int
	if err := r.db.QueryRow(ctx, `SELECT COUNT(*) FROM customers WHERE is_active`).Scan(&n); err != nil {
		return 0, fmt.Errorf("error counting customers: %w", err)
	}
	return n, nil
}
