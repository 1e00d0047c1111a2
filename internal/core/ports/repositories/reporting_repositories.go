package repositories

import (
	"context"

	"github.com/SscSPs/shop_ledger/internal/core/domain"
)

// ReportingRepository defines the aggregate reads behind sales and inventory reports
type ReportingRepository interface {
	// SummarizeSales groups the sales created in rng by period, oldest period first.
	SummarizeSales(ctx context.Context, rng domain.ReportRange, period domain.ReportPeriod) ([]domain.SalesBucket, error)

	// SummarizeInventory aggregates quantity and stock value over active products.
	SummarizeInventory(ctx context.Context) (domain.InventorySummary, error)

	// ListTopStockedProducts returns the active products holding the most units, by name on ties.
	ListTopStockedProducts(ctx context.Context, limit int) ([]domain.StockedProduct, error)

	// CountActiveCustomers counts customers that have not been deactivated.
	CountActiveCustomers(ctx context.Context) (int, error)
}
