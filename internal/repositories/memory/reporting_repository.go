package memory

import (
	"cmp"
	"context"
	"slices"

	"github.com/SscSPs/shop_ledger/internal/core/domain"
	"github.com/shopspring/decimal"
)

type reportingRepository struct{ s *Store }

func (r reportingRepository) SummarizeSales(ctx context.Context, rng domain.ReportRange, period domain.ReportPeriod) ([]domain.SalesBucket, error) {
	byPeriod := map[string]*domain.SalesBucket{}
	r.s.read(func(st *state) {
		for _, sale := range st.sales {
			if !rng.Contains(sale.CreatedAt) {
				continue
			}
			key := sale.CreatedAt.UTC().Format(period.Layout())
			b, ok := byPeriod[key]
			if !ok {
				b = &domain.SalesBucket{Period: key, TotalAmount: decimal.Zero, TotalPaid: decimal.Zero, Outstanding: decimal.Zero}
				byPeriod[key] = b
			}
			b.Count++
			b.TotalAmount = b.TotalAmount.Add(sale.TotalAmount)
			b.TotalPaid = b.TotalPaid.Add(sale.TotalPaid)
			b.Outstanding = b.Outstanding.Add(sale.OutstandingAmount)
		}
	})

	out := make([]domain.SalesBucket, 0, len(byPeriod))
	for _, b := range byPeriod {
		out = append(out, *b)
	}
	slices.SortFunc(out, func(a, b domain.SalesBucket) int { return cmp.Compare(a.Period, b.Period) })
	return out, nil
}

func (r reportingRepository) SummarizeInventory(ctx context.Context) (domain.InventorySummary, error) {
	summary := domain.InventorySummary{TotalValue: decimal.Zero}
	r.s.read(func(st *state) {
		for _, p := range st.products {
			if !p.IsActive {
				continue
			}
			summary.TotalProducts++
			summary.TotalValue = summary.TotalValue.Add(p.Price.Mul(decimal.NewFromInt(int64(p.Quantity))))
			if p.IsLowStock() {
				summary.LowStockItems++
			}
			if p.Quantity == 0 {
				summary.OutOfStockItems++
			}
		}
	})
	return summary, nil
}

func (r reportingRepository) ListTopStockedProducts(ctx context.Context, limit int) ([]domain.StockedProduct, error) {
	var active []domain.Product
	r.s.read(func(st *state) {
		for _, p := range st.products {
			if p.IsActive {
				active = append(active, p)
			}
		}
	})
	slices.SortFunc(active, func(a, b domain.Product) int {
		if c := cmp.Compare(b.Quantity, a.Quantity); c != 0 {
			return c
		}
		return cmp.Or(cmp.Compare(a.Name, b.Name), cmp.Compare(a.ProductID, b.ProductID))
	})

	active = paginate(active, limit, 0)
	out := make([]domain.StockedProduct, len(active))
	for i, p := range active {
		out[i] = domain.StockedProduct{
			Name:     p.Name,
			Quantity: p.Quantity,
			Value:    p.Price.Mul(decimal.NewFromInt(int64(p.Quantity))),
		}
	}
	return out, nil
}

func (r reportingRepository) CountActiveCustomers(ctx context.Context) (int, error) {
	var n int
	r.s.read(func(st *state) {
		for _, c := range st.customers {
			if c.IsActive {
				n++
			}
		}
	})
	return n, nil
}
