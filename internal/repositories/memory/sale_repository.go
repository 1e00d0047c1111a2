package memory

import (
	"context"
	"slices"
	"strings"
	"time"

	"github.com/SscSPs/shop_ledger/internal/apperrors"
	"github.com/SscSPs/shop_ledger/internal/core/domain"
	"github.com/shopspring/decimal"
)

type saleRepository struct{ s *Store }

func (r saleRepository) FindSaleByID(ctx context.Context, saleID string) (*domain.Sale, error) {
	var (
		sale domain.Sale
		ok   bool
	)
	r.s.read(func(st *state) { sale, ok = st.sales[saleID] })
	if !ok {
		return nil, apperrors.New(apperrors.ErrNotFound, "Sale %s not found", saleID)
	}
	sale.Items = slices.Clone(sale.Items)
	return &sale, nil
}

// oldestFirst orders by creation time, then by insertion order.
func oldestFirst(st *state) func(a, b domain.Sale) int {
	return func(a, b domain.Sale) int {
		if c := a.CreatedAt.Compare(b.CreatedAt); c != 0 {
			return c
		}
		return int(st.saleSeq[a.SaleID] - st.saleSeq[b.SaleID])
	}
}

func (r saleRepository) ListSales(ctx context.Context, filter domain.SaleFilter) ([]domain.Sale, error) {
	var out []domain.Sale
	r.s.read(func(st *state) {
		for _, sale := range st.sales {
			if filter.CustomerID != "" && sale.CustomerID != filter.CustomerID {
				continue
			}
			if filter.From != nil && sale.CreatedAt.Before(*filter.From) {
				continue
			}
			if filter.To != nil && sale.CreatedAt.After(*filter.To) {
				continue
			}
			sale.Items = slices.Clone(sale.Items)
			out = append(out, sale)
		}
		asc := oldestFirst(st)
		slices.SortFunc(out, func(a, b domain.Sale) int { return asc(b, a) })
	})
	return paginate(out, filter.Limit, filter.Offset), nil
}

func (r saleRepository) ListOutstandingSalesByCustomer(ctx context.Context, customerID string) ([]domain.Sale, error) {
	var out []domain.Sale
	r.s.read(func(st *state) {
		for _, sale := range st.sales {
			if sale.CustomerID != customerID || sale.OutstandingAmount.Sign() <= 0 {
				continue
			}
			sale.Items = slices.Clone(sale.Items)
			out = append(out, sale)
		}
		slices.SortFunc(out, oldestFirst(st))
	})
	return out, nil
}

func (r saleRepository) SummarizeOutstanding(ctx context.Context) ([]domain.CustomerBalance, error) {
	var out []domain.CustomerBalance
	r.s.read(func(st *state) {
		byCustomer := map[string]*domain.CustomerBalance{}
		var open []domain.Sale
		for _, sale := range st.sales {
			if sale.OutstandingAmount.Sign() > 0 {
				open = append(open, sale)
			}
		}
		slices.SortFunc(open, oldestFirst(st))

		for _, sale := range open {
			b, ok := byCustomer[sale.CustomerID]
			if !ok {
				c := st.customers[sale.CustomerID]
				b = &domain.CustomerBalance{
					CustomerID:   sale.CustomerID,
					CustomerName: c.Name,
					Phone:        c.Phone,
					CreditLimit:  c.CreditLimit,
				}
				byCustomer[sale.CustomerID] = b
			}
			b.TotalOutstanding = b.TotalOutstanding.Add(sale.OutstandingAmount)
			b.OutstandingSalesCount++
			b.SaleIDs = append(b.SaleIDs, sale.SaleID)
			if sale.CreatedAt.After(b.LatestSaleAt) {
				b.LatestSaleAt = sale.CreatedAt
			}
		}
		for _, b := range byCustomer {
			out = append(out, *b)
		}
	})
	slices.SortFunc(out, func(a, b domain.CustomerBalance) int { return strings.Compare(a.CustomerID, b.CustomerID) })
	return out, nil
}

func (r saleRepository) SaveSale(ctx context.Context, sale domain.Sale) error {
	return r.s.write(func(st *state) error {
		if _, exists := st.sales[sale.SaleID]; exists {
			return apperrors.New(apperrors.ErrDuplicate, "Sale %s already exists", sale.SaleID)
		}
		st.seq++
		sale.Items = slices.Clone(sale.Items)
		st.sales[sale.SaleID] = sale
		st.saleSeq[sale.SaleID] = st.seq
		return nil
	})
}

func (r saleRepository) UpdateSalePayment(ctx context.Context, saleID string, totalPaid, outstanding decimal.Decimal, status domain.PaymentStatus, now time.Time) error {
	return r.s.write(func(st *state) error {
		sale, ok := st.sales[saleID]
		if !ok {
			return apperrors.New(apperrors.ErrNotFound, "Sale %s not found", saleID)
		}
		sale.TotalPaid = totalPaid
		sale.OutstandingAmount = outstanding
		sale.PaymentStatus = status
		sale.LastUpdatedAt = now
		st.sales[saleID] = sale
		return nil
	})
}
