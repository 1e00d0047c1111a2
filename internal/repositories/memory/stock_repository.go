package memory

import (
	"context"
	"slices"

	"github.com/SscSPs/shop_ledger/internal/core/domain"
)

type stockRepository struct{ s *Store }

func (r stockRepository) ListMovementsByProduct(ctx context.Context, productID string) ([]domain.StockMovement, error) {
	var out []domain.StockMovement
	r.s.read(func(st *state) {
		for _, m := range st.movements {
			if m.ProductID == productID {
				out = append(out, m)
			}
		}
	})
	// movements are appended in time order; stable sort keeps that for equal timestamps
	slices.SortStableFunc(out, func(a, b domain.StockMovement) int { return a.CreatedAt.Compare(b.CreatedAt) })
	return out, nil
}

func (r stockRepository) ListMovements(ctx context.Context, filter domain.StockFilter) ([]domain.StockMovement, error) {
	var out []domain.StockMovement
	r.s.read(func(st *state) {
		for i := len(st.movements) - 1; i >= 0; i-- {
			m := st.movements[i]
			if filter.ProductID != "" && m.ProductID != filter.ProductID {
				continue
			}
			out = append(out, m)
		}
	})
	slices.SortStableFunc(out, func(a, b domain.StockMovement) int { return b.CreatedAt.Compare(a.CreatedAt) })
	return paginate(out, filter.Limit, filter.Offset), nil
}

func (r stockRepository) SaveMovement(ctx context.Context, movement domain.StockMovement) error {
	return r.s.write(func(st *state) error {
		st.movements = append(st.movements, movement)
		return nil
	})
}
