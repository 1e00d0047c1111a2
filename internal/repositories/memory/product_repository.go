package memory

import (
	"context"
	"fmt"
	"math"
	"slices"
	"strings"
	"time"

	"github.com/SscSPs/shop_ledger/internal/apperrors"
	"github.com/SscSPs/shop_ledger/internal/core/domain"
)

type productRepository struct{ s *Store }

func (r productRepository) FindProductByID(ctx context.Context, productID string) (*domain.Product, error) {
	var (
		p  domain.Product
		ok bool
	)
	r.s.read(func(st *state) { p, ok = st.products[productID] })
	if !ok {
		return nil, apperrors.New(apperrors.ErrNotFound, "Product %s not found", productID)
	}
	return &p, nil
}

func (r productRepository) ListProducts(ctx context.Context, filter domain.ProductFilter) ([]domain.Product, error) {
	var out []domain.Product
	term := strings.ToLower(filter.SearchTerm)
	r.s.read(func(st *state) {
		for _, p := range st.products {
			if !filter.IncludeInactive && !p.IsActive {
				continue
			}
			if term != "" && !strings.Contains(strings.ToLower(p.Name), term) {
				continue
			}
			if filter.Type != "" && p.Type != filter.Type {
				continue
			}
			if filter.LowStockOnly && !p.IsLowStock() {
				continue
			}
			out = append(out, p)
		}
	})
	slices.SortFunc(out, func(a, b domain.Product) int {
		if c := strings.Compare(a.Name, b.Name); c != 0 {
			return c
		}
		return strings.Compare(a.ProductID, b.ProductID)
	})
	return paginate(out, filter.Limit, filter.Offset), nil
}

func (r productRepository) SaveProduct(ctx context.Context, product domain.Product) error {
	return r.s.write(func(st *state) error {
		if _, exists := st.products[product.ProductID]; exists {
			return apperrors.New(apperrors.ErrDuplicate, "Product %s already exists", product.ProductID)
		}
		st.products[product.ProductID] = product
		return nil
	})
}

func (r productRepository) UpdateProduct(ctx context.Context, product domain.Product) error {
	return r.s.write(func(st *state) error {
		current, ok := st.products[product.ProductID]
		if !ok {
			return apperrors.New(apperrors.ErrNotFound, "Product %s not found", product.ProductID)
		}
		product.Quantity = current.Quantity
		st.products[product.ProductID] = product
		return nil
	})
}

func (r productRepository) AdjustProductQuantity(ctx context.Context, productID string, delta int, now time.Time) (int, error) {
	var quantity int
	err := r.s.write(func(st *state) error {
		p, ok := st.products[productID]
		if !ok {
			return apperrors.New(apperrors.ErrNotFound, "Product %s not found", productID)
		}
		// mirrors the INTEGER quantity column
		if delta > math.MaxInt32 || delta < math.MinInt32 {
			return fmt.Errorf("quantity change for product %s out of range", productID)
		}
		next := int64(p.Quantity) + int64(delta)
		if next > math.MaxInt32 || next < math.MinInt32 {
			return fmt.Errorf("quantity for product %s out of range", productID)
		}
		p.Quantity = int(next)
		p.LastUpdatedAt = now
		st.products[productID] = p
		quantity = p.Quantity
		return nil
	})
	return quantity, err
}
