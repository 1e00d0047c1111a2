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

type customerRepository struct{ s *Store }

func (r customerRepository) FindCustomerByID(ctx context.Context, customerID string) (*domain.Customer, error) {
	var (
		c  domain.Customer
		ok bool
	)
	r.s.read(func(st *state) { c, ok = st.customers[customerID] })
	if !ok {
		return nil, apperrors.New(apperrors.ErrNotFound, "Customer %s not found", customerID)
	}
	return &c, nil
}

func (r customerRepository) ListCustomers(ctx context.Context, filter domain.CustomerFilter) ([]domain.Customer, error) {
	var out []domain.Customer
	term := strings.ToLower(filter.SearchTerm)
	r.s.read(func(st *state) {
		for _, c := range st.customers {
			if !filter.IncludeInactive && !c.IsActive {
				continue
			}
			if term != "" && !strings.Contains(strings.ToLower(c.Name), term) && !strings.Contains(strings.ToLower(c.Phone), term) {
				continue
			}
			out = append(out, c)
		}
	})
	slices.SortFunc(out, func(a, b domain.Customer) int {
		if c := strings.Compare(a.Name, b.Name); c != 0 {
			return c
		}
		return strings.Compare(a.CustomerID, b.CustomerID)
	})
	return paginate(out, filter.Limit, filter.Offset), nil
}

func (r customerRepository) SaveCustomer(ctx context.Context, customer domain.Customer) error {
	return r.s.write(func(st *state) error {
		if _, exists := st.customers[customer.CustomerID]; exists {
			return apperrors.New(apperrors.ErrDuplicate, "Customer %s already exists", customer.CustomerID)
		}
		st.customers[customer.CustomerID] = customer
		return nil
	})
}

func (r customerRepository) UpdateCustomer(ctx context.Context, customer domain.Customer) error {
	return r.s.write(func(st *state) error {
		current, ok := st.customers[customer.CustomerID]
		if !ok {
			return apperrors.New(apperrors.ErrNotFound, "Customer %s not found", customer.CustomerID)
		}
		customer.CreditBalance = current.CreditBalance
		st.customers[customer.CustomerID] = customer
		return nil
	})
}

func (r customerRepository) AdjustCreditBalance(ctx context.Context, customerID string, delta decimal.Decimal, now time.Time) error {
	return r.s.write(func(st *state) error {
		c, ok := st.customers[customerID]
		if !ok {
			return apperrors.New(apperrors.ErrNotFound, "Customer %s not found", customerID)
		}
		c.CreditBalance = c.CreditBalance.Add(delta)
		c.LastUpdatedAt = now
		st.customers[customerID] = c
		return nil
	})
}
