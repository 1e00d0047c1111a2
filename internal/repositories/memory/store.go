// Package memory is an in-process Store. It backs the service tests and the
// embedded mode used when no database URL is configured.
package memory

import (
	"context"
	"slices"
	"sync"

	"github.com/SscSPs/shop_ledger/internal/core/domain"
	portsrepo "github.com/SscSPs/shop_ledger/internal/core/ports/repositories"
)

type state struct {
	products  map[string]domain.Product
	customers map[string]domain.Customer
	sales     map[string]domain.Sale
	saleSeq   map[string]int64
	movements []domain.StockMovement
	payments  []domain.PaymentRecord
	users     map[string]domain.User
	seq       int64
}

func newState() *state {
	return &state{
		products:  map[string]domain.Product{},
		customers: map[string]domain.Customer{},
		sales:     map[string]domain.Sale{},
		saleSeq:   map[string]int64{},
		users:     map[string]domain.User{},
	}
}

func (s *state) clone() *state {
	c := &state{
		products:  make(map[string]domain.Product, len(s.products)),
		customers: make(map[string]domain.Customer, len(s.customers)),
		sales:     make(map[string]domain.Sale, len(s.sales)),
		saleSeq:   make(map[string]int64, len(s.saleSeq)),
		movements: slices.Clone(s.movements),
		payments:  slices.Clone(s.payments),
		users:     make(map[string]domain.User, len(s.users)),
		seq:       s.seq,
	}
	for k, v := range s.products {
		c.products[k] = v
	}
	for k, v := range s.customers {
		c.customers[k] = v
	}
	for k, v := range s.sales {
		v.Items = slices.Clone(v.Items)
		c.sales[k] = v
	}
	for k, v := range s.saleSeq {
		c.saleSeq[k] = v
	}
	for k, v := range s.users {
		c.users[k] = v
	}
	return c
}

// Store keeps every table in maps guarded by one RWMutex. WithTx works on a
// copy of the state and swaps it in on success, so a failed unit of work
// leaves nothing behind.
type Store struct {
	mu    *sync.RWMutex
	state *state
	inTx  bool
}

// NewStore returns an empty Store.
func NewStore() *Store {
	return &Store{mu: &sync.RWMutex{}, state: newState()}
}

var _ portsrepo.Store = (*Store)(nil)

// WithTx implements portsrepo.TransactionManager.
func (s *Store) WithTx(ctx context.Context, fn portsrepo.TxFunc) error {
	if s.inTx {
		return fn(ctx, s)
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	work := &Store{mu: s.mu, state: s.state.clone(), inTx: true}
	if err := fn(ctx, work); err != nil {
		return err
	}
	s.state = work.state
	return nil
}

func (s *Store) Products() portsrepo.ProductRepositoryFacade   { return productRepository{s} }
func (s *Store) Customers() portsrepo.CustomerRepositoryFacade { return customerRepository{s} }
func (s *Store) Sales() portsrepo.SaleRepositoryFacade         { return saleRepository{s} }
func (s *Store) Stock() portsrepo.StockRepositoryFacade        { return stockRepository{s} }
func (s *Store) Payments() portsrepo.PaymentRepositoryFacade   { return paymentRepository{s} }
func (s *Store) Users() portsrepo.UserRepositoryFacade         { return userRepository{s} }
func (s *Store) Reports() portsrepo.ReportingRepository        { return reportingRepository{s} }

// read runs fn under the read lock unless the caller already holds the write lock.
func (s *Store) read(fn func(st *state)) {
	if !s.inTx {
		s.mu.RLock()
		defer s.mu.RUnlock()
	}
	fn(s.state)
}

// write runs fn under the write lock unless the caller already holds it.
func (s *Store) write(fn func(st *state) error) error {
	if !s.inTx {
		s.mu.Lock()
		defer s.mu.Unlock()
	}
	return fn(s.state)
}

func paginate[T any](items []T, limit, offset int) []T {
	if offset > 0 {
		if offset >= len(items) {
			return []T{}
		}
		items = items[offset:]
	}
	if limit > 0 && limit < len(items) {
		items = items[:limit]
	}
	return items
}
