package services_test

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/SscSPs/shop_ledger/internal/core/domain"
	portsrepo "github.com/SscSPs/shop_ledger/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/shop_ledger/internal/core/ports/services"
	"github.com/SscSPs/shop_ledger/internal/core/services"
	"github.com/SscSPs/shop_ledger/internal/dto"
	"github.com/SscSPs/shop_ledger/internal/platform/config"
	"github.com/SscSPs/shop_ledger/internal/repositories/memory"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/suite"
	"golang.org/x/crypto/bcrypt"
)

const operatorID = "operator-1"

var baseTime = time.Date(2024, 1, 1, 10, 0, 0, 0, time.UTC)

type fakeClock struct {
	mu  sync.Mutex
	now time.Time
}

func (c *fakeClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *fakeClock) Advance(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = c.now.Add(d)
}

func days(n int) time.Duration { return time.Duration(n) * 24 * time.Hour }

func dec(v string) decimal.Decimal { return decimal.RequireFromString(v) }

func testConfig() *config.Config {
	return &config.Config{
		JWTSecret:         "test-secret",
		JWTExpiryDuration: time.Hour,
		JWTIssuer:         "shop-ledger-test",
		PasswordCost:      bcrypt.MinCost,
	}
}

// ledgerSuite wires every service against a fresh in-memory store and a fixed clock.
type ledgerSuite struct {
	suite.Suite
	ctx   context.Context
	clock *fakeClock
	store *memory.Store
	svc   *portssvc.ServiceContainer
}

func (s *ledgerSuite) SetupTest() {
	s.ctx = context.Background()
	s.clock = &fakeClock{now: baseTime}
	s.store = memory.NewStore()
	s.svc = services.NewServiceContainer(testConfig(), s.store, services.WithClock(s.clock.Now))
}

func (s *ledgerSuite) option() services.ServiceOption {
	return services.WithClock(s.clock.Now)
}

func (s *ledgerSuite) newCustomer(name string) *domain.Customer {
	c, err := s.svc.Customer.CreateCustomer(s.ctx, dto.CreateCustomerRequest{Name: name}, operatorID)
	s.Require().NoError(err)
	return c
}

func (s *ledgerSuite) newProduct(name, price string, qty int) *domain.Product {
	p, err := s.svc.Product.CreateProduct(s.ctx, dto.CreateProductRequest{Name: name, Price: dec(price), Quantity: qty}, operatorID)
	s.Require().NoError(err)
	return p
}

// sell creates a one line sale of qty units at unitPrice.
func (s *ledgerSuite) sell(customerID, productID string, qty int, unitPrice, paid string) *domain.Sale {
	price := dec(unitPrice)
	sale, err := s.svc.Sale.CreateSale(s.ctx, dto.CreateSaleRequest{
		CustomerID: customerID,
		Items:      []dto.SaleItemRequest{{ProductID: productID, Quantity: qty, UnitPrice: &price}},
		AmountPaid: dec(paid),
	}, operatorID)
	s.Require().NoError(err)
	return sale
}

func (s *ledgerSuite) pay(customerID, amount string) *domain.AllocationResult {
	result, err := s.svc.Payment.ProcessPayment(s.ctx, dto.ProcessPaymentRequest{CustomerID: customerID, Amount: dec(amount)}, operatorID)
	s.Require().NoError(err)
	return result
}

func (s *ledgerSuite) sale(id string) *domain.Sale {
	sale, err := s.store.Sales().FindSaleByID(s.ctx, id)
	s.Require().NoError(err)
	return sale
}

func (s *ledgerSuite) quantity(productID string) int {
	p, err := s.store.Products().FindProductByID(s.ctx, productID)
	s.Require().NoError(err)
	return p.Quantity
}

// assertBalanceMirror checks the customer's credit balance equals the sum of
// outstanding amounts over all of their sales.
func (s *ledgerSuite) assertBalanceMirror(customerID string) {
	c, err := s.store.Customers().FindCustomerByID(s.ctx, customerID)
	s.Require().NoError(err)
	sales, err := s.store.Sales().ListSales(s.ctx, domain.SaleFilter{CustomerID: customerID})
	s.Require().NoError(err)

	sum := decimal.Zero
	for _, sale := range sales {
		s.False(sale.OutstandingAmount.IsNegative(), "sale %s has negative outstanding", sale.SaleID)
		sum = sum.Add(sale.OutstandingAmount)
	}
	s.True(sum.Equal(c.CreditBalance), "credit balance %s != outstanding sum %s", c.CreditBalance, sum)
}

func (s *ledgerSuite) assertDecimal(want string, got decimal.Decimal, msgAndArgs ...any) {
	s.True(dec(want).Equal(got), append([]any{fmt.Sprintf("want %s, got %s", want, got)}, msgAndArgs...)...)
}

// faultyStore fails the n-th payment or movement write, counting across transactions.
type faultyStore struct {
	portsrepo.Store
	failPaymentAt  int
	failMovementAt int
	payments       *int
	movements      *int
}

var errDiskFull = errors.New("disk full")

func newFaultyStore(inner portsrepo.Store, failPaymentAt, failMovementAt int) faultyStore {
	return faultyStore{Store: inner, failPaymentAt: failPaymentAt, failMovementAt: failMovementAt, payments: new(int), movements: new(int)}
}

func (f faultyStore) WithTx(ctx context.Context, fn portsrepo.TxFunc) error {
	return f.Store.WithTx(ctx, func(ctx context.Context, tx portsrepo.Store) error {
		inner := f
		inner.Store = tx
		return fn(ctx, inner)
	})
}

func (f faultyStore) Payments() portsrepo.PaymentRepositoryFacade {
	return faultyPayments{PaymentRepositoryFacade: f.Store.Payments(), f: f}
}

func (f faultyStore) Stock() portsrepo.StockRepositoryFacade {
	return faultyStock{StockRepositoryFacade: f.Store.Stock(), f: f}
}

type faultyPayments struct {
	portsrepo.PaymentRepositoryFacade
	f faultyStore
}

func (p faultyPayments) SavePayment(ctx context.Context, record domain.PaymentRecord) error {
	*p.f.payments++
	if *p.f.payments == p.f.failPaymentAt {
		return errDiskFull
	}
	return p.PaymentRepositoryFacade.SavePayment(ctx, record)
}

type faultyStock struct {
	portsrepo.StockRepositoryFacade
	f faultyStore
}

func (st faultyStock) SaveMovement(ctx context.Context, movement domain.StockMovement) error {
	*st.f.movements++
	if *st.f.movements == st.f.failMovementAt {
		return errDiskFull
	}
	return st.StockRepositoryFacade.SaveMovement(ctx, movement)
}

// versionedCache is an in-process ReportCache. Bumping the version orphans old keys.
type versionedCache struct {
	mu      sync.Mutex
	version int
	data    map[string][]byte
	loads   int
	bumps   int
}

func newVersionedCache() *versionedCache {
	return &versionedCache{data: map[string][]byte{}}
}

func (c *versionedCache) BuildKey(ctx context.Context, parts ...string) (string, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return fmt.Sprintf("v%d:%v", c.version, parts), nil
}

func (c *versionedCache) FetchJSON(ctx context.Context, key string, dest any, loader func(context.Context) (any, error)) error {
	c.mu.Lock()
	raw, ok := c.data[key]
	c.mu.Unlock()
	if !ok {
		v, err := loader(ctx)
		if err != nil {
			return err
		}
		if raw, err = json.Marshal(v); err != nil {
			return err
		}
		c.mu.Lock()
		c.data[key] = raw
		c.loads++
		c.mu.Unlock()
	}
	return json.Unmarshal(raw, dest)
}

func (c *versionedCache) Bump(ctx context.Context) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.version++
	c.bumps++
	return nil
}

var _ portssvc.ReportCache = (*versionedCache)(nil)
