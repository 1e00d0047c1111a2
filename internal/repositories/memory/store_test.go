package memory

import (
	"context"
	"errors"
	"math"
	"testing"
	"time"

	"github.com/SscSPs/shop_ledger/internal/apperrors"
	"github.com/SscSPs/shop_ledger/internal/core/domain"
	portsrepo "github.com/SscSPs/shop_ledger/internal/core/ports/repositories"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var t0 = time.Date(2024, 3, 1, 9, 0, 0, 0, time.UTC)

func seedProduct(t *testing.T, s *Store, id string, qty int) {
	t.Helper()
	require.NoError(t, s.Products().SaveProduct(context.Background(), domain.Product{
		ProductID: id, Name: "Product " + id, Price: decimal.NewFromInt(10), Quantity: qty, IsActive: true,
	}))
}

func TestWithTxCommits(t *testing.T) {
	ctx := context.Background()
	s := NewStore()
	seedProduct(t, s, "p1", 5)

	err := s.WithTx(ctx, func(ctx context.Context, tx portsrepo.Store) error {
		_, err := tx.Products().AdjustProductQuantity(ctx, "p1", -2, t0)
		if err != nil {
			return err
		}
		return tx.Stock().SaveMovement(ctx, domain.StockMovement{MovementID: "m1", ProductID: "p1", Quantity: -2, Type: domain.MovementSale, CreatedAt: t0})
	})
	require.NoError(t, err)

	p, err := s.Products().FindProductByID(ctx, "p1")
	require.NoError(t, err)
	assert.Equal(t, 3, p.Quantity)

	moves, err := s.Stock().ListMovementsByProduct(ctx, "p1")
	require.NoError(t, err)
	assert.Len(t, moves, 1)
}

func TestWithTxRollsBackOnError(t *testing.T) {
	ctx := context.Background()
	s := NewStore()
	seedProduct(t, s, "p1", 5)
	boom := errors.New("boom")

	err := s.WithTx(ctx, func(ctx context.Context, tx portsrepo.Store) error {
		if _, err := tx.Products().AdjustProductQuantity(ctx, "p1", -5, t0); err != nil {
			return err
		}
		if err := tx.Stock().SaveMovement(ctx, domain.StockMovement{MovementID: "m1", ProductID: "p1", Quantity: -5}); err != nil {
			return err
		}
		return boom
	})
	assert.ErrorIs(t, err, boom)

	p, err := s.Products().FindProductByID(ctx, "p1")
	require.NoError(t, err)
	assert.Equal(t, 5, p.Quantity)

	moves, err := s.Stock().ListMovementsByProduct(ctx, "p1")
	require.NoError(t, err)
	assert.Empty(t, moves)
}

func TestNestedWithTxJoinsOuterTransaction(t *testing.T) {
	ctx := context.Background()
	s := NewStore()
	seedProduct(t, s, "p1", 5)

	err := s.WithTx(ctx, func(ctx context.Context, tx portsrepo.Store) error {
		inner := tx.WithTx(ctx, func(ctx context.Context, tx portsrepo.Store) error {
			_, err := tx.Products().AdjustProductQuantity(ctx, "p1", 1, t0)
			return err
		})
		require.NoError(t, inner)
		return errors.New("outer fails")
	})
	assert.Error(t, err)

	p, _ := s.Products().FindProductByID(ctx, "p1")
	assert.Equal(t, 5, p.Quantity)
}

func TestFindMissingReturnsNotFound(t *testing.T) {
	ctx := context.Background()
	s := NewStore()

	_, err := s.Products().FindProductByID(ctx, "nope")
	assert.ErrorIs(t, err, apperrors.ErrNotFound)
	_, err = s.Customers().FindCustomerByID(ctx, "nope")
	assert.ErrorIs(t, err, apperrors.ErrNotFound)
	_, err = s.Sales().FindSaleByID(ctx, "nope")
	assert.ErrorIs(t, err, apperrors.ErrNotFound)
	_, err = s.Products().AdjustProductQuantity(ctx, "nope", 1, t0)
	assert.ErrorIs(t, err, apperrors.ErrNotFound)
}

func TestOutstandingSalesOldestFirstWithInsertionTieBreak(t *testing.T) {
	ctx := context.Background()
	s := NewStore()
	require.NoError(t, s.Customers().SaveCustomer(ctx, domain.Customer{CustomerID: "c1", Name: "Ana", IsActive: true}))

	save := func(id string, created time.Time, outstanding int64) {
		require.NoError(t, s.Sales().SaveSale(ctx, domain.Sale{
			SaleID: id, CustomerID: "c1",
			TotalAmount:       decimal.NewFromInt(100),
			OutstandingAmount: decimal.NewFromInt(outstanding),
			AuditFields:       domain.AuditFields{CreatedAt: created},
		}))
	}
	save("newer", t0.Add(48*time.Hour), 10)
	save("tie-b", t0, 20)
	save("paid", t0.Add(-time.Hour), 0)
	save("tie-a", t0, 30)

	sales, err := s.Sales().ListOutstandingSalesByCustomer(ctx, "c1")
	require.NoError(t, err)
	ids := make([]string, len(sales))
	for i, sale := range sales {
		ids[i] = sale.SaleID
	}
	assert.Equal(t, []string{"tie-b", "tie-a", "newer"}, ids)

	balances, err := s.Sales().SummarizeOutstanding(ctx)
	require.NoError(t, err)
	require.Len(t, balances, 1)
	assert.True(t, decimal.NewFromInt(60).Equal(balances[0].TotalOutstanding))
	assert.Equal(t, 3, balances[0].OutstandingSalesCount)
	assert.Equal(t, t0.Add(48*time.Hour), balances[0].LatestSaleAt)
	assert.Equal(t, "Ana", balances[0].CustomerName)
}

func TestUpdateCustomerKeepsCreditBalance(t *testing.T) {
	ctx := context.Background()
	s := NewStore()
	require.NoError(t, s.Customers().SaveCustomer(ctx, domain.Customer{CustomerID: "c1", Name: "Ana"}))
	require.NoError(t, s.Customers().AdjustCreditBalance(ctx, "c1", decimal.NewFromInt(75), t0))

	require.NoError(t, s.Customers().UpdateCustomer(ctx, domain.Customer{CustomerID: "c1", Name: "Ana B", CreditBalance: decimal.Zero}))

	c, err := s.Customers().FindCustomerByID(ctx, "c1")
	require.NoError(t, err)
	assert.Equal(t, "Ana B", c.Name)
	assert.True(t, decimal.NewFromInt(75).Equal(c.CreditBalance))
}

func TestListPaymentsNewestFirstWithCursor(t *testing.T) {
	ctx := context.Background()
	s := NewStore()
	for i, id := range []string{"a", "b", "c"} {
		require.NoError(t, s.Payments().SavePayment(ctx, domain.PaymentRecord{
			PaymentID: id, CustomerID: "c1", Amount: decimal.NewFromInt(1), PaymentDate: t0.Add(time.Duration(i) * time.Hour),
		}))
	}

	first, err := s.Payments().ListPayments(ctx, domain.PaymentFilter{CustomerID: "c1", Limit: 2})
	require.NoError(t, err)
	require.Len(t, first, 2)
	assert.Equal(t, "c", first[0].PaymentID)
	assert.Equal(t, "b", first[1].PaymentID)

	last := first[1]
	rest, err := s.Payments().ListPayments(ctx, domain.PaymentFilter{CustomerID: "c1", Limit: 2, AfterDate: &last.PaymentDate, AfterID: last.PaymentID})
	require.NoError(t, err)
	require.Len(t, rest, 1)
	assert.Equal(t, "a", rest[0].PaymentID)
}

func TestSaveUserRejectsDuplicateUsername(t *testing.T) {
	ctx := context.Background()
	s := NewStore()
	require.NoError(t, s.Users().SaveUser(ctx, domain.User{UserID: "u1", Username: "admin"}))
	err := s.Users().SaveUser(ctx, domain.User{UserID: "u2", Username: "admin"})
	assert.ErrorIs(t, err, apperrors.ErrDuplicate)

	u, err := s.Users().FindUserByUsername(ctx, "admin")
	require.NoError(t, err)
	assert.Equal(t, "u1", u.UserID)
}

func TestListPaymentsKeepsWriteOrderWithinOneDate(t *testing.T) {
	ctx := context.Background()
	s := NewStore()
	saleA, saleB := "sale-a", "sale-b"
	for _, rec := range []domain.PaymentRecord{
		{PaymentID: "z-anchor", CustomerID: "c1", Amount: decimal.NewFromInt(30), PaymentDate: t0},
		{PaymentID: "b-first", CustomerID: "c1", SaleID: &saleA, Amount: decimal.NewFromInt(20), PaymentDate: t0},
		{PaymentID: "a-second", CustomerID: "c1", SaleID: &saleB, Amount: decimal.NewFromInt(10), PaymentDate: t0},
		{PaymentID: "older", CustomerID: "c1", Amount: decimal.NewFromInt(5), PaymentDate: t0.Add(-time.Hour)},
	} {
		require.NoError(t, s.Payments().SavePayment(ctx, rec))
	}

	all, err := s.Payments().ListPayments(ctx, domain.PaymentFilter{CustomerID: "c1"})
	require.NoError(t, err)
	ids := make([]string, len(all))
	for i, p := range all {
		ids[i] = p.PaymentID
	}
	assert.Equal(t, []string{"z-anchor", "b-first", "a-second", "older"}, ids)

	rest, err := s.Payments().ListPayments(ctx, domain.PaymentFilter{CustomerID: "c1", AfterDate: &t0, AfterID: "b-first"})
	require.NoError(t, err)
	require.Len(t, rest, 2)
	assert.Equal(t, "a-second", rest[0].PaymentID)
	assert.Equal(t, "older", rest[1].PaymentID)
}

func TestAdjustProductQuantityStaysInColumnRange(t *testing.T) {
	ctx := context.Background()
	s := NewStore()
	seedProduct(t, s, "p1", 10)

	_, err := s.Products().AdjustProductQuantity(ctx, "p1", math.MaxInt32, t0)
	assert.Error(t, err)
	_, err = s.Products().AdjustProductQuantity(ctx, "p1", math.MinInt, t0)
	assert.Error(t, err)

	p, err := s.Products().FindProductByID(ctx, "p1")
	require.NoError(t, err)
	assert.Equal(t, 10, p.Quantity)
}
