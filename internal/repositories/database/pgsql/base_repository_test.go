package pgsql

import (
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/SscSPs/shop_ledger/internal/apperrors"
	"github.com/SscSPs/shop_ledger/internal/core/domain"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestNotFoundMapsNoRows(t *testing.T) {
	err := notFound(fmt.Errorf("scan: %w", pgx.ErrNoRows), "Customer", "c1")
	assert.ErrorIs(t, err, apperrors.ErrNotFound)
	assert.Equal(t, "Customer c1 not found", apperrors.Message(err))

	boom := errors.New("conn reset")
	err = notFound(boom, "Customer", "c1")
	assert.ErrorIs(t, err, boom)
	assert.NotErrorIs(t, err, apperrors.ErrNotFound)
}

func TestDuplicateMapsUniqueViolation(t *testing.T) {
	err := duplicate(&pgconn.PgError{Code: uniqueViolation}, "Username %s already taken", "admin")
	assert.ErrorIs(t, err, apperrors.ErrDuplicate)
	assert.Equal(t, "Username admin already taken", apperrors.Message(err))

	fk := &pgconn.PgError{Code: "23503"}
	err = duplicate(fk, "Sale %s already exists", "s1")
	assert.NotErrorIs(t, err, apperrors.ErrDuplicate)
	assert.ErrorAs(t, err, &fk)
}

func TestRequireRow(t *testing.T) {
	assert.ErrorIs(t, requireRow(pgconn.NewCommandTag("UPDATE 0"), "Sale", "s1"), apperrors.ErrNotFound)
	assert.NoError(t, requireRow(pgconn.NewCommandTag("UPDATE 1"), "Sale", "s1"))
}

func TestLimitOffset(t *testing.T) {
	tests := []struct {
		name          string
		limit, offset int
		want          string
		wantArgs      []any
	}{
		{"none", 0, 0, "", nil},
		{"limit only", 20, 0, " LIMIT $1", []any{20}},
		{"offset only", 0, 5, " OFFSET $1", []any{5}},
		{"both", 20, 40, " LIMIT $1 OFFSET $2", []any{20, 40}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var args []any
			arg := func(v any) string {
				args = append(args, v)
				return fmt.Sprintf("$%d", len(args))
			}
			assert.Equal(t, tt.want, limitOffset(tt.limit, tt.offset, arg))
			assert.Equal(t, tt.wantArgs, args)
		})
	}
}

func TestCustomerCreditLimitSurvivesModelMapping(t *testing.T) {
	limit := decimal.RequireFromString("500.00")
	withLimit := domain.Customer{CustomerID: "c1", Name: "Ana", CreditLimit: &limit}

	got := toDomainCustomer(toModelCustomer(withLimit))
	if assert.NotNil(t, got.CreditLimit) {
		assert.True(t, limit.Equal(*got.CreditLimit))
	}

	noLimit := toDomainCustomer(toModelCustomer(domain.Customer{CustomerID: "c2"}))
	assert.Nil(t, noLimit.CreditLimit)
}

func TestSaleModelKeepsSnapshotAndItems(t *testing.T) {
	created := time.Date(2024, 3, 1, 9, 0, 0, 0, time.UTC)
	sale := domain.Sale{
		SaleID:     "s1",
		CustomerID: "c1",
		Customer:   domain.CustomerSnapshot{Name: "Ana", Phone: "+16502530000", Address: "1 Main St"},
		Items: []domain.LineItem{
			{ProductID: "p1", ProductName: "Rice", Quantity: 2, UnitPrice: decimal.RequireFromString("4.50")},
		},
		TotalAmount:       decimal.RequireFromString("9.00"),
		OutstandingAmount: decimal.RequireFromString("9.00"),
		PaymentStatus:     domain.PaymentPending,
		AuditFields:       domain.AuditFields{CreatedAt: created, CreatedBy: "u1"},
	}

	m := toModelSale(sale)
	assert.Equal(t, "Ana", m.CustomerName)
	assert.Equal(t, "pending", m.PaymentStatus)

	back := toDomainSale(m)
	assert.Equal(t, sale.Customer, back.Customer)
	assert.Equal(t, sale.Items, back.Items)
	assert.Equal(t, created, back.CreatedAt)
}
