package domain_test

import (
	"testing"

	"github.com/SscSPs/shop_ledger/internal/core/domain"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func decimalPtr(d decimal.Decimal) *decimal.Decimal {
	return &d
}

func TestClassifyRisk(t *testing.T) {
	limit := decimalPtr(decimal.NewFromInt(500))

	tests := []struct {
		name        string
		days        int
		outstanding decimal.Decimal
		limit       *decimal.Decimal
		want        domain.RiskLevel
	}{
		{"old debt", 91, decimal.NewFromInt(10), nil, domain.RiskHigh},
		{"over limit while fresh", 5, decimal.NewFromInt(600), limit, domain.RiskHigh},
		{"at limit", 5, decimal.NewFromInt(500), limit, domain.RiskLow},
		{"medium age", 61, decimal.NewFromInt(10), limit, domain.RiskMedium},
		{"ninety days is medium", 90, decimal.NewFromInt(10), nil, domain.RiskMedium},
		{"sixty days is low", 60, decimal.NewFromInt(10), nil, domain.RiskLow},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, domain.ClassifyRisk(tt.days, tt.outstanding, tt.limit))
		})
	}
}

func TestCustomerCreditUtilization(t *testing.T) {
	c := domain.Customer{}
	assert.True(t, c.CreditUtilization(decimal.NewFromInt(100)).IsZero())

	c.CreditLimit = decimalPtr(decimal.Zero)
	assert.True(t, c.CreditUtilization(decimal.NewFromInt(100)).IsZero())

	c.CreditLimit = decimalPtr(decimal.NewFromInt(400))
	assert.True(t, decimal.NewFromInt(25).Equal(c.CreditUtilization(decimal.NewFromInt(100))))
	assert.False(t, c.ExceedsCreditLimit(decimal.NewFromInt(400)))
	assert.True(t, c.ExceedsCreditLimit(decimal.NewFromInt(401)))
}

func TestParsePaymentMethod(t *testing.T) {
	m, ok := domain.ParsePaymentMethod("Bank_Transfer")
	assert.True(t, ok)
	assert.Equal(t, domain.MethodBankTransfer, m)

	m, ok = domain.ParsePaymentMethod("")
	assert.True(t, ok)
	assert.Equal(t, domain.MethodCash, m)

	_, ok = domain.ParsePaymentMethod("barter")
	assert.False(t, ok)
}
