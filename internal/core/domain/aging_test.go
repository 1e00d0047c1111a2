package domain_test

import (
	"testing"

	"github.com/SscSPs/shop_ledger/internal/core/domain"
	"github.com/stretchr/testify/assert"
)

func TestBucketForDays(t *testing.T) {
	tests := []struct {
		days int
		want domain.AgingBucket
	}{
		{0, domain.AgingCurrent},
		{30, domain.AgingCurrent},
		{31, domain.Aging31To60},
		{60, domain.Aging31To60},
		{61, domain.Aging61To90},
		{90, domain.Aging61To90},
		{91, domain.Aging90Plus},
		{400, domain.Aging90Plus},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, domain.BucketForDays(tt.days), "days=%d", tt.days)
	}
}

func TestMatchesAgingFilter(t *testing.T) {
	assert.True(t, domain.MatchesAgingFilter("", 5))
	assert.False(t, domain.MatchesAgingFilter("overdue", 30))
	assert.True(t, domain.MatchesAgingFilter("overdue", 31))
	assert.True(t, domain.MatchesAgingFilter("61-90", 90))
	assert.False(t, domain.MatchesAgingFilter("90+", 90))
	assert.True(t, domain.MatchesAgingFilter("current", 30))
}

func TestValidAgingFilter(t *testing.T) {
	for _, f := range []string{"", "overdue", "current", "31-60", "61-90", "90+"} {
		assert.True(t, domain.ValidAgingFilter(f), f)
	}
	assert.False(t, domain.ValidAgingFilter("ancient"))
}
