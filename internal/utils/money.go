package utils

import (
	"github.com/shopspring/decimal"
)

// moneyPlaces is the number of decimal places shown for an amount.
const moneyPlaces = 2

// FormatAmount renders amount rounded to two decimal places.
// Example: 12.3456 returns "12.35", 7 returns "7.00".
func FormatAmount(amount decimal.Decimal) string {
	return amount.StringFixed(moneyPlaces)
}

// HasMoneyPrecision reports whether amount has no more than two decimal
// places. "10.50" and "10.500" qualify, "10.005" does not.
func HasMoneyPrecision(amount decimal.Decimal) bool {
	return amount.Equal(amount.Truncate(moneyPlaces))
}

// RoundAmount rounds amount to two decimal places.
func RoundAmount(amount decimal.Decimal) decimal.Decimal {
	return amount.Round(moneyPlaces)
}
