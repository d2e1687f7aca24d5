package utils

import "github.com/shopspring/decimal"

// HasMinorUnitPrecision reports whether the amount fits in two decimal
// places, i.e. a whole number of pence.
func HasMinorUnitPrecision(amount decimal.Decimal) bool {
	return amount.Exponent() >= -2
}

// FormatMinorUnits renders an amount with exactly two decimal places.
// Example: 140 renders as "140.00", 9.5 as "9.50".
func FormatMinorUnits(amount decimal.Decimal) string {
	return amount.StringFixed(2)
}
