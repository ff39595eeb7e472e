// Package types provides common type aliases and utilities.
package types

import (
	"github.com/shopspring/decimal"
)

// Money represents a monetary value with full precision.
// Uses decimal.Decimal to avoid floating-point errors.
type Money = decimal.Decimal

// NewMoney creates a Money value from a float.
// WARNING: Use NewMoneyFromString for precise values.
func NewMoney(f float64) Money {
	return decimal.NewFromFloat(f)
}

// NewMoneyFromString creates a Money value from a string.
// This is the preferred method for monetary values.
func NewMoneyFromString(s string) (Money, error) {
	return decimal.NewFromString(s)
}

// MustMoney creates a Money value from a string, panics on error.
// Use only for constants and tests.
func MustMoney(s string) Money {
	d, err := decimal.NewFromString(s)
	if err != nil {
		panic(err)
	}
	return d
}

// Zero returns zero Money value.
func Zero() Money {
	return decimal.Zero
}

// Round2 rounds a monetary value to 2 decimal places (cents).
// All quote aggregates and line totals are stored at this precision.
func Round2(m Money) Money {
	return m.Round(2)
}

// Percent converts a percentage value (e.g. 20 for 20%) to its fraction.
func Percent(p float64) Money {
	return decimal.NewFromFloat(p).Div(decimal.NewFromInt(100))
}

// Float64 converts Money to float64 for JSON responses.
// Precision loss is acceptable at the API boundary only.
func Float64(m Money) float64 {
	f, _ := m.Float64()
	return f
}
