// Package core provides money parsing and handling utilities.
//
// Amounts are kept as integer cents so that repeated sums never drift. Text
// typed by the user is parsed with shopspring/decimal and converted once.
package core

import (
	"strings"

	"github.com/shopspring/decimal"
)

// maxUnits bounds parsed amounts so Cents never overflows int64.
var maxUnits = decimal.NewFromInt((1<<63 - 1) / 100)

// ParseAmount converts a decimal string to Money with half-up rounding on the
// third decimal place.
//
// It accepts both dot (12.34) and comma (12,34) decimal separators. Negative,
// zero and malformed values are rejected with an *InputError.
//
// Examples:
//
//	ParseAmount("50000")  -> Money{Cents: 5000000}
//	ParseAmount("12,34")  -> Money{Cents: 1234}
//	ParseAmount("12.345") -> Money{Cents: 1235}
func ParseAmount(s string) (Money, error) {
	return parseCents("amount", s, false)
}

// ParseBudget is ParseAmount for budgets, which may be zero.
func ParseBudget(s string) (Money, error) {
	return parseCents("budget", s, true)
}

func parseCents(field, s string, allowZero bool) (Money, error) {
	raw := s
	invalid := &InputError{Field: field, Value: raw, Err: ErrInvalidAmount}

	s = strings.TrimSpace(s)
	if s == "" || strings.HasPrefix(s, "+") || strings.HasPrefix(s, "-") {
		return Money{}, invalid
	}
	s = strings.ReplaceAll(s, ",", ".")

	d, err := decimal.NewFromString(s)
	if err != nil || d.GreaterThan(maxUnits) {
		return Money{}, invalid
	}

	cents := d.Shift(2).Round(0).IntPart()
	if cents < 0 || (cents == 0 && !allowZero) {
		return Money{}, invalid
	}
	return Money{Cents: cents}, nil
}

// FromUnits returns Money for a whole number of currency units.
func FromUnits(units int64) Money {
	return Money{Cents: units * 100}
}

// Decimal returns the amount as a decimal number of currency units.
func (m Money) Decimal() decimal.Decimal {
	return decimal.New(m.Cents, -2)
}

// Units returns the amount rounded half-up to whole currency units, for display.
func (m Money) Units() int64 {
	return m.Decimal().Round(0).IntPart()
}

// PercentOf returns part as an integer percentage of total, truncated.
// A non-positive total yields 0.
func PercentOf(part, total Money) int {
	if total.Cents <= 0 {
		return 0
	}
	return int(part.Cents * 100 / total.Cents)
}
