// Package moneypkg provides fixed-point money arithmetic helpers.
//
// Amounts travel through the application as decimal strings and are
// canonicalized to two decimal places. All rounding is round-half-even
// to avoid systematic bias when crediting interest.
package moneypkg

import (
	"errors"

	"github.com/shopspring/decimal"
)

// Precision is the number of decimal places kept for any stored amount.
const Precision = 2

var (
	// ErrInvalidAmount indicates a string that does not parse as a decimal number.
	ErrInvalidAmount = errors.New("invalid amount")
	// ErrNotPositive indicates an amount that must be strictly positive but is not.
	ErrNotPositive = errors.New("amount must be positive")
	// ErrNegative indicates an amount that must not be negative.
	ErrNegative = errors.New("amount must not be negative")
	// ErrTooPrecise indicates more decimal places than the currency supports.
	ErrTooPrecise = errors.New("amount has more than two decimal places")
)

// Parse parses a decimal amount string.
func Parse(s string) (decimal.Decimal, error) {
	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Zero, ErrInvalidAmount
	}

	if d.Exponent() < -Precision {
		return decimal.Zero, ErrTooPrecise
	}

	return d, nil
}

// ParsePositive parses a decimal amount string and requires it to be
// strictly greater than zero.
func ParsePositive(s string) (decimal.Decimal, error) {
	d, err := Parse(s)
	if err != nil {
		return decimal.Zero, err
	}

	if d.LessThanOrEqual(decimal.Zero) {
		return decimal.Zero, ErrNotPositive
	}

	return d, nil
}

// ParseNonNegative parses a decimal amount string and requires it to be
// zero or greater.
func ParseNonNegative(s string) (decimal.Decimal, error) {
	d, err := Parse(s)
	if err != nil {
		return decimal.Zero, err
	}

	if d.IsNegative() {
		return decimal.Zero, ErrNegative
	}

	return d, nil
}

// Format canonicalizes an amount to two decimal places.
func Format(d decimal.Decimal) string {
	return d.StringFixed(Precision)
}

// Interest computes one period's interest on the given principal with
// an annual percentage rate split over periodsPerYear crediting
// periods, rounded half-even to currency precision.
func Interest(principal, annualRatePct decimal.Decimal, periodsPerYear int) decimal.Decimal {
	divisor := decimal.NewFromInt(int64(100 * periodsPerYear))
	return principal.Mul(annualRatePct).Div(divisor).RoundBank(Precision)
}

// InRange reports whether d lies within [min, max] inclusive.
func InRange(d, min, max decimal.Decimal) bool {
	return d.GreaterThanOrEqual(min) && d.LessThanOrEqual(max)
}
