// Package tva computes the value-added-tax levied on a transaction amount.
//
// Arithmetic is done on exact base-10 decimals and rounded half-up to
// cents. Float values are only accepted and returned at the boundary.
package tva

import (
	"fmt"
	"math"

	"github.com/piresc/mycompta/internal/pkg/apperror"
	"github.com/shopspring/decimal"
)

// Scale is the number of fractional digits kept for monetary values and rates
const Scale int32 = 2

var (
	// ErrCalculation is the TVACalculationError kind. It is a validation error.
	ErrCalculation = fmt.Errorf("%w: tva calculation", apperror.ErrValidation)

	hundred = decimal.NewFromInt(100)
)

// ComputeTVA returns amount * rate / 100 rounded half-up to 2 decimals.
// amount must be finite and > 0, rate finite and within [0, 100].
func ComputeTVA(amount, rate float64) (float64, error) {
	a, err := FromFloat(amount)
	if err != nil {
		return 0, err
	}
	r, err := FromFloat(rate)
	if err != nil {
		return 0, err
	}

	t, err := Compute(a, r)
	if err != nil {
		return 0, err
	}
	return t.InexactFloat64(), nil
}

// Compute is the decimal form of ComputeTVA
func Compute(amount, rate decimal.Decimal) (decimal.Decimal, error) {
	if amount.Sign() <= 0 {
		return decimal.Zero, fmt.Errorf("%w: amount must be positive, got %s", ErrCalculation, amount.String())
	}
	if rate.Sign() < 0 || rate.GreaterThan(hundred) {
		return decimal.Zero, fmt.Errorf("%w: tva rate must be between 0 and 100, got %s", ErrCalculation, rate.String())
	}

	// Shift(-2) divides by 100 without a division precision limit.
	return amount.Mul(rate).Shift(-2).Round(Scale), nil
}

// Total returns amount + tva at monetary scale
func Total(amount, tvaAmount decimal.Decimal) decimal.Decimal {
	return amount.Add(tvaAmount).Round(Scale)
}

// FromFloat converts v to its shortest exact decimal representation.
// NaN and infinities are rejected.
func FromFloat(v float64) (decimal.Decimal, error) {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return decimal.Zero, fmt.Errorf("%w: invalid input %v", ErrCalculation, v)
	}
	return decimal.NewFromFloat(v), nil
}

// HasMaxScale reports whether v has at most places fractional digits
func HasMaxScale(v float64, places int32) bool {
	d, err := FromFloat(v)
	if err != nil {
		return false
	}
	return d.Equal(d.Round(places))
}
