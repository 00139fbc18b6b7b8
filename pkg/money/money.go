// Package money holds the decimal helpers shared by the catalog and the
// pricing engine. All prices and totals are decimal.Decimal so cent
// arithmetic stays exact until the final rounding step.
package money

import (
	"math"

	pkgerrors "github.com/candelariomtz/simcart/pkg/errors"
	"github.com/shopspring/decimal"
)

// Zero is the additive identity for running totals.
var Zero = decimal.Zero

// FromPrice converts a raw price into a decimal. NaN, infinities and
// negative values are rejected.
func FromPrice(value float64) (decimal.Decimal, error) {
	if math.IsNaN(value) || math.IsInf(value, 0) {
		return decimal.Zero, pkgerrors.New(pkgerrors.CodeValidation, "price must be a finite number")
	}
	if value < 0 {
		return decimal.Zero, pkgerrors.New(pkgerrors.CodeValidation, "price must not be negative")
	}
	return decimal.NewFromFloat(value), nil
}

// RoundCents rounds to two decimal places, half away from zero. For the
// non-negative magnitudes produced by the engine this is round-half-up at
// the cent boundary.
func RoundCents(value decimal.Decimal) decimal.Decimal {
	return value.Round(2)
}
