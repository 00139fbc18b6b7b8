package money

import (
	"math"
	"testing"

	"github.com/shopspring/decimal"

	pkgerrors "github.com/candelariomtz/simcart/pkg/errors"
)

func TestFromPriceRejectsNonFiniteAndNegative(t *testing.T) {
	t.Parallel()
	for _, value := range []float64{math.NaN(), math.Inf(1), math.Inf(-1), -0.01} {
		if _, err := FromPrice(value); !pkgerrors.HasCode(err, pkgerrors.CodeValidation) {
			t.Fatalf("expected validation error for %v, got %v", value, err)
		}
	}
}

func TestFromPriceKeepsCentPrecision(t *testing.T) {
	t.Parallel()
	price, err := FromPrice(24.90)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !price.Equal(decimal.RequireFromString("24.9")) {
		t.Fatalf("expected 24.9, got %s", price)
	}
}

func TestRoundCentsHalfUp(t *testing.T) {
	t.Parallel()
	cases := map[string]string{
		"2.005":  "2.01",
		"2.004":  "2.00",
		"49.795": "49.80",
		"0":      "0.00",
	}
	for input, want := range cases {
		got := RoundCents(decimal.RequireFromString(input))
		if got.StringFixed(2) != want {
			t.Fatalf("RoundCents(%s): expected %s, got %s", input, want, got)
		}
	}
}
