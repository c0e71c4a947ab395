package projection

import (
	"math"

	"github.com/shopspring/decimal"
)

var hundred = decimal.NewFromInt(100)

// Round2 rounds to cents, half away from zero, on the decimal representation
// of v rather than on its binary approximation.
func Round2(v float64) float64 {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return v
	}
	return decimal.NewFromFloat(v).Round(2).InexactFloat64()
}

// Sum adds amounts without accumulating float drift.
func Sum(values ...float64) float64 {
	total := decimal.Zero
	for _, v := range values {
		total = total.Add(decimal.NewFromFloat(v))
	}
	return total.Round(2).InexactFloat64()
}

// Percent returns part/whole*100 rounded to cents, or 0 when whole is zero.
func Percent(part, whole float64) float64 {
	if whole == 0 {
		return 0
	}
	p := decimal.NewFromFloat(part).Div(decimal.NewFromFloat(whole)).Mul(hundred)
	return p.Round(2).InexactFloat64()
}

func finite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}

func validateAmount(field string, v float64) error {
	if !finite(v) || v <= 0 {
		return invalid(field, v, ErrInvalidAmount)
	}
	return nil
}

func validateRate(v float64) error {
	if !finite(v) || v < 0 || v > 100 {
		return invalid("annualRatePercent", v, ErrInvalidRate)
	}
	return nil
}
