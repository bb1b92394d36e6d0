package analysis

import (
	"math"

	"github.com/shopspring/decimal"
)

// Roundings run in decimal so that inputs such as 1000 × (1 - 0.08) land on
// 920 instead of 920.0000000000001 before the ceiling is taken.

var (
	maxWholeAmount = decimal.NewFromInt(math.MaxInt64)
	minWholeAmount = decimal.NewFromInt(math.MinInt64)
)

// dec converts f to decimal. Non-finite values map to zero: the evaluator
// rejects them when they are recorded, so a zero here only lets the failing
// category finish.
func dec(f float64) decimal.Decimal {
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return decimal.Zero
	}
	return decimal.NewFromFloat(f)
}

func product(f float64, factors ...float64) decimal.Decimal {
	d := dec(f)
	for _, x := range factors {
		d = d.Mul(dec(x))
	}
	return d
}

// ceilMul returns ceil(f × factors...).
func ceilMul(f float64, factors ...float64) decimal.Decimal {
	return product(f, factors...).Ceil()
}

// mul returns f × factors... without rounding.
func mul(f float64, factors ...float64) float64 {
	return product(f, factors...).InexactFloat64()
}

// complement returns 1 - rate.
func complement(rate float64) float64 {
	return decimal.NewFromInt(1).Sub(dec(rate)).InexactFloat64()
}

// sum adds amounts in decimal.
func sum(amounts ...float64) float64 {
	total := decimal.Zero
	for _, a := range amounts {
		total = total.Add(dec(a))
	}
	return total.InexactFloat64()
}

// ceilDiv and floorDiv expect a non-zero divisor; callers check it first.
func ceilDiv(f, divisor float64) decimal.Decimal {
	return dec(f).Div(dec(divisor)).Ceil()
}

func floorDiv(f, divisor float64) decimal.Decimal {
	return dec(f).Div(dec(divisor)).Floor()
}

// wholeAmount converts a rounded decimal to int64. It reports false when d
// has a fractional part or does not fit.
func wholeAmount(d decimal.Decimal) (int64, bool) {
	if !d.IsInteger() || d.GreaterThan(maxWholeAmount) || d.LessThan(minWholeAmount) {
		return 0, false
	}
	return d.IntPart(), true
}
