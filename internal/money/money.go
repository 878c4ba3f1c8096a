// Package money centralizes currency rounding. Every value that becomes
// user-visible passes through Round2 exactly once.
package money

import "github.com/shopspring/decimal"

// Round2 rounds to two decimal places with round-half-up semantics.
func Round2(v float64) float64 {
	f, _ := decimal.NewFromFloat(v).Round(2).Float64()
	return f
}

// DivRound2 divides num by den and rounds the quotient to two decimal
// places, half-up. den must be non-zero; callers validate months >= 1
// before any division.
func DivRound2(num float64, den int) float64 {
	q := decimal.NewFromFloat(num).DivRound(decimal.NewFromInt(int64(den)), 2)
	f, _ := q.Float64()
	return f
}
