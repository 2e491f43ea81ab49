// Package money centralizes monetary rounding so repeated ledger
// recomputation cannot accumulate floating-point drift.
package money

import "github.com/shopspring/decimal"

// Round rounds a monetary value half-up to the nearest cent.
func Round(v float64) float64 {
	f, _ := decimal.NewFromFloat(v).Round(2).Float64()
	return f
}

// Line computes a rounded line total for quantity * unitPrice.
func Line(quantity int, unitPrice float64) float64 {
	f, _ := decimal.NewFromFloat(unitPrice).
		Mul(decimal.NewFromInt(int64(quantity))).
		Round(2).
		Float64()
	return f
}

// Max0 clamps negative derived totals to zero before rounding.
func Max0(v float64) float64 {
	if v < 0 {
		return 0
	}
	return v
}
