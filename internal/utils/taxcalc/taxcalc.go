// Package taxcalc holds the pure tax arithmetic shared by the tax service.
package taxcalc

import (
	"sort"

	"github.com/fintally/fintally_backend/internal/core/domain"
	"github.com/shopspring/decimal"
)

// ComputeBracketedTax applies a progressive marginal-rate schedule to income.
//
// Brackets are walked in ascending threshold order; the slice of income between
// consecutive thresholds is taxed at that bracket's rate, and income above the
// top threshold is taxed at the top bracket's rate. Negative income yields zero
// tax. An empty or malformed schedule falls back to income * fallbackRate.
func ComputeBracketedTax(income decimal.Decimal, brackets []domain.TaxBracket, fallbackRate decimal.Decimal) decimal.Decimal {
	if income.LessThanOrEqual(decimal.Zero) {
		return decimal.Zero
	}
	if !validSchedule(brackets) {
		return income.Mul(fallbackRate)
	}

	sorted := make([]domain.TaxBracket, len(brackets))
	copy(sorted, brackets)
	sort.Slice(sorted, func(i, j int) bool {
		return sorted[i].Threshold.LessThan(sorted[j].Threshold)
	})

	tax := decimal.Zero
	prevThreshold := decimal.Zero
	for _, b := range sorted {
		if income.LessThanOrEqual(b.Threshold) {
			// Top marginal bracket for this income.
			return tax.Add(income.Sub(prevThreshold).Mul(b.Rate))
		}
		tax = tax.Add(b.Threshold.Sub(prevThreshold).Mul(b.Rate))
		prevThreshold = b.Threshold
	}

	// Income above every threshold is taxed at the top bracket's rate.
	top := sorted[len(sorted)-1]
	return tax.Add(income.Sub(top.Threshold).Mul(top.Rate))
}

func validSchedule(brackets []domain.TaxBracket) bool {
	if len(brackets) == 0 {
		return false
	}
	for _, b := range brackets {
		if b.Threshold.LessThanOrEqual(decimal.Zero) || b.Rate.IsNegative() {
			return false
		}
	}
	return true
}
