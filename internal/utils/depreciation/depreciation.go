// Package depreciation provides the straight-line depreciation and disposal
// arithmetic used by the asset service. All functions are pure and
// deterministic: identical inputs always produce identical decimals.
package depreciation

import (
	"time"

	"github.com/shopspring/decimal"
)

var (
	hundred = decimal.NewFromInt(100)
	twelve  = decimal.NewFromInt(12)
)

// MonthsBetween returns the number of whole calendar months between start and
// end, clamped at zero. Day-of-month is ignored: Jan 31 to Feb 1 counts as one
// month elapsed. Partial months are not prorated.
func MonthsBetween(start, end time.Time) int {
	months := (end.Year()-start.Year())*12 + int(end.Month()) - int(start.Month())
	if months < 0 {
		return 0
	}
	return months
}

// AccruedDepreciation computes straight-line depreciation accrued between
// purchaseDate and asOf at annualRatePct percent of cost per year, in whole
// months. The result is capped at cost; an asset never depreciates below zero
// net book value.
func AccruedDepreciation(cost, annualRatePct decimal.Decimal, purchaseDate, asOf time.Time) decimal.Decimal {
	monthlyRate := annualRatePct.Div(hundred).Div(twelve)
	months := decimal.NewFromInt(int64(MonthsBetween(purchaseDate, asOf)))
	total := cost.Mul(monthlyRate).Mul(months)
	if total.GreaterThan(cost) {
		return cost
	}
	return total
}

// NetBookValue returns cost minus accrued depreciation, floored at zero.
// Accrued depreciation beyond cost is ignored.
func NetBookValue(cost, accrued decimal.Decimal) decimal.Decimal {
	if accrued.GreaterThan(cost) {
		accrued = cost
	}
	nbv := cost.Sub(accrued)
	if nbv.IsNegative() {
		return decimal.Zero
	}
	return nbv
}

// GainOrLoss returns sellingPrice minus net book value. Positive means gain,
// negative means loss, zero means the asset sold exactly at book value.
func GainOrLoss(cost, accrued, sellingPrice decimal.Decimal) decimal.Decimal {
	return sellingPrice.Sub(NetBookValue(cost, accrued))
}
