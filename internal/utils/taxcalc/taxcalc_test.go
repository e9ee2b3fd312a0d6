package taxcalc_test

import (
	"testing"

	"github.com/fintally/fintally_backend/internal/core/domain"
	"github.com/fintally/fintally_backend/internal/utils/taxcalc"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

var flat27 = decimal.RequireFromString("0.27")

func twoBrackets() []domain.TaxBracket {
	return []domain.TaxBracket{
		{Threshold: decimal.NewFromInt(100000), Rate: decimal.RequireFromString("0.18")},
		{Threshold: decimal.NewFromInt(500000), Rate: decimal.RequireFromString("0.28")},
	}
}

func TestComputeBracketedTax(t *testing.T) {
	tests := []struct {
		name     string
		income   int64
		brackets []domain.TaxBracket
		want     string
	}{
		{"income inside second bracket", 300000, twoBrackets(), "74000"},
		{"income inside first bracket", 50000, twoBrackets(), "9000"},
		{"income exactly at first threshold", 100000, twoBrackets(), "18000"},
		{"income above top threshold taxed at top rate", 600000, twoBrackets(), "158000"},
		{"empty schedule falls back to flat rate", 100000, nil, "27000"},
		{"negative income short-circuits to zero", -5000, twoBrackets(), "0"},
		{"zero income yields zero", 0, twoBrackets(), "0"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := taxcalc.ComputeBracketedTax(decimal.NewFromInt(tt.income), tt.brackets, flat27)
			assert.True(t, got.Equal(decimal.RequireFromString(tt.want)), "got %s want %s", got, tt.want)
		})
	}
}

func TestComputeBracketedTaxUnsortedInput(t *testing.T) {
	brackets := []domain.TaxBracket{
		{Threshold: decimal.NewFromInt(500000), Rate: decimal.RequireFromString("0.28")},
		{Threshold: decimal.NewFromInt(100000), Rate: decimal.RequireFromString("0.18")},
	}
	got := taxcalc.ComputeBracketedTax(decimal.NewFromInt(300000), brackets, flat27)
	assert.True(t, got.Equal(decimal.NewFromInt(74000)), "got %s", got)
}

func TestComputeBracketedTaxMalformedSchedule(t *testing.T) {
	brackets := []domain.TaxBracket{
		{Threshold: decimal.NewFromInt(-100), Rate: decimal.RequireFromString("0.18")},
	}
	got := taxcalc.ComputeBracketedTax(decimal.NewFromInt(1000), brackets, flat27)
	assert.True(t, got.Equal(decimal.NewFromInt(270)), "got %s", got)
}

// The schedule must be continuous at bracket boundaries and monotonic in
// income: a raise never lowers the total tax bill.
func TestComputeBracketedTaxContinuityAndMonotonicity(t *testing.T) {
	brackets := twoBrackets()

	atThreshold := taxcalc.ComputeBracketedTax(decimal.NewFromInt(100000), brackets, flat27)
	justAbove := taxcalc.ComputeBracketedTax(decimal.RequireFromString("100000.01"), brackets, flat27)
	diff := justAbove.Sub(atThreshold)
	assert.True(t, diff.LessThan(decimal.NewFromInt(1)), "discontinuity at threshold: %s", diff)
	assert.True(t, diff.GreaterThanOrEqual(decimal.Zero))

	prev := decimal.Zero
	for income := int64(0); income <= 700000; income += 25000 {
		tax := taxcalc.ComputeBracketedTax(decimal.NewFromInt(income), brackets, flat27)
		assert.True(t, tax.GreaterThanOrEqual(prev), "tax decreased at income %d", income)
		prev = tax
	}
}
