package depreciation_test

import (
	"testing"
	"time"

	"github.com/fintally/fintally_backend/internal/utils/depreciation"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestMonthsBetween(t *testing.T) {
	tests := []struct {
		name  string
		start time.Time
		end   time.Time
		want  int
	}{
		{"mid month to mid month", date(2024, time.January, 15), date(2024, time.June, 10), 5},
		{"same month", date(2024, time.March, 1), date(2024, time.March, 31), 0},
		{"day of month ignored", date(2024, time.January, 31), date(2024, time.February, 1), 1},
		{"across years", date(2020, time.November, 5), date(2022, time.February, 5), 15},
		{"end before start clamps to zero", date(2024, time.June, 1), date(2024, time.January, 1), 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, depreciation.MonthsBetween(tt.start, tt.end))
		})
	}
}

func TestAccruedDepreciation(t *testing.T) {
	twelvePct := decimal.NewFromInt(12)

	t.Run("six months at 12 percent", func(t *testing.T) {
		got := depreciation.AccruedDepreciation(
			decimal.NewFromInt(10000), twelvePct,
			date(2024, time.January, 1), date(2024, time.July, 1),
		)
		assert.True(t, got.Equal(decimal.NewFromInt(600)), "got %s", got)
	})

	t.Run("capped at cost after full life", func(t *testing.T) {
		got := depreciation.AccruedDepreciation(
			decimal.NewFromInt(1000), twelvePct,
			date(2020, time.January, 1), date(2030, time.January, 1),
		)
		assert.True(t, got.Equal(decimal.NewFromInt(1000)), "got %s", got)
	})

	t.Run("zero months accrues nothing", func(t *testing.T) {
		got := depreciation.AccruedDepreciation(
			decimal.NewFromInt(5000), twelvePct,
			date(2024, time.May, 1), date(2024, time.May, 20),
		)
		assert.True(t, got.IsZero(), "got %s", got)
	})

	t.Run("monotonic non-decreasing in end date and never above cost", func(t *testing.T) {
		cost := decimal.NewFromInt(7500)
		start := date(2021, time.March, 1)
		prev := decimal.Zero
		for m := 0; m < 160; m += 7 {
			end := start.AddDate(0, m, 0)
			got := depreciation.AccruedDepreciation(cost, twelvePct, start, end)
			assert.True(t, got.GreaterThanOrEqual(prev), "decreased at month %d", m)
			assert.True(t, got.LessThanOrEqual(cost), "exceeded cost at month %d", m)
			prev = got
		}
	})
}

func TestGainOrLoss(t *testing.T) {
	t.Run("selling above book value is a gain", func(t *testing.T) {
		got := depreciation.GainOrLoss(
			decimal.NewFromInt(10000), decimal.NewFromInt(600), decimal.NewFromInt(9500),
		)
		assert.True(t, got.Equal(decimal.NewFromInt(100)), "got %s", got)
	})

	t.Run("selling below book value is a loss", func(t *testing.T) {
		got := depreciation.GainOrLoss(
			decimal.NewFromInt(10000), decimal.NewFromInt(600), decimal.NewFromInt(9000),
		)
		assert.True(t, got.Equal(decimal.NewFromInt(-400)), "got %s", got)
	})

	t.Run("selling at book value is exactly zero", func(t *testing.T) {
		got := depreciation.GainOrLoss(
			decimal.NewFromInt(10000), decimal.NewFromInt(600), decimal.NewFromInt(9400),
		)
		assert.True(t, got.IsZero(), "got %s", got)
	})

	t.Run("over-depreciated asset floors book value at zero", func(t *testing.T) {
		got := depreciation.GainOrLoss(
			decimal.NewFromInt(1000), decimal.NewFromInt(2000), decimal.NewFromInt(300),
		)
		assert.True(t, got.Equal(decimal.NewFromInt(300)), "got %s", got)
	})
}
