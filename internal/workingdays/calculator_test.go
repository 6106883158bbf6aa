package workingdays_test

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	"go-leavehub/internal/workingdays"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func decimalFromInt(n int64) decimal.Decimal {
	return decimal.NewFromInt(n)
}

func TestCalculator_WorkingDays(t *testing.T) {
	calc := workingdays.NewCalculator()

	t.Run("success full week excludes weekend", func(t *testing.T) {
		// Mon 2025-06-02 .. Sun 2025-06-08
		got, err := calc.WorkingDays(date(2025, 6, 2), date(2025, 6, 8), workingdays.DurationFullDay)
		assert.NoError(t, err)
		assert.True(t, got.Equal(decimalFromInt(5)), "got %s", got)
	})

	t.Run("success single weekday", func(t *testing.T) {
		got, err := calc.WorkingDays(date(2025, 6, 4), date(2025, 6, 4), workingdays.DurationFullDay)
		assert.NoError(t, err)
		assert.True(t, got.Equal(decimalFromInt(1)))
	})

	t.Run("success range spanning two weekends", func(t *testing.T) {
		// Fri 2025-06-06 .. Mon 2025-06-16
		got, err := calc.WorkingDays(date(2025, 6, 6), date(2025, 6, 16), workingdays.DurationFullDay)
		assert.NoError(t, err)
		assert.True(t, got.Equal(decimalFromInt(7)), "got %s", got)
	})

	t.Run("success first half single day", func(t *testing.T) {
		got, err := calc.WorkingDays(date(2025, 6, 4), date(2025, 6, 4), workingdays.DurationFirstHalf)
		assert.NoError(t, err)
		assert.Equal(t, "0.5", got.String())
	})

	t.Run("success second half on weekend counts zero", func(t *testing.T) {
		got, err := calc.WorkingDays(date(2025, 6, 7), date(2025, 6, 7), workingdays.DurationSecondHalf)
		assert.NoError(t, err)
		assert.True(t, got.IsZero())
	})

	t.Run("negative half day over multi-day range", func(t *testing.T) {
		_, err := calc.WorkingDays(date(2025, 6, 2), date(2025, 6, 3), workingdays.DurationFirstHalf)
		assert.ErrorIs(t, err, workingdays.ErrHalfDayRange)
	})

	t.Run("negative unknown duration type", func(t *testing.T) {
		_, err := calc.WorkingDays(date(2025, 6, 2), date(2025, 6, 3), workingdays.DurationType("quarter_day"))
		assert.ErrorIs(t, err, workingdays.ErrInvalidDurationType)
	})
}
