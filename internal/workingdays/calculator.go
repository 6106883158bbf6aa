package workingdays

import (
	"net/http"
	"time"

	"github.com/shopspring/decimal"

	"go-leavehub/internal/shared/apperror"
)

type DurationType string

const (
	DurationFullDay    DurationType = "full_day"
	DurationFirstHalf  DurationType = "first_half"
	DurationSecondHalf DurationType = "second_half"
)

var (
	ErrInvalidDurationType = apperror.New(
		apperror.CodeInvalidInput,
		"duration_type must be one of full_day, first_half, second_half",
		http.StatusBadRequest,
	)
	ErrHalfDayRange = apperror.New(
		apperror.CodeInvalidInput,
		"half-day leave must start and end on the same date",
		http.StatusBadRequest,
	)
)

var half = decimal.NewFromFloat(0.5)

//go:generate mockgen -source=calculator.go -destination=mock/calculator_mock.go -package=mock
type Calculator interface {
	// WorkingDays returns the day count an application consumes at
	// 0.5-day granularity. Weekends do not count.
	WorkingDays(start, end time.Time, durationType DurationType) (decimal.Decimal, error)
}

type weekdayCalculator struct{}

func NewCalculator() Calculator {
	return weekdayCalculator{}
}

func (weekdayCalculator) WorkingDays(start, end time.Time, durationType DurationType) (decimal.Decimal, error) {
	switch durationType {
	case DurationFullDay:
		return countWeekdays(start, end), nil
	case DurationFirstHalf, DurationSecondHalf:
		if !sameDate(start, end) {
			return decimal.Zero, ErrHalfDayRange
		}
		if isWeekend(start) {
			return decimal.Zero, nil
		}
		return half, nil
	default:
		return decimal.Zero, ErrInvalidDurationType
	}
}

func countWeekdays(start, end time.Time) decimal.Decimal {
	days := int64(0)
	for d := dateOf(start); !d.After(dateOf(end)); d = d.AddDate(0, 0, 1) {
		if !isWeekend(d) {
			days++
		}
	}
	return decimal.NewFromInt(days)
}

func isWeekend(t time.Time) bool {
	wd := t.Weekday()
	return wd == time.Saturday || wd == time.Sunday
}

func sameDate(a, b time.Time) bool {
	return dateOf(a).Equal(dateOf(b))
}

func dateOf(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}
