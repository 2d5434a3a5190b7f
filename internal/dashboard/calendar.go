package dashboard

import (
	"time"

	"github.com/nikolayk812/posadmin/internal/domain"
	"github.com/shopspring/decimal"
)

// DaysInMonth returns the number of days of month in year.
func DaysInMonth(year int, month time.Month) int {
	// day 0 of the next month is the last day of this one
	return time.Date(year, month+1, 0, 0, 0, 0, 0, time.UTC).Day()
}

// DayRange returns the half-open range covering the calendar day of t in t's location.
func DayRange(t time.Time) domain.TimeRange {
	start := time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
	end := start.AddDate(0, 0, 1)
	return domain.TimeRange{After: &start, Before: &end}
}

// MonthRange returns the half-open range covering the calendar month of t in t's location.
func MonthRange(t time.Time) domain.TimeRange {
	start := time.Date(t.Year(), t.Month(), 1, 0, 0, 0, 0, t.Location())
	end := start.AddDate(0, 1, 0)
	return domain.TimeRange{After: &start, Before: &end}
}

// Series spreads daily totals over the days 1..days. Days without sales get zeros, rows
// outside of the month are ignored.
func Series(days int, daily []domain.DailySales) ([]int, []int64, []decimal.Decimal) {
	dayNumbers := make([]int, days)
	counts := make([]int64, days)
	income := make([]decimal.Decimal, days)

	for i := range days {
		dayNumbers[i] = i + 1
		income[i] = decimal.Zero
	}

	for _, d := range daily {
		if d.Day < 1 || d.Day > days {
			continue
		}
		counts[d.Day-1] += d.Count
		income[d.Day-1] = income[d.Day-1].Add(d.Amount)
	}

	return dayNumbers, counts, income
}
