package dashboard_test

import (
	"testing"
	"time"

	"github.com/nikolayk812/posadmin/internal/dashboard"
	"github.com/nikolayk812/posadmin/internal/domain"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDaysInMonth(t *testing.T) {
	tests := []struct {
		year  int
		month time.Month
		want  int
	}{
		{2024, time.February, 29},
		{2026, time.February, 28},
		{1900, time.February, 28},
		{2000, time.February, 29},
		{2026, time.April, 30},
		{2026, time.December, 31},
		{2026, time.January, 31},
	}

	for _, tt := range tests {
		t.Run(tt.month.String(), func(t *testing.T) {
			assert.Equal(t, tt.want, dashboard.DaysInMonth(tt.year, tt.month))
		})
	}
}

func TestMonthRange(t *testing.T) {
	loc, err := time.LoadLocation("Asia/Tehran")
	require.NoError(t, err)

	now := time.Date(2026, time.December, 31, 23, 30, 0, 0, loc)

	r := dashboard.MonthRange(now)
	require.NotNil(t, r.After)
	require.NotNil(t, r.Before)

	assert.True(t, r.After.Equal(time.Date(2026, time.December, 1, 0, 0, 0, 0, loc)))
	assert.True(t, r.Before.Equal(time.Date(2027, time.January, 1, 0, 0, 0, 0, loc)))
}

func TestDayRange(t *testing.T) {
	now := time.Date(2026, time.March, 5, 14, 0, 0, 0, time.UTC)

	r := dashboard.DayRange(now)
	require.NoError(t, r.Validate())

	assert.True(t, r.After.Equal(time.Date(2026, time.March, 5, 0, 0, 0, 0, time.UTC)))
	assert.True(t, r.Before.Equal(time.Date(2026, time.March, 6, 0, 0, 0, 0, time.UTC)))
}

func TestSeries(t *testing.T) {
	daily := []domain.DailySales{
		{Day: 1, SalesTotal: domain.SalesTotal{Amount: decimal.NewFromInt(100), Count: 2}},
		{Day: 3, SalesTotal: domain.SalesTotal{Amount: decimal.RequireFromString("7.5"), Count: 1}},
		{Day: 31, SalesTotal: domain.SalesTotal{Amount: decimal.NewFromInt(9), Count: 9}},
	}

	days, counts, income := dashboard.Series(30, daily)

	require.Len(t, days, 30)
	require.Len(t, counts, 30)
	require.Len(t, income, 30)

	assert.Equal(t, 1, days[0])
	assert.Equal(t, 30, days[29])

	assert.Equal(t, []int64{2, 0, 1}, counts[:3])
	assert.True(t, decimal.NewFromInt(100).Equal(income[0]))
	assert.True(t, income[1].IsZero())
	assert.True(t, decimal.RequireFromString("7.5").Equal(income[2]))

	var total int64
	for _, c := range counts {
		total += c
	}
	assert.Equal(t, int64(3), total)
}
