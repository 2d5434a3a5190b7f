package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// SalesTotal is the paid sum and the number of orders of some period.
type SalesTotal struct {
	Amount decimal.Decimal
	Count  int64
}

// DailySales is the SalesTotal of a single day of a month.
type DailySales struct {
	Day int
	SalesTotal
}

type Dashboard struct {
	GeneratedAt time.Time
	MonthName   string

	Total Money
	Sales int64

	Today      Money
	TodaySales int64

	// Month reproduces the legacy figure, which is filtered by the current day
	// and is therefore always equal to Today.
	Month      Money
	MonthSales int64

	// CalendarMonth covers every order of the current month.
	CalendarMonth      Money
	CalendarMonthSales int64

	// Days, ChartSales and ChartIncome are aligned, one entry per day of the current month.
	Days        []int
	ChartSales  []int64
	ChartIncome []decimal.Decimal

	Recent []Order
}
