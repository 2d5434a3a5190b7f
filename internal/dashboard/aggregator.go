// Package dashboard computes the sales figures shown on the back-office dashboard.
package dashboard

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/nikolayk812/posadmin/internal/domain"
	"github.com/nikolayk812/posadmin/internal/port"
	"github.com/shopspring/decimal"
	"golang.org/x/sync/errgroup"
	"golang.org/x/text/currency"
)

const DefaultRecentOrders = 10

type Aggregator struct {
	sales    port.SalesRepository
	loc      *time.Location
	currency currency.Unit
	recent   int
	now      func() time.Time
}

type Option func(*Aggregator)

// WithLocation sets the time zone days and months are cut in.
func WithLocation(loc *time.Location) Option {
	return func(a *Aggregator) {
		if loc != nil {
			a.loc = loc
		}
	}
}

func WithCurrency(unit currency.Unit) Option {
	return func(a *Aggregator) {
		a.currency = unit
	}
}

func WithRecentOrders(n int) Option {
	return func(a *Aggregator) {
		a.recent = n
	}
}

func WithClock(now func() time.Time) Option {
	return func(a *Aggregator) {
		if now != nil {
			a.now = now
		}
	}
}

func NewAggregator(sales port.SalesRepository, opts ...Option) (*Aggregator, error) {
	if sales == nil {
		return nil, errors.New("sales repository is nil")
	}

	a := &Aggregator{
		sales:    sales,
		loc:      time.UTC,
		currency: currency.USD,
		recent:   DefaultRecentOrders,
		now:      time.Now,
	}

	for _, opt := range opts {
		opt(a)
	}

	return a, nil
}

// Dashboard computes the figures for the current moment. It reads only.
func (a *Aggregator) Dashboard(ctx context.Context) (domain.Dashboard, error) {
	now := a.now().In(a.loc)
	today := DayRange(now)
	month := MonthRange(now)

	var (
		total, todayTotal, monthTotal domain.SalesTotal
		daily                         []domain.DailySales
		recent                        []domain.Order
	)

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() (err error) {
		total, err = a.sales.SalesTotals(gctx, nil)
		return wrap("all time", err)
	})
	g.Go(func() (err error) {
		todayTotal, err = a.sales.SalesTotals(gctx, &today)
		return wrap("today", err)
	})
	g.Go(func() (err error) {
		monthTotal, err = a.sales.SalesTotals(gctx, &month)
		return wrap("month", err)
	})
	g.Go(func() (err error) {
		daily, err = a.sales.DailySales(gctx, month, a.loc)
		return wrap("daily", err)
	})
	g.Go(func() (err error) {
		recent, err = a.sales.RecentOrders(gctx, a.recent)
		return wrap("recent", err)
	})

	if err := g.Wait(); err != nil {
		return domain.Dashboard{}, fmt.Errorf("g.Wait: %w", err)
	}

	days, chartSales, chartIncome := Series(DaysInMonth(now.Year(), now.Month()), daily)

	return domain.Dashboard{
		GeneratedAt: now,
		MonthName:   now.Month().String(),

		Total: a.money(total.Amount),
		Sales: total.Count,

		Today:      a.money(todayTotal.Amount),
		TodaySales: todayTotal.Count,

		// legacy figure, filtered by the current day like Today
		Month:      a.money(todayTotal.Amount),
		MonthSales: todayTotal.Count,

		CalendarMonth:      a.money(monthTotal.Amount),
		CalendarMonthSales: monthTotal.Count,

		Days:        days,
		ChartSales:  chartSales,
		ChartIncome: chartIncome,

		Recent: recent,
	}, nil
}

func (a *Aggregator) money(amount decimal.Decimal) domain.Money {
	return domain.NewMoney(amount, a.currency)
}

func wrap(figure string, err error) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("%s: %w", figure, err)
}
