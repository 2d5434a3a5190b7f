package api

import (
	"context"
	"net/http"
	"time"

	"github.com/danielgtaylor/huma/v2"
	"github.com/nikolayk812/posadmin/internal/domain"
	"github.com/samber/lo"
	"github.com/shopspring/decimal"
)

type DashboardBody struct {
	GeneratedAt time.Time `json:"generated_at"`
	Currency    string    `json:"currency"`
	MonthName   string    `json:"month_name"`

	TotalAmount Amount `json:"total_amount"`
	TotalSales  int64  `json:"total_sales"`

	TodayAmount Amount `json:"today_amount"`
	TodaySales  int64  `json:"today_sales"`

	MonthAmount Amount `json:"month_amount" doc:"Filtered by the current day, equal to today_amount"`
	MonthSales  int64  `json:"month_sales" doc:"Filtered by the current day, equal to today_sales"`

	CalendarMonthAmount Amount `json:"calendar_month_amount"`
	CalendarMonthSales  int64  `json:"calendar_month_sales"`

	Days        []int       `json:"days"`
	ChartSales  []int64     `json:"chart_sales"`
	ChartIncome []Amount    `json:"chart_income"`
	Recent      []OrderBody `json:"orders_recent"`
}

type ResponseDashboard struct {
	Body DashboardBody
}

type DashboardResource struct {
	dashboard DashboardProvider
	api       huma.API
}

func NewDashboardResource(dashboard DashboardProvider, api huma.API) *DashboardResource {
	return &DashboardResource{dashboard: dashboard, api: api}
}

func (rs *DashboardResource) Register() {
	huma.Register(rs.api, huma.Operation{
		OperationID: "dashboard-get",
		Summary:     "Sales dashboard of the current month",
		Method:      http.MethodGet,
		Path:        "/dashboard",
		Tags:        []string{"Dashboard"},
	}, rs.Get)
}

// Get handles GET /dashboard
func (rs *DashboardResource) Get(ctx context.Context, _ *struct{}) (*ResponseDashboard, error) {
	d, err := rs.dashboard.Dashboard(ctx)
	if err != nil {
		return nil, SchemaError(ctx, err)
	}

	return &ResponseDashboard{Body: DashboardBody{
		GeneratedAt: d.GeneratedAt,
		Currency:    d.Total.Currency.String(),
		MonthName:   d.MonthName,

		TotalAmount: NewAmount(d.Total.Amount),
		TotalSales:  d.Sales,

		TodayAmount: NewAmount(d.Today.Amount),
		TodaySales:  d.TodaySales,

		MonthAmount: NewAmount(d.Month.Amount),
		MonthSales:  d.MonthSales,

		CalendarMonthAmount: NewAmount(d.CalendarMonth.Amount),
		CalendarMonthSales:  d.CalendarMonthSales,

		Days:        d.Days,
		ChartSales:  d.ChartSales,
		ChartIncome: lo.Map(d.ChartIncome, func(a decimal.Decimal, _ int) Amount { return NewAmount(a) }),
		Recent:      lo.Map(d.Recent, func(o domain.Order, _ int) OrderBody { return mapDomainOrderToBody(o) }),
	}}, nil
}
