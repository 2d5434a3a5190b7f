package port

import (
	"context"
	"time"

	"github.com/nikolayk812/posadmin/internal/domain"
)

// SalesRepository is the read side used by the dashboard.
type SalesRepository interface {
	// SalesTotals sums paid amounts of orders created within period, nil means all time.
	SalesTotals(ctx context.Context, period *domain.TimeRange) (domain.SalesTotal, error)

	// DailySales groups orders created within period by day of month in loc.
	DailySales(ctx context.Context, period domain.TimeRange, loc *time.Location) ([]domain.DailySales, error)

	RecentOrders(ctx context.Context, limit int) ([]domain.Order, error)
}
