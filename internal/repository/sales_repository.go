package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/nikolayk812/posadmin/internal/db"
	"github.com/nikolayk812/posadmin/internal/domain"
	"github.com/nikolayk812/posadmin/internal/port"
	"github.com/samber/lo"
)

type salesRepository struct {
	q *db.Queries
}

func NewSales(pool *pgxpool.Pool) port.SalesRepository {
	return &salesRepository{
		q: db.New(pool),
	}
}

func (r *salesRepository) SalesTotals(ctx context.Context, period *domain.TimeRange) (domain.SalesTotal, error) {
	var arg db.SalesTotalsParams

	if period != nil {
		if err := period.Validate(); err != nil {
			return domain.SalesTotal{}, fmt.Errorf("period.Validate: %w", err)
		}
		arg.CreatedAfter = period.After
		arg.CreatedBefore = period.Before
	}

	row, err := r.q.SalesTotals(ctx, arg)
	if err != nil {
		return domain.SalesTotal{}, fmt.Errorf("q.SalesTotals: %w", err)
	}

	return domain.SalesTotal{Amount: row.Amount, Count: row.Count}, nil
}

func (r *salesRepository) DailySales(ctx context.Context, period domain.TimeRange, loc *time.Location) ([]domain.DailySales, error) {
	if period.After == nil || period.Before == nil {
		return nil, errors.Join(domain.ErrValidation, errors.New("period must be bounded"))
	}

	if loc == nil {
		loc = time.UTC
	}

	rows, err := r.q.DailySales(ctx, db.DailySalesParams{
		Tz:            loc.String(),
		CreatedAfter:  *period.After,
		CreatedBefore: *period.Before,
	})
	if err != nil {
		return nil, fmt.Errorf("q.DailySales: %w", err)
	}

	return lo.Map(rows, func(row db.DailySalesRow, _ int) domain.DailySales {
		return domain.DailySales{
			Day:        int(row.Day),
			SalesTotal: domain.SalesTotal{Amount: row.Amount, Count: row.Count},
		}
	}), nil
}

func (r *salesRepository) RecentOrders(ctx context.Context, limit int) ([]domain.Order, error) {
	if limit <= 0 {
		return nil, nil
	}

	dbOrders, err := r.q.RecentOrders(ctx, int32(limit))
	if err != nil {
		return nil, fmt.Errorf("q.RecentOrders: %w", err)
	}

	return lo.Map(dbOrders, func(o db.Order, _ int) domain.Order { return mapDBOrderToDomain(o) }), nil
}
