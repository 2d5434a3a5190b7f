package repository

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/nikolayk812/posadmin/internal/port"
)

type unitOfWork struct {
	pool *pgxpool.Pool
}

func NewUnitOfWork(pool *pgxpool.Pool) port.UnitOfWork {
	return &unitOfWork{pool: pool}
}

func (u *unitOfWork) Do(ctx context.Context, fn func(orders port.OrderRepository, products port.ProductRepository) error) error {
	return InTx(ctx, u.pool, func(tx pgx.Tx) error {
		return fn(NewOrderWithTx(tx), NewProductWithTx(tx))
	})
}
