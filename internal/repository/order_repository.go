package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/nikolayk812/posadmin/internal/db"
	"github.com/nikolayk812/posadmin/internal/domain"
	"github.com/nikolayk812/posadmin/internal/port"
	"github.com/samber/lo"
)

type orderRepository struct {
	q    *db.Queries
	dbtx db.DBTX
}

func NewOrder(pool *pgxpool.Pool) port.OrderRepository {
	return &orderRepository{
		q:    db.New(pool),
		dbtx: pool,
	}
}

func NewOrderWithTx(tx pgx.Tx) port.OrderRepository {
	return &orderRepository{
		q:    db.New(tx),
		dbtx: tx, // use provided transaction instead
	}
}

func (r *orderRepository) GetOrder(ctx context.Context, orderID uuid.UUID) (domain.Order, error) {
	var o domain.Order

	order, err := withQueries(ctx, r.dbtx, func(q *db.Queries) (domain.Order, error) {
		dbOrder, err := q.GetOrder(ctx, orderID)
		if err != nil {
			return o, fmt.Errorf("q.GetOrder: %w", notFoundIfNoRows(err))
		}

		dbCartLines, err := q.GetCartLines(ctx, orderID)
		if err != nil {
			return o, fmt.Errorf("q.GetCartLines: %w", err)
		}

		domainOrder := mapDBOrderToDomain(dbOrder)
		domainOrder.Lines = lo.Map(dbCartLines, func(row db.GetCartLinesRow, _ int) domain.CartLine {
			return mapGetCartLinesRowToDomain(row)
		})

		return domainOrder, nil
	})
	if err != nil {
		return o, fmt.Errorf("withQueries: %w", err)
	}

	return order, nil
}

func (r *orderRepository) SearchOrders(ctx context.Context, filter domain.OrderFilter) (domain.PageResult[domain.Order], error) {
	var result domain.PageResult[domain.Order]

	if err := filter.Validate(); err != nil {
		return result, fmt.Errorf("filter.Validate: %w", err)
	}

	page := filter.Page.Normalize()
	countArg := mapDomainOrderFilterToDBFilter(filter)

	total, err := r.q.CountOrders(ctx, countArg)
	if err != nil {
		return result, fmt.Errorf("q.CountOrders: %w", err)
	}

	dbOrders, err := r.q.SearchOrders(ctx, db.SearchOrdersParams{
		CustomerName:  countArg.CustomerName,
		CreatedAfter:  countArg.CreatedAfter,
		CreatedBefore: countArg.CreatedBefore,
		Limit:         page.Limit(),
		Offset:        page.Offset(),
	})
	if err != nil {
		return result, fmt.Errorf("q.SearchOrders: %w", err)
	}

	return domain.PageResult[domain.Order]{
		Items:    lo.Map(dbOrders, func(o db.Order, _ int) domain.Order { return mapDBOrderToDomain(o) }),
		Total:    total,
		Page:     page.Number,
		PageSize: page.Size,
	}, nil
}

func (r *orderRepository) InsertOrder(ctx context.Context, order domain.Order) (uuid.UUID, error) {
	orderID, err := withQueries(ctx, r.dbtx, func(q *db.Queries) (uuid.UUID, error) {
		row, err := q.InsertOrder(ctx, db.InsertOrderParams{
			CustomerName: order.CustomerName,
			Total:        order.Total,
			Paid:         order.Paid,
			Remaining:    order.Remaining,
		})
		if err != nil {
			return uuid.Nil, fmt.Errorf("q.InsertOrder: %w", err)
		}

		// TODO: batch
		for _, line := range order.Lines {
			if _, err := q.InsertCartLine(ctx, db.InsertCartLineParams{
				OrderID:   row.ID,
				ProductID: line.ProductID,
				Quantity:  line.Quantity,
				UnitPrice: line.UnitPrice,
			}); err != nil {
				return uuid.Nil, fmt.Errorf("q.InsertCartLine: %w", err)
			}
		}

		return row.ID, nil
	})
	if err != nil {
		return uuid.Nil, fmt.Errorf("withQueries: %w", err)
	}

	return orderID, nil
}

func (r *orderRepository) InsertCartLine(ctx context.Context, line domain.CartLine) (domain.CartLine, error) {
	if line.OrderID == uuid.Nil {
		return line, fmt.Errorf("orderID is empty")
	}

	row, err := r.q.InsertCartLine(ctx, db.InsertCartLineParams{
		OrderID:   line.OrderID,
		ProductID: line.ProductID,
		Quantity:  line.Quantity,
		UnitPrice: line.UnitPrice,
	})
	if err != nil {
		return line, fmt.Errorf("q.InsertCartLine: %w", err)
	}

	line.ID = row.ID
	line.CreatedAt = row.CreatedAt

	return line, nil
}

func (r *orderRepository) DeleteOrder(ctx context.Context, orderID uuid.UUID) error {
	if orderID == uuid.Nil {
		return fmt.Errorf("orderID is empty")
	}

	if _, err := withQueries(ctx, r.dbtx, func(q *db.Queries) (struct{}, error) {
		if _, err := q.DeleteCartLines(ctx, orderID); err != nil {
			return struct{}{}, fmt.Errorf("q.DeleteCartLines: %w", err)
		}

		cmdTag, err := q.DeleteOrder(ctx, orderID)
		if err != nil {
			return struct{}{}, fmt.Errorf("q.DeleteOrder: %w", err)
		}

		if cmdTag.RowsAffected() == 0 {
			return struct{}{}, fmt.Errorf("q.DeleteOrder: %w", domain.ErrNotFound)
		}

		return struct{}{}, nil
	}); err != nil {
		return fmt.Errorf("withQueries: %w", err)
	}

	return nil
}

func (r *orderRepository) LockIdempotencyKey(ctx context.Context, key string) error {
	if _, ok := r.dbtx.(pgx.Tx); !ok {
		return errors.New("LockIdempotencyKey requires a transaction")
	}

	if err := r.q.LockIdempotencyKey(ctx, key); err != nil {
		return fmt.Errorf("q.LockIdempotencyKey: %w", err)
	}

	return nil
}

func (r *orderRepository) GetIdempotencyKey(ctx context.Context, key string) (uuid.UUID, error) {
	orderID, err := r.q.GetIdempotencyKey(ctx, key)
	if err != nil {
		return uuid.Nil, fmt.Errorf("q.GetIdempotencyKey: %w", notFoundIfNoRows(err))
	}

	return orderID, nil
}

func (r *orderRepository) InsertIdempotencyKey(ctx context.Context, key string, orderID uuid.UUID) error {
	if key == "" {
		return errors.New("key is empty")
	}

	if err := r.q.InsertIdempotencyKey(ctx, db.InsertIdempotencyKeyParams{
		Key:     key,
		OrderID: orderID,
	}); err != nil {
		return fmt.Errorf("q.InsertIdempotencyKey: %w", err)
	}

	return nil
}

func mapDomainOrderFilterToDBFilter(filter domain.OrderFilter) db.CountOrdersParams {
	arg := db.CountOrdersParams{
		CustomerName: lo.EmptyableToPtr(filter.CustomerName),
	}

	if filter.CreatedAt != nil {
		arg.CreatedAfter = filter.CreatedAt.After
		arg.CreatedBefore = filter.CreatedAt.Before
	}

	return arg
}

func mapDBOrderToDomain(o db.Order) domain.Order {
	return domain.Order{
		ID:           o.ID,
		CustomerName: o.CustomerName,
		Total:        o.Total,
		Paid:         o.Paid,
		Remaining:    o.Remaining,
		CreatedAt:    o.CreatedAt,
	}
}

func mapGetCartLinesRowToDomain(row db.GetCartLinesRow) domain.CartLine {
	return domain.CartLine{
		ID:          row.ID,
		OrderID:     row.OrderID,
		ProductID:   row.ProductID,
		ProductName: row.ProductName,
		Quantity:    row.Quantity,
		UnitPrice:   row.UnitPrice,
		CreatedAt:   row.CreatedAt,
	}
}
