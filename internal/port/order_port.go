package port

import (
	"context"

	"github.com/google/uuid"
	"github.com/nikolayk812/posadmin/internal/domain"
)

type OrderRepository interface {
	// GetOrder returns the order together with its cart lines.
	GetOrder(ctx context.Context, orderID uuid.UUID) (domain.Order, error)

	// SearchOrders returns orders without their cart lines, newest first.
	SearchOrders(ctx context.Context, filter domain.OrderFilter) (domain.PageResult[domain.Order], error)

	// InsertOrder inserts the order header and the cart lines it carries, if any.
	InsertOrder(ctx context.Context, order domain.Order) (uuid.UUID, error)
	InsertCartLine(ctx context.Context, line domain.CartLine) (domain.CartLine, error)

	// DeleteOrder deletes the order and its cart lines.
	DeleteOrder(ctx context.Context, orderID uuid.UUID) error

	// LockIdempotencyKey serializes transactions using the same key until they end.
	LockIdempotencyKey(ctx context.Context, key string) error
	GetIdempotencyKey(ctx context.Context, key string) (uuid.UUID, error)
	InsertIdempotencyKey(ctx context.Context, key string, orderID uuid.UUID) error
}
