package workflow

import (
	"context"
	"fmt"
)

type RecordIdempotencyKey struct {
	key      string
	orderKey string
}

func NewRecordIdempotencyKey(key, orderKey string) (RecordIdempotencyKey, error) {
	var s RecordIdempotencyKey

	if key == "" {
		return s, fmt.Errorf("key is empty")
	}
	if orderKey == "" {
		return s, fmt.Errorf("orderKey is empty")
	}

	return RecordIdempotencyKey{
		key:      key,
		orderKey: orderKey,
	}, nil
}

func (s RecordIdempotencyKey) Name() string {
	return "record_idempotency_key"
}

func (s RecordIdempotencyKey) Run(ctx context.Context, dataCtx *DataContext) error {
	order, ok := dataCtx.Order(s.orderKey)
	if !ok {
		return fmt.Errorf("order[%s] not found in data context", s.orderKey)
	}

	if err := dataCtx.Orders.InsertIdempotencyKey(ctx, s.key, order.ID); err != nil {
		return fmt.Errorf("Orders.InsertIdempotencyKey: %w", err)
	}

	return nil
}
