package workflow

import (
	"context"
	"fmt"
)

type RemoveOrder struct {
	orderKey string
}

func NewRemoveOrder(orderKey string) (RemoveOrder, error) {
	var s RemoveOrder

	if orderKey == "" {
		return s, fmt.Errorf("orderKey is empty")
	}

	return RemoveOrder{orderKey: orderKey}, nil
}

func (s RemoveOrder) Name() string {
	return "remove_order"
}

func (s RemoveOrder) Run(ctx context.Context, dataCtx *DataContext) error {
	order, ok := dataCtx.Order(s.orderKey)
	if !ok {
		return fmt.Errorf("order[%s] not found in data context", s.orderKey)
	}

	if err := dataCtx.Orders.DeleteOrder(ctx, order.ID); err != nil {
		return fmt.Errorf("Orders.DeleteOrder: %w", err)
	}

	return nil
}
