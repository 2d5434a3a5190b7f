package workflow

import (
	"context"
	"fmt"

	"github.com/google/uuid"
)

type LoadOrder struct {
	orderID  uuid.UUID
	orderKey string
}

func NewLoadOrder(orderID uuid.UUID, orderKey string) (LoadOrder, error) {
	var s LoadOrder

	if orderID == uuid.Nil {
		return s, fmt.Errorf("orderID is empty")
	}
	if orderKey == "" {
		return s, fmt.Errorf("orderKey is empty")
	}

	return LoadOrder{
		orderID:  orderID,
		orderKey: orderKey,
	}, nil
}

func (s LoadOrder) Name() string {
	return "load_order"
}

func (s LoadOrder) Run(ctx context.Context, dataCtx *DataContext) error {
	order, err := dataCtx.Orders.GetOrder(ctx, s.orderID)
	if err != nil {
		return fmt.Errorf("Orders.GetOrder: %w", err)
	}

	dataCtx.SetOrder(s.orderKey, order)

	return nil
}
