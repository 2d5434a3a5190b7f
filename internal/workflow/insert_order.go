package workflow

import (
	"context"
	"fmt"

	"github.com/nikolayk812/posadmin/internal/domain"
	"github.com/shopspring/decimal"
)

type InsertOrder struct {
	customerName string
	total        decimal.Decimal
	orderKey     string
}

func NewInsertOrder(customerName string, total decimal.Decimal, orderKey string) (InsertOrder, error) {
	var s InsertOrder

	if customerName == "" {
		return s, fmt.Errorf("customerName is empty")
	}
	if orderKey == "" {
		return s, fmt.Errorf("orderKey is empty")
	}

	return InsertOrder{
		customerName: customerName,
		total:        total,
		orderKey:     orderKey,
	}, nil
}

func (s InsertOrder) Name() string {
	return "insert_order"
}

func (s InsertOrder) Run(ctx context.Context, dataCtx *DataContext) error {
	order := domain.NewPaidOrder(s.customerName, s.total)

	orderID, err := dataCtx.Orders.InsertOrder(ctx, order)
	if err != nil {
		return fmt.Errorf("Orders.InsertOrder: %w", err)
	}

	order.ID = orderID
	dataCtx.SetOrder(s.orderKey, order)

	return nil
}
