package workflow

import (
	"context"
	"fmt"

	"github.com/nikolayk812/posadmin/internal/domain"
	"github.com/nikolayk812/posadmin/internal/ledger"
)

type ReverseLines struct {
	orderKey string
	pricing  domain.ReversalPricing
}

func NewReverseLines(orderKey string, pricing domain.ReversalPricing) (ReverseLines, error) {
	var s ReverseLines

	if orderKey == "" {
		return s, fmt.Errorf("orderKey is empty")
	}
	if _, err := domain.ToReversalPricing(string(pricing)); err != nil {
		return s, fmt.Errorf("pricing[%s]: %w", pricing, err)
	}

	return ReverseLines{
		orderKey: orderKey,
		pricing:  pricing,
	}, nil
}

func (s ReverseLines) Name() string {
	return "reverse_lines"
}

func (s ReverseLines) Run(ctx context.Context, dataCtx *DataContext) error {
	order, ok := dataCtx.Order(s.orderKey)
	if !ok {
		return fmt.Errorf("order[%s] not found in data context", s.orderKey)
	}

	for idx, line := range order.Lines {
		product, ok := dataCtx.Product(line.ProductID)
		if !ok {
			return fmt.Errorf("line[%d]: product[%s] is not locked", idx, line.ProductID)
		}

		unitPrice := ledger.ReversalPrice(s.pricing, product, line)

		product, err := dataCtx.Ledger.Reverse(ctx, product, line.Quantity, unitPrice)
		if err != nil {
			return fmt.Errorf("line[%d]: Ledger.Reverse: %w", idx, err)
		}
		dataCtx.SetProduct(product)
	}

	return nil
}
