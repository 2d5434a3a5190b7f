package workflow

import (
	"context"
	"fmt"

	"github.com/nikolayk812/posadmin/internal/domain"
)

// ApplyLines adds each line to its product's totals at the current price_out and stores
// a cart line capturing that price. The products must be locked by LockProducts.
type ApplyLines struct {
	lines    []domain.OrderLine
	orderKey string
}

func NewApplyLines(lines []domain.OrderLine, orderKey string) (ApplyLines, error) {
	var s ApplyLines

	if len(lines) == 0 {
		return s, fmt.Errorf("lines are empty")
	}
	if orderKey == "" {
		return s, fmt.Errorf("orderKey is empty")
	}

	return ApplyLines{
		lines:    lines,
		orderKey: orderKey,
	}, nil
}

func (s ApplyLines) Name() string {
	return "apply_lines"
}

func (s ApplyLines) Run(ctx context.Context, dataCtx *DataContext) error {
	order, ok := dataCtx.Order(s.orderKey)
	if !ok {
		return fmt.Errorf("order[%s] not found in data context", s.orderKey)
	}

	for idx, line := range s.lines {
		product, ok := dataCtx.Product(line.ProductID)
		if !ok {
			return fmt.Errorf("line[%d]: product[%s] is not locked", idx, line.ProductID)
		}

		product, err := dataCtx.Ledger.Apply(ctx, product, line.Quantity, product.PriceOut)
		if err != nil {
			return fmt.Errorf("line[%d]: Ledger.Apply: %w", idx, err)
		}
		dataCtx.SetProduct(product)

		cartLine, err := dataCtx.Orders.InsertCartLine(ctx, domain.CartLine{
			OrderID:     order.ID,
			ProductID:   product.ID,
			ProductName: product.Name,
			Quantity:    line.Quantity,
			UnitPrice:   product.PriceOut,
		})
		if err != nil {
			return fmt.Errorf("line[%d]: Orders.InsertCartLine: %w", idx, err)
		}

		order.Lines = append(order.Lines, cartLine)
	}

	dataCtx.SetOrder(s.orderKey, order)

	return nil
}
