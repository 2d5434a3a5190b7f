package workflow

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/nikolayk812/posadmin/internal/domain"
)

// LockProducts locks every product referenced by lines and by the cart lines of the
// orders under orderKeys. It runs before any totals change, the reconciler takes the
// locks in id order.
type LockProducts struct {
	lines     []domain.OrderLine
	orderKeys []string
}

func NewLockProducts(lines []domain.OrderLine, orderKeys ...string) (LockProducts, error) {
	var s LockProducts

	if len(lines) == 0 && len(orderKeys) == 0 {
		return s, fmt.Errorf("lines and orderKeys are empty")
	}
	for idx, key := range orderKeys {
		if key == "" {
			return s, fmt.Errorf("orderKeys[%d] is empty", idx)
		}
	}

	return LockProducts{
		lines:     lines,
		orderKeys: orderKeys,
	}, nil
}

func (s LockProducts) Name() string {
	return "lock_products"
}

func (s LockProducts) Run(ctx context.Context, dataCtx *DataContext) error {
	var ids []uuid.UUID

	for _, line := range s.lines {
		ids = append(ids, line.ProductID)
	}

	for _, key := range s.orderKeys {
		order, ok := dataCtx.Order(key)
		if !ok {
			return fmt.Errorf("order[%s] not found in data context", key)
		}
		for _, line := range order.Lines {
			ids = append(ids, line.ProductID)
		}
	}

	locked, err := dataCtx.Ledger.Lock(ctx, ids)
	if err != nil {
		return fmt.Errorf("Ledger.Lock: %w", err)
	}

	for _, p := range locked {
		dataCtx.SetProduct(p)
	}

	return nil
}
