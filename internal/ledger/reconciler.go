// Package ledger keeps the running sales totals of products in step with the cart
// lines of live orders.
package ledger

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"slices"

	"github.com/google/uuid"
	"github.com/nikolayk812/posadmin/internal/domain"
	"github.com/nikolayk812/posadmin/internal/port"
	"github.com/shopspring/decimal"
)

// Reconciler applies and reverses sales on product totals. It must be built on a
// transaction-bound repository, locked product rows stay locked until that transaction ends.
type Reconciler struct {
	products port.ProductRepository
}

func NewReconciler(products port.ProductRepository) (Reconciler, error) {
	if products == nil {
		return Reconciler{}, errors.New("products repository is nil")
	}

	return Reconciler{products: products}, nil
}

// Lock takes the row lock of every product in ascending id order, so two transactions
// touching the same products never wait on each other in a cycle. Duplicate ids are locked once.
func (r Reconciler) Lock(ctx context.Context, productIDs []uuid.UUID) (map[uuid.UUID]domain.Product, error) {
	ids := slices.Clone(productIDs)
	slices.SortFunc(ids, func(a, b uuid.UUID) int {
		return bytes.Compare(a[:], b[:])
	})
	ids = slices.Compact(ids)

	locked := make(map[uuid.UUID]domain.Product, len(ids))
	for _, id := range ids {
		p, err := r.products.GetProductForUpdate(ctx, id)
		if err != nil {
			return nil, fmt.Errorf("products.GetProductForUpdate[%s]: %w", id, err)
		}
		locked[id] = p
	}

	return locked, nil
}

// Apply adds quantity units sold at unitPrice to the totals of p, which the caller has locked.
func (r Reconciler) Apply(ctx context.Context, p domain.Product, quantity int64, unitPrice decimal.Decimal) (domain.Product, error) {
	return r.adjust(ctx, p, quantity, unitPrice, 1)
}

// Reverse removes quantity units sold at unitPrice from the totals of p, which the caller has locked.
func (r Reconciler) Reverse(ctx context.Context, p domain.Product, quantity int64, unitPrice decimal.Decimal) (domain.Product, error) {
	return r.adjust(ctx, p, quantity, unitPrice, -1)
}

func (r Reconciler) adjust(ctx context.Context, p domain.Product, quantity int64, unitPrice decimal.Decimal, sign int64) (domain.Product, error) {
	if quantity <= 0 {
		return p, fmt.Errorf("quantity[%d] must be positive: %w", quantity, domain.ErrValidation)
	}

	adjusted, err := Adjusted(p, sign*quantity, unitPrice)
	if err != nil {
		return p, fmt.Errorf("Adjusted[%s]: %w", p.ID, err)
	}

	if err := r.products.UpdateProductTotals(ctx, adjusted.ID, adjusted.TotalQuantitySold, adjusted.TotalSalesAmount); err != nil {
		return p, fmt.Errorf("products.UpdateProductTotals[%s]: %w", p.ID, err)
	}

	return adjusted, nil
}

// Adjusted returns p with delta units at unitPrice added to its totals, delta may be negative.
// The quantity sold never drops below zero. The sales amount may, when a reversal is priced
// higher than the original sale.
func Adjusted(p domain.Product, delta int64, unitPrice decimal.Decimal) (domain.Product, error) {
	quantity := p.TotalQuantitySold + delta
	if quantity < 0 {
		return p, fmt.Errorf("quantity sold would become %d: %w", quantity, domain.ErrInconsistentTotals)
	}

	p.TotalQuantitySold = quantity
	p.TotalSalesAmount = p.TotalSalesAmount.Add(unitPrice.Mul(decimal.NewFromInt(delta)))

	return p, nil
}

// ReversalPrice picks the unit price a cart line is reversed with.
func ReversalPrice(policy domain.ReversalPricing, product domain.Product, line domain.CartLine) decimal.Decimal {
	if policy == domain.ReversalPricingCaptured {
		return line.UnitPrice
	}
	return product.PriceOut
}
