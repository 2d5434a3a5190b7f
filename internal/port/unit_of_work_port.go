package port

import "context"

// UnitOfWork runs fn with repositories bound to a single transaction, which is committed
// when fn returns nil and rolled back otherwise.
type UnitOfWork interface {
	Do(ctx context.Context, fn func(orders OrderRepository, products ProductRepository) error) error
}
