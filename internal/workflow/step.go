package workflow

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/nikolayk812/posadmin/internal/domain"
	"github.com/nikolayk812/posadmin/internal/ledger"
	"github.com/nikolayk812/posadmin/internal/port"
)

type Step interface {
	Name() string
	Run(ctx context.Context, dataCtx *DataContext) error
}

const (
	// CreatedOrderKey holds the order inserted by a pipeline.
	CreatedOrderKey = "created_order"
	// RemovedOrderKey holds the order reversed and deleted by a pipeline.
	RemovedOrderKey = "removed_order"
)

// DataContext is shared by the steps of a single pipeline run. Its repositories are bound
// to the transaction the pipeline runs in.
type DataContext struct {
	Orders   port.OrderRepository
	Products port.ProductRepository
	Ledger   ledger.Reconciler

	orders   map[string]domain.Order
	products map[uuid.UUID]domain.Product
}

func NewDataContext(orders port.OrderRepository, products port.ProductRepository) (*DataContext, error) {
	if orders == nil {
		return nil, errors.New("orders repository is nil")
	}

	reconciler, err := ledger.NewReconciler(products)
	if err != nil {
		return nil, err
	}

	return &DataContext{
		Orders:   orders,
		Products: products,
		Ledger:   reconciler,
		orders:   make(map[string]domain.Order),
		products: make(map[uuid.UUID]domain.Product),
	}, nil
}

func (d *DataContext) Order(key string) (domain.Order, bool) {
	o, ok := d.orders[key]
	return o, ok
}

func (d *DataContext) SetOrder(key string, o domain.Order) {
	d.orders[key] = o
}

// Product returns a product locked earlier in the run, with the totals written so far.
func (d *DataContext) Product(productID uuid.UUID) (domain.Product, bool) {
	p, ok := d.products[productID]
	return p, ok
}

func (d *DataContext) SetProduct(p domain.Product) {
	d.products[p.ID] = p
}
