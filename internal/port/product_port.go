package port

import (
	"context"

	"github.com/google/uuid"
	"github.com/nikolayk812/posadmin/internal/domain"
	"github.com/shopspring/decimal"
)

type ProductRepository interface {
	GetProduct(ctx context.Context, productID uuid.UUID) (domain.Product, error)

	// GetProductForUpdate locks the product row until the surrounding transaction ends.
	GetProductForUpdate(ctx context.Context, productID uuid.UUID) (domain.Product, error)

	SearchProducts(ctx context.Context, filter domain.ProductFilter) (domain.PageResult[domain.Product], error)

	InsertProduct(ctx context.Context, product domain.Product) (uuid.UUID, error)
	UpdateProduct(ctx context.Context, productID uuid.UUID, update domain.ProductUpdate) (domain.Product, error)

	// UpdateProductTotals overwrites the running totals of the product.
	UpdateProductTotals(ctx context.Context, productID uuid.UUID, quantitySold int64, salesAmount decimal.Decimal) error
}
