package repository

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/nikolayk812/posadmin/internal/db"
	"github.com/nikolayk812/posadmin/internal/domain"
	"github.com/nikolayk812/posadmin/internal/port"
	"github.com/samber/lo"
	"github.com/shopspring/decimal"
)

type productRepository struct {
	q    *db.Queries
	dbtx db.DBTX
}

func NewProduct(pool *pgxpool.Pool) port.ProductRepository {
	return &productRepository{
		q:    db.New(pool),
		dbtx: pool,
	}
}

func NewProductWithTx(tx pgx.Tx) port.ProductRepository {
	return &productRepository{
		q:    db.New(tx),
		dbtx: tx, // use provided transaction instead
	}
}

func (r *productRepository) GetProduct(ctx context.Context, productID uuid.UUID) (domain.Product, error) {
	dbProduct, err := r.q.GetProduct(ctx, productID)
	if err != nil {
		return domain.Product{}, fmt.Errorf("q.GetProduct: %w", notFoundIfNoRows(err))
	}

	return mapDBProductToDomain(dbProduct), nil
}

func (r *productRepository) GetProductForUpdate(ctx context.Context, productID uuid.UUID) (domain.Product, error) {
	if _, ok := r.dbtx.(pgx.Tx); !ok {
		return domain.Product{}, fmt.Errorf("GetProductForUpdate requires a transaction")
	}

	dbProduct, err := r.q.GetProductForUpdate(ctx, productID)
	if err != nil {
		return domain.Product{}, fmt.Errorf("q.GetProductForUpdate: %w", notFoundIfNoRows(err))
	}

	return mapDBProductToDomain(dbProduct), nil
}

func (r *productRepository) SearchProducts(ctx context.Context, filter domain.ProductFilter) (domain.PageResult[domain.Product], error) {
	var result domain.PageResult[domain.Product]

	if err := filter.Page.Validate(); err != nil {
		return result, fmt.Errorf("page.Validate: %w", err)
	}

	page := filter.Page.Normalize()
	name := lo.EmptyableToPtr(filter.Name)

	total, err := r.q.CountProducts(ctx, db.CountProductsParams{
		Name:     name,
		IsActive: filter.IsActive,
	})
	if err != nil {
		return result, fmt.Errorf("q.CountProducts: %w", err)
	}

	dbProducts, err := r.q.SearchProducts(ctx, db.SearchProductsParams{
		Name:     name,
		IsActive: filter.IsActive,
		Limit:    page.Limit(),
		Offset:   page.Offset(),
	})
	if err != nil {
		return result, fmt.Errorf("q.SearchProducts: %w", err)
	}

	return domain.PageResult[domain.Product]{
		Items:    lo.Map(dbProducts, func(p db.Product, _ int) domain.Product { return mapDBProductToDomain(p) }),
		Total:    total,
		Page:     page.Number,
		PageSize: page.Size,
	}, nil
}

func (r *productRepository) InsertProduct(ctx context.Context, product domain.Product) (uuid.UUID, error) {
	if err := product.Validate(); err != nil {
		return uuid.Nil, fmt.Errorf("product.Validate: %w", err)
	}

	productID, err := r.q.InsertProduct(ctx, db.InsertProductParams{
		Name:        product.Name,
		Image:       product.Image,
		Description: product.Description,
		PriceIn:     product.PriceIn,
		PriceOut:    product.PriceOut,
		IsActive:    product.IsActive,
	})
	if err != nil {
		return uuid.Nil, fmt.Errorf("q.InsertProduct: %w", err)
	}

	return productID, nil
}

func (r *productRepository) UpdateProduct(ctx context.Context, productID uuid.UUID, update domain.ProductUpdate) (domain.Product, error) {
	if productID == uuid.Nil {
		return domain.Product{}, fmt.Errorf("productID is empty")
	}

	product, err := withQueries(ctx, r.dbtx, func(q *db.Queries) (domain.Product, error) {
		dbProduct, err := q.GetProductForUpdate(ctx, productID)
		if err != nil {
			return domain.Product{}, fmt.Errorf("q.GetProductForUpdate: %w", notFoundIfNoRows(err))
		}

		updated := update.Apply(mapDBProductToDomain(dbProduct))
		if err := updated.Validate(); err != nil {
			return domain.Product{}, fmt.Errorf("product.Validate: %w", err)
		}

		if update.IsEmpty() {
			return updated, nil
		}

		if _, err := q.UpdateProduct(ctx, db.UpdateProductParams{
			ID:          productID,
			Name:        updated.Name,
			Image:       updated.Image,
			Description: updated.Description,
			PriceIn:     updated.PriceIn,
			PriceOut:    updated.PriceOut,
			IsActive:    updated.IsActive,
		}); err != nil {
			return domain.Product{}, fmt.Errorf("q.UpdateProduct: %w", err)
		}

		dbProduct, err = q.GetProduct(ctx, productID)
		if err != nil {
			return domain.Product{}, fmt.Errorf("q.GetProduct: %w", err)
		}

		return mapDBProductToDomain(dbProduct), nil
	})
	if err != nil {
		return domain.Product{}, fmt.Errorf("withQueries: %w", err)
	}

	return product, nil
}

func (r *productRepository) UpdateProductTotals(ctx context.Context, productID uuid.UUID, quantitySold int64, salesAmount decimal.Decimal) error {
	cmdTag, err := r.q.UpdateProductTotals(ctx, db.UpdateProductTotalsParams{
		ID:                productID,
		TotalQuantitySold: quantitySold,
		TotalSalesAmount:  salesAmount,
	})
	if err != nil {
		return fmt.Errorf("q.UpdateProductTotals: %w", err)
	}

	if cmdTag.RowsAffected() == 0 {
		return fmt.Errorf("q.UpdateProductTotals: %w", domain.ErrNotFound)
	}

	return nil
}

func mapDBProductToDomain(p db.Product) domain.Product {
	return domain.Product{
		ID:                p.ID,
		Name:              p.Name,
		Image:             p.Image,
		Description:       p.Description,
		PriceIn:           p.PriceIn,
		PriceOut:          p.PriceOut,
		IsActive:          p.IsActive,
		TotalQuantitySold: p.TotalQuantitySold,
		TotalSalesAmount:  p.TotalSalesAmount,
		CreatedAt:         p.CreatedAt,
		UpdatedAt:         p.UpdatedAt,
	}
}
