package ledger_test

import (
	"context"
	"slices"
	"strings"
	"testing"

	"github.com/brianvoe/gofakeit/v7"
	"github.com/google/uuid"
	"github.com/nikolayk812/posadmin/internal/domain"
	"github.com/nikolayk812/posadmin/internal/ledger"
	"github.com/nikolayk812/posadmin/internal/port"
	"github.com/nikolayk812/posadmin/internal/repository/memory"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

func TestReconciler(t *testing.T) {
	tests := []struct {
		name        string
		startQty    int64
		startAmount string
		run         func(r ledger.Reconciler, p domain.Product) error
		wantQty     int64
		wantAmount  string
		wantErrorIs error
	}{
		{
			name:        "apply two at 50: ok",
			startAmount: "0",
			run: func(r ledger.Reconciler, p domain.Product) error {
				_, err := r.Apply(t.Context(), p, 2, decimal.NewFromInt(50))
				return err
			},
			wantQty:    2,
			wantAmount: "100",
		},
		{
			name:        "reverse two at 50: ok",
			startQty:    5,
			startAmount: "250",
			run: func(r ledger.Reconciler, p domain.Product) error {
				_, err := r.Reverse(t.Context(), p, 2, decimal.NewFromInt(50))
				return err
			},
			wantQty:    3,
			wantAmount: "150",
		},
		{
			name:        "apply then reverse at the same price: restored",
			startQty:    1,
			startAmount: "9.99",
			run: func(r ledger.Reconciler, p domain.Product) error {
				price := decimal.RequireFromString("12.34")
				p, err := r.Apply(t.Context(), p, 3, price)
				if err != nil {
					return err
				}
				_, err = r.Reverse(t.Context(), p, 3, price)
				return err
			},
			wantQty:    1,
			wantAmount: "9.99",
		},
		{
			name:        "zero quantity: validation error",
			startAmount: "0",
			run: func(r ledger.Reconciler, p domain.Product) error {
				_, err := r.Apply(t.Context(), p, 0, decimal.NewFromInt(50))
				return err
			},
			wantAmount:  "0",
			wantErrorIs: domain.ErrValidation,
		},
		{
			name:        "negative quantity: validation error",
			startAmount: "0",
			run: func(r ledger.Reconciler, p domain.Product) error {
				_, err := r.Reverse(t.Context(), p, -1, decimal.NewFromInt(50))
				return err
			},
			wantAmount:  "0",
			wantErrorIs: domain.ErrValidation,
		},
		{
			name:        "reverse more than sold: inconsistent totals",
			startQty:    1,
			startAmount: "50",
			run: func(r ledger.Reconciler, p domain.Product) error {
				_, err := r.Reverse(t.Context(), p, 2, decimal.NewFromInt(50))
				return err
			},
			wantQty:     1,
			wantAmount:  "50",
			wantErrorIs: domain.ErrInconsistentTotals,
		},
		{
			name:        "unknown product: not found",
			startAmount: "0",
			run: func(r ledger.Reconciler, _ domain.Product) error {
				_, err := r.Apply(t.Context(), domain.Product{ID: uuid.New()}, 1, decimal.NewFromInt(50))
				return err
			},
			wantAmount:  "0",
			wantErrorIs: domain.ErrNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctx := t.Context()
			store := memory.NewStore()
			products := store.Products()

			productID, err := products.InsertProduct(ctx, domain.Product{
				Name:     "Espresso",
				PriceOut: decimal.NewFromInt(50),
				IsActive: true,
			})
			require.NoError(t, err)
			require.NoError(t, products.UpdateProductTotals(ctx, productID, tt.startQty, decimal.RequireFromString(tt.startAmount)))

			r, err := ledger.NewReconciler(products)
			require.NoError(t, err)

			locked, err := r.Lock(ctx, []uuid.UUID{productID})
			require.NoError(t, err)

			err = tt.run(r, locked[productID])
			if tt.wantErrorIs != nil {
				require.ErrorIs(t, err, tt.wantErrorIs)
			} else {
				require.NoError(t, err)
			}

			actual, err := products.GetProduct(ctx, productID)
			require.NoError(t, err)

			assert.Equal(t, tt.wantQty, actual.TotalQuantitySold)
			assert.True(t, decimal.RequireFromString(tt.wantAmount).Equal(actual.TotalSalesAmount),
				"want amount %s, got %s", tt.wantAmount, actual.TotalSalesAmount)
		})
	}
}

func TestNewReconciler_NilRepository(t *testing.T) {
	_, err := ledger.NewReconciler(nil)
	require.EqualError(t, err, "products repository is nil")
}

// lockRecorder records the order GetProductForUpdate is called in.
type lockRecorder struct {
	port.ProductRepository
	locked []uuid.UUID
}

func (r *lockRecorder) GetProductForUpdate(ctx context.Context, productID uuid.UUID) (domain.Product, error) {
	r.locked = append(r.locked, productID)
	return r.ProductRepository.GetProductForUpdate(ctx, productID)
}

func TestReconciler_Lock(t *testing.T) {
	ctx := t.Context()
	store := memory.NewStore()

	var ids []uuid.UUID
	for range 4 {
		productID, err := store.Products().InsertProduct(ctx, domain.Product{Name: gofakeit.ProductName()})
		require.NoError(t, err)
		ids = append(ids, productID)
	}

	sorted := slices.Clone(ids)
	slices.SortFunc(sorted, func(a, b uuid.UUID) int { return strings.Compare(a.String(), b.String()) })

	tests := []struct {
		name string
		ids  []uuid.UUID
	}{
		{name: "ascending", ids: sorted},
		{name: "descending", ids: []uuid.UUID{sorted[3], sorted[2], sorted[1], sorted[0]}},
		{name: "duplicates", ids: []uuid.UUID{sorted[2], sorted[0], sorted[2], sorted[3], sorted[1], sorted[0]}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			recorder := &lockRecorder{ProductRepository: store.Products()}

			r, err := ledger.NewReconciler(recorder)
			require.NoError(t, err)

			locked, err := r.Lock(ctx, tt.ids)
			require.NoError(t, err)

			assert.Equal(t, sorted, recorder.locked)
			assert.Len(t, locked, 4)
			for _, id := range sorted {
				assert.Equal(t, id, locked[id].ID)
			}
		})
	}

	t.Run("unknown product", func(t *testing.T) {
		r, err := ledger.NewReconciler(store.Products())
		require.NoError(t, err)

		_, err = r.Lock(ctx, []uuid.UUID{sorted[0], uuid.New()})
		require.ErrorIs(t, err, domain.ErrNotFound)
	})
}

func TestReversalPrice(t *testing.T) {
	product := domain.Product{PriceOut: decimal.NewFromInt(60)}
	line := domain.CartLine{UnitPrice: decimal.NewFromInt(50), Quantity: 2}

	assert.True(t, decimal.NewFromInt(60).Equal(ledger.ReversalPrice(domain.ReversalPricingLive, product, line)))
	assert.True(t, decimal.NewFromInt(50).Equal(ledger.ReversalPrice(domain.ReversalPricingCaptured, product, line)))
}

func TestAdjusted_AmountMayGoNegative(t *testing.T) {
	// sold 2 at 50, price raised to 60 before the reversal
	p := domain.Product{TotalQuantitySold: 2, TotalSalesAmount: decimal.NewFromInt(100)}

	actual, err := ledger.Adjusted(p, -2, decimal.NewFromInt(60))
	require.NoError(t, err)

	assert.Equal(t, int64(0), actual.TotalQuantitySold)
	assert.True(t, decimal.NewFromInt(-20).Equal(actual.TotalSalesAmount))
}
