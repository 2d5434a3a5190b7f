package repository_test

import (
	"context"
	"testing"
	"time"

	"github.com/brianvoe/gofakeit/v7"
	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/nikolayk812/posadmin/internal/domain"
	"github.com/nikolayk812/posadmin/internal/port"
	"github.com/nikolayk812/posadmin/internal/repository"
	"github.com/samber/lo"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
	"github.com/testcontainers/testcontainers-go"
)

type orderRepositorySuite struct {
	suite.Suite

	container testcontainers.Container
	pool      *pgxpool.Pool

	repo     port.OrderRepository
	products port.ProductRepository
}

// entry point to run the tests in the suite
func TestOrderRepositorySuite(t *testing.T) {
	suite.Run(t, new(orderRepositorySuite))
}

// before all tests in the suite
func (suite *orderRepositorySuite) SetupSuite() {
	ctx := suite.T().Context()

	var err error
	suite.container, suite.pool, err = startMigratedPool(ctx)
	suite.Require().NoError(err)

	suite.repo = repository.NewOrder(suite.pool)
	suite.products = repository.NewProduct(suite.pool)
}

// after all tests in the suite
func (suite *orderRepositorySuite) TearDownSuite() {
	ctx := context.Background()

	if suite.pool != nil {
		suite.pool.Close()
	}
	if suite.container != nil {
		suite.NoError(suite.container.Terminate(ctx))
	}
}

func (suite *orderRepositorySuite) TearDownTest() {
	suite.NoError(truncateAll(context.Background(), suite.pool))
}

func (suite *orderRepositorySuite) TestInsertOrder() {
	tests := []struct {
		name      string
		linesFunc func(productID uuid.UUID) []domain.CartLine
		wantLines int
	}{
		{
			name:      "order without lines: ok",
			linesFunc: func(uuid.UUID) []domain.CartLine { return nil },
		},
		{
			name: "order with lines: ok",
			linesFunc: func(productID uuid.UUID) []domain.CartLine {
				return []domain.CartLine{
					{ProductID: productID, Quantity: 2, UnitPrice: decimal.RequireFromString("9.99")},
					{ProductID: productID, Quantity: 1, UnitPrice: decimal.RequireFromString("10.50")},
				}
			},
			wantLines: 2,
		},
	}

	for _, tt := range tests {
		suite.Run(tt.name, func() {
			t := suite.T()
			ctx := t.Context()

			product := suite.insertProduct(ctx)

			order := randomOrder()
			order.Lines = tt.linesFunc(product.ID)

			orderID, err := suite.repo.InsertOrder(ctx, order)
			require.NoError(t, err)

			actual, err := suite.repo.GetOrder(ctx, orderID)
			require.NoError(t, err)

			expected := order
			expected.ID = orderID
			for i := range expected.Lines {
				expected.Lines[i].OrderID = orderID
				expected.Lines[i].ProductName = product.Name
			}

			assertOrder(t, expected, actual)
			assert.Len(t, actual.Lines, tt.wantLines)
			assert.WithinDuration(t, time.Now(), actual.CreatedAt, time.Minute)
		})
	}
}

func (suite *orderRepositorySuite) TestInsertCartLine() {
	t := suite.T()
	ctx := t.Context()

	product := suite.insertProduct(ctx)
	orderID := suite.insertOrders(randomOrder())[0]

	line, err := suite.repo.InsertCartLine(ctx, domain.CartLine{
		OrderID:   orderID,
		ProductID: product.ID,
		Quantity:  3,
		UnitPrice: product.PriceOut,
	})
	require.NoError(t, err)
	assert.Positive(t, line.ID)
	assert.False(t, line.CreatedAt.IsZero())

	_, err = suite.repo.InsertCartLine(ctx, domain.CartLine{ProductID: product.ID, Quantity: 1})
	require.EqualError(t, err, "orderID is empty")

	_, err = suite.repo.InsertCartLine(ctx, domain.CartLine{OrderID: orderID, ProductID: product.ID, Quantity: 0})
	require.Error(t, err, "quantity must be positive")

	actual, err := suite.repo.GetOrder(ctx, orderID)
	require.NoError(t, err)
	require.Len(t, actual.Lines, 1)
	assert.Equal(t, product.Name, actual.Lines[0].ProductName)
	assert.Equal(t, int64(3), actual.Lines[0].Quantity)
}

func (suite *orderRepositorySuite) TestGetOrder_NotFound() {
	_, err := suite.repo.GetOrder(suite.T().Context(), uuid.New())
	suite.Require().ErrorIs(err, domain.ErrNotFound)
}

func (suite *orderRepositorySuite) TestSearchOrders() {
	t := suite.T()
	ctx := t.Context()

	alice := randomOrder()
	alice.CustomerName = "Alice Cooper"
	bob := randomOrder()
	bob.CustomerName = "Bob Marley"
	alicia := randomOrder()
	alicia.CustomerName = "ALICIA Keys"

	ids := suite.insertOrders(alice, bob, alicia)

	old := time.Now().Add(-48 * time.Hour).UTC().Truncate(time.Microsecond)
	suite.setCreatedAt(ctx, ids[1], old)

	now := time.Now()
	yesterday := now.Add(-24 * time.Hour)

	tests := []struct {
		name      string
		filter    domain.OrderFilter
		wantIDs   []uuid.UUID
		wantTotal int64
		wantErrIs error
	}{
		{
			name:      "empty filter: all orders, newest first",
			wantIDs:   []uuid.UUID{ids[2], ids[0], ids[1]},
			wantTotal: 3,
		},
		{
			name:      "customer substring, case insensitive",
			filter:    domain.OrderFilter{CustomerName: "ali"},
			wantIDs:   []uuid.UUID{ids[2], ids[0]},
			wantTotal: 2,
		},
		{
			name:      "created before yesterday",
			filter:    domain.OrderFilter{CreatedAt: &domain.TimeRange{Before: &yesterday}},
			wantIDs:   []uuid.UUID{ids[1]},
			wantTotal: 1,
		},
		{
			name:      "created after yesterday, second page of one",
			filter:    domain.OrderFilter{CreatedAt: &domain.TimeRange{After: &yesterday}, Page: domain.Page{Number: 2, Size: 1}},
			wantIDs:   []uuid.UUID{ids[0]},
			wantTotal: 2,
		},
		{
			name:      "invalid range",
			filter:    domain.OrderFilter{CreatedAt: &domain.TimeRange{After: &now, Before: &yesterday}},
			wantErrIs: domain.ErrValidation,
		},
	}

	for _, tt := range tests {
		suite.Run(tt.name, func() {
			t := suite.T()

			result, err := suite.repo.SearchOrders(ctx, tt.filter)
			if tt.wantErrIs != nil {
				require.ErrorIs(t, err, tt.wantErrIs)
				return
			}
			require.NoError(t, err)

			actualIDs := lo.Map(result.Items, func(o domain.Order, _ int) uuid.UUID { return o.ID })
			assert.Equal(t, tt.wantIDs, actualIDs)
			assert.Equal(t, tt.wantTotal, result.Total)
		})
	}
}

func (suite *orderRepositorySuite) TestSearchOrders_WildcardsAreLiteral() {
	t := suite.T()
	ctx := t.Context()

	plain := randomOrder()
	plain.CustomerName = "Ann Lee"
	underscored := randomOrder()
	underscored.CustomerName = "ann_lee"

	ids := suite.insertOrders(plain, underscored)

	for _, filter := range []string{"_", "N_L", "%"} {
		result, err := suite.repo.SearchOrders(ctx, domain.OrderFilter{CustomerName: filter})
		require.NoError(t, err)

		actualIDs := lo.Map(result.Items, func(o domain.Order, _ int) uuid.UUID { return o.ID })
		if filter == "%" {
			assert.Empty(t, actualIDs, filter)
			continue
		}
		assert.Equal(t, []uuid.UUID{ids[1]}, actualIDs, filter)
	}
}

func (suite *orderRepositorySuite) TestDeleteOrder() {
	t := suite.T()
	ctx := t.Context()

	product := suite.insertProduct(ctx)

	order := randomOrder()
	order.Lines = []domain.CartLine{{ProductID: product.ID, Quantity: 1, UnitPrice: product.PriceOut}}
	orderID := suite.insertOrders(order)[0]

	require.NoError(t, suite.repo.DeleteOrder(ctx, orderID))

	_, err := suite.repo.GetOrder(ctx, orderID)
	require.ErrorIs(t, err, domain.ErrNotFound)

	var lines int
	require.NoError(t, suite.pool.QueryRow(ctx, "SELECT count(*) FROM carts WHERE order_id = $1", orderID).Scan(&lines))
	assert.Zero(t, lines)

	err = suite.repo.DeleteOrder(ctx, orderID)
	require.ErrorIs(t, err, domain.ErrNotFound)

	err = suite.repo.DeleteOrder(ctx, uuid.Nil)
	require.EqualError(t, err, "orderID is empty")
}

func (suite *orderRepositorySuite) TestIdempotencyKey() {
	t := suite.T()
	ctx := t.Context()

	orderID := suite.insertOrders(randomOrder())[0]
	key := gofakeit.UUID()

	_, err := suite.repo.GetIdempotencyKey(ctx, key)
	require.ErrorIs(t, err, domain.ErrNotFound)

	require.NoError(t, suite.repo.InsertIdempotencyKey(ctx, key, orderID))

	actual, err := suite.repo.GetIdempotencyKey(ctx, key)
	require.NoError(t, err)
	assert.Equal(t, orderID, actual)

	err = suite.repo.InsertIdempotencyKey(ctx, key, uuid.New())
	require.Error(t, err)

	err = suite.repo.InsertIdempotencyKey(ctx, "", orderID)
	require.EqualError(t, err, "key is empty")
}

func (suite *orderRepositorySuite) TestLockIdempotencyKey() {
	t := suite.T()
	ctx := t.Context()

	err := suite.repo.LockIdempotencyKey(ctx, gofakeit.UUID())
	require.EqualError(t, err, "LockIdempotencyKey requires a transaction")

	err = repository.InTx(ctx, suite.pool, func(tx pgx.Tx) error {
		return repository.NewOrderWithTx(tx).LockIdempotencyKey(ctx, gofakeit.UUID())
	})
	require.NoError(t, err)
}

func (suite *orderRepositorySuite) insertOrders(orders ...domain.Order) []uuid.UUID {
	t := suite.T()

	ids := make([]uuid.UUID, 0, len(orders))
	for _, o := range orders {
		orderID, err := suite.repo.InsertOrder(t.Context(), o)
		require.NoError(t, err)
		ids = append(ids, orderID)
	}
	return ids
}

func (suite *orderRepositorySuite) insertProduct(ctx context.Context) domain.Product {
	t := suite.T()

	p := randomProduct()

	productID, err := suite.products.InsertProduct(ctx, p)
	require.NoError(t, err)

	p.ID = productID
	return p
}

func (suite *orderRepositorySuite) setCreatedAt(ctx context.Context, orderID uuid.UUID, at time.Time) {
	_, err := suite.pool.Exec(ctx, "UPDATE orders SET created_at = $2 WHERE id = $1", orderID, at)
	suite.Require().NoError(err)
}

func randomOrder() domain.Order {
	total := randomAmount()
	return domain.NewPaidOrder(gofakeit.Name(), total)
}

func randomProduct() domain.Product {
	return domain.Product{
		Name:        gofakeit.ProductName(),
		Image:       gofakeit.URL(),
		Description: gofakeit.ProductDescription(),
		PriceIn:     randomAmount(),
		PriceOut:    randomAmount(),
		IsActive:    gofakeit.Bool(),
	}
}

// randomAmount fits NUMERIC(12, 2)
func randomAmount() decimal.Decimal {
	return decimal.NewFromFloat(gofakeit.Price(1, 1000)).Round(2)
}

func decimalComparer() cmp.Option {
	return cmp.Comparer(func(a, b decimal.Decimal) bool {
		return a.Equal(b)
	})
}

func assertOrder(t *testing.T, expected, actual domain.Order) {
	t.Helper()

	opts := cmp.Options{
		cmpopts.IgnoreFields(domain.Order{}, "CreatedAt"),
		cmpopts.IgnoreFields(domain.CartLine{}, "ID", "CreatedAt"),
		cmpopts.EquateEmpty(),
		decimalComparer(),
	}

	diff := cmp.Diff(expected, actual, opts)
	assert.Empty(t, diff)
}
