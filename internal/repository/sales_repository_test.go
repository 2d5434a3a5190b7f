package repository_test

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/nikolayk812/posadmin/internal/dashboard"
	"github.com/nikolayk812/posadmin/internal/domain"
	"github.com/nikolayk812/posadmin/internal/port"
	"github.com/nikolayk812/posadmin/internal/repository"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
	"github.com/testcontainers/testcontainers-go"
)

type salesRepositorySuite struct {
	suite.Suite

	container testcontainers.Container
	pool      *pgxpool.Pool

	repo   port.SalesRepository
	orders port.OrderRepository
}

func TestSalesRepositorySuite(t *testing.T) {
	suite.Run(t, new(salesRepositorySuite))
}

func (suite *salesRepositorySuite) SetupSuite() {
	ctx := suite.T().Context()

	var err error
	suite.container, suite.pool, err = startMigratedPool(ctx)
	suite.Require().NoError(err)

	suite.repo = repository.NewSales(suite.pool)
	suite.orders = repository.NewOrder(suite.pool)
}

func (suite *salesRepositorySuite) TearDownSuite() {
	if suite.pool != nil {
		suite.pool.Close()
	}
	if suite.container != nil {
		suite.NoError(suite.container.Terminate(context.Background()))
	}
}

func (suite *salesRepositorySuite) TearDownTest() {
	suite.NoError(truncateAll(context.Background(), suite.pool))
}

func (suite *salesRepositorySuite) TestSalesTotals() {
	t := suite.T()
	ctx := t.Context()

	suite.placeAt(ctx, time.Date(2026, time.January, 31, 23, 0, 0, 0, time.UTC), "40")
	suite.placeAt(ctx, time.Date(2026, time.February, 1, 0, 0, 0, 0, time.UTC), "10.25")
	suite.placeAt(ctx, time.Date(2026, time.February, 14, 9, 0, 0, 0, time.UTC), "100")

	all, err := suite.repo.SalesTotals(ctx, nil)
	require.NoError(t, err)
	assert.Equal(t, int64(3), all.Count)
	assertDecimal(t, "150.25", all.Amount)

	february := dashboard.MonthRange(time.Date(2026, time.February, 14, 12, 0, 0, 0, time.UTC))

	month, err := suite.repo.SalesTotals(ctx, &february)
	require.NoError(t, err)
	assert.Equal(t, int64(2), month.Count)
	assertDecimal(t, "110.25", month.Amount)

	empty := dashboard.DayRange(time.Date(2026, time.March, 1, 0, 0, 0, 0, time.UTC))

	none, err := suite.repo.SalesTotals(ctx, &empty)
	require.NoError(t, err)
	assert.Zero(t, none.Count)
	assert.True(t, none.Amount.IsZero())

	_, err = suite.repo.SalesTotals(ctx, &domain.TimeRange{})
	require.ErrorIs(t, err, domain.ErrValidation)
}

func (suite *salesRepositorySuite) TestDailySales() {
	t := suite.T()
	ctx := t.Context()

	loc, err := time.LoadLocation("America/New_York")
	require.NoError(t, err)

	// February 28 in New York, March 1 in UTC
	suite.placeAt(ctx, time.Date(2026, time.March, 1, 2, 0, 0, 0, time.UTC), "7")
	suite.placeAt(ctx, time.Date(2026, time.February, 3, 15, 0, 0, 0, time.UTC), "5")
	suite.placeAt(ctx, time.Date(2026, time.February, 3, 18, 0, 0, 0, time.UTC), "6")

	february := dashboard.MonthRange(time.Date(2026, time.February, 10, 0, 0, 0, 0, loc))

	actual, err := suite.repo.DailySales(ctx, february, loc)
	require.NoError(t, err)

	require.Len(t, actual, 2)
	assert.Equal(t, 3, actual[0].Day)
	assert.Equal(t, int64(2), actual[0].Count)
	assertDecimal(t, "11", actual[0].Amount)
	assert.Equal(t, 28, actual[1].Day)
	assert.Equal(t, int64(1), actual[1].Count)

	_, err = suite.repo.DailySales(ctx, domain.TimeRange{After: february.After}, loc)
	require.ErrorIs(t, err, domain.ErrValidation)
}

func (suite *salesRepositorySuite) TestRecentOrders() {
	t := suite.T()
	ctx := t.Context()

	base := time.Date(2026, time.February, 1, 0, 0, 0, 0, time.UTC)

	var ids []uuid.UUID
	for i := range 4 {
		ids = append(ids, suite.placeAt(ctx, base.Add(time.Duration(i)*time.Hour), "1"))
	}

	actual, err := suite.repo.RecentOrders(ctx, 3)
	require.NoError(t, err)

	require.Len(t, actual, 3)
	assert.Equal(t, ids[3], actual[0].ID)
	assert.Equal(t, ids[2], actual[1].ID)
	assert.Equal(t, ids[1], actual[2].ID)

	none, err := suite.repo.RecentOrders(ctx, 0)
	require.NoError(t, err)
	assert.Empty(t, none)
}

func (suite *salesRepositorySuite) placeAt(ctx context.Context, at time.Time, paid string) uuid.UUID {
	t := suite.T()

	orderID, err := suite.orders.InsertOrder(ctx, domain.NewPaidOrder("Alice", decimal.RequireFromString(paid)))
	require.NoError(t, err)

	_, err = suite.pool.Exec(ctx, "UPDATE orders SET created_at = $2 WHERE id = $1", orderID, at)
	require.NoError(t, err)

	return orderID
}

func assertDecimal(t *testing.T, want string, actual decimal.Decimal) {
	t.Helper()
	assert.True(t, decimal.RequireFromString(want).Equal(actual), "want %s, got %s", want, actual)
}
