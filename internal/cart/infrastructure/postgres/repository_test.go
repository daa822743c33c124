package postgres_test

import (
	"context"
	"testing"

	"github.com/brianvoe/gofakeit/v7"
	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
	"github.com/testcontainers/testcontainers-go"
	"golang.org/x/text/currency"

	"github.com/printeez/backend/internal/cart/domain"
	cartpg "github.com/printeez/backend/internal/cart/infrastructure/postgres"
	"github.com/printeez/backend/internal/db/dbtest"
	"github.com/printeez/backend/internal/money"
	"github.com/printeez/backend/pkg/logging"
)

type cartRepositorySuite struct {
	suite.Suite

	container testcontainers.Container
	pool      *pgxpool.Pool
	repo      *cartpg.Repository
}

func TestCartRepositorySuite(t *testing.T) {
	suite.Run(t, new(cartRepositorySuite))
}

func (suite *cartRepositorySuite) SetupSuite() {
	ctx := suite.T().Context()

	var err error
	suite.container, suite.pool, err = dbtest.StartPostgres(ctx)
	suite.Require().NoError(err)

	suite.repo = cartpg.NewRepository(logging.New("cart-repository-test", "error"), suite.pool)
}

func (suite *cartRepositorySuite) TearDownSuite() {
	if suite.pool != nil {
		suite.pool.Close()
	}
	if suite.container != nil {
		suite.NoError(suite.container.Terminate(context.Background()))
	}
}

func fakeCartItem() domain.CartItem {
	return domain.CartItem{
		ProductID:   uuid.New(),
		ProductName: gofakeit.ProductName(),
		Size:        "M",
		Quantity:    2,
		UnitPrice:   money.MustParse("12.50", "USD"),
	}
}

func (suite *cartRepositorySuite) TestUpsertAndGet() {
	t := suite.T()
	ctx := t.Context()

	ownerID := gofakeit.UUID()
	item := fakeCartItem()

	require.NoError(t, suite.repo.UpsertItem(ctx, ownerID, item))

	cart, err := suite.repo.Get(ctx, ownerID)
	require.NoError(t, err)
	assertCart(t, domain.Cart{OwnerID: ownerID, Items: []domain.CartItem{item}}, cart)

	// Adding the same (product, size) again replaces quantity and snapshot.
	item.Quantity = 5
	item.UnitPrice = money.MustParse("9.99", "USD")
	require.NoError(t, suite.repo.UpsertItem(ctx, ownerID, item))

	cart, err = suite.repo.Get(ctx, ownerID)
	require.NoError(t, err)
	assertCart(t, domain.Cart{OwnerID: ownerID, Items: []domain.CartItem{item}}, cart)
}

func (suite *cartRepositorySuite) TestDeleteItem() {
	t := suite.T()
	ctx := t.Context()

	ownerID := gofakeit.UUID()
	item := fakeCartItem()
	require.NoError(t, suite.repo.UpsertItem(ctx, ownerID, item))

	removed, err := suite.repo.DeleteItem(ctx, ownerID, item.ProductID, item.Size)
	require.NoError(t, err)
	assert.True(t, removed)

	removed, err = suite.repo.DeleteItem(ctx, ownerID, item.ProductID, item.Size)
	require.NoError(t, err)
	assert.False(t, removed)
}

func (suite *cartRepositorySuite) TestClear() {
	t := suite.T()
	ctx := t.Context()

	ownerID := gofakeit.UUID()
	require.NoError(t, suite.repo.UpsertItem(ctx, ownerID, fakeCartItem()))
	require.NoError(t, suite.repo.UpsertItem(ctx, ownerID, fakeCartItem()))

	require.NoError(t, suite.repo.Clear(ctx, ownerID))

	cart, err := suite.repo.Get(ctx, ownerID)
	require.NoError(t, err)
	assert.Empty(t, cart.Items)
}

func assertCart(t *testing.T, expected, actual domain.Cart) {
	t.Helper()

	comparer := cmp.Comparer(func(x, y currency.Unit) bool {
		return x.String() == y.String()
	})
	decimals := cmp.Comparer(func(x, y money.Money) bool {
		return x.Equal(y)
	})
	opts := cmp.Options{
		cmpopts.IgnoreFields(domain.CartItem{}, "CreatedAt"),
		cmpopts.EquateEmpty(),
	}

	diff := cmp.Diff(expected, actual, decimals, comparer, opts)
	assert.Empty(t, diff)
}
