package postgres_test

import (
	"context"
	"testing"

	"github.com/brianvoe/gofakeit/v7"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
	"github.com/testcontainers/testcontainers-go"

	"github.com/printeez/backend/internal/db/dbtest"
	wishlistpg "github.com/printeez/backend/internal/wishlist/infrastructure/postgres"
	"github.com/printeez/backend/pkg/logging"
)

type wishlistRepositorySuite struct {
	suite.Suite

	container testcontainers.Container
	pool      *pgxpool.Pool
	repo      *wishlistpg.Repository
}

func TestWishlistRepositorySuite(t *testing.T) {
	suite.Run(t, new(wishlistRepositorySuite))
}

func (suite *wishlistRepositorySuite) SetupSuite() {
	ctx := suite.T().Context()

	var err error
	suite.container, suite.pool, err = dbtest.StartPostgres(ctx)
	suite.Require().NoError(err)

	suite.repo = wishlistpg.NewRepository(logging.New("wishlist-repository-test", "error"), suite.pool)
}

func (suite *wishlistRepositorySuite) TearDownSuite() {
	if suite.pool != nil {
		suite.pool.Close()
	}
	if suite.container != nil {
		suite.NoError(suite.container.Terminate(context.Background()))
	}
}

func (suite *wishlistRepositorySuite) TestAddIsIdempotent() {
	t := suite.T()
	ctx := t.Context()

	ownerID := gofakeit.UUID()
	productID := uuid.New()

	require.NoError(t, suite.repo.Add(ctx, ownerID, productID))
	require.NoError(t, suite.repo.Add(ctx, ownerID, productID))

	items, err := suite.repo.List(ctx, ownerID)
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, productID, items[0].ProductID)
}

func (suite *wishlistRepositorySuite) TestRemove() {
	t := suite.T()
	ctx := t.Context()

	ownerID := gofakeit.UUID()
	productID := uuid.New()
	require.NoError(t, suite.repo.Add(ctx, ownerID, productID))

	removed, err := suite.repo.Remove(ctx, ownerID, productID)
	require.NoError(t, err)
	assert.True(t, removed)

	removed, err = suite.repo.Remove(ctx, ownerID, productID)
	require.NoError(t, err)
	assert.False(t, removed)
}

func (suite *wishlistRepositorySuite) TestListIsScopedToOwner() {
	t := suite.T()
	ctx := t.Context()

	owner := gofakeit.UUID()
	other := gofakeit.UUID()

	require.NoError(t, suite.repo.Add(ctx, owner, uuid.New()))
	require.NoError(t, suite.repo.Add(ctx, other, uuid.New()))

	items, err := suite.repo.List(ctx, owner)
	require.NoError(t, err)
	assert.Len(t, items, 1)
}
