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

	"github.com/printeez/backend/internal/catalog/domain"
	catalogpg "github.com/printeez/backend/internal/catalog/infrastructure/postgres"
	"github.com/printeez/backend/internal/db/dbtest"
	"github.com/printeez/backend/internal/money"
	"github.com/printeez/backend/pkg/logging"
)

type catalogRepositorySuite struct {
	suite.Suite

	container testcontainers.Container
	pool      *pgxpool.Pool
	repo      *catalogpg.Repository
}

func TestCatalogRepositorySuite(t *testing.T) {
	suite.Run(t, new(catalogRepositorySuite))
}

func (suite *catalogRepositorySuite) SetupSuite() {
	ctx := suite.T().Context()

	var err error
	suite.container, suite.pool, err = dbtest.StartPostgres(ctx)
	suite.Require().NoError(err)

	suite.repo = catalogpg.NewRepository(logging.New("catalog-repository-test", "error"), suite.pool)
}

func (suite *catalogRepositorySuite) TearDownSuite() {
	if suite.pool != nil {
		suite.pool.Close()
	}
	if suite.container != nil {
		suite.NoError(suite.container.Terminate(context.Background()))
	}
}

func fakeProduct() domain.Product {
	return domain.Product{
		Name:  gofakeit.ProductName(),
		Price: money.MustParse("24.95", "EUR"),
		Sizes: []domain.SizeStock{
			{Size: "S", Stock: 3},
			{Size: "M", Stock: 7},
		},
	}
}

func (suite *catalogRepositorySuite) TestInsertAndGet() {
	t := suite.T()
	ctx := t.Context()

	p := fakeProduct()

	id, err := suite.repo.Insert(ctx, p)
	require.NoError(t, err)
	p.ID = id

	got, err := suite.repo.Get(ctx, id)
	require.NoError(t, err)
	assertProduct(t, p, got)

	_, err = suite.repo.Get(ctx, uuid.New())
	require.ErrorIs(t, err, domain.ErrProductNotFound)
}

func (suite *catalogRepositorySuite) TestGetMany() {
	t := suite.T()
	ctx := t.Context()

	first := fakeProduct()
	second := fakeProduct()

	var err error
	first.ID, err = suite.repo.Insert(ctx, first)
	require.NoError(t, err)
	second.ID, err = suite.repo.Insert(ctx, second)
	require.NoError(t, err)

	missing := uuid.New()
	got, err := suite.repo.GetMany(ctx, []uuid.UUID{first.ID, second.ID, missing})
	require.NoError(t, err)

	// Unknown ids are simply absent, the caller decides whether that is an
	// error.
	require.Len(t, got, 2)
	assertProduct(t, first, got[first.ID])
	assertProduct(t, second, got[second.ID])
	assert.NotContains(t, got, missing)
}

func (suite *catalogRepositorySuite) TestAddStock() {
	t := suite.T()
	ctx := t.Context()

	p := fakeProduct()
	id, err := suite.repo.Insert(ctx, p)
	require.NoError(t, err)

	got, err := suite.repo.AddStock(ctx, id, "S", 5)
	require.NoError(t, err)
	stock, ok := got.StockFor("S")
	require.True(t, ok)
	assert.Equal(t, 8, stock)

	// Restocking a size the product never had creates it.
	got, err = suite.repo.AddStock(ctx, id, "XL", 4)
	require.NoError(t, err)
	stock, ok = got.StockFor("XL")
	require.True(t, ok)
	assert.Equal(t, 4, stock)

	_, err = suite.repo.AddStock(ctx, uuid.New(), "S", 1)
	require.ErrorIs(t, err, domain.ErrProductNotFound)
}

func (suite *catalogRepositorySuite) TestList() {
	t := suite.T()
	ctx := t.Context()

	p := fakeProduct()
	id, err := suite.repo.Insert(ctx, p)
	require.NoError(t, err)

	products, err := suite.repo.List(ctx)
	require.NoError(t, err)

	var found bool
	for _, got := range products {
		if got.ID == id {
			found = true
			assert.Equal(t, p.Name, got.Name)
		}
	}
	assert.True(t, found)
}

func assertProduct(t *testing.T, expected, actual domain.Product) {
	t.Helper()

	comparer := cmp.Comparer(func(x, y currency.Unit) bool {
		return x.String() == y.String()
	})
	decimals := cmp.Comparer(func(x, y money.Money) bool {
		return x.Equal(y)
	})
	opts := cmp.Options{
		cmpopts.IgnoreFields(domain.Product{}, "CreatedAt", "UpdatedAt"),
		cmpopts.SortSlices(func(a, b domain.SizeStock) bool { return a.Size < b.Size }),
		cmpopts.EquateEmpty(),
	}

	diff := cmp.Diff(expected, actual, decimals, comparer, opts)
	assert.Empty(t, diff)
}
