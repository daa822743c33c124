package application

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/printeez/backend/internal/cart/domain"
	catalogdomain "github.com/printeez/backend/internal/catalog/domain"
	"github.com/printeez/backend/internal/money"
)

type fakeCartRepo struct {
	items map[string][]domain.CartItem
}

func newFakeCartRepo() *fakeCartRepo {
	return &fakeCartRepo{items: make(map[string][]domain.CartItem)}
}

func (f *fakeCartRepo) Get(_ context.Context, ownerID string) (domain.Cart, error) {
	return domain.Cart{OwnerID: ownerID, Items: f.items[ownerID]}, nil
}

func (f *fakeCartRepo) UpsertItem(_ context.Context, ownerID string, item domain.CartItem) error {
	for i, existing := range f.items[ownerID] {
		if existing.ProductID == item.ProductID && existing.Size == item.Size {
			f.items[ownerID][i] = item
			return nil
		}
	}
	f.items[ownerID] = append(f.items[ownerID], item)
	return nil
}

func (f *fakeCartRepo) DeleteItem(_ context.Context, ownerID string, productID uuid.UUID, size string) (bool, error) {
	for i, existing := range f.items[ownerID] {
		if existing.ProductID == productID && existing.Size == size {
			f.items[ownerID] = append(f.items[ownerID][:i], f.items[ownerID][i+1:]...)
			return true, nil
		}
	}
	return false, nil
}

func (f *fakeCartRepo) Clear(_ context.Context, ownerID string) error {
	delete(f.items, ownerID)
	return nil
}

type fakeCatalog struct {
	product catalogdomain.Product
}

func (f *fakeCatalog) Get(_ context.Context, productID uuid.UUID) (catalogdomain.Product, error) {
	if f.product.ID != productID {
		return catalogdomain.Product{}, catalogdomain.ErrProductNotFound
	}
	return f.product, nil
}

func testProduct() catalogdomain.Product {
	return catalogdomain.Product{
		ID:    uuid.New(),
		Name:  "Gopher Tee",
		Price: money.MustParse("19.99", "USD"),
		Sizes: []catalogdomain.SizeStock{{Size: "M", Stock: 3}},
	}
}

func TestAddItemSnapshotsProduct(t *testing.T) {
	product := testProduct()
	svc := NewService(newFakeCartRepo(), &fakeCatalog{product: product})

	cart, err := svc.AddItem(context.Background(), "user-1", product.ID, "M", 2)
	require.NoError(t, err)

	require.Len(t, cart.Items, 1)
	item := cart.Items[0]
	assert.Equal(t, "Gopher Tee", item.ProductName)
	assert.Equal(t, 2, item.Quantity)
	assert.True(t, item.UnitPrice.Equal(product.Price))
	assert.True(t, item.Subtotal().Equal(money.MustParse("39.98", "USD")))
}

func TestAddItemValidation(t *testing.T) {
	product := testProduct()
	svc := NewService(newFakeCartRepo(), &fakeCatalog{product: product})

	_, err := svc.AddItem(context.Background(), "user-1", product.ID, "M", 0)
	require.ErrorIs(t, err, ErrInvalidQuantity)

	_, err = svc.AddItem(context.Background(), "user-1", uuid.New(), "M", 1)
	require.ErrorIs(t, err, catalogdomain.ErrProductNotFound)

	_, err = svc.AddItem(context.Background(), "user-1", product.ID, "XXL", 1)
	require.ErrorIs(t, err, catalogdomain.ErrSizeUnavailable)
}

func TestRemoveAndClear(t *testing.T) {
	product := testProduct()
	svc := NewService(newFakeCartRepo(), &fakeCatalog{product: product})

	_, err := svc.AddItem(context.Background(), "user-1", product.ID, "M", 1)
	require.NoError(t, err)

	removed, err := svc.RemoveItem(context.Background(), "user-1", product.ID, "M")
	require.NoError(t, err)
	assert.True(t, removed)

	removed, err = svc.RemoveItem(context.Background(), "user-1", product.ID, "M")
	require.NoError(t, err)
	assert.False(t, removed)

	_, err = svc.AddItem(context.Background(), "user-1", product.ID, "M", 1)
	require.NoError(t, err)
	require.NoError(t, svc.Clear(context.Background(), "user-1"))

	cart, err := svc.Get(context.Background(), "user-1")
	require.NoError(t, err)
	assert.Empty(t, cart.Items)
}
