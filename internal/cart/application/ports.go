package application

import (
	"context"

	"github.com/google/uuid"
	"github.com/printeez/backend/internal/cart/domain"
	catalogdomain "github.com/printeez/backend/internal/catalog/domain"
)

type CartRepository interface {
	Get(ctx context.Context, ownerID string) (domain.Cart, error)
	UpsertItem(ctx context.Context, ownerID string, item domain.CartItem) error
	DeleteItem(ctx context.Context, ownerID string, productID uuid.UUID, size string) (bool, error)
	Clear(ctx context.Context, ownerID string) error
}

type CatalogReader interface {
	Get(ctx context.Context, productID uuid.UUID) (catalogdomain.Product, error)
}
