package application

import (
	"context"

	"github.com/google/uuid"
	"github.com/printeez/backend/internal/catalog/domain"
)

type ProductRepository interface {
	Insert(ctx context.Context, product domain.Product) (uuid.UUID, error)
	Get(ctx context.Context, productID uuid.UUID) (domain.Product, error)
	GetMany(ctx context.Context, productIDs []uuid.UUID) (map[uuid.UUID]domain.Product, error)
	List(ctx context.Context) ([]domain.Product, error)
	AddStock(ctx context.Context, productID uuid.UUID, size string, delta int) (domain.Product, error)
}
