package application

import (
	"context"

	"github.com/google/uuid"
	catalogdomain "github.com/printeez/backend/internal/catalog/domain"
	"github.com/printeez/backend/internal/order/domain"
)

// OrderRepository persists orders. CreateWithOutbox must reserve stock,
// write the order and queue the outbox event in a single transaction.
type OrderRepository interface {
	CreateWithOutbox(ctx context.Context, o domain.Order, eventType string, payload []byte, traceparent string) error
	Get(ctx context.Context, orderID uuid.UUID) (domain.Order, error)
	ListByUser(ctx context.Context, userID string) ([]domain.Order, error)
	ListAll(ctx context.Context) ([]domain.Order, error)
	UpdateStatus(ctx context.Context, orderID uuid.UUID, status domain.Status) (domain.Order, error)
}

// CatalogReader resolves products for the pre-flight availability check and
// the price/name snapshot. The authoritative stock check happens later,
// inside the order transaction.
type CatalogReader interface {
	GetMany(ctx context.Context, productIDs []uuid.UUID) (map[uuid.UUID]catalogdomain.Product, error)
}
