package domain

import (
	"time"

	"github.com/google/uuid"
	"github.com/printeez/backend/internal/money"
)

// Cart holds what a user intends to order. Item name and price are
// snapshotted on add, the same way orders snapshot them, so the cart shows
// the price the user saw.
type Cart struct {
	OwnerID string
	Items   []CartItem
}

type CartItem struct {
	ProductID   uuid.UUID
	ProductName string
	Size        string
	Quantity    int
	UnitPrice   money.Money

	CreatedAt time.Time
}

func (i CartItem) Subtotal() money.Money {
	return i.UnitPrice.Mul(int64(i.Quantity))
}
