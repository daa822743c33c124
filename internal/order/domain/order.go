package domain

import (
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/printeez/backend/internal/money"
)

var ErrOrderNotFound = errors.New("order not found")

// Order is the persisted record of a placed order. Item names and prices are
// snapshots taken at placement time: later catalog edits never change a
// historical order or its total.
type Order struct {
	ID      uuid.UUID
	UserID  string
	Items   []OrderItem
	Total   money.Money
	Address string
	Status  Status

	CreatedAt time.Time
	UpdatedAt time.Time
}

type OrderItem struct {
	ProductID   uuid.UUID
	ProductName string
	Size        string
	Quantity    int
	UnitPrice   money.Money
}

func (i OrderItem) Subtotal() money.Money {
	return i.UnitPrice.Mul(int64(i.Quantity))
}

// NewOrder computes the total from the snapshotted items. All items must
// share one currency.
func NewOrder(userID, address string, items []OrderItem) (Order, error) {
	if len(items) == 0 {
		return Order{}, fmt.Errorf("no items in order")
	}

	total := items[0].Subtotal()
	for _, item := range items[1:] {
		sum, err := total.Add(item.Subtotal())
		if err != nil {
			return Order{}, fmt.Errorf("total.Add: %w", err)
		}
		total = sum
	}

	now := time.Now().UTC()
	return Order{
		ID:        uuid.New(),
		UserID:    userID,
		Items:     items,
		Total:     total,
		Address:   address,
		Status:    StatusPending,
		CreatedAt: now,
		UpdatedAt: now,
	}, nil
}
