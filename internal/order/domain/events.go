package domain

import (
	"time"

	"github.com/google/uuid"
	"github.com/printeez/backend/internal/money"
)

const EventTypeOrderPlaced = "OrderPlaced"

// OrderPlaced is published through the outbox after the order transaction
// commits. It carries everything the notifier needs, so the notifier never
// reads the database.
type OrderPlaced struct {
	OrderID  uuid.UUID    `json:"order_id"`
	UserID   string       `json:"user_id"`
	Email    string       `json:"email"`
	Address  string       `json:"address"`
	Items    []PlacedItem `json:"items"`
	Total    money.Money  `json:"total"`
	PlacedAt time.Time    `json:"placed_at"`
}

type PlacedItem struct {
	ProductName string      `json:"product_name"`
	Size        string      `json:"size"`
	Quantity    int         `json:"quantity"`
	UnitPrice   money.Money `json:"unit_price"`
}

func NewOrderPlaced(o Order, email string) OrderPlaced {
	items := make([]PlacedItem, 0, len(o.Items))
	for _, item := range o.Items {
		items = append(items, PlacedItem{
			ProductName: item.ProductName,
			Size:        item.Size,
			Quantity:    item.Quantity,
			UnitPrice:   item.UnitPrice,
		})
	}

	return OrderPlaced{
		OrderID:  o.ID,
		UserID:   o.UserID,
		Email:    email,
		Address:  o.Address,
		Items:    items,
		Total:    o.Total,
		PlacedAt: o.CreatedAt,
	}
}
