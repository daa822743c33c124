package application

import (
	"context"
	"errors"
	"log/slog"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/printeez/backend/internal/money"
	"github.com/printeez/backend/internal/order/domain"
)

type fakeSender struct {
	to, subject, body string
	err               error
}

func (f *fakeSender) Send(_ context.Context, to, subject, body string) error {
	f.to, f.subject, f.body = to, subject, body
	return f.err
}

func placedEvent(t *testing.T) domain.OrderPlaced {
	t.Helper()

	price, err := money.New(decimal.RequireFromString("19.99"), "USD")
	require.NoError(t, err)

	return domain.OrderPlaced{
		OrderID: uuid.New(),
		UserID:  "user-1",
		Email:   "buyer@example.com",
		Address: "1 Main St",
		Items: []domain.PlacedItem{
			{ProductName: "Gopher Tee", Size: "M", Quantity: 2, UnitPrice: price},
		},
		Total:    price.Mul(2),
		PlacedAt: time.Now().UTC(),
	}
}

func TestHandleOrderPlaced(t *testing.T) {
	sender := &fakeSender{}
	svc := NewService(slog.New(slog.DiscardHandler), sender)

	event := placedEvent(t)
	require.NoError(t, svc.HandleOrderPlaced(context.Background(), event))

	assert.Equal(t, "buyer@example.com", sender.to)
	assert.Contains(t, sender.subject, event.OrderID.String())
	assert.Contains(t, sender.body, "2 x Gopher Tee (M)")
	assert.Contains(t, sender.body, "Total: 39.98 USD")
	assert.Contains(t, sender.body, "1 Main St")
}

func TestHandleOrderPlacedSendFailure(t *testing.T) {
	sender := &fakeSender{err: errors.New("smtp down")}
	svc := NewService(slog.New(slog.DiscardHandler), sender)

	err := svc.HandleOrderPlaced(context.Background(), placedEvent(t))
	require.ErrorContains(t, err, "smtp down")
}
