package application

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/google/uuid"
	catalogdomain "github.com/printeez/backend/internal/catalog/domain"
	"github.com/printeez/backend/internal/order/domain"
	"github.com/samber/lo"
)

var (
	ErrEmptyOrder      = errors.New("order has no items")
	ErrInvalidQuantity = errors.New("quantity must be at least 1")
	ErrInvalidAddress  = errors.New("address is empty")
)

type LineItemRequest struct {
	ProductID uuid.UUID
	Size      string
	Quantity  int
}

type Service struct {
	repo    OrderRepository
	catalog CatalogReader
}

func NewService(repo OrderRepository, catalog CatalogReader) *Service {
	return &Service{repo: repo, catalog: catalog}
}

// PlaceOrder validates the requested line items against the catalog,
// snapshots names and prices, and persists the order together with the stock
// decrement and the OrderPlaced outbox event. Either everything is stored or
// nothing is.
func (s *Service) PlaceOrder(ctx context.Context, userID, email, address string, requests []LineItemRequest, traceparent string) (domain.Order, error) {
	var o domain.Order

	if len(requests) == 0 {
		return o, ErrEmptyOrder
	}
	if address == "" {
		return o, ErrInvalidAddress
	}
	for _, req := range requests {
		if req.Quantity < 1 {
			return o, fmt.Errorf("product[%s] size[%s]: %w", req.ProductID, req.Size, ErrInvalidQuantity)
		}
	}

	productIDs := lo.Uniq(lo.Map(requests, func(req LineItemRequest, _ int) uuid.UUID {
		return req.ProductID
	}))

	products, err := s.catalog.GetMany(ctx, productIDs)
	if err != nil {
		return o, fmt.Errorf("catalog.GetMany: %w", err)
	}

	items := make([]domain.OrderItem, 0, len(requests))
	for _, req := range requests {
		product, ok := products[req.ProductID]
		if !ok {
			return o, fmt.Errorf("product[%s]: %w", req.ProductID, catalogdomain.ErrProductNotFound)
		}

		stock, ok := product.StockFor(req.Size)
		if !ok {
			return o, fmt.Errorf("product[%s] size[%s]: %w", req.ProductID, req.Size, catalogdomain.ErrSizeUnavailable)
		}
		// Advisory only. The conditional decrement inside the transaction is
		// what actually prevents overselling.
		if stock < req.Quantity {
			return o, fmt.Errorf("product[%s] size[%s]: %w", req.ProductID, req.Size, catalogdomain.ErrInsufficientStock)
		}

		items = append(items, domain.OrderItem{
			ProductID:   product.ID,
			ProductName: product.Name,
			Size:        req.Size,
			Quantity:    req.Quantity,
			UnitPrice:   product.Price,
		})
	}

	o, err = domain.NewOrder(userID, address, items)
	if err != nil {
		return domain.Order{}, fmt.Errorf("domain.NewOrder: %w", err)
	}

	payload, err := json.Marshal(domain.NewOrderPlaced(o, email))
	if err != nil {
		return domain.Order{}, fmt.Errorf("json.Marshal: %w", err)
	}

	if err := s.repo.CreateWithOutbox(ctx, o, domain.EventTypeOrderPlaced, payload, traceparent); err != nil {
		return domain.Order{}, fmt.Errorf("repo.CreateWithOutbox: %w", err)
	}

	return o, nil
}

// UpdateStatus sets an order status. Any status may move to any other, the
// source system never restricted transitions; repeating a transition is a
// no-op that still succeeds.
func (s *Service) UpdateStatus(ctx context.Context, orderID uuid.UUID, status string) (domain.Order, error) {
	parsed, err := domain.ToStatus(status)
	if err != nil {
		return domain.Order{}, fmt.Errorf("status[%s]: %w", status, err)
	}

	o, err := s.repo.UpdateStatus(ctx, orderID, parsed)
	if err != nil {
		return domain.Order{}, fmt.Errorf("repo.UpdateStatus: %w", err)
	}

	return o, nil
}

func (s *Service) GetOrder(ctx context.Context, orderID uuid.UUID) (domain.Order, error) {
	o, err := s.repo.Get(ctx, orderID)
	if err != nil {
		return domain.Order{}, fmt.Errorf("repo.Get: %w", err)
	}
	return o, nil
}

func (s *Service) ListByUser(ctx context.Context, userID string) ([]domain.Order, error) {
	orders, err := s.repo.ListByUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("repo.ListByUser: %w", err)
	}
	return orders, nil
}

func (s *Service) ListAll(ctx context.Context) ([]domain.Order, error) {
	orders, err := s.repo.ListAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("repo.ListAll: %w", err)
	}
	return orders, nil
}
