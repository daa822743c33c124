package application

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/printeez/backend/internal/cart/domain"
	catalogdomain "github.com/printeez/backend/internal/catalog/domain"
)

var ErrInvalidQuantity = errors.New("quantity must be at least 1")

type Service struct {
	repo    CartRepository
	catalog CatalogReader
}

func NewService(repo CartRepository, catalog CatalogReader) *Service {
	return &Service{repo: repo, catalog: catalog}
}

func (s *Service) Get(ctx context.Context, ownerID string) (domain.Cart, error) {
	cart, err := s.repo.Get(ctx, ownerID)
	if err != nil {
		return domain.Cart{}, fmt.Errorf("repo.Get: %w", err)
	}
	return cart, nil
}

// AddItem snapshots the product name and current price into the cart. The
// requested size must exist, but stock is not reserved until checkout.
func (s *Service) AddItem(ctx context.Context, ownerID string, productID uuid.UUID, size string, quantity int) (domain.Cart, error) {
	if quantity < 1 {
		return domain.Cart{}, ErrInvalidQuantity
	}

	product, err := s.catalog.Get(ctx, productID)
	if err != nil {
		return domain.Cart{}, fmt.Errorf("catalog.Get: %w", err)
	}

	if _, ok := product.StockFor(size); !ok {
		return domain.Cart{}, fmt.Errorf("product[%s] size[%s]: %w", productID, size, catalogdomain.ErrSizeUnavailable)
	}

	item := domain.CartItem{
		ProductID:   product.ID,
		ProductName: product.Name,
		Size:        size,
		Quantity:    quantity,
		UnitPrice:   product.Price,
	}
	if err := s.repo.UpsertItem(ctx, ownerID, item); err != nil {
		return domain.Cart{}, fmt.Errorf("repo.UpsertItem: %w", err)
	}

	return s.Get(ctx, ownerID)
}

func (s *Service) RemoveItem(ctx context.Context, ownerID string, productID uuid.UUID, size string) (bool, error) {
	removed, err := s.repo.DeleteItem(ctx, ownerID, productID, size)
	if err != nil {
		return false, fmt.Errorf("repo.DeleteItem: %w", err)
	}
	return removed, nil
}

func (s *Service) Clear(ctx context.Context, ownerID string) error {
	if err := s.repo.Clear(ctx, ownerID); err != nil {
		return fmt.Errorf("repo.Clear: %w", err)
	}
	return nil
}
