package application

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/printeez/backend/internal/catalog/domain"
)

var ErrInvalidProduct = errors.New("invalid product")

type Service struct {
	repo ProductRepository
}

func NewService(repo ProductRepository) *Service {
	return &Service{repo: repo}
}

func (s *Service) CreateProduct(ctx context.Context, product domain.Product) (domain.Product, error) {
	if err := product.Validate(); err != nil {
		return domain.Product{}, fmt.Errorf("%w: %w", ErrInvalidProduct, err)
	}

	productID, err := s.repo.Insert(ctx, product)
	if err != nil {
		return domain.Product{}, fmt.Errorf("repo.Insert: %w", err)
	}

	created, err := s.repo.Get(ctx, productID)
	if err != nil {
		return domain.Product{}, fmt.Errorf("repo.Get: %w", err)
	}

	return created, nil
}

func (s *Service) GetProduct(ctx context.Context, productID uuid.UUID) (domain.Product, error) {
	product, err := s.repo.Get(ctx, productID)
	if err != nil {
		return domain.Product{}, fmt.Errorf("repo.Get: %w", err)
	}
	return product, nil
}

func (s *Service) ListProducts(ctx context.Context) ([]domain.Product, error) {
	products, err := s.repo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("repo.List: %w", err)
	}
	return products, nil
}

// Restock adds delta units to a product size, creating the size if needed.
func (s *Service) Restock(ctx context.Context, productID uuid.UUID, size string, delta int) (domain.Product, error) {
	if size == "" {
		return domain.Product{}, fmt.Errorf("%w: size is empty", ErrInvalidProduct)
	}
	if delta <= 0 {
		return domain.Product{}, fmt.Errorf("%w: delta must be positive", ErrInvalidProduct)
	}

	product, err := s.repo.AddStock(ctx, productID, size, delta)
	if err != nil {
		return domain.Product{}, fmt.Errorf("repo.AddStock: %w", err)
	}

	return product, nil
}
