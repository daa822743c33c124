package domain

import (
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/printeez/backend/internal/money"
)

var (
	ErrProductNotFound   = errors.New("product not found")
	ErrSizeUnavailable   = errors.New("size unavailable")
	ErrInsufficientStock = errors.New("insufficient stock")
)

// Product is a catalog entry with a per-size stock counter and a running
// sales counter. Stock never goes below zero, sales only grow.
type Product struct {
	ID         uuid.UUID
	Name       string
	Price      money.Money
	Sizes      []SizeStock
	SalesCount int64

	CreatedAt time.Time
	UpdatedAt time.Time
}

type SizeStock struct {
	Size  string
	Stock int
}

func (p Product) StockFor(size string) (int, bool) {
	for _, s := range p.Sizes {
		if s.Size == size {
			return s.Stock, true
		}
	}
	return 0, false
}

func (p Product) Validate() error {
	if p.Name == "" {
		return errors.New("name is empty")
	}

	if err := p.Price.Validate(); err != nil {
		return err
	}

	if len(p.Sizes) == 0 {
		return errors.New("no sizes")
	}

	for _, s := range p.Sizes {
		if s.Size == "" {
			return errors.New("size name is empty")
		}
		if s.Stock < 0 {
			return errors.New("stock is negative")
		}
	}

	return nil
}
