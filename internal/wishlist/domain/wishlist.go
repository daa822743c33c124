package domain

import (
	"time"

	"github.com/google/uuid"
)

// Wishlist is a per-user set of product ids.
type Item struct {
	ProductID uuid.UUID
	CreatedAt time.Time
}
