package postgres

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/printeez/backend/internal/wishlist/domain"
)

type Repository struct {
	log  *slog.Logger
	pool *pgxpool.Pool
}

func NewRepository(log *slog.Logger, pool *pgxpool.Pool) *Repository {
	return &Repository{log: log, pool: pool}
}

// Add is idempotent, wishing for the same product twice is fine.
func (r *Repository) Add(ctx context.Context, ownerID string, productID uuid.UUID) error {
	_, err := r.pool.Exec(ctx, `INSERT INTO wishlist_items (owner_id, product_id) VALUES ($1,$2)
			ON CONFLICT (owner_id, product_id) DO NOTHING`, ownerID, productID)
	if err != nil {
		return fmt.Errorf("insert wishlist item: %w", err)
	}
	return nil
}

func (r *Repository) Remove(ctx context.Context, ownerID string, productID uuid.UUID) (bool, error) {
	ct, err := r.pool.Exec(ctx, `DELETE FROM wishlist_items WHERE owner_id = $1 AND product_id = $2`,
		ownerID, productID)
	if err != nil {
		return false, fmt.Errorf("delete wishlist item: %w", err)
	}
	return ct.RowsAffected() > 0, nil
}

func (r *Repository) List(ctx context.Context, ownerID string) ([]domain.Item, error) {
	rows, err := r.pool.Query(ctx, `SELECT product_id, created_at FROM wishlist_items
			WHERE owner_id = $1 ORDER BY created_at, product_id`, ownerID)
	if err != nil {
		return nil, fmt.Errorf("query wishlist: %w", err)
	}
	defer rows.Close()

	var items []domain.Item
	for rows.Next() {
		var item domain.Item
		if err := rows.Scan(&item.ProductID, &item.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan wishlist item: %w", err)
		}
		items = append(items, item)
	}

	return items, rows.Err()
}
