package postgres

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/printeez/backend/internal/cart/domain"
	"github.com/printeez/backend/internal/money"
	"github.com/shopspring/decimal"
)

type Repository struct {
	log  *slog.Logger
	pool *pgxpool.Pool
}

func NewRepository(log *slog.Logger, pool *pgxpool.Pool) *Repository {
	return &Repository{log: log, pool: pool}
}

func (r *Repository) Get(ctx context.Context, ownerID string) (domain.Cart, error) {
	rows, err := r.pool.Query(ctx, `SELECT product_id, product_name, size, quantity, price_amount, price_currency, created_at
			FROM cart_items WHERE owner_id = $1 ORDER BY created_at, product_id, size`, ownerID)
	if err != nil {
		return domain.Cart{}, fmt.Errorf("query cart items: %w", err)
	}
	defer rows.Close()

	cart := domain.Cart{OwnerID: ownerID}
	for rows.Next() {
		var (
			item          domain.CartItem
			priceAmount   decimal.Decimal
			priceCurrency string
		)
		if err := rows.Scan(&item.ProductID, &item.ProductName, &item.Size, &item.Quantity,
			&priceAmount, &priceCurrency, &item.CreatedAt); err != nil {
			return domain.Cart{}, fmt.Errorf("scan cart item: %w", err)
		}

		if item.UnitPrice, err = money.New(priceAmount, priceCurrency); err != nil {
			return domain.Cart{}, fmt.Errorf("money.New: %w", err)
		}

		cart.Items = append(cart.Items, item)
	}

	return cart, rows.Err()
}

// UpsertItem replaces quantity and price snapshot if the (product, size)
// pair is already in the cart.
func (r *Repository) UpsertItem(ctx context.Context, ownerID string, item domain.CartItem) error {
	_, err := r.pool.Exec(ctx, `INSERT INTO cart_items (owner_id, product_id, size, product_name, quantity, price_amount, price_currency)
			VALUES ($1,$2,$3,$4,$5,$6,$7)
			ON CONFLICT (owner_id, product_id, size)
			DO UPDATE SET quantity = $5, product_name = $4, price_amount = $6, price_currency = $7`,
		ownerID, item.ProductID, item.Size, item.ProductName, item.Quantity,
		item.UnitPrice.Amount, item.UnitPrice.Currency.String())
	if err != nil {
		return fmt.Errorf("upsert cart item: %w", err)
	}

	return nil
}

func (r *Repository) DeleteItem(ctx context.Context, ownerID string, productID uuid.UUID, size string) (bool, error) {
	ct, err := r.pool.Exec(ctx, `DELETE FROM cart_items WHERE owner_id = $1 AND product_id = $2 AND size = $3`,
		ownerID, productID, size)
	if err != nil {
		return false, fmt.Errorf("delete cart item: %w", err)
	}

	return ct.RowsAffected() > 0, nil
}

func (r *Repository) Clear(ctx context.Context, ownerID string) error {
	if _, err := r.pool.Exec(ctx, `DELETE FROM cart_items WHERE owner_id = $1`, ownerID); err != nil {
		return fmt.Errorf("clear cart: %w", err)
	}
	return nil
}
