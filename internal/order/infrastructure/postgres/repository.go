package postgres

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	catalogdomain "github.com/printeez/backend/internal/catalog/domain"
	"github.com/printeez/backend/internal/money"
	"github.com/printeez/backend/internal/order/domain"
	"github.com/shopspring/decimal"
)

type Repository struct {
	log  *slog.Logger
	pool *pgxpool.Pool
}

func NewRepository(log *slog.Logger, pool *pgxpool.Pool) *Repository {
	return &Repository{log: log, pool: pool}
}

// CreateWithOutbox writes the order, decrements stock and queues the outbox
// event in one transaction. Each decrement is conditional on enough stock
// being left ("stock >= quantity"), so two concurrent orders can never both
// take the last units: the losing transaction affects zero rows and the
// whole order rolls back.
func (r *Repository) CreateWithOutbox(ctx context.Context, o domain.Order, eventType string, payload []byte, traceparent string) error {
	tx, err := r.pool.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return fmt.Errorf("pool.BeginTx: %w", err)
	}
	defer func() {
		_ = tx.Rollback(ctx)
	}()

	_, err = tx.Exec(ctx, `INSERT INTO orders (id, user_id, address, total_amount, total_currency, status, created_at, updated_at)
			VALUES ($1,$2,$3,$4,$5,$6,$7,$8)`,
		o.ID, o.UserID, o.Address, o.Total.Amount, o.Total.Currency.String(), o.Status, o.CreatedAt, o.UpdatedAt)
	if err != nil {
		return fmt.Errorf("insert order: %w", err)
	}

	batch := &pgx.Batch{}
	for _, item := range o.Items {
		batch.Queue(`INSERT INTO order_items (order_id, product_id, product_name, size, quantity, price_amount, price_currency)
			VALUES ($1,$2,$3,$4,$5,$6,$7)`,
			o.ID, item.ProductID, item.ProductName, item.Size, item.Quantity,
			item.UnitPrice.Amount, item.UnitPrice.Currency.String())
	}
	if err := tx.SendBatch(ctx, batch).Close(); err != nil {
		return fmt.Errorf("insert order items: %w", err)
	}

	for _, item := range o.Items {
		if err := reserveStock(ctx, tx, item); err != nil {
			return err
		}
	}

	_, err = tx.Exec(ctx, `INSERT INTO outbox (aggregate_type, aggregate_id, type, payload, traceparent)
			VALUES ($1,$2,$3,$4,$5)`,
		"order", o.ID.String(), eventType, payload, traceparent)
	if err != nil {
		return fmt.Errorf("insert outbox: %w", err)
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("tx.Commit: %w", err)
	}

	return nil
}

// reserveStock decrements one size counter and bumps the sales counter. A
// decrement that matches no row means the product vanished, the size does
// not exist, or the stock is too low; the follow-up reads only pick the
// right error, the transaction rolls back either way.
func reserveStock(ctx context.Context, tx pgx.Tx, item domain.OrderItem) error {
	ct, err := tx.Exec(ctx, `UPDATE product_sizes SET stock = stock - $3
			WHERE product_id = $1 AND size = $2 AND stock >= $3`,
		item.ProductID, item.Size, item.Quantity)
	if err != nil {
		return fmt.Errorf("decrement stock: %w", err)
	}

	if ct.RowsAffected() == 0 {
		var productExists bool
		if err := tx.QueryRow(ctx, `SELECT EXISTS (SELECT 1 FROM products WHERE id = $1)`,
			item.ProductID).Scan(&productExists); err != nil {
			return fmt.Errorf("check product: %w", err)
		}
		if !productExists {
			return fmt.Errorf("product[%s]: %w", item.ProductID, catalogdomain.ErrProductNotFound)
		}

		var sizeExists bool
		if err := tx.QueryRow(ctx, `SELECT EXISTS (SELECT 1 FROM product_sizes WHERE product_id = $1 AND size = $2)`,
			item.ProductID, item.Size).Scan(&sizeExists); err != nil {
			return fmt.Errorf("check size: %w", err)
		}
		if !sizeExists {
			return fmt.Errorf("product[%s] size[%s]: %w", item.ProductID, item.Size, catalogdomain.ErrSizeUnavailable)
		}

		return fmt.Errorf("product[%s] size[%s] quantity[%d]: %w",
			item.ProductID, item.Size, item.Quantity, catalogdomain.ErrInsufficientStock)
	}

	_, err = tx.Exec(ctx, `UPDATE products SET sales_count = sales_count + $2, updated_at = now() WHERE id = $1`,
		item.ProductID, item.Quantity)
	if err != nil {
		return fmt.Errorf("increment sales: %w", err)
	}

	return nil
}

func (r *Repository) Get(ctx context.Context, orderID uuid.UUID) (domain.Order, error) {
	var o domain.Order

	var (
		totalAmount           decimal.Decimal
		totalCurrency, status string
	)
	err := r.pool.QueryRow(ctx, `SELECT id, user_id, address, total_amount, total_currency, status, created_at, updated_at
			FROM orders WHERE id = $1`, orderID).
		Scan(&o.ID, &o.UserID, &o.Address, &totalAmount, &totalCurrency, &status, &o.CreatedAt, &o.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return o, fmt.Errorf("order[%s]: %w", orderID, domain.ErrOrderNotFound)
		}
		return o, fmt.Errorf("query order: %w", err)
	}

	if o.Total, err = money.New(totalAmount, totalCurrency); err != nil {
		return o, fmt.Errorf("money.New: %w", err)
	}
	if o.Status, err = domain.ToStatus(status); err != nil {
		return o, fmt.Errorf("domain.ToStatus[%s]: %w", status, err)
	}

	rows, err := r.pool.Query(ctx, `SELECT product_id, product_name, size, quantity, price_amount, price_currency
			FROM order_items WHERE order_id = $1 ORDER BY product_id, size`, orderID)
	if err != nil {
		return o, fmt.Errorf("query order items: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		item, err := scanOrderItem(rows)
		if err != nil {
			return o, fmt.Errorf("scanOrderItem: %w", err)
		}
		o.Items = append(o.Items, item)
	}

	return o, rows.Err()
}

func (r *Repository) ListByUser(ctx context.Context, userID string) ([]domain.Order, error) {
	return r.list(ctx, `WHERE o.user_id = $1`, userID)
}

func (r *Repository) ListAll(ctx context.Context) ([]domain.Order, error) {
	return r.list(ctx, ``)
}

func (r *Repository) UpdateStatus(ctx context.Context, orderID uuid.UUID, status domain.Status) (domain.Order, error) {
	ct, err := r.pool.Exec(ctx, `UPDATE orders SET status = $2, updated_at = now() WHERE id = $1`,
		orderID, status)
	if err != nil {
		return domain.Order{}, fmt.Errorf("update status: %w", err)
	}
	if ct.RowsAffected() == 0 {
		return domain.Order{}, fmt.Errorf("order[%s]: %w", orderID, domain.ErrOrderNotFound)
	}

	return r.Get(ctx, orderID)
}

func (r *Repository) list(ctx context.Context, where string, args ...any) ([]domain.Order, error) {
	query := `SELECT o.id, o.user_id, o.address, o.total_amount, o.total_currency, o.status, o.created_at, o.updated_at,
			i.product_id, i.product_name, i.size, i.quantity, i.price_amount, i.price_currency
			FROM orders o JOIN order_items i ON i.order_id = o.id ` + where +
		` ORDER BY o.created_at DESC, o.id, i.product_id, i.size`

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query orders: %w", err)
	}
	defer rows.Close()

	var (
		ordered []uuid.UUID
		byID    = make(map[uuid.UUID]domain.Order)
	)
	for rows.Next() {
		var (
			o                     domain.Order
			totalAmount           decimal.Decimal
			totalCurrency, status string
			item                  domain.OrderItem
			priceAmount           decimal.Decimal
			priceCurrency         string
		)

		err := rows.Scan(&o.ID, &o.UserID, &o.Address, &totalAmount, &totalCurrency, &status, &o.CreatedAt, &o.UpdatedAt,
			&item.ProductID, &item.ProductName, &item.Size, &item.Quantity, &priceAmount, &priceCurrency)
		if err != nil {
			return nil, fmt.Errorf("scan order row: %w", err)
		}

		if _, seen := byID[o.ID]; !seen {
			if o.Total, err = money.New(totalAmount, totalCurrency); err != nil {
				return nil, fmt.Errorf("money.New: %w", err)
			}
			if o.Status, err = domain.ToStatus(status); err != nil {
				return nil, fmt.Errorf("domain.ToStatus[%s]: %w", status, err)
			}
			ordered = append(ordered, o.ID)
			byID[o.ID] = o
		}

		if item.UnitPrice, err = money.New(priceAmount, priceCurrency); err != nil {
			return nil, fmt.Errorf("money.New: %w", err)
		}

		grouped := byID[o.ID]
		grouped.Items = append(grouped.Items, item)
		byID[o.ID] = grouped
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows.Err: %w", err)
	}

	orders := make([]domain.Order, 0, len(ordered))
	for _, id := range ordered {
		orders = append(orders, byID[id])
	}

	return orders, nil
}

type orderItemRow interface {
	Scan(dest ...any) error
}

func scanOrderItem(row orderItemRow) (domain.OrderItem, error) {
	var (
		item          domain.OrderItem
		priceAmount   decimal.Decimal
		priceCurrency string
	)

	if err := row.Scan(&item.ProductID, &item.ProductName, &item.Size, &item.Quantity, &priceAmount, &priceCurrency); err != nil {
		return domain.OrderItem{}, err
	}

	price, err := money.New(priceAmount, priceCurrency)
	if err != nil {
		return domain.OrderItem{}, fmt.Errorf("money.New: %w", err)
	}
	item.UnitPrice = price

	return item, nil
}
