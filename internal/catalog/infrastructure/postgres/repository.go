package postgres

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/printeez/backend/internal/catalog/domain"
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

func (r *Repository) Insert(ctx context.Context, product domain.Product) (uuid.UUID, error) {
	tx, err := r.pool.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return uuid.Nil, fmt.Errorf("pool.BeginTx: %w", err)
	}
	defer func() {
		_ = tx.Rollback(ctx)
	}()

	var productID uuid.UUID
	err = tx.QueryRow(ctx, `INSERT INTO products (name, price_amount, price_currency)
			VALUES ($1,$2,$3) RETURNING id`,
		product.Name, product.Price.Amount, product.Price.Currency.String()).Scan(&productID)
	if err != nil {
		return uuid.Nil, fmt.Errorf("insert product: %w", err)
	}

	batch := &pgx.Batch{}
	for _, s := range product.Sizes {
		batch.Queue(`INSERT INTO product_sizes (product_id, size, stock) VALUES ($1,$2,$3)`,
			productID, s.Size, s.Stock)
	}
	if err := tx.SendBatch(ctx, batch).Close(); err != nil {
		return uuid.Nil, fmt.Errorf("insert sizes: %w", err)
	}

	if err := tx.Commit(ctx); err != nil {
		return uuid.Nil, fmt.Errorf("tx.Commit: %w", err)
	}

	return productID, nil
}

func (r *Repository) Get(ctx context.Context, productID uuid.UUID) (domain.Product, error) {
	products, err := r.GetMany(ctx, []uuid.UUID{productID})
	if err != nil {
		return domain.Product{}, fmt.Errorf("r.GetMany: %w", err)
	}

	product, ok := products[productID]
	if !ok {
		return domain.Product{}, domain.ErrProductNotFound
	}

	return product, nil
}

func (r *Repository) GetMany(ctx context.Context, productIDs []uuid.UUID) (map[uuid.UUID]domain.Product, error) {
	rows, err := r.pool.Query(ctx, `SELECT id, name, price_amount, price_currency, sales_count, created_at, updated_at
			FROM products WHERE id = ANY($1)`, productIDs)
	if err != nil {
		return nil, fmt.Errorf("query products: %w", err)
	}
	defer rows.Close()

	products := make(map[uuid.UUID]domain.Product)
	for rows.Next() {
		product, err := scanProduct(rows)
		if err != nil {
			return nil, fmt.Errorf("scanProduct: %w", err)
		}
		products[product.ID] = product
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows.Err: %w", err)
	}

	if err := r.attachSizes(ctx, products); err != nil {
		return nil, fmt.Errorf("r.attachSizes: %w", err)
	}

	return products, nil
}

func (r *Repository) List(ctx context.Context) ([]domain.Product, error) {
	rows, err := r.pool.Query(ctx, `SELECT id, name, price_amount, price_currency, sales_count, created_at, updated_at
			FROM products ORDER BY created_at DESC, id`)
	if err != nil {
		return nil, fmt.Errorf("query products: %w", err)
	}
	defer rows.Close()

	var (
		ordered []uuid.UUID
		byID    = make(map[uuid.UUID]domain.Product)
	)
	for rows.Next() {
		product, err := scanProduct(rows)
		if err != nil {
			return nil, fmt.Errorf("scanProduct: %w", err)
		}
		ordered = append(ordered, product.ID)
		byID[product.ID] = product
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows.Err: %w", err)
	}

	if err := r.attachSizes(ctx, byID); err != nil {
		return nil, fmt.Errorf("r.attachSizes: %w", err)
	}

	products := make([]domain.Product, 0, len(ordered))
	for _, id := range ordered {
		products = append(products, byID[id])
	}

	return products, nil
}

// AddStock upserts a size row and bumps its stock by delta.
func (r *Repository) AddStock(ctx context.Context, productID uuid.UUID, size string, delta int) (domain.Product, error) {
	tx, err := r.pool.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return domain.Product{}, fmt.Errorf("pool.BeginTx: %w", err)
	}
	defer func() {
		_ = tx.Rollback(ctx)
	}()

	ct, err := tx.Exec(ctx, `UPDATE products SET updated_at = now() WHERE id = $1`, productID)
	if err != nil {
		return domain.Product{}, fmt.Errorf("touch product: %w", err)
	}
	if ct.RowsAffected() == 0 {
		return domain.Product{}, domain.ErrProductNotFound
	}

	_, err = tx.Exec(ctx, `INSERT INTO product_sizes (product_id, size, stock) VALUES ($1,$2,$3)
			ON CONFLICT (product_id, size) DO UPDATE SET stock = product_sizes.stock + EXCLUDED.stock`,
		productID, size, delta)
	if err != nil {
		return domain.Product{}, fmt.Errorf("upsert size: %w", err)
	}

	if err := tx.Commit(ctx); err != nil {
		return domain.Product{}, fmt.Errorf("tx.Commit: %w", err)
	}

	return r.Get(ctx, productID)
}

func (r *Repository) attachSizes(ctx context.Context, products map[uuid.UUID]domain.Product) error {
	if len(products) == 0 {
		return nil
	}

	ids := make([]uuid.UUID, 0, len(products))
	for id := range products {
		ids = append(ids, id)
	}

	rows, err := r.pool.Query(ctx, `SELECT product_id, size, stock FROM product_sizes
			WHERE product_id = ANY($1) ORDER BY product_id, size`, ids)
	if err != nil {
		return fmt.Errorf("query sizes: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var (
			productID uuid.UUID
			size      domain.SizeStock
		)
		if err := rows.Scan(&productID, &size.Size, &size.Stock); err != nil {
			return fmt.Errorf("scan size: %w", err)
		}

		product := products[productID]
		product.Sizes = append(product.Sizes, size)
		products[productID] = product
	}

	return rows.Err()
}

type productRow interface {
	Scan(dest ...any) error
}

func scanProduct(row productRow) (domain.Product, error) {
	var (
		p             domain.Product
		priceAmount   decimal.Decimal
		priceCurrency string
	)

	if err := row.Scan(&p.ID, &p.Name, &priceAmount, &priceCurrency, &p.SalesCount, &p.CreatedAt, &p.UpdatedAt); err != nil {
		return domain.Product{}, err
	}

	price, err := money.New(priceAmount, priceCurrency)
	if err != nil {
		return domain.Product{}, fmt.Errorf("money.New: %w", err)
	}
	p.Price = price

	return p, nil
}
