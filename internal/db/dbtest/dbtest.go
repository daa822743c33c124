// Package dbtest spins up a throwaway postgres for repository suites.
package dbtest

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"

	"github.com/printeez/backend/internal/db"
)

// StartPostgres runs a postgres container, applies the schema and returns a
// ready pool. The caller terminates the container and closes the pool.
func StartPostgres(ctx context.Context) (testcontainers.Container, *pgxpool.Pool, error) {
	container, err := postgres.Run(ctx,
		"postgres:16-alpine",
		postgres.WithDatabase("printeez"),
		postgres.WithUsername("postgres"),
		postgres.WithPassword("postgres"),
		postgres.BasicWaitStrategies(),
	)
	if err != nil {
		return nil, nil, fmt.Errorf("postgres.Run: %w", err)
	}

	connStr, err := container.ConnectionString(ctx, "sslmode=disable")
	if err != nil {
		return container, nil, fmt.Errorf("container.ConnectionString: %w", err)
	}

	pool, err := pgxpool.New(ctx, connStr)
	if err != nil {
		return container, nil, fmt.Errorf("pgxpool.New: %w", err)
	}

	if err := db.Apply(ctx, pool); err != nil {
		pool.Close()
		return container, nil, fmt.Errorf("db.Apply: %w", err)
	}

	return container, pool, nil
}
