package db

import (
	"context"
	_ "embed"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5/pgxpool"
)

//go:embed schema.sql
var schema string

// Apply creates the schema if it does not exist yet. Statements are executed
// one by one because pgx runs in extended query mode.
func Apply(ctx context.Context, pool *pgxpool.Pool) error {
	for _, stmt := range strings.Split(schema, ";") {
		stmt = strings.TrimSpace(stmt)
		if stmt == "" {
			continue
		}

		if _, err := pool.Exec(ctx, stmt); err != nil {
			return fmt.Errorf("pool.Exec[%.40s]: %w", stmt, err)
		}
	}

	return nil
}
