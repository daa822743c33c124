package integration

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/testcontainers/testcontainers-go/modules/kafka"
	"github.com/testcontainers/testcontainers-go/modules/postgres"

	"github.com/printeez/backend/internal/db"
)

type Env struct {
	PG      *postgres.PostgresContainer
	Kafka   *kafka.KafkaContainer
	Pool    *pgxpool.Pool
	Brokers []string
}

func Setup(ctx context.Context) (*Env, error) {
	pgC, err := postgres.Run(ctx,
		"postgres:16-alpine",
		postgres.WithDatabase("printeez"),
		postgres.WithUsername("postgres"),
		postgres.WithPassword("postgres"),
		postgres.BasicWaitStrategies(),
	)
	if err != nil {
		return nil, fmt.Errorf("postgres.Run: %w", err)
	}

	pgURL, err := pgC.ConnectionString(ctx, "sslmode=disable")
	if err != nil {
		return nil, fmt.Errorf("pgC.ConnectionString: %w", err)
	}

	pool, err := pgxpool.New(ctx, pgURL)
	if err != nil {
		return nil, fmt.Errorf("pgxpool.New: %w", err)
	}

	if err := db.Apply(ctx, pool); err != nil {
		return nil, fmt.Errorf("db.Apply: %w", err)
	}

	kafkaC, err := kafka.Run(ctx,
		"confluentinc/confluent-local:7.5.0",
		kafka.WithClusterID("printeez-test"),
	)
	if err != nil {
		return nil, fmt.Errorf("kafka.Run: %w", err)
	}

	brokers, err := kafkaC.Brokers(ctx)
	if err != nil {
		return nil, fmt.Errorf("kafkaC.Brokers: %w", err)
	}

	return &Env{
		PG:      pgC,
		Kafka:   kafkaC,
		Pool:    pool,
		Brokers: brokers,
	}, nil
}

func (e *Env) Teardown(ctx context.Context) {
	if e.Pool != nil {
		e.Pool.Close()
	}
	if e.Kafka != nil {
		_ = e.Kafka.Terminate(ctx)
	}
	if e.PG != nil {
		_ = e.PG.Terminate(ctx)
	}
}
