package main

import (
	"context"
	"os"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/printeez/backend/internal/config"
	"github.com/printeez/backend/internal/notifier/application"
	notifierkafka "github.com/printeez/backend/internal/notifier/infrastructure/kafka"
	logsender "github.com/printeez/backend/internal/notifier/infrastructure/log"
	smtpsender "github.com/printeez/backend/internal/notifier/infrastructure/smtp"
	"github.com/printeez/backend/pkg/idempotency"
	"github.com/printeez/backend/pkg/logging"
	"github.com/printeez/backend/pkg/shutdown"
	"github.com/printeez/backend/pkg/tracing"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic(err)
	}
	log := logging.New("notifier", cfg.LogLevel)

	ctx, cancel := shutdown.WithSignals(context.Background())
	defer cancel()

	tp, err := tracing.Init(ctx, "notifier", cfg.Telemetry.OTLPEndpoint, log)
	if err != nil {
		log.Error("otel init failed", "err", err)
		os.Exit(1)
	}
	defer func() { _ = tp.Shutdown(context.Background()) }()

	rdb := redis.NewClient(&redis.Options{Addr: cfg.Redis.Addr})
	defer rdb.Close()

	idem := idempotency.NewStore(rdb, 24*time.Hour)

	var sender application.Sender
	if cfg.SMTP.Addr != "" {
		sender = smtpsender.NewSender(cfg.SMTP.Addr, cfg.SMTP.From, cfg.SMTP.Username, cfg.SMTP.Password)
		log.Info("smtp sender enabled", "addr", cfg.SMTP.Addr)
	} else {
		sender = logsender.NewSender(log)
		log.Info("smtp not configured, confirmations go to the log")
	}

	svc := application.NewService(log, sender)
	consumer := notifierkafka.NewConsumer(log, cfg.Kafka.Brokers, cfg.Kafka.OrderTopic, cfg.Kafka.Group, idem, svc)

	log.Info("notifier consuming", "topic", cfg.Kafka.OrderTopic, "group", cfg.Kafka.Group)
	if err := consumer.Run(ctx); err != nil {
		log.Error("consumer stopped with error", "err", err)
		os.Exit(1)
	}

	log.Info("notifier shutdown complete")
}
