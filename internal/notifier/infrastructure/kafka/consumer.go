package kafka

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"

	"github.com/segmentio/kafka-go"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"github.com/printeez/backend/internal/notifier/application"
	"github.com/printeez/backend/internal/order/domain"
	"github.com/printeez/backend/pkg/idempotency"
	"github.com/printeez/backend/pkg/tracing"
)

type Consumer struct {
	log    *slog.Logger
	reader *kafka.Reader
	idem   *idempotency.Store
	svc    *application.Service
	tracer trace.Tracer
}

func NewConsumer(log *slog.Logger, brokers []string, topic, group string, idem *idempotency.Store, svc *application.Service) *Consumer {
	reader := kafka.NewReader(kafka.ReaderConfig{
		Brokers: brokers,
		Topic:   topic,
		GroupID: group,
	})

	return &Consumer{
		log:    log,
		reader: reader,
		idem:   idem,
		svc:    svc,
		tracer: otel.Tracer("notifier-consumer"),
	}
}

// Run consumes order events until ctx is cancelled. A message is committed
// even when handling fails: confirmations are best effort and a poison
// message must not wedge the group.
func (c *Consumer) Run(ctx context.Context) error {
	defer c.reader.Close()

	for {
		msg, err := c.reader.FetchMessage(ctx)
		if err != nil {
			if errors.Is(err, context.Canceled) {
				return nil
			}
			return err
		}

		c.handle(ctx, msg)

		if err := c.reader.CommitMessages(ctx, msg); err != nil {
			c.log.Error("commit failed", "topic", msg.Topic, "offset", msg.Offset, "err", err)
		}
	}
}

func (c *Consumer) handle(ctx context.Context, msg kafka.Message) {
	ctx = tracing.ExtractKafkaHeaders(ctx, msg.Headers)
	ctx, span := c.tracer.Start(ctx, "notifier.handle",
		trace.WithAttributes(attribute.String("kafka.topic", msg.Topic), attribute.Int64("kafka.offset", msg.Offset)))
	defer span.End()

	key := c.idem.Key(msg.Topic, msg.Partition, msg.Offset)
	seen, err := c.idem.Seen(ctx, key)
	if err != nil {
		c.log.Error("idempotency check failed", "key", key, "err", err)
	} else if seen {
		c.log.Info("duplicate message skipped", "key", key)
		return
	}

	if eventType(msg.Headers) != domain.EventTypeOrderPlaced {
		return
	}

	var event domain.OrderPlaced
	if err := json.Unmarshal(msg.Value, &event); err != nil {
		c.log.Error("bad event payload", "topic", msg.Topic, "offset", msg.Offset, "err", err)
		return
	}

	if err := c.svc.HandleOrderPlaced(ctx, event); err != nil {
		c.log.Error("order confirmation failed", "order_id", event.OrderID, "err", err)
	}
}

func eventType(headers []kafka.Header) string {
	for _, h := range headers {
		if h.Key == "event_type" {
			return string(h.Value)
		}
	}
	return ""
}
