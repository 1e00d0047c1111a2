package events

import (
	"context"
	"encoding/json"
	"log/slog"
	"time"

	"github.com/SscSPs/shop_ledger/internal/middleware"
	"github.com/segmentio/kafka-go"
)

// ProducerName identifies this service in event envelopes.
const ProducerName = "shop-ledger"

type publisherSink interface {
	Publish(key, value []byte, headers ...kafka.Header)
}

// Publisher turns domain events into enveloped Kafka messages keyed by the
// customer or product they concern.
type Publisher struct {
	sink  publisherSink
	clock func() time.Time
}

// NewPublisher wraps a producer.
func NewPublisher(p *Producer) *Publisher {
	return &Publisher{sink: p, clock: time.Now}
}

// Publish never fails the caller. Encoding problems are logged.
func (p *Publisher) Publish(ctx context.Context, eventType string, key string, payload any) {
	env, err := NewEnvelope(ProducerName, eventType, key, payload, p.clock())
	if err != nil {
		middleware.GetLoggerFromCtx(ctx).Error("Failed to build event", slog.String("event_type", eventType), slog.String("error", err.Error()))
		return
	}
	value, err := json.Marshal(env)
	if err != nil {
		middleware.GetLoggerFromCtx(ctx).Error("Failed to encode event", slog.String("event_type", eventType), slog.String("error", err.Error()))
		return
	}
	p.sink.Publish([]byte(key), value, kafka.Header{Key: "event_type", Value: []byte(eventType)})
}
