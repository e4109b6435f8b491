package events

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/segmentio/kafka-go"
)

// Topic carries every catalog and user administration event.
const Topic = "storefront_events"

const publishTimeout = 5 * time.Second

// Producer publishes admin mutation events to Kafka. A nil Producer is
// valid and publishes nothing, so deployments without a broker run
// unchanged.
type Producer struct {
	writer *kafka.Writer
}

// NewProducer builds a producer for the given brokers. Returns nil
// when no brokers are configured.
func NewProducer(brokers []string) *Producer {
	if len(brokers) == 0 {
		return nil
	}
	w := &kafka.Writer{
		Addr:         kafka.TCP(brokers...),
		Topic:        Topic,
		Balancer:     &kafka.LeastBytes{},
		RequiredAcks: kafka.RequireOne,
	}
	return &Producer{writer: w}
}

// Publish sends one event keyed by the mutated entity's id. Events are
// best-effort audit signals; callers log failures instead of failing
// the request.
func (p *Producer) Publish(ctx context.Context, key string, event map[string]any) error {
	if p == nil || p.writer == nil {
		return nil
	}
	data, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("events: marshal: %w", err)
	}

	ctx, cancel := context.WithTimeout(ctx, publishTimeout)
	defer cancel()

	if err := p.writer.WriteMessages(ctx, kafka.Message{
		Key:   []byte(key),
		Value: data,
	}); err != nil {
		return fmt.Errorf("events: write: %w", err)
	}
	return nil
}

// Close flushes and closes the underlying writer.
func (p *Producer) Close() error {
	if p == nil || p.writer == nil {
		return nil
	}
	return p.writer.Close()
}
