package kafka

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	kafkago "github.com/segmentio/kafka-go"

	"github.com/couchcryptid/radiooperator-site/internal/config"
	"github.com/couchcryptid/radiooperator-site/internal/observability"
	"github.com/couchcryptid/radiooperator-site/internal/usage"
)

// messageWriter is the subset of *kafkago.Writer the publisher needs.
type messageWriter interface {
	WriteMessages(ctx context.Context, msgs ...kafkago.Message) error
	Close() error
}

// Publisher produces usage log entries to a Kafka topic.
// It implements usage.Publisher.
type Publisher struct {
	writer  messageWriter
	metrics *observability.Metrics
	logger  *slog.Logger
}

// NewPublisher creates a Kafka producer for the configured usage topic.
// Writes are async so a slow broker never holds up an API response.
func NewPublisher(cfg *config.Config, metrics *observability.Metrics, logger *slog.Logger) *Publisher {
	p := &Publisher{metrics: metrics, logger: logger}
	p.writer = &kafkago.Writer{
		Addr:         kafkago.TCP(cfg.KafkaBrokers...),
		Topic:        cfg.KafkaUsageTopic,
		Balancer:     &kafkago.LeastBytes{},
		RequiredAcks: kafkago.RequireOne,
		BatchTimeout: 100 * time.Millisecond,
		Async:        true,
		Completion:   p.completed,
	}
	return p
}

// Publish serializes e and hands it to the writer.
func (p *Publisher) Publish(ctx context.Context, e usage.Entry) error {
	msg, err := serializeToMessage(e)
	if err != nil {
		p.metrics.UsagePublishErrors.Inc()
		return err
	}
	if err := p.writer.WriteMessages(ctx, msg); err != nil {
		p.metrics.UsagePublishErrors.Inc()
		return fmt.Errorf("publish usage entry: %w", err)
	}
	return nil
}

// completed is called by the async writer once a batch is acknowledged or fails.
func (p *Publisher) completed(msgs []kafkago.Message, err error) {
	if err != nil {
		p.metrics.UsagePublishErrors.Add(float64(len(msgs)))
		p.logger.Warn("usage batch not delivered", "messages", len(msgs), "error", err)
		return
	}
	p.metrics.UsageEventsPublished.Add(float64(len(msgs)))
}

// Close flushes pending messages.
func (p *Publisher) Close() error {
	return p.writer.Close()
}

// serializeToMessage marshals a usage entry into a Kafka message keyed by
// client IP so one client's calls stay ordered.
func serializeToMessage(e usage.Entry) (kafkago.Message, error) {
	data, err := json.Marshal(e)
	if err != nil {
		return kafkago.Message{}, fmt.Errorf("serialize usage entry: %w", err)
	}
	return kafkago.Message{
		Key:   []byte(e.IP),
		Value: data,
		Time:  e.Time,
		Headers: []kafkago.Header{
			{Key: "endpoint", Value: []byte(e.Endpoint)},
			{Key: "recorded_at", Value: []byte(e.Time.Format(time.RFC3339))},
		},
	}, nil
}
