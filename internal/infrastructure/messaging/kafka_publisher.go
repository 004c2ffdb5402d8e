package messaging

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"strconv"

	"github.com/loanforge/deal-service/internal/domain/event"
	"github.com/loanforge/deal-service/internal/metrics"
	"github.com/loanforge/deal-service/pkg/kafka"
)

// producer is the subset of pkg/kafka.Producer the publisher needs.
type producer interface {
	Publish(ctx context.Context, messages ...kafka.Message) error
}

// KafkaEventPublisher serializes domain events to JSON and publishes them to
// the deal events topic. Messages are keyed by application ID so events for
// one application stay ordered within a partition. It implements
// port.EventPublisher.
type KafkaEventPublisher struct {
	producer producer
	metrics  *metrics.Metrics
	logger   *slog.Logger
}

// NewKafkaEventPublisher creates a publisher on top of the given producer.
func NewKafkaEventPublisher(p producer, m *metrics.Metrics, logger *slog.Logger) *KafkaEventPublisher {
	return &KafkaEventPublisher{producer: p, metrics: m, logger: logger}
}

// Publish sends the given domain events in order.
func (p *KafkaEventPublisher) Publish(ctx context.Context, events ...event.DomainEvent) error {
	messages := make([]kafka.Message, 0, len(events))
	for _, evt := range events {
		payload, err := json.Marshal(evt)
		if err != nil {
			return fmt.Errorf("encode event %s: %w", evt.EventType(), err)
		}
		messages = append(messages, kafka.Message{
			Key:   []byte(strconv.FormatInt(evt.AggregateID(), 10)),
			Value: payload,
			Headers: map[string]string{
				"event_type": evt.EventType(),
			},
		})
	}

	if err := p.producer.Publish(ctx, messages...); err != nil {
		return fmt.Errorf("publish domain events: %w", err)
	}

	for _, evt := range events {
		p.metrics.EventsPublished.WithLabelValues(evt.EventType()).Inc()
		p.logger.Debug("domain event published",
			"event_type", evt.EventType(),
			"application_id", evt.AggregateID())
	}
	return nil
}
