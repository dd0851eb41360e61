// Package events publishes domain events to Kafka for downstream
// consumers (analytics, delivery auditing). Publishing is best-effort:
// the alert pipeline never blocks on the event bus.
package events

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/rs/zerolog"
	"github.com/segmentio/kafka-go"
)

// DefaultTopic is the topic alert events are published to.
const DefaultTopic = "breathesafe.alerts.dispatched"

// AlertDispatched is emitted after an alert SMS delivery is confirmed.
type AlertDispatched struct {
	AlertID    string    `json:"alert_id"`
	UserID     string    `json:"user_id"`
	Location   string    `json:"location"`
	AQI        int       `json:"aqi"`
	ForecastAt time.Time `json:"forecast_at"`
	SentAt     time.Time `json:"sent_at"`
}

// PublisherConfig holds configuration for the Kafka publisher.
type PublisherConfig struct {
	// Brokers are the Kafka bootstrap addresses (required).
	Brokers []string

	// Topic defaults to DefaultTopic.
	Topic string

	// Logger for publisher operations.
	Logger zerolog.Logger
}

// Publisher writes domain events to Kafka.
type Publisher struct {
	writer *kafka.Writer
	logger zerolog.Logger
}

// NewPublisher creates a Kafka-backed event publisher.
func NewPublisher(cfg PublisherConfig) *Publisher {
	topic := cfg.Topic
	if topic == "" {
		topic = DefaultTopic
	}

	writer := &kafka.Writer{
		Addr:         kafka.TCP(cfg.Brokers...),
		Topic:        topic,
		Balancer:     &kafka.Hash{},
		RequiredAcks: kafka.RequireOne,
		BatchTimeout: 50 * time.Millisecond,
	}

	return &Publisher{
		writer: writer,
		logger: cfg.Logger,
	}
}

// AlertDispatched publishes a delivery-confirmed alert event. Events
// for the same user share a partition so per-user ordering holds.
func (p *Publisher) AlertDispatched(ctx context.Context, evt AlertDispatched) error {
	data, err := json.Marshal(evt)
	if err != nil {
		return fmt.Errorf("encoding event: %w", err)
	}

	err = p.writer.WriteMessages(ctx, kafka.Message{
		Key:   []byte(evt.UserID),
		Value: data,
	})
	if err != nil {
		return fmt.Errorf("publishing alert event: %w", err)
	}

	p.logger.Debug().
		Str("alert_id", evt.AlertID).
		Str("user_id", evt.UserID).
		Msg("alert event published")
	return nil
}

// Close flushes and closes the underlying writer.
func (p *Publisher) Close() error {
	return p.writer.Close()
}
