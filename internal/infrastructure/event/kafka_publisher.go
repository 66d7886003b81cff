package event

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/segmentio/kafka-go"
	"go.uber.org/zap"

	"github.com/faycalhabibahmatalbachar/gba-sub001/internal/domain/shared"
)

// messageWriter is the subset of *kafka.Writer used by the publisher
type messageWriter interface {
	WriteMessages(ctx context.Context, msgs ...kafka.Message) error
	Close() error
}

// KafkaPublisher publishes event envelopes to Kafka, keyed by aggregate id so
// every event of one order lands on the same partition in order.
type KafkaPublisher struct {
	writer   messageWriter
	producer string
	topicFor func(eventType string) string
	timeout  time.Duration
	logger   *zap.Logger
}

// KafkaPublisherConfig configures a KafkaPublisher
type KafkaPublisherConfig struct {
	Brokers      []string
	Producer     string
	WriteTimeout time.Duration
	// TopicFor routes an event type to its topic
	TopicFor func(eventType string) string
}

// NewKafkaPublisher creates a synchronous publisher writing with acks=all
func NewKafkaPublisher(cfg KafkaPublisherConfig, logger *zap.Logger) *KafkaPublisher {
	w := &kafka.Writer{
		Addr:                   kafka.TCP(cfg.Brokers...),
		Balancer:               &kafka.Hash{},
		RequiredAcks:           kafka.RequireAll,
		AllowAutoTopicCreation: false,
		WriteTimeout:           cfg.WriteTimeout,
	}
	return newKafkaPublisher(w, cfg, logger)
}

func newKafkaPublisher(w messageWriter, cfg KafkaPublisherConfig, logger *zap.Logger) *KafkaPublisher {
	timeout := cfg.WriteTimeout
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	return &KafkaPublisher{
		writer:   w,
		producer: cfg.Producer,
		topicFor: cfg.TopicFor,
		timeout:  timeout,
		logger:   logger,
	}
}

// Publish writes all events in one batch
func (p *KafkaPublisher) Publish(ctx context.Context, events ...shared.DomainEvent) error {
	if len(events) == 0 {
		return nil
	}

	msgs := make([]kafka.Message, 0, len(events))
	for _, event := range events {
		env, err := NewEnvelope(p.producer, event)
		if err != nil {
			return err
		}
		value, err := json.Marshal(env)
		if err != nil {
			return fmt.Errorf("encode envelope: %w", err)
		}
		msgs = append(msgs, kafka.Message{
			Topic: p.topicFor(event.EventType()),
			Key:   []byte(event.AggregateID()),
			Value: value,
			Time:  event.OccurredAt(),
			Headers: []kafka.Header{
				{Key: "event_type", Value: []byte(event.EventType())},
			},
		})
	}

	ctx, cancel := context.WithTimeout(ctx, p.timeout)
	defer cancel()

	if err := p.writer.WriteMessages(ctx, msgs...); err != nil {
		return fmt.Errorf("kafka publish: %w", err)
	}

	p.logger.Debug("events published", zap.Int("count", len(msgs)))
	return nil
}

// Close flushes and closes the underlying writer
func (p *KafkaPublisher) Close() error {
	return p.writer.Close()
}

var _ shared.EventPublisher = (*KafkaPublisher)(nil)
