package event

import (
	"strings"

	"go.uber.org/zap"

	"github.com/faycalhabibahmatalbachar/gba-sub001/internal/domain/shared"
	"github.com/faycalhabibahmatalbachar/gba-sub001/internal/infrastructure/config"
)

// Publisher is an event publisher owning resources released on shutdown
type Publisher interface {
	shared.EventPublisher
	Close() error
}

// NewPublisher returns a Kafka publisher when brokers are configured and an
// in-process bus with a logging subscriber otherwise.
func NewPublisher(cfg config.KafkaConfig, producer string, logger *zap.Logger) Publisher {
	if len(cfg.Brokers) == 0 {
		logger.Info("no Kafka brokers configured, events are logged in-process")
		bus := NewInMemoryEventBus(logger)
		bus.Subscribe(NewLoggingHandler(logger))
		return bus
	}

	logger.Info("publishing events to Kafka",
		zap.Strings("brokers", cfg.Brokers),
		zap.String("payment_topic", cfg.PaymentTopic),
		zap.String("monitor_topic", cfg.MonitorTopic),
	)
	return NewKafkaPublisher(KafkaPublisherConfig{
		Brokers:      cfg.Brokers,
		Producer:     producer,
		WriteTimeout: cfg.WriteTimeout,
		TopicFor:     TopicRouter(cfg.PaymentTopic, cfg.MonitorTopic),
	}, logger)
}

// TopicRouter sends monitoring events to monitorTopic and everything else to paymentTopic
func TopicRouter(paymentTopic, monitorTopic string) func(string) string {
	return func(eventType string) string {
		if strings.HasPrefix(eventType, "Monitoring") {
			return monitorTopic
		}
		return paymentTopic
	}
}
