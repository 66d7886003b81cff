package event

import (
	"context"

	"go.uber.org/zap"

	"github.com/faycalhabibahmatalbachar/gba-sub001/internal/domain/shared"
)

// LoggingHandler writes every event it receives to the log. It stands in for
// downstream consumers when no broker is configured.
type LoggingHandler struct {
	logger *zap.Logger
}

// NewLoggingHandler creates a wildcard handler logging each event
func NewLoggingHandler(logger *zap.Logger) *LoggingHandler {
	return &LoggingHandler{logger: logger}
}

func (h *LoggingHandler) Handle(_ context.Context, event shared.DomainEvent) error {
	h.logger.Info("domain event",
		zap.String("event_type", event.EventType()),
		zap.String("event_id", event.EventID().String()),
		zap.String("aggregate_type", event.AggregateType()),
		zap.String("aggregate_id", event.AggregateID()),
		zap.Any("event", event),
	)
	return nil
}

func (h *LoggingHandler) EventTypes() []string {
	return nil
}
