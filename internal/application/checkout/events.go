package checkout

import (
	"context"

	"go.uber.org/zap"

	"github.com/faycalhabibahmatalbachar/gba-sub001/internal/domain/payment"
	"github.com/faycalhabibahmatalbachar/gba-sub001/internal/domain/shared"
	"github.com/faycalhabibahmatalbachar/gba-sub001/internal/infrastructure/logger"
)

// publishStatus announces a payment transition. The order row is the source
// of truth, so a publish failure is logged and never fails the request.
func publishStatus(ctx context.Context, events shared.EventPublisher, fallback *zap.Logger, event *payment.StatusChanged) {
	if events == nil {
		return
	}
	if err := events.Publish(ctx, event); err != nil {
		logger.FromContextOr(ctx, fallback).Warn("failed to publish payment event",
			zap.String("event_type", event.EventType()),
			zap.String("order_id", event.OrderID),
			zap.Error(err),
		)
	}
}
