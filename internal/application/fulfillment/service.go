// Package fulfillment lets the admin dashboard move orders through their
// fulfillment workflow.
package fulfillment

import (
	"context"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/faycalhabibahmatalbachar/gba-sub001/internal/domain/order"
	"github.com/faycalhabibahmatalbachar/gba-sub001/internal/domain/shared"
	"github.com/faycalhabibahmatalbachar/gba-sub001/internal/infrastructure/logger"
)

// ErrMissingOrderID is returned when no order is named
var ErrMissingOrderID = shared.NewDomainError("INVALID_ORDER_ID", "order_id is required")

// UpdateStatusRequest sets the fulfillment status of an order
type UpdateStatusRequest struct {
	Status string `json:"status" binding:"required,max=32"`
}

// StatusResponse is the order status after an update
type StatusResponse struct {
	OrderID   string    `json:"order_id"`
	Status    string    `json:"status"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Service updates order fulfillment statuses
type Service struct {
	orders order.StatusWriter
	events shared.EventPublisher
	logger *zap.Logger
	now    func() time.Time
}

// NewService creates a new fulfillment Service. events may be nil.
func NewService(orders order.StatusWriter, events shared.EventPublisher, logger *zap.Logger) *Service {
	return &Service{orders: orders, events: events, logger: logger, now: time.Now}
}

// UpdateStatus sets the status of an order on behalf of adminID. The payment
// state of the order is never touched.
func (s *Service) UpdateStatus(ctx context.Context, orderID, adminID string, req UpdateStatusRequest) (*StatusResponse, error) {
	orderID = strings.TrimSpace(orderID)
	if orderID == "" {
		return nil, ErrMissingOrderID
	}
	status, err := order.ParseFulfillmentStatus(req.Status)
	if err != nil {
		return nil, err
	}

	at := s.now().UTC()
	if err := s.orders.SetStatus(ctx, orderID, status, at); err != nil {
		return nil, err
	}

	log := logger.FromContextOr(ctx, s.logger)
	log.Info("Order status updated",
		zap.String("order_id", orderID),
		zap.String("status", status),
		zap.String("admin_id", adminID),
	)
	if s.events != nil {
		if err := s.events.Publish(ctx, order.NewStatusChanged(orderID, status, adminID)); err != nil {
			log.Warn("Failed to publish order status event", zap.String("order_id", orderID), zap.Error(err))
		}
	}

	return &StatusResponse{OrderID: orderID, Status: status, UpdatedAt: at}, nil
}
