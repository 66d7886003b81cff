package order

import (
	"context"
	"strings"
	"time"

	"github.com/faycalhabibahmatalbachar/gba-sub001/internal/domain/shared"
)

// Fulfillment statuses the dashboard moves an order through
const (
	StatusPending   = "pending"
	StatusShipped   = "shipped"
	StatusDelivered = "delivered"
	StatusCancelled = "cancelled"
)

// ErrInvalidStatus is returned for a status outside FulfillmentStatuses
var ErrInvalidStatus = shared.NewDomainError("VALIDATION",
	"status must be one of pending, processing, shipped, delivered, cancelled")

// FulfillmentStatuses lists the statuses an admin may set, in workflow order
func FulfillmentStatuses() []string {
	return []string{StatusPending, StatusProcessing, StatusShipped, StatusDelivered, StatusCancelled}
}

// ParseFulfillmentStatus normalizes s and checks it is a fulfillment status
func ParseFulfillmentStatus(s string) (string, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	for _, status := range FulfillmentStatuses() {
		if s == status {
			return s, nil
		}
	}
	return "", ErrInvalidStatus
}

// StatusWriter sets the fulfillment status of an order. A missing order
// yields shared.ErrNotFound.
type StatusWriter interface {
	SetStatus(ctx context.Context, id, status string, at time.Time) error
}

// EventStatusChanged is published after an admin changes an order's status
const EventStatusChanged = "OrderStatusChanged"

// StatusChanged carries a fulfillment transition
type StatusChanged struct {
	shared.BaseDomainEvent
	OrderID   string `json:"order_id"`
	Status    string `json:"status"`
	ChangedBy string `json:"changed_by,omitempty"`
}

// NewStatusChanged creates a StatusChanged event
func NewStatusChanged(orderID, status, changedBy string) *StatusChanged {
	return &StatusChanged{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventStatusChanged, "Order", orderID),
		OrderID:         orderID,
		Status:          status,
		ChangedBy:       changedBy,
	}
}
