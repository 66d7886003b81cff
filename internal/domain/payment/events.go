package payment

import (
	"github.com/faycalhabibahmatalbachar/gba-sub001/internal/domain/shared"
)

// Event types
const (
	EventPaymentPending   = "PaymentPending"
	EventPaymentSucceeded = "PaymentSucceeded"
	EventPaymentFailed    = "PaymentFailed"
)

const aggregateOrder = "Order"

// StatusChanged is published whenever an order's payment state is stamped
type StatusChanged struct {
	shared.BaseDomainEvent
	OrderID   string   `json:"order_id"`
	UserID    string   `json:"user_id,omitempty"`
	Provider  Provider `json:"provider"`
	Reference string   `json:"reference,omitempty"`
	Amount    string   `json:"amount,omitempty"`
	Currency  string   `json:"currency,omitempty"`
}

// NewStatusChanged creates a payment event of the given type for an order
func NewStatusChanged(eventType, orderID string, provider Provider, reference string) *StatusChanged {
	return &StatusChanged{
		BaseDomainEvent: shared.NewBaseDomainEvent(eventType, aggregateOrder, orderID),
		OrderID:         orderID,
		Provider:        provider,
		Reference:       reference,
	}
}
