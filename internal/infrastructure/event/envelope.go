package event

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/faycalhabibahmatalbachar/gba-sub001/internal/domain/shared"
)

// Envelope is the wire format of a published event
type Envelope struct {
	EventID       string          `json:"event_id"`
	EventType     string          `json:"event_type"`
	OccurredAt    time.Time       `json:"occurred_at"`
	Producer      string          `json:"producer"`
	CorrelationID string          `json:"correlation_id"`
	Payload       json.RawMessage `json:"payload"`
}

// NewEnvelope wraps a domain event. The aggregate id is the correlation id.
func NewEnvelope(producer string, event shared.DomainEvent) (*Envelope, error) {
	payload, err := json.Marshal(event)
	if err != nil {
		return nil, fmt.Errorf("encode %s payload: %w", event.EventType(), err)
	}
	return &Envelope{
		EventID:       event.EventID().String(),
		EventType:     event.EventType(),
		OccurredAt:    event.OccurredAt(),
		Producer:      producer,
		CorrelationID: event.AggregateID(),
		Payload:       payload,
	}, nil
}

// UnwrapPayload decodes an envelope payload into T
func UnwrapPayload[T any](payload json.RawMessage) (T, error) {
	var t T
	if err := json.Unmarshal(payload, &t); err != nil {
		return t, fmt.Errorf("decode payload: %w", err)
	}
	return t, nil
}
