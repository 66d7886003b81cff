// Package payment holds local payment attempt records and the provider
// gateway contracts used by the checkout and webhook flows.
package payment

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
)

// Provider names a payment provider as stored in the provider columns
type Provider string

const (
	ProviderStripe      Provider = "stripe"
	ProviderFlutterwave Provider = "flutterwave"
)

// Status is the state of one payment attempt
type Status string

const (
	StatusPending   Status = "pending"
	StatusSucceeded Status = "succeeded"
	StatusFailed    Status = "failed"
)

// Payment is one provider payment attempt linked to an order
type Payment struct {
	ID                string
	UserID            string
	OrderID           string
	Provider          Provider
	Status            Status
	Amount            decimal.Decimal
	Currency          string
	ProviderReference string
	CreatedAt         time.Time
}

// Repository persists payment attempts
type Repository interface {
	// CreateIfAbsent inserts p unless a row with the same provider and
	// provider reference exists. The check and insert are atomic.
	CreateIfAbsent(ctx context.Context, p *Payment) (created bool, err error)
	// UpdateStatus transitions every attempt with the given reference.
	// A succeeded attempt is never moved back.
	UpdateStatus(ctx context.Context, provider Provider, reference string, status Status) (int64, error)
}
