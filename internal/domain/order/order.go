// Package order models the storefront order row as seen by the payment flows.
// Orders are created by the storefront; this service only reads them and
// stamps their payment state.
package order

import (
	"errors"
	"math"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// PaymentStatus is the payment state of an order
type PaymentStatus string

const (
	PaymentStatusPending  PaymentStatus = "pending"
	PaymentStatusPaid     PaymentStatus = "paid"
	PaymentStatusFailed   PaymentStatus = "failed"
	PaymentStatusRefunded PaymentStatus = "refunded"
)

// IsTerminal reports whether no payment callback may move the order out of this state
func (s PaymentStatus) IsTerminal() bool {
	return s == PaymentStatusPaid || s == PaymentStatusRefunded
}

// StatusProcessing is the fulfilment status an order enters once paid
const StatusProcessing = "processing"

// DefaultCurrency is used when an order carries no currency
const DefaultCurrency = "XAF"

// MethodCard is the payment method recorded by both providers
const MethodCard = "card"

var (
	ErrInvalidAmount = errors.New("order: invalid amount")
	ErrAlreadyPaid   = errors.New("order: already paid")
)

// Order is an order row
type Order struct {
	ID                string
	UserID            string
	OrderNumber       string
	TotalAmount       float64
	Currency          string
	Status            string
	PaymentStatus     PaymentStatus
	PaymentProvider   string
	PaymentMethod     string
	ProviderReference string // stripe payment intent id
	CustomerEmail     string
	CustomerName      string
	CustomerPhone     string
	PaidAt            *time.Time
	CreatedAt         time.Time
}

// OwnedBy reports whether the order belongs to the given user
func (o *Order) OwnedBy(userID string) bool {
	return userID != "" && o.UserID == userID
}

// IsPaid reports whether the order has been paid
func (o *Order) IsPaid() bool {
	return o.PaymentStatus == PaymentStatusPaid
}

// CurrencyCode returns the upper-cased order currency, defaulting to XAF
func (o *Order) CurrencyCode() string {
	c := strings.ToUpper(strings.TrimSpace(o.Currency))
	if c == "" {
		return DefaultCurrency
	}
	return c
}

// PayableAmount returns the order total as a decimal.
// Non-finite and non-positive totals are rejected with ErrInvalidAmount.
func (o *Order) PayableAmount() (decimal.Decimal, error) {
	if math.IsNaN(o.TotalAmount) || math.IsInf(o.TotalAmount, 0) || o.TotalAmount <= 0 {
		return decimal.Zero, ErrInvalidAmount
	}
	return decimal.NewFromFloat(o.TotalAmount), nil
}

// DisplayReference returns the order number, or the id when the order has none
func (o *Order) DisplayReference() string {
	if o.OrderNumber != "" {
		return o.OrderNumber
	}
	return o.ID
}

// CheckPayable validates that a checkout may start for the order. Paid and
// refunded orders are both settled and report ErrAlreadyPaid.
func (o *Order) CheckPayable() error {
	if o.PaymentStatus.IsTerminal() {
		return ErrAlreadyPaid
	}
	_, err := o.PayableAmount()
	return err
}
