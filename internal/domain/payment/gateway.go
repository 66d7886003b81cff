package payment

import (
	"context"
	"errors"
	"fmt"

	"github.com/shopspring/decimal"
)

var (
	ErrNotConfigured      = errors.New("payment: provider not configured")
	ErrMissingPaymentLink = errors.New("payment: provider response has no payment link")
	ErrVerificationFailed = errors.New("payment: failed to verify transaction")
	ErrInvalidSignature   = errors.New("payment: invalid webhook signature")
)

// ProviderError is a non-2xx answer from a provider API.
// Message is the provider's own explanation, passed through to the caller.
type ProviderError struct {
	Provider   Provider
	StatusCode int
	Message    string
}

func (e *ProviderError) Error() string {
	return fmt.Sprintf("%s: status %d: %s", e.Provider, e.StatusCode, e.Message)
}

// IntentRequest asks the card provider for a payment intent
type IntentRequest struct {
	OrderID        string
	OrderNumber    string
	AmountMinor    int64
	Currency       string // lower-case ISO code
	IdempotencyKey string
	ReceiptEmail   string
}

// Intent is a provider-side payment intent
type Intent struct {
	ID           string
	ClientSecret string
	Status       string
	AmountMinor  int64
	Currency     string
}

// Reusable reports whether the intent can still be confirmed for the given charge
func (i *Intent) Reusable(amountMinor int64, currency string) bool {
	switch i.Status {
	case "succeeded", "canceled", "processing":
		return false
	}
	return i.AmountMinor == amountMinor && i.Currency == currency && i.ClientSecret != ""
}

// IntentGateway creates and retrieves payment intents
type IntentGateway interface {
	CreateIntent(ctx context.Context, req IntentRequest) (*Intent, error)
	GetIntent(ctx context.Context, id string) (*Intent, error)
}

// Customer identifies the payer on a hosted payment page
type Customer struct {
	Email string
	Name  string
	Phone string
}

// LinkRequest asks the hosted-page provider for a payment link
type LinkRequest struct {
	TxRef       string
	Amount      decimal.Decimal
	Currency    string
	RedirectURL string
	Customer    Customer
	Title       string
	Meta        map[string]any
}

// Transaction is a provider transaction as reported by its verify API
type Transaction struct {
	ID       string
	TxRef    string
	Status   string
	Amount   decimal.Decimal
	Currency string
}

// Transaction statuses reported by the hosted-page provider
const (
	TransactionSuccessful = "successful"
	TransactionFailed     = "failed"
	TransactionCancelled  = "cancelled"
)

// LinkGateway creates hosted payment links and verifies their transactions
type LinkGateway interface {
	CreatePaymentLink(ctx context.Context, req LinkRequest) (string, error)
	VerifyTransaction(ctx context.Context, id string) (*Transaction, error)
}
