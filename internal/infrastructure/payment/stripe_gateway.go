package payment

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/stripe/stripe-go/v81"
	"github.com/stripe/stripe-go/v81/client"
	"github.com/stripe/stripe-go/v81/webhook"

	"github.com/faycalhabibahmatalbachar/gba-sub001/internal/domain/payment"
)

// StripeGateway implements payment.IntentGateway on top of a per-instance
// Stripe client. It never touches the package-level stripe.Key.
type StripeGateway struct {
	config *StripeConfig
	api    *client.API
}

// StripeOption configures a StripeGateway
type StripeOption func(*stripeOptions)

type stripeOptions struct {
	backend stripe.Backend
}

// WithBackend routes every Stripe call through b
func WithBackend(b stripe.Backend) StripeOption {
	return func(o *stripeOptions) {
		o.backend = b
	}
}

// NewStripeGateway creates a new Stripe gateway
func NewStripeGateway(config *StripeConfig, opts ...StripeOption) (*StripeGateway, error) {
	if err := config.Validate(); err != nil {
		return nil, err
	}

	o := &stripeOptions{}
	for _, opt := range opts {
		opt(o)
	}

	var backends *stripe.Backends
	if o.backend != nil {
		backends = &stripe.Backends{API: o.backend, Connect: o.backend, Uploads: o.backend}
	}

	api := &client.API{}
	api.Init(config.SecretKey, backends)

	return &StripeGateway{config: config, api: api}, nil
}

// CreateIntent creates a payment intent for an order
func (g *StripeGateway) CreateIntent(ctx context.Context, req payment.IntentRequest) (*payment.Intent, error) {
	params := &stripe.PaymentIntentParams{
		Amount:   stripe.Int64(req.AmountMinor),
		Currency: stripe.String(strings.ToLower(req.Currency)),
		AutomaticPaymentMethods: &stripe.PaymentIntentAutomaticPaymentMethodsParams{
			Enabled: stripe.Bool(true),
		},
	}
	if req.ReceiptEmail != "" {
		params.ReceiptEmail = stripe.String(req.ReceiptEmail)
	}
	params.Context = ctx
	params.AddMetadata("order_id", req.OrderID)
	if req.OrderNumber != "" {
		params.AddMetadata("order_number", req.OrderNumber)
	}
	if req.IdempotencyKey != "" {
		params.SetIdempotencyKey(req.IdempotencyKey)
	}

	pi, err := g.api.PaymentIntents.New(params)
	if err != nil {
		return nil, mapStripeError(err)
	}
	return toIntent(pi), nil
}

// GetIntent retrieves an existing payment intent
func (g *StripeGateway) GetIntent(ctx context.Context, id string) (*payment.Intent, error) {
	params := &stripe.PaymentIntentParams{}
	params.Context = ctx

	pi, err := g.api.PaymentIntents.Get(id, params)
	if err != nil {
		return nil, mapStripeError(err)
	}
	return toIntent(pi), nil
}

// ConstructEvent verifies a webhook payload against its Stripe-Signature header
func (g *StripeGateway) ConstructEvent(payload []byte, signature string) (stripe.Event, error) {
	return ConstructStripeEvent(payload, signature, g.config.WebhookSecret)
}

// ConstructStripeEvent verifies a webhook payload signed with secret.
// Events from an account pinned to another API version are still accepted;
// only the fields read by the webhook handlers are relied on.
func ConstructStripeEvent(payload []byte, signature, secret string) (stripe.Event, error) {
	event, err := webhook.ConstructEventWithOptions(payload, signature, secret, webhook.ConstructEventOptions{
		IgnoreAPIVersionMismatch: true,
	})
	if err != nil {
		return stripe.Event{}, fmt.Errorf("%w: %v", payment.ErrInvalidSignature, err)
	}
	return event, nil
}

func toIntent(pi *stripe.PaymentIntent) *payment.Intent {
	return &payment.Intent{
		ID:           pi.ID,
		ClientSecret: pi.ClientSecret,
		Status:       string(pi.Status),
		AmountMinor:  pi.Amount,
		Currency:     string(pi.Currency),
	}
}

func mapStripeError(err error) error {
	var stripeErr *stripe.Error
	if errors.As(err, &stripeErr) {
		msg := stripeErr.Msg
		if msg == "" {
			msg = string(stripeErr.Code)
		}
		return &payment.ProviderError{
			Provider:   payment.ProviderStripe,
			StatusCode: stripeErr.HTTPStatusCode,
			Message:    msg,
		}
	}
	return fmt.Errorf("stripe: %w", err)
}

// StripeSignatureVerifier verifies webhook payloads with the signing secret
// alone, so webhooks work without API credentials.
type StripeSignatureVerifier struct {
	Secret string
}

// ConstructEvent verifies payload against its Stripe-Signature header
func (v StripeSignatureVerifier) ConstructEvent(payload []byte, signature string) (stripe.Event, error) {
	return ConstructStripeEvent(payload, signature, v.Secret)
}
