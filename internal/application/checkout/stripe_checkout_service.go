package checkout

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/faycalhabibahmatalbachar/gba-sub001/internal/domain/identity"
	"github.com/faycalhabibahmatalbachar/gba-sub001/internal/domain/order"
	"github.com/faycalhabibahmatalbachar/gba-sub001/internal/domain/payment"
	"github.com/faycalhabibahmatalbachar/gba-sub001/internal/domain/shared"
	"github.com/faycalhabibahmatalbachar/gba-sub001/internal/infrastructure/logger"
	"github.com/faycalhabibahmatalbachar/gba-sub001/internal/infrastructure/telemetry"
)

const msgMissingStripeKey = "Missing STRIPE_SECRET_KEY"

// PaymentIntentResult is returned to the client to confirm the card payment
type PaymentIntentResult struct {
	ClientSecret    string `json:"clientSecret"`
	PaymentIntentID string `json:"paymentIntentId"`
}

// StripeCheckoutService starts card payments through Stripe payment intents
type StripeCheckoutService struct {
	access   *orderAccess
	intents  payment.IntentGateway
	payments payment.Repository
	orders   order.Repository
	events   shared.EventPublisher
	metrics  Metrics
	logger   *zap.Logger
}

// StripeCheckoutServiceConfig contains the dependencies of StripeCheckoutService.
// A nil Intents gateway means Stripe is not configured.
type StripeCheckoutServiceConfig struct {
	Intents  payment.IntentGateway
	Verifier identity.TokenVerifier
	Orders   order.Repository
	Payments payment.Repository
	Events   shared.EventPublisher
	Metrics  Metrics
	Logger   *zap.Logger
}

// NewStripeCheckoutService creates a new StripeCheckoutService
func NewStripeCheckoutService(cfg StripeCheckoutServiceConfig) *StripeCheckoutService {
	return &StripeCheckoutService{
		access:   &orderAccess{verifier: cfg.Verifier, orders: cfg.Orders, logger: cfg.Logger},
		intents:  cfg.Intents,
		payments: cfg.Payments,
		orders:   cfg.Orders,
		events:   cfg.Events,
		metrics:  metricsOrNoop(cfg.Metrics),
		logger:   cfg.Logger,
	}
}

// CreatePaymentIntent creates, or reuses, the payment intent for an order,
// records a pending payment and stamps the order as pending.
func (s *StripeCheckoutService) CreatePaymentIntent(ctx context.Context, req Request) (*PaymentIntentResult, error) {
	ctx, span := telemetry.StartServiceSpan(ctx, "stripe_checkout", "create_payment_intent")
	defer span.End()
	telemetry.SetAttributes(span, telemetry.SpanAttrOrderID, req.OrderID, telemetry.SpanAttrProvider, string(payment.ProviderStripe))

	result, err := s.createPaymentIntent(ctx, req)
	outcome := outcomeOf(err)
	telemetry.SetAttribute(span, telemetry.SpanAttrOutcome, outcome)
	telemetry.RecordError(span, err)
	s.metrics.RecordCheckout(ctx, string(payment.ProviderStripe), outcome)
	return result, err
}

func (s *StripeCheckoutService) createPaymentIntent(ctx context.Context, req Request) (*PaymentIntentResult, error) {
	if s.intents == nil {
		return nil, newError(http.StatusInternalServerError, msgMissingStripeKey)
	}

	principal, o, err := s.access.payableOrder(ctx, req)
	if err != nil {
		return nil, err
	}
	log := logger.FromContextOr(ctx, s.logger).With(zap.String("order_id", o.ID))

	amount, _ := o.PayableAmount()
	currency := strings.ToLower(o.CurrencyCode())
	minor := payment.MinorUnits(amount, currency)
	if minor <= 0 {
		return nil, errInvalidAmount
	}

	intent := s.reusableIntent(ctx, log, o, minor, currency)
	if intent == nil {
		intent, err = s.intents.CreateIntent(ctx, payment.IntentRequest{
			OrderID:        o.ID,
			OrderNumber:    o.OrderNumber,
			AmountMinor:    minor,
			Currency:       currency,
			IdempotencyKey: IdempotencyKey(o.ID, minor, currency),
			ReceiptEmail:   firstNonEmpty(o.CustomerEmail, principal.Email),
		})
		if err != nil {
			return nil, providerFailure(err)
		}
	}

	created, err := s.payments.CreateIfAbsent(ctx, &payment.Payment{
		ID:                uuid.NewString(),
		UserID:            principal.UserID,
		OrderID:           o.ID,
		Provider:          payment.ProviderStripe,
		Status:            payment.StatusPending,
		Amount:            amount,
		Currency:          o.CurrencyCode(),
		ProviderReference: intent.ID,
	})
	if err != nil {
		return nil, wrapError(http.StatusInternalServerError, "Failed to record payment", err)
	}

	applied, err := s.orders.Stamp(ctx, o.ID, order.PendingStamp(string(payment.ProviderStripe), intent.ID))
	if err != nil {
		return nil, wrapError(http.StatusInternalServerError, "Failed to update order", err)
	}
	if !applied {
		log.Warn("order left unchanged by pending stamp", zap.String("payment_intent_id", intent.ID))
	}

	log.Info("payment intent ready",
		zap.String("payment_intent_id", intent.ID),
		zap.Int64("amount_minor", minor),
		zap.String("currency", currency),
		zap.Bool("payment_recorded", created),
	)

	event := payment.NewStatusChanged(payment.EventPaymentPending, o.ID, payment.ProviderStripe, intent.ID)
	event.UserID = principal.UserID
	event.Amount = amount.String()
	event.Currency = o.CurrencyCode()
	publishStatus(ctx, s.events, s.logger, event)

	return &PaymentIntentResult{ClientSecret: intent.ClientSecret, PaymentIntentID: intent.ID}, nil
}

// reusableIntent returns the intent already attached to the order when it can
// still be confirmed for the current charge. Lookup failures fall back to
// creating a new intent.
func (s *StripeCheckoutService) reusableIntent(ctx context.Context, log *zap.Logger, o *order.Order, minor int64, currency string) *payment.Intent {
	if !strings.HasPrefix(o.ProviderReference, "pi_") {
		return nil
	}
	existing, err := s.intents.GetIntent(ctx, o.ProviderReference)
	if err != nil {
		log.Warn("could not load existing payment intent", zap.String("payment_intent_id", o.ProviderReference), zap.Error(err))
		return nil
	}
	if !existing.Reusable(minor, currency) {
		return nil
	}
	return existing
}

// IdempotencyKey derives the provider idempotency key of an order's charge.
// A changed total or currency yields a new key.
func IdempotencyKey(orderID string, minor int64, currency string) string {
	return fmt.Sprintf("order_%s_%d_%s", orderID, minor, strings.ToLower(currency))
}

// providerFailure maps a gateway error to a 502 carrying the provider's message
func providerFailure(err error) *Error {
	var provErr *payment.ProviderError
	if errors.As(err, &provErr) && provErr.Message != "" {
		return wrapError(http.StatusBadGateway, provErr.Message, err)
	}
	return wrapError(http.StatusBadGateway, "Payment provider error", err)
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
