package checkout

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/stripe/stripe-go/v81"
	"go.uber.org/zap"

	"github.com/faycalhabibahmatalbachar/gba-sub001/internal/domain/order"
	"github.com/faycalhabibahmatalbachar/gba-sub001/internal/domain/payment"
	"github.com/faycalhabibahmatalbachar/gba-sub001/internal/domain/shared"
	"github.com/faycalhabibahmatalbachar/gba-sub001/internal/infrastructure/logger"
	"github.com/faycalhabibahmatalbachar/gba-sub001/internal/infrastructure/telemetry"
)

const (
	msgMissingSignature     = "Missing Stripe-Signature"
	msgMissingSigningSecret = "Missing STRIPE_WEBHOOK_SIGNING_SECRET"
)

// EventVerifier checks a Stripe webhook payload against its Stripe-Signature header
type EventVerifier interface {
	ConstructEvent(payload []byte, signature string) (stripe.Event, error)
}

// StripeWebhookService applies Stripe payment events to payments and orders
type StripeWebhookService struct {
	verifier   EventVerifier
	orders     order.Repository
	payments   payment.Repository
	deliveries shared.IdempotencyStore
	ttl        time.Duration
	events     shared.EventPublisher
	metrics    Metrics
	logger     *zap.Logger
	now        func() time.Time
}

// StripeWebhookServiceConfig contains the dependencies of StripeWebhookService.
// A nil Verifier means no signing secret is configured.
type StripeWebhookServiceConfig struct {
	Verifier EventVerifier
	Orders   order.Repository
	Payments payment.Repository
	// Deliveries de-duplicates events by id; nil disables de-duplication
	Deliveries shared.IdempotencyStore
	TTL        time.Duration
	Events     shared.EventPublisher
	Metrics    Metrics
	Logger     *zap.Logger
}

// NewStripeWebhookService creates a new StripeWebhookService
func NewStripeWebhookService(cfg StripeWebhookServiceConfig) *StripeWebhookService {
	ttl := cfg.TTL
	if ttl <= 0 {
		ttl = DefaultDeliveryTTL
	}
	return &StripeWebhookService{
		verifier:   cfg.Verifier,
		orders:     cfg.Orders,
		payments:   cfg.Payments,
		deliveries: cfg.Deliveries,
		ttl:        ttl,
		events:     cfg.Events,
		metrics:    metricsOrNoop(cfg.Metrics),
		logger:     cfg.Logger,
		now:        time.Now,
	}
}

// HandleWebhook verifies and applies one Stripe event.
// Unhandled event types are acknowledged without action.
func (s *StripeWebhookService) HandleWebhook(ctx context.Context, signature string, payload []byte) (*Ack, error) {
	ctx, span := telemetry.StartServiceSpan(ctx, "stripe_webhook", "handle")
	defer span.End()

	ack, outcome, err := s.handle(ctx, signature, payload)
	telemetry.SetAttribute(span, telemetry.SpanAttrOutcome, outcome)
	telemetry.RecordError(span, err)
	s.metrics.RecordWebhook(ctx, string(payment.ProviderStripe), outcome)
	return ack, err
}

func (s *StripeWebhookService) handle(ctx context.Context, signature string, payload []byte) (*Ack, string, error) {
	if signature == "" {
		return nil, OutcomeRejected, newError(http.StatusBadRequest, msgMissingSignature)
	}
	if s.verifier == nil {
		return nil, OutcomeError, newError(http.StatusInternalServerError, msgMissingSigningSecret)
	}

	event, err := s.verifier.ConstructEvent(payload, signature)
	if err != nil {
		return nil, OutcomeRejected, wrapError(http.StatusBadRequest, "Invalid signature", err)
	}

	span := telemetry.SpanFromContext(ctx)
	telemetry.SetAttributes(span, telemetry.SpanAttrEventID, event.ID, telemetry.SpanAttrEventType, string(event.Type))
	log := logger.FromContextOr(ctx, s.logger).With(
		zap.String("event_id", event.ID),
		zap.String("event_type", string(event.Type)),
	)

	var apply func(context.Context, *zap.Logger, stripe.Event) error
	switch event.Type {
	case stripe.EventTypePaymentIntentSucceeded:
		apply = s.handleIntentSucceeded
	case stripe.EventTypePaymentIntentPaymentFailed:
		apply = s.handleIntentFailed
	case stripe.EventTypeCheckoutSessionCompleted:
		apply = s.handleSessionCompleted
	default:
		log.Debug("unhandled webhook event type")
		return &Ack{OK: true}, OutcomeIgnored, nil
	}

	key := fmt.Sprintf("%s:%s", payment.ProviderStripe, event.ID)
	if s.deliveries != nil {
		fresh, err := s.deliveries.MarkProcessed(ctx, key, s.ttl)
		if err != nil {
			log.Warn("delivery de-duplication unavailable", zap.Error(err))
		} else if !fresh {
			telemetry.AddEvent(span, "duplicate_delivery", telemetry.SpanAttrEventID, event.ID)
			log.Info("duplicate webhook delivery")
			return &Ack{OK: true}, OutcomeDuplicate, nil
		}
	}

	if err := apply(ctx, log, event); err != nil {
		if s.deliveries != nil {
			if ferr := s.deliveries.Forget(ctx, key); ferr != nil {
				log.Warn("failed to release webhook delivery key", zap.Error(ferr))
			}
		}
		log.Error("failed to process webhook event", zap.Error(err))
		return nil, OutcomeError, wrapError(http.StatusInternalServerError, err.Error(), err)
	}

	return &Ack{OK: true}, OutcomeOK, nil
}

func (s *StripeWebhookService) handleIntentSucceeded(ctx context.Context, log *zap.Logger, event stripe.Event) error {
	var pi stripe.PaymentIntent
	if err := unmarshalObject(event, &pi); err != nil {
		return fmt.Errorf("failed to unmarshal payment intent: %w", err)
	}
	log = log.With(zap.String("payment_intent_id", pi.ID))

	if _, err := s.payments.UpdateStatus(ctx, payment.ProviderStripe, pi.ID, payment.StatusSucceeded); err != nil {
		return fmt.Errorf("failed to update payments: %w", err)
	}

	orderID, err := s.resolveOrder(ctx, pi.Metadata["order_id"], pi.ID)
	if err != nil || orderID == "" {
		return s.unresolved(log, err)
	}

	stamp := order.PaidStamp(string(payment.ProviderStripe), s.now().UTC())
	stamp.ProviderReference = pi.ID
	return s.stamp(ctx, log, orderID, stamp, payment.EventPaymentSucceeded, pi.ID, pi.Amount, string(pi.Currency))
}

func (s *StripeWebhookService) handleIntentFailed(ctx context.Context, log *zap.Logger, event stripe.Event) error {
	var pi stripe.PaymentIntent
	if err := unmarshalObject(event, &pi); err != nil {
		return fmt.Errorf("failed to unmarshal payment intent: %w", err)
	}
	log = log.With(zap.String("payment_intent_id", pi.ID))

	if _, err := s.payments.UpdateStatus(ctx, payment.ProviderStripe, pi.ID, payment.StatusFailed); err != nil {
		return fmt.Errorf("failed to update payments: %w", err)
	}

	orderID, err := s.resolveOrder(ctx, pi.Metadata["order_id"], pi.ID)
	if err != nil || orderID == "" {
		return s.unresolved(log, err)
	}

	return s.stamp(ctx, log, orderID, order.FailedStamp(""), payment.EventPaymentFailed, pi.ID, pi.Amount, string(pi.Currency))
}

func (s *StripeWebhookService) handleSessionCompleted(ctx context.Context, log *zap.Logger, event stripe.Event) error {
	var session stripe.CheckoutSession
	if err := unmarshalObject(event, &session); err != nil {
		return fmt.Errorf("failed to unmarshal checkout session: %w", err)
	}

	intentID := ""
	if session.PaymentIntent != nil {
		intentID = session.PaymentIntent.ID
	}
	log = log.With(zap.String("checkout_session_id", session.ID), zap.String("payment_intent_id", intentID))

	if intentID != "" {
		if _, err := s.payments.UpdateStatus(ctx, payment.ProviderStripe, intentID, payment.StatusSucceeded); err != nil {
			return fmt.Errorf("failed to update payments: %w", err)
		}
	}

	orderID := session.Metadata["order_id"]
	if orderID == "" {
		orderID = session.ClientReferenceID
	}
	orderID, err := s.resolveOrder(ctx, orderID, intentID)
	if err != nil || orderID == "" {
		return s.unresolved(log, err)
	}

	stamp := order.PaidStamp(string(payment.ProviderStripe), s.now().UTC())
	stamp.ProviderReference = intentID
	return s.stamp(ctx, log, orderID, stamp, payment.EventPaymentSucceeded, intentID, session.AmountTotal, string(session.Currency))
}

// resolveOrder returns the explicit order id, else the order holding the
// payment intent. An unknown intent yields "" without error.
func (s *StripeWebhookService) resolveOrder(ctx context.Context, orderID, intentID string) (string, error) {
	if orderID = strings.TrimSpace(orderID); orderID != "" {
		return orderID, nil
	}
	if intentID == "" {
		return "", nil
	}
	o, err := s.orders.FindByProviderReference(ctx, intentID)
	if err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			return "", nil
		}
		return "", fmt.Errorf("failed to find order by payment intent: %w", err)
	}
	return o.ID, nil
}

func (s *StripeWebhookService) unresolved(log *zap.Logger, err error) error {
	if err != nil {
		return err
	}
	log.Warn("webhook event references no known order")
	return nil
}

func (s *StripeWebhookService) stamp(ctx context.Context, log *zap.Logger, orderID string, stamp order.PaymentStamp, eventType, reference string, amountMinor int64, currency string) error {
	log = log.With(zap.String("order_id", orderID))

	applied, err := s.orders.Stamp(ctx, orderID, stamp)
	if err != nil {
		return fmt.Errorf("failed to update order: %w", err)
	}
	if !applied {
		log.Warn("order not found or already settled", zap.String("payment_status", string(stamp.PaymentStatus)))
		return nil
	}

	log.Info("order payment state updated", zap.String("payment_status", string(stamp.PaymentStatus)))

	ev := payment.NewStatusChanged(eventType, orderID, payment.ProviderStripe, reference)
	if amountMinor > 0 {
		ev.Amount = payment.MajorUnits(amountMinor, currency).String()
	}
	ev.Currency = strings.ToUpper(currency)
	publishStatus(ctx, s.events, s.logger, ev)
	return nil
}

// unmarshalObject decodes the object carried by an event
func unmarshalObject(event stripe.Event, v any) error {
	if event.Data == nil || len(event.Data.Raw) == 0 {
		return errors.New("event has no data object")
	}
	return json.Unmarshal(event.Data.Raw, v)
}
