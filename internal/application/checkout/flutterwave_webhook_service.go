package checkout

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"go.uber.org/zap"

	"github.com/faycalhabibahmatalbachar/gba-sub001/internal/domain/order"
	"github.com/faycalhabibahmatalbachar/gba-sub001/internal/domain/payment"
	"github.com/faycalhabibahmatalbachar/gba-sub001/internal/domain/shared"
	"github.com/faycalhabibahmatalbachar/gba-sub001/internal/infrastructure/logger"
	paymentinfra "github.com/faycalhabibahmatalbachar/gba-sub001/internal/infrastructure/payment"
	"github.com/faycalhabibahmatalbachar/gba-sub001/internal/infrastructure/telemetry"
)

const msgMissingSecretHash = "Missing FLW_SECRET_HASH"

// DefaultDeliveryTTL is how long a processed webhook delivery is remembered
const DefaultDeliveryTTL = 24 * time.Hour

// Ack is the body returned for every accepted webhook delivery
type Ack struct {
	OK bool `json:"ok"`
}

// FlutterwaveWebhookService applies Flutterwave transaction callbacks to orders
type FlutterwaveWebhookService struct {
	secretHash string
	links      payment.LinkGateway
	orders     order.Repository
	deliveries shared.IdempotencyStore
	ttl        time.Duration
	events     shared.EventPublisher
	metrics    Metrics
	logger     *zap.Logger
	now        func() time.Time
}

// FlutterwaveWebhookServiceConfig contains the dependencies of FlutterwaveWebhookService.
// A nil Links gateway means FLW_SECRET_KEY is not configured.
type FlutterwaveWebhookServiceConfig struct {
	SecretHash string
	Links      payment.LinkGateway
	Orders     order.Repository
	// Deliveries de-duplicates provider retries; nil disables de-duplication
	Deliveries shared.IdempotencyStore
	TTL        time.Duration
	Events     shared.EventPublisher
	Metrics    Metrics
	Logger     *zap.Logger
}

// NewFlutterwaveWebhookService creates a new FlutterwaveWebhookService
func NewFlutterwaveWebhookService(cfg FlutterwaveWebhookServiceConfig) *FlutterwaveWebhookService {
	ttl := cfg.TTL
	if ttl <= 0 {
		ttl = DefaultDeliveryTTL
	}
	return &FlutterwaveWebhookService{
		secretHash: cfg.SecretHash,
		links:      cfg.Links,
		orders:     cfg.Orders,
		deliveries: cfg.Deliveries,
		ttl:        ttl,
		events:     cfg.Events,
		metrics:    metricsOrNoop(cfg.Metrics),
		logger:     cfg.Logger,
		now:        time.Now,
	}
}

// HandleWebhook authenticates a delivery by its verif-hash header, re-verifies
// the transaction with Flutterwave and stamps the referenced order.
//
// Once authenticated and parsed, a delivery is acknowledged even when its
// order cannot be resolved, so the provider does not retry it.
func (s *FlutterwaveWebhookService) HandleWebhook(ctx context.Context, verifHash string, body []byte) (*Ack, error) {
	ctx, span := telemetry.StartServiceSpan(ctx, "flutterwave_webhook", "handle")
	defer span.End()

	ack, outcome, err := s.handle(ctx, verifHash, body)
	telemetry.SetAttribute(span, telemetry.SpanAttrOutcome, outcome)
	telemetry.RecordError(span, err)
	s.metrics.RecordWebhook(ctx, string(payment.ProviderFlutterwave), outcome)
	return ack, err
}

func (s *FlutterwaveWebhookService) handle(ctx context.Context, verifHash string, body []byte) (*Ack, string, error) {
	if s.secretHash == "" {
		return nil, OutcomeError, newError(http.StatusInternalServerError, msgMissingSecretHash)
	}
	if !paymentinfra.VerifyFlutterwaveHash(verifHash, s.secretHash) {
		return nil, OutcomeRejected, errUnauthorized
	}

	event, err := ParseFlutterwaveEvent(body)
	if err != nil {
		return nil, OutcomeRejected, wrapError(http.StatusBadRequest, msgInvalidJSON, err)
	}

	if s.links == nil {
		return nil, OutcomeError, newError(http.StatusInternalServerError, msgMissingFlutterwaveKey)
	}

	txID := event.Data.ID
	if txID == "" {
		return &Ack{OK: true}, OutcomeIgnored, nil
	}

	orderID := ExtractOrderID(event)
	span := telemetry.SpanFromContext(ctx)
	telemetry.SetAttributes(span, telemetry.SpanAttrEventID, txID, telemetry.SpanAttrOrderID, orderID)
	log := logger.FromContextOr(ctx, s.logger).With(
		zap.String("transaction_id", txID),
		zap.String("order_id", orderID),
	)

	tx, err := s.links.VerifyTransaction(ctx, txID)
	if err != nil {
		log.Error("transaction verification failed", zap.Error(err))
		return nil, OutcomeError, wrapError(http.StatusInternalServerError, msgVerifyFailed, err)
	}

	if orderID == "" {
		log.Warn("webhook carries no resolvable order id",
			zap.String("tx_ref", event.Data.TxRef),
			zap.String("status", tx.Status),
		)
		return &Ack{OK: true}, OutcomeIgnored, nil
	}

	stamp, eventType, ok := s.stampFor(tx.Status)
	if !ok {
		log.Info("transaction status needs no order change", zap.String("status", tx.Status))
		return &Ack{OK: true}, OutcomeIgnored, nil
	}

	key := fmt.Sprintf("%s:%s:%s", payment.ProviderFlutterwave, txID, tx.Status)
	if s.deliveries != nil {
		fresh, err := s.deliveries.MarkProcessed(ctx, key, s.ttl)
		if err != nil {
			// The monotonic stamp keeps a replay harmless, so processing goes on.
			log.Warn("delivery de-duplication unavailable", zap.Error(err))
		} else if !fresh {
			telemetry.AddEvent(span, "duplicate_delivery", telemetry.SpanAttrEventID, txID)
			log.Info("duplicate webhook delivery", zap.String("status", tx.Status))
			return &Ack{OK: true}, OutcomeDuplicate, nil
		}
	}

	applied, err := s.orders.Stamp(ctx, orderID, stamp)
	if err != nil {
		s.forget(ctx, log, key)
		log.Error("failed to stamp order", zap.Error(err))
		return nil, OutcomeError, wrapError(http.StatusInternalServerError, "Failed to update order", err)
	}
	if !applied {
		log.Warn("order not found or already settled", zap.String("status", tx.Status))
		return &Ack{OK: true}, OutcomeIgnored, nil
	}

	log.Info("order payment state updated", zap.String("status", tx.Status))

	ev := payment.NewStatusChanged(eventType, orderID, payment.ProviderFlutterwave, txID)
	if !tx.Amount.IsZero() {
		ev.Amount = tx.Amount.StringFixed(2)
	}
	ev.Currency = tx.Currency
	publishStatus(ctx, s.events, s.logger, ev)

	return &Ack{OK: true}, OutcomeOK, nil
}

// stampFor maps a verified transaction status to an order stamp
func (s *FlutterwaveWebhookService) stampFor(status string) (order.PaymentStamp, string, bool) {
	provider := string(payment.ProviderFlutterwave)
	switch status {
	case payment.TransactionSuccessful:
		return order.PaidStamp(provider, s.now().UTC()), payment.EventPaymentSucceeded, true
	case payment.TransactionFailed, payment.TransactionCancelled:
		return order.FailedStamp(provider), payment.EventPaymentFailed, true
	}
	return order.PaymentStamp{}, "", false
}

func (s *FlutterwaveWebhookService) forget(ctx context.Context, log *zap.Logger, key string) {
	if s.deliveries == nil {
		return
	}
	if err := s.deliveries.Forget(ctx, key); err != nil {
		log.Warn("failed to release webhook delivery key", zap.String("key", key), zap.Error(err))
	}
}
