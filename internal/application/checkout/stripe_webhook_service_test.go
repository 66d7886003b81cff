package checkout

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"github.com/stripe/stripe-go/v81"
	"go.uber.org/zap"

	"github.com/faycalhabibahmatalbachar/gba-sub001/internal/domain/order"
	"github.com/faycalhabibahmatalbachar/gba-sub001/internal/domain/payment"
	"github.com/faycalhabibahmatalbachar/gba-sub001/internal/domain/shared"
)

type stripeWebhookFixture struct {
	verifier   *MockEventVerifier
	orders     *MockOrderRepository
	payments   *MockPaymentRepository
	deliveries *MockIdempotencyStore
	publisher  *recordingPublisher
	metrics    *recordingMetrics
	svc        *StripeWebhookService
}

func newStripeWebhookFixture() *stripeWebhookFixture {
	f := &stripeWebhookFixture{
		verifier:   new(MockEventVerifier),
		orders:     new(MockOrderRepository),
		payments:   new(MockPaymentRepository),
		deliveries: new(MockIdempotencyStore),
		publisher:  &recordingPublisher{},
		metrics:    &recordingMetrics{},
	}
	f.svc = NewStripeWebhookService(StripeWebhookServiceConfig{
		Verifier:   f.verifier,
		Orders:     f.orders,
		Payments:   f.payments,
		Deliveries: f.deliveries,
		TTL:        time.Hour,
		Events:     f.publisher,
		Metrics:    f.metrics,
		Logger:     zap.NewNop(),
	})
	f.svc.now = func() time.Time { return fixedNow }
	return f
}

func stripeEvent(id string, eventType stripe.EventType, object string) stripe.Event {
	return stripe.Event{
		ID:   id,
		Type: eventType,
		Data: &stripe.EventData{Raw: json.RawMessage(object)},
	}
}

func paidStripeStamp(reference string) order.PaymentStamp {
	stamp := order.PaidStamp("stripe", fixedNow.UTC())
	stamp.ProviderReference = reference
	return stamp
}

func TestStripeWebhookService_IntentSucceeded(t *testing.T) {
	ctx := context.Background()
	f := newStripeWebhookFixture()
	payload := []byte("payload")
	event := stripeEvent("evt_1", stripe.EventTypePaymentIntentSucceeded,
		`{"id":"pi_1","object":"payment_intent","amount":5000,"currency":"xaf","metadata":{"order_id":"`+testOrderID+`"}}`)

	f.verifier.On("ConstructEvent", payload, "t=1,v1=abc").Return(event, nil)
	f.deliveries.On("MarkProcessed", ctx, "stripe:evt_1", time.Hour).Return(true, nil)
	f.payments.On("UpdateStatus", ctx, payment.ProviderStripe, "pi_1", payment.StatusSucceeded).Return(int64(1), nil)
	f.orders.On("Stamp", ctx, testOrderID, paidStripeStamp("pi_1")).Return(true, nil)

	ack, err := f.svc.HandleWebhook(ctx, "t=1,v1=abc", payload)
	require.NoError(t, err)
	assert.True(t, ack.OK)

	require.Len(t, f.publisher.events, 1)
	ev := f.publisher.events[0].(*payment.StatusChanged)
	assert.Equal(t, payment.EventPaymentSucceeded, ev.EventType())
	assert.Equal(t, "5000", ev.Amount)
	assert.Equal(t, "XAF", ev.Currency)
	assert.Equal(t, []string{"stripe/ok"}, f.metrics.webhooks)
	f.payments.AssertExpectations(t)
	f.orders.AssertExpectations(t)
}

func TestStripeWebhookService_IntentSucceeded_ResolvesOrderByIntent(t *testing.T) {
	ctx := context.Background()
	f := newStripeWebhookFixture()
	event := stripeEvent("evt_2", stripe.EventTypePaymentIntentSucceeded, `{"id":"pi_2","amount":1250,"currency":"usd"}`)

	f.verifier.On("ConstructEvent", mock.Anything, "sig").Return(event, nil)
	f.deliveries.On("MarkProcessed", ctx, "stripe:evt_2", time.Hour).Return(true, nil)
	f.payments.On("UpdateStatus", ctx, payment.ProviderStripe, "pi_2", payment.StatusSucceeded).Return(int64(1), nil)
	f.orders.On("FindByProviderReference", ctx, "pi_2").Return(&order.Order{ID: "o-by-intent"}, nil)
	f.orders.On("Stamp", ctx, "o-by-intent", paidStripeStamp("pi_2")).Return(true, nil)

	_, err := f.svc.HandleWebhook(ctx, "sig", []byte("{}"))
	require.NoError(t, err)
	assert.Equal(t, "12.5", f.publisher.events[0].(*payment.StatusChanged).Amount)
	f.orders.AssertExpectations(t)
}

func TestStripeWebhookService_IntentSucceeded_UnknownOrderIsAcknowledged(t *testing.T) {
	ctx := context.Background()
	f := newStripeWebhookFixture()
	event := stripeEvent("evt_3", stripe.EventTypePaymentIntentSucceeded, `{"id":"pi_3"}`)

	f.verifier.On("ConstructEvent", mock.Anything, "sig").Return(event, nil)
	f.deliveries.On("MarkProcessed", ctx, "stripe:evt_3", time.Hour).Return(true, nil)
	f.payments.On("UpdateStatus", ctx, payment.ProviderStripe, "pi_3", payment.StatusSucceeded).Return(int64(0), nil)
	f.orders.On("FindByProviderReference", ctx, "pi_3").Return(nil, shared.ErrNotFound)

	ack, err := f.svc.HandleWebhook(ctx, "sig", []byte("{}"))
	require.NoError(t, err)
	assert.True(t, ack.OK)
	f.orders.AssertNotCalled(t, "Stamp", mock.Anything, mock.Anything, mock.Anything)
}

func TestStripeWebhookService_IntentFailed(t *testing.T) {
	ctx := context.Background()
	f := newStripeWebhookFixture()
	event := stripeEvent("evt_4", stripe.EventTypePaymentIntentPaymentFailed,
		`{"id":"pi_4","metadata":{"order_id":"`+testOrderID+`"}}`)

	f.verifier.On("ConstructEvent", mock.Anything, "sig").Return(event, nil)
	f.deliveries.On("MarkProcessed", ctx, "stripe:evt_4", time.Hour).Return(true, nil)
	f.payments.On("UpdateStatus", ctx, payment.ProviderStripe, "pi_4", payment.StatusFailed).Return(int64(1), nil)
	f.orders.On("Stamp", ctx, testOrderID, order.FailedStamp("")).Return(true, nil)

	_, err := f.svc.HandleWebhook(ctx, "sig", []byte("{}"))
	require.NoError(t, err)
	assert.Equal(t, []string{payment.EventPaymentFailed}, f.publisher.types())
}

func TestStripeWebhookService_SessionCompleted(t *testing.T) {
	ctx := context.Background()

	t.Run("metadata order id", func(t *testing.T) {
		f := newStripeWebhookFixture()
		event := stripeEvent("evt_5", stripe.EventTypeCheckoutSessionCompleted,
			`{"id":"cs_1","object":"checkout.session","payment_intent":"pi_5","amount_total":5000,"currency":"xaf","metadata":{"order_id":"`+testOrderID+`"}}`)

		f.verifier.On("ConstructEvent", mock.Anything, "sig").Return(event, nil)
		f.deliveries.On("MarkProcessed", ctx, "stripe:evt_5", time.Hour).Return(true, nil)
		f.payments.On("UpdateStatus", ctx, payment.ProviderStripe, "pi_5", payment.StatusSucceeded).Return(int64(1), nil)
		f.orders.On("Stamp", ctx, testOrderID, paidStripeStamp("pi_5")).Return(true, nil)

		_, err := f.svc.HandleWebhook(ctx, "sig", []byte("{}"))
		require.NoError(t, err)
		f.orders.AssertExpectations(t)
	})

	t.Run("client reference id without intent", func(t *testing.T) {
		f := newStripeWebhookFixture()
		event := stripeEvent("evt_6", stripe.EventTypeCheckoutSessionCompleted,
			`{"id":"cs_2","object":"checkout.session","client_reference_id":"o-ref"}`)

		f.verifier.On("ConstructEvent", mock.Anything, "sig").Return(event, nil)
		f.deliveries.On("MarkProcessed", ctx, "stripe:evt_6", time.Hour).Return(true, nil)
		f.orders.On("Stamp", ctx, "o-ref", paidStripeStamp("")).Return(true, nil)

		_, err := f.svc.HandleWebhook(ctx, "sig", []byte("{}"))
		require.NoError(t, err)
		f.payments.AssertNotCalled(t, "UpdateStatus", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	})
}

func TestStripeWebhookService_UnhandledTypeIsAcknowledged(t *testing.T) {
	ctx := context.Background()
	f := newStripeWebhookFixture()
	f.verifier.On("ConstructEvent", mock.Anything, "sig").Return(stripeEvent("evt_7", "charge.refunded", `{}`), nil)

	ack, err := f.svc.HandleWebhook(ctx, "sig", []byte("{}"))
	require.NoError(t, err)
	assert.True(t, ack.OK)
	f.deliveries.AssertNotCalled(t, "MarkProcessed", mock.Anything, mock.Anything, mock.Anything)
	assert.Equal(t, []string{"stripe/ignored"}, f.metrics.webhooks)
}

func TestStripeWebhookService_Rejections(t *testing.T) {
	ctx := context.Background()

	t.Run("missing signature", func(t *testing.T) {
		f := newStripeWebhookFixture()
		_, err := f.svc.HandleWebhook(ctx, "", []byte("{}"))
		assertCheckoutError(t, err, http.StatusBadRequest, "Missing Stripe-Signature")
		f.verifier.AssertNotCalled(t, "ConstructEvent", mock.Anything, mock.Anything)
	})

	t.Run("signing secret not configured", func(t *testing.T) {
		svc := NewStripeWebhookService(StripeWebhookServiceConfig{})
		_, err := svc.HandleWebhook(ctx, "sig", []byte("{}"))
		assertCheckoutError(t, err, http.StatusInternalServerError, "Missing STRIPE_WEBHOOK_SIGNING_SECRET")
	})

	t.Run("invalid signature", func(t *testing.T) {
		f := newStripeWebhookFixture()
		f.verifier.On("ConstructEvent", mock.Anything, "bad").Return(stripe.Event{}, payment.ErrInvalidSignature)

		_, err := f.svc.HandleWebhook(ctx, "bad", []byte("{}"))
		assertCheckoutError(t, err, http.StatusBadRequest, "Invalid signature")
		assert.ErrorIs(t, err, payment.ErrInvalidSignature)
		assert.Equal(t, []string{"stripe/rejected"}, f.metrics.webhooks)
	})
}

func TestStripeWebhookService_DuplicateEvent(t *testing.T) {
	ctx := context.Background()
	f := newStripeWebhookFixture()
	event := stripeEvent("evt_1", stripe.EventTypePaymentIntentSucceeded, `{"id":"pi_1"}`)
	f.verifier.On("ConstructEvent", mock.Anything, "sig").Return(event, nil)
	f.deliveries.On("MarkProcessed", ctx, "stripe:evt_1", time.Hour).Return(false, nil)

	ack, err := f.svc.HandleWebhook(ctx, "sig", []byte("{}"))
	require.NoError(t, err)
	assert.True(t, ack.OK)
	f.payments.AssertNotCalled(t, "UpdateStatus", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	assert.Equal(t, []string{"stripe/duplicate"}, f.metrics.webhooks)
}

func TestStripeWebhookService_ProcessingFailureReleasesKey(t *testing.T) {
	ctx := context.Background()
	f := newStripeWebhookFixture()
	event := stripeEvent("evt_8", stripe.EventTypePaymentIntentSucceeded, `{"id":"pi_8"}`)
	f.verifier.On("ConstructEvent", mock.Anything, "sig").Return(event, nil)
	f.deliveries.On("MarkProcessed", ctx, "stripe:evt_8", time.Hour).Return(true, nil)
	f.deliveries.On("Forget", ctx, "stripe:evt_8").Return(nil)
	f.payments.On("UpdateStatus", ctx, payment.ProviderStripe, "pi_8", payment.StatusSucceeded).Return(int64(0), errors.New("connection reset"))

	_, err := f.svc.HandleWebhook(ctx, "sig", []byte("{}"))
	var e *Error
	require.ErrorAs(t, err, &e)
	assert.Equal(t, http.StatusInternalServerError, e.Status)
	assert.Contains(t, e.Message, "connection reset")
	f.deliveries.AssertExpectations(t)
}

func TestStripeWebhookService_EventWithoutData(t *testing.T) {
	ctx := context.Background()
	f := newStripeWebhookFixture()
	f.verifier.On("ConstructEvent", mock.Anything, "sig").Return(stripe.Event{ID: "evt_9", Type: stripe.EventTypePaymentIntentSucceeded}, nil)
	f.deliveries.On("MarkProcessed", ctx, "stripe:evt_9", time.Hour).Return(true, nil)
	f.deliveries.On("Forget", ctx, "stripe:evt_9").Return(nil)

	_, err := f.svc.HandleWebhook(ctx, "sig", []byte("{}"))
	assert.Error(t, err)
}
