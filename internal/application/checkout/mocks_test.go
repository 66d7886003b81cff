package checkout

import (
	"context"
	"encoding/json"
	"sync"
	"time"

	"github.com/stretchr/testify/mock"
	"github.com/stripe/stripe-go/v81"

	"github.com/faycalhabibahmatalbachar/gba-sub001/internal/domain/identity"
	"github.com/faycalhabibahmatalbachar/gba-sub001/internal/domain/order"
	"github.com/faycalhabibahmatalbachar/gba-sub001/internal/domain/payment"
	"github.com/faycalhabibahmatalbachar/gba-sub001/internal/domain/shared"
)

const (
	testOrderID = "3f2b8c1e-7a4d-4e2b-9c1f-0a1b2c3d4e5f"
	testUserID  = "user-1"
)

// MockTokenVerifier is a mock implementation of identity.TokenVerifier
type MockTokenVerifier struct {
	mock.Mock
}

func (m *MockTokenVerifier) Verify(ctx context.Context, token string) (*identity.Principal, error) {
	args := m.Called(ctx, token)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*identity.Principal), args.Error(1)
}

// MockOrderRepository is a mock implementation of order.Repository
type MockOrderRepository struct {
	mock.Mock
}

func (m *MockOrderRepository) FindByID(ctx context.Context, id string) (*order.Order, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*order.Order), args.Error(1)
}

func (m *MockOrderRepository) FindByProviderReference(ctx context.Context, reference string) (*order.Order, error) {
	args := m.Called(ctx, reference)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*order.Order), args.Error(1)
}

func (m *MockOrderRepository) Stamp(ctx context.Context, id string, stamp order.PaymentStamp) (bool, error) {
	args := m.Called(ctx, id, stamp)
	return args.Bool(0), args.Error(1)
}

// MockPaymentRepository is a mock implementation of payment.Repository
type MockPaymentRepository struct {
	mock.Mock
}

func (m *MockPaymentRepository) CreateIfAbsent(ctx context.Context, p *payment.Payment) (bool, error) {
	args := m.Called(ctx, p)
	return args.Bool(0), args.Error(1)
}

func (m *MockPaymentRepository) UpdateStatus(ctx context.Context, provider payment.Provider, reference string, status payment.Status) (int64, error) {
	args := m.Called(ctx, provider, reference, status)
	return args.Get(0).(int64), args.Error(1)
}

// MockIntentGateway is a mock implementation of payment.IntentGateway
type MockIntentGateway struct {
	mock.Mock
}

func (m *MockIntentGateway) CreateIntent(ctx context.Context, req payment.IntentRequest) (*payment.Intent, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*payment.Intent), args.Error(1)
}

func (m *MockIntentGateway) GetIntent(ctx context.Context, id string) (*payment.Intent, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*payment.Intent), args.Error(1)
}

// MockLinkGateway is a mock implementation of payment.LinkGateway
type MockLinkGateway struct {
	mock.Mock
}

func (m *MockLinkGateway) CreatePaymentLink(ctx context.Context, req payment.LinkRequest) (string, error) {
	args := m.Called(ctx, req)
	return args.String(0), args.Error(1)
}

func (m *MockLinkGateway) VerifyTransaction(ctx context.Context, id string) (*payment.Transaction, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*payment.Transaction), args.Error(1)
}

// MockIdempotencyStore is a mock implementation of shared.IdempotencyStore
type MockIdempotencyStore struct {
	mock.Mock
}

func (m *MockIdempotencyStore) MarkProcessed(ctx context.Context, key string, ttl time.Duration) (bool, error) {
	args := m.Called(ctx, key, ttl)
	return args.Bool(0), args.Error(1)
}

func (m *MockIdempotencyStore) Forget(ctx context.Context, key string) error {
	return m.Called(ctx, key).Error(0)
}

func (m *MockIdempotencyStore) Close() error {
	return nil
}

// MockEventVerifier is a mock implementation of EventVerifier
type MockEventVerifier struct {
	mock.Mock
}

func (m *MockEventVerifier) ConstructEvent(payload []byte, signature string) (stripe.Event, error) {
	args := m.Called(payload, signature)
	return args.Get(0).(stripe.Event), args.Error(1)
}

// recordingPublisher collects published events
type recordingPublisher struct {
	mu     sync.Mutex
	events []shared.DomainEvent
	err    error
}

func (p *recordingPublisher) Publish(ctx context.Context, events ...shared.DomainEvent) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.events = append(p.events, events...)
	return p.err
}

func (p *recordingPublisher) types() []string {
	p.mu.Lock()
	defer p.mu.Unlock()
	out := make([]string, 0, len(p.events))
	for _, e := range p.events {
		out = append(out, e.EventType())
	}
	return out
}

// recordingMetrics collects recorded outcomes as "provider/outcome"
type recordingMetrics struct {
	mu        sync.Mutex
	checkouts []string
	webhooks  []string
}

func (m *recordingMetrics) RecordCheckout(ctx context.Context, provider, outcome string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.checkouts = append(m.checkouts, provider+"/"+outcome)
}

func (m *recordingMetrics) RecordWebhook(ctx context.Context, provider, outcome string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.webhooks = append(m.webhooks, provider+"/"+outcome)
}

func testPrincipal() *identity.Principal {
	return &identity.Principal{UserID: testUserID, Email: "token@example.com"}
}

func testOrder() *order.Order {
	return &order.Order{
		ID:            testOrderID,
		UserID:        testUserID,
		OrderNumber:   "GBA-0001",
		TotalAmount:   5000,
		Currency:      "XAF",
		PaymentStatus: order.PaymentStatusPending,
		CustomerEmail: "buyer@example.com",
		CustomerName:  "Awa",
		CustomerPhone: "+23560000000",
	}
}

func jsonUnmarshal(raw string, v any) error {
	return json.Unmarshal([]byte(raw), v)
}
