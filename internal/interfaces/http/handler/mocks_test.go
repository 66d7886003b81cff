package handler

import (
	"context"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/mock"

	catalogapp "github.com/faycalhabibahmatalbachar/gba-sub001/internal/application/catalog"
	"github.com/faycalhabibahmatalbachar/gba-sub001/internal/application/checkout"
	deliveryapp "github.com/faycalhabibahmatalbachar/gba-sub001/internal/application/delivery"
	"github.com/faycalhabibahmatalbachar/gba-sub001/internal/application/fulfillment"
	messagingapp "github.com/faycalhabibahmatalbachar/gba-sub001/internal/application/messaging"
	"github.com/faycalhabibahmatalbachar/gba-sub001/internal/domain/monitoring"
)

func init() {
	gin.SetMode(gin.TestMode)
}

type mockIntentCreator struct{ mock.Mock }

func (m *mockIntentCreator) CreatePaymentIntent(ctx context.Context, req checkout.Request) (*checkout.PaymentIntentResult, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*checkout.PaymentIntentResult), args.Error(1)
}

type mockLinkCreator struct{ mock.Mock }

func (m *mockLinkCreator) CreatePaymentLink(ctx context.Context, req checkout.Request) (*checkout.PaymentLinkResult, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*checkout.PaymentLinkResult), args.Error(1)
}

type mockWebhookProcessor struct{ mock.Mock }

func (m *mockWebhookProcessor) HandleWebhook(ctx context.Context, secret string, body []byte) (*checkout.Ack, error) {
	args := m.Called(ctx, secret, body)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*checkout.Ack), args.Error(1)
}

type mockSnapshotTaker struct{ mock.Mock }

func (m *mockSnapshotTaker) TakeSnapshot(ctx context.Context) (*monitoring.Snapshot, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*monitoring.Snapshot), args.Error(1)
}

type mockDeliveryService struct{ mock.Mock }

func (m *mockDeliveryService) AssignDriver(ctx context.Context, orderID string, req deliveryapp.AssignDriverRequest) (*deliveryapp.AssignmentResponse, error) {
	args := m.Called(ctx, orderID, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*deliveryapp.AssignmentResponse), args.Error(1)
}

func (m *mockDeliveryService) ListAssignments(ctx context.Context) ([]deliveryapp.AssignmentResponse, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]deliveryapp.AssignmentResponse), args.Error(1)
}

func (m *mockDeliveryService) DriverLocation(ctx context.Context, driverID string) (*deliveryapp.LocationResponse, error) {
	args := m.Called(ctx, driverID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*deliveryapp.LocationResponse), args.Error(1)
}

type mockImageService struct{ mock.Mock }

func (m *mockImageService) RequestUpload(ctx context.Context, productID string, req catalogapp.UploadImageRequest) (*catalogapp.UploadImageResponse, error) {
	args := m.Called(ctx, productID, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*catalogapp.UploadImageResponse), args.Error(1)
}

func (m *mockImageService) DeleteImage(ctx context.Context, productID, path string) error {
	args := m.Called(ctx, productID, path)
	return args.Error(0)
}

type mockPinger struct{ err error }

func (p mockPinger) Ping(context.Context) error { return p.err }

type mockProductService struct{ mock.Mock }

func (m *mockProductService) TopProducts(ctx context.Context, limit int) (*catalogapp.TopProductsResponse, error) {
	args := m.Called(ctx, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*catalogapp.TopProductsResponse), args.Error(1)
}

func (m *mockProductService) Recommend(ctx context.Context, userID string, limit int) (*catalogapp.RecommendationsResponse, error) {
	args := m.Called(ctx, userID, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*catalogapp.RecommendationsResponse), args.Error(1)
}

type mockOrderStatusService struct{ mock.Mock }

func (m *mockOrderStatusService) UpdateStatus(ctx context.Context, orderID, adminID string, req fulfillment.UpdateStatusRequest) (*fulfillment.StatusResponse, error) {
	args := m.Called(ctx, orderID, adminID, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*fulfillment.StatusResponse), args.Error(1)
}

type mockConversationService struct{ mock.Mock }

func (m *mockConversationService) SendMessage(ctx context.Context, conversationID, adminID string, req messagingapp.SendMessageRequest) (*messagingapp.MessageResponse, error) {
	args := m.Called(ctx, conversationID, adminID, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*messagingapp.MessageResponse), args.Error(1)
}

func (m *mockConversationService) MarkRead(ctx context.Context, conversationID string) (*messagingapp.ReadResponse, error) {
	args := m.Called(ctx, conversationID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*messagingapp.ReadResponse), args.Error(1)
}

func (m *mockConversationService) SetStatus(ctx context.Context, conversationID string, req messagingapp.StatusRequest) (*messagingapp.ConversationResponse, error) {
	args := m.Called(ctx, conversationID, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*messagingapp.ConversationResponse), args.Error(1)
}
