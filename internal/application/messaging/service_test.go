package messaging

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/faycalhabibahmatalbachar/gba-sub001/internal/domain/messaging"
	"github.com/faycalhabibahmatalbachar/gba-sub001/internal/domain/shared"
)

// MockMessageRepository is a mock implementation of messaging.Repository
type MockMessageRepository struct {
	mock.Mock
}

func (m *MockMessageRepository) AppendMessage(ctx context.Context, msg messaging.Message) error {
	return m.Called(ctx, msg).Error(0)
}

func (m *MockMessageRepository) MarkCustomerMessagesRead(ctx context.Context, conversationID string) (int64, error) {
	args := m.Called(ctx, conversationID)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockMessageRepository) SetConversationStatus(ctx context.Context, conversationID string, status messaging.ConversationStatus) error {
	return m.Called(ctx, conversationID, status).Error(0)
}

var fixedNow = time.Date(2024, 5, 1, 10, 0, 0, 0, time.UTC)

func newTestService(repo *MockMessageRepository) *Service {
	svc := NewService(repo, zap.NewNop())
	svc.now = func() time.Time { return fixedNow }
	svc.newID = func() string { return "m-1" }
	return svc
}

func TestService_SendMessage(t *testing.T) {
	ctx := context.Background()
	repo := new(MockMessageRepository)
	svc := newTestService(repo)

	repo.On("AppendMessage", ctx, messaging.Message{
		ID:             "m-1",
		ConversationID: "c-1",
		SenderID:       "admin-1",
		SenderType:     messaging.SenderAdmin,
		Content:        "Votre commande est partie",
		MessageType:    messaging.MessageTypeText,
		CreatedAt:      fixedNow,
	}).Return(nil)

	resp, err := svc.SendMessage(ctx, "c-1", "admin-1", SendMessageRequest{Content: " Votre commande est partie "})
	require.NoError(t, err)
	assert.Equal(t, "m-1", resp.ID)
	assert.Equal(t, "admin", resp.SenderType)
	assert.Equal(t, fixedNow, resp.CreatedAt)
	repo.AssertExpectations(t)
}

func TestService_SendMessage_Errors(t *testing.T) {
	ctx := context.Background()

	t.Run("blank content", func(t *testing.T) {
		repo := new(MockMessageRepository)
		_, err := newTestService(repo).SendMessage(ctx, "c-1", "admin-1", SendMessageRequest{Content: "   "})
		assert.ErrorIs(t, err, messaging.ErrEmptyContent)
		repo.AssertNotCalled(t, "AppendMessage", mock.Anything, mock.Anything)
	})

	t.Run("missing conversation id", func(t *testing.T) {
		repo := new(MockMessageRepository)
		_, err := newTestService(repo).SendMessage(ctx, "", "admin-1", SendMessageRequest{Content: "Bonjour"})
		assert.ErrorIs(t, err, messaging.ErrMissingThreadID)
	})

	t.Run("unknown conversation", func(t *testing.T) {
		repo := new(MockMessageRepository)
		repo.On("AppendMessage", ctx, mock.Anything).Return(shared.ErrNotFound)
		_, err := newTestService(repo).SendMessage(ctx, "ghost", "admin-1", SendMessageRequest{Content: "Bonjour"})
		assert.ErrorIs(t, err, shared.ErrNotFound)
	})
}

func TestService_MarkRead(t *testing.T) {
	ctx := context.Background()
	repo := new(MockMessageRepository)
	svc := newTestService(repo)

	repo.On("MarkCustomerMessagesRead", ctx, "c-1").Return(int64(3), nil)
	repo.On("MarkCustomerMessagesRead", ctx, "c-2").Return(int64(0), errors.New("db down"))

	resp, err := svc.MarkRead(ctx, "c-1")
	require.NoError(t, err)
	assert.Equal(t, &ReadResponse{ConversationID: "c-1", Updated: 3}, resp)

	_, err = svc.MarkRead(ctx, "c-2")
	assert.EqualError(t, err, "db down")
}

func TestService_SetStatus(t *testing.T) {
	ctx := context.Background()
	repo := new(MockMessageRepository)
	svc := newTestService(repo)

	repo.On("SetConversationStatus", ctx, "c-1", messaging.ConversationResolved).Return(nil)

	resp, err := svc.SetStatus(ctx, "c-1", StatusRequest{Status: "RESOLVED"})
	require.NoError(t, err)
	assert.Equal(t, "resolved", resp.Status)

	_, err = svc.SetStatus(ctx, "c-1", StatusRequest{Status: "archived"})
	assert.ErrorIs(t, err, messaging.ErrInvalidStatus)
	repo.AssertNumberOfCalls(t, "SetConversationStatus", 1)
}
