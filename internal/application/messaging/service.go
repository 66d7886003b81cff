// Package messaging lets admins answer customer support conversations.
package messaging

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/faycalhabibahmatalbachar/gba-sub001/internal/domain/messaging"
)

// SendMessageRequest is an admin reply
type SendMessageRequest struct {
	Content string `json:"content" binding:"required"`
}

// StatusRequest changes the status of a conversation
type StatusRequest struct {
	Status string `json:"status" binding:"required,max=32"`
}

// MessageResponse is a stored message
type MessageResponse struct {
	ID             string    `json:"id"`
	ConversationID string    `json:"conversation_id"`
	SenderID       string    `json:"sender_id"`
	SenderType     string    `json:"sender_type"`
	Content        string    `json:"content"`
	MessageType    string    `json:"message_type"`
	IsRead         bool      `json:"is_read"`
	CreatedAt      time.Time `json:"created_at"`
}

// ReadResponse reports how many customer messages were marked read
type ReadResponse struct {
	ConversationID string `json:"conversation_id"`
	Updated        int64  `json:"updated"`
}

// ConversationResponse is the triage state of a conversation
type ConversationResponse struct {
	ID     string `json:"id"`
	Status string `json:"status"`
}

// Service handles the admin side of support conversations
type Service struct {
	repo   messaging.Repository
	logger *zap.Logger
	now    func() time.Time
	newID  func() string
}

// NewService creates a new messaging Service
func NewService(repo messaging.Repository, logger *zap.Logger) *Service {
	return &Service{repo: repo, logger: logger, now: time.Now, newID: uuid.NewString}
}

// SendMessage stores a reply from adminID in the conversation
func (s *Service) SendMessage(ctx context.Context, conversationID, adminID string, req SendMessageRequest) (*MessageResponse, error) {
	conversationID = strings.TrimSpace(conversationID)
	if conversationID == "" {
		return nil, messaging.ErrMissingThreadID
	}
	m, err := messaging.NewAdminMessage(s.newID(), conversationID, adminID, req.Content, s.now().UTC())
	if err != nil {
		return nil, err
	}
	if err := s.repo.AppendMessage(ctx, m); err != nil {
		return nil, err
	}

	s.logger.Info("Admin message sent",
		zap.String("conversation_id", conversationID),
		zap.String("message_id", m.ID),
		zap.String("admin_id", adminID),
	)
	return &MessageResponse{
		ID:             m.ID,
		ConversationID: m.ConversationID,
		SenderID:       m.SenderID,
		SenderType:     string(m.SenderType),
		Content:        m.Content,
		MessageType:    m.MessageType,
		IsRead:         m.IsRead,
		CreatedAt:      m.CreatedAt,
	}, nil
}

// MarkRead marks the customer's messages of the conversation as read
func (s *Service) MarkRead(ctx context.Context, conversationID string) (*ReadResponse, error) {
	conversationID = strings.TrimSpace(conversationID)
	if conversationID == "" {
		return nil, messaging.ErrMissingThreadID
	}
	n, err := s.repo.MarkCustomerMessagesRead(ctx, conversationID)
	if err != nil {
		return nil, err
	}
	return &ReadResponse{ConversationID: conversationID, Updated: n}, nil
}

// SetStatus changes the triage status of the conversation
func (s *Service) SetStatus(ctx context.Context, conversationID string, req StatusRequest) (*ConversationResponse, error) {
	conversationID = strings.TrimSpace(conversationID)
	if conversationID == "" {
		return nil, messaging.ErrMissingThreadID
	}
	status, err := messaging.ParseConversationStatus(req.Status)
	if err != nil {
		return nil, err
	}
	if err := s.repo.SetConversationStatus(ctx, conversationID, status); err != nil {
		return nil, err
	}
	s.logger.Info("Conversation status changed",
		zap.String("conversation_id", conversationID),
		zap.String("status", string(status)),
	)
	return &ConversationResponse{ID: conversationID, Status: string(status)}, nil
}
