// Package messaging models the support conversations between customers and
// the store's admins.
package messaging

import (
	"context"
	"strings"
	"time"

	"github.com/faycalhabibahmatalbachar/gba-sub001/internal/domain/shared"
)

// SenderType tells who wrote a message
type SenderType string

const (
	SenderCustomer SenderType = "customer"
	SenderAdmin    SenderType = "admin"
)

// MessageTypeText is the only message type admins send
const MessageTypeText = "text"

// ConversationStatus is the triage state of a conversation
type ConversationStatus string

const (
	ConversationActive   ConversationStatus = "active"
	ConversationPending  ConversationStatus = "pending"
	ConversationResolved ConversationStatus = "resolved"
)

// MaxContentLength bounds the length of a message, in runes
const MaxContentLength = 4000

var (
	ErrEmptyContent    = shared.NewDomainError("VALIDATION", "content must not be empty")
	ErrContentTooLong  = shared.NewDomainError("VALIDATION", "content is too long")
	ErrInvalidStatus   = shared.NewDomainError("VALIDATION", "status must be one of active, pending, resolved")
	ErrMissingThreadID = shared.NewDomainError("BAD_REQUEST", "conversation_id is required")
)

// ParseConversationStatus checks that s names a conversation status
func ParseConversationStatus(s string) (ConversationStatus, error) {
	switch status := ConversationStatus(strings.ToLower(strings.TrimSpace(s))); status {
	case ConversationActive, ConversationPending, ConversationResolved:
		return status, nil
	default:
		return "", ErrInvalidStatus
	}
}

// Message is one message of a conversation
type Message struct {
	ID             string
	ConversationID string
	SenderID       string
	SenderType     SenderType
	Content        string
	MessageType    string
	IsRead         bool
	CreatedAt      time.Time
}

// NewAdminMessage builds a text message written by an admin. The content is
// trimmed and must be non-empty and at most MaxContentLength runes.
func NewAdminMessage(id, conversationID, adminID, content string, at time.Time) (Message, error) {
	content = strings.TrimSpace(content)
	if content == "" {
		return Message{}, ErrEmptyContent
	}
	if len([]rune(content)) > MaxContentLength {
		return Message{}, ErrContentTooLong
	}
	return Message{
		ID:             id,
		ConversationID: conversationID,
		SenderID:       adminID,
		SenderType:     SenderAdmin,
		Content:        content,
		MessageType:    MessageTypeText,
		CreatedAt:      at,
	}, nil
}

// Repository stores conversations and their messages. Operations on a
// conversation that does not exist yield shared.ErrNotFound.
type Repository interface {
	// AppendMessage stores m and moves the conversation's last_message_at to
	// m.CreatedAt, atomically
	AppendMessage(ctx context.Context, m Message) error
	// MarkCustomerMessagesRead flags the customer's messages as read and
	// returns how many were unread
	MarkCustomerMessagesRead(ctx context.Context, conversationID string) (int64, error)
	SetConversationStatus(ctx context.Context, conversationID string, status ConversationStatus) error
}
