package persistence

import (
	"context"
	"fmt"

	"github.com/faycalhabibahmatalbachar/gba-sub001/internal/domain/messaging"
	"github.com/faycalhabibahmatalbachar/gba-sub001/internal/domain/shared"
	"github.com/faycalhabibahmatalbachar/gba-sub001/internal/infrastructure/persistence/models"
	"gorm.io/gorm"
)

var errConversationNotFound = shared.ErrNotFound.WithMessage("Conversation not found")

// GormMessageRepository implements messaging.Repository
type GormMessageRepository struct {
	db *gorm.DB
}

// NewGormMessageRepository creates a message repository
func NewGormMessageRepository(db *gorm.DB) *GormMessageRepository {
	return &GormMessageRepository{db: db}
}

// AppendMessage inserts the message and bumps the conversation in one transaction
func (r *GormMessageRepository) AppendMessage(ctx context.Context, m messaging.Message) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		bumped := tx.Model(&models.ConversationModel{}).
			Where("id = ?", m.ConversationID).
			Update("last_message_at", m.CreatedAt)
		if bumped.Error != nil {
			return fmt.Errorf("failed to update conversation: %w", bumped.Error)
		}
		if bumped.RowsAffected == 0 {
			return errConversationNotFound
		}

		model := models.MessageModel{
			ID:             m.ID,
			ConversationID: m.ConversationID,
			SenderID:       m.SenderID,
			SenderType:     string(m.SenderType),
			Content:        m.Content,
			MessageType:    m.MessageType,
			IsRead:         m.IsRead,
			CreatedAt:      m.CreatedAt,
		}
		if err := tx.Create(&model).Error; err != nil {
			return fmt.Errorf("failed to insert message: %w", err)
		}
		return nil
	})
}

// MarkCustomerMessagesRead flags the unread customer messages of a conversation
func (r *GormMessageRepository) MarkCustomerMessagesRead(ctx context.Context, conversationID string) (int64, error) {
	var exists int64
	if err := r.db.WithContext(ctx).Model(&models.ConversationModel{}).Where("id = ?", conversationID).Count(&exists).Error; err != nil {
		return 0, fmt.Errorf("failed to load conversation: %w", err)
	}
	if exists == 0 {
		return 0, errConversationNotFound
	}

	result := r.db.WithContext(ctx).
		Model(&models.MessageModel{}).
		Where("conversation_id = ? AND sender_type = ? AND is_read = ?", conversationID, string(messaging.SenderCustomer), false).
		Update("is_read", true)
	if result.Error != nil {
		return 0, fmt.Errorf("failed to mark messages read: %w", result.Error)
	}
	return result.RowsAffected, nil
}

// SetConversationStatus changes the triage status of a conversation
func (r *GormMessageRepository) SetConversationStatus(ctx context.Context, conversationID string, status messaging.ConversationStatus) error {
	result := r.db.WithContext(ctx).
		Model(&models.ConversationModel{}).
		Where("id = ?", conversationID).
		Update("status", string(status))
	if result.Error != nil {
		return fmt.Errorf("failed to update conversation status: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return errConversationNotFound
	}
	return nil
}

var _ messaging.Repository = (*GormMessageRepository)(nil)
