package models

import "time"

// ConversationModel maps the support conversations table
type ConversationModel struct {
	ID            string  `gorm:"primaryKey"`
	UserID        *string `gorm:"index"`
	Status        *string
	LastMessageAt *time.Time
	CreatedAt     time.Time
}

// TableName returns the table name for the model
func (ConversationModel) TableName() string {
	return "conversations"
}

// MessageModel maps the conversation messages table
type MessageModel struct {
	ID             string `gorm:"primaryKey"`
	ConversationID string `gorm:"index"`
	SenderID       string
	SenderType     string
	Content        string
	MessageType    string
	IsRead         bool
	CreatedAt      time.Time
}

// TableName returns the table name for the model
func (MessageModel) TableName() string {
	return "messages"
}
