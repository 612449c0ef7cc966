package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Role string

const (
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
)

func (r Role) Valid() bool {
	return r == RoleUser || r == RoleAssistant
}

// Message is one append-only transcript entry. Images are only populated on
// user messages.
type Message struct {
	ID             uuid.UUID     `gorm:"type:uuid;primaryKey" json:"id"`
	ConversationID uuid.UUID     `gorm:"type:uuid;not null;index:idx_messages_conversation_created,priority:1" json:"conversationId"`
	Role           Role          `gorm:"size:20;not null" json:"role"`
	Content        string        `gorm:"type:text;not null" json:"content"`
	Images         ImageList     `gorm:"type:jsonb" json:"images"`
	CreatedAt      time.Time     `gorm:"index:idx_messages_conversation_created,priority:2" json:"createdAt"`
	Conversation   *Conversation `gorm:"foreignKey:ConversationID;constraint:OnDelete:CASCADE" json:"-"`
}

func (m *Message) BeforeCreate(tx *gorm.DB) error {
	if m.ID == uuid.Nil {
		m.ID = uuid.New()
	}
	return nil
}

func (Message) TableName() string {
	return "messages"
}
