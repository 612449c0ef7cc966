package dto

import (
	"time"

	"github.com/ahmetcoskunkizilkaya/medassist-backend/internal/models"
	"github.com/google/uuid"
)

type CreateConversationRequest struct {
	FormID string `json:"formId"`
}

type CreateConversationResponse struct {
	Success        bool      `json:"success"`
	ConversationID uuid.UUID `json:"conversationId"`
	Message        string    `json:"message"`
}

type ConversationSummary struct {
	ID           uuid.UUID    `json:"id"`
	UserID       string       `json:"userId"`
	FormID       uuid.UUID    `json:"formId"`
	Title        string       `json:"title"`
	CreatedAt    time.Time    `json:"createdAt"`
	UpdatedAt    time.Time    `json:"updatedAt"`
	MedicalForm  *FormSummary `json:"medicalForm"`
	MessageCount int64        `json:"messageCount"`
}

type ConversationListResponse struct {
	Conversations []ConversationSummary `json:"conversations"`
}

type ConversationDetailResponse struct {
	Conversation *models.Conversation `json:"conversation"`
	Messages     []models.Message     `json:"messages"`
}
