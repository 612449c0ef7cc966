package dto

import "github.com/google/uuid"

// ChatRequest carries images as data URLs; entries that are not images are ignored.
type ChatRequest struct {
	ConversationID string   `json:"conversationId"`
	Message        string   `json:"message"`
	Images         []string `json:"images"`
}

type ChatResponse struct {
	Success        bool      `json:"success"`
	Response       string    `json:"response"`
	ConversationID uuid.UUID `json:"conversationId"`
	Mode           string    `json:"mode"`
	Degraded       bool      `json:"degraded"`
	Emergency      bool      `json:"emergency"`
}
