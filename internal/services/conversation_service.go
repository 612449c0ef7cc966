package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/ahmetcoskunkizilkaya/medassist-backend/internal/dto"
	"github.com/ahmetcoskunkizilkaya/medassist-backend/internal/models"
	"github.com/ahmetcoskunkizilkaya/medassist-backend/internal/store"
	"github.com/ahmetcoskunkizilkaya/medassist-backend/internal/validation"
	"github.com/google/uuid"
	"github.com/samber/lo"
)

type ConversationService struct {
	store store.Store
}

func NewConversationService(s store.Store) *ConversationService {
	return &ConversationService{store: s}
}

// Create opens a conversation on a form the user owns. Forms owned by someone
// else are reported as ErrFormNotFound.
func (s *ConversationService) Create(ctx context.Context, userID, formID string) (*models.Conversation, error) {
	formID = strings.TrimSpace(formID)
	if formID == "" {
		return nil, newValidationError("formId", "Form ID is required")
	}
	if !validation.ValidateUUID(formID) {
		return nil, newValidationError("formId", "Form ID must be a valid UUID")
	}
	id, err := uuid.Parse(formID)
	if err != nil {
		return nil, newValidationError("formId", "Form ID must be a valid UUID")
	}

	form, err := s.store.GetForm(ctx, id)
	if errors.Is(err, store.ErrNotFound) || (err == nil && form.UserID != userID) {
		return nil, ErrFormNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("load form: %w", err)
	}

	conv := &models.Conversation{
		UserID: userID,
		FormID: form.ID,
		Title:  "Health Consultation - " + form.Name,
	}
	if err := s.store.CreateConversation(ctx, conv); err != nil {
		return nil, fmt.Errorf("create conversation: %w", err)
	}
	return conv, nil
}

func (s *ConversationService) List(ctx context.Context, userID string) ([]dto.ConversationSummary, error) {
	convs, err := s.store.ListConversations(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("list conversations: %w", err)
	}
	return lo.Map(convs, func(c store.ConversationWithCount, _ int) dto.ConversationSummary {
		summary := dto.ConversationSummary{
			ID:           c.ID,
			UserID:       c.UserID,
			FormID:       c.FormID,
			Title:        c.Title,
			CreatedAt:    c.CreatedAt,
			UpdatedAt:    c.UpdatedAt,
			MessageCount: c.MessageCount,
		}
		if c.MedicalForm != nil {
			summary.MedicalForm = &dto.FormSummary{ID: c.MedicalForm.ID, Name: c.MedicalForm.Name, Age: c.MedicalForm.Age}
		}
		return summary
	}), nil
}

// Get returns the conversation with its form and full transcript.
func (s *ConversationService) Get(ctx context.Context, userID, conversationID string) (*models.Conversation, []models.Message, error) {
	conv, err := s.owned(ctx, userID, conversationID)
	if err != nil {
		return nil, nil, err
	}
	messages, err := s.store.ListMessages(ctx, conv.ID)
	if err != nil {
		return nil, nil, fmt.Errorf("list messages: %w", err)
	}
	return conv, messages, nil
}

// owned loads a conversation and hides whether it exists for another user.
func (s *ConversationService) owned(ctx context.Context, userID, conversationID string) (*models.Conversation, error) {
	raw := strings.TrimSpace(conversationID)
	if !validation.ValidateUUID(raw) {
		return nil, ErrConversationNotFound
	}
	id, err := uuid.Parse(raw)
	if err != nil {
		return nil, ErrConversationNotFound
	}
	return loadOwnedConversation(ctx, s.store, userID, id)
}

func loadOwnedConversation(ctx context.Context, st store.Store, userID string, id uuid.UUID) (*models.Conversation, error) {
	conv, err := st.GetConversationWithForm(ctx, id)
	if errors.Is(err, store.ErrNotFound) {
		return nil, ErrConversationNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("load conversation: %w", err)
	}
	if conv.UserID != userID {
		return nil, ErrConversationNotFound
	}
	return conv, nil
}
