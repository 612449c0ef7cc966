package services

import (
	"context"
	"encoding/base64"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/ahmetcoskunkizilkaya/medassist-backend/internal/ai"
	"github.com/ahmetcoskunkizilkaya/medassist-backend/internal/medical"
	"github.com/ahmetcoskunkizilkaya/medassist-backend/internal/models"
	"github.com/ahmetcoskunkizilkaya/medassist-backend/internal/store"
	"github.com/ahmetcoskunkizilkaya/medassist-backend/internal/validation"
	"github.com/google/uuid"
	"github.com/samber/lo"
)

// HistoryWindow is how many earlier messages are replayed to the model.
const HistoryWindow = 10

const (
	ModeInitialAssessment = "initial_assessment"
	ModeReply             = "reply"
)

// Turn is the kind of work a chat request resolves to.
type Turn int

const (
	TurnRejected Turn = iota
	TurnInitialAssessment
	TurnOrdinary
)

// DecideTurn derives the turn from the transcript size and the request. An
// empty request opens an empty conversation with the initial assessment and is
// rejected once the conversation has messages.
func DecideTurn(messageCount int64, message string, hasImages bool) Turn {
	if strings.TrimSpace(message) != "" || hasImages {
		return TurnOrdinary
	}
	if messageCount == 0 {
		return TurnInitialAssessment
	}
	return TurnRejected
}

// Assistant produces model replies. *ai.Assembler implements it.
type Assistant interface {
	Respond(ctx context.Context, req ai.Request) (ai.Reply, error)
	InitialAssessment(ctx context.Context, form *models.MedicalForm) (ai.Reply, error)
}

type ChatRequest struct {
	ConversationID string
	Message        string
	Images         []string
}

type ChatResult struct {
	ConversationID uuid.UUID
	Response       string
	Mode           string
	Degraded       bool
	Emergency      bool
}

// ChatService runs conversation turns. Turns for the same conversation are
// serialized; the user message is stored before the model is called and the
// reply after it returns.
type ChatService struct {
	store     store.Store
	assistant Assistant
	locks     *turnLocks
	now       func() time.Time
}

func NewChatService(s store.Store, assistant Assistant) *ChatService {
	return &ChatService{
		store:     s,
		assistant: assistant,
		locks:     newTurnLocks(),
		now:       func() time.Time { return time.Now().UTC() },
	}
}

func (s *ChatService) Turn(ctx context.Context, userID string, req ChatRequest) (*ChatResult, error) {
	rawID := strings.TrimSpace(req.ConversationID)
	if rawID == "" {
		return nil, newValidationError("conversationId", "Conversation ID is required")
	}
	if !validation.ValidateUUID(rawID) {
		return nil, newValidationError("conversationId", "Conversation ID must be a valid UUID")
	}
	convID, err := uuid.Parse(rawID)
	if err != nil {
		return nil, newValidationError("conversationId", "Conversation ID must be a valid UUID")
	}

	message := validation.SanitizeInput(req.Message)
	images := inlineChatImages(req.Images)

	release, err := s.locks.Acquire(ctx, convID)
	if err != nil {
		return nil, err
	}
	defer release()

	conv, err := loadOwnedConversation(ctx, s.store, userID, convID)
	if err != nil {
		return nil, err
	}

	count, err := s.store.CountMessages(ctx, convID)
	if err != nil {
		return nil, fmt.Errorf("count messages: %w", err)
	}

	switch DecideTurn(count, message, len(images) > 0) {
	case TurnInitialAssessment:
		return s.initialAssessment(ctx, conv)
	case TurnOrdinary:
		return s.reply(ctx, conv, message, images)
	default:
		return nil, ErrMessageRequired
	}
}

func (s *ChatService) initialAssessment(ctx context.Context, conv *models.Conversation) (*ChatResult, error) {
	reply, err := s.assistant.InitialAssessment(ctx, conv.MedicalForm)
	if err != nil {
		return nil, err
	}
	if err := s.finish(ctx, conv.ID, reply); err != nil {
		return nil, err
	}
	slog.Info("initial assessment generated", "conversation_id", conv.ID.String(), "degraded", reply.Degraded)
	return &ChatResult{ConversationID: conv.ID, Response: reply.Text, Mode: ModeInitialAssessment, Degraded: reply.Degraded}, nil
}

func (s *ChatService) reply(ctx context.Context, conv *models.Conversation, message string, images models.ImageList) (*ChatResult, error) {
	recent, err := s.store.RecentMessages(ctx, conv.ID, HistoryWindow)
	if err != nil {
		return nil, fmt.Errorf("load history: %w", err)
	}

	userMsg := &models.Message{
		ConversationID: conv.ID,
		Role:           models.RoleUser,
		Content:        message,
		Images:         images,
		CreatedAt:      s.now(),
	}
	if err := s.store.AppendMessage(ctx, userMsg); err != nil {
		return nil, fmt.Errorf("save user message: %w", err)
	}

	emergency := medical.DetectEmergency(message)
	if emergency {
		slog.Warn("possible emergency described in chat message", "conversation_id", conv.ID.String(), "operation", "chat.turn")
	}

	reply, err := s.assistant.Respond(ctx, ai.Request{
		Message: message,
		Form:    conv.MedicalForm,
		Images:  models.DataURLs(images),
		History: lo.Map(recent, func(m models.Message, _ int) ai.HistoryMessage {
			return ai.HistoryMessage{Role: m.Role, Content: m.Content, Images: models.DataURLs(m.Images)}
		}),
	})
	if err != nil {
		slog.Info("chat turn cancelled before reply", "conversation_id", conv.ID.String(), "error", err)
		return nil, err
	}
	if err := s.finish(ctx, conv.ID, reply); err != nil {
		return nil, err
	}
	return &ChatResult{ConversationID: conv.ID, Response: reply.Text, Mode: ModeReply, Degraded: reply.Degraded, Emergency: emergency}, nil
}

// finish stores the assistant reply and bumps the conversation's updatedAt.
func (s *ChatService) finish(ctx context.Context, convID uuid.UUID, reply ai.Reply) error {
	now := s.now()
	msg := &models.Message{
		ConversationID: convID,
		Role:           models.RoleAssistant,
		Content:        reply.Text,
		CreatedAt:      now,
	}
	if err := s.store.AppendMessage(ctx, msg); err != nil {
		return fmt.Errorf("save assistant message: %w", err)
	}
	if err := s.store.TouchConversation(ctx, convID, now); err != nil {
		return fmt.Errorf("touch conversation: %w", err)
	}
	return nil
}

// inlineChatImages turns the request's data URLs into stored blobs, dropping
// anything that is not an allowed inline image.
func inlineChatImages(urls []string) models.ImageList {
	images := make(models.ImageList, 0, len(urls))
	for i, u := range urls {
		part, ok := ai.ParseDataURL(u)
		if !ok || !validation.IsAllowedImageType(part.MimeType) {
			continue
		}
		images = append(images, models.ImageBlob{
			Name: fmt.Sprintf("image-%d", i+1),
			Data: u,
			Size: int64(base64.StdEncoding.DecodedLen(len(part.Data))),
			Type: part.MimeType,
		})
	}
	return images
}
