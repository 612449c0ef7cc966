package handlers

import (
	"github.com/ahmetcoskunkizilkaya/medassist-backend/internal/dto"
	"github.com/ahmetcoskunkizilkaya/medassist-backend/internal/identity"
	"github.com/ahmetcoskunkizilkaya/medassist-backend/internal/services"
	"github.com/gofiber/fiber/v2"
)

type ConversationHandler struct {
	conversations *services.ConversationService
}

func NewConversationHandler(conversations *services.ConversationService) *ConversationHandler {
	return &ConversationHandler{conversations: conversations}
}

func (h *ConversationHandler) Create(c *fiber.Ctx) error {
	userID, err := identity.GetUserID(c)
	if err != nil {
		return unauthorized(c)
	}

	var req dto.CreateConversationRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "Invalid request body")
	}

	conv, err := h.conversations.Create(c.UserContext(), userID, req.FormID)
	if err != nil {
		return respondError(c, "conversations.create", err, "form_id", req.FormID)
	}

	return c.Status(fiber.StatusCreated).JSON(dto.CreateConversationResponse{
		Success:        true,
		ConversationID: conv.ID,
		Message:        "Conversation created successfully",
	})
}

func (h *ConversationHandler) List(c *fiber.Ctx) error {
	userID, err := identity.GetUserID(c)
	if err != nil {
		return unauthorized(c)
	}

	convs, err := h.conversations.List(c.UserContext(), userID)
	if err != nil {
		return respondError(c, "conversations.list", err)
	}
	return c.JSON(dto.ConversationListResponse{Conversations: convs})
}

func (h *ConversationHandler) Get(c *fiber.Ctx) error {
	userID, err := identity.GetUserID(c)
	if err != nil {
		return unauthorized(c)
	}

	id := c.Params("id")
	conv, messages, err := h.conversations.Get(c.UserContext(), userID, id)
	if err != nil {
		return respondError(c, "conversations.get", err, "conversation_id", id)
	}
	return c.JSON(dto.ConversationDetailResponse{Conversation: conv, Messages: messages})
}
