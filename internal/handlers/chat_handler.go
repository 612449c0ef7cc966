package handlers

import (
	"github.com/ahmetcoskunkizilkaya/medassist-backend/internal/dto"
	"github.com/ahmetcoskunkizilkaya/medassist-backend/internal/identity"
	"github.com/ahmetcoskunkizilkaya/medassist-backend/internal/services"
	"github.com/gofiber/fiber/v2"
)

type ChatHandler struct {
	chat *services.ChatService
}

func NewChatHandler(chat *services.ChatService) *ChatHandler {
	return &ChatHandler{chat: chat}
}

func (h *ChatHandler) Send(c *fiber.Ctx) error {
	userID, err := identity.GetUserID(c)
	if err != nil {
		return unauthorized(c)
	}

	var req dto.ChatRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "Invalid request body")
	}

	res, err := h.chat.Turn(c.UserContext(), userID, services.ChatRequest{
		ConversationID: req.ConversationID,
		Message:        req.Message,
		Images:         req.Images,
	})
	if err != nil {
		return respondError(c, "chat.turn", err, "conversation_id", req.ConversationID)
	}

	return c.JSON(dto.ChatResponse{
		Success:        true,
		Response:       res.Response,
		ConversationID: res.ConversationID,
		Mode:           res.Mode,
		Degraded:       res.Degraded,
		Emergency:      res.Emergency,
	})
}
