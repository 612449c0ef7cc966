package handlers

import (
	"context"
	"time"

	"github.com/ahmetcoskunkizilkaya/medassist-backend/internal/dto"
	"github.com/ahmetcoskunkizilkaya/medassist-backend/internal/identity"
	"github.com/ahmetcoskunkizilkaya/medassist-backend/internal/services"
	"github.com/gofiber/fiber/v2"
)

type HealthHandler struct {
	ping   func(ctx context.Context) error
	status *services.HealthStatusService
}

func NewHealthHandler(ping func(ctx context.Context) error, status *services.HealthStatusService) *HealthHandler {
	return &HealthHandler{ping: ping, status: status}
}

func (h *HealthHandler) Check(c *fiber.Ctx) error {
	ctx, cancel := context.WithTimeout(c.UserContext(), 2*time.Second)
	defer cancel()

	dbStatus := "ok"
	if err := h.ping(ctx); err != nil {
		dbStatus = "unhealthy: " + err.Error()
	}

	return c.JSON(dto.HealthResponse{
		Status:    "ok",
		Timestamp: time.Now().UTC().Format(time.RFC3339),
		DB:        dbStatus,
	})
}

// Status summarizes the caller's latest medical form.
func (h *HealthHandler) Status(c *fiber.Ctx) error {
	userID, err := identity.GetUserID(c)
	if err != nil {
		return unauthorized(c)
	}

	status, err := h.status.Get(c.UserContext(), userID)
	if err != nil {
		return respondError(c, "health_status.get", err)
	}
	return c.JSON(status)
}
