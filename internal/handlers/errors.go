package handlers

import (
	"context"
	"errors"
	"log/slog"

	"github.com/ahmetcoskunkizilkaya/medassist-backend/internal/dto"
	"github.com/ahmetcoskunkizilkaya/medassist-backend/internal/identity"
	"github.com/ahmetcoskunkizilkaya/medassist-backend/internal/services"
	"github.com/ahmetcoskunkizilkaya/medassist-backend/internal/store"
	sentryfiber "github.com/getsentry/sentry-go/fiber"
	"github.com/gofiber/fiber/v2"
)

func badRequest(c *fiber.Ctx, message string) error {
	return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
		Error: true, Message: message,
	})
}

func unauthorized(c *fiber.Ctx) error {
	return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{
		Error: true, Message: "Unauthorized",
	})
}

// respondError maps service and store errors onto HTTP statuses. Anything
// unclassified is logged, reported to Sentry and hidden behind a generic 500.
func respondError(c *fiber.Ctx, op string, err error, attrs ...any) error {
	var verr *services.ValidationError
	switch {
	case errors.As(err, &verr):
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Error: true, Message: verr.Error(), Fields: verr.Fields,
		})
	case errors.Is(err, services.ErrMessageRequired):
		return badRequest(c, "Message is required")
	case errors.Is(err, services.ErrConversationNotFound):
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{
			Error: true, Message: "Conversation not found",
		})
	case errors.Is(err, services.ErrFormNotFound):
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{
			Error: true, Message: "Medical form not found",
		})
	case errors.Is(err, store.ErrUnavailable):
		slog.Warn("storage unavailable", append(logAttrs(c, op, err), attrs...)...)
		return c.Status(fiber.StatusServiceUnavailable).JSON(dto.ErrorResponse{
			Error: true, Message: "Service temporarily unavailable, please try again",
		})
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		slog.Info("request abandoned", append(logAttrs(c, op, err), attrs...)...)
		return c.Status(fiber.StatusRequestTimeout).JSON(dto.ErrorResponse{
			Error: true, Message: "Request cancelled",
		})
	}

	slog.Error("request failed", append(logAttrs(c, op, err), attrs...)...)
	if hub := sentryfiber.GetHubFromContext(c); hub != nil {
		hub.CaptureException(err)
	}
	return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{
		Error: true, Message: "Internal server error",
	})
}

func logAttrs(c *fiber.Ctx, op string, err error) []any {
	attrs := []any{"operation", op, "error", err.Error(), "method", c.Method(), "path", c.Path()}
	if rid, ok := c.Locals("requestid").(string); ok && rid != "" {
		attrs = append(attrs, "request_id", rid)
	}
	if uid, uerr := identity.GetUserID(c); uerr == nil {
		attrs = append(attrs, "user_id", uid)
	}
	return attrs
}
