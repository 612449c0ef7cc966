package routes

import (
	"time"

	"github.com/ahmetcoskunkizilkaya/medassist-backend/internal/config"
	"github.com/ahmetcoskunkizilkaya/medassist-backend/internal/handlers"
	"github.com/ahmetcoskunkizilkaya/medassist-backend/internal/middleware"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/limiter"
)

type Handlers struct {
	Health        *handlers.HealthHandler
	Forms         *handlers.FormHandler
	Conversations *handlers.ConversationHandler
	Chat          *handlers.ChatHandler
	Upload        *handlers.UploadHandler
}

func Setup(app *fiber.App, cfg *config.Config, h Handlers) {
	api := app.Group("/api")

	// General API rate limiter: 60 req/min per IP
	api.Use(perIPLimiter(60))

	// Health (no identity required)
	api.Get("/health", h.Health.Check)

	// Protected routes (JWT required) - middleware applied per route so
	// public routes stay reachable without a token
	auth := middleware.JWTProtected(cfg)

	api.Post("/forms", auth, h.Forms.Create)
	api.Get("/forms", auth, h.Forms.List)

	api.Post("/conversations", auth, h.Conversations.Create)
	api.Get("/conversations", auth, h.Conversations.List)
	api.Get("/conversations/:id", auth, h.Conversations.Get)

	api.Get("/health-status", auth, h.Health.Status)

	// Model calls and uploads are expensive: 10 req/min per IP
	expensive := perIPLimiter(10)
	api.Post("/chat", expensive, auth, h.Chat.Send)
	api.Post("/upload", expensive, auth, h.Upload.Upload)
}

func perIPLimiter(limit int) fiber.Handler {
	return limiter.New(limiter.Config{
		Max:               limit,
		Expiration:        1 * time.Minute,
		LimiterMiddleware: limiter.SlidingWindow{},
		KeyGenerator:      func(c *fiber.Ctx) string { return c.IP() },
	})
}
