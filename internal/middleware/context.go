package middleware

import (
	"context"

	"github.com/gofiber/fiber/v2"
)

// ServerContext installs ctx as the user context of every request. fasthttp
// does not cancel per-request contexts when a client goes away, so handlers
// observe cancellation only through ctx.
func ServerContext(ctx context.Context) fiber.Handler {
	return func(c *fiber.Ctx) error {
		c.SetUserContext(ctx)
		return c.Next()
	}
}
