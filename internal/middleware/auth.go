package middleware

import (
	"github.com/ahmetcoskunkizilkaya/medassist-backend/internal/config"
	"github.com/ahmetcoskunkizilkaya/medassist-backend/internal/dto"
	"github.com/ahmetcoskunkizilkaya/medassist-backend/internal/identity"
	jwtware "github.com/gofiber/contrib/jwt"
	"github.com/gofiber/fiber/v2"
)

// JWTProtected verifies the identity provider's bearer token, either with the
// shared HS256 secret or against the provider's JWKS endpoint. Tokens without
// a usable subject are rejected as well.
func JWTProtected(cfg *config.Config) fiber.Handler {
	jwtCfg := jwtware.Config{
		ErrorHandler: unauthorized,
		SuccessHandler: func(c *fiber.Ctx) error {
			if _, err := identity.GetUserID(c); err != nil {
				return unauthorized(c, err)
			}
			return c.Next()
		},
	}
	if cfg.AuthJWKSURL != "" {
		jwtCfg.JWKSetURLs = []string{cfg.AuthJWKSURL}
	} else {
		jwtCfg.SigningKey = jwtware.SigningKey{JWTAlg: jwtware.HS256, Key: []byte(cfg.JWTSecret)}
	}
	return jwtware.New(jwtCfg)
}

func unauthorized(c *fiber.Ctx, _ error) error {
	return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{
		Error:   true,
		Message: "Unauthorized: invalid or expired token",
	})
}
