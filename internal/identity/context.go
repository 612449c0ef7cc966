package identity

import (
	"errors"
	"strings"

	"github.com/ahmetcoskunkizilkaya/medassist-backend/internal/validation"
	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"
)

var ErrNoIdentity = errors.New("no authenticated user")

// Profile holds the claims used when a user row is created lazily.
type Profile struct {
	Email     string
	FirstName string
	LastName  string
}

func claims(c *fiber.Ctx) (jwt.MapClaims, error) {
	token, ok := c.Locals("user").(*jwt.Token)
	if !ok || token == nil {
		return nil, ErrNoIdentity
	}
	mc, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return nil, ErrNoIdentity
	}
	return mc, nil
}

// GetUserID returns the verified token's subject.
func GetUserID(c *fiber.Ctx) (string, error) {
	mc, err := claims(c)
	if err != nil {
		return "", err
	}
	sub, err := mc.GetSubject()
	if err != nil || !validation.ValidateUserID(sub) {
		return "", ErrNoIdentity
	}
	return sub, nil
}

// GetProfile reads optional profile claims, accepting both the snake_case and
// OpenID Connect names. A malformed email claim is dropped.
func GetProfile(c *fiber.Ctx) Profile {
	mc, err := claims(c)
	if err != nil {
		return Profile{}
	}
	email := firstClaim(mc, "email")
	if !validation.ValidateEmail(email) {
		email = ""
	}
	return Profile{
		Email:     email,
		FirstName: firstClaim(mc, "first_name", "given_name"),
		LastName:  firstClaim(mc, "last_name", "family_name"),
	}
}

func firstClaim(mc jwt.MapClaims, keys ...string) string {
	for _, k := range keys {
		if v, ok := mc[k].(string); ok && strings.TrimSpace(v) != "" {
			return strings.TrimSpace(v)
		}
	}
	return ""
}
