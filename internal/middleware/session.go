package middleware

import (
	"Vaulted/internal/services"
	"net/http"

	"github.com/gofiber/fiber/v2"
)

// SessionCookieName is the HTTP-only cookie carrying the admin session token.
const SessionCookieName = "auth_token"

// UsernameLocal is the fiber locals key the session middleware sets.
const UsernameLocal = "username"

// NewSessionAuth returns a middleware that rejects requests without a valid
// session cookie. Every route except login goes through it.
func NewSessionAuth(tokenService services.TokenService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		token := c.Cookies(SessionCookieName)
		if token == "" {
			return c.Status(http.StatusUnauthorized).JSON(fiber.Map{"error": "Unauthorized"})
		}
		username, err := tokenService.VerifySessionToken(token)
		if err != nil {
			return c.Status(http.StatusUnauthorized).JSON(fiber.Map{"error": "Unauthorized"})
		}
		c.Locals(UsernameLocal, username)
		return c.Next()
	}
}
