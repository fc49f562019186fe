package handlers

import (
	"Vaulted/internal/config"
	"Vaulted/internal/middleware"
	"Vaulted/internal/services"
	"net/http"
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/gofiber/fiber/v2"
)

type AuthHandler struct {
	tokenService  services.TokenService
	configuration *config.Configuration
}

func NewAuthHandler(tokenService services.TokenService, configuration *config.Configuration) *AuthHandler {
	return &AuthHandler{tokenService: tokenService, configuration: configuration}
}

type loginRequest struct {
	Username   string `json:"username"`
	Password   string `json:"password"`
	RememberMe bool   `json:"rememberMe"`
}

func (r loginRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Username, validation.Required),
		validation.Field(&r.Password, validation.Required),
	)
}

func (h *AuthHandler) Login(c *fiber.Ctx) error {
	var req loginRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(http.StatusBadRequest).JSON(map[string]interface{}{"error": "invalid input"})
	}
	if err := req.Validate(); err != nil {
		return c.Status(http.StatusBadRequest).JSON(map[string]interface{}{"error": "Username and password are required"})
	}

	auth := h.configuration.Auth
	if auth.Username == "" || auth.Password == "" ||
		req.Username != auth.Username || req.Password != auth.Password {
		return c.Status(http.StatusUnauthorized).JSON(map[string]interface{}{"error": "Invalid credentials"})
	}

	ttl := time.Hour
	if req.RememberMe {
		ttl = 24 * time.Hour
	}
	token, err := h.tokenService.CreateSessionToken(req.Username, ttl)
	if err != nil {
		return c.Status(http.StatusInternalServerError).JSON(map[string]interface{}{"error": "failed to create session"})
	}

	c.Cookie(&fiber.Cookie{
		Name:     middleware.SessionCookieName,
		Value:    token,
		HTTPOnly: true,
		SameSite: fiber.CookieSameSiteLaxMode,
		Expires:  time.Now().Add(ttl),
		Path:     "/",
	})
	return c.Status(http.StatusOK).JSON(map[string]interface{}{"success": true, "message": "Login successful"})
}

func (h *AuthHandler) Logout(c *fiber.Ctx) error {
	c.Cookie(&fiber.Cookie{
		Name:     middleware.SessionCookieName,
		Value:    "",
		HTTPOnly: true,
		Expires:  time.Now().Add(-time.Hour),
		Path:     "/",
	})
	return c.Status(http.StatusOK).JSON(map[string]interface{}{"success": true})
}
