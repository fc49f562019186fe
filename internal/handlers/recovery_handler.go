package handlers

import (
	"Vaulted/internal/services"
	"errors"
	"net/http"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/gofiber/fiber/v2"
)

type RecoveryHandler struct {
	recoveryService services.RecoveryService
}

func NewRecoveryHandler(recoveryService services.RecoveryService) *RecoveryHandler {
	return &RecoveryHandler{recoveryService: recoveryService}
}

type otpSendRequest struct {
	FolderID uint `json:"folderId"`
}

func (r otpSendRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.FolderID, validation.Required),
	)
}

func (h *RecoveryHandler) SendOtp(c *fiber.Ctx) error {
	var req otpSendRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(http.StatusBadRequest).JSON(map[string]interface{}{"error": "invalid input"})
	}
	if err := req.Validate(); err != nil {
		return c.Status(http.StatusBadRequest).JSON(map[string]interface{}{"error": "Folder ID required"})
	}

	if err := h.recoveryService.IssueOtp(req.FolderID); err != nil {
		if errors.Is(err, services.ErrFolderNotFound) {
			return c.Status(http.StatusNotFound).JSON(map[string]interface{}{"error": "Folder not found"})
		}
		return c.Status(http.StatusInternalServerError).JSON(map[string]interface{}{"error": "Failed to send email"})
	}

	return c.JSON(map[string]interface{}{"success": true, "message": "OTP sent"})
}

type otpVerifyRequest struct {
	FolderID uint   `json:"folderId"`
	Otp      string `json:"otp"`
}

func (r otpVerifyRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.FolderID, validation.Required),
		validation.Field(&r.Otp, validation.Required),
	)
}

func (h *RecoveryHandler) VerifyOtp(c *fiber.Ctx) error {
	var req otpVerifyRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(http.StatusBadRequest).JSON(map[string]interface{}{"error": "invalid input"})
	}
	if err := req.Validate(); err != nil {
		return c.Status(http.StatusBadRequest).JSON(map[string]interface{}{"error": "Missing fields"})
	}

	recoveryToken, err := h.recoveryService.VerifyOtp(req.FolderID, req.Otp)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrFolderNotFound):
			return c.Status(http.StatusNotFound).JSON(map[string]interface{}{"error": "Folder not found"})
		case errors.Is(err, services.ErrOtpExpired):
			return c.Status(http.StatusBadRequest).JSON(map[string]interface{}{"error": "OTP expired"})
		case errors.Is(err, services.ErrOtpInvalid):
			return c.Status(http.StatusBadRequest).JSON(map[string]interface{}{"error": "Invalid OTP"})
		default:
			return c.Status(http.StatusInternalServerError).JSON(map[string]interface{}{"error": "Internal error"})
		}
	}

	return c.JSON(map[string]interface{}{"success": true, "recoveryToken": recoveryToken})
}
