package handlers

import (
	"Vaulted/internal/models"
	"Vaulted/internal/services"
	"net/http"

	"github.com/gofiber/fiber/v2"
)

// HeaderFolderPassword carries the plaintext password for a protected
// folder on read requests.
const HeaderFolderPassword = "x-folder-password"

// HeaderRecoveryToken carries a recovery token as a password substitute.
const HeaderRecoveryToken = "x-recovery-token"

func credentialFromHeaders(c *fiber.Ctx) services.Credential {
	return services.Credential{
		Password:      c.Get(HeaderFolderPassword),
		RecoveryToken: c.Get(HeaderRecoveryToken),
	}
}

// requireFolderAccess runs the guard and, when access is denied, writes the
// 403 response. It returns true when the caller may proceed.
func requireFolderAccess(c *fiber.Ctx, guard services.GuardService, folder *models.Node, cred services.Credential) bool {
	switch guard.Authorize(folder, cred) {
	case services.DecisionGranted:
		return true
	case services.DecisionCredentialRequired:
		_ = c.Status(http.StatusForbidden).JSON(map[string]interface{}{"error": "Password required"})
		return false
	default:
		_ = c.Status(http.StatusForbidden).JSON(map[string]interface{}{"error": "Invalid password"})
		return false
	}
}
