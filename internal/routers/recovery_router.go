package routers

import (
	"Vaulted/cmd"
	"github.com/gofiber/fiber/v2"
)

func SetupRecoveryRouter(app *fiber.App, server *cmd.Server) {
	recoveryHandler := server.RecoveryHandler
	app.Post("/auth/otp/send", recoveryHandler.SendOtp)
	app.Post("/auth/otp/verify", recoveryHandler.VerifyOtp)
}
