package routers

import (
	"Vaulted/cmd"
	"github.com/gofiber/fiber/v2"
)

func SetupAuthRouter(app *fiber.App, server *cmd.Server) {
	authHandler := server.AuthHandler
	app.Post("/auth/login", authHandler.Login)
	app.Post("/auth/logout", authHandler.Logout)
}
