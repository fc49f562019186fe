package routers

import (
	"Vaulted/cmd"
	"Vaulted/internal/middleware"
	"github.com/gofiber/fiber/v2"
)

// SetupRoutes registers the login route first so it stays public, then the
// session middleware, then everything else.
func SetupRoutes(app *fiber.App, server *cmd.Server) {
	SetupAuthRouter(app, server)
	app.Use(middleware.NewSessionAuth(server.TokenService))
	SetupRecoveryRouter(app, server)
	SetupFileRouter(app, server)
	SetupFolderRouter(app, server)
	SetupExportRouter(app, server)
	SetupJanitorRouter(app, server)
}
