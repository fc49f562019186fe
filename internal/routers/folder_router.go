package routers

import (
	"Vaulted/cmd"
	"github.com/gofiber/fiber/v2"
)

func SetupFolderRouter(app *fiber.App, server *cmd.Server) {
	folderHandler := server.FolderHandler
	app.Post("/folders", folderHandler.CreateFolder)
	app.Put("/folders/:id", folderHandler.UpdateFolder)
}
