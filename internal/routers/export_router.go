package routers

import (
	"Vaulted/cmd"
	"github.com/gofiber/fiber/v2"
)

func SetupExportRouter(app *fiber.App, server *cmd.Server) {
	exportHandler := server.ExportHandler
	app.Post("/export/zip", exportHandler.ZipExport)
}
