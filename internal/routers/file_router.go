package routers

import (
	"Vaulted/cmd"
	"github.com/gofiber/fiber/v2"
)

func SetupFileRouter(app *fiber.App, server *cmd.Server) {
	fileHandler := server.FileHandler
	app.Get("/files", fileHandler.ListFiles)
	app.Post("/files/upload", fileHandler.UploadFile)
	app.Get("/files/:id/download", fileHandler.DownloadFile)
	app.Delete("/files/:id", fileHandler.DeleteFile)
}
