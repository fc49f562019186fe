package main

import (
	"Vaulted/internal/config"
	"Vaulted/internal/routers"
	"fmt"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"log"
)

func provideConfiguration() (*config.Configuration, error) {
	return config.LoadConfiguration("vaulted.yaml")
}

func main() {
	server, err := InitializeServer()
	if err != nil {
		log.Fatal(err)
	}
	server.JanitorService.StartCleanCycle()
	defer server.JanitorService.Stop()

	cfg, err := provideConfiguration()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	app := fiber.New(fiber.Config{
		BodyLimit:   cfg.Server.RequestConfig.SizeLimit * 1024 * 1024,
		Concurrency: cfg.Server.Concurrency * 1024,
		AppName:     "Vaulted",
	})

	app.Use(logger.New())
	routers.SetupRoutes(app, server)

	err = app.Listen(fmt.Sprintf(":%d", cfg.Server.Port))
	if err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}
