//go:build wireinject
// +build wireinject

package main

import (
	"Vaulted/cmd"
	"Vaulted/database"
	"Vaulted/internal/handlers"
	"Vaulted/internal/mail"
	"Vaulted/internal/repository"
	"Vaulted/internal/services"
	"Vaulted/internal/storage"
	"github.com/google/wire"
)

func InitializeServer() (*cmd.Server, error) {
	wire.Build(
		cmd.NewServer,
		database.SetupDatabase,
		repository.NewNodeRepository,
		storage.NewBunnyStorage,
		mail.NewSmtpMailer,
		services.NewLogService,
		services.NewTokenService,
		services.NewGuardService,
		services.NewNodeService,
		services.NewFileService,
		services.NewFolderService,
		services.NewWalkerService,
		services.NewArchiveService,
		services.NewRecoveryService,
		services.NewJanitor,
		handlers.NewAuthHandler,
		handlers.NewFileHandler,
		handlers.NewFolderHandler,
		handlers.NewExportHandler,
		handlers.NewRecoveryHandler,
		provideConfiguration,
	)
	return nil, nil
}
