package cmd

import (
	"Vaulted/internal/handlers"
	"Vaulted/internal/services"
)

type Server struct {
	TokenService    services.TokenService
	GuardService    services.GuardService
	NodeService     services.NodeService
	FileService     services.FileService
	FolderService   services.FolderService
	WalkerService   services.WalkerService
	ArchiveService  services.ArchiveService
	RecoveryService services.RecoveryService
	LogService      services.LogService
	JanitorService  *services.Janitor
	AuthHandler     *handlers.AuthHandler
	FileHandler     *handlers.FileHandler
	FolderHandler   *handlers.FolderHandler
	ExportHandler   *handlers.ExportHandler
	RecoveryHandler *handlers.RecoveryHandler
}

func NewServer(
	tokenService services.TokenService,
	guardService services.GuardService,
	nodeService services.NodeService,
	fileService services.FileService,
	folderService services.FolderService,
	walkerService services.WalkerService,
	archiveService services.ArchiveService,
	recoveryService services.RecoveryService,
	logService services.LogService,
	janitorService *services.Janitor,
	authHandler *handlers.AuthHandler,
	fileHandler *handlers.FileHandler,
	folderHandler *handlers.FolderHandler,
	exportHandler *handlers.ExportHandler,
	recoveryHandler *handlers.RecoveryHandler,
) *Server {
	return &Server{
		TokenService:    tokenService,
		GuardService:    guardService,
		NodeService:     nodeService,
		FileService:     fileService,
		FolderService:   folderService,
		WalkerService:   walkerService,
		ArchiveService:  archiveService,
		RecoveryService: recoveryService,
		LogService:      logService,
		JanitorService:  janitorService,
		AuthHandler:     authHandler,
		FileHandler:     fileHandler,
		FolderHandler:   folderHandler,
		ExportHandler:   exportHandler,
		RecoveryHandler: recoveryHandler,
	}
}
