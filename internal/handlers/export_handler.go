package handlers

import (
	"Vaulted/internal/config"
	"Vaulted/internal/services"
	"bufio"
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/sirupsen/logrus"
	"github.com/valyala/fasthttp"
)

type ExportHandler struct {
	walkerService  services.WalkerService
	archiveService services.ArchiveService
	nodeService    services.NodeService
	guardService   services.GuardService
	logService     services.LogService
	configuration  *config.Configuration
}

func NewExportHandler(
	walkerService services.WalkerService,
	archiveService services.ArchiveService,
	nodeService services.NodeService,
	guardService services.GuardService,
	logService services.LogService,
	configuration *config.Configuration,
) *ExportHandler {
	return &ExportHandler{
		walkerService:  walkerService,
		archiveService: archiveService,
		nodeService:    nodeService,
		guardService:   guardService,
		logService:     logService,
		configuration:  configuration,
	}
}

type zipExportRequest struct {
	FileIDs  []uint `json:"fileIds"`
	FolderID *uint  `json:"folderId"`
}

// ZipExport streams a zip archive of either a whole folder tree or an
// explicit file selection. Response headers go out before any file content
// is fetched; the archive producer runs against the response stream.
func (h *ExportHandler) ZipExport(c *fiber.Ctx) error {
	var req zipExportRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(http.StatusBadRequest).JSON(map[string]interface{}{"error": "invalid input"})
	}
	if req.FolderID == nil && len(req.FileIDs) == 0 {
		return c.Status(http.StatusBadRequest).JSON(map[string]interface{}{"error": "No files or folder specified"})
	}

	var entries []services.ArchiveEntry
	var zipName string

	if req.FolderID != nil {
		folder, err := h.nodeService.GetNodeByID(*req.FolderID)
		if err != nil {
			return c.Status(http.StatusInternalServerError).JSON(map[string]interface{}{"error": "Failed to create zip"})
		}
		if folder == nil || !folder.IsFolder {
			return c.Status(http.StatusNotFound).JSON(map[string]interface{}{"error": "Folder not found"})
		}
		if !requireFolderAccess(c, h.guardService, folder, credentialFromHeaders(c)) {
			return nil
		}

		entries, err = h.walkerService.ListArchiveEntries(folder.ID)
		if err != nil {
			return c.Status(http.StatusInternalServerError).JSON(map[string]interface{}{"error": "Failed to create zip"})
		}
		if len(entries) == 0 {
			return c.Status(http.StatusBadRequest).JSON(map[string]interface{}{"error": "Folder is empty"})
		}
		zipName = folder.Name + ".zip"
	} else {
		seen := make(map[string]int)
		var firstName string
		for _, id := range req.FileIDs {
			node, err := h.nodeService.GetNodeByID(id)
			if err != nil {
				return c.Status(http.StatusInternalServerError).JSON(map[string]interface{}{"error": "Failed to create zip"})
			}
			if node == nil || node.IsFolder {
				continue
			}
			if firstName == "" {
				firstName = node.Name
			}
			entries = append(entries, services.ArchiveEntry{
				StorageKey:  node.StorageKey,
				ArchivePath: services.UniqueArchivePath(seen, node.Name),
			})
		}
		if len(entries) == 0 {
			return c.Status(http.StatusNotFound).JSON(map[string]interface{}{"error": "No valid files found"})
		}
		if len(entries) == 1 {
			zipName = firstName + ".zip"
		} else {
			zipName = fmt.Sprintf("files_%d.zip", time.Now().UnixMilli())
		}
	}

	if max := h.configuration.Export.MaxEntries; max > 0 && len(entries) > max {
		return c.Status(http.StatusBadRequest).JSON(map[string]interface{}{"error": "Too many files to export"})
	}

	c.Set(fiber.HeaderContentType, "application/zip")
	c.Set(fiber.HeaderContentDisposition, fmt.Sprintf("attachment; filename=%q", zipName))

	c.Context().SetBodyStreamWriter(fasthttp.StreamWriter(func(w *bufio.Writer) {
		if err := h.archiveService.Stream(context.Background(), entries, w); err != nil {
			// A non-nil error means the encoder or the connection broke;
			// leaving the stream unflushed hands the client a truncated
			// transfer instead of a silently incomplete archive.
			h.logService.Log.WithFields(logrus.Fields{
				"archive": zipName,
				"error":   err.Error(),
			}).Error("archive stream aborted")
			return
		}
		if err := w.Flush(); err != nil {
			h.logService.Log.WithFields(logrus.Fields{
				"archive": zipName,
				"error":   err.Error(),
			}).Warn("failed to flush archive stream")
		}
	}))
	return nil
}
