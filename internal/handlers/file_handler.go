package handlers

import (
	"Vaulted/internal/mapper"
	"Vaulted/internal/middleware"
	"Vaulted/internal/services"
	"errors"
	"net/http"
	"strconv"

	"github.com/gofiber/fiber/v2"
)

type FileHandler struct {
	fileService  services.FileService
	nodeService  services.NodeService
	guardService services.GuardService
}

func NewFileHandler(
	fileService services.FileService,
	nodeService services.NodeService,
	guardService services.GuardService,
) *FileHandler {
	return &FileHandler{
		fileService:  fileService,
		nodeService:  nodeService,
		guardService: guardService,
	}
}

func (h *FileHandler) UploadFile(c *fiber.Ctx) error {
	fileHeader, err := c.FormFile("file")
	if err != nil {
		return c.Status(http.StatusBadRequest).JSON(map[string]interface{}{"error": "No file provided"})
	}

	var parentID *uint
	if raw := c.FormValue("parentId"); raw != "" {
		id, err := strconv.ParseUint(raw, 10, 32)
		if err != nil {
			return c.Status(http.StatusBadRequest).JSON(map[string]interface{}{"error": "invalid parentId"})
		}
		parent := uint(id)
		parentID = &parent
	}

	uploadedBy, _ := c.Locals(middleware.UsernameLocal).(string)

	node, err := h.fileService.Upload(c.Context(), fileHeader, parentID, uploadedBy)
	if err != nil {
		var dup *services.DuplicateError
		if errors.As(err, &dup) {
			return c.Status(http.StatusConflict).JSON(map[string]interface{}{
				"error":   "Duplicate file detected",
				"message": dup.Reason,
				"existingFile": map[string]interface{}{
					"id":   dup.Existing.ID,
					"name": dup.Existing.Name,
				},
			})
		}
		return c.Status(http.StatusInternalServerError).JSON(map[string]interface{}{"error": err.Error()})
	}

	return c.Status(http.StatusCreated).JSON(map[string]interface{}{
		"success": true,
		"message": "File uploaded successfully",
		"file":    mapper.ToNodeGetDTO(node),
	})
}

// ListFiles returns the children of a folder, or the root listing when no
// parentId is given. Protected folders require a credential header.
func (h *FileHandler) ListFiles(c *fiber.Ctx) error {
	var parentID *uint
	if raw := c.Query("parentId"); raw != "" {
		id, err := strconv.ParseUint(raw, 10, 32)
		if err != nil {
			return c.Status(http.StatusBadRequest).JSON(map[string]interface{}{"error": "invalid parentId"})
		}
		parent := uint(id)
		parentID = &parent

		folder, err := h.nodeService.GetNodeByID(parent)
		if err != nil {
			return c.Status(http.StatusInternalServerError).JSON(map[string]interface{}{"error": "Failed to fetch files"})
		}
		if folder == nil || !folder.IsFolder {
			return c.Status(http.StatusNotFound).JSON(map[string]interface{}{"error": "Folder not found"})
		}
		if !requireFolderAccess(c, h.guardService, folder, credentialFromHeaders(c)) {
			return nil
		}
	}

	nodes, err := h.nodeService.FindChildren(parentID)
	if err != nil {
		return c.Status(http.StatusInternalServerError).JSON(map[string]interface{}{"error": "Failed to fetch files"})
	}
	return c.JSON(map[string]interface{}{
		"success": true,
		"files":   mapper.ToNodeGetDTOs(nodes),
	})
}

func (h *FileHandler) DownloadFile(c *fiber.Ctx) error {
	id, err := strconv.ParseUint(c.Params("id"), 10, 32)
	if err != nil {
		return c.Status(http.StatusBadRequest).JSON(map[string]interface{}{"error": "invalid file ID"})
	}

	url, err := h.fileService.DownloadURL(uint(id))
	if err != nil {
		if errors.Is(err, services.ErrFileNotFound) {
			return c.Status(http.StatusNotFound).JSON(map[string]interface{}{"error": "File not found"})
		}
		return c.Status(http.StatusInternalServerError).JSON(map[string]interface{}{"error": "Failed to download file"})
	}
	return c.Redirect(url, http.StatusFound)
}

func (h *FileHandler) DeleteFile(c *fiber.Ctx) error {
	id, err := strconv.ParseUint(c.Params("id"), 10, 32)
	if err != nil {
		return c.Status(http.StatusBadRequest).JSON(map[string]interface{}{"error": "invalid file ID"})
	}

	if err := h.fileService.Delete(uint(id)); err != nil {
		switch {
		case errors.Is(err, services.ErrFileNotFound):
			return c.Status(http.StatusNotFound).JSON(map[string]interface{}{"error": "Item not found"})
		case errors.Is(err, services.ErrFolderNotEmpty):
			return c.Status(http.StatusBadRequest).JSON(map[string]interface{}{"error": "Cannot delete folder with contents. Please delete all files and subfolders first."})
		default:
			return c.Status(http.StatusInternalServerError).JSON(map[string]interface{}{"error": "Failed to delete item"})
		}
	}
	return c.JSON(map[string]interface{}{"success": true, "message": "Item deleted successfully"})
}
