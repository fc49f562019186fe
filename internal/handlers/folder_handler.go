package handlers

import (
	"Vaulted/internal/mapper"
	"Vaulted/internal/middleware"
	"Vaulted/internal/services"
	"errors"
	"net/http"
	"strconv"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/gofiber/fiber/v2"
)

type FolderHandler struct {
	folderService services.FolderService
	nodeService   services.NodeService
	guardService  services.GuardService
}

func NewFolderHandler(
	folderService services.FolderService,
	nodeService services.NodeService,
	guardService services.GuardService,
) *FolderHandler {
	return &FolderHandler{
		folderService: folderService,
		nodeService:   nodeService,
		guardService:  guardService,
	}
}

type createFolderRequest struct {
	Name     string  `json:"name"`
	ParentID *uint   `json:"parentId"`
	Password string  `json:"password"`
	Emoji    *string `json:"emoji"`
}

func (r createFolderRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Name, validation.Required, validation.Length(1, 255)),
	)
}

func (h *FolderHandler) CreateFolder(c *fiber.Ctx) error {
	var req createFolderRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(http.StatusBadRequest).JSON(map[string]interface{}{"error": "invalid input"})
	}
	if err := req.Validate(); err != nil {
		return c.Status(http.StatusBadRequest).JSON(map[string]interface{}{"error": "Folder name is required"})
	}

	createdBy, _ := c.Locals(middleware.UsernameLocal).(string)

	folder, err := h.folderService.CreateFolder(req.Name, req.ParentID, req.Password, req.Emoji, createdBy)
	if err != nil {
		if errors.Is(err, services.ErrNameConflict) {
			return c.Status(http.StatusConflict).JSON(map[string]interface{}{"error": "Folder already exists"})
		}
		return c.Status(http.StatusInternalServerError).JSON(map[string]interface{}{"error": "Failed to create folder"})
	}

	return c.Status(http.StatusCreated).JSON(map[string]interface{}{
		"success": true,
		"folder":  mapper.ToNodeGetDTO(folder),
	})
}

type updateFolderRequest struct {
	Name            *string `json:"name"`
	Emoji           *string `json:"emoji"`
	Password        *string `json:"password"`
	CurrentPassword string  `json:"currentPassword"`
	RecoveryToken   string  `json:"recoveryToken"`
}

// UpdateFolder renames a folder, changes its emoji, or sets/changes/removes
// its password. Editing a protected folder requires the current password or
// a recovery token.
func (h *FolderHandler) UpdateFolder(c *fiber.Ctx) error {
	id, err := strconv.ParseUint(c.Params("id"), 10, 32)
	if err != nil {
		return c.Status(http.StatusBadRequest).JSON(map[string]interface{}{"error": "invalid folder ID"})
	}

	var req updateFolderRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(http.StatusBadRequest).JSON(map[string]interface{}{"error": "invalid input"})
	}

	folder, err := h.nodeService.GetNodeByID(uint(id))
	if err != nil {
		return c.Status(http.StatusInternalServerError).JSON(map[string]interface{}{"error": "Failed to update folder"})
	}
	if folder == nil || !folder.IsFolder {
		return c.Status(http.StatusNotFound).JSON(map[string]interface{}{"error": "Folder not found"})
	}

	cred := services.Credential{Password: req.CurrentPassword, RecoveryToken: req.RecoveryToken}
	if cred.Password == "" {
		cred.Password = c.Get(HeaderFolderPassword)
	}
	if !requireFolderAccess(c, h.guardService, folder, cred) {
		return nil
	}

	if err := h.folderService.UpdateFolder(folder, req.Name, req.Emoji, req.Password); err != nil {
		if errors.Is(err, services.ErrNameConflict) {
			return c.Status(http.StatusConflict).JSON(map[string]interface{}{"error": "Folder with this name already exists"})
		}
		return c.Status(http.StatusInternalServerError).JSON(map[string]interface{}{"error": "Failed to update folder"})
	}

	return c.JSON(map[string]interface{}{
		"success": true,
		"folder":  mapper.ToNodeGetDTO(folder),
	})
}
