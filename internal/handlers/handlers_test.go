package handlers

import (
	"Vaulted/internal/config"
	"Vaulted/internal/models"
	"Vaulted/internal/repository"
	"Vaulted/internal/services"
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

// memoryStorage is an in-memory stand-in for the object store.
type memoryStorage struct {
	blobs map[string]string
}

func (m *memoryStorage) Put(ctx context.Context, body io.Reader, key string, contentType string) error {
	data, err := io.ReadAll(body)
	if err != nil {
		return err
	}
	m.blobs[key] = string(data)
	return nil
}

func (m *memoryStorage) GetStream(ctx context.Context, key string) (io.ReadCloser, error) {
	content, ok := m.blobs[key]
	if !ok {
		return nil, errors.New("object missing")
	}
	return io.NopCloser(strings.NewReader(content)), nil
}

func (m *memoryStorage) Delete(ctx context.Context, key string) error {
	delete(m.blobs, key)
	return nil
}

func (m *memoryStorage) PublicURL(key string) string {
	return "https://cdn.test/" + key
}

type silentMailer struct{}

func (silentMailer) Configured() bool                { return false }
func (silentMailer) Send(subject, body string) error { return nil }

type testEnv struct {
	app           *fiber.App
	cfg           *config.Configuration
	nodeService   services.NodeService
	folderService services.FolderService
	tokenService  services.TokenService
	storage       *memoryStorage
}

func newTestEnv(t *testing.T) *testEnv {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	assert.NoError(t, err)
	assert.NoError(t, db.AutoMigrate(&models.Node{}))

	cfg := &config.Configuration{}
	cfg.Auth = config.AuthConfig{Username: "admin", Password: "secret", JwtSecret: "test-secret"}

	objectStorage := &memoryStorage{blobs: map[string]string{}}
	logService := services.NewLogService(cfg)
	tokenService := services.NewTokenService(cfg)
	guardService := services.NewGuardService(tokenService)
	nodeService := services.NewNodeService(repository.NewNodeRepository(db))
	fileService := services.NewFileService(nodeService, objectStorage, logService, cfg)
	folderService := services.NewFolderService(nodeService, guardService)
	walkerService := services.NewWalkerService(repository.NewNodeRepository(db))
	archiveService := services.NewArchiveService(objectStorage, logService)
	recoveryService := services.NewRecoveryService(nodeService, tokenService, silentMailer{}, logService)

	authHandler := NewAuthHandler(tokenService, cfg)
	fileHandler := NewFileHandler(fileService, nodeService, guardService)
	folderHandler := NewFolderHandler(folderService, nodeService, guardService)
	exportHandler := NewExportHandler(walkerService, archiveService, nodeService, guardService, logService, cfg)
	recoveryHandler := NewRecoveryHandler(recoveryService)

	app := fiber.New()
	app.Post("/auth/login", authHandler.Login)
	app.Post("/auth/logout", authHandler.Logout)
	app.Post("/auth/otp/send", recoveryHandler.SendOtp)
	app.Post("/auth/otp/verify", recoveryHandler.VerifyOtp)
	app.Get("/files", fileHandler.ListFiles)
	app.Post("/files/upload", fileHandler.UploadFile)
	app.Get("/files/:id/download", fileHandler.DownloadFile)
	app.Delete("/files/:id", fileHandler.DeleteFile)
	app.Post("/folders", folderHandler.CreateFolder)
	app.Put("/folders/:id", folderHandler.UpdateFolder)
	app.Post("/export/zip", exportHandler.ZipExport)

	return &testEnv{
		app:           app,
		cfg:           cfg,
		nodeService:   nodeService,
		folderService: folderService,
		tokenService:  tokenService,
		storage:       objectStorage,
	}
}

func jsonRequest(method, target string, payload interface{}) *http.Request {
	var body io.Reader
	if payload != nil {
		data, _ := json.Marshal(payload)
		body = bytes.NewReader(data)
	}
	req := httptest.NewRequest(method, target, body)
	req.Header.Set(fiber.HeaderContentType, fiber.MIMEApplicationJSON)
	return req
}

func decodeBody(t *testing.T, resp *http.Response) map[string]interface{} {
	var parsed map[string]interface{}
	assert.NoError(t, json.NewDecoder(resp.Body).Decode(&parsed))
	return parsed
}

func uploadRequest(t *testing.T, name, content, parentID string) *http.Request {
	var body bytes.Buffer
	writer := multipart.NewWriter(&body)
	part, err := writer.CreateFormFile("file", name)
	assert.NoError(t, err)
	_, err = part.Write([]byte(content))
	assert.NoError(t, err)
	if parentID != "" {
		assert.NoError(t, writer.WriteField("parentId", parentID))
	}
	assert.NoError(t, writer.Close())

	req := httptest.NewRequest(http.MethodPost, "/files/upload", &body)
	req.Header.Set(fiber.HeaderContentType, writer.FormDataContentType())
	return req
}

func (e *testEnv) mustCreateFolder(t *testing.T, name string, parentID *uint, password string) *models.Node {
	folder, err := e.folderService.CreateFolder(name, parentID, password, nil, "admin")
	assert.NoError(t, err)
	return folder
}

func (e *testEnv) mustCreateFile(t *testing.T, name, storageKey, content string, parentID *uint) *models.Node {
	file := &models.Node{
		Name:       name,
		StorageKey: storageKey,
		Checksum:   storageKey,
		Size:       int64(len(content)),
		ParentID:   parentID,
	}
	assert.NoError(t, e.nodeService.InsertNode(file))
	e.storage.blobs[storageKey] = content
	return file
}
