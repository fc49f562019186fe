package services

import (
	"Vaulted/internal/config"
	"Vaulted/internal/models"
	"Vaulted/internal/storage"
	"bytes"
	"context"
	"crypto/md5"
	"encoding/hex"
	"fmt"
	"io"
	"mime/multipart"
	"regexp"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

type FileService interface {
	Upload(ctx context.Context, fileHeader *multipart.FileHeader, parentID *uint, uploadedBy string) (*models.Node, error)
	Delete(id uint) error
	DownloadURL(id uint) (string, error)
	DeleteNodeInStorage(ctx context.Context, node *models.Node) error
}

type fileServiceImpl struct {
	nodeService   NodeService
	objectStorage storage.ObjectStorage
	logService    LogService
	configuration config.Configuration
}

func NewFileService(
	nodeService NodeService,
	objectStorage storage.ObjectStorage,
	logService LogService,
	configuration *config.Configuration,
) FileService {
	return &fileServiceImpl{
		nodeService:   nodeService,
		objectStorage: objectStorage,
		logService:    logService,
		configuration: *configuration,
	}
}

func (s *fileServiceImpl) Upload(ctx context.Context, fileHeader *multipart.FileHeader, parentID *uint, uploadedBy string) (*models.Node, error) {
	src, err := fileHeader.Open()
	if err != nil {
		return nil, err
	}
	defer src.Close()

	// The body is buffered once so the checksum-based duplicate check can
	// run before any byte reaches object storage.
	var buf bytes.Buffer
	hasher := md5.New()
	if _, err := io.Copy(io.MultiWriter(&buf, hasher), src); err != nil {
		return nil, err
	}
	checksum := hex.EncodeToString(hasher.Sum(nil))

	existing, err := s.nodeService.FindByChecksum(checksum)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, &DuplicateError{Reason: "a file with identical content already exists", Existing: existing}
	}

	existing, err = s.nodeService.FindFileByNameSizeAndParent(fileHeader.Filename, fileHeader.Size, parentID)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, &DuplicateError{Reason: "a file with the same name and size already exists", Existing: existing}
	}

	mimeType := fileHeader.Header.Get("Content-Type")
	if mimeType == "" {
		mimeType = "application/octet-stream"
	}

	storageKey := GenerateStorageKey(fileHeader.Filename)
	if err := s.objectStorage.Put(ctx, bytes.NewReader(buf.Bytes()), storageKey, mimeType); err != nil {
		return nil, fmt.Errorf("failed to upload file to storage: %w", err)
	}

	newFile := &models.Node{
		ParentID:   parentID,
		Name:       fileHeader.Filename,
		IsFolder:   false,
		StorageKey: storageKey,
		Checksum:   checksum,
		Size:       fileHeader.Size,
		MimeType:   mimeType,
		UploadedBy: uploadedBy,
	}
	if err := s.nodeService.InsertNode(newFile); err != nil {
		return nil, fmt.Errorf("failed to create file record: %w", err)
	}
	return newFile, nil
}

// Delete soft-deletes the node; the janitor removes storage bytes and the
// row afterwards. Folders must be childless.
func (s *fileServiceImpl) Delete(id uint) error {
	node, err := s.nodeService.GetNodeByID(id)
	if err != nil {
		return err
	}
	if node == nil {
		return ErrFileNotFound
	}
	if node.IsFolder {
		count, err := s.nodeService.CountChildren(node.ID)
		if err != nil {
			return err
		}
		if count > 0 {
			return ErrFolderNotEmpty
		}
	}
	return s.nodeService.DeleteNode(id)
}

func (s *fileServiceImpl) DownloadURL(id uint) (string, error) {
	node, err := s.nodeService.GetNodeByID(id)
	if err != nil {
		return "", err
	}
	if node == nil || node.IsFolder {
		return "", ErrFileNotFound
	}
	return s.objectStorage.PublicURL(node.StorageKey), nil
}

// DeleteNodeInStorage removes a file's bytes from object storage. Folder
// nodes carry synthetic keys with nothing behind them, so they are skipped.
func (s *fileServiceImpl) DeleteNodeInStorage(ctx context.Context, node *models.Node) error {
	if node.IsFolder || node.StorageKey == "" {
		return nil
	}
	if err := s.objectStorage.Delete(ctx, node.StorageKey); err != nil {
		s.logService.Log.WithFields(logrus.Fields{
			"key":   node.StorageKey,
			"error": err.Error(),
		}).Error("failed to delete object from storage")
		return err
	}
	return nil
}

var unsafeFilenameChars = regexp.MustCompile(`[^a-zA-Z0-9._-]`)
var repeatedUnderscores = regexp.MustCompile(`_{2,}`)

func SanitizeFilename(filename string) string {
	base := filename
	if idx := strings.LastIndexAny(filename, `\/`); idx >= 0 {
		base = filename[idx+1:]
	}
	base = unsafeFilenameChars.ReplaceAllString(base, "_")
	base = repeatedUnderscores.ReplaceAllString(base, "_")
	if len(base) > 255 {
		base = base[:255]
	}
	return base
}

func GenerateStorageKey(filename string) string {
	return fmt.Sprintf("uploads/%d-%s-%s",
		time.Now().UnixMilli(),
		uuid.NewString()[:8],
		SanitizeFilename(filename),
	)
}

// FolderStorageKey returns the synthetic key folders carry to satisfy the
// store-level uniqueness constraint. It is never resolvable in storage.
func FolderStorageKey() string {
	return "folder_" + uuid.NewString()
}
