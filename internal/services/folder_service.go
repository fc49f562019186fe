package services

import (
	"Vaulted/internal/models"
)

type FolderService interface {
	CreateFolder(name string, parentID *uint, password string, emoji *string, createdBy string) (*models.Node, error)
	UpdateFolder(folder *models.Node, name *string, emoji *string, password *string) error
}

type folderServiceImpl struct {
	nodeService  NodeService
	guardService GuardService
}

func NewFolderService(nodeService NodeService, guardService GuardService) FolderService {
	return &folderServiceImpl{nodeService: nodeService, guardService: guardService}
}

func (s *folderServiceImpl) CreateFolder(name string, parentID *uint, password string, emoji *string, createdBy string) (*models.Node, error) {
	existing, err := s.nodeService.FindFolderByNameAndParent(name, parentID)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, ErrNameConflict
	}

	var passwordHash *string
	if password != "" {
		hash, err := s.guardService.HashPassword(password)
		if err != nil {
			return nil, err
		}
		passwordHash = &hash
	}

	folder := &models.Node{
		ParentID:     parentID,
		Name:         name,
		IsFolder:     true,
		StorageKey:   FolderStorageKey(),
		Checksum:     "folder",
		MimeType:     "application/x-directory",
		UploadedBy:   createdBy,
		PasswordHash: passwordHash,
		Emoji:        emoji,
	}
	if err := s.nodeService.InsertNode(folder); err != nil {
		return nil, err
	}
	return folder, nil
}

// UpdateFolder applies the provided fields. A nil pointer leaves the field
// untouched; an empty password string removes protection.
func (s *folderServiceImpl) UpdateFolder(folder *models.Node, name *string, emoji *string, password *string) error {
	if name != nil && *name != "" && *name != folder.Name {
		existing, err := s.nodeService.FindFolderByNameAndParent(*name, folder.ParentID)
		if err != nil {
			return err
		}
		if existing != nil && existing.ID != folder.ID {
			return ErrNameConflict
		}
		folder.Name = *name
	}

	if emoji != nil {
		folder.Emoji = emoji
	}

	if password != nil {
		if *password == "" {
			folder.PasswordHash = nil
		} else {
			hash, err := s.guardService.HashPassword(*password)
			if err != nil {
				return err
			}
			folder.PasswordHash = &hash
		}
	}

	return s.nodeService.UpdateNode(folder)
}
