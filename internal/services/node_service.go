package services

import (
	"Vaulted/internal/models"
	"Vaulted/internal/repository"
	"time"
)

type NodeService interface {
	GetNodeByID(id uint) (*models.Node, error)
	FindChildren(parentID *uint) ([]models.Node, error)
	FindFolderByNameAndParent(name string, parentID *uint) (*models.Node, error)
	FindFileByNameSizeAndParent(name string, size int64, parentID *uint) (*models.Node, error)
	FindByChecksum(checksum string) (*models.Node, error)
	CountChildren(parentID uint) (int64, error)
	InsertNode(node *models.Node) error
	UpdateNode(node *models.Node) error
	DeleteNode(id uint) error
	FindFoldersWithExpiredOtp(now time.Time) ([]models.Node, error)
	FindDeleted() ([]models.Node, error)
	HardDelete(node *models.Node) error
}

type nodeServiceImpl struct {
	nodeRepo repository.NodeRepository
}

func NewNodeService(nodeRepository repository.NodeRepository) NodeService {
	return &nodeServiceImpl{nodeRepo: nodeRepository}
}

func (s *nodeServiceImpl) GetNodeByID(id uint) (*models.Node, error) {
	return s.nodeRepo.FindNodeByID(id)
}

func (s *nodeServiceImpl) FindChildren(parentID *uint) ([]models.Node, error) {
	return s.nodeRepo.FindChildren(parentID)
}

func (s *nodeServiceImpl) FindFolderByNameAndParent(name string, parentID *uint) (*models.Node, error) {
	return s.nodeRepo.FindFolderByNameAndParent(name, parentID)
}

func (s *nodeServiceImpl) FindFileByNameSizeAndParent(name string, size int64, parentID *uint) (*models.Node, error) {
	return s.nodeRepo.FindFileByNameSizeAndParent(name, size, parentID)
}

func (s *nodeServiceImpl) FindByChecksum(checksum string) (*models.Node, error) {
	return s.nodeRepo.FindByChecksum(checksum)
}

func (s *nodeServiceImpl) CountChildren(parentID uint) (int64, error) {
	return s.nodeRepo.CountChildren(parentID)
}

func (s *nodeServiceImpl) InsertNode(node *models.Node) error {
	return s.nodeRepo.Create(node)
}

func (s *nodeServiceImpl) UpdateNode(node *models.Node) error {
	return s.nodeRepo.Update(node)
}

func (s *nodeServiceImpl) DeleteNode(id uint) error {
	return s.nodeRepo.Delete(id)
}

func (s *nodeServiceImpl) FindFoldersWithExpiredOtp(now time.Time) ([]models.Node, error) {
	return s.nodeRepo.FindFoldersWithExpiredOtp(now)
}

func (s *nodeServiceImpl) FindDeleted() ([]models.Node, error) {
	return s.nodeRepo.FindDeleted()
}

func (s *nodeServiceImpl) HardDelete(node *models.Node) error {
	return s.nodeRepo.HardDelete(node)
}
