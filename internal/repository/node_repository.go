package repository

import (
	"Vaulted/internal/models"
	"errors"
	"time"

	"gorm.io/gorm"
)

type NodeRepository interface {
	GenericRepository[models.Node]
	FindNodeByID(id uint) (*models.Node, error)
	FindChildren(parentID *uint) ([]models.Node, error)
	FindFolderByNameAndParent(name string, parentID *uint) (*models.Node, error)
	FindFileByNameSizeAndParent(name string, size int64, parentID *uint) (*models.Node, error)
	FindByChecksum(checksum string) (*models.Node, error)
	CountChildren(parentID uint) (int64, error)
	FindFoldersWithExpiredOtp(now time.Time) ([]models.Node, error)
	FindDeleted() ([]models.Node, error)
	HardDelete(node *models.Node) error
}

type NodeRepositoryImpl[T models.Node] struct {
	GenericRepository[models.Node]
	db *gorm.DB
}

func NewNodeRepository(db *gorm.DB) NodeRepository {
	return &NodeRepositoryImpl[models.Node]{
		GenericRepository: NewGenericRepository[models.Node](db),
		db:                db,
	}
}

// FindNodeByID is the lookup used by handlers: a missing row comes back as
// (nil, nil) rather than gorm.ErrRecordNotFound.
func (r *NodeRepositoryImpl[T]) FindNodeByID(id uint) (*models.Node, error) {
	var node models.Node
	err := r.db.First(&node, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &node, nil
}

func (r *NodeRepositoryImpl[T]) FindChildren(parentID *uint) ([]models.Node, error) {
	var nodes []models.Node
	query := r.db.Order("is_folder DESC, name ASC")
	if parentID == nil {
		query = query.Where("parent_id IS NULL")
	} else {
		query = query.Where("parent_id = ?", *parentID)
	}
	if err := query.Find(&nodes).Error; err != nil {
		return nil, err
	}
	return nodes, nil
}

func (r *NodeRepositoryImpl[T]) FindFolderByNameAndParent(name string, parentID *uint) (*models.Node, error) {
	var folder models.Node
	query := r.db.Where("name = ? AND is_folder = ?", name, true)
	if parentID == nil {
		query = query.Where("parent_id IS NULL")
	} else {
		query = query.Where("parent_id = ?", *parentID)
	}
	err := query.First(&folder).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &folder, nil
}

func (r *NodeRepositoryImpl[T]) FindFileByNameSizeAndParent(name string, size int64, parentID *uint) (*models.Node, error) {
	var file models.Node
	query := r.db.Where("name = ? AND size = ? AND is_folder = ?", name, size, false)
	if parentID == nil {
		query = query.Where("parent_id IS NULL")
	} else {
		query = query.Where("parent_id = ?", *parentID)
	}
	err := query.First(&file).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &file, nil
}

func (r *NodeRepositoryImpl[T]) FindByChecksum(checksum string) (*models.Node, error) {
	var file models.Node
	err := r.db.Where("checksum = ? AND is_folder = ?", checksum, false).First(&file).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &file, nil
}

func (r *NodeRepositoryImpl[T]) CountChildren(parentID uint) (int64, error) {
	var count int64
	err := r.db.Model(&models.Node{}).Where("parent_id = ?", parentID).Count(&count).Error
	return count, err
}

func (r *NodeRepositoryImpl[T]) FindFoldersWithExpiredOtp(now time.Time) ([]models.Node, error) {
	var folders []models.Node
	err := r.db.
		Where("is_folder = ? AND recovery_otp IS NOT NULL AND recovery_otp_expires < ?", true, now).
		Find(&folders).Error
	if err != nil {
		return nil, err
	}
	return folders, nil
}

func (r *NodeRepositoryImpl[T]) FindDeleted() ([]models.Node, error) {
	var nodes []models.Node
	err := r.db.Unscoped().Where("deleted_at IS NOT NULL").Find(&nodes).Error
	if err != nil {
		return nil, err
	}
	return nodes, nil
}

func (r *NodeRepositoryImpl[T]) HardDelete(node *models.Node) error {
	return r.db.Unscoped().Delete(node).Error
}
