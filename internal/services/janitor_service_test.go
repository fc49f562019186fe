package services

import (
	"Vaulted/internal/config"
	"Vaulted/internal/models"
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func setupJanitor(t *testing.T) (*Janitor, NodeService, *fakeStorage) {
	nodeService := NewNodeService(setupNodeRepo(t))
	objectStorage := &fakeStorage{blobs: map[string]string{}}
	cfg := &config.Configuration{}
	fileService := NewFileService(nodeService, objectStorage, testLogService(), cfg)
	return NewJanitor(nodeService, fileService, testLogService(), cfg), nodeService, objectStorage
}

func TestJanitor_ClearsExpiredOtps(t *testing.T) {
	janitor, nodeService, _ := setupJanitor(t)

	expired := time.Now().Add(-time.Minute)
	live := time.Now().Add(10 * time.Minute)
	otp := "123456"

	stale := models.Node{Name: "Stale", IsFolder: true, StorageKey: "folder_stale", RecoveryOtp: &otp, RecoveryOtpExpires: &expired}
	fresh := models.Node{Name: "Fresh", IsFolder: true, StorageKey: "folder_fresh", RecoveryOtp: &otp, RecoveryOtpExpires: &live}
	assert.NoError(t, nodeService.InsertNode(&stale))
	assert.NoError(t, nodeService.InsertNode(&fresh))

	janitor.startClean(true)

	cleared, err := nodeService.GetNodeByID(stale.ID)
	assert.NoError(t, err)
	assert.Nil(t, cleared.RecoveryOtp)
	assert.Nil(t, cleared.RecoveryOtpExpires)

	kept, err := nodeService.GetNodeByID(fresh.ID)
	assert.NoError(t, err)
	assert.NotNil(t, kept.RecoveryOtp)
}

func TestJanitor_PurgesDeletedNodes(t *testing.T) {
	janitor, nodeService, objectStorage := setupJanitor(t)

	node := models.Node{Name: "trash.txt", StorageKey: "uploads/trash"}
	assert.NoError(t, nodeService.InsertNode(&node))
	objectStorage.blobs[node.StorageKey] = "bytes"
	assert.NoError(t, nodeService.DeleteNode(node.ID))

	janitor.startClean(true)

	assert.NotContains(t, objectStorage.blobs, node.StorageKey)
	remaining, err := nodeService.FindDeleted()
	assert.NoError(t, err)
	assert.Empty(t, remaining)
}

func TestJanitor_PurgeSkipsFolderStorage(t *testing.T) {
	janitor, nodeService, objectStorage := setupJanitor(t)

	folder := models.Node{Name: "Old", IsFolder: true, StorageKey: "folder_old"}
	assert.NoError(t, nodeService.InsertNode(&folder))
	assert.NoError(t, nodeService.DeleteNode(folder.ID))

	janitor.startClean(true)

	// Folder keys have no storage object behind them; the row still goes.
	assert.Empty(t, objectStorage.blobs)
	remaining, err := nodeService.FindDeleted()
	assert.NoError(t, err)
	assert.Empty(t, remaining)
}

func TestJanitor_ForceStartRejectsConcurrentRun(t *testing.T) {
	janitor, _, _ := setupJanitor(t)

	janitor.mutex.Lock()
	janitor.cleaning = true
	janitor.mutex.Unlock()

	assert.Error(t, janitor.ForceStartCleanCycle())
	assert.True(t, janitor.IsCleaning())
}

func TestJanitor_DeleteNodeInStorageKeepsRowOnFailure(t *testing.T) {
	nodeService := NewNodeService(setupNodeRepo(t))
	objectStorage := &failingDeleteStorage{}
	cfg := &config.Configuration{}
	fileService := NewFileService(nodeService, objectStorage, testLogService(), cfg)
	janitor := NewJanitor(nodeService, fileService, testLogService(), cfg)

	node := models.Node{Name: "stuck.txt", StorageKey: "uploads/stuck"}
	assert.NoError(t, nodeService.InsertNode(&node))
	assert.NoError(t, nodeService.DeleteNode(node.ID))

	janitor.startClean(true)

	remaining, err := nodeService.FindDeleted()
	assert.NoError(t, err)
	assert.Len(t, remaining, 1)
}

type failingDeleteStorage struct {
	fakeStorage
}

func (f *failingDeleteStorage) Delete(ctx context.Context, key string) error {
	return assert.AnError
}
