package services

import (
	"Vaulted/internal/config"
	"context"
	"errors"
	"sync"
	"time"

	"github.com/robfig/cron/v3"
	"github.com/sirupsen/logrus"
)

// Janitor periodically clears expired recovery OTPs and purges soft-deleted
// nodes, removing their storage objects along the way.
type Janitor struct {
	nodeService   NodeService
	fileService   FileService
	logService    LogService
	configuration *config.Configuration
	cleaning      bool
	mutex         sync.Mutex
	cron          *cron.Cron
}

func NewJanitor(
	nodeService NodeService,
	fileService FileService,
	logService LogService,
	configuration *config.Configuration,
) *Janitor {
	return &Janitor{
		nodeService:   nodeService,
		fileService:   fileService,
		logService:    logService,
		configuration: configuration,
		cron:          cron.New(),
	}
}

func (j *Janitor) ForceStartCleanCycle() error {
	j.mutex.Lock()
	if j.cleaning {
		j.mutex.Unlock()
		return errors.New("cleaning is in progress")
	}
	j.cleaning = true
	j.mutex.Unlock()

	go func() {
		defer func() {
			j.mutex.Lock()
			j.cleaning = false
			j.mutex.Unlock()
		}()
		j.startClean(true)
	}()

	return nil
}

func (j *Janitor) StartCleanCycle() {
	cronSchedule := j.configuration.Server.CleanConfig.Schedule
	if cronSchedule == "" {
		return
	}
	_, err := j.cron.AddFunc(cronSchedule, func() {
		j.mutex.Lock()
		if j.cleaning {
			j.mutex.Unlock()
			return
		}
		j.cleaning = true
		j.mutex.Unlock()

		defer func() {
			j.mutex.Lock()
			j.cleaning = false
			j.mutex.Unlock()
		}()
		j.startClean(false)
	})
	if err != nil {
		j.logService.Log.WithFields(logrus.Fields{
			"job":   "clean",
			"error": err.Error(),
		}).Error("Failed to start cleaning job")
		return
	}
	j.cron.Start()
}

func (j *Janitor) Stop() {
	j.cron.Stop()
}

func (j *Janitor) IsCleaning() bool {
	j.mutex.Lock()
	defer j.mutex.Unlock()
	return j.cleaning
}

func (j *Janitor) startClean(forced bool) {
	logFields := logrus.Fields{"job": "clean", "status": "start"}
	if forced {
		logFields["status"] = "forced"
	} else {
		logFields["cron"] = j.configuration.Server.CleanConfig.Schedule
	}
	j.logService.Log.WithFields(logFields).Info("cleaning cycle started")

	j.clearExpiredOtps()
	j.purgeDeletedNodes()
}

func (j *Janitor) clearExpiredOtps() {
	folders, err := j.nodeService.FindFoldersWithExpiredOtp(time.Now())
	if err != nil {
		j.logService.Log.WithFields(logrus.Fields{
			"job":   "clean",
			"error": err.Error(),
		}).Error("Failed to find folders with expired OTPs")
		return
	}
	for _, folder := range folders {
		folder.RecoveryOtp = nil
		folder.RecoveryOtpExpires = nil
		if err := j.nodeService.UpdateNode(&folder); err != nil {
			j.logService.Log.WithFields(logrus.Fields{
				"job":       "clean",
				"folder_id": folder.ID,
				"error":     err.Error(),
			}).Error("Failed to clear expired OTP")
		}
	}
	if len(folders) > 0 {
		j.logService.Log.WithFields(logrus.Fields{
			"job":   "clean",
			"count": len(folders),
		}).Info("cleared expired recovery OTPs")
	}
}

func (j *Janitor) purgeDeletedNodes() {
	nodes, err := j.nodeService.FindDeleted()
	if err != nil {
		j.logService.Log.WithFields(logrus.Fields{
			"job":   "clean",
			"error": err.Error(),
		}).Error("Failed to find deleted nodes")
		return
	}
	var purgedCount int
	for _, node := range nodes {
		if err := j.fileService.DeleteNodeInStorage(context.Background(), &node); err != nil {
			// Keep the row so the next cycle retries the storage delete.
			continue
		}
		if err := j.nodeService.HardDelete(&node); err != nil {
			j.logService.Log.WithFields(logrus.Fields{
				"job":     "clean",
				"node_id": node.ID,
				"error":   err.Error(),
			}).Error("Failed to purge deleted node")
			continue
		}
		purgedCount++
	}
	if purgedCount > 0 {
		j.logService.Log.WithFields(logrus.Fields{
			"job":   "clean",
			"count": purgedCount,
		}).Info("cleaning job finished")
	}
}
