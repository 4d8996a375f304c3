package server

import (
	"fmt"
	"path/filepath"
	"time"

	"github.com/agendadev/agenda/config"
	"github.com/agendadev/agenda/server/cron"
	"github.com/agendadev/agenda/server/gstorage"
	"github.com/agendadev/agenda/store"
	"github.com/agendadev/agenda/utils"
	"github.com/go-co-op/gocron"
	"github.com/pkg/errors"
)

const (
	BACKUP_JOB_TAG    = "db_backup"
	BACKUP_TIME_STAMP = "20060102T150405"
)

// BackupScheduler copies the live database file into the backup directory
// on the configured cron expression, and mirrors the copies to google
// cloud storage when sync is enabled.
type BackupScheduler struct {
	cronScheduler *gocron.Scheduler
	gStorage      *gstorage.GStorage
	cfg           *config.Config
	dbFilePath    string
	st            *store.Store
}

// NewBackupScheduler wires the scheduler for cfg. The google storage
// client is only built when backup sync is enabled.
func NewBackupScheduler(cfg *config.Config, dbFilePath string) (*BackupScheduler, error) {
	bScheduler := &BackupScheduler{
		cronScheduler: cron.NewCronScheduler(cfg.Backup.TimeZone),
		cfg:           cfg,
		dbFilePath:    dbFilePath,
	}

	if cfg.BackupSyncEnabled() {
		gStorage, err := gstorage.NewGStorage(cfg.Google.ApplicationCredentials)
		if err != nil {
			return nil, err
		}
		bScheduler.gStorage = gStorage
	}

	return bScheduler, nil
}

// UseStore hands the scheduler the live gateway, so backups can flush the
// WAL into the main file before copying it.
func (bScheduler *BackupScheduler) UseStore(st *store.Store) {
	bScheduler.st = st
}

// Start schedules the backup job and launches the scheduler in the
// background.
func (bScheduler *BackupScheduler) Start() {
	bScheduler.cronScheduler.Cron(bScheduler.cfg.Backup.Schedule).Tag(BACKUP_JOB_TAG).Do(func() {
		if err := bScheduler.runBackup(); err != nil {
			logg.Errorf("db backup failed: %v", err)
		}
	})

	logg.Infof("Backup job scheduled with '%v'", bScheduler.cfg.Backup.Schedule)
	bScheduler.cronScheduler.StartAsync()
}

// Stop halts the scheduler. A backup already in flight finishes.
func (bScheduler *BackupScheduler) Stop() {
	bScheduler.cronScheduler.Stop()
}

// RestoreLatest downloads the newest remote backup over the local db
// file. Without sync, or without any remote copy yet, it does nothing.
func (bScheduler *BackupScheduler) RestoreLatest() error {
	if bScheduler.gStorage == nil {
		return nil
	}

	storageCfg := bScheduler.cfg.Google.Storage

	object, err := bScheduler.gStorage.LatestObject(storageCfg.Bucket, storageCfg.Prefix)
	if errors.Is(err, gstorage.ErrObjectNotExist) {
		logg.Infof("No remote backup to restore in bucket %v", storageCfg.Bucket)
		return nil
	}
	if err != nil {
		return err
	}

	return bScheduler.gStorage.DownloadFile(storageCfg.Bucket, object, bScheduler.dbFilePath)
}

// ---------------------------------------------------------------------------------//
// Helper functions
// --------------------------------------------------------------------------------//

func (bScheduler *BackupScheduler) runBackup() error {
	if !utils.FileExist(bScheduler.dbFilePath) {
		logg.Infof("No database file at %v yet, nothing to back up", bScheduler.dbFilePath)
		return nil
	}

	if err := utils.CreateDirIfNotExist(bScheduler.cfg.Backup.Dir); err != nil {
		return err
	}

	// Move committed WAL pages into the main file, so the copy below
	// holds every transaction.
	if bScheduler.st != nil {
		if err := bScheduler.st.Execute("PRAGMA wal_checkpoint(TRUNCATE);"); err != nil {
			return err
		}
	}

	backupFilePath := filepath.Join(
		bScheduler.cfg.Backup.Dir,
		fmt.Sprintf("%v-%v", time.Now().Format(BACKUP_TIME_STAMP), bScheduler.cfg.Database.Name),
	)

	if err := utils.CopyFile(bScheduler.dbFilePath, backupFilePath); err != nil {
		return err
	}
	logg.Infof("Database backed up to %v", backupFilePath)

	if bScheduler.gStorage != nil {
		storageCfg := bScheduler.cfg.Google.Storage
		if err := bScheduler.gStorage.UploadFile(storageCfg.Bucket, storageCfg.Prefix, backupFilePath); err != nil {
			return err
		}
	}

	return nil
}
