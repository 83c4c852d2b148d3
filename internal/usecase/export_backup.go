package usecase

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/runoshun/timeflow/internal/domain"
)

// ExportBackupInput contains the parameters for exporting a backup.
type ExportBackupInput struct{}

// ExportBackupOutput contains the backup document and its JSON encoding.
type ExportBackupOutput struct {
	Data   []byte
	Backup domain.Backup
}

// ExportBackup is the use case for exporting all user data.
type ExportBackup struct {
	timer    *Timer
	tags     domain.TagRepository
	settings domain.SettingsRepository
	clock    domain.Clock
	logger   domain.Logger
}

// NewExportBackup creates a new ExportBackup use case.
func NewExportBackup(timer *Timer, tags domain.TagRepository, settings domain.SettingsRepository, clock domain.Clock, logger domain.Logger) *ExportBackup {
	return &ExportBackup{
		timer:    timer,
		tags:     tags,
		settings: settings,
		clock:    clock,
		logger:   logger,
	}
}

// Execute builds a version 3 backup of sessions, tags and settings.
func (uc *ExportBackup) Execute(_ context.Context, _ ExportBackupInput) (*ExportBackupOutput, error) {
	tags, err := uc.tags.Load()
	if err != nil && uc.logger != nil {
		uc.logger.Warn("store", fmt.Sprintf("load tags: %v", err))
	}
	settings, err := uc.settings.Load()
	if err != nil && uc.logger != nil {
		uc.logger.Warn("store", fmt.Sprintf("load settings: %v", err))
	}

	backup := domain.NewBackup(uc.clock.Now(), uc.timer.Sessions(), tags, settings)
	data, err := json.MarshalIndent(backup, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("encode backup: %w", err)
	}

	if uc.logger != nil {
		uc.logger.Info("backup", fmt.Sprintf("exported %d sessions", len(backup.Sessions)))
	}

	return &ExportBackupOutput{Backup: backup, Data: data}, nil
}
