package usecase

import (
	"context"
	"fmt"

	"github.com/runoshun/timeflow/internal/domain"
)

// ImportBackupInput contains the backup document to import.
type ImportBackupInput struct {
	Data []byte
}

// ImportBackupOutput summarizes what was replaced.
type ImportBackupOutput struct {
	Sessions         int
	TagsReplaced     bool
	SettingsReplaced bool
}

// ImportBackup is the use case for restoring a backup.
type ImportBackup struct {
	timer    *Timer
	tags     domain.TagRepository
	settings domain.SettingsRepository
	logger   domain.Logger
}

// NewImportBackup creates a new ImportBackup use case.
func NewImportBackup(timer *Timer, tags domain.TagRepository, settings domain.SettingsRepository, logger domain.Logger) *ImportBackup {
	return &ImportBackup{
		timer:    timer,
		tags:     tags,
		settings: settings,
		logger:   logger,
	}
}

// Execute replaces the session list with the backup's sanitized sessions, replaces tags
// and settings when the backup carries them, and resets the runtime to idle. A
// document without a sessions array is rejected before anything is changed.
func (uc *ImportBackup) Execute(_ context.Context, in ImportBackupInput) (*ImportBackupOutput, error) {
	parsed, err := domain.ParseBackup(in.Data)
	if err != nil {
		return nil, err
	}

	if err := uc.timer.SetSessions(parsed.Sessions); err != nil {
		return nil, err
	}
	out := &ImportBackupOutput{Sessions: len(parsed.Sessions)}

	if parsed.Tags != nil {
		if err := uc.tags.Save(parsed.Tags); err != nil {
			return nil, fmt.Errorf("save tags: %w", err)
		}
		out.TagsReplaced = true
	}
	if parsed.Settings != nil {
		if err := uc.settings.Save(*parsed.Settings); err != nil {
			return nil, fmt.Errorf("save settings: %w", err)
		}
		out.SettingsReplaced = true
	}

	if err := uc.timer.ResetRuntime(); err != nil {
		return nil, err
	}

	if uc.logger != nil {
		uc.logger.Info("backup", fmt.Sprintf("imported %d sessions (tags=%t settings=%t)",
			out.Sessions, out.TagsReplaced, out.SettingsReplaced))
	}

	return out, nil
}
