package usecase

import (
	"context"
	"fmt"

	"github.com/runoshun/timeflow/internal/domain"
)

// ShowSettingsInput contains the parameters for showing settings.
type ShowSettingsInput struct{}

// ShowSettingsOutput contains the stored settings and the tags they refer to.
type ShowSettingsOutput struct {
	Tags     []domain.Tag
	Settings domain.Settings
}

// ShowSettings is the use case for reading settings.
type ShowSettings struct {
	settings domain.SettingsRepository
	tags     domain.TagRepository
	logger   domain.Logger
}

// NewShowSettings creates a new ShowSettings use case.
func NewShowSettings(settings domain.SettingsRepository, tags domain.TagRepository, logger domain.Logger) *ShowSettings {
	return &ShowSettings{
		settings: settings,
		tags:     tags,
		logger:   logger,
	}
}

// Execute returns the stored settings.
func (uc *ShowSettings) Execute(_ context.Context, _ ShowSettingsInput) (*ShowSettingsOutput, error) {
	s, err := uc.settings.Load()
	if err != nil && uc.logger != nil {
		uc.logger.Warn("store", fmt.Sprintf("load settings: %v", err))
	}
	tags, err := uc.tags.Load()
	if err != nil && uc.logger != nil {
		uc.logger.Warn("store", fmt.Sprintf("load tags: %v", err))
	}
	return &ShowSettingsOutput{Settings: s, Tags: tags}, nil
}
