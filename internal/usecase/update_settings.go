package usecase

import (
	"context"
	"fmt"

	"github.com/runoshun/timeflow/internal/domain"
)

// UpdateSettingsInput contains the settings to change. Nil fields are left unchanged.
// Hour values are raw user input: negative or non-numeric input is stored as 0.
// Fields are ordered to minimize memory padding.
type UpdateSettingsInput struct {
	DailyGoalHours  *string
	MasterGoalName  *string
	MasterGoalHours *string
	ToggleTagIDs    []string // Each id is added to or removed from the goal selection
}

// UpdateSettingsOutput contains the stored settings.
type UpdateSettingsOutput struct {
	Settings domain.Settings
}

// UpdateSettings is the use case for the settings setters.
type UpdateSettings struct {
	settings domain.SettingsRepository
	logger   domain.Logger
}

// NewUpdateSettings creates a new UpdateSettings use case.
func NewUpdateSettings(settings domain.SettingsRepository, logger domain.Logger) *UpdateSettings {
	return &UpdateSettings{
		settings: settings,
		logger:   logger,
	}
}

// Execute applies the requested setters and persists the result.
func (uc *UpdateSettings) Execute(_ context.Context, in UpdateSettingsInput) (*UpdateSettingsOutput, error) {
	if in.DailyGoalHours == nil && in.MasterGoalName == nil && in.MasterGoalHours == nil && len(in.ToggleTagIDs) == 0 {
		return nil, domain.NewValidationError(domain.ErrNoFieldsToUpdate)
	}

	s, err := loadForWrite(uc.settings.Load, "settings", uc.logger)
	if err != nil {
		return nil, err
	}

	if in.DailyGoalHours != nil {
		s.SetDailyGoalHours(domain.ParseHours(*in.DailyGoalHours))
	}
	if in.MasterGoalName != nil {
		s.SetMasterGoalName(*in.MasterGoalName)
	}
	if in.MasterGoalHours != nil {
		s.SetMasterGoalHours(domain.ParseHours(*in.MasterGoalHours))
	}
	for _, id := range in.ToggleTagIDs {
		s.ToggleMasterGoalTag(id)
	}

	if err := uc.settings.Save(s); err != nil {
		return nil, fmt.Errorf("save settings: %w", err)
	}

	if uc.logger != nil {
		uc.logger.Info("settings", fmt.Sprintf("daily=%gh goal=%q %gh tags=%v",
			s.DailyGoalHours, s.MasterGoalName, s.MasterGoalHours, s.MasterGoalTagIDs))
	}

	return &UpdateSettingsOutput{Settings: s}, nil
}
