package usecase

import (
	"context"
	"fmt"

	"github.com/runoshun/timeflow/internal/domain"
)

// DeleteTagInput contains the parameters for deleting a tag.
type DeleteTagInput struct {
	ID string
}

// DeleteTagOutput contains the result of deleting a tag.
type DeleteTagOutput struct {
	Tag domain.Tag // The removed tag
}

// DeleteTag is the use case for removing a tag. Saved sessions keep their tag id and
// are reported under the raw id afterwards.
type DeleteTag struct {
	tags     domain.TagRepository
	settings domain.SettingsRepository
	logger   domain.Logger
}

// NewDeleteTag creates a new DeleteTag use case.
func NewDeleteTag(tags domain.TagRepository, settings domain.SettingsRepository, logger domain.Logger) *DeleteTag {
	return &DeleteTag{
		tags:     tags,
		settings: settings,
		logger:   logger,
	}
}

// Execute removes the tag and drops it from the Mastery Goal tag selection.
func (uc *DeleteTag) Execute(_ context.Context, in DeleteTagInput) (*DeleteTagOutput, error) {
	tags, err := loadForWrite(uc.tags.Load, "tags", uc.logger)
	if err != nil {
		return nil, err
	}
	i := domain.FindTag(tags, in.ID)
	if i < 0 {
		return nil, domain.NewValidationError(fmt.Errorf("%w: %s", domain.ErrTagNotFound, in.ID))
	}
	removed := tags[i]

	remaining := make([]domain.Tag, 0, len(tags)-1)
	remaining = append(remaining, tags[:i]...)
	remaining = append(remaining, tags[i+1:]...)
	if err := uc.tags.Save(remaining); err != nil {
		return nil, fmt.Errorf("save tags: %w", err)
	}

	settings, err := loadForWrite(uc.settings.Load, "settings", uc.logger)
	if err != nil {
		return nil, err
	}
	if settings.HasMasterGoalTag(in.ID) {
		settings.RemoveMasterGoalTag(in.ID)
		if err := uc.settings.Save(settings); err != nil {
			return nil, fmt.Errorf("save settings: %w", err)
		}
	}

	if uc.logger != nil {
		uc.logger.Info("tag", fmt.Sprintf("deleted %s", removed.ID))
	}

	return &DeleteTagOutput{Tag: removed}, nil
}
