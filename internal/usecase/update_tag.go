package usecase

import (
	"context"
	"fmt"
	"strings"

	"github.com/runoshun/timeflow/internal/domain"
)

// UpdateTagInput contains the parameters for editing a tag.
// Nil fields are left unchanged.
type UpdateTagInput struct {
	Label  *string
	Color  *string
	Active *bool
	ID     string
}

// UpdateTagOutput contains the result of editing a tag.
type UpdateTagOutput struct {
	Tag domain.Tag
}

// UpdateTag is the use case for editing a tag in place.
type UpdateTag struct {
	tags   domain.TagRepository
	logger domain.Logger
}

// NewUpdateTag creates a new UpdateTag use case.
func NewUpdateTag(tags domain.TagRepository, logger domain.Logger) *UpdateTag {
	return &UpdateTag{
		tags:   tags,
		logger: logger,
	}
}

// Execute applies the given fields to the tag with in.ID.
func (uc *UpdateTag) Execute(_ context.Context, in UpdateTagInput) (*UpdateTagOutput, error) {
	if in.Label == nil && in.Color == nil && in.Active == nil {
		return nil, domain.NewValidationError(domain.ErrNoFieldsToUpdate)
	}

	tags, err := loadForWrite(uc.tags.Load, "tags", uc.logger)
	if err != nil {
		return nil, err
	}
	i := domain.FindTag(tags, in.ID)
	if i < 0 {
		return nil, domain.NewValidationError(fmt.Errorf("%w: %s", domain.ErrTagNotFound, in.ID))
	}

	tag := tags[i]
	if in.Label != nil {
		label := strings.TrimSpace(*in.Label)
		if label == "" {
			return nil, domain.NewValidationError(domain.ErrEmptyLabel)
		}
		tag.Label = label
	}
	if in.Color != nil {
		tag.Color = strings.TrimSpace(*in.Color)
	}
	if in.Active != nil {
		active := *in.Active
		tag.IsActive = &active
	}
	tags[i] = tag

	if err := uc.tags.Save(tags); err != nil {
		return nil, fmt.Errorf("save tags: %w", err)
	}

	if uc.logger != nil {
		uc.logger.Info("tag", fmt.Sprintf("updated %s", tag.ID))
	}

	return &UpdateTagOutput{Tag: tag}, nil
}
