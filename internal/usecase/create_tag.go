package usecase

import (
	"context"
	"fmt"
	"strings"

	"github.com/runoshun/timeflow/internal/domain"
)

// CreateTagInput contains the parameters for creating a tag.
type CreateTagInput struct {
	Label string
	Color string // Empty uses domain.DefaultTagColor
}

// CreateTagOutput contains the result of creating a tag.
type CreateTagOutput struct {
	Tag domain.Tag
}

// CreateTag is the use case for adding a tag.
type CreateTag struct {
	tags   domain.TagRepository
	clock  domain.Clock
	logger domain.Logger
}

// NewCreateTag creates a new CreateTag use case.
func NewCreateTag(tags domain.TagRepository, clock domain.Clock, logger domain.Logger) *CreateTag {
	return &CreateTag{
		tags:   tags,
		clock:  clock,
		logger: logger,
	}
}

// Execute appends a new tag with a generated id.
func (uc *CreateTag) Execute(_ context.Context, in CreateTagInput) (*CreateTagOutput, error) {
	label := strings.TrimSpace(in.Label)
	if label == "" {
		return nil, domain.NewValidationError(domain.ErrEmptyLabel)
	}
	color := strings.TrimSpace(in.Color)
	if color == "" {
		color = domain.DefaultTagColor
	}

	tags, err := loadForWrite(uc.tags.Load, "tags", uc.logger)
	if err != nil {
		return nil, err
	}

	tag := domain.Tag{
		ID:    domain.NewTagID(uc.clock.Now()),
		Label: label,
		Color: color,
	}
	tags = append(tags, tag)
	if err := uc.tags.Save(tags); err != nil {
		return nil, fmt.Errorf("save tags: %w", err)
	}

	if uc.logger != nil {
		uc.logger.Info("tag", fmt.Sprintf("created %s %q", tag.ID, tag.Label))
	}

	return &CreateTagOutput{Tag: tag}, nil
}
