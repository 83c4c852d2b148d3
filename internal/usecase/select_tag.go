package usecase

import (
	"context"
	"fmt"

	"github.com/runoshun/timeflow/internal/domain"
)

// SelectTagInput contains the parameters for selecting a tag.
type SelectTagInput struct {
	TagID string // Tag to select
	Clear bool   // Clear the selection instead
}

// SelectTagOutput contains the result of selecting a tag.
type SelectTagOutput struct {
	Label string // Display label of the selection
}

// SelectTag is the use case for choosing the timer's tag.
type SelectTag struct {
	timer *Timer
	tags  domain.TagRepository
}

// NewSelectTag creates a new SelectTag use case.
func NewSelectTag(timer *Timer, tags domain.TagRepository) *SelectTag {
	return &SelectTag{
		timer: timer,
		tags:  tags,
	}
}

// Execute selects in.TagID, or clears the selection. The tag must exist.
func (uc *SelectTag) Execute(_ context.Context, in SelectTagInput) (*SelectTagOutput, error) {
	if in.Clear {
		if err := uc.timer.SelectTag(domain.NoTag()); err != nil {
			return nil, err
		}
		return &SelectTagOutput{Label: domain.NoTagLabel}, nil
	}

	tags, _ := uc.tags.Load()
	if domain.FindTag(tags, in.TagID) < 0 {
		return nil, domain.NewValidationError(fmt.Errorf("%w: %s", domain.ErrTagNotFound, in.TagID))
	}
	ref := domain.TagID(in.TagID)
	if err := uc.timer.SelectTag(ref); err != nil {
		return nil, err
	}
	return &SelectTagOutput{Label: domain.TagLabel(tags, ref)}, nil
}
