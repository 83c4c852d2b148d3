// Package usecase contains the application use cases.
package usecase

import (
	"context"
	"fmt"

	"github.com/runoshun/timeflow/internal/domain"
)

// StartTimerInput contains the parameters for starting the timer.
type StartTimerInput struct {
	TagID string // Optional tag to select before starting
}

// StartTimerOutput contains the result of starting the timer.
type StartTimerOutput struct {
	Label    string // Display label of the running tag
	Snapshot domain.Snapshot
	Resumed  bool // True when a paused interval was resumed
}

// StartTimer is the use case for starting or resuming the timer.
type StartTimer struct {
	timer *Timer
	tags  domain.TagRepository
}

// NewStartTimer creates a new StartTimer use case.
func NewStartTimer(timer *Timer, tags domain.TagRepository) *StartTimer {
	return &StartTimer{
		timer: timer,
		tags:  tags,
	}
}

// Execute starts the timer, selecting in.TagID first when given.
func (uc *StartTimer) Execute(_ context.Context, in StartTimerInput) (*StartTimerOutput, error) {
	tags, _ := uc.tags.Load()

	if in.TagID != "" {
		if domain.FindTag(tags, in.TagID) < 0 {
			return nil, domain.NewValidationError(fmt.Errorf("%w: %s", domain.ErrTagNotFound, in.TagID))
		}
		if err := uc.timer.SelectTag(domain.TagID(in.TagID)); err != nil {
			return nil, err
		}
	}

	resumed := uc.timer.State() == domain.StatePaused
	if err := uc.timer.Start(); err != nil {
		return nil, err
	}

	snap := uc.timer.Snapshot()
	return &StartTimerOutput{
		Snapshot: snap,
		Label:    domain.TagLabel(tags, snap.CurrentTagID),
		Resumed:  resumed,
	}, nil
}
