package usecase

import (
	"context"
	"time"

	"github.com/runoshun/timeflow/internal/domain"
)

// ShowStatusInput contains the parameters for showing the timer status.
type ShowStatusInput struct{}

// ShowStatusOutput describes the timer at one instant.
// Fields are ordered to minimize memory padding.
type ShowStatusOutput struct {
	StartedAt      *time.Time // Start of the current interval; nil when idle
	TagID          string
	Label          string
	State          domain.RuntimeState
	ElapsedSeconds int64
}

// ShowStatus is the use case for reporting the timer state.
type ShowStatus struct {
	timer *Timer
	tags  domain.TagRepository
	clock domain.Clock
}

// NewShowStatus creates a new ShowStatus use case.
func NewShowStatus(timer *Timer, tags domain.TagRepository, clock domain.Clock) *ShowStatus {
	return &ShowStatus{
		timer: timer,
		tags:  tags,
		clock: clock,
	}
}

// Execute reports the current state and elapsed time.
func (uc *ShowStatus) Execute(_ context.Context, _ ShowStatusInput) (*ShowStatusOutput, error) {
	snap := uc.timer.Snapshot()
	tags, _ := uc.tags.Load()
	return &ShowStatusOutput{
		State:          snap.State(),
		TagID:          snap.CurrentTagID.String(),
		Label:          domain.TagLabel(tags, snap.CurrentTagID),
		ElapsedSeconds: snap.Elapsed(uc.clock.Now()),
		StartedAt:      snap.SessionStartAt,
	}, nil
}
