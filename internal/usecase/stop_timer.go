package usecase

import (
	"context"

	"github.com/runoshun/timeflow/internal/domain"
)

// StopTimerInput contains the parameters for stopping the timer.
type StopTimerInput struct{}

// StopTimerOutput contains the result of stopping the timer.
type StopTimerOutput struct {
	Session *domain.Session // Saved session; nil when nothing was recorded
	Label   string
}

// StopTimer is the use case for stopping the timer and saving the interval.
type StopTimer struct {
	timer *Timer
	tags  domain.TagRepository
}

// NewStopTimer creates a new StopTimer use case.
func NewStopTimer(timer *Timer, tags domain.TagRepository) *StopTimer {
	return &StopTimer{
		timer: timer,
		tags:  tags,
	}
}

// Execute stops the timer. Stopping an idle timer is a no-op. On a storage error the
// saved session is still returned alongside the error.
func (uc *StopTimer) Execute(_ context.Context, _ StopTimerInput) (*StopTimerOutput, error) {
	session, err := uc.timer.StopAndSave()
	out := &StopTimerOutput{Session: session}
	if session != nil {
		tags, _ := uc.tags.Load()
		out.Label = domain.TagLabel(tags, session.Tag)
	}
	return out, err
}
