package usecase

import (
	"context"
)

// PauseTimerInput contains the parameters for pausing the timer.
type PauseTimerInput struct{}

// PauseTimerOutput contains the result of pausing the timer.
type PauseTimerOutput struct {
	ElapsedSeconds int64 // Seconds banked in the current interval
}

// PauseTimer is the use case for pausing the running timer.
type PauseTimer struct {
	timer *Timer
}

// NewPauseTimer creates a new PauseTimer use case.
func NewPauseTimer(timer *Timer) *PauseTimer {
	return &PauseTimer{timer: timer}
}

// Execute pauses the timer.
func (uc *PauseTimer) Execute(_ context.Context, _ PauseTimerInput) (*PauseTimerOutput, error) {
	if err := uc.timer.Pause(); err != nil {
		return nil, err
	}
	return &PauseTimerOutput{ElapsedSeconds: uc.timer.Elapsed()}, nil
}
