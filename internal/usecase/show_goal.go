package usecase

import (
	"context"
	"fmt"

	"github.com/runoshun/timeflow/internal/domain"
)

// ShowGoalInput contains the parameters for computing goal progress.
type ShowGoalInput struct{}

// ShowGoalOutput contains the derived goal view.
type ShowGoalOutput struct {
	View domain.GoalView
}

// ShowGoal is the use case for Mastery Goal and daily goal progress, including the
// live interval.
type ShowGoal struct {
	timer      *Timer
	tags       domain.TagRepository
	settings   domain.SettingsRepository
	clock      domain.Clock
	logger     domain.Logger
	milestones []float64
}

// NewShowGoal creates a new ShowGoal use case. Nil milestones use the defaults.
func NewShowGoal(
	timer *Timer,
	tags domain.TagRepository,
	settings domain.SettingsRepository,
	clock domain.Clock,
	logger domain.Logger,
	milestones []float64,
) *ShowGoal {
	return &ShowGoal{
		timer:      timer,
		tags:       tags,
		settings:   settings,
		clock:      clock,
		logger:     logger,
		milestones: milestones,
	}
}

// Execute derives the goal view. It never fails on bad data.
func (uc *ShowGoal) Execute(_ context.Context, _ ShowGoalInput) (*ShowGoalOutput, error) {
	tags, err := uc.tags.Load()
	if err != nil && uc.logger != nil {
		uc.logger.Warn("store", fmt.Sprintf("load tags: %v", err))
	}
	settings, err := uc.settings.Load()
	if err != nil && uc.logger != nil {
		uc.logger.Warn("store", fmt.Sprintf("load settings: %v", err))
	}

	view := domain.DeriveGoalView(domain.GoalInput{
		Now:        uc.clock.Now(),
		Runtime:    uc.timer.Snapshot(),
		Sessions:   uc.timer.Sessions(),
		Tags:       tags,
		Settings:   settings,
		Milestones: uc.milestones,
	})
	return &ShowGoalOutput{View: view}, nil
}
