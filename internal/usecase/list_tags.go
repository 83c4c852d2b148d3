package usecase

import (
	"context"
	"fmt"

	"github.com/runoshun/timeflow/internal/domain"
)

// ListTagsInput contains the parameters for listing tags.
type ListTagsInput struct{}

// ListTagsOutput contains the tags and which of them count toward the Mastery Goal.
type ListTagsOutput struct {
	GoalTags map[string]bool
	Tags     []domain.Tag
}

// ListTags is the use case for listing tags.
type ListTags struct {
	tags     domain.TagRepository
	settings domain.SettingsRepository
	logger   domain.Logger
}

// NewListTags creates a new ListTags use case.
func NewListTags(tags domain.TagRepository, settings domain.SettingsRepository, logger domain.Logger) *ListTags {
	return &ListTags{
		tags:     tags,
		settings: settings,
		logger:   logger,
	}
}

// Execute returns the tags in stored order.
func (uc *ListTags) Execute(_ context.Context, _ ListTagsInput) (*ListTagsOutput, error) {
	tags, err := uc.tags.Load()
	if err != nil && uc.logger != nil {
		uc.logger.Warn("store", fmt.Sprintf("load tags: %v", err))
	}
	settings, err := uc.settings.Load()
	if err != nil && uc.logger != nil {
		uc.logger.Warn("store", fmt.Sprintf("load settings: %v", err))
	}

	goal := make(map[string]bool)
	for _, id := range domain.ResolveGoalTags(tags, settings.MasterGoalTagIDs) {
		goal[id] = true
	}
	return &ListTagsOutput{Tags: tags, GoalTags: goal}, nil
}
