package usecase

import (
	"context"
	"fmt"

	"github.com/runoshun/timeflow/internal/domain"
)

// ListSessionsInput contains the parameters for listing sessions.
type ListSessionsInput struct {
	Limit int // Maximum number of sessions; 0 means all
}

// SessionRow is a saved session with its resolved tag label.
type SessionRow struct {
	Label   string
	Session domain.Session
}

// ListSessionsOutput contains the most recent sessions first.
type ListSessionsOutput struct {
	Rows  []SessionRow
	Total int // Number of saved sessions before the limit
}

// ListSessions is the use case for listing saved sessions.
type ListSessions struct {
	timer  *Timer
	tags   domain.TagRepository
	logger domain.Logger
}

// NewListSessions creates a new ListSessions use case.
func NewListSessions(timer *Timer, tags domain.TagRepository, logger domain.Logger) *ListSessions {
	return &ListSessions{
		timer:  timer,
		tags:   tags,
		logger: logger,
	}
}

// Execute returns sessions in reverse insertion order.
func (uc *ListSessions) Execute(_ context.Context, in ListSessionsInput) (*ListSessionsOutput, error) {
	tags, err := uc.tags.Load()
	if err != nil && uc.logger != nil {
		uc.logger.Warn("store", fmt.Sprintf("load tags: %v", err))
	}

	sessions := uc.timer.Sessions()
	out := &ListSessionsOutput{Total: len(sessions), Rows: []SessionRow{}}
	for i := len(sessions) - 1; i >= 0; i-- {
		if in.Limit > 0 && len(out.Rows) >= in.Limit {
			break
		}
		s := sessions[i]
		out.Rows = append(out.Rows, SessionRow{Session: s, Label: domain.TagLabel(tags, s.Tag)})
	}
	return out, nil
}
