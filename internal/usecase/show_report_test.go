package usecase

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/runoshun/timeflow/internal/domain"
)

func TestShowReport_Execute(t *testing.T) {
	// Setup
	env := newTestEnv(t)
	day := base.AddDate(0, 0, -1)
	require.NoError(t, env.timer.SetSessions([]domain.Session{
		{ID: "1", Tag: domain.TagID("study"), EndedAt: domain.FormatTimestamp(day), DurationSeconds: 600},
		{ID: "2", Tag: domain.TagID("gone"), EndedAt: domain.FormatTimestamp(base), DurationSeconds: 1200},
		{ID: "3", Tag: domain.TagID("study"), EndedAt: domain.FormatTimestamp(base.Add(time.Minute)), DurationSeconds: 300},
	}))
	uc := NewShowReport(env.timer, env.repos.Tags, env.logger)

	// Execute
	byDay, err := uc.Execute(context.Background(), ShowReportInput{From: domain.DayKey(day), To: domain.DayKey(base)})
	require.NoError(t, err)
	byTag, err := uc.Execute(context.Background(), ShowReportInput{From: domain.DayKey(day), To: domain.DayKey(base), GroupBy: "tag"})
	require.NoError(t, err)

	// Assert
	require.Len(t, byDay.Report.Rows, 2)
	assert.Equal(t, int64(600), byDay.Report.Rows[0].Seconds)
	assert.Equal(t, int64(1500), byDay.Report.Rows[1].Seconds)
	assert.Equal(t, int64(2100), byDay.Report.TotalSeconds)

	require.Len(t, byTag.Report.Rows, 2)
	assert.Equal(t, "gone", byTag.Report.Rows[0].Label)
	assert.Equal(t, "Study", byTag.Report.Rows[1].Label)
	assert.Equal(t, 2, byTag.Report.Rows[1].Sessions)
}

func TestShowReport_Execute_Errors(t *testing.T) {
	tests := []struct {
		name    string
		input   ShowReportInput
		wantErr error
	}{
		{"bad from", ShowReportInput{From: "yesterday", To: "2024-03-10"}, domain.ErrInvalidDate},
		{"bad to", ShowReportInput{From: "2024-03-10", To: "10/03/2024"}, domain.ErrInvalidDate},
		{"reversed", ShowReportInput{From: "2024-03-10", To: "2024-03-09"}, domain.ErrInvalidRange},
		{"bad grouping", ShowReportInput{From: "2024-03-10", To: "2024-03-10", GroupBy: "week"}, domain.ErrInvalidGroupBy},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			env := newTestEnv(t)

			_, err := NewShowReport(env.timer, env.repos.Tags, env.logger).Execute(context.Background(), tt.input)

			assert.ErrorIs(t, err, tt.wantErr)
			assert.True(t, domain.IsValidation(err))
		})
	}
}

func TestListSessions_Execute(t *testing.T) {
	env := newTestEnv(t)
	require.NoError(t, env.timer.SetSessions([]domain.Session{
		{ID: "1", Tag: domain.TagID("study"), DurationSeconds: 10},
		{ID: "2", Tag: domain.NoTag(), DurationSeconds: 20},
		{ID: "3", Tag: domain.TagID("deleted"), DurationSeconds: 30},
	}))
	uc := NewListSessions(env.timer, env.repos.Tags, env.logger)

	out, err := uc.Execute(context.Background(), ListSessionsInput{Limit: 2})

	require.NoError(t, err)
	assert.Equal(t, 3, out.Total)
	require.Len(t, out.Rows, 2)
	assert.Equal(t, "3", out.Rows[0].Session.ID)
	assert.Equal(t, "deleted", out.Rows[0].Label)
	assert.Equal(t, domain.NoTagLabel, out.Rows[1].Label)

	all, err := uc.Execute(context.Background(), ListSessionsInput{})
	require.NoError(t, err)
	assert.Len(t, all.Rows, 3)
	assert.Equal(t, "Study", all.Rows[2].Label)
}
