package usecase

import (
	"context"
	"fmt"

	"github.com/runoshun/timeflow/internal/domain"
)

// ShowReportInput contains the report range and grouping.
type ShowReportInput struct {
	From    string // YYYY-MM-DD, inclusive
	To      string // YYYY-MM-DD, inclusive
	GroupBy string // "day" (default) or "tag"
}

// ShowReportOutput contains the report.
type ShowReportOutput struct {
	Report domain.Report
}

// ShowReport is the use case for summarizing saved sessions over a date range.
type ShowReport struct {
	timer  *Timer
	tags   domain.TagRepository
	logger domain.Logger
}

// NewShowReport creates a new ShowReport use case.
func NewShowReport(timer *Timer, tags domain.TagRepository, logger domain.Logger) *ShowReport {
	return &ShowReport{
		timer:  timer,
		tags:   tags,
		logger: logger,
	}
}

// Execute builds the report. An end date before the start date is a ValidationError.
func (uc *ShowReport) Execute(_ context.Context, in ShowReportInput) (*ShowReportOutput, error) {
	from, err := domain.ParseDay(in.From)
	if err != nil {
		return nil, err
	}
	to, err := domain.ParseDay(in.To)
	if err != nil {
		return nil, err
	}
	groupBy, err := domain.ParseReportGroupBy(in.GroupBy)
	if err != nil {
		return nil, err
	}

	tags, err := uc.tags.Load()
	if err != nil && uc.logger != nil {
		uc.logger.Warn("store", fmt.Sprintf("load tags: %v", err))
	}

	report, err := domain.BuildReport(uc.timer.Sessions(), tags, from, to, groupBy)
	if err != nil {
		return nil, err
	}
	return &ShowReportOutput{Report: report}, nil
}
