package domain

import (
	"cmp"
	"fmt"
	"slices"
	"time"
)

// ReportGroupBy selects how report rows are bucketed.
type ReportGroupBy string

// Report groupings.
const (
	GroupByDay ReportGroupBy = "day"
	GroupByTag ReportGroupBy = "tag"
)

// ParseReportGroupBy validates a grouping name. Empty means day.
func ParseReportGroupBy(s string) (ReportGroupBy, error) {
	switch ReportGroupBy(s) {
	case "", GroupByDay:
		return GroupByDay, nil
	case GroupByTag:
		return GroupByTag, nil
	}
	return "", NewValidationError(fmt.Errorf("%w: %q", ErrInvalidGroupBy, s))
}

// MaxReportYears bounds the span of a report range.
const MaxReportYears = 10

// ReportRow is one bucket of a report.
type ReportRow struct {
	Key      string `json:"key" yaml:"key"`
	Label    string `json:"label" yaml:"label"`
	Seconds  int64  `json:"seconds" yaml:"seconds"`
	Sessions int    `json:"sessions" yaml:"sessions"`
}

// Report summarizes saved sessions over an inclusive day range.
// Fields are ordered to minimize memory padding.
type Report struct {
	From         string        `json:"from" yaml:"from"`
	To           string        `json:"to" yaml:"to"`
	GroupBy      ReportGroupBy `json:"groupBy" yaml:"groupBy"`
	Rows         []ReportRow   `json:"rows" yaml:"rows"`
	TotalSeconds int64         `json:"totalSeconds" yaml:"totalSeconds"`
}

// BuildReport buckets sessions whose day falls in [from, to]. Day reports list every
// day in the range, including empty ones; tag reports list tags by descending time.
// Sessions without a parseable timestamp are left out.
func BuildReport(sessions []Session, tags []Tag, from, to time.Time, groupBy ReportGroupBy) (Report, error) {
	from, to = StartOfDay(from), StartOfDay(to)
	if to.Before(from) {
		return Report{}, NewValidationError(ErrInvalidRange)
	}
	if to.After(from.AddDate(MaxReportYears, 0, 0)) {
		return Report{}, NewValidationError(ErrRangeTooLong)
	}

	report := Report{From: DayKey(from), To: DayKey(to), GroupBy: groupBy, Rows: []ReportRow{}}
	index := make(map[string]int)

	if groupBy == GroupByDay {
		for d := from; !d.After(to); d = d.AddDate(0, 0, 1) {
			key := DayKey(d)
			index[key] = len(report.Rows)
			report.Rows = append(report.Rows, ReportRow{Key: key, Label: key})
		}
	}

	for _, s := range sessions {
		t, ok := s.DayTime()
		if !ok {
			continue
		}
		day := DayKey(t)
		if day < report.From || day > report.To {
			continue
		}
		secs := max(s.DurationSeconds, 0)

		key, label := day, day
		if groupBy == GroupByTag {
			key, label = s.Tag.String(), TagLabel(tags, s.Tag)
		}
		i, ok := index[key]
		if !ok {
			i = len(report.Rows)
			index[key] = i
			report.Rows = append(report.Rows, ReportRow{Key: key, Label: label})
		}
		report.Rows[i].Seconds = AddSeconds(report.Rows[i].Seconds, secs)
		report.Rows[i].Sessions++
		report.TotalSeconds = AddSeconds(report.TotalSeconds, secs)
	}

	if groupBy == GroupByTag {
		slices.SortStableFunc(report.Rows, func(a, b ReportRow) int {
			return cmp.Compare(b.Seconds, a.Seconds)
		})
	}
	return report, nil
}
