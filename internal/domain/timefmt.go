package domain

import (
	"fmt"
	"time"
)

// DayKeyLayout is the layout of calendar day keys.
const DayKeyLayout = "2006-01-02"

// FormatClock formats seconds as HH:MM:SS. Negative input is shown as zero.
func FormatClock(seconds int64) string {
	if seconds < 0 {
		seconds = 0
	}
	h := seconds / 3600
	m := (seconds % 3600) / 60
	s := seconds % 60
	return fmt.Sprintf("%02d:%02d:%02d", h, m, s)
}

// FormatHoursMinutes formats seconds as "2h 30m", rounding to the nearest minute.
func FormatHoursMinutes(seconds int64) string {
	if seconds < 0 {
		seconds = 0
	}
	totalMinutes := (seconds + 30) / 60
	h := totalMinutes / 60
	m := totalMinutes % 60
	switch {
	case h > 0 && m > 0:
		return fmt.Sprintf("%dh %dm", h, m)
	case h > 0:
		return fmt.Sprintf("%dh", h)
	case m > 0:
		return fmt.Sprintf("%dm", m)
	}
	return "0h"
}

// DayKey returns the local calendar day of t as YYYY-MM-DD.
func DayKey(t time.Time) string {
	return t.Local().Format(DayKeyLayout)
}

// SameDay reports whether a and b fall on the same local calendar day.
func SameDay(a, b time.Time) bool {
	ay, am, ad := a.Local().Date()
	by, bm, bd := b.Local().Date()
	return ay == by && am == bm && ad == bd
}

// StartOfDay returns local midnight of t's day.
func StartOfDay(t time.Time) time.Time {
	y, m, d := t.Local().Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.Local)
}

// LastDays returns the n calendar days ending on now's day, oldest first.
func LastDays(now time.Time, n int) []time.Time {
	if n <= 0 {
		return nil
	}
	today := StartOfDay(now)
	days := make([]time.Time, 0, n)
	for i := n - 1; i >= 0; i-- {
		days = append(days, today.AddDate(0, 0, -i))
	}
	return days
}

// ParseDay parses a YYYY-MM-DD day in local time.
func ParseDay(s string) (time.Time, error) {
	t, err := time.ParseInLocation(DayKeyLayout, s, time.Local)
	if err != nil {
		return time.Time{}, NewValidationError(fmt.Errorf("%w: %q", ErrInvalidDate, s))
	}
	return t, nil
}
