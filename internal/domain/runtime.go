package domain

import (
	"bytes"
	"encoding/json"
	"time"
)

// RuntimeState is the state of the timer runtime.
type RuntimeState int

// Runtime states. Exactly one holds for any normalized snapshot.
const (
	StateIdle RuntimeState = iota
	StateRunning
	StatePaused
)

func (s RuntimeState) String() string {
	switch s {
	case StateRunning:
		return "running"
	case StatePaused:
		return "paused"
	default:
		return "idle"
	}
}

// Snapshot is the live, not-yet-saved state of the current timer interval.
//
//	Running ⟺ IsRunning && ResumeAt != nil
//	Paused  ⟺ !IsRunning && SessionStartAt != nil && ResumeAt == nil
//	Idle    ⟺ SessionStartAt == nil && AccumulatedSeconds == 0
//
// Transitions are value methods returning the next snapshot, so a snapshot can be
// stepped without touching storage.
// Fields are ordered to minimize memory padding.
type Snapshot struct {
	SessionStartAt     *time.Time
	ResumeAt           *time.Time
	CurrentTagID       TagRef
	AccumulatedSeconds int64
	IsRunning          bool
}

// IdleSnapshot returns an idle snapshot with no tag selected.
func IdleSnapshot() Snapshot {
	return Snapshot{}
}

// State derives the runtime state.
func (s Snapshot) State() RuntimeState {
	switch {
	case s.IsRunning && s.ResumeAt != nil:
		return StateRunning
	case s.SessionStartAt != nil:
		return StatePaused
	default:
		return StateIdle
	}
}

// Elapsed returns the seconds tracked in the current interval as of now.
// Time between ResumeAt and now is credited even across process restarts; a
// ResumeAt in the future contributes nothing.
func (s Snapshot) Elapsed(now time.Time) int64 {
	if s.State() != StateRunning {
		return s.AccumulatedSeconds
	}
	return AddSeconds(s.AccumulatedSeconds, secondsSince(*s.ResumeAt, now))
}

// SelectTag chooses the tag for the next or current interval. Not allowed while running.
func (s Snapshot) SelectTag(ref TagRef) (Snapshot, error) {
	if s.State() == StateRunning {
		return s, NewValidationError(ErrTagChangeWhileRunning)
	}
	s.CurrentTagID = ref
	return s, nil
}

// Start begins a new interval from idle, or resumes a paused one.
func (s Snapshot) Start(now time.Time) (Snapshot, error) {
	if s.CurrentTagID.IsNone() {
		return s, NewValidationError(ErrNoTagSelected)
	}
	if s.State() == StateRunning {
		return s, NewValidationError(ErrAlreadyRunning)
	}
	if s.State() == StateIdle {
		start := now
		s.SessionStartAt = &start
		s.AccumulatedSeconds = 0
	}
	resume := now
	s.ResumeAt = &resume
	s.IsRunning = true
	return s, nil
}

// Pause banks the running segment into AccumulatedSeconds.
func (s Snapshot) Pause(now time.Time) (Snapshot, error) {
	if s.State() != StateRunning {
		return s, NewValidationError(ErrNotRunning)
	}
	s.AccumulatedSeconds = AddSeconds(s.AccumulatedSeconds, secondsSince(*s.ResumeAt, now))
	s.ResumeAt = nil
	s.IsRunning = false
	return s, nil
}

// Stop finalizes the interval. It returns the idle snapshot and the session to append,
// or a nil session when the interval is discarded (no tag, no start, or no time).
// The tag selection is kept.
func (s Snapshot) Stop(now time.Time) (Snapshot, *Session) {
	if s.State() == StateIdle {
		return s.Reset(), nil
	}
	total := s.Elapsed(now)
	tag := s.CurrentTagID
	startAt := s.SessionStartAt
	next := s.Reset()
	if tag.IsNone() || startAt == nil || total <= 0 {
		return next, nil
	}
	return next, &Session{
		ID:              NewSessionID(now),
		Tag:             tag,
		StartedAt:       FormatTimestamp(*startAt),
		EndedAt:         FormatTimestamp(now),
		DurationSeconds: total,
	}
}

// Reset returns the idle snapshot, keeping the tag selection.
func (s Snapshot) Reset() Snapshot {
	return Snapshot{CurrentTagID: s.CurrentTagID}
}

// Normalize repairs snapshots that violate the state invariants.
func (s Snapshot) Normalize() Snapshot {
	if s.AccumulatedSeconds < 0 {
		s.AccumulatedSeconds = 0
	}
	if s.IsRunning && s.ResumeAt == nil {
		s.IsRunning = false
	}
	if !s.IsRunning {
		s.ResumeAt = nil
	}
	if s.IsRunning && s.SessionStartAt == nil {
		start := *s.ResumeAt
		s.SessionStartAt = &start
	}
	if s.SessionStartAt == nil {
		s.AccumulatedSeconds = 0
	}
	return s
}

// Equal reports whether two snapshots describe the same runtime state.
func (s Snapshot) Equal(o Snapshot) bool {
	return s.IsRunning == o.IsRunning &&
		s.CurrentTagID == o.CurrentTagID &&
		s.AccumulatedSeconds == o.AccumulatedSeconds &&
		timePtrEqual(s.SessionStartAt, o.SessionStartAt) &&
		timePtrEqual(s.ResumeAt, o.ResumeAt)
}

func timePtrEqual(a, b *time.Time) bool {
	if a == nil || b == nil {
		return a == b
	}
	return a.Equal(*b)
}

func secondsSince(from, now time.Time) int64 {
	d := now.Sub(from)
	if d <= 0 {
		return 0
	}
	return int64(d / time.Second)
}

// snapshotRecord is the stored shape: sessionStartAt as an ISO string, resumeAt as
// epoch milliseconds.
type snapshotRecord struct {
	IsRunning          bool    `json:"isRunning"`
	CurrentTagID       TagRef  `json:"currentTagId"`
	SessionStartAt     *string `json:"sessionStartAt"`
	ResumeAt           *int64  `json:"resumeAt"`
	AccumulatedSeconds int64   `json:"accumulatedSeconds"`
}

// MarshalJSON encodes the stored shape.
func (s Snapshot) MarshalJSON() ([]byte, error) {
	rec := snapshotRecord{
		IsRunning:          s.IsRunning,
		CurrentTagID:       s.CurrentTagID,
		AccumulatedSeconds: s.AccumulatedSeconds,
	}
	if s.SessionStartAt != nil {
		v := FormatTimestamp(*s.SessionStartAt)
		rec.SessionStartAt = &v
	}
	if s.ResumeAt != nil {
		v := s.ResumeAt.UnixMilli()
		rec.ResumeAt = &v
	}
	return json.Marshal(rec)
}

// UnmarshalJSON decodes the stored shape leniently and normalizes the result.
func (s *Snapshot) UnmarshalJSON(data []byte) error {
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	var out Snapshot
	_ = json.Unmarshal(raw["isRunning"], &out.IsRunning)
	out.CurrentTagID = parseTagRef(raw["currentTagId"])
	out.AccumulatedSeconds = rawSeconds(raw["accumulatedSeconds"])
	out.SessionStartAt = rawTime(raw["sessionStartAt"])
	out.ResumeAt = rawTime(raw["resumeAt"])
	*s = out.Normalize()
	return nil
}

// rawTime accepts epoch milliseconds or a timestamp string.
func rawTime(raw json.RawMessage) *time.Time {
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 || bytes.Equal(raw, []byte("null")) {
		return nil
	}
	var ms float64
	if err := json.Unmarshal(raw, &ms); err == nil {
		if ms <= 0 {
			return nil
		}
		t := time.UnixMilli(int64(ms))
		return &t
	}
	t, ok := ParseTimestamp(rawString(raw))
	if !ok {
		return nil
	}
	return &t
}
