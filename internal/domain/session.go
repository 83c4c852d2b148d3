package domain

import (
	"bytes"
	"encoding/json"
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
)

// TimestampLayout is the ISO-8601 layout used for stored timestamps.
const TimestampLayout = "2006-01-02T15:04:05.000Z07:00"

// Session is one completed, saved interval of tracked time.
// Sessions are never mutated after they are appended to the session list.
// Fields are ordered to minimize memory padding.
type Session struct {
	Tag             TagRef `json:"tag"`
	ID              string `json:"id"`
	StartedAt       string `json:"startedAt"`
	EndedAt         string `json:"endedAt"`
	DurationSeconds int64  `json:"durationSeconds"`
}

// NewSessionID returns an id derived from the creation time with a random suffix.
func NewSessionID(now time.Time) string {
	return fmt.Sprintf("%d-%s", now.UnixMilli(), uuid.NewString()[:8])
}

// FormatTimestamp formats t the way stored sessions carry timestamps.
func FormatTimestamp(t time.Time) string {
	return t.UTC().Format(TimestampLayout)
}

// ParseTimestamp parses a stored timestamp. ok is false for empty or unparseable input.
func ParseTimestamp(s string) (time.Time, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, false
	}
	if t, err := time.Parse(time.RFC3339Nano, s); err == nil {
		return t, true
	}
	// Legacy values without a zone are local wall-clock times.
	if t, err := time.ParseInLocation("2006-01-02T15:04:05", s, time.Local); err == nil {
		return t, true
	}
	if ms, err := strconv.ParseInt(s, 10, 64); err == nil {
		return time.UnixMilli(ms), true
	}
	return time.Time{}, false
}

// DayTime returns the timestamp used to place the session on a calendar day:
// EndedAt, falling back to StartedAt.
func (s Session) DayTime() (time.Time, bool) {
	if t, ok := ParseTimestamp(s.EndedAt); ok {
		return t, true
	}
	return ParseTimestamp(s.StartedAt)
}

// sessionRecord is the lenient wire shape accepted on ingestion.
type sessionRecord struct {
	ID              json.RawMessage `json:"id"`
	Tag             json.RawMessage `json:"tag"`
	TagID           json.RawMessage `json:"tagId"`
	StartedAt       json.RawMessage `json:"startedAt"`
	EndedAt         json.RawMessage `json:"endedAt"`
	FinishedAt      json.RawMessage `json:"finishedAt"`
	StoppedAt       json.RawMessage `json:"stoppedAt"`
	DurationSeconds json.RawMessage `json:"durationSeconds"`
}

// UnmarshalJSON sanitizes a stored or imported session record: the id and timestamps
// are stringified, legacy tag shapes are reduced to an id and the duration is floored
// and clamped to be non-negative. Only non-object input is rejected.
func (s *Session) UnmarshalJSON(data []byte) error {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) == 0 || trimmed[0] != '{' {
		return fmt.Errorf("session record must be an object")
	}
	var rec sessionRecord
	if err := json.Unmarshal(trimmed, &rec); err != nil {
		return err
	}

	tag := parseTagRef(rec.Tag)
	if tag.IsNone() {
		tag = parseTagRef(rec.TagID)
	}
	endedAt := rawString(rec.EndedAt)
	if endedAt == "" {
		endedAt = rawString(rec.FinishedAt)
	}
	if endedAt == "" {
		endedAt = rawString(rec.StoppedAt)
	}

	*s = Session{
		ID:              rawString(rec.ID),
		Tag:             tag,
		StartedAt:       rawString(rec.StartedAt),
		EndedAt:         endedAt,
		DurationSeconds: rawSeconds(rec.DurationSeconds),
	}
	return nil
}

// DecodeSessions parses a JSON array of session records, skipping entries that are
// not objects. A value that is not an array is an error.
func DecodeSessions(data []byte) ([]Session, error) {
	var raws []json.RawMessage
	if err := json.Unmarshal(data, &raws); err != nil {
		return nil, err
	}
	sessions := make([]Session, 0, len(raws))
	for _, raw := range raws {
		var s Session
		if err := json.Unmarshal(raw, &s); err != nil {
			continue
		}
		sessions = append(sessions, s)
	}
	return sessions, nil
}

// rawString stringifies a JSON scalar. Missing and null values become "".
func rawString(raw json.RawMessage) string {
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 || bytes.Equal(raw, []byte("null")) {
		return ""
	}
	switch raw[0] {
	case '"':
		var s string
		if err := json.Unmarshal(raw, &s); err == nil {
			return s
		}
	case '-', '0', '1', '2', '3', '4', '5', '6', '7', '8', '9':
		if f, err := strconv.ParseFloat(string(raw), 64); err == nil {
			return strconv.FormatFloat(f, 'f', -1, 64)
		}
	}
	return string(raw)
}

// rawSeconds reads a JSON number as whole non-negative seconds. Anything that is not
// a finite number counts as zero.
func rawSeconds(raw json.RawMessage) int64 {
	var f float64
	if err := json.Unmarshal(raw, &f); err != nil {
		return 0
	}
	return ClampSeconds(f)
}

// ClampSeconds floors f and clamps it to be non-negative; non-finite values become 0.
func ClampSeconds(f float64) int64 {
	if math.IsNaN(f) || math.IsInf(f, 0) || f <= 0 {
		return 0
	}
	if f >= math.MaxInt64 {
		return math.MaxInt64
	}
	return int64(math.Floor(f))
}

// AddSeconds sums non-negative durations, saturating at math.MaxInt64.
func AddSeconds(a, b int64) int64 {
	a, b = max(a, 0), max(b, 0)
	if a > math.MaxInt64-b {
		return math.MaxInt64
	}
	return a + b
}
