package domain

import (
	"bytes"
	"encoding/json"
	"math"
	"strconv"
	"strings"
)

// Default goal settings.
const (
	DefaultDailyGoalHours  = 3
	DefaultMasterGoalHours = 10000
)

// Settings holds the user's goal configuration.
// Fields are ordered to minimize memory padding.
type Settings struct {
	MasterGoalName   string   `json:"masterGoalName" yaml:"masterGoalName"`
	MasterGoalTagIDs []string `json:"masterGoalTagIds" yaml:"masterGoalTagIds"`
	DailyGoalHours   float64  `json:"dailyGoalHours" yaml:"dailyGoalHours"`
	MasterGoalHours  float64  `json:"masterGoalHours" yaml:"masterGoalHours"`
}

// DefaultSettings returns the settings used on first run.
func DefaultSettings() Settings {
	return Settings{
		DailyGoalHours:   DefaultDailyGoalHours,
		MasterGoalName:   "",
		MasterGoalHours:  DefaultMasterGoalHours,
		MasterGoalTagIDs: []string{},
	}
}

// ClampHours maps negative and non-finite input to 0.
func ClampHours(v float64) float64 {
	if math.IsNaN(v) || math.IsInf(v, 0) || v < 0 {
		return 0
	}
	return v
}

// ParseHours parses user input as hours. Non-numeric or negative input yields 0.
func ParseHours(s string) float64 {
	v, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil {
		return 0
	}
	return ClampHours(v)
}

// SetDailyGoalHours stores the per-day target, clamped to be non-negative.
func (s *Settings) SetDailyGoalHours(hours float64) {
	s.DailyGoalHours = ClampHours(hours)
}

// SetMasterGoalName stores the Mastery Goal's display name.
func (s *Settings) SetMasterGoalName(name string) {
	s.MasterGoalName = name
}

// SetMasterGoalHours stores the Mastery Goal target, clamped to be non-negative.
func (s *Settings) SetMasterGoalHours(hours float64) {
	s.MasterGoalHours = ClampHours(hours)
}

// ToggleMasterGoalTag adds id to the goal tag selection, or removes it if present.
func (s *Settings) ToggleMasterGoalTag(id string) {
	id = strings.TrimSpace(id)
	if id == "" {
		return
	}
	out := make([]string, 0, len(s.MasterGoalTagIDs)+1)
	found := false
	for _, existing := range s.MasterGoalTagIDs {
		if existing == id {
			found = true
			continue
		}
		out = append(out, existing)
	}
	if !found {
		out = append(out, id)
	}
	s.MasterGoalTagIDs = out
}

// RemoveMasterGoalTag drops id from the goal tag selection.
func (s *Settings) RemoveMasterGoalTag(id string) {
	out := make([]string, 0, len(s.MasterGoalTagIDs))
	for _, existing := range s.MasterGoalTagIDs {
		if existing != id {
			out = append(out, existing)
		}
	}
	s.MasterGoalTagIDs = out
}

// HasMasterGoalTag reports whether id is part of the goal tag selection.
func (s Settings) HasMasterGoalTag(id string) bool {
	for _, existing := range s.MasterGoalTagIDs {
		if existing == id {
			return true
		}
	}
	return false
}

// UnmarshalJSON overlays stored fields onto DefaultSettings. Fields of the wrong type
// keep their defaults; tag ids are stringified and de-duplicated.
func (s *Settings) UnmarshalJSON(data []byte) error {
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	out := DefaultSettings()
	if v, ok := rawNumber(raw["dailyGoalHours"]); ok {
		out.DailyGoalHours = ClampHours(v)
	}
	if v, ok := rawNumber(raw["masterGoalHours"]); ok {
		out.MasterGoalHours = ClampHours(v)
	}
	if v, ok := raw["masterGoalName"]; ok {
		out.MasterGoalName = rawString(v)
	}
	var ids []json.RawMessage
	if err := json.Unmarshal(raw["masterGoalTagIds"], &ids); err == nil {
		for _, rawID := range ids {
			id := strings.TrimSpace(rawString(rawID))
			if id != "" && !out.HasMasterGoalTag(id) {
				out.MasterGoalTagIDs = append(out.MasterGoalTagIDs, id)
			}
		}
	}
	*s = out
	return nil
}

func rawNumber(raw json.RawMessage) (float64, bool) {
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 {
		return 0, false
	}
	var f float64
	if err := json.Unmarshal(raw, &f); err == nil {
		return f, true
	}
	// Form inputs of older versions were sometimes stored as strings.
	var str string
	if err := json.Unmarshal(raw, &str); err == nil {
		return ParseHours(str), true
	}
	return 0, false
}
