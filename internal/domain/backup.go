package domain

import (
	"bytes"
	"encoding/json"
	"time"
)

// BackupVersion is the version written to exported backups.
const BackupVersion = 3

// Backup is the export/import document.
// Fields are ordered to minimize memory padding.
type Backup struct {
	ExportedAt string    `json:"exportedAt"`
	Sessions   []Session `json:"sessions"`
	Tags       []Tag     `json:"tags"`
	Settings   Settings  `json:"settings"`
	Version    int       `json:"version"`
}

// NewBackup assembles a backup of the given data.
func NewBackup(now time.Time, sessions []Session, tags []Tag, settings Settings) Backup {
	if sessions == nil {
		sessions = []Session{}
	}
	if tags == nil {
		tags = []Tag{}
	}
	if settings.MasterGoalTagIDs == nil {
		settings.MasterGoalTagIDs = []string{}
	}
	return Backup{
		Version:    BackupVersion,
		ExportedAt: FormatTimestamp(now),
		Sessions:   sessions,
		Tags:       tags,
		Settings:   settings,
	}
}

// ParsedBackup is the sanitized content of an imported backup.
// Tags and Settings are nil when the backup does not carry them.
type ParsedBackup struct {
	Settings *Settings
	Sessions []Session
	Tags     []Tag
}

// ParseBackup reads a backup document. A document without a sessions array is a
// ValidationError; every session record is sanitized.
func ParseBackup(data []byte) (*ParsedBackup, error) {
	var doc map[string]json.RawMessage
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, NewValidationError(ErrInvalidBackup)
	}
	if doc == nil {
		return nil, NewValidationError(ErrBackupMissingSessions)
	}

	rawSessions := bytes.TrimSpace(doc["sessions"])
	if len(rawSessions) == 0 || rawSessions[0] != '[' {
		return nil, NewValidationError(ErrBackupMissingSessions)
	}
	sessions, err := DecodeSessions(rawSessions)
	if err != nil {
		return nil, NewValidationError(ErrBackupMissingSessions)
	}

	out := &ParsedBackup{Sessions: sessions}

	if rawTags := bytes.TrimSpace(doc["tags"]); len(rawTags) > 0 && rawTags[0] == '[' {
		if tags, err := DecodeTags(rawTags); err == nil {
			out.Tags = tags
		}
	}

	if rawSettings := bytes.TrimSpace(doc["settings"]); len(rawSettings) > 0 && rawSettings[0] == '{' {
		var s Settings
		if err := json.Unmarshal(rawSettings, &s); err == nil {
			out.Settings = &s
		}
	}

	return out, nil
}
