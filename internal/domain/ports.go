package domain

import "time"

// KVStore is the persistent key-value byte store.
// Writes are not transactional; each Set replaces the whole value.
type KVStore interface {
	// Get returns the value for key. ok is false when the key was never written.
	Get(key string) (value []byte, ok bool, err error)

	// Set stores value under key.
	Set(key string, value []byte) error
}

// SessionRepository persists the ordered session list.
type SessionRepository interface {
	// Load returns the stored sessions in insertion order.
	// On failure it returns an empty list together with a *StorageError.
	Load() ([]Session, error)

	// Save replaces the stored list.
	Save(sessions []Session) error
}

// RuntimeRepository persists the timer runtime snapshot.
type RuntimeRepository interface {
	// Load returns the stored snapshot, or an idle snapshot together with a
	// *StorageError when the stored value is unreadable.
	Load() (Snapshot, error)

	// Save replaces the stored snapshot.
	Save(snapshot Snapshot) error
}

// TagRepository persists the ordered tag list.
type TagRepository interface {
	// Load returns the stored tags, or DefaultTags when nothing usable is stored.
	Load() ([]Tag, error)

	// Save replaces the stored list.
	Save(tags []Tag) error
}

// SettingsRepository persists goal settings.
type SettingsRepository interface {
	// Load returns the stored settings overlaid on DefaultSettings.
	Load() (Settings, error)

	// Save replaces the stored settings.
	Save(settings Settings) error
}

// ConfigLoader loads application configuration.
type ConfigLoader interface {
	// Load returns the effective configuration (defaults overlaid by the config file).
	Load() (*Config, error)
}

// ConfigManager inspects and creates the config file.
type ConfigManager interface {
	// ConfigInfo returns the config file's path and content.
	ConfigInfo() ConfigInfo

	// InitConfig writes a commented template rendered from cfg.
	// Returns ErrConfigExists if the file is already present.
	InitConfig(cfg *Config) error
}

// Logger writes categorized log lines.
type Logger interface {
	Debug(category, msg string)
	Info(category, msg string)
	Warn(category, msg string)
	Error(category, msg string)
}

// Clock provides time operations for testability.
type Clock interface {
	// Now returns the current time.
	Now() time.Time
}

// RealClock implements Clock using the system clock.
type RealClock struct{}

// Now returns the current time.
func (RealClock) Now() time.Time {
	return time.Now()
}
