// Package kvrepo implements the domain repositories on top of a domain.KVStore.
// Every loader normalizes what it finds: unreadable or malformed values yield the
// domain default together with a *domain.StorageError the caller may log.
package kvrepo

import (
	"bytes"
	"encoding/json"

	"github.com/runoshun/timeflow/internal/domain"
)

// Storage keys.
const (
	SessionsKey = "timeflow_sessions_v1"
	RuntimeKey  = "timeflow_runtime_v1"
	TagsKey     = "timeflow_tags_v1"
	SettingsKey = "timeflow_settings_v1"
)

// Repositories bundles the four repositories sharing one store.
type Repositories struct {
	Sessions *Sessions
	Runtime  *Runtime
	Tags     *Tags
	Settings *Settings
}

// New creates all repositories over store.
func New(store domain.KVStore) *Repositories {
	return &Repositories{
		Sessions: &Sessions{store: store},
		Runtime:  &Runtime{store: store},
		Tags:     &Tags{store: store},
		Settings: &Settings{store: store},
	}
}

// load reads key. ok is false when the key is absent or blank.
func load(store domain.KVStore, key string) ([]byte, bool, error) {
	value, found, err := store.Get(key)
	if err != nil {
		return nil, false, asStorageError("read", key, err)
	}
	if !found || len(bytes.TrimSpace(value)) == 0 {
		return nil, false, nil
	}
	return value, true, nil
}

func save(store domain.KVStore, key string, v any) error {
	data, err := json.Marshal(v)
	if err != nil {
		return &domain.StorageError{Op: "write", Key: key, Err: err}
	}
	if err := store.Set(key, data); err != nil {
		return asStorageError("write", key, err)
	}
	return nil
}

func asStorageError(op, key string, err error) error {
	if domain.IsStorage(err) {
		return err
	}
	return &domain.StorageError{Op: op, Key: key, Err: err}
}

func parseError(key string, err error) error {
	return &domain.StorageError{Op: "parse", Key: key, Err: err}
}

// Sessions implements domain.SessionRepository.
type Sessions struct {
	store domain.KVStore
}

// Load returns the stored sessions in insertion order.
func (r *Sessions) Load() ([]domain.Session, error) {
	data, ok, err := load(r.store, SessionsKey)
	if err != nil || !ok {
		return []domain.Session{}, err
	}
	sessions, err := domain.DecodeSessions(data)
	if err != nil {
		return []domain.Session{}, parseError(SessionsKey, err)
	}
	return sessions, nil
}

// Save replaces the stored list.
func (r *Sessions) Save(sessions []domain.Session) error {
	if sessions == nil {
		sessions = []domain.Session{}
	}
	return save(r.store, SessionsKey, sessions)
}

// Runtime implements domain.RuntimeRepository.
type Runtime struct {
	store domain.KVStore
}

// Load returns the stored snapshot, normalized.
func (r *Runtime) Load() (domain.Snapshot, error) {
	data, ok, err := load(r.store, RuntimeKey)
	if err != nil || !ok {
		return domain.IdleSnapshot(), err
	}
	var snap domain.Snapshot
	if err := json.Unmarshal(data, &snap); err != nil {
		return domain.IdleSnapshot(), parseError(RuntimeKey, err)
	}
	return snap, nil
}

// Save replaces the stored snapshot.
func (r *Runtime) Save(snapshot domain.Snapshot) error {
	return save(r.store, RuntimeKey, snapshot)
}

// Tags implements domain.TagRepository.
type Tags struct {
	store domain.KVStore
}

// Load returns the stored tags. An absent value or one that is not an array yields
// the default tag set; a stored empty array stays empty.
func (r *Tags) Load() ([]domain.Tag, error) {
	data, ok, err := load(r.store, TagsKey)
	if err != nil || !ok {
		return domain.DefaultTags(), err
	}
	tags, err := domain.DecodeTags(data)
	if err != nil {
		return domain.DefaultTags(), parseError(TagsKey, err)
	}
	return tags, nil
}

// Save replaces the stored list.
func (r *Tags) Save(tags []domain.Tag) error {
	if tags == nil {
		tags = []domain.Tag{}
	}
	return save(r.store, TagsKey, tags)
}

// Settings implements domain.SettingsRepository.
type Settings struct {
	store domain.KVStore
}

// Load returns the stored settings overlaid on the defaults.
func (r *Settings) Load() (domain.Settings, error) {
	data, ok, err := load(r.store, SettingsKey)
	if err != nil || !ok {
		return domain.DefaultSettings(), err
	}
	var s domain.Settings
	if err := json.Unmarshal(data, &s); err != nil {
		return domain.DefaultSettings(), parseError(SettingsKey, err)
	}
	return s, nil
}

// Save replaces the stored settings.
func (r *Settings) Save(settings domain.Settings) error {
	if settings.MasterGoalTagIDs == nil {
		settings.MasterGoalTagIDs = []string{}
	}
	return save(r.store, SettingsKey, settings)
}

// Ensure implementations satisfy the domain ports.
var (
	_ domain.SessionRepository  = (*Sessions)(nil)
	_ domain.RuntimeRepository  = (*Runtime)(nil)
	_ domain.TagRepository      = (*Tags)(nil)
	_ domain.SettingsRepository = (*Settings)(nil)
)
