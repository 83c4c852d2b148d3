package usecase

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/runoshun/timeflow/internal/domain"
	"github.com/runoshun/timeflow/internal/infra/kvrepo"
)

func seedData(t *testing.T, env *testEnv) {
	t.Helper()
	require.NoError(t, env.timer.SelectTag(domain.TagID("study")))
	require.NoError(t, env.timer.Start())
	env.clock.Advance(20 * time.Minute)
	_, err := env.timer.StopAndSave()
	require.NoError(t, err)

	settings := domain.DefaultSettings()
	settings.SetMasterGoalName("Guitar")
	settings.ToggleMasterGoalTag("study")
	require.NoError(t, env.repos.Settings.Save(settings))
}

func TestExportImport_RoundTrip(t *testing.T) {
	// Setup
	src := newTestEnv(t)
	seedData(t, src)
	exported, err := NewExportBackup(src.timer, src.repos.Tags, src.repos.Settings, src.clock, src.logger).
		Execute(context.Background(), ExportBackupInput{})
	require.NoError(t, err)

	dst := newTestEnv(t)
	require.NoError(t, dst.timer.SelectTag(domain.TagID("work")))
	require.NoError(t, dst.timer.Start())

	// Execute
	out, err := NewImportBackup(dst.timer, dst.repos.Tags, dst.repos.Settings, dst.logger).
		Execute(context.Background(), ImportBackupInput{Data: exported.Data})

	// Assert
	require.NoError(t, err)
	assert.Equal(t, 1, out.Sessions)
	assert.True(t, out.TagsReplaced)
	assert.True(t, out.SettingsReplaced)

	assert.Equal(t, src.timer.Sessions(), dst.timer.Sessions())
	assert.Equal(t, domain.StateIdle, dst.timer.State())

	srcSettings, _ := src.repos.Settings.Load()
	dstSettings, _ := dst.repos.Settings.Load()
	assert.Equal(t, srcSettings, dstSettings)

	reloaded := dst.restart(t)
	assert.Equal(t, src.timer.Sessions(), reloaded.timer.Sessions())
	assert.Equal(t, domain.StateIdle, reloaded.timer.State())
}

func TestExportBackup_Document(t *testing.T) {
	env := newTestEnv(t)
	seedData(t, env)

	out, err := NewExportBackup(env.timer, env.repos.Tags, env.repos.Settings, env.clock, env.logger).
		Execute(context.Background(), ExportBackupInput{})

	require.NoError(t, err)
	assert.Equal(t, domain.BackupVersion, out.Backup.Version)
	assert.Equal(t, domain.FormatTimestamp(env.clock.Now()), out.Backup.ExportedAt)

	var raw map[string]json.RawMessage
	require.NoError(t, json.Unmarshal(out.Data, &raw))
	assert.Contains(t, raw, "exportedAt")
	assert.Contains(t, raw, "sessions")
	assert.Contains(t, raw, "tags")
	assert.Contains(t, raw, "settings")
	assert.JSONEq(t, "3", string(raw["version"]))
}

func TestImportBackup_SessionsOnly(t *testing.T) {
	env := newTestEnv(t)
	seedData(t, env)
	tagsBefore, _ := env.repos.Tags.Load()
	settingsBefore, _ := env.repos.Settings.Load()

	out, err := NewImportBackup(env.timer, env.repos.Tags, env.repos.Settings, env.logger).
		Execute(context.Background(), ImportBackupInput{Data: []byte(`{"sessions":[{"id":"x","tag":null,"durationSeconds":-3}]}`)})

	require.NoError(t, err)
	assert.False(t, out.TagsReplaced)
	assert.False(t, out.SettingsReplaced)
	assert.Equal(t, []domain.Session{{ID: "x", Tag: domain.NoTag()}}, env.timer.Sessions())

	tagsAfter, _ := env.repos.Tags.Load()
	settingsAfter, _ := env.repos.Settings.Load()
	assert.Equal(t, tagsBefore, tagsAfter)
	assert.Equal(t, settingsBefore, settingsAfter)
}

func TestImportBackup_RejectsWithoutMutation(t *testing.T) {
	tests := []struct {
		name    string
		data    string
		wantErr error
	}{
		{"invalid json", `{"sessions":`, domain.ErrInvalidBackup},
		{"missing sessions", `{"version":3,"tags":[]}`, domain.ErrBackupMissingSessions},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			env := newTestEnv(t)
			seedData(t, env)
			sessions := env.timer.Sessions()
			before, _, _ := env.store.Get(kvrepo.SessionsKey)

			_, err := NewImportBackup(env.timer, env.repos.Tags, env.repos.Settings, env.logger).
				Execute(context.Background(), ImportBackupInput{Data: []byte(tt.data)})

			assert.ErrorIs(t, err, tt.wantErr)
			assert.True(t, domain.IsValidation(err))
			assert.Equal(t, sessions, env.timer.Sessions())
			after, _, _ := env.store.Get(kvrepo.SessionsKey)
			assert.Equal(t, before, after)
		})
	}
}

func TestImportBackup_StorageError(t *testing.T) {
	env := newTestEnv(t)
	env.store.FailSet(kvrepo.SessionsKey, errors.New("quota exceeded"))

	_, err := NewImportBackup(env.timer, env.repos.Tags, env.repos.Settings, env.logger).
		Execute(context.Background(), ImportBackupInput{Data: []byte(`{"sessions":[]}`)})

	require.Error(t, err)
	assert.True(t, domain.IsStorage(err))
}
