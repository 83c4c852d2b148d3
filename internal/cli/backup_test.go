package cli

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/runoshun/timeflow/internal/domain"
)

func TestExportImport_RoundTrip(t *testing.T) {
	// Setup
	src, clock := newTestContainer(t)
	_, err := run(t, src, "start", "--tag", "work")
	require.NoError(t, err)
	clock.Advance(45 * time.Minute)
	_, err = run(t, src, "stop")
	require.NoError(t, err)
	_, err = run(t, src, "tag", "add", "Reading")
	require.NoError(t, err)

	path := filepath.Join(t.TempDir(), "backup.json")

	// Execute
	out, err := run(t, src, "export", "-o", path)
	require.NoError(t, err)
	assert.Contains(t, out, "Exported 1 sessions to "+path)

	dst, _ := newTestContainer(t)
	out, err = run(t, dst, "import", path)

	// Assert
	require.NoError(t, err)
	assert.Contains(t, out, "Imported 1 sessions")
	assert.Contains(t, out, "Tags replaced")
	assert.Contains(t, out, "Settings replaced")

	srcSessions, _ := src.Sessions.Load()
	dstSessions, _ := dst.Sessions.Load()
	assert.Equal(t, srcSessions, dstSessions)
	dstTags, _ := dst.Tags.Load()
	assert.Len(t, dstTags, 4)
}

func TestExportCommand_Stdout(t *testing.T) {
	c, _ := newTestContainer(t)

	out, err := run(t, c, "export")

	require.NoError(t, err)
	parsed, err := domain.ParseBackup([]byte(out))
	require.NoError(t, err)
	assert.Empty(t, parsed.Sessions)
	assert.Contains(t, out, `"version": 3`)
}

func TestImportCommand_Stdin(t *testing.T) {
	c, _ := newTestContainer(t)
	root := NewRootCommand(c, "test")
	root.SetIn(strings.NewReader(`{"sessions":[{"id":1,"tag":"study","durationSeconds":12.9}]}`))
	root.SetOut(&strings.Builder{})
	root.SetArgs([]string{"import", "-"})

	require.NoError(t, root.Execute())

	sessions, err := c.Sessions.Load()
	require.NoError(t, err)
	assert.Equal(t, []domain.Session{{ID: "1", Tag: domain.TagID("study"), DurationSeconds: 12}}, sessions)
}

func TestImportCommand_RejectsUnknownFormat(t *testing.T) {
	c, _ := newTestContainer(t)
	path := filepath.Join(t.TempDir(), "bad.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"entries":[]}`), 0o644))

	_, err := run(t, c, "import", path)

	assert.ErrorIs(t, err, domain.ErrBackupMissingSessions)
}

func TestImportCommand_MissingFile(t *testing.T) {
	c, _ := newTestContainer(t)

	_, err := run(t, c, "import", filepath.Join(t.TempDir(), "none.json"))

	assert.ErrorIs(t, err, os.ErrNotExist)
}
