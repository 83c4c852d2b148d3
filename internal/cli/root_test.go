package cli

import (
	"bytes"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/runoshun/timeflow/internal/app"
	"github.com/runoshun/timeflow/internal/infra/config"
	"github.com/runoshun/timeflow/internal/infra/kvstore"
	"github.com/runoshun/timeflow/internal/testutil"
)

// newTestContainer creates a container over an in-memory store and a fixed clock.
// Config commands use real config files inside a temporary directory.
func newTestContainer(t *testing.T) (*app.Container, *testutil.MockClock) {
	t.Helper()

	dir := t.TempDir()
	clock := &testutil.MockClock{NowTime: time.Date(2024, 3, 10, 12, 0, 0, 0, time.Local)}
	cfg := app.Config{
		ConfigPath: filepath.Join(dir, "config", "config.toml"),
		DataDir:    filepath.Join(dir, "data"),
	}
	c := app.NewWithDeps(cfg, kvstore.NewMemory(), clock, &testutil.MockLogger{})
	c.ConfigLoader = config.NewLoader(cfg.ConfigPath)
	c.ConfigManager = config.NewManager(cfg.ConfigPath)
	return c, clock
}

// run executes the root command with args and returns combined output.
func run(t *testing.T, c *app.Container, args ...string) (string, error) {
	t.Helper()

	root := NewRootCommand(c, "test")
	var buf bytes.Buffer
	root.SetOut(&buf)
	root.SetErr(&buf)
	root.SetArgs(args)
	err := root.Execute()
	return buf.String(), err
}

func TestNewRootCommand_NoArgs_LaunchesTUI(t *testing.T) {
	// Save original function and restore after test
	originalFunc := launchTUIFunc
	defer func() {
		launchTUIFunc = originalFunc
	}()

	called := false
	launchTUIFunc = func(c *app.Container) error {
		called = true
		return nil
	}

	root := NewRootCommand(nil, "test-version")
	root.SetArgs([]string{})
	err := root.Execute()

	assert.NoError(t, err)
	assert.True(t, called, "launchTUIFunc should be called when no arguments are provided")
}

func TestNewRootCommand_WithHelp_ShowsHelp(t *testing.T) {
	originalFunc := launchTUIFunc
	defer func() {
		launchTUIFunc = originalFunc
	}()

	called := false
	launchTUIFunc = func(c *app.Container) error {
		called = true
		return nil
	}

	root := NewRootCommand(nil, "test-version")
	var buf bytes.Buffer
	root.SetOut(&buf)
	root.SetArgs([]string{"--help"})
	err := root.Execute()

	assert.NoError(t, err)
	assert.False(t, called)
	assert.Contains(t, buf.String(), "Timer:")
	assert.Contains(t, buf.String(), "Tags, Goals and Data:")
	assert.Contains(t, buf.String(), "--config")
}

func TestNewRootCommand_PrintsConfigWarnings(t *testing.T) {
	c, _ := newTestContainer(t)
	c.AppConfig.Warnings = []string{"unknown key: timer.speed"}

	out, err := run(t, c, "status")

	require.NoError(t, err)
	assert.Contains(t, out, "Warning: unknown key: timer.speed")
}

func TestNewRootCommand_Version(t *testing.T) {
	out, err := run(t, nil, "--version")

	require.NoError(t, err)
	assert.Contains(t, out, "test")
}
