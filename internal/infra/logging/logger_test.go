package logging

import (
	"bytes"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/runoshun/timeflow/internal/domain"
)

func TestParseLevel(t *testing.T) {
	tests := []struct {
		input    string
		expected slog.Level
	}{
		{"debug", slog.LevelDebug},
		{"info", slog.LevelInfo},
		{"warn", slog.LevelWarn},
		{"WARNING", slog.LevelWarn},
		{"error", slog.LevelError},
		{"unknown", slog.LevelInfo}, // default
		{"", slog.LevelInfo},        // default
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got := ParseLevel(tt.input)
			assert.Equal(t, tt.expected, got)
		})
	}
}

func TestLogger_Info(t *testing.T) {
	// Setup
	dataDir := t.TempDir()
	logger := New(dataDir, slog.LevelInfo)
	defer func() { _ = logger.Close() }()

	// Execute
	logger.Info("timer", "session saved")

	// Verify
	content, err := os.ReadFile(domain.LogPath(dataDir))
	require.NoError(t, err)
	assert.Contains(t, string(content), "[INFO]")
	assert.Contains(t, string(content), "[timer]")
	assert.Contains(t, string(content), "session saved")
}

func TestLogger_LevelFiltering(t *testing.T) {
	// Setup
	dataDir := t.TempDir()
	logger := New(dataDir, slog.LevelWarn) // Only warn and above
	defer func() { _ = logger.Close() }()

	// Execute
	logger.Debug("store", "debug message")
	logger.Info("store", "info message")
	logger.Warn("store", "warn message")
	logger.Error("store", "error message")

	// Verify
	content, err := os.ReadFile(domain.LogPath(dataDir))
	require.NoError(t, err)
	assert.NotContains(t, string(content), "debug message")
	assert.NotContains(t, string(content), "info message")
	assert.Contains(t, string(content), "warn message")
	assert.Contains(t, string(content), "error message")
}

func TestLogger_DisabledWhenEmptyDataDir(t *testing.T) {
	logger := New("", slog.LevelDebug)
	defer func() { _ = logger.Close() }()

	// Should not panic or create files
	logger.Info("timer", "test message")
	logger.Error("timer", "error message")

	assert.Empty(t, logger.Path())
}

func TestLogger_LogFormat(t *testing.T) {
	// Setup
	dataDir := t.TempDir()
	logger := New(dataDir, slog.LevelInfo)
	logger.now = func() time.Time { return time.Date(2025, 12, 30, 9, 32, 51, 0, time.Local) }
	defer func() { _ = logger.Close() }()

	// Execute
	logger.Info("tag", `tag created: "Reading"`)

	// Verify
	content, err := os.ReadFile(domain.LogPath(dataDir))
	require.NoError(t, err)

	lines := strings.Split(strings.TrimSpace(string(content)), "\n")
	require.Len(t, lines, 1)
	assert.Equal(t, `[2025-12-30 09:32:51] [INFO] [tag] tag created: "Reading"`, lines[0])
}

func TestLogger_Mirror(t *testing.T) {
	var buf bytes.Buffer
	logger := New("", slog.LevelInfo).WithMirror(&buf)

	logger.Warn("store", "quota exceeded")

	assert.Contains(t, buf.String(), "[WARN] [store] quota exceeded")
}

func TestLogger_CreateLogsDir(t *testing.T) {
	// Setup - dataDir exists but logs subdir doesn't
	dataDir := t.TempDir()
	logsDir := filepath.Join(dataDir, domain.LogDirName)
	_, err := os.Stat(logsDir)
	assert.True(t, os.IsNotExist(err))

	logger := New(dataDir, slog.LevelInfo)
	logger.Info("timer", "test message")
	require.NoError(t, logger.Close())

	stat, err := os.Stat(logsDir)
	require.NoError(t, err)
	assert.True(t, stat.IsDir())
	assert.FileExists(t, logger.Path())
}
