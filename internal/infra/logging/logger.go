// Package logging provides file-based logging for timeflow.
// Entries go to <data_dir>/logs/timeflow.log and, optionally, to a mirror writer.
package logging

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/runoshun/timeflow/internal/domain"
)

// Ensure Logger implements domain.Logger interface.
var _ domain.Logger = (*Logger)(nil)

// Logger writes categorized entries to a log file.
// Fields are ordered to minimize memory padding.
type Logger struct {
	file   *os.File
	mirror io.Writer
	now    func() time.Time
	path   string
	mu     sync.Mutex
	level  slog.Level
}

// New creates a Logger writing to the log file inside dataDir.
// If dataDir is empty, file logging is disabled.
func New(dataDir string, level slog.Level) *Logger {
	l := &Logger{level: level, now: time.Now}
	if dataDir != "" {
		l.path = domain.LogPath(dataDir)
	}
	return l
}

// WithMirror additionally copies every entry to w (e.g. stderr for --verbose).
func (l *Logger) WithMirror(w io.Writer) *Logger {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.mirror = w
	return l
}

// Path returns the log file path, or "" when file logging is disabled.
func (l *Logger) Path() string {
	return l.path
}

// ParseLevel parses a log level string into slog.Level.
func ParseLevel(levelStr string) slog.Level {
	switch strings.ToLower(strings.TrimSpace(levelStr)) {
	case "debug":
		return slog.LevelDebug
	case "info":
		return slog.LevelInfo
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// ensureFile opens or returns the log file. Callers hold l.mu.
func (l *Logger) ensureFile() (*os.File, error) {
	if l.file != nil {
		return l.file, nil
	}

	if err := os.MkdirAll(filepath.Dir(l.path), 0o750); err != nil {
		return nil, fmt.Errorf("create logs directory: %w", err)
	}

	f, err := os.OpenFile(l.path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o640) //nolint:gosec // Log file readable by owner and group
	if err != nil {
		return nil, fmt.Errorf("open log file: %w", err)
	}
	l.file = f
	return f, nil
}

// Close closes the log file.
func (l *Logger) Close() error {
	l.mu.Lock()
	defer l.mu.Unlock()

	if l.file == nil {
		return nil
	}
	err := l.file.Close()
	l.file = nil
	return err
}

// formatLog formats a log entry.
// Format: [2025-12-30 09:32:51] [INFO] [timer] message
func formatLog(t time.Time, level slog.Level, category, msg string) string {
	return fmt.Sprintf("[%s] [%s] [%s] %s\n",
		t.Format("2006-01-02 15:04:05"),
		levelToString(level),
		category,
		msg,
	)
}

func levelToString(level slog.Level) string {
	switch level {
	case slog.LevelDebug:
		return "DEBUG"
	case slog.LevelInfo:
		return "INFO"
	case slog.LevelWarn:
		return "WARN"
	case slog.LevelError:
		return "ERROR"
	default:
		return "INFO"
	}
}

func (l *Logger) log(level slog.Level, category, msg string) {
	if level < l.level {
		return
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	if l.path == "" && l.mirror == nil {
		return // Logging disabled
	}

	entry := formatLog(l.now(), level, category, msg)

	if l.path != "" {
		if f, err := l.ensureFile(); err == nil {
			_, _ = io.WriteString(f, entry)
		}
	}
	if l.mirror != nil {
		_, _ = io.WriteString(l.mirror, entry)
	}
}

// Info logs an info message.
func (l *Logger) Info(category, msg string) {
	l.log(slog.LevelInfo, category, msg)
}

// Debug logs a debug message.
func (l *Logger) Debug(category, msg string) {
	l.log(slog.LevelDebug, category, msg)
}

// Warn logs a warning message.
func (l *Logger) Warn(category, msg string) {
	l.log(slog.LevelWarn, category, msg)
}

// Error logs an error message.
func (l *Logger) Error(category, msg string) {
	l.log(slog.LevelError, category, msg)
}
