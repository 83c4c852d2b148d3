// Package testutil provides shared test utilities and mock implementations.
package testutil

import (
	"fmt"
	"sync"
	"time"

	"github.com/runoshun/timeflow/internal/domain"
)

// MockClock is a test double for domain.Clock.
type MockClock struct {
	NowTime time.Time
}

// Now returns the configured time.
func (m *MockClock) Now() time.Time {
	return m.NowTime
}

// Advance moves the clock forward by d.
func (m *MockClock) Advance(d time.Duration) {
	m.NowTime = m.NowTime.Add(d)
}

// MockLogger is a test double for domain.Logger that records every line.
type MockLogger struct {
	Lines []string
	mu    sync.Mutex
}

// Ensure MockLogger implements domain.Logger interface.
var _ domain.Logger = (*MockLogger)(nil)

func (m *MockLogger) record(level, category, msg string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Lines = append(m.Lines, fmt.Sprintf("[%s] [%s] %s", level, category, msg))
}

// Debug records a debug line.
func (m *MockLogger) Debug(category, msg string) { m.record("DEBUG", category, msg) }

// Info records an info line.
func (m *MockLogger) Info(category, msg string) { m.record("INFO", category, msg) }

// Warn records a warn line.
func (m *MockLogger) Warn(category, msg string) { m.record("WARN", category, msg) }

// Error records an error line.
func (m *MockLogger) Error(category, msg string) { m.record("ERROR", category, msg) }

// Recorded returns a copy of the recorded lines.
func (m *MockLogger) Recorded() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]string(nil), m.Lines...)
}

// MockConfigLoader is a test double for domain.ConfigLoader.
type MockConfigLoader struct {
	Config  *domain.Config
	LoadErr error
}

// NewMockConfigLoader creates a new MockConfigLoader with default config.
func NewMockConfigLoader() *MockConfigLoader {
	return &MockConfigLoader{
		Config: domain.NewDefaultConfig(),
	}
}

// Ensure MockConfigLoader implements domain.ConfigLoader interface.
var _ domain.ConfigLoader = (*MockConfigLoader)(nil)

// Load returns the configured config or error.
func (m *MockConfigLoader) Load() (*domain.Config, error) {
	if m.LoadErr != nil {
		return nil, m.LoadErr
	}
	return m.Config, nil
}

// MockConfigManager is a test double for domain.ConfigManager.
// Fields are ordered to minimize memory padding.
type MockConfigManager struct {
	InitErr    error
	InitWith   *domain.Config // Config passed to the last InitConfig call
	Info       domain.ConfigInfo
	InitCalled bool
}

// NewMockConfigManager creates a new MockConfigManager.
func NewMockConfigManager() *MockConfigManager {
	return &MockConfigManager{
		Info: domain.ConfigInfo{
			Path:   "/home/test/.config/timeflow/config.toml",
			Exists: false,
		},
	}
}

// Ensure MockConfigManager implements domain.ConfigManager interface.
var _ domain.ConfigManager = (*MockConfigManager)(nil)

// ConfigInfo returns the configured config info.
func (m *MockConfigManager) ConfigInfo() domain.ConfigInfo {
	return m.Info
}

// InitConfig records the call and returns configured error.
func (m *MockConfigManager) InitConfig(cfg *domain.Config) error {
	m.InitCalled = true
	m.InitWith = cfg
	return m.InitErr
}
