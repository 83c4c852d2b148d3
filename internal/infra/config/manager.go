package config

import (
	"os"
	"path/filepath"

	"github.com/runoshun/timeflow/internal/domain"
)

// Ensure Manager implements domain.ConfigManager.
var _ domain.ConfigManager = (*Manager)(nil)

// Manager manages the config file.
type Manager struct {
	path string // Path to config.toml
}

// NewManager creates a Manager for the file at path.
// An empty path uses the global config file.
func NewManager(path string) *Manager {
	if path == "" {
		path = DefaultConfigPath()
	}
	return &Manager{path: path}
}

// ConfigInfo returns information about the config file.
func (m *Manager) ConfigInfo() domain.ConfigInfo {
	content, err := os.ReadFile(m.path)
	if err != nil {
		return domain.ConfigInfo{
			Path:   m.path,
			Exists: false,
		}
	}
	return domain.ConfigInfo{
		Path:    m.path,
		Content: string(content),
		Exists:  true,
	}
}

// InitConfig creates the config file from the default template.
func (m *Manager) InitConfig(cfg *domain.Config) error {
	if _, err := os.Stat(m.path); err == nil {
		return domain.ErrConfigExists
	}

	// Create parent directory if it doesn't exist
	if err := os.MkdirAll(filepath.Dir(m.path), 0o700); err != nil {
		return err
	}

	content := domain.RenderConfigTemplate(cfg)

	return os.WriteFile(m.path, []byte(content), 0o600)
}
