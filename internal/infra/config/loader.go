// Package config provides configuration loading functionality.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/pelletier/go-toml/v2"

	"github.com/runoshun/timeflow/internal/domain"
)

// DataDirEnv overrides the configured data directory when set.
const DataDirEnv = "TIMEFLOW_DATA_DIR"

// Ensure Loader implements domain.ConfigLoader.
var _ domain.ConfigLoader = (*Loader)(nil)

// Loader loads configuration from a TOML file.
type Loader struct {
	path string // Path to config.toml
}

// NewLoader creates a Loader for the file at path.
// An empty path uses the global config file.
func NewLoader(path string) *Loader {
	if path == "" {
		path = DefaultConfigPath()
	}
	return &Loader{path: path}
}

// Path returns the config file path the loader reads.
func (l *Loader) Path() string {
	return l.path
}

// DefaultConfigPath returns the global config file path.
func DefaultConfigPath() string {
	configHome := os.Getenv("XDG_CONFIG_HOME")
	if configHome == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return ""
		}
		configHome = filepath.Join(home, ".config")
	}
	return domain.GlobalConfigPath(configHome)
}

// Load returns the effective configuration: defaults overlaid by the config file.
// A missing file is not an error.
func (l *Loader) Load() (*domain.Config, error) {
	base := domain.NewDefaultConfig()
	if l.path == "" {
		return base, nil
	}

	file, err := l.loadFile(l.path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return base, nil
		}
		return nil, fmt.Errorf("load config %s: %w", l.path, err)
	}

	return mergeConfigs(base, file), nil
}

// loadFile loads a configuration from a file.
func (l *Loader) loadFile(path string) (*domain.Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var raw map[string]any
	if err := toml.Unmarshal(data, &raw); err != nil {
		return nil, err
	}

	return convertRawToDomainConfig(raw), nil
}

// convertRawToDomainConfig converts the raw map to domain config and collects warnings.
func convertRawToDomainConfig(raw map[string]any) *domain.Config {
	res := &domain.Config{}
	var warnings []string

	for section, value := range raw {
		m, ok := value.(map[string]any)
		if !ok {
			warnings = append(warnings, fmt.Sprintf("unknown section: %s", section))
			continue
		}
		switch section {
		case "storage":
			for k, v := range m {
				switch k {
				case "dir":
					if s, ok := v.(string); ok {
						res.Storage.Dir = s
					}
				default:
					warnings = append(warnings, fmt.Sprintf("unknown key in [storage]: %s", k))
				}
			}
		case "timer":
			for k, v := range m {
				switch k {
				case "tick_interval":
					if s, ok := v.(string); ok {
						res.Timer.TickInterval = s
					}
				default:
					warnings = append(warnings, fmt.Sprintf("unknown key in [timer]: %s", k))
				}
			}
		case "goal":
			for k, v := range m {
				switch k {
				case "milestones":
					milestones, ok := parseMilestones(v)
					if !ok {
						warnings = append(warnings, "invalid value in [goal]: milestones must be a list of positive numbers")
						continue
					}
					res.Goal.Milestones = milestones
				default:
					warnings = append(warnings, fmt.Sprintf("unknown key in [goal]: %s", k))
				}
			}
		case "log":
			for k, v := range m {
				switch k {
				case "level":
					if s, ok := v.(string); ok {
						res.Log.Level = s
					}
				default:
					warnings = append(warnings, fmt.Sprintf("unknown key in [log]: %s", k))
				}
			}
		default:
			warnings = append(warnings, fmt.Sprintf("unknown section: %s", section))
		}
	}

	sort.Strings(warnings)
	res.Warnings = warnings
	return res
}

// parseMilestones accepts a TOML array of integers or floats.
func parseMilestones(v any) ([]float64, bool) {
	items, ok := v.([]any)
	if !ok {
		return nil, false
	}
	out := make([]float64, 0, len(items))
	for _, item := range items {
		var f float64
		switch n := item.(type) {
		case int64:
			f = float64(n)
		case float64:
			f = n
		default:
			return nil, false
		}
		if f <= 0 {
			return nil, false
		}
		out = append(out, f)
	}
	sort.Float64s(out)
	return out, true
}

// mergeConfigs merges two configs, with override taking precedence.
func mergeConfigs(base, override *domain.Config) *domain.Config {
	result := &domain.Config{
		Storage:  base.Storage,
		Timer:    base.Timer,
		Goal:     base.Goal,
		Log:      base.Log,
		Warnings: append([]string{}, base.Warnings...),
	}

	// Add override warnings
	result.Warnings = append(result.Warnings, override.Warnings...)

	if override.Storage.Dir != "" {
		result.Storage.Dir = override.Storage.Dir
	}
	if override.Timer.TickInterval != "" {
		result.Timer.TickInterval = override.Timer.TickInterval
	}
	if len(override.Goal.Milestones) > 0 {
		result.Goal.Milestones = override.Goal.Milestones
	}
	if override.Log.Level != "" {
		result.Log.Level = override.Log.Level
	}

	return result
}

// ResolveDataDir returns the data directory: $TIMEFLOW_DATA_DIR, then the configured
// [storage].dir (with a leading ~ expanded), then $XDG_DATA_HOME/timeflow.
func ResolveDataDir(cfg *domain.Config) string {
	if dir := os.Getenv(DataDirEnv); dir != "" {
		return expandHome(dir)
	}
	if cfg != nil && cfg.Storage.Dir != "" {
		return expandHome(cfg.Storage.Dir)
	}
	dataHome := os.Getenv("XDG_DATA_HOME")
	if dataHome == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			home = "."
		}
		dataHome = filepath.Join(home, ".local", "share")
	}
	return domain.DefaultDataDir(dataHome)
}

func expandHome(path string) string {
	if path != "~" && !strings.HasPrefix(path, "~/") {
		return path
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return path
	}
	return filepath.Join(home, strings.TrimPrefix(path, "~"))
}
