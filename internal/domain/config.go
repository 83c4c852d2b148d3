package domain

import (
	"bytes"
	_ "embed"
	"fmt"
	"path/filepath"
	"strings"
	"text/template"
	"time"
)

//go:embed config_template.toml
var configTemplateContent string

// Config represents the application configuration.
// Fields are ordered to minimize memory padding.
type Config struct {
	Warnings []string      `toml:"-"`
	Storage  StorageConfig `toml:"storage"`
	Timer    TimerConfig   `toml:"timer"`
	Log      LogConfig     `toml:"log"`
	Goal     GoalConfig    `toml:"goal"`
}

// StorageConfig holds settings from the [storage] section.
type StorageConfig struct {
	Dir string `toml:"dir,omitempty"` // Data directory; empty uses the XDG data home
}

// TimerConfig holds settings from the [timer] section.
type TimerConfig struct {
	TickInterval string `toml:"tick_interval,omitempty"` // Display refresh interval, e.g. "500ms"
}

// GoalConfig holds settings from the [goal] section.
type GoalConfig struct {
	Milestones []float64 `toml:"milestones,omitempty"` // Cumulative-hour thresholds
}

// LogConfig holds logging settings from the [log] section.
type LogConfig struct {
	Level string `toml:"level,omitempty"` // Log level: debug, info, warn, error
}

// Default configuration values.
const (
	DefaultLogLevel     = "info"
	DefaultTickInterval = 500 * time.Millisecond
)

// Directory and file names for timeflow.
const (
	AppDirName     = "timeflow"     // Directory name under the XDG config and data homes
	ConfigFileName = "config.toml"  // Config file name
	StoreDirName   = "store"        // Key/value files live here, one per key
	LogDirName     = "logs"         // Log files live here
	LogFileName    = "timeflow.log" // Log file name
)

// GlobalConfigDir returns the config directory.
// configHome is typically XDG_CONFIG_HOME or ~/.config (resolved by caller).
func GlobalConfigDir(configHome string) string {
	return filepath.Join(configHome, AppDirName)
}

// GlobalConfigPath returns the config file path.
// configHome is typically XDG_CONFIG_HOME or ~/.config (resolved by caller).
func GlobalConfigPath(configHome string) string {
	return filepath.Join(GlobalConfigDir(configHome), ConfigFileName)
}

// DefaultDataDir returns the data directory under dataHome.
// dataHome is typically XDG_DATA_HOME or ~/.local/share (resolved by caller).
func DefaultDataDir(dataHome string) string {
	return filepath.Join(dataHome, AppDirName)
}

// StoreDir returns the key/value directory inside dataDir.
func StoreDir(dataDir string) string {
	return filepath.Join(dataDir, StoreDirName)
}

// LogPath returns the log file path inside dataDir.
func LogPath(dataDir string) string {
	return filepath.Join(dataDir, LogDirName, LogFileName)
}

// NewDefaultConfig returns a Config with default values.
func NewDefaultConfig() *Config {
	return &Config{
		Timer: TimerConfig{TickInterval: DefaultTickInterval.String()},
		Goal:  GoalConfig{Milestones: DefaultMilestones()},
		Log:   LogConfig{Level: DefaultLogLevel},
	}
}

// TickInterval returns the parsed timer tick interval, falling back to the default
// for empty, malformed or non-positive values.
func (c *Config) TickInterval() time.Duration {
	d, err := time.ParseDuration(strings.TrimSpace(c.Timer.TickInterval))
	if err != nil || d <= 0 {
		return DefaultTickInterval
	}
	return d
}

// Milestones returns the configured milestones, or the defaults when none are set.
func (c *Config) Milestones() []float64 {
	if len(c.Goal.Milestones) == 0 {
		return DefaultMilestones()
	}
	return c.Goal.Milestones
}

// templateData holds all data for rendering the config template.
type templateData struct {
	DataDir      string
	TickInterval string
	LogLevel     string
	Milestones   string
}

// RenderConfigTemplate renders a commented config file from the given Config.
func RenderConfigTemplate(cfg *Config) string {
	milestones := make([]string, 0, len(cfg.Milestones()))
	for _, m := range cfg.Milestones() {
		milestones = append(milestones, fmt.Sprintf("%g", m))
	}

	data := templateData{
		DataDir:      cfg.Storage.Dir,
		TickInterval: cfg.TickInterval().String(),
		LogLevel:     cfg.Log.Level,
		Milestones:   strings.Join(milestones, ", "),
	}
	if data.LogLevel == "" {
		data.LogLevel = DefaultLogLevel
	}

	tmpl, err := template.New("config").Delims("<<", ">>").Parse(configTemplateContent)
	if err != nil {
		// Should never happen with embedded template
		panic(fmt.Sprintf("failed to parse config template: %v", err))
	}

	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, data); err != nil {
		panic(fmt.Sprintf("failed to execute config template: %v", err))
	}

	return buf.String()
}

// ConfigInfo describes a config file on disk.
type ConfigInfo struct {
	Path    string
	Content string
	Exists  bool
}
