// Package app provides the dependency injection container for the application.
package app

import (
	"fmt"
	"io"

	"github.com/runoshun/timeflow/internal/domain"
	"github.com/runoshun/timeflow/internal/infra/config"
	"github.com/runoshun/timeflow/internal/infra/kvrepo"
	"github.com/runoshun/timeflow/internal/infra/kvstore"
	"github.com/runoshun/timeflow/internal/infra/logging"
	"github.com/runoshun/timeflow/internal/usecase"
)

// Options controls how New resolves configuration.
type Options struct {
	LogMirror  io.Writer // Also write log entries here (--verbose)
	ConfigPath string    // Config file; empty uses the global config path
	DataDir    string    // Overrides the resolved data directory
}

// Config holds the resolved application paths.
type Config struct {
	ConfigPath string // Path to config.toml
	DataDir    string // Root of persistent data
	StoreDir   string // Directory holding one JSON file per storage key
	LogPath    string // Path to timeflow.log
}

// newConfig derives all paths from the data directory.
func newConfig(configPath, dataDir string) Config {
	return Config{
		ConfigPath: configPath,
		DataDir:    dataDir,
		StoreDir:   domain.StoreDir(dataDir),
		LogPath:    domain.LogPath(dataDir),
	}
}

// Container provides dependency injection for the application.
// It holds all port implementations and provides factory methods for use cases.
type Container struct {
	// Ports (interfaces bound to implementations)
	Store         domain.KVStore
	Sessions      domain.SessionRepository
	Runtime       domain.RuntimeRepository
	Tags          domain.TagRepository
	Settings      domain.SettingsRepository
	Clock         domain.Clock
	ConfigLoader  domain.ConfigLoader
	ConfigManager domain.ConfigManager
	Logger        domain.Logger

	// Pointer fields
	AppConfig *domain.Config
	timer     *usecase.Timer
	closer    io.Closer

	// Configuration
	Config Config
}

// New creates a new Container backed by the file store in the resolved data directory.
// An unreadable config file is reported through AppConfig.Warnings and defaults are used.
func New(opts Options) (*Container, error) {
	configLoader := config.NewLoader(opts.ConfigPath)
	appConfig, err := configLoader.Load()
	if err != nil {
		appConfig = domain.NewDefaultConfig()
		appConfig.Warnings = append(appConfig.Warnings, err.Error())
	}

	dataDir := opts.DataDir
	if dataDir == "" {
		dataDir = config.ResolveDataDir(appConfig)
	}
	if dataDir == "" {
		return nil, fmt.Errorf("cannot determine data directory; set %s", config.DataDirEnv)
	}
	cfg := newConfig(configLoader.Path(), dataDir)

	logger := logging.New(dataDir, logging.ParseLevel(appConfig.Log.Level))
	if opts.LogMirror != nil {
		logger.WithMirror(opts.LogMirror)
	}
	for _, w := range appConfig.Warnings {
		logger.Warn("config", w)
	}

	c := NewWithDeps(cfg, kvstore.NewFile(cfg.StoreDir), domain.RealClock{}, logger)
	c.ConfigLoader = configLoader
	c.ConfigManager = config.NewManager(cfg.ConfigPath)
	c.AppConfig = appConfig
	c.closer = logger
	return c, nil
}

// NewWithDeps creates a new Container with custom dependencies for testing.
func NewWithDeps(cfg Config, store domain.KVStore, clock domain.Clock, logger domain.Logger) *Container {
	repos := kvrepo.New(store)
	return &Container{
		Store:     store,
		Sessions:  repos.Sessions,
		Runtime:   repos.Runtime,
		Tags:      repos.Tags,
		Settings:  repos.Settings,
		Clock:     clock,
		Logger:    logger,
		AppConfig: domain.NewDefaultConfig(),
		Config:    cfg,
	}
}

// Close releases the log file.
func (c *Container) Close() error {
	if c.closer == nil {
		return nil
	}
	return c.closer.Close()
}

// Timer returns the shared timer, recovering its state from storage on first use.
func (c *Container) Timer() *usecase.Timer {
	if c.timer == nil {
		c.timer = usecase.NewTimer(c.Sessions, c.Runtime, c.Clock, c.Logger)
	}
	return c.timer
}

// UseCase factory methods

// SelectTagUseCase returns a new SelectTag use case.
func (c *Container) SelectTagUseCase() *usecase.SelectTag {
	return usecase.NewSelectTag(c.Timer(), c.Tags)
}

// StartTimerUseCase returns a new StartTimer use case.
func (c *Container) StartTimerUseCase() *usecase.StartTimer {
	return usecase.NewStartTimer(c.Timer(), c.Tags)
}

// PauseTimerUseCase returns a new PauseTimer use case.
func (c *Container) PauseTimerUseCase() *usecase.PauseTimer {
	return usecase.NewPauseTimer(c.Timer())
}

// StopTimerUseCase returns a new StopTimer use case.
func (c *Container) StopTimerUseCase() *usecase.StopTimer {
	return usecase.NewStopTimer(c.Timer(), c.Tags)
}

// ShowStatusUseCase returns a new ShowStatus use case.
func (c *Container) ShowStatusUseCase() *usecase.ShowStatus {
	return usecase.NewShowStatus(c.Timer(), c.Tags, c.Clock)
}

// WatchTimerUseCase returns a new WatchTimer use case.
func (c *Container) WatchTimerUseCase() *usecase.WatchTimer {
	return usecase.NewWatchTimer(c.Timer(), c.ShowStatusUseCase())
}

// ListTagsUseCase returns a new ListTags use case.
func (c *Container) ListTagsUseCase() *usecase.ListTags {
	return usecase.NewListTags(c.Tags, c.Settings, c.Logger)
}

// CreateTagUseCase returns a new CreateTag use case.
func (c *Container) CreateTagUseCase() *usecase.CreateTag {
	return usecase.NewCreateTag(c.Tags, c.Clock, c.Logger)
}

// UpdateTagUseCase returns a new UpdateTag use case.
func (c *Container) UpdateTagUseCase() *usecase.UpdateTag {
	return usecase.NewUpdateTag(c.Tags, c.Logger)
}

// DeleteTagUseCase returns a new DeleteTag use case.
func (c *Container) DeleteTagUseCase() *usecase.DeleteTag {
	return usecase.NewDeleteTag(c.Tags, c.Settings, c.Logger)
}

// ShowSettingsUseCase returns a new ShowSettings use case.
func (c *Container) ShowSettingsUseCase() *usecase.ShowSettings {
	return usecase.NewShowSettings(c.Settings, c.Tags, c.Logger)
}

// UpdateSettingsUseCase returns a new UpdateSettings use case.
func (c *Container) UpdateSettingsUseCase() *usecase.UpdateSettings {
	return usecase.NewUpdateSettings(c.Settings, c.Logger)
}

// ShowGoalUseCase returns a new ShowGoal use case.
func (c *Container) ShowGoalUseCase() *usecase.ShowGoal {
	return usecase.NewShowGoal(c.Timer(), c.Tags, c.Settings, c.Clock, c.Logger, c.AppConfig.Milestones())
}

// ExportBackupUseCase returns a new ExportBackup use case.
func (c *Container) ExportBackupUseCase() *usecase.ExportBackup {
	return usecase.NewExportBackup(c.Timer(), c.Tags, c.Settings, c.Clock, c.Logger)
}

// ImportBackupUseCase returns a new ImportBackup use case.
func (c *Container) ImportBackupUseCase() *usecase.ImportBackup {
	return usecase.NewImportBackup(c.Timer(), c.Tags, c.Settings, c.Logger)
}

// ShowReportUseCase returns a new ShowReport use case.
func (c *Container) ShowReportUseCase() *usecase.ShowReport {
	return usecase.NewShowReport(c.Timer(), c.Tags, c.Logger)
}

// ListSessionsUseCase returns a new ListSessions use case.
func (c *Container) ListSessionsUseCase() *usecase.ListSessions {
	return usecase.NewListSessions(c.Timer(), c.Tags, c.Logger)
}

// ShowConfigUseCase returns a new ShowConfig use case.
func (c *Container) ShowConfigUseCase() *usecase.ShowConfig {
	return usecase.NewShowConfig(c.ConfigManager, c.ConfigLoader, c.Config.DataDir)
}

// InitConfigUseCase returns a new InitConfig use case.
func (c *Container) InitConfigUseCase() *usecase.InitConfig {
	return usecase.NewInitConfig(c.ConfigManager)
}
