package usecase

import (
	"context"

	"github.com/runoshun/timeflow/internal/domain"
)

// ShowConfigInput contains the input for the ShowConfig use case.
type ShowConfigInput struct{}

// ShowConfigOutput contains the output of the ShowConfig use case.
type ShowConfigOutput struct {
	Effective *domain.Config    // Defaults overlaid by the config file
	File      domain.ConfigInfo // Config file info
	DataDir   string            // Resolved data directory
}

// ShowConfig displays configuration information.
type ShowConfig struct {
	configManager domain.ConfigManager
	configLoader  domain.ConfigLoader
	dataDir       string
}

// NewShowConfig creates a new ShowConfig use case.
func NewShowConfig(configManager domain.ConfigManager, configLoader domain.ConfigLoader, dataDir string) *ShowConfig {
	return &ShowConfig{
		configManager: configManager,
		configLoader:  configLoader,
		dataDir:       dataDir,
	}
}

// Execute retrieves the config file and the effective configuration.
func (uc *ShowConfig) Execute(_ context.Context, _ ShowConfigInput) (*ShowConfigOutput, error) {
	cfg, err := uc.configLoader.Load()
	if err != nil {
		return nil, err
	}
	return &ShowConfigOutput{
		File:      uc.configManager.ConfigInfo(),
		Effective: cfg,
		DataDir:   uc.dataDir,
	}, nil
}
