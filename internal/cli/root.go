// Package cli provides the command-line interface for timeflow.
package cli

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/runoshun/timeflow/internal/app"
	"github.com/runoshun/timeflow/internal/tui"
)

// Command group IDs.
const (
	groupTimer = "timer"
	groupData  = "data"
	groupSetup = "setup"
)

// Global flag names. main reads them before the container is built.
const (
	FlagConfig  = "config"
	FlagVerbose = "verbose"
)

// launchTUIFunc is a function variable for launching the TUI, allowing it to be mocked in tests.
var launchTUIFunc = launchTUI

// NewRootCommand creates the root command for timeflow.
// It receives the container for dependency injection and version for display.
func NewRootCommand(c *app.Container, version string) *cobra.Command {
	root := &cobra.Command{
		Use:   "timeflow",
		Short: "Local time tracker with a Mastery Goal",
		Long: `timeflow tracks focused time against tags, keeps a long-term Mastery Goal
and a daily goal, and stores everything on this machine.

Run without arguments to open the live timer.`,
		Version: version,
		// SilenceUsage prevents usage from being printed on errors
		SilenceUsage: true,
		// SilenceErrors prevents Cobra from printing errors (we handle it in main)
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			// Skip if container is nil (e.g. in tests)
			if c == nil || c.AppConfig == nil {
				return nil
			}
			for _, w := range c.AppConfig.Warnings {
				_, _ = fmt.Fprintf(cmd.ErrOrStderr(), "Warning: %s\n", w)
			}
			return nil
		},
		RunE: func(_ *cobra.Command, _ []string) error {
			return launchTUIFunc(c)
		},
	}

	root.PersistentFlags().String(FlagConfig, "", "Config file (default: $XDG_CONFIG_HOME/timeflow/config.toml)")
	root.PersistentFlags().Bool(FlagVerbose, false, "Also write log entries to stderr")

	// Define command groups
	root.AddGroup(
		&cobra.Group{ID: groupTimer, Title: "Timer:"},
		&cobra.Group{ID: groupData, Title: "Tags, Goals and Data:"},
		&cobra.Group{ID: groupSetup, Title: "Setup:"},
	)

	timerCmds := []*cobra.Command{
		newSelectCommand(c),
		newStartCommand(c),
		newPauseCommand(c),
		newStopCommand(c),
		newStatusCommand(c),
		newTUICommand(c),
	}
	for _, cmd := range timerCmds {
		cmd.GroupID = groupTimer
	}

	dataCmds := []*cobra.Command{
		newTagCommand(c),
		newGoalCommand(c),
		newSettingsCommand(c),
		newSessionsCommand(c),
		newReportCommand(c),
		newExportCommand(c),
		newImportCommand(c),
	}
	for _, cmd := range dataCmds {
		cmd.GroupID = groupData
	}

	configCmd := newConfigCommand(c)
	configCmd.GroupID = groupSetup

	root.AddCommand(timerCmds...)
	root.AddCommand(dataCmds...)
	root.AddCommand(configCmd)

	return root
}

// launchTUI runs the live timer until the user quits.
func launchTUI(c *app.Container) error {
	if c == nil {
		return fmt.Errorf("timeflow is not initialized")
	}
	p := tea.NewProgram(tui.New(c), tea.WithAltScreen())
	_, err := p.Run()
	return err
}
