package cli

import (
	"github.com/spf13/cobra"

	"github.com/runoshun/timeflow/internal/app"
)

// newTUICommand creates the tui command for launching the interactive TUI.
// It is the same as running `timeflow` without arguments.
func newTUICommand(c *app.Container) *cobra.Command {
	return &cobra.Command{
		Use:   "tui",
		Short: "Open the live timer",
		Long: `Open the live timer.

Keys:
  space, s    start or pause
  x           stop and save the session
  tab         next tag (when not running)
  shift+tab   previous tag (when not running)
  r           reload from storage
  ?           toggle help
  q           quit`,
		Args: cobra.NoArgs,
		RunE: func(_ *cobra.Command, _ []string) error {
			return launchTUIFunc(c)
		},
	}
}
