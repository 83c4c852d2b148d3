package cli

import (
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/spf13/cobra"

	"github.com/runoshun/timeflow/internal/app"
	"github.com/runoshun/timeflow/internal/domain"
	"github.com/runoshun/timeflow/internal/usecase"
)

// newSelectCommand creates the select command for choosing the timer's tag.
func newSelectCommand(c *app.Container) *cobra.Command {
	var clearSelection bool

	cmd := &cobra.Command{
		Use:   "select [tag-id]",
		Short: "Choose the tag to track",
		Long: `Choose the tag for the next interval, or for the paused one.
The tag cannot be changed while the timer is running.

Examples:
  timeflow select study
  timeflow select --clear`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if !clearSelection && len(args) == 0 {
				return errors.New("tag id is required (or use --clear)")
			}
			in := usecase.SelectTagInput{Clear: clearSelection}
			if !clearSelection {
				in.TagID = args[0]
			}
			out, err := c.SelectTagUseCase().Execute(cmd.Context(), in)
			if err != nil {
				return err
			}
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Selected %s\n", out.Label)
			return nil
		},
	}

	cmd.Flags().BoolVar(&clearSelection, "clear", false, "Clear the selection")
	return cmd
}

// newStartCommand creates the start command.
func newStartCommand(c *app.Container) *cobra.Command {
	var tagID string

	cmd := &cobra.Command{
		Use:   "start",
		Short: "Start or resume the timer",
		Long: `Start a new interval for the selected tag, or resume a paused one.

Examples:
  timeflow start --tag study
  timeflow start`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			out, err := c.StartTimerUseCase().Execute(cmd.Context(), usecase.StartTimerInput{TagID: tagID})
			if err != nil {
				return err
			}
			verb := "Started"
			if out.Resumed {
				verb = "Resumed"
			}
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "%s %s\n", verb, out.Label)
			return nil
		},
	}

	cmd.Flags().StringVar(&tagID, "tag", "", "Select this tag before starting")
	return cmd
}

// newPauseCommand creates the pause command.
func newPauseCommand(c *app.Container) *cobra.Command {
	return &cobra.Command{
		Use:   "pause",
		Short: "Pause the running timer",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			out, err := c.PauseTimerUseCase().Execute(cmd.Context(), usecase.PauseTimerInput{})
			if err != nil {
				return err
			}
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Paused at %s\n", domain.FormatClock(out.ElapsedSeconds))
			return nil
		},
	}
}

// newStopCommand creates the stop command.
func newStopCommand(c *app.Container) *cobra.Command {
	return &cobra.Command{
		Use:   "stop",
		Short: "Stop the timer and save the session",
		Long: `Stop the timer and append the interval to the session list.
Stopping an idle timer does nothing. An interval with no tracked time is discarded.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			out, err := c.StopTimerUseCase().Execute(cmd.Context(), usecase.StopTimerInput{})
			w := cmd.OutOrStdout()
			if out != nil && out.Session != nil {
				_, _ = fmt.Fprintf(w, "Saved %s for %s\n",
					domain.FormatClock(out.Session.DurationSeconds), out.Label)
			}
			if err != nil {
				return err
			}
			if out.Session == nil {
				_, _ = fmt.Fprintln(w, "Nothing to save")
			}
			return nil
		},
	}
}

// statusJSON is the machine-readable form of the timer status.
type statusJSON struct {
	StartedAt      *time.Time `json:"startedAt"`
	State          string     `json:"state"`
	TagID          string     `json:"tagId"`
	Label          string     `json:"label"`
	ElapsedSeconds int64      `json:"elapsedSeconds"`
}

// newStatusCommand creates the status command.
func newStatusCommand(c *app.Container) *cobra.Command {
	var opts struct {
		JSON  bool
		Watch bool
	}

	cmd := &cobra.Command{
		Use:   "status",
		Short: "Show the timer state",
		Long: `Show the timer state, the selected tag and the elapsed time.

With --watch the status is refreshed until the timer stops running or
the command is interrupted. Changes made by another timeflow process are
picked up on every refresh.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			w := cmd.OutOrStdout()
			if opts.Watch {
				return c.WatchTimerUseCase().Execute(cmd.Context(), usecase.WatchTimerInput{
					Interval: c.AppConfig.TickInterval(),
					OnTick: func(out *usecase.ShowStatusOutput) {
						printStatusLine(w, out)
					},
				})
			}

			out, err := c.ShowStatusUseCase().Execute(cmd.Context(), usecase.ShowStatusInput{})
			if err != nil {
				return err
			}
			if opts.JSON {
				return writeJSON(w, statusJSON{
					StartedAt:      out.StartedAt,
					State:          out.State.String(),
					TagID:          out.TagID,
					Label:          out.Label,
					ElapsedSeconds: out.ElapsedSeconds,
				})
			}
			printStatus(w, out)
			return nil
		},
	}

	cmd.Flags().BoolVar(&opts.JSON, "json", false, "Output in JSON format")
	cmd.Flags().BoolVarP(&opts.Watch, "watch", "w", false, "Refresh until the timer stops running")
	return cmd
}

func printStatus(w io.Writer, out *usecase.ShowStatusOutput) {
	_, _ = fmt.Fprintf(w, "State:   %s\n", renderState(out.State))
	_, _ = fmt.Fprintf(w, "Tag:     %s\n", out.Label)
	_, _ = fmt.Fprintf(w, "Elapsed: %s\n", domain.FormatClock(out.ElapsedSeconds))
	if out.StartedAt != nil {
		_, _ = fmt.Fprintf(w, "Started: %s\n", out.StartedAt.Local().Format("2006-01-02 15:04:05"))
	}
}

func printStatusLine(w io.Writer, out *usecase.ShowStatusOutput) {
	_, _ = fmt.Fprintf(w, "%s  %s  %s\n",
		domain.FormatClock(out.ElapsedSeconds), renderState(out.State), truncateLabel(out.Label))
}
