package cli

import (
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/runoshun/timeflow/internal/app"
	"github.com/runoshun/timeflow/internal/domain"
	"github.com/runoshun/timeflow/internal/usecase"
)

// newSettingsCommand creates the settings command with its subcommands.
func newSettingsCommand(c *app.Container) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "settings",
		Short: "Show or change goal settings",
		// No RunE: shows subcommand list when called without arguments
	}

	cmd.AddCommand(
		newSettingsShowCommand(c),
		newSettingsSetCommand(c),
	)
	return cmd
}

func newSettingsShowCommand(c *app.Container) *cobra.Command {
	var format string

	cmd := &cobra.Command{
		Use:   "show",
		Short: "Show goal settings",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if err := validateFormat(format, formatTable, formatJSON, formatYAML); err != nil {
				return err
			}
			out, err := c.ShowSettingsUseCase().Execute(cmd.Context(), usecase.ShowSettingsInput{})
			if err != nil {
				return err
			}
			if format != formatTable {
				return writeStructured(cmd.OutOrStdout(), format, out.Settings)
			}
			printSettings(cmd.OutOrStdout(), out.Settings, out.Tags)
			return nil
		},
	}

	cmd.Flags().StringVar(&format, "format", formatTable, "Output format: table, json or yaml")
	return cmd
}

func printSettings(w io.Writer, s domain.Settings, tags []domain.Tag) {
	name := s.MasterGoalName
	if name == "" {
		name = "(unnamed)"
	}
	goalTags := "all active tags"
	if len(s.MasterGoalTagIDs) > 0 {
		labels := make([]string, 0, len(s.MasterGoalTagIDs))
		for _, id := range s.MasterGoalTagIDs {
			labels = append(labels, domain.TagLabel(tags, domain.TagID(id)))
		}
		goalTags = strings.Join(labels, ", ")
	}

	_, _ = fmt.Fprintf(w, "Daily goal:        %s\n", formatHours(s.DailyGoalHours))
	_, _ = fmt.Fprintf(w, "Mastery Goal:      %s\n", name)
	_, _ = fmt.Fprintf(w, "Mastery Goal size: %s\n", formatHours(s.MasterGoalHours))
	_, _ = fmt.Fprintf(w, "Goal tags:         %s\n", goalTags)
}

func newSettingsSetCommand(c *app.Container) *cobra.Command {
	var opts struct {
		DailyHours string
		GoalName   string
		GoalHours  string
		ToggleTags []string
	}

	cmd := &cobra.Command{
		Use:   "set",
		Short: "Change goal settings",
		Long: `Change goal settings. Only the given flags change.
Hour values that are negative or not numbers are stored as 0.

Examples:
  timeflow settings set --daily-hours 2.5
  timeflow settings set --goal-name Piano --goal-hours 1000
  timeflow settings set --toggle-tag study --toggle-tag work`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			var in usecase.UpdateSettingsInput
			if cmd.Flags().Changed("daily-hours") {
				in.DailyGoalHours = &opts.DailyHours
			}
			if cmd.Flags().Changed("goal-name") {
				in.MasterGoalName = &opts.GoalName
			}
			if cmd.Flags().Changed("goal-hours") {
				in.MasterGoalHours = &opts.GoalHours
			}
			in.ToggleTagIDs = opts.ToggleTags

			out, err := c.UpdateSettingsUseCase().Execute(cmd.Context(), in)
			if err != nil {
				return err
			}
			tags, _ := c.Tags.Load()
			printSettings(cmd.OutOrStdout(), out.Settings, tags)
			return nil
		},
	}

	cmd.Flags().StringVar(&opts.DailyHours, "daily-hours", "", "Daily goal in hours")
	cmd.Flags().StringVar(&opts.GoalName, "goal-name", "", "Mastery Goal name")
	cmd.Flags().StringVar(&opts.GoalHours, "goal-hours", "", "Mastery Goal size in hours")
	cmd.Flags().StringArrayVar(&opts.ToggleTags, "toggle-tag", nil, "Add or remove a goal tag (can specify multiple)")
	return cmd
}
