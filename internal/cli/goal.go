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

// trendBarWidth is the width of the widest bar in the trend chart.
const trendBarWidth = 20

// newGoalCommand creates the goal command.
func newGoalCommand(c *app.Container) *cobra.Command {
	var opts struct {
		Format string
		JSON   bool
		YAML   bool
	}

	cmd := &cobra.Command{
		Use:   "goal",
		Short: "Show Mastery Goal and daily progress",
		Long: `Show progress toward the Mastery Goal and the daily goal, including the
running interval: cumulative hours, the next milestone, today's top tag and
the last seven days.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			format := opts.Format
			if opts.JSON {
				format = formatJSON
			}
			if opts.YAML {
				format = formatYAML
			}
			if err := validateFormat(format, formatTable, formatJSON, formatYAML); err != nil {
				return err
			}
			out, err := c.ShowGoalUseCase().Execute(cmd.Context(), usecase.ShowGoalInput{})
			if err != nil {
				return err
			}
			if format != formatTable {
				return writeStructured(cmd.OutOrStdout(), format, out.View)
			}
			printGoal(cmd.OutOrStdout(), out.View)
			return nil
		},
	}

	cmd.Flags().StringVar(&opts.Format, "format", formatTable, "Output format: table, json or yaml")
	cmd.Flags().BoolVar(&opts.JSON, "json", false, "Shorthand for --format json")
	cmd.Flags().BoolVar(&opts.YAML, "yaml", false, "Shorthand for --format yaml")
	cmd.MarkFlagsMutuallyExclusive("json", "yaml")
	return cmd
}

func printGoal(w io.Writer, v domain.GoalView) {
	name := v.GoalName
	if name == "" {
		name = "Mastery Goal"
	}
	_, _ = fmt.Fprintf(w, "%s\n", name)
	_, _ = fmt.Fprintf(w, "  %s of %s (%.1f%%)\n",
		domain.FormatHoursMinutes(v.CumulativeSeconds), formatHours(v.TargetHours), v.ProgressPercent)
	if v.LiveSeconds > 0 {
		_, _ = fmt.Fprintf(w, "  includes %s in progress\n", domain.FormatHoursMinutes(v.LiveSeconds))
	}
	if v.NextMilestone != nil {
		_, _ = fmt.Fprintf(w, "  Next milestone: %s (%.1fh to go)\n",
			formatHours(v.NextMilestone.Hours), v.NextMilestone.RemainingHours)
	}

	_, _ = fmt.Fprintln(w)
	_, _ = fmt.Fprintf(w, "Today\n")
	_, _ = fmt.Fprintf(w, "  %s of %s (%.1f%%)\n",
		domain.FormatHoursMinutes(v.TodaySeconds), domain.FormatHoursMinutes(v.DailyGoalSeconds), v.DailyPercent)
	if v.TopTag != nil {
		_, _ = fmt.Fprintf(w, "  Top tag: %s (%.0f%%)\n", truncateLabel(v.TopTag.Label), v.TopTagShare*100)
	}

	_, _ = fmt.Fprintln(w)
	_, _ = fmt.Fprintln(w, "Last 7 days")
	var peak int64
	for _, p := range v.Trend {
		peak = max(peak, p.Seconds)
	}
	for _, p := range v.Trend {
		bar := 0
		if peak > 0 {
			bar = int(p.Seconds * trendBarWidth / peak)
		}
		_, _ = fmt.Fprintf(w, "  %s  %-*s %s\n", p.Day, trendBarWidth, strings.Repeat("█", bar),
			domain.FormatHoursMinutes(p.Seconds))
	}
}
