package cli

import (
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/runoshun/timeflow/internal/app"
	"github.com/runoshun/timeflow/internal/domain"
	"github.com/runoshun/timeflow/internal/usecase"
)

// defaultReportDays is the range length used when --from is omitted.
const defaultReportDays = 7

// newReportCommand creates the report command.
func newReportCommand(c *app.Container) *cobra.Command {
	var opts struct {
		From   string
		To     string
		By     string
		Format string
	}

	cmd := &cobra.Command{
		Use:   "report",
		Short: "Summarize saved sessions over a date range",
		Long: `Summarize saved sessions whose day falls between --from and --to (inclusive),
grouped by day or by tag. All tags are included, not only goal tags.
The running interval is not included.

Examples:
  timeflow report
  timeflow report --from 2024-03-01 --to 2024-03-31 --by tag
  timeflow report --format yaml`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if err := validateFormat(opts.Format, formatTable, formatJSON, formatYAML); err != nil {
				return err
			}
			now := c.Clock.Now()
			to := opts.To
			if to == "" {
				to = domain.DayKey(now)
			}
			from := opts.From
			if from == "" {
				if end, err := domain.ParseDay(to); err == nil {
					from = domain.DayKey(end.AddDate(0, 0, -(defaultReportDays - 1)))
				} else {
					from = to
				}
			}

			out, err := c.ShowReportUseCase().Execute(cmd.Context(), usecase.ShowReportInput{
				From:    from,
				To:      to,
				GroupBy: opts.By,
			})
			if err != nil {
				return err
			}
			if opts.Format != formatTable {
				return writeStructured(cmd.OutOrStdout(), opts.Format, out.Report)
			}
			printReport(cmd.OutOrStdout(), out.Report)
			return nil
		},
	}

	cmd.Flags().StringVar(&opts.From, "from", "", "First day, YYYY-MM-DD (default: six days before --to)")
	cmd.Flags().StringVar(&opts.To, "to", "", "Last day, YYYY-MM-DD (default: today)")
	cmd.Flags().StringVar(&opts.By, "by", string(domain.GroupByDay), "Grouping: day or tag")
	cmd.Flags().StringVar(&opts.Format, "format", formatTable, "Output format: table, json or yaml")
	return cmd
}

func printReport(w io.Writer, r domain.Report) {
	_, _ = fmt.Fprintf(w, "%s to %s\n\n", r.From, r.To)

	tw := tabwriter.NewWriter(w, 0, 0, 3, ' ', 0)
	header := "DAY"
	if r.GroupBy == domain.GroupByTag {
		header = "TAG"
	}
	_, _ = fmt.Fprintf(tw, "%s\tTIME\tSESSIONS\n", header)
	for _, row := range r.Rows {
		_, _ = fmt.Fprintf(tw, "%s\t%s\t%d\n", truncateLabel(row.Label), domain.FormatHoursMinutes(row.Seconds), row.Sessions)
	}
	_, _ = fmt.Fprintf(tw, "TOTAL\t%s\t\n", domain.FormatHoursMinutes(r.TotalSeconds))
	_ = tw.Flush()
}
