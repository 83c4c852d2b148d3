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

// newSessionsCommand creates the sessions command.
func newSessionsCommand(c *app.Container) *cobra.Command {
	var opts struct {
		Limit int
		JSON  bool
	}

	cmd := &cobra.Command{
		Use:   "sessions",
		Short: "List saved sessions",
		Long:  `List saved sessions, most recent first.`,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			out, err := c.ListSessionsUseCase().Execute(cmd.Context(), usecase.ListSessionsInput{Limit: opts.Limit})
			if err != nil {
				return err
			}
			w := cmd.OutOrStdout()
			if opts.JSON {
				sessions := make([]domain.Session, 0, len(out.Rows))
				for _, r := range out.Rows {
					sessions = append(sessions, r.Session)
				}
				return writeJSON(w, sessions)
			}
			if len(out.Rows) == 0 {
				_, _ = fmt.Fprintln(w, "No sessions yet.")
				return nil
			}
			printSessionList(w, out.Rows)
			if len(out.Rows) < out.Total {
				_, _ = fmt.Fprintf(w, "(%d of %d sessions)\n", len(out.Rows), out.Total)
			}
			return nil
		},
	}

	cmd.Flags().IntVarP(&opts.Limit, "limit", "n", 20, "Maximum number of sessions (0 for all)")
	cmd.Flags().BoolVar(&opts.JSON, "json", false, "Output in JSON format")
	return cmd
}

func printSessionList(w io.Writer, rows []usecase.SessionRow) {
	tw := tabwriter.NewWriter(w, 0, 0, 3, ' ', 0)
	defer func() { _ = tw.Flush() }()

	_, _ = fmt.Fprintln(tw, "ENDED\tTAG\tDURATION\tID")
	for _, r := range rows {
		_, _ = fmt.Fprintf(tw, "%s\t%s\t%s\t%s\n",
			formatEnded(r.Session), truncateLabel(r.Label), domain.FormatClock(r.Session.DurationSeconds), r.Session.ID)
	}
}
