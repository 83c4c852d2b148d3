package cli

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/runoshun/timeflow/internal/app"
	"github.com/runoshun/timeflow/internal/usecase"
)

// newExportCommand creates the export command.
func newExportCommand(c *app.Container) *cobra.Command {
	var output string

	cmd := &cobra.Command{
		Use:   "export",
		Short: "Export all data as a JSON backup",
		Long: `Export sessions, tags and settings as a version 3 JSON backup.
The backup is written to stdout unless --output is given.

Examples:
  timeflow export > timeflow-backup.json
  timeflow export -o timeflow-backup.json`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			out, err := c.ExportBackupUseCase().Execute(cmd.Context(), usecase.ExportBackupInput{})
			if err != nil {
				return err
			}
			data := append(out.Data, '\n')

			if output == "" || output == "-" {
				_, err := cmd.OutOrStdout().Write(data)
				return err
			}
			if err := os.WriteFile(output, data, 0o644); err != nil {
				return fmt.Errorf("write backup: %w", err)
			}
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Exported %d sessions to %s\n", len(out.Backup.Sessions), output)
			return nil
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "", "Write the backup to this file")
	return cmd
}

// newImportCommand creates the import command.
func newImportCommand(c *app.Container) *cobra.Command {
	return &cobra.Command{
		Use:   "import <file>",
		Short: "Restore a JSON backup",
		Long: `Restore a backup created by export. Use - to read from stdin.

The session list is replaced. Tags and settings are replaced only when the
backup contains them. The timer is reset to idle. A file without a sessions
array is rejected and nothing is changed.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var (
				data []byte
				err  error
			)
			if args[0] == "-" {
				data, err = io.ReadAll(cmd.InOrStdin())
			} else {
				data, err = os.ReadFile(args[0])
			}
			if err != nil {
				return fmt.Errorf("read backup: %w", err)
			}

			out, err := c.ImportBackupUseCase().Execute(cmd.Context(), usecase.ImportBackupInput{Data: data})
			if err != nil {
				return err
			}

			w := cmd.OutOrStdout()
			_, _ = fmt.Fprintf(w, "Imported %d sessions\n", out.Sessions)
			if out.TagsReplaced {
				_, _ = fmt.Fprintln(w, "Tags replaced")
			}
			if out.SettingsReplaced {
				_, _ = fmt.Fprintln(w, "Settings replaced")
			}
			return nil
		},
	}
}
