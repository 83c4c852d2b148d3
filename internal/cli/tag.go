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

// newTagCommand creates the tag command with its subcommands.
func newTagCommand(c *app.Container) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "tag",
		Short: "Manage tags",
		Long:  `List, add, edit and remove the tags that time is tracked against.`,
		// No RunE: shows subcommand list when called without arguments
	}

	cmd.AddCommand(
		newTagListCommand(c),
		newTagAddCommand(c),
		newTagEditCommand(c),
		newTagRmCommand(c),
	)
	return cmd
}

func newTagListCommand(c *app.Container) *cobra.Command {
	var jsonOut bool

	cmd := &cobra.Command{
		Use:     "list",
		Aliases: []string{"ls"},
		Short:   "List tags",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			out, err := c.ListTagsUseCase().Execute(cmd.Context(), usecase.ListTagsInput{})
			if err != nil {
				return err
			}
			if jsonOut {
				return writeJSON(cmd.OutOrStdout(), out.Tags)
			}
			printTagList(cmd.OutOrStdout(), out.Tags, out.GoalTags)
			return nil
		},
	}

	cmd.Flags().BoolVar(&jsonOut, "json", false, "Output in JSON format")
	return cmd
}

// printTagList prints tags as a table. GOAL marks tags counted toward the Mastery Goal.
func printTagList(w io.Writer, tags []domain.Tag, goal map[string]bool) {
	tw := tabwriter.NewWriter(w, 0, 0, 3, ' ', 0)
	defer func() { _ = tw.Flush() }()

	_, _ = fmt.Fprintln(tw, "ID\tLABEL\tCOLOR\tACTIVE\tGOAL")
	for _, t := range tags {
		active := "yes"
		if !t.Active() {
			active = "no"
		}
		goalMark := "-"
		if goal[t.ID] {
			goalMark = "*"
		}
		_, _ = fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\n", t.ID, truncateLabel(t.Label), t.Color, active, goalMark)
	}
}

func newTagAddCommand(c *app.Container) *cobra.Command {
	var color string

	cmd := &cobra.Command{
		Use:   "add <label>",
		Short: "Add a tag",
		Long: `Add a tag. The id is generated.

Examples:
  timeflow tag add Reading
  timeflow tag add "Side project" --color "#a855f7"`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			out, err := c.CreateTagUseCase().Execute(cmd.Context(), usecase.CreateTagInput{
				Label: args[0],
				Color: color,
			})
			if err != nil {
				return err
			}
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Created tag %s (%s)\n", out.Tag.Label, out.Tag.ID)
			return nil
		},
	}

	cmd.Flags().StringVar(&color, "color", "", "Display color (default "+domain.DefaultTagColor+")")
	return cmd
}

func newTagEditCommand(c *app.Container) *cobra.Command {
	var opts struct {
		Label  string
		Color  string
		Active bool
	}

	cmd := &cobra.Command{
		Use:   "edit <id>",
		Short: "Edit a tag",
		Long: `Edit a tag's label, color or active flag. Only the given flags change.

Examples:
  timeflow tag edit study --label Learning
  timeflow tag edit work --active=false`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			in := usecase.UpdateTagInput{ID: args[0]}
			if cmd.Flags().Changed("label") {
				in.Label = &opts.Label
			}
			if cmd.Flags().Changed("color") {
				in.Color = &opts.Color
			}
			if cmd.Flags().Changed("active") {
				in.Active = &opts.Active
			}

			out, err := c.UpdateTagUseCase().Execute(cmd.Context(), in)
			if err != nil {
				return err
			}
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Updated tag %s\n", out.Tag.ID)
			return nil
		},
	}

	cmd.Flags().StringVar(&opts.Label, "label", "", "New label")
	cmd.Flags().StringVar(&opts.Color, "color", "", "New color")
	cmd.Flags().BoolVar(&opts.Active, "active", true, "Whether the tag is active")
	return cmd
}

func newTagRmCommand(c *app.Container) *cobra.Command {
	return &cobra.Command{
		Use:   "rm <id>",
		Short: "Remove a tag",
		Long: `Remove a tag. Saved sessions keep the tag id and are reported under it.
The tag is also dropped from the Mastery Goal tag selection.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			out, err := c.DeleteTagUseCase().Execute(cmd.Context(), usecase.DeleteTagInput{ID: args[0]})
			if err != nil {
				return err
			}
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Removed tag %s (%s)\n", out.Tag.Label, out.Tag.ID)
			return nil
		},
	}
}
