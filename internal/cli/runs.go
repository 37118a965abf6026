package cli

import (
	"fmt"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/spf13/cobra"
)

// runsCommand creates the runs command for listing past build runs.
func (c *CLI) runsCommand() *cobra.Command {
	var (
		limit int
		keep  int
	)

	cmd := &cobra.Command{
		Use:   "runs",
		Short: "List recorded build runs",
		Long: `List recorded build runs, newest first.

Every build appends a record with the run id, the scene it ran against,
the plan digest, and the seed. The seed makes any run reproducible:
re-running the same scene and plan with --seed gives identical picks.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			store, err := newRunStore()
			if err != nil {
				return err
			}
			defer store.Close()

			if cmd.Flags().Changed("prune") {
				if err := store.Prune(cmd.Context(), keep); err != nil {
					return err
				}
				printSuccess("Pruned run records, kept %d", keep)
			}

			records, err := store.List(cmd.Context())
			if err != nil {
				return err
			}
			if len(records) == 0 {
				printInfo("No runs recorded")
				return nil
			}
			if limit > 0 && len(records) > limit {
				records = records[:limit]
			}

			rows := make([][]string, 0, len(records))
			for _, rec := range records {
				objects := 0
				for _, st := range rec.Stacks {
					objects += len(st.Members)
				}
				rows = append(rows, []string{
					shortID(rec.ID),
					rec.CreatedAt.Format("2006-01-02 15:04"),
					rec.Scene,
					fmt.Sprintf("%d", len(rec.Stacks)),
					fmt.Sprintf("%d", objects),
					fmt.Sprintf("%d", rec.Seed),
				})
			}

			headerStyle := lipgloss.NewStyle().Foreground(colorGray).Bold(true)
			t := table.New().
				Border(lipgloss.RoundedBorder()).
				BorderStyle(lipgloss.NewStyle().Foreground(colorDim)).
				Headers("Run", "Created", "Scene", "Stacks", "Objects", "Seed").
				Rows(rows...).
				StyleFunc(func(row, col int) lipgloss.Style {
					if row == -1 {
						return headerStyle
					}
					if col == 0 {
						return StyleHighlight
					}
					return StyleValue
				})
			fmt.Println(t.Render())
			printDetail("Records: %s", store.Path())
			return nil
		},
	}

	cmd.Flags().IntVarP(&limit, "limit", "n", 0, "show at most n runs")
	cmd.Flags().IntVar(&keep, "prune", 0, "delete all but the newest n records first")

	return cmd
}

// shortID abbreviates a run id for display.
func shortID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}
