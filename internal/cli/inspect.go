package cli

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/go-gl/mathgl/mgl64"
	"github.com/spf13/cobra"

	"github.com/scenestack/scenestack/pkg/scene"
)

// inspectCommand creates the inspect command for printing scene contents.
func (c *CLI) inspectCommand() *cobra.Command {
	var scenePath string

	cmd := &cobra.Command{
		Use:   "inspect",
		Short: "Show the objects, groups, and selection of a scene",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			doc, err := scene.Load(scenePath)
			if err != nil {
				return err
			}
			printScene(doc)
			return nil
		},
	}

	cmd.Flags().StringVarP(&scenePath, "scene", "s", "", "scene document (JSON)")
	_ = cmd.MarkFlagRequired("scene")

	return cmd
}

// printScene renders the document as an object table, a group tree, and the
// current selection.
func printScene(doc *scene.Document) {
	objects := doc.Objects()
	groups := doc.Groups()

	fmt.Println(StyleTitle.Render("Objects"))
	rows := make([][]string, 0, len(objects))
	for _, obj := range objects {
		rows = append(rows, []string{
			obj.Name,
			formatVec(obj.Box.Min),
			formatVec(obj.Box.Max),
			formatVec(obj.Translate),
		})
	}

	headerStyle := lipgloss.NewStyle().Foreground(colorGray).Bold(true)
	t := table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(colorDim)).
		Headers("Name", "Min", "Max", "Translate").
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == -1 {
				return headerStyle
			}
			if col == 0 {
				return StyleValue
			}
			return StyleDim
		})
	fmt.Println(t.Render())

	if len(groups) > 0 {
		printNewline()
		fmt.Println(StyleTitle.Render("Groups"))
		for _, g := range groups {
			fmt.Println("  " + StyleHighlight.Render(g.Name) + " " + StyleDim.Render(fmt.Sprintf("(%d members)", len(g.Members))))
			for i, member := range g.Members {
				branch := "├─"
				if i == len(g.Members)-1 {
					branch = "└─"
				}
				fmt.Println("  " + StyleDim.Render(branch) + " " + StyleValue.Render(member))
			}
		}
	}

	if sel := doc.CurrentSelection(); len(sel) > 0 {
		printNewline()
		fmt.Println(StyleTitle.Render("Selection"))
		printDetail("%s", strings.Join(sel, ", "))
	}
}

// formatVec prints a vector compactly for table cells.
func formatVec(v mgl64.Vec3) string {
	return fmt.Sprintf("%.2f, %.2f, %.2f", v.X(), v.Y(), v.Z())
}
