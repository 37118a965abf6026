package cli

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"github.com/scenestack/scenestack/pkg/scene"
	"github.com/scenestack/scenestack/pkg/stack"
)

// List styles
var (
	listSelectedStyle = lipgloss.NewStyle().Bold(true).Foreground(colorCyan)
	listNormalStyle   = lipgloss.NewStyle().Foreground(colorWhite)
	listDimStyle      = lipgloss.NewStyle().Foreground(colorDim)
)

// browseCommand creates the browse command, an interactive stack picker.
func (c *CLI) browseCommand() *cobra.Command {
	var (
		scenePath string
		outPath   string
	)

	cmd := &cobra.Command{
		Use:   "browse",
		Short: "Browse stacks interactively and select one in the scene",
		Long: `Browse stacks interactively and select one in the scene.

Shows every stack group of the scene with its members bottom to top.
Pressing enter replaces the scene selection with the highlighted stack's
members and saves the scene, so a host application loading the document
sees the stack selected.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			doc, err := scene.Load(scenePath)
			if err != nil {
				return err
			}
			stacks := sceneStacks(doc)
			if len(stacks) == 0 {
				printInfo("Scene has no stack groups")
				return nil
			}

			model := NewStackListModel(stacks)
			final, err := tea.NewProgram(model, tea.WithContext(cmd.Context())).Run()
			if err != nil {
				return fmt.Errorf("browse: %w", err)
			}

			m, ok := final.(StackListModel)
			if !ok || m.Selected == nil {
				printInfo("No stack selected")
				return nil
			}

			if err := doc.Select(m.Selected.Members); err != nil {
				return err
			}
			out := outPath
			if out == "" {
				out = scenePath
			}
			if err := scene.Save(doc, out); err != nil {
				return err
			}

			printSuccess("Selected %s (%d objects)", m.Selected.Group, len(m.Selected.Members))
			printFile(out)
			return nil
		},
	}

	cmd.Flags().StringVarP(&scenePath, "scene", "s", "", "scene document (JSON)")
	cmd.Flags().StringVarP(&outPath, "out", "o", "", "output scene file (default: overwrite --scene)")
	_ = cmd.MarkFlagRequired("scene")

	return cmd
}

// =============================================================================
// StackListModel - Interactive stack selection
// =============================================================================

// StackListModel is the bubbletea model for interactive stack selection.
type StackListModel struct {
	Stacks   []stack.Stack
	Cursor   int
	Selected *stack.Stack
	Height   int
	Offset   int
}

// NewStackListModel creates a new stack list model.
func NewStackListModel(stacks []stack.Stack) StackListModel {
	return StackListModel{
		Stacks: stacks,
		Cursor: 0,
		Height: 15,
		Offset: 0,
	}
}

func (m StackListModel) Init() tea.Cmd {
	return nil
}

func (m StackListModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c", "esc":
			return m, tea.Quit
		case "up", "k":
			if m.Cursor > 0 {
				m.Cursor--
				if m.Cursor < m.Offset {
					m.Offset = m.Cursor
				}
			}
		case "down", "j":
			if m.Cursor < len(m.Stacks)-1 {
				m.Cursor++
				if m.Cursor >= m.Offset+m.Height {
					m.Offset = m.Cursor - m.Height + 1
				}
			}
		case "enter":
			m.Selected = &m.Stacks[m.Cursor]
			return m, tea.Quit
		}
	case tea.WindowSizeMsg:
		m.Height = msg.Height - 6
		if m.Height < 5 {
			m.Height = 5
		}
	}
	return m, nil
}

func (m StackListModel) View() string {
	var b strings.Builder

	b.WriteString(StyleTitle.Render("Select Stack"))
	b.WriteString("\n")
	b.WriteString(listDimStyle.Render("↑/↓ navigate  ⏎ select  q quit"))
	b.WriteString("\n\n")

	end := m.Offset + m.Height
	if end > len(m.Stacks) {
		end = len(m.Stacks)
	}

	for i := m.Offset; i < end; i++ {
		st := m.Stacks[i]

		cursor := "  "
		if i == m.Cursor {
			cursor = "▸ "
		}

		// Members are stored bottom to top; show them the same way.
		line := fmt.Sprintf("%s%-12s %s", cursor, st.Group,
			listDimStyle.Render(strings.Join(st.Members, " · ")))

		if i == m.Cursor {
			b.WriteString(listSelectedStyle.Render(line))
		} else {
			b.WriteString(listNormalStyle.Render(line))
		}
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(listDimStyle.Render(fmt.Sprintf("  [%d/%d]", m.Cursor+1, len(m.Stacks))))

	return b.String()
}
