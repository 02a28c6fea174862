package cli

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/spf13/cobra"

	"github.com/matzehuels/graphnest/pkg/pipeline"
)

var (
	listSelectedStyle = lipgloss.NewStyle().Bold(true).Foreground(colorCyan)
	listDimStyle      = lipgloss.NewStyle().Foreground(colorDim)
)

// inspectCommand creates the inspect command, an interactive pass browser.
func (c *CLI) inspectCommand() *cobra.Command {
	var breakCycles bool

	cmd := &cobra.Command{
		Use:   "inspect [graph.json]",
		Short: "Browse layout passes, levels and positions interactively",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			res, err := c.execute(ctx, args[0], breakCycles)
			if err != nil {
				return err
			}
			_, err = tea.NewProgram(NewInspectModel(res), tea.WithContext(ctx)).Run()
			return err
		},
	}

	cmd.Flags().BoolVar(&breakCycles, "break-cycles", false, "remove cyclic edges before layout")
	return cmd
}

// =============================================================================
// InspectModel - Interactive pass browser
// =============================================================================

// passView is a pass flattened into table rows.
type passView struct {
	title string
	rows  [][]string
}

// InspectModel is the bubbletea model for browsing layout passes.
type InspectModel struct {
	Passes []passView
	Pass   int
	Cursor int
	Height int
	Offset int
}

// NewInspectModel creates an inspect model positioned on the top-level pass.
func NewInspectModel(res *pipeline.Result) InspectModel {
	items := itemIndex(res.Document)
	passes := make([]passView, len(res.Layout.Passes))
	for i, p := range res.Layout.Passes {
		passes[i] = passView{title: passTitle(p), rows: passRows(p, items)}
	}
	return InspectModel{
		Passes: passes,
		Pass:   max(len(passes)-1, 0),
		Height: 15,
	}
}

func (m InspectModel) Init() tea.Cmd {
	return nil
}

func (m InspectModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
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
			if m.Cursor < len(m.rows())-1 {
				m.Cursor++
				if m.Cursor >= m.Offset+m.Height {
					m.Offset = m.Cursor - m.Height + 1
				}
			}
		case "left", "h":
			if m.Pass > 0 {
				m.Pass--
				m.Cursor, m.Offset = 0, 0
			}
		case "right", "l", "tab":
			if m.Pass < len(m.Passes)-1 {
				m.Pass++
				m.Cursor, m.Offset = 0, 0
			}
		}
	case tea.WindowSizeMsg:
		m.Height = max(msg.Height-8, 5)
	}
	return m, nil
}

func (m InspectModel) rows() [][]string {
	if len(m.Passes) == 0 {
		return nil
	}
	return m.Passes[m.Pass].rows
}

func (m InspectModel) View() string {
	var b strings.Builder

	if len(m.Passes) == 0 {
		b.WriteString(listDimStyle.Render("nothing to lay out"))
		b.WriteString("\n")
		return b.String()
	}

	p := m.Passes[m.Pass]
	b.WriteString(StyleTitle.Render(p.title))
	b.WriteString(listDimStyle.Render(fmt.Sprintf("  pass %d/%d", m.Pass+1, len(m.Passes))))
	b.WriteString("\n")
	b.WriteString(listDimStyle.Render("↑/↓ navigate  ←/→ pass  q quit"))
	b.WriteString("\n\n")

	end := min(m.Offset+m.Height, len(p.rows))
	visible := p.rows[m.Offset:end]

	t := table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(colorDim)).
		Headers("Level", "Node", "X", "Y").
		Rows(visible...).
		StyleFunc(func(row, col int) lipgloss.Style {
			switch {
			case row == -1:
				return styleHeader
			case m.Offset+row == m.Cursor:
				return listSelectedStyle
			case col == 0:
				return StyleNumber
			default:
				return lipgloss.NewStyle()
			}
		})

	b.WriteString(t.Render())
	b.WriteString("\n\n")
	if len(p.rows) > 0 {
		b.WriteString(listDimStyle.Render(fmt.Sprintf("  [%d/%d]", m.Cursor+1, len(p.rows))))
	}
	return b.String()
}
