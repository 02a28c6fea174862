package cli

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/spf13/cobra"

	"github.com/matzehuels/graphnest/pkg/document"
	"github.com/matzehuels/graphnest/pkg/layout"
	"github.com/matzehuels/graphnest/pkg/pipeline"
)

// levelsCommand creates the levels command, which prints the level buckets of each pass.
func (c *CLI) levelsCommand() *cobra.Command {
	var breakCycles bool

	cmd := &cobra.Command{
		Use:   "levels [graph.json]",
		Short: "Print the level buckets of every layout pass",
		Long: `Lay out a document without writing it and print, for every pass (each
container deepest first, then the top level), the levels it produced and
the position assigned to every node.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			res, err := c.execute(cmd.Context(), args[0], breakCycles)
			if err != nil {
				return err
			}
			fmt.Fprint(stdout, renderLevels(res))
			printStats(res.Stats.Items, res.Stats.Edges, res.Stats.Levels)
			return nil
		},
	}

	cmd.Flags().BoolVar(&breakCycles, "break-cycles", false, "remove cyclic edges before layout")
	return cmd
}

// renderLevels formats one table per pass.
func renderLevels(res *pipeline.Result) string {
	items := itemIndex(res.Document)

	var b strings.Builder
	for _, p := range res.Layout.Passes {
		b.WriteString(StyleTitle.Render(passTitle(p)))
		b.WriteString(StyleDim.Render(fmt.Sprintf("  %d nodes", p.NodeCount())))
		b.WriteString("\n")

		t := table.New().
			Border(lipgloss.RoundedBorder()).
			BorderStyle(lipgloss.NewStyle().Foreground(colorDim)).
			Headers("Level", "Node", "X", "Y").
			Rows(passRows(p, items)...).
			StyleFunc(func(row, col int) lipgloss.Style {
				switch {
				case row == -1:
					return styleHeader
				case col == 0:
					return StyleNumber
				default:
					return lipgloss.NewStyle()
				}
			})
		b.WriteString(t.Render())
		b.WriteString("\n\n")
	}
	return b.String()
}

func passTitle(p layout.Pass) string {
	if p.Container == "" {
		return "top level"
	}
	return "container " + p.Container
}

// passRows lists one row per node; the level number is shown on the first
// node of each level only.
func passRows(p layout.Pass, items map[string]document.Item) [][]string {
	var rows [][]string
	for _, l := range p.Levels {
		for i, id := range l.Nodes {
			level := ""
			if i == 0 {
				level = strconv.Itoa(l.Number)
			}
			it := items[id]
			rows = append(rows, []string{level, id, formatCoord(it.X), formatCoord(it.Y)})
		}
	}
	return rows
}

func itemIndex(doc document.Document) map[string]document.Item {
	m := make(map[string]document.Item, len(doc.Items))
	for _, it := range doc.Items {
		m[it.ID] = it
	}
	return m
}

func formatCoord(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
