package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/matzehuels/graphnest/pkg/document"
	"github.com/matzehuels/graphnest/pkg/pipeline"
)

// layoutCommand creates the layout command, which writes a laid-out copy of a document.
func (c *CLI) layoutCommand() *cobra.Command {
	var (
		output      string
		breakCycles bool
	)

	cmd := &cobra.Command{
		Use:   "layout [graph.json]",
		Short: "Compute positions and container bounds for a document",
		Long: `Compute positions and container bounds for a task graph document.

Every attached item is assigned a dependency level, packed into columns of
bounded height and positioned. Containers are laid out first, deepest
first, and resized to fit their members. The result is the same document
with x/y and bounds filled in, written next to the input as
<input>.layout.json (or .toml) unless -o is given.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runLayout(cmd.Context(), args[0], output, breakCycles)
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "", "output file (default: <input>.layout.<ext>)")
	cmd.Flags().BoolVar(&breakCycles, "break-cycles", false, "remove cyclic edges before layout")

	return cmd
}

// runLayout loads the document, lays it out and writes the output.
func (c *CLI) runLayout(ctx context.Context, input, output string, breakCycles bool) error {
	res, err := c.execute(ctx, input, breakCycles)
	if err != nil {
		return err
	}
	if ctx.Err() != nil {
		return ctx.Err()
	}

	if output == "" {
		output = defaultOutputPath(input)
	}
	if err := document.WriteFile(ctx, res.Document, output); err != nil {
		return fmt.Errorf("write output %s: %w", output, err)
	}

	printSuccess("Layout complete")
	printFile(output)
	printStats(res.Stats.Items, res.Stats.Edges, res.Stats.Levels)
	printNewline()
	printNextStep("Inspect", appName+" inspect "+output)
	return nil
}

// execute reads input and runs the layout pipeline on it.
func (c *CLI) execute(ctx context.Context, input string, breakCycles bool) (*pipeline.Result, error) {
	doc, err := document.ReadFile(ctx, input)
	if err != nil {
		return nil, fmt.Errorf("load document %s: %w", input, err)
	}

	runner, err := c.newRunner(breakCycles)
	if err != nil {
		return nil, fmt.Errorf("initialize runner: %w", err)
	}

	prog := newProgress(c.Logger)
	res, err := runner.Execute(ctx, input, doc)
	if err != nil {
		return nil, fmt.Errorf("layout %s: %w", input, err)
	}
	prog.done(fmt.Sprintf("Laid out %d items in %d passes", res.Stats.Items, res.Stats.Passes))
	return res, nil
}
