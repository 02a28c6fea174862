package cli

import (
	"context"
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/matzehuels/graphnest/pkg/document"
	"github.com/matzehuels/graphnest/pkg/errors"
)

// validateCommand creates the validate command.
func (c *CLI) validateCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "validate [graph.json]",
		Short: "Check a document for structural problems",
		Long: `Check a task graph document without laying it out.

Malformed ids, sizes and dangling edges are errors. Dependency cycles and
broken container references are reported too: layout tolerates them, but
the result is rarely what was intended.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runValidate(cmd.Context(), args[0])
		},
	}
}

func (c *CLI) runValidate(ctx context.Context, input string) error {
	doc, err := document.ReadFile(ctx, input)
	if err != nil {
		return fmt.Errorf("load document %s: %w", input, err)
	}

	scene, err := document.ToScene(doc)
	if err != nil {
		printError("%s", errors.UserMessage(err))
		return err
	}

	printKeyValue("Items", strconv.Itoa(scene.ItemCount()))
	printKeyValue("Edges", strconv.Itoa(scene.EdgeCount()))

	if err := scene.Validate(); err != nil {
		printWarning("%v", err)
		return errors.Wrap(errors.ErrCodeInvalidDocument, err, "%s has problems", input)
	}
	printSuccess("%s is valid", input)
	return nil
}
