package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/matzehuels/graphnest/pkg/document"
)

// schemaCommand prints the JSON Schema documents are checked against.
func (c *CLI) schemaCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "schema",
		Short: "Print the document JSON Schema",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			_, err := fmt.Fprintln(cmd.OutOrStdout(), document.SchemaJSON)
			return err
		},
	}
}
