// Package cli implements the graphnest command-line interface.
//
// The commands read task graph documents (JSON or TOML), run the nested
// hierarchical layout on them and either write the laid-out document back,
// print the level buckets, browse them interactively, or serve layouts over
// HTTP. The CLI is built using cobra and logs through charmbracelet/log.
//
// # Commands
//
//   - layout: lay out a document and write the result
//   - levels: print the level buckets of every layout pass
//   - validate: check a document for structural problems
//   - inspect: browse passes, levels and positions in a terminal UI
//   - serve: expose layout and validation over HTTP
//   - schema: print the document JSON Schema
//
// # Logging
//
// All commands support --verbose (-v) for debug-level logging.
package cli

import (
	"io"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/matzehuels/graphnest/pkg/buildinfo"
	"github.com/matzehuels/graphnest/pkg/layout"
	"github.com/matzehuels/graphnest/pkg/observability"
	"github.com/matzehuels/graphnest/pkg/pipeline"
)

const appName = "graphnest"

// Log levels exported for use in main.go.
const (
	LogDebug = log.DebugLevel
	LogInfo  = log.InfoLevel
)

// =============================================================================
// CLI - Central CLI State
// =============================================================================

// CLI holds shared state for all commands.
type CLI struct {
	Logger *log.Logger

	configPath string
}

// New creates a new CLI instance with a default logger.
func New(w io.Writer, level log.Level) *CLI {
	return &CLI{Logger: newLogger(w, level)}
}

// SetLogLevel updates the logger's level.
func (c *CLI) SetLogLevel(level log.Level) {
	c.Logger.SetLevel(level)
}

// RootCommand creates the root cobra command with all subcommands registered.
func (c *CLI) RootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:   appName,
		Short: "Graphnest lays out nested task graphs",
		Long: `Graphnest computes hierarchical layouts for task execution graphs: items are
assigned dependency levels, packed into bounded columns and positioned, with
containers sized to fit their members before their own placement.`,
		Version:      buildinfo.Version,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			c.registerHooks()
			cmd.SetContext(withLogger(cmd.Context(), c.Logger))
			return nil
		},
	}

	root.SetVersionTemplate(buildinfo.Template())
	root.PersistentFlags().StringVar(&c.configPath, "config", "", "layout geometry file (TOML)")

	root.AddCommand(c.layoutCommand())
	root.AddCommand(c.levelsCommand())
	root.AddCommand(c.validateCommand())
	root.AddCommand(c.inspectCommand())
	root.AddCommand(c.serveCommand())
	root.AddCommand(c.schemaCommand())
	root.AddCommand(c.completionCommand())

	return root
}

func (c *CLI) registerHooks() {
	observability.SetLayoutHooks(layoutLogHooks{c.Logger})
	observability.SetDocumentHooks(documentLogHooks{c.Logger})
	observability.SetHTTPHooks(httpLogHooks{c.Logger})
}

// =============================================================================
// Runner Factory
// =============================================================================

// newRunner creates a pipeline runner using the --config geometry.
func (c *CLI) newRunner(breakCycles bool) (*pipeline.Runner, error) {
	cfg, err := c.loadConfig()
	if err != nil {
		return nil, err
	}
	opts := pipeline.Options{Config: cfg, BreakCycles: breakCycles}
	return pipeline.NewRunner(opts, c.Logger), nil
}

func (c *CLI) loadConfig() (layout.Config, error) {
	if c.configPath == "" {
		return layout.DefaultConfig(), nil
	}
	cfg, err := layout.LoadConfig(c.configPath)
	if err != nil {
		return cfg, err
	}
	c.Logger.Debug("loaded layout config", "path", c.configPath)
	return cfg, nil
}

// =============================================================================
// Paths
// =============================================================================

// defaultOutputPath derives "<name>.layout.<ext>" from the input path.
func defaultOutputPath(input string) string {
	ext := filepath.Ext(input)
	return strings.TrimSuffix(input, ext) + ".layout" + ext
}
