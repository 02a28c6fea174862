package pipeline

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/graphnest/pkg/diagram"
	"github.com/matzehuels/graphnest/pkg/document"
	"github.com/matzehuels/graphnest/pkg/layout"
	"github.com/matzehuels/graphnest/pkg/observability"
)

// Runner executes layouts with logging and hook reporting.
//
// A Runner keeps no state between calls; multiple goroutines can share one
// as long as each call works on its own document.
type Runner struct {
	Options Options
	Logger  *log.Logger
}

// NewRunner creates a runner. If logger is nil, log.Default() is used.
func NewRunner(opts Options, logger *log.Logger) *Runner {
	if logger == nil {
		logger = log.Default()
	}
	return &Runner{Options: opts, Logger: logger}
}

// Execute lays out doc and returns it with positions filled in. source names
// the document in logs and hook events.
func (r *Runner) Execute(ctx context.Context, source string, doc document.Document) (*Result, error) {
	if err := r.Options.Validate(); err != nil {
		return nil, fmt.Errorf("invalid options: %w", err)
	}

	scene, err := document.ToScene(doc)
	if err != nil {
		return nil, err
	}

	result := &Result{}
	result.Warnings, result.Stats.EdgesBroken = r.check(scene)

	start := time.Now()
	observability.Layout().OnLayoutStart(ctx, source, scene.ItemCount())
	result.Layout = layout.Run(scene, r.Options.Config)
	result.Stats.Duration = time.Since(start)
	observability.Layout().OnLayoutComplete(ctx, source, len(result.Layout.Passes), result.Stats.Duration)

	result.Document = document.FromScene(doc.Name, scene)
	result.Stats.Items = scene.ItemCount()
	result.Stats.Edges = scene.EdgeCount()
	result.Stats.Passes = len(result.Layout.Passes)
	for _, p := range result.Layout.Passes {
		result.Stats.Levels += len(p.Levels)
	}

	r.Logger.Debug("computed layout",
		"source", source,
		"items", result.Stats.Items,
		"passes", result.Stats.Passes,
		"levels", result.Stats.Levels,
		"duration", result.Stats.Duration)

	return result, nil
}

// check validates the scene and, when enabled, removes dependency cycles.
// It returns warnings for problems layout will work around.
func (r *Runner) check(scene *diagram.Scene) ([]string, int) {
	var warnings []string
	broken := 0

	err := scene.Validate()
	if errors.Is(err, diagram.ErrGraphHasCycle) && r.Options.BreakCycles {
		broken = diagram.BreakCycles(scene)
		r.Logger.Info("removed cyclic edges", "count", broken)
		err = scene.Validate()
	}

	switch {
	case err == nil:
	case errors.Is(err, diagram.ErrGraphHasCycle):
		warnings = append(warnings, "dependency cycle: items on the cycle are placed at level 1")
	case errors.Is(err, diagram.ErrUnknownContainer):
		warnings = append(warnings, "unknown container reference: affected items are laid out at top level")
	case errors.Is(err, diagram.ErrContainmentCycle):
		warnings = append(warnings, "container membership loops: one container per loop is laid out at top level")
	default:
		warnings = append(warnings, err.Error())
	}

	for _, w := range warnings {
		r.Logger.Warn(w)
	}
	return warnings, broken
}
