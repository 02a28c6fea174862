// Package pipeline runs the import → check → layout → export sequence shared
// by the CLI and the HTTP server.
//
// # Usage
//
//	runner := pipeline.NewRunner(pipeline.Options{Config: layout.DefaultConfig()}, logger)
//	result, err := runner.Execute(ctx, "graph.json", doc)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	out := result.Document // positions and container bounds filled in
//
// Scene problems that layout tolerates (dependency cycles, dangling
// container references) are reported as warnings rather than errors.
package pipeline

import (
	"time"

	"github.com/matzehuels/graphnest/pkg/document"
	"github.com/matzehuels/graphnest/pkg/layout"
)

// Options configures a Runner.
type Options struct {
	// Config is the layout geometry.
	Config layout.Config
	// BreakCycles removes back edges before layout instead of only warning.
	BreakCycles bool
}

// DefaultOptions returns options with the default layout geometry.
func DefaultOptions() Options {
	return Options{Config: layout.DefaultConfig()}
}

// Validate checks the options before a run.
func (o Options) Validate() error {
	return o.Config.Validate()
}

// Result holds the outcome of one Execute call.
type Result struct {
	// Document is the input document with positions and bounds written back.
	Document document.Document
	// Layout lists the level buckets of every pass.
	Layout layout.Result
	// Warnings describes scene problems that did not stop the layout.
	Warnings []string
	Stats    Stats
}

// Stats summarizes a run.
type Stats struct {
	Items       int
	Edges       int
	Passes      int
	Levels      int
	EdgesBroken int
	Duration    time.Duration
}
