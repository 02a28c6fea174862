// Package pkg provides the core libraries for Graphnest task graph layout.
//
// # Overview
//
// Graphnest places the items of a task execution graph (work items joined by
// dependency edges, possibly nested inside container items) at
// non-overlapping, dependency-ordered positions. The pkg directory is
// organized as follows:
//
//  1. [diagram] - The in-memory scene: items, containers, edges
//  2. [layout] - The nested hierarchical layout engine
//  3. [document] - JSON and TOML documents converted to and from scenes
//  4. [pipeline] - Orchestration (import → check → layout → export)
//  5. [errors], [observability], [buildinfo] - Shared infrastructure
//
// # Architecture
//
// The typical data flow through Graphnest:
//
//	JSON/TOML document
//	         ↓
//	    [document] package (decode, validate ids and sizes)
//	         ↓
//	    [diagram] package (scene + integrity checks)
//	         ↓
//	    [layout] package (level → pack → position, containers deepest first)
//	         ↓
//	    document with x/y and container bounds
//
// # Quick Start
//
//	doc, _ := document.ReadFile(ctx, "graph.json")
//	scene, _ := document.ToScene(doc)
//	layout.Apply(scene, layout.DefaultConfig())
//	_ = document.WriteFile(ctx, document.FromScene(doc.Name, scene), "graph.layout.json")
//
// # Main Packages
//
// [layout] - Each container's members are laid out first, deepest nesting
// first, and the container is resized to fit them. The top-level items are
// laid out last. Every pass assigns longest-path levels, packs each level
// into at most MaxSlotsPerLevel slots (tall containers cost more than one),
// pushes overflow to deeper levels and converts the result to coordinates.
//
// [diagram] - Scene model implementing the surface the engine reads and
// writes. Also reports dependency cycles and broken container references,
// which the engine tolerates but callers usually want to know about.
//
// [pipeline] - The sequence shared by the CLI and the HTTP server, with
// logging, warnings and hook reporting around the pure layout call.
//
// # Testing
//
//	go test ./pkg/...                    # All tests
//	go test ./pkg/layout/...             # Specific package
//	go test -run Example ./pkg/...       # Examples only
//
// [diagram]: https://pkg.go.dev/github.com/matzehuels/graphnest/pkg/diagram
// [layout]: https://pkg.go.dev/github.com/matzehuels/graphnest/pkg/layout
// [document]: https://pkg.go.dev/github.com/matzehuels/graphnest/pkg/document
// [pipeline]: https://pkg.go.dev/github.com/matzehuels/graphnest/pkg/pipeline
// [errors]: https://pkg.go.dev/github.com/matzehuels/graphnest/pkg/errors
// [observability]: https://pkg.go.dev/github.com/matzehuels/graphnest/pkg/observability
// [buildinfo]: https://pkg.go.dev/github.com/matzehuels/graphnest/pkg/buildinfo
package pkg
