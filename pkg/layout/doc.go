// Package layout computes automatic positions for a nested task graph.
//
// # Overview
//
// A scene holds task nodes, dependency edges and containers that own other
// items. [Apply] places every attached item in non-overlapping,
// dependency-ordered columns, recursing through containers:
//
//	s := diagram.New()
//	s.AddItem(diagram.Item{ID: "fetch", Width: 200, Height: 100})
//	s.AddItem(diagram.Item{ID: "store", Width: 200, Height: 100})
//	s.AddEdge(diagram.Edge{From: "fetch", To: "store"})
//	layout.Apply(s, layout.DefaultConfig())
//
// # Pipeline
//
// Each pass over a node set runs four stages:
//
//  1. Extraction: attached items are split into containers, top-level items
//     and per-container members; edges to detached items are dropped.
//  2. Leveling: every node gets its longest-path depth from a root,
//     starting at 1. Roots and isolated nodes are at level 1.
//  3. Packing: a level holds at most MaxSlotsPerLevel slots. Plain nodes
//     cost one slot; containers cost their height in base-node heights.
//     Overflow moves to the next level, least connected nodes first.
//  4. Positioning: levels become columns from left to right; nodes in a
//     column are stacked SpacingY apart per slot.
//
// Containers are processed deepest first. After its members are placed a
// container is shrink-wrapped around them, so the pass containing it sees
// its final size. Member positions are relative to their container.
//
// # Cycles
//
// Layout does not reject cyclic dependencies. Nodes on a cycle that never
// received a level are placed at level 1. Use [diagram.Scene.Validate] to
// detect cycles and [diagram.BreakCycles] to remove them beforehand.
//
// # Concurrency
//
// A pass is synchronous and keeps no state between invocations. The caller
// must not modify the scene while [Apply] runs.
package layout
