// Package diagram holds the editor's scene: task items, containers that own
// other items, and the dependency edges between them.
//
// # Basic Usage
//
//	s := diagram.New()
//	s.AddItem(diagram.Item{ID: "fetch", Width: 200, Height: 100})
//	s.AddItem(diagram.Item{ID: "store", Width: 200, Height: 100})
//	s.AddEdge(diagram.Edge{From: "fetch", To: "store"})
//
// An edge From→To means To depends on From. Container membership is recorded
// on each item via [Item.Container]; an empty value marks a top-level item.
// Detached items stay in the scene but are skipped by layout.
//
// # Write-back
//
// [Scene.SetPosition] and [Scene.SetBounds] are the only mutations performed
// by the layout engine. Positions are relative to the owning container.
//
// # Concurrency
//
// Scene instances are not safe for concurrent use.
package diagram
