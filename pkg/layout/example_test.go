package layout_test

import (
	"fmt"

	"github.com/matzehuels/graphnest/pkg/diagram"
	"github.com/matzehuels/graphnest/pkg/layout"
)

func ExampleApply() {
	s := diagram.New()
	s.AddItem(diagram.Item{ID: "fetch", Width: 200, Height: 100})
	s.AddItem(diagram.Item{ID: "parse", Width: 200, Height: 100})
	s.AddItem(diagram.Item{ID: "store", Width: 200, Height: 100})
	s.AddEdge(diagram.Edge{From: "fetch", To: "parse"})
	s.AddEdge(diagram.Edge{From: "parse", To: "store"})

	layout.Apply(s, layout.DefaultConfig())

	for _, it := range s.Items() {
		fmt.Printf("%s: (%.0f, %.0f)\n", it.ID, it.X, it.Y)
	}
	// Output:
	// fetch: (0, 0)
	// parse: (300, 0)
	// store: (600, 0)
}

func ExampleRun() {
	s := diagram.New()
	s.AddItem(diagram.Item{ID: "group", Kind: diagram.KindContainer})
	s.AddItem(diagram.Item{ID: "a", Width: 200, Height: 100, Container: "group"})
	s.AddItem(diagram.Item{ID: "b", Width: 200, Height: 100, Container: "group"})
	s.AddItem(diagram.Item{ID: "c", Width: 200, Height: 100})
	s.AddEdge(diagram.Edge{From: "a", To: "b"})
	s.AddEdge(diagram.Edge{From: "group", To: "c"})

	res := layout.Run(s, layout.DefaultConfig())
	for _, p := range res.Passes {
		name := p.Container
		if name == "" {
			name = "(top)"
		}
		for _, l := range p.Levels {
			fmt.Println(name, l.Number, l.Nodes)
		}
	}
	// Output:
	// group 1 [a]
	// group 2 [b]
	// (top) 1 [group]
	// (top) 2 [c]
}
