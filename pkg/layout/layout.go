package layout

import (
	"cmp"
	"slices"

	"github.com/matzehuels/graphnest/pkg/diagram"
)

// Scene is the editor surface a layout pass reads from and writes to.
// [*diagram.Scene] implements it.
type Scene interface {
	Items() []*diagram.Item
	Edges() []diagram.Edge
	SetPosition(id string, x, y float64)
	SetBounds(id string, r diagram.Rect)
}

// Result describes the level buckets produced by one invocation, for
// inspection. It holds no state used by later invocations.
type Result struct {
	// Passes lists the container passes deepest first, then the top-level pass.
	Passes []Pass
}

// Pass is the outcome of laying out one container's members, or the
// top-level items when Container is empty.
type Pass struct {
	Container string
	Levels    []Level
}

// Level is one column of a pass, with its nodes in placement order.
type Level struct {
	Number int
	Nodes  []string
}

// NodeCount returns the number of nodes placed in the pass.
func (p Pass) NodeCount() int {
	n := 0
	for _, l := range p.Levels {
		n += len(l.Nodes)
	}
	return n
}

// engine carries the state of a single invocation.
type engine struct {
	cfg  Config
	snap *snapshot
}

// Apply lays out every attached item of s and writes the results back
// through SetBounds (containers) and SetPosition (all attached items).
func Apply(s Scene, cfg Config) {
	Run(s, cfg)
}

// Run is [Apply] that also reports the level buckets of each pass.
//
// Containers are laid out deepest first so a container's size is final
// before the pass that contains it reads that size. An empty scene is a
// no-op.
func Run(s Scene, cfg Config) Result {
	e := &engine{cfg: cfg, snap: extract(s.Items(), s.Edges())}
	if len(e.snap.nodes) == 0 {
		return Result{}
	}

	var res Result
	for _, c := range e.containerOrder() {
		members := e.snap.members[c]
		var levels []Level
		if len(members) > 0 {
			levels = e.pass(members)
		}
		e.fit(c)
		res.Passes = append(res.Passes, Pass{Container: e.snap.nodes[c].id, Levels: levels})
	}
	res.Passes = append(res.Passes, Pass{Levels: e.pass(e.snap.topLevel)})

	for _, c := range e.snap.containers {
		nd := &e.snap.nodes[c]
		s.SetBounds(nd.id, nd.bounds)
	}
	for i := range e.snap.nodes {
		nd := &e.snap.nodes[i]
		s.SetPosition(nd.id, nd.x, nd.y)
	}
	return res
}

// containerOrder sorts containers by nesting depth, deepest first, breaking
// ties by id.
func (e *engine) containerOrder() []int {
	order := slices.Clone(e.snap.containers)
	depth := make(map[int]int, len(order))
	for _, c := range order {
		depth[c] = e.snap.depth(c)
	}
	slices.SortFunc(order, func(a, b int) int {
		if d := cmp.Compare(depth[b], depth[a]); d != 0 {
			return d
		}
		return cmp.Compare(e.snap.nodes[a].id, e.snap.nodes[b].id)
	})
	return order
}

// pass runs level assignment, packing and positioning over one node set.
func (e *engine) pass(set []int) []Level {
	if len(set) == 0 {
		return nil
	}
	g := newSubgraph(e.snap, set)
	levels, maxLevel := g.assignLevels()
	buckets := e.pack(g, levels, maxLevel)
	e.position(buckets)

	out := make([]Level, len(buckets))
	for i, b := range buckets {
		ids := make([]string, len(b.nodes))
		for j, n := range b.nodes {
			ids[j] = e.snap.nodes[n].id
		}
		out[i] = Level{Number: b.level, Nodes: ids}
	}
	return out
}

// fit shrink-wraps container c around its members. The box is the union of
// the members' rectangles, pushed out on each side by half the size of the
// member that defines that side. A container without members, or whose box
// has no area, reverts to its default rectangle.
func (e *engine) fit(c int) {
	nd := &e.snap.nodes[c]
	r, ok := e.childBounds(e.snap.members[c])
	if !ok || r.Empty() {
		r = nd.def
	}
	nd.bounds = r
	nd.width, nd.height = r.Width, r.Height
}

func (e *engine) childBounds(members []int) (diagram.Rect, bool) {
	if len(members) == 0 {
		return diagram.Rect{}, false
	}
	first := &e.snap.nodes[members[0]]
	left, right, top, bottom := first, first, first, first
	for _, m := range members[1:] {
		n := &e.snap.nodes[m]
		if n.x < left.x {
			left = n
		}
		if n.x+n.width > right.x+right.width {
			right = n
		}
		if n.y < top.y {
			top = n
		}
		if n.y+n.height > bottom.y+bottom.height {
			bottom = n
		}
	}

	minX := left.x - left.width/2
	maxX := right.x + right.width + right.width/2
	minY := top.y - top.height/2
	maxY := bottom.y + bottom.height + bottom.height/2
	return diagram.Rect{X: minX, Y: minY, Width: maxX - minX, Height: maxY - minY}, true
}
