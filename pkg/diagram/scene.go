package diagram

import (
	"errors"
	"slices"
)

var (
	// ErrInvalidNodeID is returned by [Scene.AddItem] when the item ID is empty.
	ErrInvalidNodeID = errors.New("item ID must not be empty")

	// ErrDuplicateNodeID is returned by [Scene.AddItem] when an item with the
	// same ID already exists.
	ErrDuplicateNodeID = errors.New("duplicate item ID")

	// ErrUnknownSourceNode is returned by [Scene.AddEdge] when the From item
	// does not exist.
	ErrUnknownSourceNode = errors.New("unknown source item")

	// ErrUnknownTargetNode is returned by [Scene.AddEdge] when the To item
	// does not exist.
	ErrUnknownTargetNode = errors.New("unknown target item")

	// ErrSelfLoop is returned by [Scene.AddEdge] for an edge from an item to itself.
	ErrSelfLoop = errors.New("edge must not connect an item to itself")

	// ErrUnknownContainer is returned by [Scene.Validate] when an item names a
	// container that does not exist or is not a container.
	ErrUnknownContainer = errors.New("unknown container")

	// ErrContainmentCycle is returned by [Scene.Validate] when container
	// membership loops back on itself.
	ErrContainmentCycle = errors.New("container membership contains a cycle")

	// ErrGraphHasCycle is returned by [Scene.Validate] when the dependency
	// edges contain a directed cycle.
	ErrGraphHasCycle = errors.New("dependency graph contains a cycle")
)

// Kind distinguishes plain task nodes from containers.
type Kind int

const (
	// KindNode is a plain work item.
	KindNode Kind = iota
	// KindContainer is an item that may own other items.
	KindContainer
)

// String returns the document spelling of the kind.
func (k Kind) String() string {
	if k == KindContainer {
		return "container"
	}
	return "node"
}

// Rect is an axis-aligned rectangle in the owning container's coordinates.
type Rect struct {
	X, Y          float64
	Width, Height float64
}

// Empty reports whether r has no positive area.
func (r Rect) Empty() bool { return r.Width <= 0 || r.Height <= 0 }

// Item is one diagram element eligible for layout.
//
// Width and Height are the current visual size. For containers they follow
// Bounds once bounds have been set. Container holds the owning container's
// ID, or "" for top-level items. Detached items are still known to the scene
// but are not part of the rendered graph and are ignored by layout.
type Item struct {
	ID        string
	Label     string
	Type      string // task type, e.g. "http" or "shell"
	Kind      Kind
	Width     float64
	Height    float64
	Container string
	Detached  bool

	X, Y float64

	// Default is the empty-state rectangle a container reverts to.
	Default Rect
	// Bounds is the container's current content rectangle.
	Bounds Rect
}

// IsContainer reports whether the item may own other items.
func (it *Item) IsContainer() bool { return it.Kind == KindContainer }

// Edge is a dependency: To depends on From.
type Edge struct {
	From string
	To   string
}

// Scene is the editor's live set of items and dependency edges.
//
// Items are kept in insertion order so every traversal is deterministic.
// The zero value is not usable - use New. Scene is not safe for concurrent use.
type Scene struct {
	items    map[string]*Item
	order    []string
	edges    []Edge
	outgoing map[string][]string
	incoming map[string][]string
}

// New creates an empty scene.
func New() *Scene {
	return &Scene{
		items:    make(map[string]*Item),
		outgoing: make(map[string][]string),
		incoming: make(map[string][]string),
	}
}

// AddItem adds an item to the scene. Containers without explicit bounds start
// at their default rectangle, and their size follows it.
func (s *Scene) AddItem(it Item) error {
	if it.ID == "" {
		return ErrInvalidNodeID
	}
	if _, exists := s.items[it.ID]; exists {
		return ErrDuplicateNodeID
	}
	item := &it
	if item.IsContainer() {
		if item.Bounds.Empty() {
			item.Bounds = item.Default
		}
		if !item.Bounds.Empty() {
			item.Width, item.Height = item.Bounds.Width, item.Bounds.Height
		}
	}
	s.items[item.ID] = item
	s.order = append(s.order, item.ID)
	return nil
}

// AddEdge adds a dependency edge between two existing items.
// Parallel edges are allowed.
func (s *Scene) AddEdge(e Edge) error {
	if _, ok := s.items[e.From]; !ok {
		return ErrUnknownSourceNode
	}
	if _, ok := s.items[e.To]; !ok {
		return ErrUnknownTargetNode
	}
	if e.From == e.To {
		return ErrSelfLoop
	}
	s.edges = append(s.edges, e)
	s.outgoing[e.From] = append(s.outgoing[e.From], e.To)
	s.incoming[e.To] = append(s.incoming[e.To], e.From)
	return nil
}

// RemoveEdge removes the first edge from→to if it exists.
func (s *Scene) RemoveEdge(from, to string) {
	i := slices.IndexFunc(s.edges, func(e Edge) bool { return e.From == from && e.To == to })
	if i < 0 {
		return
	}
	s.edges = slices.Delete(s.edges, i, i+1)
	if j := slices.Index(s.outgoing[from], to); j >= 0 {
		s.outgoing[from] = slices.Delete(s.outgoing[from], j, j+1)
	}
	if j := slices.Index(s.incoming[to], from); j >= 0 {
		s.incoming[to] = slices.Delete(s.incoming[to], j, j+1)
	}
}

// Item returns the item with the given ID.
func (s *Scene) Item(id string) (*Item, bool) {
	it, ok := s.items[id]
	return it, ok
}

// Items returns all items in insertion order. The pointers refer to the
// scene's own items.
func (s *Scene) Items() []*Item {
	out := make([]*Item, len(s.order))
	for i, id := range s.order {
		out[i] = s.items[id]
	}
	return out
}

// Edges returns a copy of all edges in insertion order.
func (s *Scene) Edges() []Edge { return slices.Clone(s.edges) }

// ItemCount returns the number of items, attached or not.
func (s *Scene) ItemCount() int { return len(s.items) }

// EdgeCount returns the number of edges.
func (s *Scene) EdgeCount() int { return len(s.edges) }

// Children returns the IDs of items that depend on id.
func (s *Scene) Children(id string) []string { return s.outgoing[id] }

// Parents returns the IDs of items id depends on.
func (s *Scene) Parents(id string) []string { return s.incoming[id] }

// Members returns the items whose container is id, in insertion order.
func (s *Scene) Members(id string) []*Item {
	var out []*Item
	for _, oid := range s.order {
		if it := s.items[oid]; it.Container == id {
			out = append(out, it)
		}
	}
	return out
}

// SetPosition moves an item. Unknown IDs are ignored.
func (s *Scene) SetPosition(id string, x, y float64) {
	if it, ok := s.items[id]; ok {
		it.X, it.Y = x, y
	}
}

// SetBounds replaces a container's content rectangle and resizes it to match.
// Unknown IDs and plain nodes are ignored.
func (s *Scene) SetBounds(id string, r Rect) {
	it, ok := s.items[id]
	if !ok || !it.IsContainer() {
		return
	}
	it.Bounds = r
	it.Width, it.Height = r.Width, r.Height
}

// Validate checks scene integrity. It verifies that every edge references
// known items, that container references resolve to containers without
// looping, and that the dependency edges are acyclic.
//
// Layout does not require a valid scene; Validate exists so callers can
// warn before laying out.
func (s *Scene) Validate() error {
	for _, e := range s.edges {
		if _, ok := s.items[e.From]; !ok {
			return ErrUnknownSourceNode
		}
		if _, ok := s.items[e.To]; !ok {
			return ErrUnknownTargetNode
		}
	}
	if err := s.validateContainment(); err != nil {
		return err
	}
	return s.detectCycles()
}

func (s *Scene) validateContainment() error {
	for _, id := range s.order {
		seen := map[string]bool{id: true}
		for cur := s.items[id].Container; cur != ""; {
			parent, ok := s.items[cur]
			if !ok || !parent.IsContainer() {
				return ErrUnknownContainer
			}
			if seen[cur] {
				return ErrContainmentCycle
			}
			seen[cur] = true
			cur = parent.Container
		}
	}
	return nil
}

func (s *Scene) detectCycles() error {
	const (
		white = iota
		gray
		black
	)

	color := make(map[string]int, len(s.items))
	var hasCycle bool

	var dfs func(id string)
	dfs = func(id string) {
		color[id] = gray
		for _, child := range s.outgoing[id] {
			switch color[child] {
			case white:
				dfs(child)
			case gray:
				hasCycle = true
				return
			}
		}
		color[id] = black
	}

	for _, id := range s.order {
		if color[id] == white {
			dfs(id)
			if hasCycle {
				return ErrGraphHasCycle
			}
		}
	}
	return nil
}
