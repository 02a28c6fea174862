package layout

import (
	"github.com/matzehuels/graphnest/pkg/diagram"
)

// node is the arena entry for one attached item. Handles into the arena are
// plain indices; the string id is kept for ordering and write-back.
type node struct {
	id        string
	width     float64
	height    float64
	container bool
	parent    int // arena index of the owning container, -1 at top level
	def       diagram.Rect

	x, y   float64
	bounds diagram.Rect
}

// snapshot is the extracted, immutable-shape view of a scene for one pass.
type snapshot struct {
	nodes      []node
	index      map[string]int
	edges      [][2]int
	containers []int
	topLevel   []int
	members    map[int][]int
}

// extract partitions the attached items into containers, top-level items and
// per-container member lists, and keeps the edges whose endpoints are both
// attached. Detached items are dropped entirely.
func extract(items []*diagram.Item, edges []diagram.Edge) *snapshot {
	s := &snapshot{
		index:   make(map[string]int, len(items)),
		members: make(map[int][]int),
	}

	for _, it := range items {
		if it == nil || it.Detached {
			continue
		}
		if _, dup := s.index[it.ID]; dup {
			continue
		}
		s.index[it.ID] = len(s.nodes)
		s.nodes = append(s.nodes, node{
			id:        it.ID,
			width:     it.Width,
			height:    it.Height,
			container: it.IsContainer(),
			parent:    -1,
			def:       it.Default,
		})
	}

	for _, it := range items {
		if it == nil || it.Detached || it.Container == "" {
			continue
		}
		i := s.index[it.ID]
		// An item whose container is unknown, detached or not a container is
		// laid out with the top-level items.
		if p, ok := s.index[it.Container]; ok && s.nodes[p].container && p != i {
			s.nodes[i].parent = p
		}
	}
	s.cutContainmentLoops()

	for i := range s.nodes {
		n := &s.nodes[i]
		if n.container {
			s.containers = append(s.containers, i)
		}
		if n.parent < 0 {
			s.topLevel = append(s.topLevel, i)
		} else {
			s.members[n.parent] = append(s.members[n.parent], i)
		}
	}

	for _, e := range edges {
		from, okF := s.index[e.From]
		to, okT := s.index[e.To]
		if !okF || !okT || from == to {
			continue
		}
		s.edges = append(s.edges, [2]int{from, to})
	}
	return s
}

// cutContainmentLoops promotes to top level the first item found on each
// membership loop, so every item is reachable from the top level.
func (s *snapshot) cutContainmentLoops() {
	for i := range s.nodes {
		seen := map[int]bool{i: true}
		for cur := s.nodes[i].parent; cur >= 0; cur = s.nodes[cur].parent {
			if seen[cur] {
				s.nodes[cur].parent = -1
				break
			}
			seen[cur] = true
		}
	}
}

// depth counts the containers above node i.
func (s *snapshot) depth(i int) int {
	d := 0
	for p := s.nodes[i].parent; p >= 0; p = s.nodes[p].parent {
		d++
	}
	return d
}
