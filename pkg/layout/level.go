package layout

import (
	"slices"
	"strings"
)

// subgraph is a node set together with the edges restricted to it.
// Adjacency is deduplicated, so parallel edges count once.
type subgraph struct {
	snap     *snapshot
	nodes    []int // sorted by id
	children map[int][]int
	parents  map[int][]int
}

func newSubgraph(snap *snapshot, set []int) *subgraph {
	g := &subgraph{
		snap:     snap,
		nodes:    slices.Clone(set),
		children: make(map[int][]int, len(set)),
		parents:  make(map[int][]int, len(set)),
	}
	slices.SortFunc(g.nodes, func(a, b int) int {
		return strings.Compare(snap.nodes[a].id, snap.nodes[b].id)
	})

	in := make(map[int]bool, len(set))
	for _, n := range set {
		in[n] = true
	}
	seen := make(map[[2]int]bool)
	for _, e := range snap.edges {
		if !in[e[0]] || !in[e[1]] || seen[e] {
			continue
		}
		seen[e] = true
		g.children[e[0]] = append(g.children[e[0]], e[1])
		g.parents[e[1]] = append(g.parents[e[1]], e[0])
	}
	return g
}

// childCount is the number of distinct dependents of n inside the subgraph.
func (g *subgraph) childCount(n int) int { return len(g.children[n]) }

// assignLevels computes each node's longest-path depth from a root, starting
// at 1, using Kahn-style relaxation. Roots are seeded in id order.
//
// Nodes on a cycle never reach zero in-degree. Those that were never given a
// level default to 1; no error is reported.
func (g *subgraph) assignLevels() (map[int]int, int) {
	levels := make(map[int]int, len(g.nodes))
	inDegree := make(map[int]int, len(g.nodes))
	queue := make([]int, 0, len(g.nodes))

	for _, n := range g.nodes {
		degree := len(g.parents[n])
		inDegree[n] = degree
		if degree == 0 {
			levels[n] = 1
			queue = append(queue, n)
		}
	}

	for len(queue) > 0 {
		curr := queue[0]
		queue = queue[1:]

		for _, child := range g.children[curr] {
			if level := levels[curr] + 1; level > levels[child] {
				levels[child] = level
			}
			inDegree[child]--
			if inDegree[child] == 0 {
				queue = append(queue, child)
			}
		}
	}

	maxLevel := 0
	for _, n := range g.nodes {
		if levels[n] == 0 {
			levels[n] = 1
		}
		maxLevel = max(maxLevel, levels[n])
	}
	return levels, maxLevel
}
