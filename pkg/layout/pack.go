package layout

import (
	"math"
	"slices"
	"strings"
)

// bucket is the ordered list of nodes placed on one level.
type bucket struct {
	level int
	nodes []int
}

// slotCost is the number of rows a node occupies: 1 for a plain node, the
// container's height in base-node heights (clamped to [1, MaxSlotCost]) for
// a container.
func (e *engine) slotCost(n int) int {
	nd := &e.snap.nodes[n]
	if !nd.container {
		return 1
	}
	cost := int(math.Ceil(nd.height / e.cfg.BaseNodeHeight))
	return min(max(cost, 1), e.cfg.MaxSlotCost)
}

// effectiveCost is the slot cost counted against a level's capacity.
func (e *engine) effectiveCost(n int) int {
	return min(e.slotCost(n), e.cfg.MaxSlotsPerLevel)
}

// pack groups nodes into level buckets and moves overflow from any level
// whose effective cost exceeds MaxSlotsPerLevel to the next level down.
// Levels are processed from a work queue that grows when overflow opens a
// new deepest level.
func (e *engine) pack(g *subgraph, levels map[int]int, maxLevel int) []bucket {
	byLevel := make(map[int][]int, maxLevel)
	for _, n := range g.nodes {
		byLevel[levels[n]] = append(byLevel[levels[n]], n)
	}

	pending := make([]int, 0, maxLevel)
	for l := 1; l <= maxLevel; l++ {
		pending = append(pending, l)
	}

	for len(pending) > 0 {
		level := pending[0]
		pending = pending[1:]

		kept, pushed := e.split(g, byLevel[level])
		byLevel[level] = kept
		if len(pushed) == 0 {
			continue
		}
		next := level + 1
		byLevel[next] = append(byLevel[next], pushed...)
		if next > maxLevel {
			maxLevel = next
			pending = append(pending, next)
		}
	}

	out := make([]bucket, 0, maxLevel)
	for l := 1; l <= maxLevel; l++ {
		out = append(out, bucket{level: l, nodes: byLevel[l]})
	}
	return out
}

// split returns the nodes that stay on a level, in display order, and the
// nodes pushed to the next level, in push order.
func (e *engine) split(g *subgraph, nodes []int) (kept, pushed []int) {
	display := slices.Clone(nodes)
	slices.SortFunc(display, func(a, b int) int { return e.compareDisplay(g, a, b) })

	total := 0
	for _, n := range display {
		total += e.effectiveCost(n)
	}
	if total <= e.cfg.MaxSlotsPerLevel {
		return display, nil
	}

	order := slices.Clone(nodes)
	slices.SortFunc(order, func(a, b int) int { return e.comparePush(g, a, b) })

	removed := make(map[int]bool)
	for _, n := range order {
		if total <= e.cfg.MaxSlotsPerLevel {
			break
		}
		removed[n] = true
		pushed = append(pushed, n)
		total -= e.effectiveCost(n)
	}

	for _, n := range display {
		if !removed[n] {
			kept = append(kept, n)
		}
	}
	return kept, pushed
}

// compareDisplay orders busy nodes first: nodes with dependents before
// nodes without, then more dependents first, then by id.
func (e *engine) compareDisplay(g *subgraph, a, b int) int {
	ca, cb := g.childCount(a), g.childCount(b)
	if ha, hb := ca > 0, cb > 0; ha != hb {
		if ha {
			return -1
		}
		return 1
	}
	if ca != cb {
		return cb - ca
	}
	return strings.Compare(e.snap.nodes[a].id, e.snap.nodes[b].id)
}

// comparePush orders the least connected nodes first: nodes without
// dependents, then fewer dependents, then by id.
func (e *engine) comparePush(g *subgraph, a, b int) int {
	ca, cb := g.childCount(a), g.childCount(b)
	if ha, hb := ca > 0, cb > 0; ha != hb {
		if hb {
			return -1
		}
		return 1
	}
	if ca != cb {
		return ca - cb
	}
	return strings.Compare(e.snap.nodes[a].id, e.snap.nodes[b].id)
}
