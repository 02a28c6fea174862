package diagram

// BreakCycles removes the back edges found by a depth-first search started
// from the scene's source items, then from any item left unvisited. It
// returns the number of edges removed.
//
// Layout never calls this itself; it places items on a cycle at level 1.
func BreakCycles(s *Scene) int {
	const (
		white = iota
		gray
		black
	)

	color := make(map[string]int)
	var backEdges [][2]string

	var dfs func(id string)
	dfs = func(id string) {
		color[id] = gray
		for _, child := range s.Children(id) {
			switch color[child] {
			case white:
				dfs(child)
			case gray:
				backEdges = append(backEdges, [2]string{id, child})
			}
		}
		color[id] = black
	}

	items := s.Items()
	for _, it := range items {
		if len(s.Parents(it.ID)) == 0 && color[it.ID] == white {
			dfs(it.ID)
		}
	}
	for _, it := range items {
		if color[it.ID] == white {
			dfs(it.ID)
		}
	}

	for _, e := range backEdges {
		s.RemoveEdge(e[0], e[1])
	}
	return len(backEdges)
}
