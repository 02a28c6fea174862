package layout

// position assigns coordinates level by level, left to right. Each level is
// one column; within a column a node starts at the row after the slots used
// by the nodes above it. Vertical space uses the raw slot cost, so a tall
// container keeps all of its rows even though its packing cost was capped.
func (e *engine) position(buckets []bucket) {
	colX := 0.0
	for _, b := range buckets {
		maxWidth := 0.0
		for _, n := range b.nodes {
			maxWidth = max(maxWidth, e.snap.nodes[n].width)
		}
		if maxWidth <= 0 {
			maxWidth = e.cfg.BaseNodeWidth
		}

		rowSlots := 0
		for _, n := range b.nodes {
			nd := &e.snap.nodes[n]
			nd.x = colX
			nd.y = float64(rowSlots) * e.cfg.SpacingY
			rowSlots += e.slotCost(n)
		}

		colX += max(e.cfg.SpacingX, maxWidth+e.cfg.MinGapX)
	}
}
