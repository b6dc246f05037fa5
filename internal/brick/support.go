package brick

// dropFloating removes every brick with no stud-overlap path down to the
// ground layer. Two bricks are connected when they sit exactly one level
// apart and their footprints share at least one (x,z) cell. Pure graph
// post-processing: independent of placement order.
func dropFloating(bricks []Brick, tr *Trace) []Brick {
	if len(bricks) == 0 {
		return bricks
	}

	// Per-layer cell -> brick index.
	cellsAt := map[int]map[cell]int{}
	for i, b := range bricks {
		m, ok := cellsAt[b.Y]
		if !ok {
			m = map[cell]int{}
			cellsAt[b.Y] = m
		}
		for x := b.X; x < b.X+b.Width; x++ {
			for z := b.Z; z < b.Z+b.Depth; z++ {
				m[cell{x, z}] = i
			}
		}
	}

	reached := make([]bool, len(bricks))
	var queue []int
	for i, b := range bricks {
		if b.Y == 0 {
			reached[i] = true
			queue = append(queue, i)
		}
	}
	for len(queue) > 0 {
		i := queue[0]
		queue = queue[1:]
		b := bricks[i]
		for _, ny := range [2]int{b.Y - 1, b.Y + 1} {
			m := cellsAt[ny]
			if m == nil {
				continue
			}
			for x := b.X; x < b.X+b.Width; x++ {
				for z := b.Z; z < b.Z+b.Depth; z++ {
					if j, ok := m[cell{x, z}]; ok && !reached[j] {
						reached[j] = true
						queue = append(queue, j)
					}
				}
			}
		}
	}

	out := make([]Brick, 0, len(bricks))
	for i, b := range bricks {
		if reached[i] {
			out = append(out, b)
		}
	}
	tr.floating(len(bricks) - len(out))
	return out
}
