package hull

import "brickforge.ai/internal/model"

// fillTopView expands the AI-supplied sparse top view into a filled (x,z)
// set by scan-line filling: any Z row holding two or more cells is filled
// between its extremes, likewise any X column, and a cell isolated in both
// its row and column gets a one-cell pad on each side in X. The AI tends to
// supply outlines, not filled areas, so the raw cells alone undercount badly.
func fillTopView(tv model.TopView, width, depth int) map[[2]int]struct{} {
	seed := make(map[[2]int]struct{})
	add := func(x, z int) {
		if x >= 0 && x < width && z >= 0 && z < depth {
			seed[[2]int{x, z}] = struct{}{}
		}
	}
	for _, c := range tv.Cells {
		add(c.X, c.Z)
	}
	for _, r := range tv.Rows {
		for x := r.XMin; x <= r.XMax; x++ {
			add(x, r.Z)
		}
	}

	rowX := make(map[int][2]int)  // z -> min/max x
	colZ := make(map[int][2]int)  // x -> min/max z
	rowN := make(map[int]int)
	colN := make(map[int]int)
	for k := range seed {
		x, z := k[0], k[1]
		if n := rowN[z]; n == 0 {
			rowX[z] = [2]int{x, x}
		} else {
			r := rowX[z]
			if x < r[0] {
				r[0] = x
			}
			if x > r[1] {
				r[1] = x
			}
			rowX[z] = r
		}
		rowN[z]++
		if n := colN[x]; n == 0 {
			colZ[x] = [2]int{z, z}
		} else {
			c := colZ[x]
			if z < c[0] {
				c[0] = z
			}
			if z > c[1] {
				c[1] = z
			}
			colZ[x] = c
		}
		colN[x]++
	}

	filled := make(map[[2]int]struct{}, len(seed))
	for k := range seed {
		filled[k] = struct{}{}
	}
	addFilled := func(x, z int) {
		if x >= 0 && x < width && z >= 0 && z < depth {
			filled[[2]int{x, z}] = struct{}{}
		}
	}
	for z, n := range rowN {
		if n < 2 {
			continue
		}
		r := rowX[z]
		for x := r[0]; x <= r[1]; x++ {
			addFilled(x, z)
		}
	}
	for x, n := range colN {
		if n < 2 {
			continue
		}
		c := colZ[x]
		for z := c[0]; z <= c[1]; z++ {
			addFilled(x, z)
		}
	}
	for k := range seed {
		x, z := k[0], k[1]
		if rowN[z] == 1 && colN[x] == 1 {
			addFilled(x-1, z)
			addFilled(x+1, z)
		}
	}
	return filled
}
