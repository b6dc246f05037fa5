package brick

import (
	"sort"

	"brickforge.ai/internal/model"
	"brickforge.ai/internal/voxel"
)

type cell struct{ x, z int }

// layerMap is the per-Y occupancy of the input volume: cell -> voxel color.
type layerMap map[cell]model.Color

// Pack converts a voxel volume into placed bricks. Layer Y=0 uses the plain
// greedy placer; every layer above interlocks against the bricks one level
// below (including Y=1 against the foundation, so the foundation itself ends
// up stagger-jointed). Floating bricks are removed last. An empty input
// yields an empty output, not an error.
func Pack(voxels []voxel.Voxel, tr *Trace) []Brick {
	if len(voxels) == 0 {
		return nil
	}

	maxY := 0
	layers := map[int]layerMap{}
	for _, v := range voxels {
		if v.Y > maxY {
			maxY = v.Y
		}
		lm, ok := layers[v.Y]
		if !ok {
			lm = layerMap{}
			layers[v.Y] = lm
		}
		lm[cell{v.X, v.Z}] = v.Color
	}

	var out []Brick
	var prev []Brick
	for y := 0; y <= maxY; y++ {
		lm := layers[y]
		if len(lm) == 0 {
			prev = nil
			continue
		}
		var placed []Brick
		if y == 0 {
			placed = packSimple(lm, y)
		} else {
			placed = packInterlocked(lm, y, prev)
		}
		tr.layer(y, len(lm), len(placed))
		out = append(out, placed...)
		prev = placed
	}

	return dropFloating(out, tr)
}

// scanOrder returns the layer's cells sorted x-major then z, the fixed
// placement scan order of both placers.
func scanOrder(lm layerMap) []cell {
	cells := make([]cell, 0, len(lm))
	for c := range lm {
		cells = append(cells, c)
	}
	sort.Slice(cells, func(i, j int) bool {
		if cells[i].x != cells[j].x {
			return cells[i].x < cells[j].x
		}
		return cells[i].z < cells[j].z
	})
	return cells
}

// fits reports whether a w x d footprint anchored at (x,z) is fully covered
// by unused cells of one uniform color, and returns that color.
func fits(lm layerMap, used map[cell]bool, x, z, w, d int) (model.Color, bool) {
	color, ok := lm[cell{x, z}]
	if !ok {
		return "", false
	}
	for dx := 0; dx < w; dx++ {
		for dz := 0; dz < d; dz++ {
			c := cell{x + dx, z + dz}
			if used[c] {
				return "", false
			}
			cc, ok := lm[c]
			if !ok || cc != color {
				return "", false
			}
		}
	}
	return color, true
}

func markUsed(used map[cell]bool, x, z, w, d int) {
	for dx := 0; dx < w; dx++ {
		for dz := 0; dz < d; dz++ {
			used[cell{x + dx, z + dz}] = true
		}
	}
}

// packSimple is the foundation placer: strict size-preference order, first
// fit wins.
func packSimple(lm layerMap, y int) []Brick {
	used := map[cell]bool{}
	var out []Brick
	for _, c := range scanOrder(lm) {
		if used[c] {
			continue
		}
		for _, wd := range sizePreference {
			w, d := wd[0], wd[1]
			color, ok := fits(lm, used, c.x, c.z, w, d)
			if !ok {
				continue
			}
			markUsed(used, c.x, c.z, w, d)
			out = append(out, Brick{Width: w, Depth: d, X: c.x, Y: y, Z: c.z, Color: color})
			break
		}
	}
	return out
}

// packInterlocked scores every feasible candidate size by how many
// parent-layer seams it crosses, plus a small area bonus so bigger bricks
// win ties. A brick straddling a joint below binds both lower neighbors
// together; that is the whole interlocking mechanism.
func packInterlocked(lm layerMap, y int, parents []Brick) []Brick {
	seams := collectSeams(parents)
	used := map[cell]bool{}
	var out []Brick
	for _, c := range scanOrder(lm) {
		if used[c] {
			continue
		}
		bestScore := -1.0
		var best Brick
		for _, wd := range sizePreference {
			w, d := wd[0], wd[1]
			color, ok := fits(lm, used, c.x, c.z, w, d)
			if !ok {
				continue
			}
			score := float64(seams.crossed(c.x, c.z, w, d)) + float64(w*d)*interlockAreaBonus
			if score > bestScore {
				bestScore = score
				best = Brick{Width: w, Depth: d, X: c.x, Y: y, Z: c.z, Color: color}
			}
		}
		if bestScore < 0 {
			// 1x1 always fits an occupied cell, so this cannot happen.
			continue
		}
		markUsed(used, best.X, best.Z, best.Width, best.Depth)
		out = append(out, best)
	}
	return out
}
