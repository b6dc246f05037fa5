// Package hull reconstructs a solid voxel volume from two or three
// orthogonal silhouette projections (visual-hull carving), with a secondary
// pass that keeps small contrasting-color features alive through the
// intersection.
package hull

import (
	"math"
	"sort"

	"brickforge.ai/internal/model"
	"brickforge.ai/internal/voxel"
)

// topCoveragePct is the percentage of the bounding-box footprint a top view
// must cover to be trusted; strictly below it the tri-view carve falls back
// to the two-view carve wholesale. Exactly at the threshold stays trusted.
const topCoveragePct = 30

// featureDepthFrac is how deep (as a fraction of the side view's Z-range) a
// front-view feature is projected into the volume, starting at z=0.
const featureDepthFrac = 0.30

// Result is a carved volume. FellBack is set when a tri-view carve ignored
// its top view for being too sparse.
type Result struct {
	Voxels   []voxel.Voxel
	FellBack bool
}

type span struct {
	pos, yMin, yMax int
	color           model.Color
}

// MultiView carves a volume from front and side projections: per height
// level, the full rectangular intersection of the front X-range and side
// Z-range is filled with the dominant color. Concave cross-sections overfill
// by design; the shape per level is a solid rectangle, not a finer outline.
func MultiView(m *model.MultiViewModel) Result {
	front := scaleSpans(m.FrontView.Columns)
	side := scaleSpans(m.SideView.Columns)
	levels := carveLevels(m.FrontView.Height, m.SideView.Height, m.BoundingBox.Height)
	return Result{Voxels: carve(front, side, levels, nil, m.BoundingBox)}
}

// TriView carves like MultiView but keeps only cells present in the filled
// top-view set. A top view covering less than topCoveragePct percent of the
// footprint is judged untrustworthy and the carve falls back to the pure
// two-view result, all or nothing, never a partial mix.
func TriView(m *model.TriViewModel) Result {
	front := scaleSpans(m.FrontView.Columns)
	side := scaleSpans(m.SideView.Columns)
	levels := carveLevels(m.FrontView.Height, m.SideView.Height, m.BoundingBox.Height)

	top := fillTopView(m.TopView, m.BoundingBox.Width, m.BoundingBox.Depth)
	if len(top)*100 < topCoveragePct*m.BoundingBox.Width*m.BoundingBox.Depth {
		return Result{Voxels: carve(front, side, levels, nil, m.BoundingBox), FellBack: true}
	}
	return Result{Voxels: carve(front, side, levels, top, m.BoundingBox)}
}

// scaleY rescales a raw view Y value (stud units) into plates.
func scaleY(y int) int {
	return int(math.Round(float64(y) * model.PlatesPerStud))
}

func scaleSpans(cols []model.Column) []span {
	out := make([]span, 0, len(cols))
	for _, c := range cols {
		out = append(out, span{pos: c.Position, yMin: scaleY(c.YMin), yMax: scaleY(c.YMax), color: c.Color})
	}
	return out
}

func carveLevels(frontH, sideH, boxH int) int {
	levels := scaleY(frontH)
	if h := scaleY(sideH); h < levels {
		levels = h
	}
	if boxH < levels {
		levels = boxH
	}
	return levels
}

// rangeAt returns the min/max span positions covering height level y.
func rangeAt(spans []span, y int) (lo, hi int, ok bool) {
	for _, s := range spans {
		if y < s.yMin || y >= s.yMax {
			continue
		}
		if !ok || s.pos < lo {
			lo = s.pos
		}
		if !ok || s.pos > hi {
			hi = s.pos
		}
		ok = true
	}
	return lo, hi, ok
}

// dominantColor picks the color with the largest cumulative span coverage
// across both views; ties break toward the lower palette id for determinism.
func dominantColor(front, side []span) model.Color {
	cover := map[model.Color]int{}
	for _, s := range front {
		cover[s.color] += s.yMax - s.yMin
	}
	for _, s := range side {
		cover[s.color] += s.yMax - s.yMin
	}
	var best model.Color
	bestN := -1
	for _, c := range model.Palette {
		if n, ok := cover[c]; ok && n > bestN {
			best, bestN = c, n
		}
	}
	return best
}

type cellKey struct{ x, y, z int }

func carve(front, side []span, levels int, top map[[2]int]struct{}, bb model.BoundingBox) []voxel.Voxel {
	dominant := dominantColor(front, side)
	set := make(map[cellKey]model.Color)

	for y := 0; y < levels; y++ {
		x0, x1, okX := rangeAt(front, y)
		z0, z1, okZ := rangeAt(side, y)
		if !okX || !okZ {
			continue
		}
		for z := z0; z <= z1; z++ {
			for x := x0; x <= x1; x++ {
				if x < 0 || x >= bb.Width || z < 0 || z >= bb.Depth {
					continue
				}
				if top != nil {
					if _, ok := top[[2]int{x, z}]; !ok {
						continue
					}
				}
				set[cellKey{x, y, z}] = dominant
			}
		}
	}

	addFeatures(set, front, side, levels, bb, dominant)

	out := make([]voxel.Voxel, 0, len(set))
	for k, c := range set {
		out = append(out, voxel.Voxel{X: k.x, Y: k.y, Z: k.z, Color: c})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Y != out[j].Y {
			return out[i].Y < out[j].Y
		}
		if out[i].Z != out[j].Z {
			return out[i].Z < out[j].Z
		}
		return out[i].X < out[j].X
	})
	return out
}

// addFeatures unions feature-colored columns into the volume unconditionally:
// a naive intersection erases thin contrasting details (an eye, a beak)
// whose footprint is too small to survive the orthogonal view. Front-view
// features project into the front featureDepthFrac of the side Z-range;
// side-view features project across a 3-wide X band centered on the front
// X-range.
func addFeatures(set map[cellKey]model.Color, front, side []span, levels int, bb model.BoundingBox, dominant model.Color) {
	for _, s := range front {
		if s.color == dominant {
			continue
		}
		for y := s.yMin; y < s.yMax && y < levels; y++ {
			if y < 0 {
				continue
			}
			z0, z1, ok := rangeAt(side, y)
			if !ok {
				continue
			}
			n := int(featureDepthFrac * float64(z1-z0+1))
			if n < 1 {
				n = 1
			}
			for z := 0; z < n && z < bb.Depth; z++ {
				if s.pos >= 0 && s.pos < bb.Width {
					set[cellKey{s.pos, y, z}] = s.color
				}
			}
		}
	}
	for _, s := range side {
		if s.color == dominant {
			continue
		}
		for y := s.yMin; y < s.yMax && y < levels; y++ {
			if y < 0 {
				continue
			}
			x0, x1, ok := rangeAt(front, y)
			if !ok {
				continue
			}
			cx := (x0 + x1) / 2
			for x := cx - 1; x <= cx+1; x++ {
				if x < 0 || x >= bb.Width {
					continue
				}
				if s.pos >= 0 && s.pos < bb.Depth {
					set[cellKey{x, y, s.pos}] = s.color
				}
			}
		}
	}
}
