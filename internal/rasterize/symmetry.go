package rasterize

import "brickforge.ai/internal/voxel"

// Normalize enforces mirror symmetry on a layer grid. For each flagged axis
// the filled bounding rectangle is re-centered in the grid (integer floor
// centering), then every symmetric cell pair is unioned: a pair is filled if
// either side was, keeping the filled side's color with the lower-coordinate
// cell winning ties. An empty grid comes back unchanged.
func Normalize(g *voxel.Grid, mirrorX, mirrorZ bool) *voxel.Grid {
	out := g.Clone()
	if !mirrorX && !mirrorZ {
		return out
	}
	minX, minZ, maxX, maxZ, ok := out.Bounds()
	if !ok {
		return out
	}

	shiftX, shiftZ := 0, 0
	if mirrorX {
		shiftX = (out.Width-(maxX-minX+1))/2 - minX
	}
	if mirrorZ {
		shiftZ = (out.Depth-(maxZ-minZ+1))/2 - minZ
	}
	if shiftX != 0 || shiftZ != 0 {
		shifted := voxel.NewGrid(out.Width, out.Depth)
		for z := minZ; z <= maxZ; z++ {
			for x := minX; x <= maxX; x++ {
				if c, filled := out.At(x, z); filled {
					shifted.Set(x+shiftX, z+shiftZ, c)
				}
			}
		}
		out = shifted
	}

	if mirrorX {
		for z := 0; z < out.Depth; z++ {
			for x := 0; x < out.Width/2; x++ {
				mirrorPair(out, x, z, out.Width-1-x, z)
			}
		}
	}
	if mirrorZ {
		for z := 0; z < out.Depth/2; z++ {
			for x := 0; x < out.Width; x++ {
				mirrorPair(out, x, z, x, out.Depth-1-z)
			}
		}
	}
	return out
}

// mirrorPair unions cells a and b; a is the lower-coordinate cell and wins
// when both are filled.
func mirrorPair(g *voxel.Grid, ax, az, bx, bz int) {
	ca, fa := g.At(ax, az)
	cb, fb := g.At(bx, bz)
	switch {
	case fa:
		g.Set(bx, bz, ca)
	case fb:
		g.Set(ax, az, cb)
	}
}
