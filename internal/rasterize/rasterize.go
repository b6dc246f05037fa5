// Package rasterize turns single-view layer stacks into voxels: per-layer 2D
// shape rasterization, optional symmetry normalization, then extrusion
// through the layer's height interval.
package rasterize

import (
	"brickforge.ai/internal/model"
	"brickforge.ai/internal/voxel"
)

// Options tunes a rasterization run. Mirror flags apply the symmetry
// normalizer to every layer before extrusion.
type Options struct {
	MirrorX bool
	MirrorZ bool
}

// Layers rasterizes every layer of m independently and concatenates the
// voxels. Layers do not interact; the model's ascending y_min ordering is a
// validation concern, not a rasterization one.
func Layers(m *model.SilhouetteModel, opts Options) []voxel.Voxel {
	var out []voxel.Voxel
	for _, l := range m.Layers {
		out = append(out, LayerVoxels(l, m.BoundingBox, opts)...)
	}
	return out
}

// LayerVoxels rasterizes one layer into a WxD grid and extrudes every filled
// cell through [y_min, y_max).
func LayerVoxels(l model.Layer, bb model.BoundingBox, opts Options) []voxel.Voxel {
	g := LayerGrid(l, bb)
	if opts.MirrorX || opts.MirrorZ {
		g = Normalize(g, opts.MirrorX, opts.MirrorZ)
	}

	var out []voxel.Voxel
	for y := l.YMin; y < l.YMax; y++ {
		for z := 0; z < g.Depth; z++ {
			for x := 0; x < g.Width; x++ {
				if c, filled := g.At(x, z); filled {
					out = append(out, voxel.Voxel{X: x, Y: y, Z: z, Color: c})
				}
			}
		}
	}
	return out
}

// LayerGrid rasterizes the layer's shapes additively (last shape wins on
// overlap) and subtracts its holes, clipped to the bounding box footprint.
func LayerGrid(l model.Layer, bb model.BoundingBox) *voxel.Grid {
	g := voxel.NewGrid(bb.Width, bb.Depth)
	for _, s := range l.Shapes {
		paint(g, s, s.Color)
	}
	for _, h := range l.Holes {
		carve(g, h)
	}
	return g
}

func paint(g *voxel.Grid, s model.Shape, c model.Color) {
	x0, z0, x1, z1 := clipBounds(g, s)
	for z := z0; z < z1; z++ {
		for x := x0; x < x1; x++ {
			if contains(s, x, z) {
				g.Set(x, z, c)
			}
		}
	}
}

func carve(g *voxel.Grid, s model.Shape) {
	x0, z0, x1, z1 := clipBounds(g, s)
	for z := z0; z < z1; z++ {
		for x := x0; x < x1; x++ {
			if contains(s, x, z) {
				g.Clear(x, z)
			}
		}
	}
}

func clipBounds(g *voxel.Grid, s model.Shape) (x0, z0, x1, z1 int) {
	x0, z0, x1, z1 = shapeBounds(s)
	if x0 < 0 {
		x0 = 0
	}
	if z0 < 0 {
		z0 = 0
	}
	if x1 > g.Width {
		x1 = g.Width
	}
	if z1 > g.Depth {
		z1 = g.Depth
	}
	return x0, z0, x1, z1
}
