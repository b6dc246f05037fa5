// Package voxel holds the discrete-grid primitives shared by the rasterizer,
// the hull carver and the brick packer.
package voxel

import "brickforge.ai/internal/model"

// Voxel is a unit cube on the integer grid. Voxels are value types: created
// by one pipeline stage, then only filtered or copied, never mutated.
type Voxel struct {
	X     int         `json:"x"`
	Y     int         `json:"y"`
	Z     int         `json:"z"`
	Color model.Color `json:"color"`
}

// Grid is a dense 2D occupancy grid for one horizontal slab (XZ plane).
// Cell (x,z) is filled when its color id is non-zero.
type Grid struct {
	Width int
	Depth int
	cells []uint16 // palette ids, 0 = empty
}

func NewGrid(width, depth int) *Grid {
	if width < 0 {
		width = 0
	}
	if depth < 0 {
		depth = 0
	}
	return &Grid{Width: width, Depth: depth, cells: make([]uint16, width*depth)}
}

func (g *Grid) InBounds(x, z int) bool {
	return x >= 0 && x < g.Width && z >= 0 && z < g.Depth
}

func (g *Grid) idx(x, z int) int { return x + z*g.Width }

// At returns the cell color and whether the cell is filled.
func (g *Grid) At(x, z int) (model.Color, bool) {
	if !g.InBounds(x, z) {
		return "", false
	}
	id := g.cells[g.idx(x, z)]
	if id == 0 {
		return "", false
	}
	return model.ColorByID(id), true
}

func (g *Grid) Filled(x, z int) bool {
	_, ok := g.At(x, z)
	return ok
}

// Set fills cell (x,z). Out-of-bounds writes are dropped.
func (g *Grid) Set(x, z int, c model.Color) {
	if !g.InBounds(x, z) {
		return
	}
	g.cells[g.idx(x, z)] = model.PaletteID(c)
}

// Clear empties cell (x,z).
func (g *Grid) Clear(x, z int) {
	if !g.InBounds(x, z) {
		return
	}
	g.cells[g.idx(x, z)] = 0
}

// Clone returns an independent copy of g.
func (g *Grid) Clone() *Grid {
	out := NewGrid(g.Width, g.Depth)
	copy(out.cells, g.cells)
	return out
}

// Count returns the number of filled cells.
func (g *Grid) Count() int {
	n := 0
	for _, id := range g.cells {
		if id != 0 {
			n++
		}
	}
	return n
}

// Bounds returns the tight bounding rectangle of filled cells.
// ok is false when the grid is empty.
func (g *Grid) Bounds() (minX, minZ, maxX, maxZ int, ok bool) {
	minX, minZ = g.Width, g.Depth
	maxX, maxZ = -1, -1
	for z := 0; z < g.Depth; z++ {
		for x := 0; x < g.Width; x++ {
			if g.cells[g.idx(x, z)] == 0 {
				continue
			}
			if x < minX {
				minX = x
			}
			if x > maxX {
				maxX = x
			}
			if z < minZ {
				minZ = z
			}
			if z > maxZ {
				maxZ = z
			}
		}
	}
	return minX, minZ, maxX, maxZ, maxX >= 0
}
