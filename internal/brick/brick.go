// Package brick converts a voxel volume into a buildable set of rectangular
// bricks: a stagger-jointed two-layer foundation, seam-crossing interlock
// above it, and a final pass that drops anything not connected to the
// ground.
package brick

import "brickforge.ai/internal/model"

// Brick is a placed rectangular prism. Width and depth are the stud
// footprint; (X, Y, Z) is the minimum corner. Bricks are immutable once
// placed.
type Brick struct {
	Width int         `json:"width"`
	Depth int         `json:"depth"`
	X     int         `json:"x"`
	Y     int         `json:"y"`
	Z     int         `json:"z"`
	Color model.Color `json:"color"`
}

// sizePreference is the fixed candidate order for both placers: biggest
// first, long-side-X before long-side-Z at equal area.
var sizePreference = [8][2]int{
	{2, 4}, {4, 2}, {2, 2}, {1, 4}, {4, 1}, {1, 2}, {2, 1}, {1, 1},
}

// interlockAreaBonus nudges the seam score toward bigger footprints on ties.
const interlockAreaBonus = 0.1

// Trace receives packing diagnostics. Any field may be nil.
type Trace struct {
	Layer    func(y, cells, bricks int)
	Floating func(removed int)
}

func (t *Trace) layer(y, cells, bricks int) {
	if t != nil && t.Layer != nil {
		t.Layer(y, cells, bricks)
	}
}

func (t *Trace) floating(removed int) {
	if t != nil && t.Floating != nil {
		t.Floating(removed)
	}
}
