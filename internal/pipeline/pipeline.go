// Package pipeline wires the stages together: parsed silhouette in, voxels
// and bricks out. Every entry point is a pure function; diagnostics go
// through the optional Trace hooks instead of hard-wired output.
package pipeline

import (
	"brickforge.ai/internal/brick"
	"brickforge.ai/internal/hull"
	"brickforge.ai/internal/model"
	"brickforge.ai/internal/rasterize"
	"brickforge.ai/internal/voxel"
)

// Trace receives per-stage diagnostics. Any field may be nil; a nil *Trace
// disables all of them.
type Trace struct {
	Voxels   func(stage string, count int)
	Fallback func(kind string)
	Layer    func(y, cells, bricks int)
	Floating func(removed int)
}

func (t *Trace) voxels(stage string, n int) {
	if t != nil && t.Voxels != nil {
		t.Voxels(stage, n)
	}
}

func (t *Trace) fallback(kind string) {
	if t != nil && t.Fallback != nil {
		t.Fallback(kind)
	}
}

func (t *Trace) brickTrace() *brick.Trace {
	if t == nil {
		return nil
	}
	return &brick.Trace{Layer: t.Layer, Floating: t.Floating}
}

// Options tunes a run. The mirror flags apply the symmetry normalizer to
// single-view layers; view-based variants carry their own symmetry hint as
// data only.
type Options struct {
	MirrorX bool
	MirrorZ bool
}

// Result is one pipeline run's output. Empty voxel or brick lists are valid
// trivial results, not errors.
type Result struct {
	Kind     string        `json:"kind"`
	FellBack bool          `json:"fallback,omitempty"`
	Voxels   []voxel.Voxel `json:"voxels"`
	Bricks   []brick.Brick `json:"bricks"`
}

// Generate runs the full pipeline on a validated model. Deterministic:
// identical input yields byte-identical output.
func Generate(p *model.Parsed, opts Options, tr *Trace) Result {
	res := Result{Kind: p.Kind}
	switch p.Kind {
	case model.KindSingle:
		res.Voxels = rasterize.Layers(p.Single, rasterize.Options{MirrorX: opts.MirrorX, MirrorZ: opts.MirrorZ})
	case model.KindMulti:
		res.Voxels = hull.MultiView(p.Multi).Voxels
	case model.KindTri:
		r := hull.TriView(p.Tri)
		res.Voxels = r.Voxels
		res.FellBack = r.FellBack
		if r.FellBack {
			tr.fallback(p.Kind)
		}
	}
	tr.voxels("carve", len(res.Voxels))

	res.Bricks = brick.Pack(res.Voxels, tr.brickTrace())
	tr.voxels("pack", len(res.Bricks))
	return res
}

// BoundingBox returns the declared bounds of whichever variant p holds.
func BoundingBox(p *model.Parsed) model.BoundingBox {
	switch p.Kind {
	case model.KindSingle:
		return p.Single.BoundingBox
	case model.KindMulti:
		return p.Multi.BoundingBox
	case model.KindTri:
		return p.Tri.BoundingBox
	}
	return model.BoundingBox{}
}
