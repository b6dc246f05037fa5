package hull

import (
	"reflect"
	"testing"

	"brickforge.ai/internal/model"
)

// columns fills positions [0,n) with one span of the given raw height.
func columns(n, yMax int, c model.Color) []model.Column {
	out := make([]model.Column, 0, n)
	for i := 0; i < n; i++ {
		out = append(out, model.Column{Position: i, YMin: 0, YMax: yMax, Color: c})
	}
	return out
}

func boxViews(w, d, rawH int, c model.Color) (model.FrontView, model.SideView) {
	return model.FrontView{Width: w, Height: rawH, Columns: columns(w, rawH, c)},
		model.SideView{Depth: d, Height: rawH, Columns: columns(d, rawH, c)}
}

func TestMultiView_SolidBox(t *testing.T) {
	fv, sv := boxViews(4, 4, 2, model.ColorLightGray)
	m := &model.MultiViewModel{
		BoundingBox: model.BoundingBox{Width: 4, Depth: 4, Height: 20},
		FrontView:   fv,
		SideView:    sv,
	}
	res := MultiView(m)
	// Raw height 2 scales to 5 plates; 4x4 intersection per level.
	if want := 4 * 4 * 5; len(res.Voxels) != want {
		t.Fatalf("voxels = %d, want %d", len(res.Voxels), want)
	}
	for _, v := range res.Voxels {
		if v.Color != model.ColorLightGray {
			t.Fatalf("voxel color = %s, want light_gray", v.Color)
		}
	}
}

func TestMultiView_ConcaveOverfill(t *testing.T) {
	// Front view with columns only at x=0 and x=3: the carve fills the full
	// X-range rectangle per level, so the gap at x=1,2 fills in too. Known
	// fidelity limitation, pinned on purpose.
	fv := model.FrontView{Width: 4, Height: 2, Columns: []model.Column{
		{Position: 0, YMin: 0, YMax: 2, Color: model.ColorRed},
		{Position: 3, YMin: 0, YMax: 2, Color: model.ColorRed},
	}}
	sv := model.SideView{Depth: 2, Height: 2, Columns: columns(2, 2, model.ColorRed)}
	m := &model.MultiViewModel{
		BoundingBox: model.BoundingBox{Width: 4, Depth: 2, Height: 10},
		FrontView:   fv,
		SideView:    sv,
	}
	res := MultiView(m)
	if want := 4 * 2 * 5; len(res.Voxels) != want {
		t.Fatalf("voxels = %d, want full rectangular fill %d", len(res.Voxels), want)
	}
}

func TestMultiView_FeaturePreserved(t *testing.T) {
	fv, sv := boxViews(10, 10, 4, model.ColorLightGray)
	// One feature-colored front column: an "eye" at x=2, raw y [1,2).
	fv.Columns = append(fv.Columns, model.Column{Position: 2, YMin: 1, YMax: 2, Color: model.ColorBlack})
	m := &model.MultiViewModel{
		BoundingBox: model.BoundingBox{Width: 10, Depth: 10, Height: 30},
		FrontView:   fv,
		SideView:    sv,
	}
	res := MultiView(m)

	// Side Z-range is [0,9], so the feature projects over the front 30%:
	// z in [0,3), at scaled y in [3,5).
	found := 0
	for _, v := range res.Voxels {
		if v.Color == model.ColorBlack {
			if v.X != 2 || v.Z >= 3 || v.Y < 3 || v.Y >= 5 {
				t.Fatalf("feature voxel in wrong place: %+v", v)
			}
			found++
		}
	}
	if found != 6 {
		t.Fatalf("feature voxels = %d, want 6", found)
	}
}

func TestTriView_MonotoneAgainstMultiView(t *testing.T) {
	fv, sv := boxViews(6, 6, 2, model.ColorGreen)
	bb := model.BoundingBox{Width: 6, Depth: 6, Height: 20}

	multi := MultiView(&model.MultiViewModel{BoundingBox: bb, FrontView: fv, SideView: sv})

	// Top view trusted (covers 50%) but carves away half the footprint.
	var rows []model.TopRow
	for z := 0; z < 6; z++ {
		rows = append(rows, model.TopRow{Z: z, XMin: 0, XMax: 2})
	}
	tri := TriView(&model.TriViewModel{
		BoundingBox: bb, FrontView: fv, SideView: sv,
		TopView: model.TopView{Rows: rows},
	})
	if tri.FellBack {
		t.Fatalf("50%% top view coverage should be trusted")
	}
	if len(tri.Voxels) > len(multi.Voxels) {
		t.Fatalf("tri-view voxels %d > multi-view %d", len(tri.Voxels), len(multi.Voxels))
	}
	if want := 3 * 6 * 5; len(tri.Voxels) != want {
		t.Fatalf("tri voxels = %d, want %d", len(tri.Voxels), want)
	}
}

func TestTriView_SparseTopFallsBack(t *testing.T) {
	fv, sv := boxViews(6, 6, 2, model.ColorBlue)
	bb := model.BoundingBox{Width: 6, Depth: 6, Height: 20}

	tri := TriView(&model.TriViewModel{
		BoundingBox: bb, FrontView: fv, SideView: sv,
		TopView: model.TopView{Cells: []model.TopCell{{X: 2, Z: 2}}},
	})
	if !tri.FellBack {
		t.Fatalf("sparse top view should trigger fallback")
	}
	multi := MultiView(&model.MultiViewModel{BoundingBox: bb, FrontView: fv, SideView: sv})
	if !reflect.DeepEqual(tri.Voxels, multi.Voxels) {
		t.Fatalf("fallback output differs from two-view carve")
	}
}

func TestTriView_CoverageThresholdBoundary(t *testing.T) {
	// 9x5 footprint, 13 filled top cells: 28.9% coverage. The old truncating
	// comparison trusted anything >= floor(0.30*45) = 13 cells; strictly
	// under 30% must fall back.
	fv, sv := boxViews(9, 5, 2, model.ColorRed)
	bb := model.BoundingBox{Width: 9, Depth: 5, Height: 20}
	tri := TriView(&model.TriViewModel{
		BoundingBox: bb, FrontView: fv, SideView: sv,
		TopView: model.TopView{Rows: []model.TopRow{
			{Z: 0, XMin: 0, XMax: 8},
			{Z: 1, XMin: 0, XMax: 3},
		}},
	})
	if !tri.FellBack {
		t.Fatalf("13/45 = 28.9%% coverage must fall back")
	}

	// 8x5 footprint, 12 filled top cells: exactly 30%. Stays trusted.
	fv, sv = boxViews(8, 5, 2, model.ColorRed)
	bb = model.BoundingBox{Width: 8, Depth: 5, Height: 20}
	tri = TriView(&model.TriViewModel{
		BoundingBox: bb, FrontView: fv, SideView: sv,
		TopView: model.TopView{Rows: []model.TopRow{
			{Z: 0, XMin: 0, XMax: 7},
			{Z: 1, XMin: 0, XMax: 3},
		}},
	})
	if tri.FellBack {
		t.Fatalf("exactly 30%% coverage must stay trusted")
	}
	if want := 12 * 5; len(tri.Voxels) != want {
		t.Fatalf("trusted carve voxels = %d, want %d", len(tri.Voxels), want)
	}
}

func TestFillTopView_ScanLineFill(t *testing.T) {
	// Outline corners of a 4x4 square: rows and columns both fill between
	// their extremes.
	tv := model.TopView{Cells: []model.TopCell{
		{X: 0, Z: 0}, {X: 3, Z: 0}, {X: 0, Z: 3}, {X: 3, Z: 3},
	}}
	filled := fillTopView(tv, 6, 6)
	for _, want := range [][2]int{{1, 0}, {2, 0}, {0, 1}, {3, 2}, {1, 3}} {
		if _, ok := filled[want]; !ok {
			t.Fatalf("cell %v not filled by scan lines", want)
		}
	}
	if _, ok := filled[[2]int{1, 1}]; ok {
		t.Fatalf("interior cell (1,1) should stay empty (outline only)")
	}
}

func TestFillTopView_IsolatedCellPad(t *testing.T) {
	tv := model.TopView{Cells: []model.TopCell{{X: 2, Z: 2}}}
	filled := fillTopView(tv, 5, 5)
	if len(filled) != 3 {
		t.Fatalf("filled = %d cells, want 3 (cell plus x pad)", len(filled))
	}
	for _, want := range [][2]int{{1, 2}, {2, 2}, {3, 2}} {
		if _, ok := filled[want]; !ok {
			t.Fatalf("cell %v missing", want)
		}
	}
}

func TestDominantColor_ByCoverage(t *testing.T) {
	front := []span{
		{pos: 0, yMin: 0, yMax: 10, color: model.ColorWhite},
		{pos: 1, yMin: 0, yMax: 2, color: model.ColorBlack},
	}
	if got := dominantColor(front, nil); got != model.ColorWhite {
		t.Fatalf("dominant = %s, want white", got)
	}
}
