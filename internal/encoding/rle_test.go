package encoding

import (
	"reflect"
	"testing"

	"brickforge.ai/internal/model"
	"brickforge.ai/internal/voxel"
)

func TestRLE_RoundTrip(t *testing.T) {
	cases := [][]uint16{
		nil,
		{0},
		{1, 1, 1, 0, 0, 2},
		{7, 7, 7, 7, 7, 7, 7, 7, 7, 7},
	}
	for _, ids := range cases {
		got, err := Decode(Encode(ids))
		if err != nil {
			t.Fatalf("decode: %v", err)
		}
		if len(ids) == 0 && len(got) == 0 {
			continue
		}
		if !reflect.DeepEqual(got, ids) {
			t.Fatalf("round trip %v -> %v", ids, got)
		}
	}
}

func TestRLE_RejectsGarbage(t *testing.T) {
	if _, err := Decode("not base64!!"); err == nil {
		t.Fatalf("garbage accepted")
	}
}

func TestFlatten_Indexing(t *testing.T) {
	vox := []voxel.Voxel{
		{X: 1, Y: 0, Z: 0, Color: model.ColorRed},
		{X: 0, Y: 1, Z: 1, Color: model.ColorBlue},
		{X: 9, Y: 9, Z: 9, Color: model.ColorRed}, // out of bounds, dropped
	}
	ids := Flatten(vox, 2, 2, 2)
	if len(ids) != 8 {
		t.Fatalf("len = %d, want 8", len(ids))
	}
	if ids[1] != model.PaletteID(model.ColorRed) {
		t.Fatalf("voxel (1,0,0) not at index 1")
	}
	if ids[0+1*2+1*4] != model.PaletteID(model.ColorBlue) {
		t.Fatalf("voxel (0,1,1) not at index x+z*W+y*W*D")
	}
	filled := 0
	for _, id := range ids {
		if id != 0 {
			filled++
		}
	}
	if filled != 2 {
		t.Fatalf("filled = %d, want 2", filled)
	}
}
