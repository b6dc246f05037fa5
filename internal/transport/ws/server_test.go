package ws

import (
	"bytes"
	"encoding/json"
	"io"
	"log"
	"strings"
	"testing"

	"brickforge.ai/internal/config"
	"brickforge.ai/internal/encoding"
	"brickforge.ai/internal/model"
)

func newTestServer() *Server {
	return NewServer(config.Defaults().Limits, nil, nil, log.New(io.Discard, "", 0))
}

func TestHandle_Hello(t *testing.T) {
	var logged bytes.Buffer
	s := NewServer(config.Defaults().Limits, nil, nil, log.New(&logged, "", 0))
	reply := s.handle([]byte(`{"type": "HELLO", "client_name": "studio-ui"}`))
	w, ok := reply.(welcomeMsg)
	if !ok {
		t.Fatalf("reply is %T, want welcomeMsg", reply)
	}
	if w.Type != TypeWelcome || w.ProtocolVersion != ProtocolVersion {
		t.Fatalf("welcome = %+v", w)
	}
	if len(w.Palette) != len(model.Palette) {
		t.Fatalf("palette not advertised")
	}
	if w.Limits.MaxWidth != model.MaxWidthStuds {
		t.Fatalf("limits not advertised: %+v", w.Limits)
	}
	if !strings.Contains(logged.String(), "studio-ui") {
		t.Fatalf("client name not logged: %q", logged.String())
	}

	// Limits go over the wire in snake_case like every other field.
	b, err := json.Marshal(w)
	if err != nil {
		t.Fatalf("marshal welcome: %v", err)
	}
	for _, key := range []string{"max_width", "max_depth", "max_height", "max_layers"} {
		if !strings.Contains(string(b), `"`+key+`"`) {
			t.Fatalf("welcome limits missing %s: %s", key, b)
		}
	}
}

func TestHandle_Generate(t *testing.T) {
	s := newTestServer()
	msg := `{"type": "GENERATE", "request_id": "req-1", "model": {
		"bounding_box": {"width": 6, "depth": 6, "height": 4},
		"layers": [{"y_min": 0, "y_max": 4,
			"shapes": [{"type": "rectangle", "x": 0, "z": 0, "width": 6, "depth": 6, "color": "yellow"}]}]
	}}`

	reply := s.handle([]byte(msg))
	r, ok := reply.(resultMsg)
	if !ok {
		t.Fatalf("reply is %T, want resultMsg", reply)
	}
	if r.Type != TypeResult || r.RequestID != "req-1" {
		t.Fatalf("result header = %+v", r)
	}
	if r.RunID == "" {
		t.Fatalf("no run id assigned")
	}
	if r.Kind != model.KindSingle || r.Fallback {
		t.Fatalf("kind = %s fallback = %v", r.Kind, r.Fallback)
	}
	if r.VoxelCount != 6*6*4 {
		t.Fatalf("voxel count = %d, want 144", r.VoxelCount)
	}
	if r.BrickCount != len(r.Bricks) || len(r.Bricks) == 0 {
		t.Fatalf("brick count %d does not match %d bricks", r.BrickCount, len(r.Bricks))
	}

	if r.Voxels.Encoding != "RLE" || r.Voxels.Dims != [3]int{6, 6, 4} {
		t.Fatalf("voxel payload header = %+v", r.Voxels)
	}
	ids, err := encoding.Decode(r.Voxels.Data)
	if err != nil {
		t.Fatalf("decode payload: %v", err)
	}
	if len(ids) != 6*6*4 {
		t.Fatalf("payload cells = %d, want 144", len(ids))
	}
	want := model.PaletteID(model.ColorYellow)
	for i, id := range ids {
		if id != want {
			t.Fatalf("cell %d = %d, want %d", i, id, want)
		}
	}

	// The reply must be marshalable as sent over the wire.
	if _, err := json.Marshal(reply); err != nil {
		t.Fatalf("marshal reply: %v", err)
	}
}

func TestHandle_BadModel(t *testing.T) {
	s := newTestServer()
	msg := `{"type": "GENERATE", "request_id": "req-2", "model": {
		"bounding_box": {"width": 6, "depth": 6, "height": 4},
		"layers": [{"y_min": 0, "y_max": 9,
			"shapes": [{"type": "rectangle", "x": 0, "z": 0, "width": 6, "depth": 6, "color": "red"}]}]
	}}`

	reply := s.handle([]byte(msg))
	e, ok := reply.(errorMsg)
	if !ok {
		t.Fatalf("reply is %T, want errorMsg", reply)
	}
	if e.Code != model.ErrBadModel || e.RequestID != "req-2" {
		t.Fatalf("error = %+v", e)
	}
	if len(e.Fields) == 0 {
		t.Fatalf("no field errors in reply")
	}
}

func TestHandle_LimitsEnforced(t *testing.T) {
	s := NewServer(config.Limits{MaxWidth: 4, MaxDepth: 4, MaxHeight: 4, MaxLayers: 1}, nil, nil, log.New(io.Discard, "", 0))
	msg := `{"type": "GENERATE", "model": {
		"bounding_box": {"width": 6, "depth": 4, "height": 4},
		"layers": [{"y_min": 0, "y_max": 2,
			"shapes": [{"type": "rectangle", "x": 0, "z": 0, "width": 2, "depth": 2, "color": "red"}]}]
	}}`
	e, ok := s.handle([]byte(msg)).(errorMsg)
	if !ok || e.Code != model.ErrBadModel {
		t.Fatalf("oversize model not rejected: %+v", e)
	}
}

func TestHandle_ProtocolErrors(t *testing.T) {
	s := newTestServer()
	cases := []struct {
		name string
		raw  string
	}{
		{"not json", `{{{`},
		{"unknown type", `{"type": "FROBNICATE"}`},
		{"generate without model", `{"type": "GENERATE", "request_id": "req-3"}`},
	}
	for _, tc := range cases {
		reply := s.handle([]byte(tc.raw))
		e, ok := reply.(errorMsg)
		if !ok {
			t.Fatalf("%s: reply is %T, want errorMsg", tc.name, reply)
		}
		if e.Code != model.ErrProtoBadRequest && e.Code != model.ErrBadModel {
			t.Fatalf("%s: code = %s", tc.name, e.Code)
		}
		if !model.IsKnownCode(e.Code) {
			t.Fatalf("%s: unregistered error code %s", tc.name, e.Code)
		}
	}
}
