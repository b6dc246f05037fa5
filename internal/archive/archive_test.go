package archive

import (
	"context"
	"path/filepath"
	"testing"
	"time"
)

func TestStore_RecordAndRecent(t *testing.T) {
	s, err := Open(filepath.Join(t.TempDir(), "runs.db"))
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	defer s.Close()

	now := time.Now().UTC().Truncate(time.Millisecond)
	s.Record(Run{ID: "r1", CreatedAt: now.Add(-time.Second), Kind: "single_view", InputDigest: "aa", Voxels: 600, Bricks: 25, DurationMs: 3})
	s.Record(Run{ID: "r2", CreatedAt: now, Kind: "tri_view", InputDigest: "bb", Voxels: 90, Bricks: 12, Fallback: true, DurationMs: 1})

	// Writes are async; poll until both land.
	var runs []Run
	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		runs, err = s.Recent(context.Background(), 10)
		if err != nil {
			t.Fatalf("recent: %v", err)
		}
		if len(runs) == 2 {
			break
		}
		time.Sleep(10 * time.Millisecond)
	}
	if len(runs) != 2 {
		t.Fatalf("recent = %d runs, want 2", len(runs))
	}
	if runs[0].ID != "r2" {
		t.Fatalf("newest first: got %s", runs[0].ID)
	}
	if !runs[0].Fallback || runs[1].Fallback {
		t.Fatalf("fallback flag lost")
	}
	if runs[1].Voxels != 600 || runs[1].Bricks != 25 {
		t.Fatalf("counts lost: %+v", runs[1])
	}
}

func TestStore_CloseIsIdempotent(t *testing.T) {
	s, err := Open(filepath.Join(t.TempDir(), "runs.db"))
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	if err := s.Close(); err != nil {
		t.Fatalf("close: %v", err)
	}
	if err := s.Close(); err != nil {
		t.Fatalf("second close: %v", err)
	}
	// Recording after close must not panic.
	s.Record(Run{ID: "late"})
}
