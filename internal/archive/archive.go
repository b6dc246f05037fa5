// Package archive keeps a sqlite index of pipeline runs. Writes go through
// a single background goroutine so request handlers never block on disk;
// the index is a read model and does not affect pipeline output.
package archive

import (
	"context"
	"database/sql"
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	_ "modernc.org/sqlite"
)

// Run is one recorded pipeline invocation.
type Run struct {
	ID          string
	CreatedAt   time.Time
	Kind        string
	InputDigest string
	Voxels      int
	Bricks      int
	Fallback    bool
	DurationMs  int64
}

type Store struct {
	db *sql.DB

	ch     chan Run
	wg     sync.WaitGroup
	once   sync.Once
	closed atomic.Bool
}

const schema = `
CREATE TABLE IF NOT EXISTS runs (
	run_id       TEXT PRIMARY KEY,
	created_at   INTEGER NOT NULL,
	kind         TEXT NOT NULL,
	input_digest TEXT NOT NULL,
	voxels       INTEGER NOT NULL,
	bricks       INTEGER NOT NULL,
	fallback     INTEGER NOT NULL DEFAULT 0,
	duration_ms  INTEGER NOT NULL
);
CREATE INDEX IF NOT EXISTS runs_created_at ON runs(created_at);
`

func Open(path string) (*Store, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, err
	}
	db.SetMaxOpenConns(1)
	if _, err := db.Exec(schema); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("archive schema: %w", err)
	}

	s := &Store{db: db, ch: make(chan Run, 256)}
	s.wg.Add(1)
	go s.writer()
	return s, nil
}

func (s *Store) writer() {
	defer s.wg.Done()
	for r := range s.ch {
		_, _ = s.db.Exec(
			`INSERT OR REPLACE INTO runs
			 (run_id, created_at, kind, input_digest, voxels, bricks, fallback, duration_ms)
			 VALUES (?,?,?,?,?,?,?,?)`,
			r.ID, r.CreatedAt.UnixMilli(), r.Kind, r.InputDigest,
			r.Voxels, r.Bricks, boolInt(r.Fallback), r.DurationMs,
		)
	}
}

// Record enqueues a run for insertion. Best effort: drops the record rather
// than block when the queue is full or the store is closed.
func (s *Store) Record(r Run) {
	if s == nil || s.closed.Load() {
		return
	}
	select {
	case s.ch <- r:
	default:
	}
}

// Recent returns the newest runs, most recent first.
func (s *Store) Recent(ctx context.Context, limit int) ([]Run, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT run_id, created_at, kind, input_digest, voxels, bricks, fallback, duration_ms
		 FROM runs ORDER BY created_at DESC LIMIT ?`, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Run
	for rows.Next() {
		var r Run
		var createdMs int64
		var fb int
		if err := rows.Scan(&r.ID, &createdMs, &r.Kind, &r.InputDigest, &r.Voxels, &r.Bricks, &fb, &r.DurationMs); err != nil {
			return nil, err
		}
		r.CreatedAt = time.UnixMilli(createdMs).UTC()
		r.Fallback = fb != 0
		out = append(out, r)
	}
	return out, rows.Err()
}

func (s *Store) Close() error {
	var err error
	s.once.Do(func() {
		s.closed.Store(true)
		close(s.ch)
		s.wg.Wait()
		err = s.db.Close()
	})
	return err
}

func boolInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
