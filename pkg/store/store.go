// Package store keeps a log of scans and the events they found in SQLite.
package store

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite"

	"github.com/runningwild/inflex/pkg/analyze"
)

const schema = `
CREATE TABLE IF NOT EXISTS runs (
	id          TEXT PRIMARY KEY,
	curve       TEXT NOT NULL,
	x_min       REAL NOT NULL,
	x_max       REAL NOT NULL,
	step        REAL NOT NULL,
	started_at  INTEGER NOT NULL,
	finished_at INTEGER,
	samples     INTEGER NOT NULL DEFAULT 0
);
CREATE TABLE IF NOT EXISTS events (
	run_id TEXT NOT NULL REFERENCES runs(id),
	seq    INTEGER NOT NULL,
	kind   TEXT NOT NULL,
	trend  TEXT NOT NULL,
	from_x REAL NOT NULL,
	from_y REAL NOT NULL,
	to_x   REAL NOT NULL,
	to_y   REAL NOT NULL,
	est_before REAL NOT NULL,
	est_after  REAL NOT NULL,
	PRIMARY KEY (run_id, seq)
);
`

type Store struct {
	db *sql.DB
}

func Open(path string) (*Store, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open run log: %w", err)
	}
	// One writer is all a scan ever needs and it sidesteps SQLITE_BUSY.
	db.SetMaxOpenConns(1)
	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to initialize schema: %w", err)
	}
	return &Store{db: db}, nil
}

func (s *Store) Close() error { return s.db.Close() }

// RunInfo describes a stored scan.
type RunInfo struct {
	ID         string
	Curve      string
	Min, Max   float64
	Step       float64
	StartedAt  time.Time
	FinishedAt time.Time // zero if the scan never finished
	Samples    int
}

// Run records the events of a single scan. Emit buffers events in a
// transaction that Finish commits.
type Run struct {
	ID string

	ctx context.Context
	tx  *sql.Tx
	ins *sql.Stmt
	seq int
	err error
}

func (s *Store) BeginRun(ctx context.Context, curve string, min, max, step float64) (*Run, error) {
	id := uuid.NewString()
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, err
	}
	if _, err := tx.ExecContext(ctx,
		`INSERT INTO runs (id, curve, x_min, x_max, step, started_at) VALUES (?, ?, ?, ?, ?, ?)`,
		id, curve, min, max, step, time.Now().UnixNano()); err != nil {
		tx.Rollback()
		return nil, fmt.Errorf("failed to insert run: %w", err)
	}
	ins, err := tx.PrepareContext(ctx,
		`INSERT INTO events (run_id, seq, kind, trend, from_x, from_y, to_x, to_y, est_before, est_after)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`)
	if err != nil {
		tx.Rollback()
		return nil, err
	}
	return &Run{ID: id, ctx: ctx, tx: tx, ins: ins}, nil
}

func (r *Run) Emit(e analyze.Event) {
	if r.err != nil {
		return
	}
	_, r.err = r.ins.ExecContext(r.ctx, r.ID, r.seq, e.Kind.String(), e.Trend.String(),
		e.From.X, e.From.Y, e.To.X, e.To.Y, e.Before, e.After)
	r.seq++
}

// Finish stamps the run with its sample count and commits it. If any Emit
// failed the whole run is rolled back and that error returned.
func (r *Run) Finish(samples int) error {
	defer r.ins.Close()
	if r.err != nil {
		r.tx.Rollback()
		return fmt.Errorf("failed to record event: %w", r.err)
	}
	if _, err := r.tx.ExecContext(r.ctx,
		`UPDATE runs SET finished_at = ?, samples = ? WHERE id = ?`,
		time.Now().UnixNano(), samples, r.ID); err != nil {
		r.tx.Rollback()
		return err
	}
	return r.tx.Commit()
}

// Abort discards everything recorded for the run.
func (r *Run) Abort() error {
	r.ins.Close()
	return r.tx.Rollback()
}

// Runs lists stored scans, newest first.
func (s *Store) Runs(ctx context.Context) ([]RunInfo, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, curve, x_min, x_max, step, started_at, finished_at, samples
		 FROM runs ORDER BY started_at DESC, rowid DESC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var runs []RunInfo
	for rows.Next() {
		var (
			ri       RunInfo
			started  int64
			finished sql.NullInt64
		)
		if err := rows.Scan(&ri.ID, &ri.Curve, &ri.Min, &ri.Max, &ri.Step, &started, &finished, &ri.Samples); err != nil {
			return nil, err
		}
		ri.StartedAt = time.Unix(0, started)
		if finished.Valid {
			ri.FinishedAt = time.Unix(0, finished.Int64)
		}
		runs = append(runs, ri)
	}
	return runs, rows.Err()
}

// Events returns the events of a run in the order they were detected.
func (s *Store) Events(ctx context.Context, runID string) ([]analyze.Event, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT kind, trend, from_x, from_y, to_x, to_y, est_before, est_after
		 FROM events WHERE run_id = ? ORDER BY seq`, runID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var events []analyze.Event
	for rows.Next() {
		var (
			e           analyze.Event
			kind, trend string
		)
		if err := rows.Scan(&kind, &trend, &e.From.X, &e.From.Y, &e.To.X, &e.To.Y, &e.Before, &e.After); err != nil {
			return nil, err
		}
		if e.Kind, err = analyze.ParseKind(kind); err != nil {
			return nil, err
		}
		if e.Trend, err = analyze.ParseTrend(trend); err != nil {
			return nil, err
		}
		events = append(events, e)
	}
	return events, rows.Err()
}
