// Package journal keeps a queryable SQLite record of every decision pass.
package journal

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"

	_ "modernc.org/sqlite"

	"github.com/nstehr/hive/hive-core/model"
)

// SQLite stores ticks, drone decisions and nest evictions.
type SQLite struct {
	db *sql.DB
}

func Open(path string) (*SQLite, error) {
	if path == "" {
		return nil, fmt.Errorf("empty journal path")
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, err
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, err
	}
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)
	db.SetConnMaxLifetime(0)

	if err := initPragmas(db); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("journal pragmas: %w", err)
	}
	if err := initSchema(db); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("journal schema: %w", err)
	}
	return &SQLite{db: db}, nil
}

func initPragmas(db *sql.DB) error {
	pragmas := []string{
		"PRAGMA journal_mode=WAL;",
		"PRAGMA synchronous=NORMAL;",
		"PRAGMA busy_timeout=5000;",
		"PRAGMA temp_store=MEMORY;",
	}
	for _, p := range pragmas {
		if _, err := db.Exec(p); err != nil {
			return err
		}
	}
	return nil
}

func initSchema(db *sql.DB) error {
	stmts := []string{
		`CREATE TABLE IF NOT EXISTS ticks (
			tick INTEGER PRIMARY KEY,
			friendly INTEGER NOT NULL,
			enemies INTEGER NOT NULL,
			pending INTEGER NOT NULL,
			builders INTEGER NOT NULL
		);`,
		`CREATE TABLE IF NOT EXISTS decisions (
			tick INTEGER NOT NULL,
			seq INTEGER NOT NULL,
			unit TEXT NOT NULL,
			behavior TEXT NOT NULL,
			moved INTEGER NOT NULL,
			target_x INTEGER,
			target_y INTEGER,
			tier TEXT NOT NULL,
			distance INTEGER NOT NULL,
			PRIMARY KEY (tick, seq)
		);`,
		`CREATE INDEX IF NOT EXISTS idx_decisions_unit_tick ON decisions(unit, tick);`,
		`CREATE TABLE IF NOT EXISTS evictions (
			tick INTEGER NOT NULL,
			x INTEGER NOT NULL,
			y INTEGER NOT NULL,
			reason TEXT NOT NULL
		);`,
		`CREATE TABLE IF NOT EXISTS events (
			tick INTEGER NOT NULL,
			kind TEXT NOT NULL,
			detail TEXT NOT NULL
		);`,
	}
	for _, s := range stmts {
		if _, err := db.Exec(s); err != nil {
			return err
		}
	}
	return nil
}

func (s *SQLite) Close() error { return s.db.Close() }

// RecordTick implements agent.Sink. A tick is written in one transaction;
// re-recording a tick replaces it.
func (s *SQLite) RecordTick(rec model.TickRecord) error {
	tx, err := s.db.Begin()
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback() }()

	for _, table := range []string{"decisions", "evictions", "events"} {
		if _, err := tx.Exec(`DELETE FROM `+table+` WHERE tick = ?`, rec.Tick); err != nil {
			return fmt.Errorf("clear %s: %w", table, err)
		}
	}
	if _, err := tx.Exec(
		`INSERT OR REPLACE INTO ticks (tick, friendly, enemies, pending, builders) VALUES (?, ?, ?, ?, ?)`,
		rec.Tick, rec.Friendly, rec.Enemies, len(rec.Pending), rec.Builders,
	); err != nil {
		return fmt.Errorf("insert tick: %w", err)
	}

	for i, d := range rec.Decisions {
		var targetX, targetY sql.NullInt64
		if d.Target != nil {
			targetX = sql.NullInt64{Int64: int64(d.Target.X), Valid: true}
			targetY = sql.NullInt64{Int64: int64(d.Target.Y), Valid: true}
		}
		if _, err := tx.Exec(
			`INSERT INTO decisions (tick, seq, unit, behavior, moved, target_x, target_y, tier, distance) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
			rec.Tick, i, d.Unit.String(), d.Behavior, d.Moved(), targetX, targetY, d.Tier, d.Distance,
		); err != nil {
			return fmt.Errorf("insert decision: %w", err)
		}
	}
	for _, e := range rec.Evictions {
		if _, err := tx.Exec(
			`INSERT INTO evictions (tick, x, y, reason) VALUES (?, ?, ?, ?)`,
			rec.Tick, e.Site.X, e.Site.Y, e.Reason,
		); err != nil {
			return fmt.Errorf("insert eviction: %w", err)
		}
	}
	for _, e := range rec.Events {
		if _, err := tx.Exec(
			`INSERT INTO events (tick, kind, detail) VALUES (?, ?, ?)`,
			rec.Tick, string(e.Kind), e.Detail,
		); err != nil {
			return fmt.Errorf("insert event: %w", err)
		}
	}
	return tx.Commit()
}

// BehaviorCounts returns how often each behavior was chosen.
func (s *SQLite) BehaviorCounts(ctx context.Context) (map[string]int, error) {
	return s.countBy(ctx, `SELECT behavior, COUNT(*) FROM decisions GROUP BY behavior`)
}

// EvictionCounts returns how many nest sites were evicted, by reason.
func (s *SQLite) EvictionCounts(ctx context.Context) (map[string]int, error) {
	return s.countBy(ctx, `SELECT reason, COUNT(*) FROM evictions GROUP BY reason`)
}

// UnitHistory returns the behaviors one drone chose, in tick order.
func (s *SQLite) UnitHistory(ctx context.Context, unit string) ([]string, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT behavior FROM decisions WHERE unit = ? ORDER BY tick`, unit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []string
	for rows.Next() {
		var b string
		if err := rows.Scan(&b); err != nil {
			return nil, err
		}
		out = append(out, b)
	}
	return out, rows.Err()
}

func (s *SQLite) countBy(ctx context.Context, query string) (map[string]int, error) {
	rows, err := s.db.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make(map[string]int)
	for rows.Next() {
		var key string
		var n int
		if err := rows.Scan(&key, &n); err != nil {
			return nil, err
		}
		out[key] = n
	}
	return out, rows.Err()
}
