package db

import (
	"context"
	"database/sql"
	"fmt"

	_ "modernc.org/sqlite"
)

const driverName = "sqlite"

// migrations are applied in order; PRAGMA user_version records how many ran.
// Append new steps, never edit released ones.
var migrations = []string{
	`CREATE TABLE IF NOT EXISTS control_events (
		id          TEXT PRIMARY KEY,
		occurred_at TEXT NOT NULL,
		type        TEXT NOT NULL,
		actuator    TEXT NOT NULL DEFAULT '',
		message     TEXT NOT NULL,
		meta        TEXT
	);
	CREATE INDEX IF NOT EXISTS idx_control_events_occurred_at ON control_events (occurred_at);
	CREATE INDEX IF NOT EXISTS idx_control_events_actuator ON control_events (actuator, occurred_at);`,

	`CREATE TABLE IF NOT EXISTS status_snapshots (
		id         INTEGER PRIMARY KEY AUTOINCREMENT,
		fetched_at TIMESTAMP NOT NULL,
		payload    TEXT NOT NULL
	);`,
}

var pragmas = []string{
	"PRAGMA journal_mode = WAL",
	"PRAGMA busy_timeout = 5000",
}

// InitDB opens (or creates) the SQLite file at path and migrates it.
func InitDB(path string) (*sql.DB, error) {
	conn, err := sql.Open(driverName, path)
	if err != nil {
		return nil, fmt.Errorf("open sqlite at %q: %w", path, err)
	}
	// the event log and snapshot history share one writer
	conn.SetMaxOpenConns(1)

	ctx := context.Background()
	if err := setup(ctx, conn); err != nil {
		_ = conn.Close()
		return nil, err
	}
	return conn, nil
}

func setup(ctx context.Context, conn *sql.DB) error {
	if err := conn.PingContext(ctx); err != nil {
		return fmt.Errorf("ping sqlite: %w", err)
	}
	for _, p := range pragmas {
		if _, err := conn.ExecContext(ctx, p); err != nil {
			return fmt.Errorf("%s: %w", p, err)
		}
	}
	return migrate(ctx, conn)
}

// SchemaVersion reports how many migrations the database has applied.
func SchemaVersion(ctx context.Context, conn *sql.DB) (int, error) {
	var v int
	if err := conn.QueryRowContext(ctx, "PRAGMA user_version").Scan(&v); err != nil {
		return 0, fmt.Errorf("read user_version: %w", err)
	}
	return v, nil
}

func migrate(ctx context.Context, conn *sql.DB) error {
	current, err := SchemaVersion(ctx, conn)
	if err != nil {
		return err
	}
	if current > len(migrations) {
		return fmt.Errorf("database schema v%d is newer than this binary (v%d)", current, len(migrations))
	}

	for v := current; v < len(migrations); v++ {
		tx, err := conn.BeginTx(ctx, nil)
		if err != nil {
			return fmt.Errorf("migration %d: begin: %w", v+1, err)
		}
		if _, err := tx.ExecContext(ctx, migrations[v]); err != nil {
			_ = tx.Rollback()
			return fmt.Errorf("migration %d: %w", v+1, err)
		}
		// PRAGMA takes no bind parameters
		if _, err := tx.ExecContext(ctx, fmt.Sprintf("PRAGMA user_version = %d", v+1)); err != nil {
			_ = tx.Rollback()
			return fmt.Errorf("migration %d: set version: %w", v+1, err)
		}
		if err := tx.Commit(); err != nil {
			return fmt.Errorf("migration %d: commit: %w", v+1, err)
		}
	}
	return nil
}
