package repository

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"terrarium_dashboard/internal/models"
)

const (
	defaultSnapshotLimit = 50
	maxSnapshotLimit     = 1000

	insertSnapshotSQL = `INSERT INTO status_snapshots (fetched_at, payload) VALUES (?, ?)`

	selectSnapshotsSQL = `
		SELECT id, fetched_at, payload
		FROM status_snapshots ORDER BY fetched_at DESC, id DESC LIMIT ?
	`
)

// SnapshotSQLite stores the history of fetched device status snapshots.
type SnapshotSQLite struct {
	db *sql.DB
}

func NewSnapshotSQLite(db *sql.DB) *SnapshotSQLite {
	return &SnapshotSQLite{db: db}
}

var _ SnapshotRepo = (*SnapshotSQLite)(nil)

// Save appends a snapshot and returns its row id. A zero FetchedAt is set to now.
func (r *SnapshotSQLite) Save(ctx context.Context, s models.StatusSnapshot) (int64, error) {
	payload, err := json.Marshal(s.Status)
	if err != nil {
		return 0, fmt.Errorf("marshal status: %w", err)
	}

	ts := s.FetchedAt
	if ts.IsZero() {
		ts = time.Now().UTC()
	} else {
		ts = ts.UTC()
	}

	res, err := r.db.ExecContext(ctx, insertSnapshotSQL, ts, string(payload))
	if err != nil {
		return 0, fmt.Errorf("insert snapshot: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("get last insert id for snapshot: %w", err)
	}
	return id, nil
}

// List returns the newest snapshots first.
func (r *SnapshotSQLite) List(ctx context.Context, limit int) ([]models.StatusSnapshot, error) {
	rows, err := r.db.QueryContext(ctx, selectSnapshotsSQL, clamp(limit, defaultSnapshotLimit, maxSnapshotLimit))
	if err != nil {
		return nil, fmt.Errorf("query snapshots: %w", err)
	}
	defer rows.Close()

	var out []models.StatusSnapshot
	for rows.Next() {
		var (
			s       models.StatusSnapshot
			payload string
		)
		if err := rows.Scan(&s.ID, &s.FetchedAt, &payload); err != nil {
			return nil, fmt.Errorf("scan snapshot: %w", err)
		}
		if err := json.Unmarshal([]byte(payload), &s.Status); err != nil {
			return nil, fmt.Errorf("decode snapshot %d: %w", s.ID, err)
		}
		s.FetchedAt = s.FetchedAt.UTC()
		out = append(out, s)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate snapshots: %w", err)
	}
	return out, nil
}
