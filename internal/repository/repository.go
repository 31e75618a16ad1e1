package repository

import (
	"context"
	"database/sql"
	"time"

	"terrarium_dashboard/internal/models"
)

// EventQuery selects a window of the control log. Zero values disable a bound.
type EventQuery struct {
	From     time.Time // inclusive
	To       time.Time // inclusive
	Type     string
	Actuator string
	Limit    int // clamped to [1, maxEventLimit]; 0 means defaultEventLimit
}

// EventRepo is the append-only control event log.
type EventRepo interface {
	Append(ctx context.Context, e models.ControlEvent) error
	List(ctx context.Context, q EventQuery) ([]models.ControlEvent, error)
}

// SnapshotRepo keeps the history of fetched device status snapshots.
type SnapshotRepo interface {
	Save(ctx context.Context, s models.StatusSnapshot) (int64, error)
	List(ctx context.Context, limit int) ([]models.StatusSnapshot, error)
}

type Repository struct {
	EventRepo    EventRepo
	SnapshotRepo SnapshotRepo
}

func NewRepository(db *sql.DB) *Repository {
	return &Repository{
		EventRepo:    NewEventSQLite(db),
		SnapshotRepo: NewSnapshotSQLite(db),
	}
}

// clamp bounds a requested row count.
func clamp(limit, def, hi int) int {
	switch {
	case limit <= 0:
		return def
	case limit > hi:
		return hi
	default:
		return limit
	}
}
