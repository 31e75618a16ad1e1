package repository

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"terrarium_dashboard/internal/models"

	"github.com/google/uuid"
)

// eventTimeLayout is how occurred_at is stored; it sorts lexically.
const eventTimeLayout = "2006-01-02 15:04:05.000"

const (
	defaultEventLimit = 200
	maxEventLimit     = 1000

	insertEventSQL = `INSERT INTO control_events (id, occurred_at, type, actuator, message, meta) VALUES (?, ?, ?, ?, ?, ?)`
	selectEventSQL = `SELECT id, occurred_at, type, actuator, message, meta FROM control_events`
	orderEventSQL  = ` ORDER BY occurred_at DESC, rowid DESC LIMIT ?`
)

// EventSQLite keeps the control log in the control_events table.
type EventSQLite struct {
	db  *sql.DB
	now func() time.Time
}

func NewEventSQLite(db *sql.DB) *EventSQLite {
	return &EventSQLite{db: db, now: time.Now}
}

var _ EventRepo = (*EventSQLite)(nil)

// Append stores e, assigning an id and a timestamp when they are missing.
func (r *EventSQLite) Append(ctx context.Context, e models.ControlEvent) error {
	if e.EventID == "" {
		e.EventID = uuid.NewString()
	}
	at := e.OccurredAt
	if at.IsZero() {
		at = r.now()
	}

	var meta sql.NullString
	if e.Metadata != nil {
		b, err := json.Marshal(e.Metadata)
		if err != nil {
			return fmt.Errorf("encode meta of event %s: %w", e.EventID, err)
		}
		meta = sql.NullString{String: string(b), Valid: true}
	}

	if _, err := r.db.ExecContext(ctx, insertEventSQL,
		e.EventID,
		at.UTC().Format(eventTimeLayout),
		strings.ToUpper(strings.TrimSpace(e.Type)),
		e.Actuator,
		e.Description,
		meta,
	); err != nil {
		return fmt.Errorf("insert event %s: %w", e.EventID, err)
	}
	return nil
}

// where accumulates SQL conditions with their arguments.
type where struct {
	conds []string
	args  []any
}

func (w *where) add(cond string, arg any) {
	w.conds = append(w.conds, cond)
	w.args = append(w.args, arg)
}

func (w *where) String() string {
	if len(w.conds) == 0 {
		return ""
	}
	return " WHERE " + strings.Join(w.conds, " AND ")
}

// listSQL renders q as a statement and its arguments.
func listSQL(q EventQuery) (string, []any) {
	var w where
	if !q.From.IsZero() {
		w.add("occurred_at >= ?", q.From.UTC().Format(eventTimeLayout))
	}
	if !q.To.IsZero() {
		w.add("occurred_at <= ?", q.To.UTC().Format(eventTimeLayout))
	}
	if t := strings.ToUpper(strings.TrimSpace(q.Type)); t != "" {
		w.add("type = ?", t)
	}
	if a := strings.TrimSpace(q.Actuator); a != "" {
		w.add("actuator = ?", a)
	}
	args := append(w.args, clamp(q.Limit, defaultEventLimit, maxEventLimit))
	return selectEventSQL + w.String() + orderEventSQL, args
}

// List returns the newest matching events first.
func (r *EventSQLite) List(ctx context.Context, q EventQuery) ([]models.ControlEvent, error) {
	stmt, args := listSQL(q)
	rows, err := r.db.QueryContext(ctx, stmt, args...)
	if err != nil {
		return nil, fmt.Errorf("query events: %w", err)
	}
	defer rows.Close()

	out := []models.ControlEvent{}
	for rows.Next() {
		ev, err := scanEvent(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, ev)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate events: %w", err)
	}
	return out, nil
}

func scanEvent(rows *sql.Rows) (models.ControlEvent, error) {
	var (
		ev   models.ControlEvent
		at   string
		meta sql.NullString
	)
	if err := rows.Scan(&ev.EventID, &at, &ev.Type, &ev.Actuator, &ev.Description, &meta); err != nil {
		return ev, fmt.Errorf("scan event: %w", err)
	}
	t, err := time.ParseInLocation(eventTimeLayout, at, time.UTC)
	if err != nil {
		return ev, fmt.Errorf("event %s: bad occurred_at %q: %w", ev.EventID, at, err)
	}
	ev.OccurredAt = t

	if meta.Valid && meta.String != "" {
		var v any
		if json.Unmarshal([]byte(meta.String), &v) == nil {
			ev.Metadata = v
		} else {
			ev.Metadata = meta.String
		}
	}
	return ev, nil
}
