package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"terrarium_dashboard/internal/models"
	"terrarium_dashboard/internal/repository"
)

// ErrInvalidFilter wraps every LogFilter rejection.
var ErrInvalidFilter = errors.New("invalid log filter")

type EventLogService struct {
	eventRepo repository.EventRepo
}

func NewEventLogService(eventRepo repository.EventRepo) *EventLogService {
	return &EventLogService{eventRepo: eventRepo}
}

// query validates f and converts it to a repository query in UTC.
func (f LogFilter) query() (repository.EventQuery, error) {
	q := repository.EventQuery{
		Type:     strings.ToUpper(strings.TrimSpace(f.Type)),
		Actuator: strings.ToLower(strings.TrimSpace(f.Actuator)),
		Limit:    f.Limit,
	}
	if !f.From.IsZero() {
		q.From = f.From.UTC()
	}
	if !f.To.IsZero() {
		q.To = f.To.UTC()
	}

	switch {
	case !q.From.IsZero() && !q.To.IsZero() && q.From.After(q.To):
		return q, fmt.Errorf("%w: from %s is after to %s", ErrInvalidFilter, q.From.Format(time.RFC3339), q.To.Format(time.RFC3339))
	case q.Type != "" && !models.IsEventType(q.Type):
		return q, fmt.Errorf("%w: unknown event type %q", ErrInvalidFilter, f.Type)
	case q.Limit < 0:
		return q, fmt.Errorf("%w: negative limit %d", ErrInvalidFilter, q.Limit)
	}
	return q, nil
}

// List returns matching control events, newest first.
func (s *EventLogService) List(ctx context.Context, f LogFilter) ([]models.ControlEvent, error) {
	q, err := f.query()
	if err != nil {
		return nil, err
	}
	if s.eventRepo == nil {
		return []models.ControlEvent{}, nil
	}
	return s.eventRepo.List(ctx, q)
}
