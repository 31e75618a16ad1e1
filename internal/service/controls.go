package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"terrarium_dashboard/internal/device"
	"terrarium_dashboard/internal/logger"
	"terrarium_dashboard/internal/metrics"
	"terrarium_dashboard/internal/models"
	"terrarium_dashboard/internal/repository"
)

// ErrUnknownActuator is returned for ids outside the fixed actuator set.
var ErrUnknownActuator = errors.New("unknown actuator")

// DefaultActuators lists the controls in display order with their initial state.
var DefaultActuators = []models.Actuator{
	{ID: "fan1", Name: "Fan 1", On: true},
	{ID: "fan2", Name: "Fan 2", On: false},
	{ID: "light1", Name: "Light 1", On: true},
	{ID: "light2", Name: "Light 2", On: false},
	{ID: "pump", Name: "Pump", On: true},
}

// ControlsService owns the control buttons and records every toggle outcome.
type ControlsService struct {
	buttons   []*Button
	byID      map[string]*Button
	eventRepo repository.EventRepo
	metrics   *metrics.Metrics
	log       *logger.Logger
}

func NewControlsService(ctrl device.Controller, eventRepo repository.EventRepo, m *metrics.Metrics, log *logger.Logger, guard bool) *ControlsService {
	s := &ControlsService{
		byID:      make(map[string]*Button, len(DefaultActuators)),
		eventRepo: eventRepo,
		metrics:   m,
		log:       log,
	}
	for _, a := range DefaultActuators {
		b := NewButton(a.ID, a.Name, a.On, ctrl, guard)
		s.buttons = append(s.buttons, b)
		s.byID[a.ID] = b
		m.ObserveActuator(a.ID, a.On)
	}
	return s
}

// Actuators returns the displayed state of every button in order.
func (s *ControlsService) Actuators() []models.Actuator {
	out := make([]models.Actuator, 0, len(s.buttons))
	for _, b := range s.buttons {
		out = append(out, b.State())
	}
	return out
}

// Toggle activates the button with the given id.
func (s *ControlsService) Toggle(ctx context.Context, id string) (models.Actuator, error) {
	b, ok := s.byID[id]
	if !ok {
		return models.Actuator{}, ErrUnknownActuator
	}

	prev := b.State().On
	st, action, err := b.Toggle(ctx)
	switch {
	case errors.Is(err, ErrToggleInFlight):
		s.metrics.ObserveToggle(id, metrics.ResultRejected)
		if s.log != nil {
			s.log.Infow("toggle_rejected", "actuator", id, "reason", "in_flight")
		}
		return st, err
	case err != nil:
		s.metrics.ObserveToggle(id, metrics.ResultFailed)
		if s.log != nil {
			s.log.Warnw("toggle_failed", "actuator", id, "action", action, "state", models.StateLabel(st.On), "err", err)
		}
		s.appendEvent(ctx, id, models.EventToggleFailed, st.Name+" "+action+" failed", map[string]any{
			"action": action,
			"error":  err.Error(),
		})
		return st, err
	}

	s.metrics.ObserveToggle(id, metrics.ResultOK)
	s.metrics.ObserveActuator(id, st.On)
	if s.log != nil {
		s.log.Infow("toggle", "actuator", id, "action", action, "from", models.StateLabel(prev), "to", models.StateLabel(st.On))
	}
	s.appendEvent(ctx, id, models.EventToggle, st.Name+" turned "+strings.ToLower(models.StateLabel(st.On)), map[string]any{
		"action": action,
		"on":     st.On,
	})
	return st, nil
}

// appendEvent writes to the control log; failures are logged and swallowed.
func (s *ControlsService) appendEvent(ctx context.Context, id, typ, desc string, meta map[string]any) {
	if s.eventRepo == nil {
		return
	}
	err := s.eventRepo.Append(ctx, models.ControlEvent{
		OccurredAt:  time.Now().UTC(),
		Type:        typ,
		Actuator:    id,
		Description: desc,
		Metadata:    meta,
	})
	if err != nil && s.log != nil {
		s.log.Errorw("event_append_failed", "type", typ, "actuator", id, "err", err)
	}
}
