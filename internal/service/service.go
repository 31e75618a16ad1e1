package service

import (
	"context"
	"time"

	"terrarium_dashboard/internal/device"
	"terrarium_dashboard/internal/logger"
	"terrarium_dashboard/internal/metrics"
	"terrarium_dashboard/internal/models"
	"terrarium_dashboard/internal/repository"
)

// Charts exposes the fixed mock charts.
type Charts interface {
	All() []models.Chart
}

// Controls exposes the actuator buttons.
type Controls interface {
	Actuators() []models.Actuator
	Toggle(ctx context.Context, id string) (models.Actuator, error)
}

// Status exposes the device status poller. Run returns after one fetch, or
// when ctx is canceled if polling is enabled.
type Status interface {
	Run(ctx context.Context)
	Snapshot() (models.StatusSnapshot, bool)
	History(ctx context.Context, limit int) ([]models.StatusSnapshot, error)
}

// EventLog reads the control event log.
type EventLog interface {
	List(ctx context.Context, f LogFilter) ([]models.ControlEvent, error)
}

var (
	_ Charts   = (*ChartsService)(nil)
	_ Controls = (*ControlsService)(nil)
	_ Status   = (*StatusService)(nil)
	_ EventLog = (*EventLogService)(nil)
)

// Service aggregates all sub-services.
type Service struct {
	Charts
	Controls
	Status
	EventLog
}

// Deps carries what NewService wires into the sub-services.
type Deps struct {
	Repos         *repository.Repository
	Controller    device.Controller
	StatusSource  device.StatusSource
	Metrics       *metrics.Metrics
	Log           *logger.Logger
	InFlightGuard bool
	PollInterval  time.Duration
	MaxBackoff    time.Duration
}

// NewService wires the services. Without Repos nothing is persisted.
func NewService(d Deps) *Service {
	var events repository.EventRepo
	if d.Repos != nil {
		events = d.Repos.EventRepo
	}
	return &Service{
		Charts:   NewChartsService(),
		Controls: NewControlsService(d.Controller, events, d.Metrics, d.Log, d.InFlightGuard),
		Status:   NewStatusService(d.StatusSource, d.Repos, d.Metrics, d.Log, d.PollInterval, d.MaxBackoff),
		EventLog: NewEventLogService(events),
	}
}
