package handlers

import (
	"context"
	"sync"

	"terrarium_dashboard/internal/models"
	"terrarium_dashboard/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
)

// ---- Service Mocks ----

type mockCharts struct {
	charts []models.Chart
}

func (m *mockCharts) All() []models.Chart {
	return m.charts
}

type mockControls struct {
	mu        sync.Mutex
	actuators []models.Actuator
	toggleSt  models.Actuator
	toggleErr error
	lastID    string
	lastCtx   context.Context
	calls     int
}

func (m *mockControls) Actuators() []models.Actuator {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.actuators
}

func (m *mockControls) Toggle(ctx context.Context, id string) (models.Actuator, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.calls++
	m.lastID = id
	m.lastCtx = ctx
	if m.toggleErr == nil {
		next := make([]models.Actuator, len(m.actuators))
		for i, a := range m.actuators {
			if a.ID == m.toggleSt.ID {
				a = m.toggleSt
			}
			next[i] = a
		}
		m.actuators = next
	}
	return m.toggleSt, m.toggleErr
}

type mockStatus struct {
	mu         sync.Mutex
	snap       models.StatusSnapshot
	loaded     bool
	history    []models.StatusSnapshot
	historyErr error
	lastLimit  int
}

func (m *mockStatus) Run(ctx context.Context) {}

func (m *mockStatus) Snapshot() (models.StatusSnapshot, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.snap, m.loaded
}

func (m *mockStatus) set(snap models.StatusSnapshot) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.snap = snap
	m.loaded = true
}

func (m *mockStatus) History(ctx context.Context, limit int) ([]models.StatusSnapshot, error) {
	m.lastLimit = limit
	return m.history, m.historyErr
}

type mockEventLog struct {
	resp  []models.ControlEvent
	err   error
	last  service.LogFilter
	calls int
}

func (m *mockEventLog) List(_ context.Context, f service.LogFilter) ([]models.ControlEvent, error) {
	m.calls++
	m.last = f
	return m.resp, m.err
}

// ---- Shared Test Helpers ----

func newMockService() (*service.Service, *mockControls, *mockStatus) {
	controls := &mockControls{actuators: []models.Actuator{
		{ID: "fan1", Name: "Fan 1", On: true},
		{ID: "pump", Name: "Pump", On: false},
	}}
	status := &mockStatus{}
	s := &service.Service{
		Charts: &mockCharts{charts: []models.Chart{{
			Name:    "Humidity",
			DataKey: "humidity",
			Points:  []models.ChartPoint{{Label: "Jan", Value: 40}, {Label: "Feb", Value: 55}},
		}}},
		Controls: controls,
		Status:   status,
		EventLog: &mockEventLog{},
	}
	return s, controls, status
}

func newTestRouter(s *service.Service) *gin.Engine {
	h := NewHandler(s, prometheus.NewRegistry(), nil)
	gin.SetMode(gin.TestMode)
	return h.InitRoutes()
}
