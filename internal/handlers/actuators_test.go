package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"terrarium_dashboard/internal/device"
	"terrarium_dashboard/internal/models"
	"terrarium_dashboard/internal/service"
)

func TestHealth(t *testing.T) {
	s, _, _ := newMockService()
	r := newTestRouter(s)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/health", nil))
	if w.Code != http.StatusOK || !strings.Contains(w.Body.String(), `"ok"`) {
		t.Fatalf("health: %d %s", w.Code, w.Body.String())
	}
}

func TestChartsAndActuatorsList(t *testing.T) {
	s, _, _ := newMockService()
	r := newTestRouter(s)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/v1/charts", nil))
	if w.Code != http.StatusOK {
		t.Fatalf("charts status=%d", w.Code)
	}
	var charts []models.Chart
	if err := json.Unmarshal(w.Body.Bytes(), &charts); err != nil {
		t.Fatalf("unmarshal charts: %v", err)
	}
	if len(charts) != 1 || charts[0].DataKey != "humidity" || len(charts[0].Points) != 2 {
		t.Fatalf("unexpected charts: %+v", charts)
	}

	w = httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/v1/actuators", nil))
	if w.Code != http.StatusOK {
		t.Fatalf("actuators status=%d", w.Code)
	}
	var acts []models.Actuator
	if err := json.Unmarshal(w.Body.Bytes(), &acts); err != nil {
		t.Fatalf("unmarshal actuators: %v", err)
	}
	if len(acts) != 2 || acts[0].ID != "fan1" || !acts[0].On {
		t.Fatalf("unexpected actuators: %+v", acts)
	}
}

func TestToggleActuator_StatusMapping(t *testing.T) {
	failed := fmt.Errorf("%w: connection refused", device.ErrRequestFailed)

	cases := []struct {
		name     string
		st       models.Actuator
		err      error
		wantCode int
		wantErr  string
		wantOn   bool
	}{
		{name: "success", st: models.Actuator{ID: "pump", Name: "Pump", On: true}, wantCode: http.StatusOK, wantOn: true},
		{name: "device failure keeps state", st: models.Actuator{ID: "pump", Name: "Pump", On: false}, err: failed, wantCode: http.StatusBadGateway, wantErr: errRequestFailed},
		{name: "unknown id", err: service.ErrUnknownActuator, wantCode: http.StatusNotFound, wantErr: errUnknownActuator},
		{name: "in flight", st: models.Actuator{ID: "pump", On: false}, err: service.ErrToggleInFlight, wantCode: http.StatusConflict, wantErr: errToggleInFlight},
		{name: "unexpected", err: errors.New("boom"), wantCode: http.StatusInternalServerError, wantErr: errToggle},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			s, controls, _ := newMockService()
			controls.toggleSt = tc.st
			controls.toggleErr = tc.err
			r := newTestRouter(s)

			w := httptest.NewRecorder()
			r.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/api/v1/actuators/pump/toggle", nil))
			if w.Code != tc.wantCode {
				t.Fatalf("status=%d, want %d (body=%s)", w.Code, tc.wantCode, w.Body.String())
			}
			if controls.lastID != "pump" {
				t.Fatalf("toggled id=%q", controls.lastID)
			}

			var out ToggleResponse
			if err := json.Unmarshal(w.Body.Bytes(), &out); err != nil {
				t.Fatalf("unmarshal: %v", err)
			}
			if out.Error != tc.wantErr {
				t.Fatalf("error=%q, want %q", out.Error, tc.wantErr)
			}
			if out.Actuator.On != tc.wantOn {
				t.Fatalf("actuator.on=%v, want %v", out.Actuator.On, tc.wantOn)
			}
		})
	}
}

func TestToggleActuator_DetachedFromRequestContext(t *testing.T) {
	s, controls, _ := newMockService()
	r := newTestRouter(s)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	req := httptest.NewRequest(http.MethodPost, "/api/v1/actuators/fan1/toggle", nil).WithContext(ctx)
	r.ServeHTTP(httptest.NewRecorder(), req)

	if controls.lastCtx == nil {
		t.Fatalf("Toggle not called")
	}
	if err := controls.lastCtx.Err(); err != nil {
		t.Fatalf("toggle context canceled with the request: %v", err)
	}
}

func TestMetricsEndpoint(t *testing.T) {
	s, _, _ := newMockService()
	r := newTestRouter(s)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	if w.Code != http.StatusOK {
		t.Fatalf("metrics status=%d", w.Code)
	}
}
