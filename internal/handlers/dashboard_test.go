package handlers

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"terrarium_dashboard/internal/device"
	"terrarium_dashboard/internal/models"
	"terrarium_dashboard/internal/service"
)

func TestDashboard_RendersPage(t *testing.T) {
	s, _, status := newMockService()
	r := newTestRouter(s)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/", nil))
	if w.Code != http.StatusOK {
		t.Fatalf("status=%d", w.Code)
	}
	body := w.Body.String()
	for _, want := range []string{"<svg", "Loading...", `action="/controls/fan1/toggle"`, "Pump"} {
		if !strings.Contains(body, want) {
			t.Fatalf("page missing %q", want)
		}
	}

	status.set(models.StatusSnapshot{Status: models.DeviceStatus{PumpStatus: models.Bool(true)}})
	w = httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/?failed=pump", nil))
	body = w.Body.String()
	if strings.Contains(body, "Loading...") || !strings.Contains(body, "Pump Status: On") {
		t.Fatalf("status block not rendered")
	}
	if !strings.Contains(body, "Pump: request failed") {
		t.Fatalf("flash message missing")
	}
}

func TestToggleForm_Redirects(t *testing.T) {
	cases := []struct {
		name     string
		err      error
		wantCode int
		wantLoc  string
	}{
		{name: "success", wantCode: http.StatusSeeOther, wantLoc: "/"},
		{name: "device failure", err: device.ErrRequestFailed, wantCode: http.StatusSeeOther, wantLoc: "/?failed=fan1"},
		{name: "in flight", err: service.ErrToggleInFlight, wantCode: http.StatusSeeOther, wantLoc: "/?failed=fan1"},
		{name: "unknown", err: service.ErrUnknownActuator, wantCode: http.StatusNotFound},
		{name: "other", err: errors.New("x"), wantCode: http.StatusSeeOther, wantLoc: "/?failed=fan1"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			s, controls, _ := newMockService()
			controls.toggleErr = tc.err
			r := newTestRouter(s)

			w := httptest.NewRecorder()
			r.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/controls/fan1/toggle", nil))
			if w.Code != tc.wantCode {
				t.Fatalf("status=%d, want %d", w.Code, tc.wantCode)
			}
			if tc.wantLoc != "" && w.Header().Get("Location") != tc.wantLoc {
				t.Fatalf("Location=%q, want %q", w.Header().Get("Location"), tc.wantLoc)
			}
			if controls.calls != 1 {
				t.Fatalf("Toggle calls=%d", controls.calls)
			}
		})
	}
}
