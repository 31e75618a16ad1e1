package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"terrarium_dashboard/internal/models"
)

func TestGetStatus_LoadingThenLoaded(t *testing.T) {
	s, _, status := newMockService()
	r := newTestRouter(s)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/v1/status", nil))
	if w.Code != http.StatusOK {
		t.Fatalf("status=%d", w.Code)
	}
	if got := w.Body.String(); got != `{"loading":true}` {
		t.Fatalf("loading body=%s", got)
	}

	status.set(models.StatusSnapshot{
		ID: 3,
		Status: models.DeviceStatus{
			Fan1Status: models.Bool(true),
			Humidity:   models.Float(55),
		},
		FetchedAt: time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC),
	})

	w = httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/v1/status", nil))
	var out StatusResponse
	if err := json.Unmarshal(w.Body.Bytes(), &out); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if out.Loading || out.Status == nil || out.Status.Fan1Status == nil || !bool(*out.Status.Fan1Status) {
		t.Fatalf("unexpected status: %+v", out)
	}
	if len(out.Lines) != 9 || out.Lines[0] != "Fan 1 Status: On" || out.Lines[7] != "Humidity: 55%" {
		t.Fatalf("unexpected lines: %q", out.Lines)
	}
}

func TestGetStatusHistory(t *testing.T) {
	cases := []struct {
		name      string
		url       string
		err       error
		wantCode  int
		wantLimit int
	}{
		{name: "default limit", url: "/api/v1/status/history", wantCode: http.StatusOK, wantLimit: 0},
		{name: "explicit limit", url: "/api/v1/status/history?limit=5", wantCode: http.StatusOK, wantLimit: 5},
		{name: "invalid limit", url: "/api/v1/status/history?limit=abc", wantCode: http.StatusBadRequest},
		{name: "negative limit", url: "/api/v1/status/history?limit=-1", wantCode: http.StatusBadRequest},
		{name: "limit at max", url: "/api/v1/status/history?limit=1000", wantCode: http.StatusOK, wantLimit: 1000},
		{name: "limit over max", url: "/api/v1/status/history?limit=5000", wantCode: http.StatusBadRequest},
		{name: "repo error", url: "/api/v1/status/history", err: errors.New("db"), wantCode: http.StatusInternalServerError},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			s, _, status := newMockService()
			status.history = []models.StatusSnapshot{{ID: 2}, {ID: 1}}
			status.historyErr = tc.err
			r := newTestRouter(s)

			w := httptest.NewRecorder()
			r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, tc.url, nil))
			if w.Code != tc.wantCode {
				t.Fatalf("status=%d, want %d (body=%s)", w.Code, tc.wantCode, w.Body.String())
			}
			if tc.wantCode == http.StatusBadRequest && status.lastLimit != 0 {
				t.Fatalf("history queried with limit %d on a rejected request", status.lastLimit)
			}
			if tc.wantCode != http.StatusOK {
				return
			}
			if status.lastLimit != tc.wantLimit {
				t.Fatalf("limit=%d, want %d", status.lastLimit, tc.wantLimit)
			}
			var out struct {
				Count     int                     `json:"count"`
				Snapshots []models.StatusSnapshot `json:"snapshots"`
			}
			_ = json.Unmarshal(w.Body.Bytes(), &out)
			if out.Count != 2 || out.Snapshots[0].ID != 2 {
				t.Fatalf("unexpected body: %+v", out)
			}
		})
	}
}
