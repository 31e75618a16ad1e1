package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"
	"time"

	"terrarium_dashboard/internal/models"
	"terrarium_dashboard/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
)

func TestParseInterval(t *testing.T) {
	h := NewHandler(&service.Service{}, nil, nil)

	cases := []struct {
		name string
		u    string
		want time.Duration
	}{
		{"default_when_missing", "/ws", 1 * time.Second},
		{"interval_string_valid", "/ws?interval=200ms", 200 * time.Millisecond},
		{"interval_ms_valid", "/ws?interval_ms=150", 150 * time.Millisecond},
		{"interval_too_large", "/ws?interval=20s", 1 * time.Second},
		{"interval_ms_too_large", "/ws?interval_ms=20000", 1 * time.Second},
		{"interval_invalid_string", "/ws?interval=bogus", 1 * time.Second},
		{"interval_ms_invalid", "/ws?interval_ms=NaN", 1 * time.Second},
		{"both_present_interval_wins", "/ws?interval=2s&interval_ms=150", 2 * time.Second},
		{"both_present_invalid_interval_ms_used", "/ws?interval=bogus&interval_ms=250", 250 * time.Millisecond},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			w := httptest.NewRecorder()
			req := httptest.NewRequest(http.MethodGet, tc.u, nil)
			c, _ := gin.CreateTestContext(w)
			c.Request = req
			got := h.parseInterval(c)
			if got != tc.want {
				t.Fatalf("got %v, want %v for %s", got, tc.want, tc.u)
			}
		})
	}
}

func dialDashboard(t *testing.T, s *service.Service, query string) *websocket.Conn {
	t.Helper()
	gin.SetMode(gin.TestMode)
	r := gin.New()
	h := NewHandler(s, nil, nil)
	r.GET("/ws", h.wsConnect)

	srv := httptest.NewServer(r)
	t.Cleanup(srv.Close)

	u, _ := url.Parse(srv.URL)
	u.Scheme = "ws"
	u.Path = "/ws"
	u.RawQuery = query

	dialer := websocket.Dialer{HandshakeTimeout: 2 * time.Second}
	conn, _, err := dialer.Dial(u.String(), nil)
	if err != nil {
		t.Fatalf("dial error: %v", err)
	}
	t.Cleanup(func() { _ = conn.Close() })
	return conn
}

type testEnvelope struct {
	Type  string          `json:"type"`
	Data  DashboardUpdate `json:"data"`
	Error string          `json:"error"`
}

func TestWebSocket_DashboardStream_InitialAndPeriodic(t *testing.T) {
	s, _, status := newMockService()
	conn := dialDashboard(t, s, url.Values{"interval_ms": {"20"}}.Encode())

	// Read initial dashboard: status still loading
	_ = conn.SetReadDeadline(time.Now().Add(1 * time.Second))
	var env testEnvelope
	if err := conn.ReadJSON(&env); err != nil {
		t.Fatalf("read initial: %v", err)
	}
	if env.Type != wsTypeDashboard {
		t.Fatalf("bad envelope: %+v", env)
	}
	if len(env.Data.Actuators) != 2 || env.Data.Actuators[0].ID != "fan1" {
		t.Fatalf("unexpected actuators: %+v", env.Data.Actuators)
	}
	if !env.Data.Status.Loading {
		t.Fatalf("expected loading status, got %+v", env.Data.Status)
	}

	// A later tick reflects a status that arrived in the meantime
	status.set(models.StatusSnapshot{Status: models.DeviceStatus{WaterLevel: models.Float(72)}})

	deadline := time.Now().Add(2 * time.Second)
	for {
		_ = conn.SetReadDeadline(time.Now().Add(1 * time.Second))
		env = testEnvelope{}
		if err := conn.ReadJSON(&env); err != nil {
			t.Fatalf("read tick: %v", err)
		}
		if !env.Data.Status.Loading {
			break
		}
		if time.Now().After(deadline) {
			t.Fatalf("status never loaded in stream")
		}
	}
	if env.Data.Status.Status == nil || env.Data.Status.Status.WaterLevel == nil || env.Data.Status.Status.WaterLevel.String() != "72" {
		t.Fatalf("unexpected status: %+v", env.Data.Status)
	}
}

func TestWebSocket_RawEnvelopeShape(t *testing.T) {
	s, _, _ := newMockService()
	conn := dialDashboard(t, s, "")

	_ = conn.SetReadDeadline(time.Now().Add(1 * time.Second))
	var raw map[string]json.RawMessage
	if err := conn.ReadJSON(&raw); err != nil {
		t.Fatalf("read: %v", err)
	}
	var data map[string]json.RawMessage
	if err := json.Unmarshal(raw["data"], &data); err != nil {
		t.Fatalf("data: %v", err)
	}
	if _, ok := data["actuators"]; !ok {
		t.Fatalf("data.actuators missing: %s", raw["data"])
	}
	if string(data["status"]) != `{"loading":true}` {
		t.Fatalf("data.status=%s", data["status"])
	}
}

func readEnvelope(t *testing.T, conn *websocket.Conn) map[string]json.RawMessage {
	t.Helper()
	_ = conn.SetReadDeadline(time.Now().Add(time.Second))
	var raw map[string]json.RawMessage
	if err := conn.ReadJSON(&raw); err != nil {
		t.Fatalf("read: %v", err)
	}
	return raw
}

func envelopeType(raw map[string]json.RawMessage) string {
	var typ string
	_ = json.Unmarshal(raw["type"], &typ)
	return typ
}

func TestWebSocket_UnchangedDashboardIsNotResent(t *testing.T) {
	s, _, _ := newMockService()
	conn := dialDashboard(t, s, "interval_ms=10")

	if typ := envelopeType(readEnvelope(t, conn)); typ != wsTypeDashboard {
		t.Fatalf("first frame type=%q", typ)
	}

	_ = conn.SetReadDeadline(time.Now().Add(150 * time.Millisecond))
	var raw map[string]json.RawMessage
	err := conn.ReadJSON(&raw)
	var netErr interface{ Timeout() bool }
	if err == nil || !errors.As(err, &netErr) || !netErr.Timeout() {
		t.Fatalf("expected read timeout, got err=%v frame=%v", err, raw)
	}
}

func TestWebSocket_RefreshAndInvalidRequest(t *testing.T) {
	s, _, _ := newMockService()
	conn := dialDashboard(t, s, "interval=10s")
	readEnvelope(t, conn)

	if err := conn.WriteJSON(wsRequest{Type: wsTypeRefresh}); err != nil {
		t.Fatalf("write: %v", err)
	}
	if typ := envelopeType(readEnvelope(t, conn)); typ != wsTypeDashboard {
		t.Fatalf("refresh answered with %q", typ)
	}

	if err := conn.WriteMessage(websocket.TextMessage, []byte("hello")); err != nil {
		t.Fatalf("write: %v", err)
	}
	raw := readEnvelope(t, conn)
	if envelopeType(raw) != wsTypeError || len(raw["error"]) == 0 {
		t.Fatalf("unexpected reply: %v", raw)
	}
}

func TestWebSocket_Toggle(t *testing.T) {
	s, controls, _ := newMockService()
	controls.toggleSt = models.Actuator{ID: "pump", Name: "Pump", On: true}
	conn := dialDashboard(t, s, "interval=10s")
	readEnvelope(t, conn)

	if err := conn.WriteJSON(wsRequest{Type: wsTypeToggle, ID: "pump"}); err != nil {
		t.Fatalf("write: %v", err)
	}

	raw := readEnvelope(t, conn)
	if envelopeType(raw) != wsTypeToggle {
		t.Fatalf("expected toggle reply, got %v", raw)
	}
	var reply ToggleResponse
	if err := json.Unmarshal(raw["data"], &reply); err != nil {
		t.Fatalf("data: %v", err)
	}
	if reply.Status != statusOK || !reply.Actuator.On || reply.Actuator.ID != "pump" {
		t.Fatalf("unexpected reply: %+v", reply)
	}

	// the changed actuator list follows right away
	raw = readEnvelope(t, conn)
	var update DashboardUpdate
	if err := json.Unmarshal(raw["data"], &update); err != nil {
		t.Fatalf("data: %v", err)
	}
	if envelopeType(raw) != wsTypeDashboard || len(update.Actuators) != 2 || !update.Actuators[1].On {
		t.Fatalf("unexpected dashboard after toggle: %s", raw["data"])
	}
}

func TestWebSocket_ToggleFailure(t *testing.T) {
	s, controls, _ := newMockService()
	controls.toggleErr = service.ErrUnknownActuator
	conn := dialDashboard(t, s, "interval=10s")
	readEnvelope(t, conn)

	if err := conn.WriteJSON(wsRequest{Type: wsTypeToggle, ID: "heater"}); err != nil {
		t.Fatalf("write: %v", err)
	}
	raw := readEnvelope(t, conn)
	var reply ToggleResponse
	if err := json.Unmarshal(raw["data"], &reply); err != nil {
		t.Fatalf("data: %v", err)
	}
	if envelopeType(raw) != wsTypeToggle || reply.Error != errUnknownActuator {
		t.Fatalf("unexpected reply: %v", raw)
	}
	controls.mu.Lock()
	defer controls.mu.Unlock()
	if controls.calls != 1 || controls.lastID != "heater" {
		t.Fatalf("toggle calls=%d id=%q", controls.calls, controls.lastID)
	}
}
