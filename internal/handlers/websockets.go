package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"strconv"
	"time"

	"terrarium_dashboard/internal/models"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
)

const (
	wsWriteWait  = 10 * time.Second
	wsPongWait   = 60 * time.Second
	wsPingPeriod = wsPongWait * 9 / 10
	wsMaxMsgSize = 1 << 12

	wsDefaultInterval = time.Second
	wsMaxInterval     = 10 * time.Second

	// server -> client
	wsTypeDashboard = "dashboard"
	wsTypeError     = "error"
	// client -> server; a toggle is answered with a "toggle" frame
	wsTypeRefresh = "refresh"
	wsTypeToggle  = "toggle"

	errWSRequest = `unsupported message; send {"type":"refresh"} or {"type":"toggle","id":"<actuator>"}`
)

type wsEnvelope struct {
	Type  string      `json:"type"`
	Data  interface{} `json:"data,omitempty"`
	Error string      `json:"error,omitempty"`
}

type wsRequest struct {
	Type string `json:"type"`
	ID   string `json:"id,omitempty"`
}

// DashboardUpdate is the payload of a "dashboard" frame.
type DashboardUpdate struct {
	Actuators []models.Actuator `json:"actuators"`
	Status    StatusResponse    `json:"status"`
}

// Origins are not checked.
var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool { return true },
}

// dashboardStream serves one websocket client. Only run writes to conn.
type dashboardStream struct {
	h    *Handler
	conn *websocket.Conn
	last []byte // last dashboard frame sent

	requests chan wsRequest
	replies  chan wsEnvelope
	closed   chan struct{} // reader gone
	stopped  chan struct{} // writer gone
}

func (h *Handler) wsConnect(c *gin.Context) {
	interval := h.parseInterval(c)

	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		if h.log != nil {
			h.log.Errorw("ws_upgrade_failed", "err", err)
		}
		return
	}
	defer func() { _ = conn.Close() }()

	s := &dashboardStream{
		h:        h,
		conn:     conn,
		requests: make(chan wsRequest),
		replies:  make(chan wsEnvelope),
		closed:   make(chan struct{}),
		stopped:  make(chan struct{}),
	}
	go s.read()
	s.run(c.Request.Context(), interval)
}

// parseInterval reads ?interval=2s or ?interval_ms=2000, bounded by wsMaxInterval.
func (h *Handler) parseInterval(c *gin.Context) time.Duration {
	if s := c.Query("interval"); s != "" {
		if d, err := time.ParseDuration(s); err == nil && d > 0 && d <= wsMaxInterval {
			return d
		}
	}
	if ms := c.Query("interval_ms"); ms != "" {
		if v, err := strconv.Atoi(ms); err == nil && v > 0 && time.Duration(v)*time.Millisecond <= wsMaxInterval {
			return time.Duration(v) * time.Millisecond
		}
	}
	return wsDefaultInterval
}

func (s *dashboardStream) read() {
	defer close(s.closed)

	s.conn.SetReadLimit(wsMaxMsgSize)
	_ = s.conn.SetReadDeadline(time.Now().Add(wsPongWait))
	s.conn.SetPongHandler(func(string) error {
		return s.conn.SetReadDeadline(time.Now().Add(wsPongWait))
	})

	for {
		_, msg, err := s.conn.ReadMessage()
		if err != nil {
			if s.h.log != nil {
				s.h.log.Debugw("ws_read_closed", "err", err)
			}
			return
		}
		var req wsRequest
		if json.Unmarshal(msg, &req) != nil {
			req = wsRequest{}
		}
		select {
		case s.requests <- req:
		case <-s.stopped:
			return
		}
	}
}

// run sends the dashboard on connect and then whenever it changes (checked
// every interval) or the client asks for it.
func (s *dashboardStream) run(ctx context.Context, interval time.Duration) {
	defer close(s.stopped)

	ticker := time.NewTicker(interval)
	ping := time.NewTicker(wsPingPeriod)
	defer func() {
		ticker.Stop()
		ping.Stop()
	}()

	err := s.push(true)
	for err == nil {
		select {
		case <-s.closed:
			return
		case <-ctx.Done():
			return
		case <-ping.C:
			_ = s.conn.SetWriteDeadline(time.Now().Add(wsWriteWait))
			err = s.conn.WriteMessage(websocket.PingMessage, nil)
		case <-ticker.C:
			err = s.push(false)
		case req := <-s.requests:
			err = s.handle(ctx, req)
		case env := <-s.replies:
			if err = s.write(env); err == nil {
				err = s.push(false)
			}
		}
	}
	if s.h.log != nil {
		s.h.log.Infow("ws_write_failed", "err", err)
	}
}

func (s *dashboardStream) handle(ctx context.Context, req wsRequest) error {
	switch req.Type {
	case wsTypeRefresh:
		return s.push(true)
	case wsTypeToggle:
		go s.toggle(ctx, req.ID)
		return nil
	default:
		return s.write(wsEnvelope{Type: wsTypeError, Error: errWSRequest})
	}
}

// toggle runs off the writer loop so a slow device does not stall the stream.
func (s *dashboardStream) toggle(ctx context.Context, id string) {
	st, err := s.h.services.Controls.Toggle(context.WithoutCancel(ctx), id)
	code, msg := toggleOutcome(err)
	resp := ToggleResponse{Status: statusOK, Actuator: st}
	if err != nil {
		resp = ToggleResponse{Error: msg, Actuator: st}
	}
	if code == http.StatusInternalServerError && s.h.log != nil {
		s.h.log.Errorw("ws_toggle_failed", "actuator", id, "err", err)
	}

	select {
	case s.replies <- wsEnvelope{Type: wsTypeToggle, Data: resp}:
	case <-s.stopped:
	}
}

// push sends the current dashboard unless it equals the last frame and force is unset.
func (s *dashboardStream) push(force bool) error {
	frame, err := json.Marshal(wsEnvelope{Type: wsTypeDashboard, Data: s.h.dashboardUpdate()})
	if err != nil {
		return err
	}
	if !force && bytes.Equal(frame, s.last) {
		return nil
	}
	s.last = frame
	_ = s.conn.SetWriteDeadline(time.Now().Add(wsWriteWait))
	return s.conn.WriteMessage(websocket.TextMessage, frame)
}

func (s *dashboardStream) write(env wsEnvelope) error {
	_ = s.conn.SetWriteDeadline(time.Now().Add(wsWriteWait))
	return s.conn.WriteJSON(env)
}

func (h *Handler) dashboardUpdate() DashboardUpdate {
	return DashboardUpdate{
		Actuators: h.services.Controls.Actuators(),
		Status:    statusResponse(h.services.Status.Snapshot()),
	}
}
