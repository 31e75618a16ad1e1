package handlers

import (
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"terrarium_dashboard/internal/models"
	"terrarium_dashboard/internal/service"

	"github.com/gin-gonic/gin"
)

const (
	errLogsQuery = "invalid query; limit must be 1..1000"
	errLogs      = "failed to load logs"
)

// Accepted layouts for from/to, tried in order.
var queryTimeLayouts = []string{time.RFC3339, "2006-01-02 15:04:05", time.DateOnly}

// logsQuery is the query string of GET /api/v1/logs.
type logsQuery struct {
	From     string `form:"from"`
	To       string `form:"to"`
	Type     string `form:"type"`
	Actuator string `form:"actuator"`
	Limit    int    `form:"limit" binding:"omitempty,min=1,max=1000"`
}

// LogsResponse is the body of GET /api/v1/logs.
type LogsResponse struct {
	Count  int                   `json:"count" example:"1"`
	Events []models.ControlEvent `json:"events"`
}

// filter converts the raw query into a service filter. A date-only "to"
// covers the whole day.
func (q logsQuery) filter() (service.LogFilter, error) {
	f := service.LogFilter{Type: q.Type, Actuator: q.Actuator, Limit: q.Limit}
	var err error
	if q.From != "" {
		if f.From, err = parseQueryTime(q.From); err != nil {
			return f, err
		}
	}
	if q.To != "" {
		if f.To, err = parseQueryTime(q.To); err != nil {
			return f, err
		}
		if !strings.ContainsAny(q.To, "T ") {
			f.To = f.To.Add(24*time.Hour - time.Nanosecond)
		}
	}
	return f, nil
}

// @Summary      List control events
// @Description  Toggle and status fetch outcomes, newest first. from/to accept RFC3339, 'YYYY-MM-DD HH:MM:SS' or 'YYYY-MM-DD'; a date-only 'to' includes the whole day.
// @Tags         logs
// @Produce      json
// @Param        from      query  string  false  "Start of range"  example(2025-08-01)
// @Param        to        query  string  false  "End of range"  example(2025-08-31)
// @Param        type      query  string  false  "Event type"  Enums(TOGGLE,TOGGLE_FAILED,STATUS,STATUS_FAILED)
// @Param        actuator  query  string  false  "Actuator id"  Enums(fan1,fan2,light1,light2,pump)
// @Param        limit     query  int     false  "Max events (default 200)"  minimum(1)  maximum(1000)
// @Success      200  {object}  LogsResponse
// @Failure      400  {object}  map[string]string
// @Failure      500  {object}  map[string]string
// @Router       /api/v1/logs [get]
func (h *Handler) getLogs(c *gin.Context) {
	var q logsQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": errLogsQuery})
		return
	}
	f, err := q.filter()
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	events, err := h.services.EventLog.List(c.Request.Context(), f)
	switch {
	case errors.Is(err, service.ErrInvalidFilter):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case err != nil:
		h.logAndJSONError(c, http.StatusInternalServerError, errLogs, "logs_list_failed", err, "filter", f)
	default:
		c.JSON(http.StatusOK, LogsResponse{Count: len(events), Events: events})
	}
}

// parseQueryTime parses s with the first matching layout and returns UTC.
func parseQueryTime(s string) (time.Time, error) {
	for _, layout := range queryTimeLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t.UTC(), nil
		}
	}
	return time.Time{}, fmt.Errorf("invalid time %q; use RFC3339, 'YYYY-MM-DD HH:MM:SS' or 'YYYY-MM-DD'", s)
}
