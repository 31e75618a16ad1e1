package handlers

import (
	"net/http"
	"time"

	"terrarium_dashboard/internal/models"

	"github.com/gin-gonic/gin"
)

const (
	errLimitInvalid = "invalid 'limit'; use an integer from 1 to 1000"
	errHistory      = "failed to load status history"
)

// StatusResponse is the device status view. Status and Lines are omitted while loading.
type StatusResponse struct {
	Loading   bool                 `json:"loading"`
	Status    *models.DeviceStatus `json:"status,omitempty"`
	Lines     []string             `json:"lines,omitempty"`
	FetchedAt *time.Time           `json:"fetched_at,omitempty"`
}

func statusResponse(snap models.StatusSnapshot, loaded bool) StatusResponse {
	if !loaded {
		return StatusResponse{Loading: true}
	}
	at := snap.FetchedAt
	return StatusResponse{
		Status:    &snap.Status,
		Lines:     snap.Status.Lines(),
		FetchedAt: &at,
	}
}

// @Summary      Device status
// @Description  Latest status fetched from the controller; loading=true until the first fetch succeeded.
// @Tags         status
// @Produce      json
// @Success      200  {object}  StatusResponse
// @Router       /api/v1/status [get]
func (h *Handler) getStatus(c *gin.Context) {
	c.JSON(http.StatusOK, statusResponse(h.services.Status.Snapshot()))
}

// historyQuery is the query string of GET /api/v1/status/history.
type historyQuery struct {
	Limit int `form:"limit" binding:"omitempty,min=1,max=1000"`
}

// @Summary      Status history
// @Tags         status
// @Produce      json
// @Param        limit  query   int  false  "Max snapshots, newest first (default 50)"  minimum(1)  maximum(1000)
// @Success      200    {object}  map[string]interface{}  "count, snapshots"
// @Failure      400    {object}  map[string]string
// @Failure      500    {object}  map[string]string
// @Router       /api/v1/status/history [get]
func (h *Handler) getStatusHistory(c *gin.Context) {
	var q historyQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": errLimitInvalid})
		return
	}
	snaps, err := h.services.Status.History(c.Request.Context(), q.Limit)
	if err != nil {
		h.logAndJSONError(c, http.StatusInternalServerError, errHistory, "status_history_failed", err, "limit", q.Limit)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"count":     len(snaps),
		"snapshots": snaps,
	})
}
