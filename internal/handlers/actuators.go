package handlers

import (
	"context"
	"errors"
	"net/http"

	"terrarium_dashboard/internal/device"
	"terrarium_dashboard/internal/models"
	"terrarium_dashboard/internal/service"

	"github.com/gin-gonic/gin"
)

const (
	statusOK = "ok"

	errUnknownActuator = "unknown actuator"
	errRequestFailed   = "request failed"
	errToggleInFlight  = "toggle already in flight"
	errToggle          = "failed to toggle actuator"
)

// logAndJSONError logs err under logKey and replies with userMsg only.
func (h *Handler) logAndJSONError(c *gin.Context, httpCode int, userMsg, logKey string, err error, kv ...interface{}) {
	if h.log != nil && err != nil {
		fields := append([]interface{}{"err", err}, kv...)
		h.log.Errorw(logKey, fields...)
	}
	c.JSON(httpCode, gin.H{"error": userMsg})
}

// ToggleResponse is the body of a toggle reply.
type ToggleResponse struct {
	Status   string          `json:"status,omitempty" example:"ok"`
	Error    string          `json:"error,omitempty"`
	Actuator models.Actuator `json:"actuator"`
}

// @Summary      Health check
// @Tags         system
// @Produce      json
// @Success      200  {object}  map[string]string
// @Router       /health [get]
func (h *Handler) health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status": statusOK,
	})
}

// @Summary      List charts
// @Description  Mock humidity and temperature series as they are plotted on the dashboard.
// @Tags         charts
// @Produce      json
// @Success      200  {array}  models.Chart
// @Router       /api/v1/charts [get]
func (h *Handler) getCharts(c *gin.Context) {
	c.JSON(http.StatusOK, h.services.Charts.All())
}

// @Summary      List actuators
// @Description  Displayed state of every control button, in display order.
// @Tags         actuators
// @Produce      json
// @Success      200  {array}  models.Actuator
// @Router       /api/v1/actuators [get]
func (h *Handler) listActuators(c *gin.Context) {
	c.JSON(http.StatusOK, h.services.Controls.Actuators())
}

// @Summary      Toggle actuator
// @Description  Sends turn_on/turn_off for the opposite of the displayed state. The state only changes when the controller accepts the command.
// @Tags         actuators
// @Produce      json
// @Param        id   path      string  true  "Actuator id"  Enums(fan1,fan2,light1,light2,pump)
// @Success      200  {object}  ToggleResponse
// @Failure      404  {object}  map[string]string
// @Failure      409  {object}  ToggleResponse
// @Failure      502  {object}  ToggleResponse
// @Router       /api/v1/actuators/{id}/toggle [post]
func (h *Handler) toggleActuator(c *gin.Context) {
	id := c.Param("id")
	st, err := h.toggle(c, id)
	code, msg := toggleOutcome(err)
	switch code {
	case http.StatusOK:
		c.JSON(code, ToggleResponse{Status: statusOK, Actuator: st})
	case http.StatusNotFound:
		c.JSON(code, gin.H{"error": msg})
	case http.StatusInternalServerError:
		h.logAndJSONError(c, code, msg, "actuator_toggle_failed", err, "actuator", id)
	default:
		// device failures are already logged by the controls service
		c.JSON(code, ToggleResponse{Error: msg, Actuator: st})
	}
}

// toggleOutcome maps a toggle result to an HTTP status and client message.
func toggleOutcome(err error) (int, string) {
	switch {
	case err == nil:
		return http.StatusOK, ""
	case errors.Is(err, service.ErrUnknownActuator):
		return http.StatusNotFound, errUnknownActuator
	case errors.Is(err, service.ErrToggleInFlight):
		return http.StatusConflict, errToggleInFlight
	case errors.Is(err, device.ErrRequestFailed):
		return http.StatusBadGateway, errRequestFailed
	default:
		return http.StatusInternalServerError, errToggle
	}
}

// toggle detaches from the request context so an acknowledged command is
// committed even if the client goes away.
func (h *Handler) toggle(c *gin.Context, id string) (models.Actuator, error) {
	return h.services.Controls.Toggle(context.WithoutCancel(c.Request.Context()), id)
}
