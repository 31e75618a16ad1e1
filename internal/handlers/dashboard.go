package handlers

import (
	"errors"
	"net/http"
	"net/url"

	"terrarium_dashboard/internal/service"
	"terrarium_dashboard/internal/view"

	"github.com/gin-gonic/gin"
)

// dashboard renders the page: charts, control buttons and device status.
func (h *Handler) dashboard(c *gin.Context) {
	snap, loaded := h.services.Status.Snapshot()
	actuators := h.services.Controls.Actuators()
	page := view.NewPage(h.services.Charts.All(), actuators, snap, loaded)

	if id := c.Query("failed"); id != "" {
		for _, a := range actuators {
			if a.ID == id {
				page.Flash = a.Name + ": request failed"
				break
			}
		}
	}
	c.HTML(http.StatusOK, view.DashboardTemplate, page)
}

// toggleForm handles a button press from the page and redirects back to it.
func (h *Handler) toggleForm(c *gin.Context) {
	id := c.Param("id")
	_, err := h.toggle(c, id)
	switch {
	case errors.Is(err, service.ErrUnknownActuator):
		c.String(http.StatusNotFound, errUnknownActuator)
	case err != nil:
		c.Redirect(http.StatusSeeOther, "/?failed="+url.QueryEscape(id))
	default:
		c.Redirect(http.StatusSeeOther, "/")
	}
}
