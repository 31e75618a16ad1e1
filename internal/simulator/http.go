package simulator

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
)

// Firmware error bodies.
const (
	errNotFound         = "Not Found"
	errMethodNotAllowed = "Method Not Allowed"
	errInvalidJSON      = "Invalid JSON"
	errInvalidAction    = "Invalid action"
)

type actionRequest struct {
	Action string `json:"action"`
}

// Routes exposes the device over the controller's HTTP surface.
func Routes(d *Device) *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery())
	router.HandleMethodNotAllowed = true

	router.GET("/", func(c *gin.Context) {
		c.JSON(http.StatusOK, d.Status())
	})
	router.POST("/", notFound)
	router.GET("/:id", func(c *gin.Context) { getSwitch(c, d) })
	router.POST("/:id", func(c *gin.Context) { postSwitch(c, d) })

	router.NoRoute(notFound)
	router.NoMethod(func(c *gin.Context) {
		c.JSON(http.StatusMethodNotAllowed, gin.H{"error": errMethodNotAllowed})
	})
	return router
}

func notFound(c *gin.Context) {
	c.JSON(http.StatusNotFound, gin.H{"error": errNotFound})
}

func getSwitch(c *gin.Context, d *Device) {
	id := c.Param("id")
	name, on, err := d.Switch(id)
	if err != nil {
		notFound(c)
		return
	}
	c.JSON(http.StatusOK, gin.H{"id": id, "name": name, "status": on})
}

func postSwitch(c *gin.Context, d *Device) {
	id := c.Param("id")
	if _, _, err := d.Switch(id); err != nil {
		notFound(c)
		return
	}

	var req actionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": errInvalidJSON})
		return
	}

	msg, err := d.Apply(id, req.Action)
	switch {
	case errors.Is(err, ErrInvalidAction):
		c.JSON(http.StatusBadRequest, gin.H{"error": errInvalidAction})
	case err != nil:
		notFound(c)
	default:
		c.JSON(http.StatusOK, gin.H{"status": msg})
	}
}
