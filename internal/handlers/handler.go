package handlers

import (
	"terrarium_dashboard/internal/logger"
	"terrarium_dashboard/internal/service"
	"terrarium_dashboard/internal/view"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

// Handler wires HTTP layer to services and logging.
type Handler struct {
	services *service.Service
	gatherer prometheus.Gatherer
	log      *logger.Logger
}

// NewHandler constructs a new HTTP handler with dependencies.
// A nil gatherer exposes the default Prometheus registry.
func NewHandler(services *service.Service, gatherer prometheus.Gatherer, log *logger.Logger) *Handler {
	if gatherer == nil {
		gatherer = prometheus.DefaultGatherer
	}
	return &Handler{services: services, gatherer: gatherer, log: log}
}

// InitRoutes builds and returns the Gin router with all routes registered.
func (h *Handler) InitRoutes() *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery(), h.requestLogger)
	router.SetHTMLTemplate(view.Templates())

	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	router.GET("/metrics", gin.WrapH(promhttp.HandlerFor(h.gatherer, promhttp.HandlerOpts{})))

	// Health endpoint
	router.GET("/health", h.health)

	// Server-rendered dashboard
	h.registerPageRoutes(router)

	// Versioned API endpoints
	h.registerAPIRoutes(router)

	// Live dashboard stream (HTTP upgrade), same port
	router.GET("/ws", h.wsConnect)

	return router
}

func (h *Handler) registerPageRoutes(r *gin.Engine) {
	r.GET("/", h.dashboard)
	r.POST("/controls/:id/toggle", h.toggleForm)
}

func (h *Handler) registerAPIRoutes(r *gin.Engine) {
	api := r.Group("/api/v1")
	{
		api.GET("/charts", h.getCharts)
		h.registerActuatorRoutes(api)
		h.registerStatusRoutes(api)
		h.registerLogRoutes(api)
	}
}

func (h *Handler) registerActuatorRoutes(api *gin.RouterGroup) {
	actuators := api.Group("/actuators")
	{
		actuators.GET("", h.listActuators)
		actuators.POST("/:id/toggle", h.toggleActuator)
	}
}

func (h *Handler) registerStatusRoutes(api *gin.RouterGroup) {
	status := api.Group("/status")
	{
		status.GET("", h.getStatus)
		status.GET("/history", h.getStatusHistory)
	}
}

func (h *Handler) registerLogRoutes(api *gin.RouterGroup) {
	logs := api.Group("/logs")
	{
		logs.GET("", h.getLogs)
	}
}
