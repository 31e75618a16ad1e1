package handlers

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"terrarium_dashboard/internal/logger"
	"terrarium_dashboard/internal/service"

	"github.com/gin-gonic/gin"
)

func TestRequestLogger_PassesThrough(t *testing.T) {
	gin.SetMode(gin.TestMode)

	for _, log := range []*logger.Logger{nil, logger.New(logger.DebugLevel, "http")} {
		h := NewHandler(&service.Service{}, nil, log)
		r := gin.New()
		r.Use(h.requestLogger)
		r.GET("/ok", func(c *gin.Context) { c.String(http.StatusOK, "ok") })
		r.GET("/fail", func(c *gin.Context) {
			_ = c.Error(http.ErrHandlerTimeout)
			c.String(http.StatusBadGateway, "fail")
		})

		for path, want := range map[string]int{"/ok": http.StatusOK, "/fail": http.StatusBadGateway, "/missing": http.StatusNotFound} {
			w := httptest.NewRecorder()
			r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, path, nil))
			if w.Code != want {
				t.Fatalf("log=%v %s: status=%d, want %d", log != nil, path, w.Code, want)
			}
		}
	}
}
