package main

import (
	"context"
	"database/sql"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	_ "terrarium_dashboard/docs"
	"terrarium_dashboard/internal/config"
	"terrarium_dashboard/internal/device"
	"terrarium_dashboard/internal/handlers"
	"terrarium_dashboard/internal/logger"
	"terrarium_dashboard/internal/metrics"
	"terrarium_dashboard/internal/repository"
	"terrarium_dashboard/internal/repository/db"
	"terrarium_dashboard/internal/server"
	"terrarium_dashboard/internal/service"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
)

const shutdownTimeout = 10 * time.Second

// @title        Terrarium Dashboard API
// @version      1.0
// @description  Charts, actuator controls and device status of the terrarium controller.
// @BasePath     /
func main() {
	// load config.yml (+ TERRARIUM_* env)
	cfg, err := config.Load()
	if err != nil {
		logger.Get(logger.InfoLevel).Fatalw("error reading config", "err", err)
	}

	log := logger.Get(cfg.Log.Level)

	if err := cfg.ValidateDashboard(); err != nil {
		log.Fatalw("invalid config", "err", err)
	}

	// event log + snapshot history
	conn, err := openDB(cfg, log)
	if err != nil {
		log.Fatalw("failed to init sqlite", "err", err)
	}
	defer func() {
		if cerr := conn.Close(); cerr != nil {
			log.Errorw("failed to close sqlite", "err", cerr)
		}
	}()

	// device client
	client, err := device.NewClient(cfg.Device.Address,
		device.WithTimeout(cfg.Device.Timeout),
		device.WithEchoActuator(cfg.Device.EchoActuator),
	)
	if err != nil {
		log.Fatalw("invalid device address", "err", err, "address", cfg.Device.Address)
	}
	log.Infow("device configured", "address", client.BaseURL(), "timeout", cfg.Device.Timeout)

	// metrics
	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	m := metrics.New(reg)

	repos := repository.NewRepository(conn)
	services := service.NewService(service.Deps{
		Repos:         repos,
		Controller:    client,
		StatusSource:  client,
		Metrics:       m,
		Log:           log,
		InFlightGuard: cfg.Controls.InFlightGuard,
		PollInterval:  cfg.Poller.Interval,
		MaxBackoff:    cfg.Poller.MaxBackoff,
	})
	apiHandler := handlers.NewHandler(services, reg, log)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// fetch device status (once, or periodically when poller.interval > 0)
	go services.Status.Run(ctx)

	srv := &server.Server{}
	runHTTPServer(srv, cfg.Port, apiHandler, log)

	waitForShutdown(cancel, srv, log)
}

// openDB opens the SQLite file named by db.path.
func openDB(cfg config.Config, log *logger.Logger) (*sql.DB, error) {
	dbPath := cfg.DB.Path
	if dbPath == "" {
		dbPath = "app.db"
		log.Infow("db.path empty, using default", "path", dbPath)
	}
	return db.InitDB(dbPath)
}

// runHTTPServer serves the dashboard in the background.
func runHTTPServer(srv *server.Server, port string, handler *handlers.Handler, log *logger.Logger) {
	go func() {
		if port == "" {
			port = "8080"
		}
		log.Infow("dashboard listening", "port", port)
		if err := srv.Run(port, handler.InitRoutes()); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalw("error starting server", "err", err)
		}
	}()
}

// waitForShutdown blocks until SIGINT/SIGTERM, stops the poller and drains HTTP.
func waitForShutdown(cancel context.CancelFunc, srv *server.Server, log *logger.Logger) {
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Infow("shutting down dashboard")
	cancel()

	ctx, shutdownCancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer shutdownCancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Errorw("dashboard shutdown timed out", "err", err)
	}
}
