package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"terrarium_dashboard/internal/config"
	"terrarium_dashboard/internal/logger"
	"terrarium_dashboard/internal/server"
	"terrarium_dashboard/internal/simulator"
)

const shutdownTimeout = 10 * time.Second

func main() {
	cfg, err := config.Load()
	if err != nil {
		logger.Get(logger.InfoLevel).Fatalw("error reading config", "err", err)
	}
	log := logger.Get(cfg.Log.Level)

	dev := simulator.NewDevice(simulator.Options{
		AutoMode: cfg.Simulator.AutoMode,
		Noise:    0.5,
		Seed:     time.Now().UnixNano(),
		Log:      logger.New(cfg.Log.Level, "device"),
	})

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	tick := cfg.Simulator.Tick
	if tick <= 0 {
		tick = time.Second
	}
	go dev.Run(ctx, tick)

	srv := &server.Server{}
	go func() {
		log.Infow("device simulator listening", "port", cfg.Simulator.Port, "auto_mode", cfg.Simulator.AutoMode)
		if err := srv.Run(cfg.Simulator.Port, simulator.Routes(dev)); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalw("error starting simulator", "err", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Infow("shutting down simulator")
	cancel()

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer shutdownCancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Errorw("simulator shutdown timed out", "err", err)
	}
}
