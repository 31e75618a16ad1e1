package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, "config.yml"), []byte(body), 0o600); err != nil {
		t.Fatalf("write config: %v", err)
	}
	return dir
}

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load(t.TempDir())
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Port != "8080" || cfg.Log.Level != "info" || cfg.DB.Path != "app.db" {
		t.Fatalf("unexpected defaults: %+v", cfg)
	}
	if cfg.Poller.Interval != 0 || cfg.Poller.MaxBackoff != time.Minute {
		t.Fatalf("poller defaults: %+v", cfg.Poller)
	}
	if cfg.Controls.InFlightGuard || cfg.Device.EchoActuator {
		t.Fatalf("guard and echo must be off by default")
	}
	if cfg.Simulator.Port != "8081" || cfg.Simulator.Tick != time.Second || !cfg.Simulator.AutoMode {
		t.Fatalf("simulator defaults: %+v", cfg.Simulator)
	}
}

func TestLoad_File(t *testing.T) {
	dir := writeConfig(t, `
port: "9000"
log:
  level: debug
device:
  address: http://10.0.0.7
  timeout: 3s
  echo_actuator: true
controls:
  in_flight_guard: true
poller:
  interval: 30s
`)
	cfg, err := Load(dir)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Port != "9000" || cfg.Log.Level != "debug" {
		t.Fatalf("unexpected cfg: %+v", cfg)
	}
	if cfg.Device.Address != "http://10.0.0.7" || cfg.Device.Timeout != 3*time.Second || !cfg.Device.EchoActuator {
		t.Fatalf("device: %+v", cfg.Device)
	}
	if !cfg.Controls.InFlightGuard || cfg.Poller.Interval != 30*time.Second {
		t.Fatalf("controls/poller: %+v %+v", cfg.Controls, cfg.Poller)
	}
}

func TestLoad_EnvOverride(t *testing.T) {
	dir := writeConfig(t, "device:\n  address: http://from-file\n")
	t.Setenv("TERRARIUM_DEVICE_ADDRESS", "http://from-env")
	t.Setenv("TERRARIUM_POLLER_INTERVAL", "10s")

	cfg, err := Load(dir)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Device.Address != "http://from-env" {
		t.Fatalf("address=%q", cfg.Device.Address)
	}
	if cfg.Poller.Interval != 10*time.Second {
		t.Fatalf("interval=%v", cfg.Poller.Interval)
	}
}

func TestLoad_InvalidFile(t *testing.T) {
	dir := writeConfig(t, "port: [unclosed\n")
	if _, err := Load(dir); err == nil {
		t.Fatalf("expected error for malformed yaml")
	}
}

func TestValidateDashboard(t *testing.T) {
	var cfg Config
	if err := cfg.ValidateDashboard(); !errors.Is(err, errMissingDeviceAddress) {
		t.Fatalf("err=%v, want errMissingDeviceAddress", err)
	}
	cfg.Device.Address = "   "
	if err := cfg.ValidateDashboard(); !errors.Is(err, errMissingDeviceAddress) {
		t.Fatalf("blank address accepted")
	}
	cfg.Device.Address = "http://192.168.230.175"
	if err := cfg.ValidateDashboard(); err != nil {
		t.Fatalf("ValidateDashboard: %v", err)
	}
}
