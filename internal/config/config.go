package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

const envPrefix = "TERRARIUM"

// Config holds every runtime option of the dashboard and the device simulator.
type Config struct {
	Port string `mapstructure:"port"`

	Log struct {
		Level string `mapstructure:"level"`
	} `mapstructure:"log"`

	DB struct {
		Path string `mapstructure:"path"`
	} `mapstructure:"db"`

	Device struct {
		Address      string        `mapstructure:"address"`       // e.g. http://192.168.230.175
		Timeout      time.Duration `mapstructure:"timeout"`       // 0 = no client timeout
		EchoActuator bool          `mapstructure:"echo_actuator"` // add "actuator" to control bodies
	} `mapstructure:"device"`

	Controls struct {
		InFlightGuard bool `mapstructure:"in_flight_guard"`
	} `mapstructure:"controls"`

	Poller struct {
		Interval   time.Duration `mapstructure:"interval"` // 0 = fetch once
		MaxBackoff time.Duration `mapstructure:"max_backoff"`
	} `mapstructure:"poller"`

	Simulator struct {
		Port     string        `mapstructure:"port"`
		Tick     time.Duration `mapstructure:"tick"`
		AutoMode bool          `mapstructure:"auto_mode"`
	} `mapstructure:"simulator"`
}

var errMissingDeviceAddress = errors.New("device.address is required")

// setDefaults registers fallback values for every key.
func setDefaults(v *viper.Viper) {
	v.SetDefault("port", "8080")
	v.SetDefault("log.level", "info")
	v.SetDefault("db.path", "app.db")
	v.SetDefault("device.address", "")
	v.SetDefault("device.timeout", time.Duration(0))
	v.SetDefault("device.echo_actuator", false)
	v.SetDefault("controls.in_flight_guard", false)
	v.SetDefault("poller.interval", time.Duration(0))
	v.SetDefault("poller.max_backoff", time.Minute)
	v.SetDefault("simulator.port", "8081")
	v.SetDefault("simulator.tick", time.Second)
	v.SetDefault("simulator.auto_mode", true)
}

// Load reads configs/config.yml (when present) under the given search paths,
// applies TERRARIUM_* environment overrides and returns the decoded config.
func Load(paths ...string) (Config, error) {
	v := viper.New()
	setDefaults(v)

	if len(paths) == 0 {
		paths = []string{"configs"}
	}
	for _, p := range paths {
		v.AddConfigPath(p)
	}
	v.SetConfigName("config")
	v.SetConfigType("yml")

	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return Config{}, fmt.Errorf("read config: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, fmt.Errorf("decode config: %w", err)
	}
	return cfg, nil
}

// ValidateDashboard checks the options the dashboard cannot start without.
func (c Config) ValidateDashboard() error {
	if strings.TrimSpace(c.Device.Address) == "" {
		return errMissingDeviceAddress
	}
	return nil
}
