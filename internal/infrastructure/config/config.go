package config

import (
	"fmt"
	"time"

	"github.com/kelseyhightower/envconfig"
)

// Config holds all shell configuration.
type Config struct {
	Sidecar   SidecarConfig
	Readiness ReadinessConfig
	Logging   LogConfig
	Status    StatusConfig
}

// SidecarConfig holds backend sidecar configuration.
type SidecarConfig struct {
	// Name is the logical binary name; the launcher resolves the
	// platform-specific file next to the shell executable.
	Name string `envconfig:"SIDECAR_NAME" default:"backend"`
	// Dir overrides the directory searched for the sidecar binary.
	// Empty means the directory of the running shell executable.
	Dir string `envconfig:"SIDECAR_DIR" default:""`
	// BaseURL is where the backend serves HTTP once it is up.
	BaseURL string `envconfig:"BACKEND_URL" default:"http://localhost:8080"`
}

// ReadinessConfig holds backend readiness probe configuration.
type ReadinessConfig struct {
	URL      string        `envconfig:"BACKEND_HEALTH_URL" default:"http://localhost:8080/actuator/health"`
	Interval time.Duration `envconfig:"READY_INTERVAL" default:"500ms"`
	Timeout  time.Duration `envconfig:"READY_TIMEOUT" default:"30s"`
}

// LogConfig holds logging configuration.
type LogConfig struct {
	Level       string `envconfig:"LOG_LEVEL" default:"info"`
	Development bool   `envconfig:"LOG_DEV" default:"false"`
}

// StatusConfig holds the local status/debug server configuration.
type StatusConfig struct {
	Enabled bool   `envconfig:"STATUS_ENABLED" default:"true"`
	Host    string `envconfig:"STATUS_HOST" default:"127.0.0.1"`
	Port    string `envconfig:"STATUS_PORT" default:"9090"`
}

// Addr returns the listen address for the status server.
func (s StatusConfig) Addr() string {
	return s.Host + ":" + s.Port
}

// Load loads configuration from environment variables.
func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	return &cfg, nil
}

// LoadOrDefault loads configuration from environment or returns default.
func LoadOrDefault() *Config {
	cfg, err := Load()
	if err != nil {
		return Default()
	}
	return cfg
}

// Default returns default configuration.
func Default() *Config {
	return &Config{
		Sidecar: SidecarConfig{
			Name:    "backend",
			BaseURL: "http://localhost:8080",
		},
		Readiness: ReadinessConfig{
			URL:      "http://localhost:8080/actuator/health",
			Interval: 500 * time.Millisecond,
			Timeout:  30 * time.Second,
		},
		Logging: LogConfig{
			Level:       "info",
			Development: false,
		},
		Status: StatusConfig{
			Enabled: true,
			Host:    "127.0.0.1",
			Port:    "9090",
		},
	}
}
