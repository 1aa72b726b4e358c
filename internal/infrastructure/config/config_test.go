package config_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/foodflow/shell/internal/infrastructure/config"
)

func TestDefault(t *testing.T) {
	cfg := config.Default()

	assert.Equal(t, "backend", cfg.Sidecar.Name)
	assert.Empty(t, cfg.Sidecar.Dir)
	assert.Equal(t, "http://localhost:8080", cfg.Sidecar.BaseURL)
	assert.Equal(t, 30*time.Second, cfg.Readiness.Timeout)
	assert.True(t, cfg.Status.Enabled)
	assert.Equal(t, "127.0.0.1:9090", cfg.Status.Addr())
}

func TestLoadFromEnvironment(t *testing.T) {
	t.Setenv("SIDECAR_NAME", "comandas-backend")
	t.Setenv("READY_TIMEOUT", "10s")
	t.Setenv("STATUS_ENABLED", "false")

	cfg, err := config.Load()
	require.NoError(t, err)

	assert.Equal(t, "comandas-backend", cfg.Sidecar.Name)
	assert.Equal(t, 10*time.Second, cfg.Readiness.Timeout)
	assert.False(t, cfg.Status.Enabled)

	// Untouched fields keep their defaults.
	assert.Equal(t, 500*time.Millisecond, cfg.Readiness.Interval)
}

func TestLoadOrDefaultFallsBack(t *testing.T) {
	t.Setenv("READY_TIMEOUT", "not-a-duration")

	cfg := config.LoadOrDefault()
	assert.Equal(t, 30*time.Second, cfg.Readiness.Timeout)
}
