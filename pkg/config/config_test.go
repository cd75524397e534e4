package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	assert.Equal(t, "info", cfg.LogLevel)
	assert.Equal(t, 30*time.Second, cfg.ConnectTimeout.Std())
	assert.Equal(t, 5*time.Second, cfg.WriteTimeout.Std())
	assert.Equal(t, time.Second, cfg.LivenessInterval.Std())
	assert.Equal(t, 5*time.Second, cfg.RetryInterval.Std())
	assert.Equal(t, 3*time.Second, cfg.UpdateInterval.Std())
	assert.Equal(t, 1000, cfg.MeasurementIntervalMs)
	assert.Equal(t, 256, cfg.TelemetryBuffer)
}

func TestLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	content := `
address: "AA:BB:CC:DD:EE:FF"
log_level: debug
retry_interval: 2s
update_interval: 1m30s
measurement_interval_ms: 500
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "AA:BB:CC:DD:EE:FF", cfg.Address)
	assert.Equal(t, "debug", cfg.LogLevel)
	assert.Equal(t, 2*time.Second, cfg.RetryInterval.Std())
	assert.Equal(t, 90*time.Second, cfg.UpdateInterval.Std())
	assert.Equal(t, 500, cfg.MeasurementIntervalMs)
	// Untouched fields keep their defaults.
	assert.Equal(t, 30*time.Second, cfg.ConnectTimeout.Std())
	assert.Equal(t, 256, cfg.TelemetryBuffer)
}

func TestLoad_Errors(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.ErrorContains(t, err, "failed to read config file")

	path := filepath.Join(t.TempDir(), "bad.yaml")
	require.NoError(t, os.WriteFile(path, []byte("retry_interval: soon"), 0o644))
	_, err = Load(path)
	assert.ErrorContains(t, err, "invalid duration")
}

func TestNewLogger(t *testing.T) {
	cfg := DefaultConfig()
	cfg.LogLevel = "debug"
	assert.Equal(t, logrus.DebugLevel, cfg.NewLogger().GetLevel())

	cfg.LogLevel = "nonsense"
	assert.Equal(t, logrus.InfoLevel, cfg.NewLogger().GetLevel())
}

func TestOptionMapping(t *testing.T) {
	cfg := DefaultConfig()
	cfg.RetryInterval = Duration(7 * time.Second)
	cfg.UpdateInterval = Duration(2 * time.Second)

	connOpts := cfg.ConnectionOptions()
	assert.Equal(t, 7*time.Second, connOpts.RetryInterval)
	assert.Equal(t, 30*time.Second, connOpts.ConnectTimeout)

	schedOpts := cfg.SchedulerOptions()
	assert.Equal(t, 2*time.Second, schedOpts.UpdateInterval)
}
