package main

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newFlagCmd() *cobra.Command {
	cmd := &cobra.Command{Use: "test"}
	cmd.Flags().String("device", "", "")
	cmd.Flags().String("config", "", "")
	cmd.Flags().String("log-level", "", "")
	return cmd
}

func TestLoadConfig_DeviceFlag(t *testing.T) {
	cmd := newFlagCmd()
	require.NoError(t, cmd.Flags().Set("device", "AA:BB:CC:DD:EE:FF"))

	cfg, err := loadConfig(cmd)
	require.NoError(t, err)
	assert.Equal(t, "AA:BB:CC:DD:EE:FF", cfg.Address)
	assert.Equal(t, "info", cfg.LogLevel)
}

func TestLoadConfig_FileWithFlagOverrides(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	content := "address: 11:22:33:44:55:66\nretry_interval: 2s\n"
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	cmd := newFlagCmd()
	require.NoError(t, cmd.Flags().Set("config", path))
	require.NoError(t, cmd.Flags().Set("device", "AA:BB:CC:DD:EE:FF"))
	require.NoError(t, cmd.Flags().Set("log-level", "debug"))

	cfg, err := loadConfig(cmd)
	require.NoError(t, err)
	// The --device flag wins over the config file address.
	assert.Equal(t, "AA:BB:CC:DD:EE:FF", cfg.Address)
	assert.Equal(t, "debug", cfg.LogLevel)
	assert.Equal(t, 2*time.Second, cfg.RetryInterval.Std())
}

func TestLoadConfig_MissingAddress(t *testing.T) {
	_, err := loadConfig(newFlagCmd())
	assert.ErrorContains(t, err, "device address required")
}

func TestLoadConfig_InvalidLogLevel(t *testing.T) {
	cmd := newFlagCmd()
	require.NoError(t, cmd.Flags().Set("device", "AA:BB:CC:DD:EE:FF"))
	require.NoError(t, cmd.Flags().Set("log-level", "loud"))

	_, err := loadConfig(cmd)
	assert.ErrorContains(t, err, "invalid log level")
}
