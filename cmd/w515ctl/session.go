package main

import (
	"context"
	"fmt"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/valab/w515ctl/pkg/config"
	"github.com/valab/w515ctl/pkg/connection"
)

// loadConfig resolves the effective configuration from --config (if
// given) plus flag overrides.
func loadConfig(cmd *cobra.Command) (*config.Config, error) {
	cfg := config.DefaultConfig()

	if path, _ := cmd.Flags().GetString("config"); path != "" {
		loaded, err := config.Load(path)
		if err != nil {
			return nil, err
		}
		cfg = loaded
	}

	if device, _ := cmd.Flags().GetString("device"); device != "" {
		cfg.Address = device
	}
	if level, _ := cmd.Flags().GetString("log-level"); level != "" {
		if _, err := logrus.ParseLevel(level); err != nil {
			return nil, fmt.Errorf("invalid log level: %s (must be debug, info, warn, or error)", level)
		}
		cfg.LogLevel = level
	}

	if cfg.Address == "" {
		return nil, fmt.Errorf("device address required: pass --device or set address in the config file")
	}
	return cfg, nil
}

// withSession runs fn against a freshly connected session, for
// one-shot commands that do not need the drive loop.
func withSession(cmd *cobra.Command, fn func(cfg *config.Config, m *connection.Manager) error) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	logger := cfg.NewLogger()

	// All arguments validated - don't show usage on runtime errors
	cmd.SilenceUsage = true

	m := connection.NewManager(cfg.Address, nil, cfg.ConnectionOptions(), logger)
	defer m.Close()

	if err := m.Connect(cmd.Context()); err != nil {
		return err
	}
	defer m.Disconnect()

	return fn(cfg, m)
}

// waitLive polls until the drive loop reaches the live state.
func waitLive(ctx context.Context, m *connection.Manager, timeout time.Duration) error {
	deadline := time.Now().Add(timeout)
	ticker := time.NewTicker(100 * time.Millisecond)
	defer ticker.Stop()
	for {
		if m.State() == connection.StateLive {
			return nil
		}
		if time.Now().After(deadline) {
			return fmt.Errorf("pump not reachable within %s", timeout)
		}
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
		}
	}
}
