// Package config holds application configuration for the pump
// controller: device address, session timing, and logging.
package config

import (
	"fmt"
	"os"
	"time"

	"github.com/sirupsen/logrus"
	"gopkg.in/yaml.v3"

	"github.com/valab/w515ctl/pkg/connection"
	"github.com/valab/w515ctl/pkg/experiment"
)

// Duration parses YAML scalars like "5s" or "1m30s".
type Duration time.Duration

func (d *Duration) UnmarshalYAML(node *yaml.Node) error {
	parsed, err := time.ParseDuration(node.Value)
	if err != nil {
		return fmt.Errorf("invalid duration %q: %w", node.Value, err)
	}
	*d = Duration(parsed)
	return nil
}

func (d Duration) MarshalYAML() (interface{}, error) {
	return time.Duration(d).String(), nil
}

// Std returns the value as a time.Duration.
func (d Duration) Std() time.Duration {
	return time.Duration(d)
}

// Config holds application configuration.
type Config struct {
	// Address is the pump's BLE address, supplied by the operator.
	Address string `yaml:"address"`

	LogLevel string `yaml:"log_level"`

	ConnectTimeout   Duration `yaml:"connect_timeout"`
	WriteTimeout     Duration `yaml:"write_timeout"`
	LivenessInterval Duration `yaml:"liveness_interval"`
	RetryInterval    Duration `yaml:"retry_interval"`
	UpdateInterval   Duration `yaml:"update_interval"`

	MeasurementIntervalMs int    `yaml:"measurement_interval_ms"`
	TelemetryBuffer       int    `yaml:"telemetry_buffer"`
	CSVPath               string `yaml:"csv_path"`
}

// DefaultConfig returns default configuration values.
func DefaultConfig() *Config {
	return &Config{
		LogLevel:              "info",
		ConnectTimeout:        Duration(30 * time.Second),
		WriteTimeout:          Duration(5 * time.Second),
		LivenessInterval:      Duration(time.Second),
		RetryInterval:         Duration(5 * time.Second),
		UpdateInterval:        Duration(3 * time.Second),
		MeasurementIntervalMs: 1000,
		TelemetryBuffer:       256,
	}
}

// Load reads a YAML config file over the defaults.
func Load(path string) (*Config, error) {
	cfg := DefaultConfig()
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}
	return cfg, nil
}

// NewLogger creates a configured logger instance. An unknown level
// falls back to info.
func (c *Config) NewLogger() *logrus.Logger {
	logger := logrus.New()

	level, err := logrus.ParseLevel(c.LogLevel)
	if err != nil {
		level = logrus.InfoLevel
	}
	logger.SetLevel(level)

	logger.SetFormatter(&logrus.TextFormatter{
		FullTimestamp:   true,
		TimestampFormat: time.RFC3339,
	})
	return logger
}

// ConnectionOptions maps the config onto session timing options.
func (c *Config) ConnectionOptions() *connection.Options {
	opts := connection.DefaultOptions()
	opts.ConnectTimeout = c.ConnectTimeout.Std()
	opts.WriteTimeout = c.WriteTimeout.Std()
	opts.LivenessInterval = c.LivenessInterval.Std()
	opts.RetryInterval = c.RetryInterval.Std()
	return opts
}

// SchedulerOptions maps the config onto stage execution timing.
func (c *Config) SchedulerOptions() *experiment.SchedulerOptions {
	opts := experiment.DefaultSchedulerOptions()
	opts.UpdateInterval = c.UpdateInterval.Std()
	return opts
}
