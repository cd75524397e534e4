package main

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/valab/w515ctl/pkg/config"
	"github.com/valab/w515ctl/pkg/connection"
	"github.com/valab/w515ctl/pkg/pump"
)

// intervalCmd represents the interval command
var intervalCmd = &cobra.Command{
	Use:   "interval <milliseconds>",
	Short: "Set the telemetry measurement interval",
	Long: fmt.Sprintf(`Sets how often the pump emits telemetry notifications, in
milliseconds. Valid range is [%d, %d].

Example:
  w515ctl interval 500 --device AA:BB:CC:DD:EE:FF`, pump.MinIntervalMs, pump.MaxIntervalMs),
	Args: cobra.ExactArgs(1),
	RunE: runInterval,
}

func runInterval(cmd *cobra.Command, args []string) error {
	ms, err := strconv.Atoi(args[0])
	if err != nil {
		return fmt.Errorf("invalid interval %q: %w", args[0], err)
	}

	return withSession(cmd, func(cfg *config.Config, m *connection.Manager) error {
		if err := m.SetMeasurementInterval(ms); err != nil {
			return err
		}
		fmt.Printf("Measurement interval set to %d ms\n", ms)
		return nil
	})
}
