package main

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "w515ctl",
	Short: "BLE controller for a Waters 515 HPLC pump",
	Long: `Command-line controller for a Waters 515 HPLC pump fitted with a
BLE conversion board:

- Monitor live telemetry (pressure, motor current, pump rate)
- Press front-panel buttons remotely
- Set the pump rate and telemetry interval
- Run multi-stage flow-rate programs (static holds and linear ramps)
- Export collected telemetry as CSV

The device address comes from --device or from a YAML config file.`,
	Version: version,
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		// Ctrl+C is a normal exit, not an error - exit silently
		if errors.Is(err, context.Canceled) {
			return
		}
		fmt.Fprintf(os.Stderr, "ERROR: %s\n", err)
		os.Exit(1)
	}
}

func init() {
	// Silence Cobra's "Error:" prefix - main() prints clean errors
	rootCmd.SilenceErrors = true

	rootCmd.AddCommand(monitorCmd)
	rootCmd.AddCommand(buttonCmd)
	rootCmd.AddCommand(rateCmd)
	rootCmd.AddCommand(intervalCmd)
	rootCmd.AddCommand(runCmd)

	// Global flags
	rootCmd.PersistentFlags().String("device", "", "BLE address of the pump (overrides config)")
	rootCmd.PersistentFlags().String("config", "", "Path to YAML config file")
	rootCmd.PersistentFlags().String("log-level", "", "Log level (debug, info, warn, error)")
}
