package main

import (
	"context"
	"errors"
	"fmt"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/valab/w515ctl/pkg/connection"
	"github.com/valab/w515ctl/pkg/telemetry"
)

// monitorCmd represents the monitor command
var monitorCmd = &cobra.Command{
	Use:   "monitor",
	Short: "Monitor live pump telemetry",
	Long: `Keeps a session with the pump open and prints telemetry as it
arrives. The session reconnects automatically if the pump goes out of
range or power-cycles; stop with Ctrl+C.

Examples:
  # Monitor with the address on the command line
  w515ctl monitor --device AA:BB:CC:DD:EE:FF

  # Monitor and export collected telemetry on exit
  w515ctl monitor --device AA:BB:CC:DD:EE:FF --csv run1.csv`,
	Args: cobra.NoArgs,
	RunE: runMonitor,
}

var monitorCSV string

func init() {
	monitorCmd.Flags().StringVar(&monitorCSV, "csv", "", "Write collected telemetry to this CSV file on exit")
}

func runMonitor(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	logger := cfg.NewLogger()
	cmd.SilenceUsage = true

	if monitorCSV == "" {
		monitorCSV = cfg.CSVPath
	}

	sink := telemetry.NewSink(cfg.TelemetryBuffer, logger)
	sink.OnSample(printSample)

	m := connection.NewManager(cfg.Address, nil, cfg.ConnectionOptions(), logger)
	defer m.Close()
	m.SetSampleHandler(sink.Push)

	ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	err = m.Run(ctx)

	sink.Close()
	if monitorCSV != "" {
		if exportErr := sink.ExportCSV(monitorCSV); exportErr != nil {
			return exportErr
		}
		fmt.Printf("Wrote %d samples to %s\n", sink.Len(), monitorCSV)
	}

	if errors.Is(err, context.Canceled) {
		return nil
	}
	return err
}
