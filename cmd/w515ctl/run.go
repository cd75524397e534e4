package main

import (
	"context"
	"errors"
	"fmt"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/valab/w515ctl/pkg/connection"
	"github.com/valab/w515ctl/pkg/experiment"
	"github.com/valab/w515ctl/pkg/telemetry"
)

// runCmd represents the run command
var runCmd = &cobra.Command{
	Use:   "run <experiment.yaml>",
	Short: "Run a multi-stage flow-rate program",
	Long: `Executes an experiment: an ordered list of static holds and linear
ramps defined in a YAML file. Telemetry is printed while the program
runs and can be exported as CSV afterwards. Ctrl+C aborts the
program; the pump is left at the last commanded rate.

Experiment file format:

  stages:
    - type: static
      rate: 1000
      duration: 2        # minutes
    - type: ramp
      start_rate: 1000
      end_rate: 2000
      duration: 10

Example:
  w515ctl run gradient.yaml --device AA:BB:CC:DD:EE:FF --csv run1.csv`,
	Args: cobra.ExactArgs(1),
	RunE: runExperiment,
}

var (
	runCSV  string
	runWait time.Duration
)

func init() {
	runCmd.Flags().StringVar(&runCSV, "csv", "", "Write collected telemetry to this CSV file when done")
	runCmd.Flags().DurationVar(&runWait, "wait", time.Minute, "How long to wait for the pump before starting")
}

func runExperiment(cmd *cobra.Command, args []string) error {
	stages, err := experiment.Load(args[0])
	if err != nil {
		return err
	}

	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	logger := cfg.NewLogger()
	cmd.SilenceUsage = true

	if runCSV == "" {
		runCSV = cfg.CSVPath
	}

	sink := telemetry.NewSink(cfg.TelemetryBuffer, logger)
	sink.OnSample(printSample)

	m := connection.NewManager(cfg.Address, nil, cfg.ConnectionOptions(), logger)
	defer m.Close()
	m.SetSampleHandler(sink.Push)

	ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// The drive loop owns the session for the whole program; the
	// scheduler only submits commands through it.
	driveCtx, cancelDrive := context.WithCancel(ctx)
	defer cancelDrive()
	driveDone := make(chan error, 1)
	go func() { driveDone <- m.Run(driveCtx) }()

	if err := waitLive(ctx, m, runWait); err != nil {
		return err
	}

	if cfg.MeasurementIntervalMs > 0 {
		if err := m.SetMeasurementInterval(cfg.MeasurementIntervalMs); err != nil {
			logger.WithError(err).Warn("Failed to set measurement interval")
		}
	}

	scheduler := experiment.NewScheduler(m, cfg.SchedulerOptions(), logger)
	runErr := scheduler.Run(ctx, stages)

	cancelDrive()
	<-driveDone
	sink.Close()

	if runCSV != "" {
		if exportErr := sink.ExportCSV(runCSV); exportErr != nil {
			return exportErr
		}
		fmt.Printf("Wrote %d samples to %s\n", sink.Len(), runCSV)
	}

	if runErr == nil {
		fmt.Printf("Experiment completed: %d stages\n", len(stages))
		return nil
	}
	if errors.Is(runErr, context.Canceled) {
		fmt.Println("Experiment aborted")
	}
	return runErr
}
