package experiment

import (
	"context"
	"fmt"
	"time"

	"github.com/mcuadros/go-defaults"
	"github.com/sirupsen/logrus"
)

// RateWriter delivers a validated rate command to the pump.
// connection.Manager implements it.
type RateWriter interface {
	WriteRate(rate int) error
}

// SchedulerOptions configures stage execution timing.
type SchedulerOptions struct {
	// UpdateInterval is the pacing between ramp steps.
	UpdateInterval time.Duration `default:"3s"`
}

// DefaultSchedulerOptions returns the default stage timing.
func DefaultSchedulerOptions() *SchedulerOptions {
	opts := new(SchedulerOptions)
	defaults.SetDefaults(opts)
	return opts
}

// Scheduler executes a stage program strictly in order: within a
// stage, commands are paced by UpdateInterval; the first command of
// stage N+1 is issued only after stage N's terminal command and sleep
// have completed.
type Scheduler struct {
	writer RateWriter
	opts   *SchedulerOptions
	logger *logrus.Logger

	// sleep is injected by tests; production uses a ctx-aware timer.
	sleep func(ctx context.Context, d time.Duration) error
}

// NewScheduler creates a scheduler writing through w. Nil opts get
// DefaultSchedulerOptions.
func NewScheduler(w RateWriter, opts *SchedulerOptions, logger *logrus.Logger) *Scheduler {
	if logger == nil {
		logger = logrus.New()
	}
	if opts == nil {
		opts = DefaultSchedulerOptions()
	}
	return &Scheduler{
		writer: w,
		opts:   opts,
		logger: logger,
		sleep:  sleepCtx,
	}
}

// Run executes the stages in order. Each stage is validated as it is
// reached; the first invalid stage aborts the rest before any of its
// commands are sent. Cancelling ctx aborts mid-sleep and returns
// ctx.Err(); the pump is left at the last commanded rate.
func (s *Scheduler) Run(ctx context.Context, stages []Stage) error {
	for i, stage := range stages {
		if err := stage.Validate(); err != nil {
			return fmt.Errorf("stage %d: %w", i+1, err)
		}

		s.logger.WithFields(logrus.Fields{
			"stage":    i + 1,
			"type":     string(stage.Kind),
			"duration": stage.Duration,
		}).Info("Starting stage")

		var err error
		switch stage.Kind {
		case KindStatic:
			err = s.runStatic(ctx, stage.Rate, stage.Duration)
		case KindRamp:
			err = s.runRamp(ctx, stage.StartRate, stage.EndRate, stage.Duration)
		}
		if err != nil {
			return fmt.Errorf("stage %d: %w", i+1, err)
		}
	}
	return nil
}

// runStatic sets the rate once and holds for the duration.
func (s *Scheduler) runStatic(ctx context.Context, rate int, durationMinutes float64) error {
	if err := s.writer.WriteRate(rate); err != nil {
		return err
	}
	return s.sleep(ctx, minutes(durationMinutes))
}

// runRamp walks the rate linearly from startRate to endRate.
// Intermediate rates truncate toward zero; the terminal command
// always carries the exact endRate so truncation drift never
// accumulates. A duration shorter than one update interval sends
// only the terminal command.
func (s *Scheduler) runRamp(ctx context.Context, startRate, endRate int, durationMinutes float64) error {
	steps := int(durationMinutes * 60 / s.opts.UpdateInterval.Seconds())
	if steps > 0 {
		increment := float64(endRate-startRate) / float64(steps)
		current := float64(startRate)
		for i := 0; i < steps; i++ {
			if err := s.writer.WriteRate(int(current)); err != nil {
				return err
			}
			current += increment
			if err := s.sleep(ctx, s.opts.UpdateInterval); err != nil {
				return err
			}
		}
	}
	return s.writer.WriteRate(endRate)
}

func minutes(m float64) time.Duration {
	return time.Duration(m * float64(time.Minute))
}

func sleepCtx(ctx context.Context, d time.Duration) error {
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
