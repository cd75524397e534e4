// Package experiment defines pump flow-rate programs — ordered
// static and ramp stages — and the scheduler that executes them
// against a live connection.
package experiment

import (
	"fmt"

	"github.com/valab/w515ctl/pkg/pump"
)

// Kind discriminates stage variants.
type Kind string

const (
	KindStatic Kind = "static"
	KindRamp   Kind = "ramp"
)

// Stage is one segment of a pump program: a constant rate held for a
// duration, or a linear rate transition over a duration. Rates are
// whole µL/min, durations are minutes.
type Stage struct {
	Kind      Kind    `yaml:"type"`
	Rate      int     `yaml:"rate,omitempty"`
	StartRate int     `yaml:"start_rate,omitempty"`
	EndRate   int     `yaml:"end_rate,omitempty"`
	Duration  float64 `yaml:"duration"`
}

// Static builds a constant-rate stage.
func Static(rate int, durationMinutes float64) Stage {
	return Stage{Kind: KindStatic, Rate: rate, Duration: durationMinutes}
}

// Ramp builds a linear-transition stage.
func Ramp(startRate, endRate int, durationMinutes float64) Stage {
	return Stage{Kind: KindRamp, StartRate: startRate, EndRate: endRate, Duration: durationMinutes}
}

// InvalidStageError reports a stage field outside its valid range.
type InvalidStageError struct {
	Field string
	Value any
}

func (e *InvalidStageError) Error() string {
	return fmt.Sprintf("invalid stage: %s = %v out of range", e.Field, e.Value)
}

// Validate checks the stage before any command is sent for it.
// Durations must be positive; every rate must be within
// [pump.MinRate, pump.MaxRate].
func (s Stage) Validate() error {
	if s.Duration <= 0 {
		return &InvalidStageError{Field: "duration", Value: s.Duration}
	}
	switch s.Kind {
	case KindStatic:
		if s.Rate < pump.MinRate || s.Rate > pump.MaxRate {
			return &InvalidStageError{Field: "rate", Value: s.Rate}
		}
	case KindRamp:
		if s.StartRate < pump.MinRate || s.StartRate > pump.MaxRate {
			return &InvalidStageError{Field: "start_rate", Value: s.StartRate}
		}
		if s.EndRate < pump.MinRate || s.EndRate > pump.MaxRate {
			return &InvalidStageError{Field: "end_rate", Value: s.EndRate}
		}
	default:
		return &InvalidStageError{Field: "type", Value: string(s.Kind)}
	}
	return nil
}
