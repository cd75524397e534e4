package main

import (
	"fmt"

	"github.com/fatih/color"

	"github.com/valab/w515ctl/pkg/pump"
)

var (
	readoutLabel = color.New(color.FgCyan)
	readoutValue = color.New(color.FgWhite, color.Bold)
)

// printSample renders one telemetry sample as a live readout line.
func printSample(s pump.Sample) {
	readoutLabel.Printf("Time: ")
	readoutValue.Printf("%.3fs", s.Timestamp)
	readoutLabel.Printf("  |  PSI: ")
	readoutValue.Printf("%d", s.PSI)
	readoutLabel.Printf("  |  Current: ")
	readoutValue.Printf("%d", s.MotorCurrent)
	readoutLabel.Printf("  |  Pump Rate: ")
	readoutValue.Printf("%d", s.PumpRate)
	fmt.Println()
}
