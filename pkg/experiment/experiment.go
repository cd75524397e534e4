package experiment

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Plan builds the standard four-stage program: initial hold, ramp up,
// hold at the upper rate, ramp down.
func Plan(initialRate int, initialDuration float64, rampUpRate int, rampUpDuration, holdDuration float64, rampDownRate int, rampDownDuration float64) []Stage {
	return []Stage{
		Static(initialRate, initialDuration),
		Ramp(initialRate, rampUpRate, rampUpDuration),
		Static(rampUpRate, holdDuration),
		Ramp(rampUpRate, rampDownRate, rampDownDuration),
	}
}

type experimentFile struct {
	Stages []Stage `yaml:"stages"`
}

// Parse reads a YAML experiment definition:
//
//	stages:
//	  - type: static
//	    rate: 1000
//	    duration: 5
//	  - type: ramp
//	    start_rate: 1000
//	    end_rate: 2000
//	    duration: 10
func Parse(data []byte) ([]Stage, error) {
	var file experimentFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("failed to parse experiment: %w", err)
	}
	if len(file.Stages) == 0 {
		return nil, fmt.Errorf("experiment defines no stages")
	}
	return file.Stages, nil
}

// Load reads an experiment definition from a YAML file.
func Load(path string) ([]Stage, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read experiment file: %w", err)
	}
	return Parse(data)
}
