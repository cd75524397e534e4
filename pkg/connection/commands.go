package connection

import (
	"encoding/hex"
	"fmt"

	"github.com/sirupsen/logrus"

	"github.com/valab/w515ctl/pkg/pump"
)

// PressButton simulates a front-panel button press.
func (m *Manager) PressButton(label pump.Button) error {
	cmd, err := pump.EncodeButtonPress(label)
	if err != nil {
		return err
	}
	m.logger.WithFields(logrus.Fields{
		"button":  string(label),
		"payload": hex.EncodeToString(cmd.Payload),
	}).Info("Sending button press")
	return m.Submit(cmd)
}

// SetRate converts, validates and sends a pump rate. This is the
// manual-command boundary, so the [MinRate, MaxRate] range check
// lives here.
func (m *Manager) SetRate(rate float64, unit string) error {
	ul, err := pump.ConvertRate(rate, unit)
	if err != nil {
		return err
	}
	if ul < pump.MinRate || ul > pump.MaxRate {
		return fmt.Errorf("pump rate %d µL/min out of range [%d, %d]", ul, pump.MinRate, pump.MaxRate)
	}
	return m.WriteRate(ul)
}

// WriteRate sends a pre-validated rate in whole µL/min. The
// experiment scheduler uses this path after its own stage validation.
func (m *Manager) WriteRate(rate int) error {
	cmd, err := pump.EncodeRate(rate)
	if err != nil {
		return err
	}
	m.logger.WithField("rate", rate).Debug("Sending pump rate")
	return m.Submit(cmd)
}

// SetMeasurementInterval sets the device's telemetry interval.
func (m *Manager) SetMeasurementInterval(ms int) error {
	if ms < pump.MinIntervalMs || ms > pump.MaxIntervalMs {
		return fmt.Errorf("measurement interval %d ms out of range [%d, %d]", ms, pump.MinIntervalMs, pump.MaxIntervalMs)
	}
	cmd, err := pump.EncodeInterval(ms)
	if err != nil {
		return err
	}
	m.logger.WithField("interval_ms", ms).Info("Setting measurement interval")
	return m.Submit(cmd)
}
