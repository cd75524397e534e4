package telemetry

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strconv"
)

// csvHeader matches the readout columns, one row per sample.
var csvHeader = []string{"Timestamp", "PSI", "MotorCurrent", "PumpRate"}

// WriteCSV serializes all collected samples in arrival order.
func (s *Sink) WriteCSV(w io.Writer) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(csvHeader); err != nil {
		return fmt.Errorf("failed to write CSV header: %w", err)
	}
	for _, sample := range s.Samples() {
		row := []string{
			strconv.FormatFloat(sample.Timestamp, 'f', 3, 64),
			strconv.FormatUint(uint64(sample.PSI), 10),
			strconv.FormatUint(uint64(sample.MotorCurrent), 10),
			strconv.FormatUint(uint64(sample.PumpRate), 10),
		}
		if err := cw.Write(row); err != nil {
			return fmt.Errorf("failed to write CSV row: %w", err)
		}
	}
	cw.Flush()
	return cw.Error()
}

// ExportCSV writes the collected samples to a file.
func (s *Sink) ExportCSV(path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create CSV file: %w", err)
	}
	defer f.Close()

	if err := s.WriteCSV(f); err != nil {
		return err
	}
	return f.Close()
}
