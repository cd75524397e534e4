package main

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/valab/w515ctl/pkg/config"
	"github.com/valab/w515ctl/pkg/connection"
	"github.com/valab/w515ctl/pkg/pump"
)

// rateCmd represents the rate command
var rateCmd = &cobra.Command{
	Use:   "rate <value>",
	Short: "Set the pump flow rate",
	Long: fmt.Sprintf(`Sets the pump flow rate. The value is in µL/min unless --unit
says otherwise; the wire value is always whole µL/min in [%d, %d].

Examples:
  w515ctl rate 1500 --device AA:BB:CC:DD:EE:FF
  w515ctl rate 1.5 --unit mL/min --device AA:BB:CC:DD:EE:FF`, pump.MinRate, pump.MaxRate),
	Args: cobra.ExactArgs(1),
	RunE: runRate,
}

var rateUnit string

func init() {
	rateCmd.Flags().StringVar(&rateUnit, "unit", pump.UnitMicroliters, `Flow rate unit ("µL/min" or "mL/min")`)
}

func runRate(cmd *cobra.Command, args []string) error {
	value, err := strconv.ParseFloat(args[0], 64)
	if err != nil {
		return fmt.Errorf("invalid rate %q: %w", args[0], err)
	}

	return withSession(cmd, func(cfg *config.Config, m *connection.Manager) error {
		if err := m.SetRate(value, rateUnit); err != nil {
			return err
		}
		fmt.Printf("Pump rate set to %s %s\n", args[0], rateUnit)
		return nil
	})
}
