package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/valab/w515ctl/pkg/config"
	"github.com/valab/w515ctl/pkg/connection"
	"github.com/valab/w515ctl/pkg/pump"
)

// buttonCmd represents the button command
var buttonCmd = &cobra.Command{
	Use:   "button <label>",
	Short: "Press a front-panel button remotely",
	Long: fmt.Sprintf(`Simulates a press of one of the pump's front-panel buttons.

Valid labels: %v

Examples:
  w515ctl button RunStop --device AA:BB:CC:DD:EE:FF
  w515ctl button MENU --device AA:BB:CC:DD:EE:FF`, pump.Buttons()),
	Args: cobra.ExactArgs(1),
	RunE: runButton,
}

func runButton(cmd *cobra.Command, args []string) error {
	label := pump.Button(args[0])

	return withSession(cmd, func(cfg *config.Config, m *connection.Manager) error {
		if err := m.PressButton(label); err != nil {
			return err
		}
		fmt.Printf("%s button press sent\n", label)
		return nil
	})
}
