package cli

import (
	"github.com/spf13/cobra"

	"github.com/handegar/tas2505/debugger"
)

var uiCmd = &cobra.Command{
	Use:   "ui",
	Short: "Browse the registers in a terminal UI",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		if !debugger.IsTerminal() {
			return debugger.ErrNotATerminal
		}
		m, err := openMap(cmd.Context())
		if err != nil {
			return err
		}
		defer closeMap(m)
		return debugger.Run(m)
	},
}

func init() {
	rootCmd.AddCommand(uiCmd)
}
