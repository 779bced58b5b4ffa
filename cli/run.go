package cli

import (
	"github.com/spf13/cobra"

	"github.com/handegar/tas2505/settings"
)

var runCmd = &cobra.Command{
	Use:   "run SCRIPT",
	Short: "Run a register script",
	Long: `Run a register script, one statement per line:

  reset
  page 1
  write SPKVOL2 0x10
  set IFACE1.DATALEN 24BITS
  update DACSETUP1 0x80 0x80
  delay 10ms
  read DACFLAG1
  expect DACFLAG1 0x80 0x80

With --step every statement waits for a key: (n)ext, (c)ontinue,
(v)iew registers or (q)uit.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		m, err := openMap(cmd.Context())
		if err != nil {
			return err
		}
		defer closeMap(m)
		return runScript(cmd.Context(), m, args[0])
	},
}

func init() {
	rootCmd.AddCommand(runCmd)

	runCmd.Flags().BoolVar(&settings.Debugger, "step", settings.Debugger, "step through the script")
}
