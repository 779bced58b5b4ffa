// Package cli is the tas2505 command line.
package cli

import (
	"context"
	"fmt"
	"os"
	"os/signal"

	"github.com/fatih/color"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/handegar/tas2505/settings"
)

var configFile string

var rootCmd = &cobra.Command{
	Use:   "tas2505",
	Short: "Inspect and program a TAS2505 codec",
	Long: `Read, write and decode the registers of a TAS2505 class-D codec over
i2c-dev, SMBus or an emulated chip, run register scripts, and render audio
through the playback path the registers describe.

Examples:
  tas2505 dump                                 # Decode pages 0 and 1 of the emulator
  tas2505 --backend i2cdev --dev /dev/i2c-1 get DACVOL
  tas2505 --backend smbus --bus 2 set SPKVOL2.GAIN 12DB
  tas2505 run init.tas --step                  # Step through an init script`,
	Version:           settings.Version,
	SilenceUsage:      true,
	PersistentPreRunE: setup,
}

// Execute runs the root command
func Execute() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()
	if err := rootCmd.ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	pf := rootCmd.PersistentFlags()
	pf.StringVar(&settings.Backend, "backend", settings.Backend, "register backend (emu, i2cdev, smbus)")
	pf.StringVar(&settings.I2CDev, "dev", settings.I2CDev, "i2c-dev node for the i2cdev backend")
	pf.IntVar(&settings.I2CBus, "bus", settings.I2CBus, "bus number for the smbus backend")
	pf.IntVar(&settings.I2CAddr, "addr", settings.I2CAddr, "7-bit i2c address")
	pf.StringVar(&settings.ScriptFile, "script", settings.ScriptFile, "register script to run before the command")
	pf.BoolVar(&settings.UseCache, "cache", settings.UseCache, "cache register values")
	pf.StringVar(&configFile, "config", "", "json5 config file")
	pf.StringVar(&settings.LogLevel, "log-level", settings.LogLevel, "trace, debug, info, warn or error")
	pf.BoolVar(&settings.PrintDebug, "debug-flags", settings.PrintDebug, "print emulator access counters on exit")
	pf.Bool("no-color", false, "disable colours")
}

// setup applies the config file, then lets flags given on the command
// line win over it.
func setup(cmd *cobra.Command, args []string) error {
	if configFile != "" {
		given := map[string]string{}
		cmd.Flags().Visit(func(f *pflag.Flag) { given[f.Name] = f.Value.String() })
		if err := settings.LoadConfig(configFile); err != nil {
			return err
		}
		for name, v := range given {
			cmd.Flags().Set(name, v)
		}
	}
	if noColor, _ := cmd.Flags().GetBool("no-color"); noColor {
		settings.Color = false
	}
	color.NoColor = color.NoColor || !settings.Color

	level, err := logrus.ParseLevel(settings.LogLevel)
	if err != nil {
		return errors.Wrap(err, "--log-level")
	}
	logrus.SetLevel(level)
	logrus.SetFormatter(&logrus.TextFormatter{DisableColors: !settings.Color})
	logrus.SetOutput(os.Stderr)
	return nil
}
