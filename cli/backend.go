package cli

import (
	"context"
	"os"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"

	"github.com/handegar/tas2505/bus"
	"github.com/handegar/tas2505/chip"
	"github.com/handegar/tas2505/debugger"
	"github.com/handegar/tas2505/regmap"
	"github.com/handegar/tas2505/regs"
	"github.com/handegar/tas2505/script"
	"github.com/handegar/tas2505/settings"
)

// emulated is the chip behind the emu backend, kept for its counters.
var emulated *chip.Chip

func openBus() (bus.Bus, error) {
	switch settings.Backend {
	case "emu", "emulator":
		emulated = chip.New()
		return emulated, nil
	case "i2cdev":
		return bus.OpenI2CDev(settings.I2CDev, settings.I2CAddr)
	case "smbus":
		return bus.OpenSMBus(settings.I2CBus, settings.I2CAddr)
	}
	return nil, errors.Errorf("unknown backend %q", settings.Backend)
}

// openMap connects to the chip and runs the --script, if any.
func openMap(ctx context.Context) (*regmap.Map, error) {
	b, err := openBus()
	if err != nil {
		return nil, err
	}
	log := logrus.WithFields(logrus.Fields{"backend": settings.Backend, "addr": settings.I2CAddr})
	opts := []regmap.Option{regmap.WithLogger(log)}
	if settings.UseCache {
		opts = append(opts, regmap.WithCache())
	}
	m := regmap.New(b, opts...)
	if settings.ScriptFile != "" {
		if err := runScript(ctx, m, settings.ScriptFile); err != nil {
			m.Close()
			return nil, err
		}
	}
	return m, nil
}

func closeMap(m *regmap.Map) {
	if settings.PrintDebug && emulated != nil {
		emulated.DebugFlags.Print()
	}
	m.Close()
}

// runScript runs filename against m, under the stepper when
// settings.Debugger is set. Reads are printed to stdout.
func runScript(ctx context.Context, m *regmap.Map, filename string) error {
	prog, err := script.ParseFile(filename)
	if err != nil {
		return err
	}
	opts := script.Options{
		OnRead: func(s *script.Statement, r regs.Reg, v uint8) {
			printValue(os.Stdout, r, v)
		},
	}
	if settings.Debugger {
		st, err := debugger.NewStepper(m, os.Stdout)
		if err != nil {
			return errors.Wrap(err, "opening keyboard")
		}
		defer st.Close()
		opts.Step = st.Step
	}
	return script.Run(ctx, m, prog, opts)
}
