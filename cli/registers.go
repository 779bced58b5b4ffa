package cli

import (
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/mattn/go-runewidth"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"

	"github.com/handegar/tas2505/chip"
	"github.com/handegar/tas2505/dac"
	"github.com/handegar/tas2505/decode"
	"github.com/handegar/tas2505/regs"
	"github.com/handegar/tas2505/utils"
)

var dumpHex bool

var getCmd = &cobra.Command{
	Use:   "get REGISTER|FIELD",
	Short: "Read a register or a field",
	Long: `Read a register by name (DACVOL), by page:offset (1:0x2e) or a single
field (IFACE1.DATALEN) and print it decoded.`,
	Args: cobra.ExactArgs(1),
	RunE: runGet,
}

var setCmd = &cobra.Command{
	Use:   "set REGISTER|FIELD VALUE",
	Short: "Write a register or a field",
	Long: `Write a register or a single field. Field values may be numbers or the
field's enumerated names. DACVOL also takes a gain in dB, e.g.

  tas2505 set SPKVOL2.GAIN 12DB
  tas2505 set 0:65 0xfe
  tas2505 set DACVOL -6.5dB`,
	Args: cobra.ExactArgs(2),
	RunE: runSet,
}

var dumpCmd = &cobra.Command{
	Use:   "dump [PAGE...]",
	Short: "Read and decode whole pages (default 0 and 1)",
	RunE:  runDump,
}

var fieldsCmd = &cobra.Command{
	Use:   "fields REGISTER [VALUE]",
	Short: "Describe a register and decode a value without touching the chip",
	Args:  cobra.RangeArgs(1, 2),
	RunE:  runFields,
}

var regsCmd = &cobra.Command{
	Use:   "regs",
	Short: "List the named registers",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		listRegisters(os.Stdout)
		return nil
	},
}

var capsCmd = &cobra.Command{
	Use:   "caps",
	Short: "Print the sample rates and formats of the audio interface",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		printCaps(os.Stdout)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(getCmd, setCmd, dumpCmd, fieldsCmd, regsCmd, capsCmd)

	dumpCmd.Flags().BoolVar(&dumpHex, "hex", false, "print a hex grid instead of named registers")
}

func lookupReg(name string) (regs.Reg, error) {
	r, ok := regs.Lookup(name)
	if !ok {
		return 0, errors.Errorf("unknown register %q", name)
	}
	return r, nil
}

func fieldValue(f regs.Field, s string) (uint8, error) {
	if v, ok := f.Value(s); ok {
		return v, nil
	}
	v, err := utils.ParseByte(s)
	if err != nil {
		if len(f.Enum) > 0 {
			return 0, errors.Errorf("%s: %q is not one of %s", f.Name, s, strings.Join(f.Enum, ", "))
		}
		return 0, err
	}
	return v, nil
}

// registerValue parses a byte, or for DACVOL a gain such as -6.5dB.
func registerValue(r regs.Reg, s string) (uint8, error) {
	if r == regs.DACVol && strings.HasSuffix(strings.ToLower(s), "db") {
		db, err := strconv.ParseFloat(strings.TrimSpace(s[:len(s)-2]), 64)
		if err != nil {
			return 0, errors.Errorf("'%s' is not a gain in dB", s)
		}
		return utils.FloatToS8HalfDB(db, dac.DACVolMinDB, dac.DACVolMaxDB), nil
	}
	return utils.ParseByte(s)
}

func printValue(w io.Writer, r regs.Reg, v uint8) {
	fmt.Fprintf(w, "%s (%d:0x%02x) = 0x%02x", r, r.Page(), r.Offset(), v)
	if s := decode.Line(r, v); s != "" {
		fmt.Fprintf(w, "  %s", s)
	}
	fmt.Fprintln(w)
}

func runGet(cmd *cobra.Command, args []string) error {
	m, err := openMap(cmd.Context())
	if err != nil {
		return err
	}
	defer closeMap(m)

	if f, ok := regs.LookupField(args[0]); ok {
		v, err := m.ReadField(f)
		if err != nil {
			return err
		}
		fmt.Printf("%s = %s\n", f.Name, f.Format(v))
		return nil
	}
	r, err := lookupReg(args[0])
	if err != nil {
		return err
	}
	v, err := m.Read(r)
	if err != nil {
		return err
	}
	printValue(os.Stdout, r, v)
	return nil
}

func runSet(cmd *cobra.Command, args []string) error {
	m, err := openMap(cmd.Context())
	if err != nil {
		return err
	}
	defer closeMap(m)

	var r regs.Reg
	if f, ok := regs.LookupField(args[0]); ok {
		v, err := fieldValue(f, args[1])
		if err != nil {
			return err
		}
		if err := m.WriteField(f, v); err != nil {
			return err
		}
		r = f.Reg
	} else {
		if r, err = lookupReg(args[0]); err != nil {
			return err
		}
		v, err := registerValue(r, args[1])
		if err != nil {
			return err
		}
		if err := m.Write(r, v); err != nil {
			return err
		}
	}

	if r == regs.Reset || r.Offset() == 0 || regs.Volatile(r) {
		return nil
	}
	v, err := m.Read(r)
	if err != nil {
		return err
	}
	printValue(os.Stdout, r, v)
	return nil
}

func runDump(cmd *cobra.Command, args []string) error {
	pages := []uint8{0, 1}
	if len(args) > 0 {
		pages = nil
		for _, a := range args {
			p, err := strconv.ParseUint(a, 0, 8)
			if err != nil {
				return errors.Errorf("bad page %q", a)
			}
			pages = append(pages, uint8(p))
		}
	}

	m, err := openMap(cmd.Context())
	if err != nil {
		return err
	}
	defer closeMap(m)

	for _, p := range pages {
		b, err := m.ReadPage(p)
		if err != nil {
			return err
		}
		if dumpHex {
			fmt.Printf(";; Page %d\n", p)
			decode.HexGrid(os.Stdout, b[:])
		} else {
			decode.Dump(os.Stdout, p, b)
		}
	}
	return nil
}

func runFields(cmd *cobra.Command, args []string) error {
	r, err := lookupReg(args[0])
	if err != nil {
		return err
	}
	describeRegister(os.Stdout, r)
	if len(args) == 2 {
		v, err := registerValue(r, args[1])
		if err != nil {
			return err
		}
		printValue(os.Stdout, r, v)
	}
	return nil
}

func describeRegister(w io.Writer, r regs.Reg) {
	decode.Describe(w, r)
	fmt.Fprintf(w, "    power-on 0x%02x\n", chip.Default(r))
}

func listRegisters(w io.Writer) {
	for _, ri := range regs.Registers {
		access := "RW"
		if d, ok := decode.Docs[ri.Reg]; ok {
			access = d.Access
		}
		fmt.Fprintf(w, "%s %d:%-3d  0x%03x  %-2s  %s\n",
			runewidth.FillRight(ri.Name, 24), ri.Reg.Page(), ri.Reg.Offset(), uint16(ri.Reg),
			access, decode.Docs[ri.Reg].Short)
	}
}

func printCaps(w io.Writer) {
	var rates []string
	for _, hz := range regs.Rates.RateList() {
		rates = append(rates, strconv.Itoa(hz))
	}
	fmt.Fprintf(w, "rates:   %s Hz (mask 0x%x)\n", strings.Join(rates, ", "), uint32(regs.Rates))
	fmt.Fprintf(w, "formats: %s (mask 0x%x)\n", strings.Join(regs.Formats.FormatList(), ", "), uint64(regs.Formats))
}
