package debugger

import (
	"context"
	"fmt"
	"io"

	"github.com/eiannone/keyboard"
	"github.com/fatih/color"

	"github.com/handegar/tas2505/decode"
	"github.com/handegar/tas2505/regmap"
	"github.com/handegar/tas2505/script"
)

const stepPrompt = "< (N)ext statement | (C)ontinue | (V)iew registers | (P)rint statement | (Q)uit >"

// Stepper pauses a script before every statement and waits for a key.
type Stepper struct {
	m       *regmap.Map
	out     io.Writer
	getKey  func() (rune, keyboard.Key, error)
	running bool
}

// NewStepper takes over the keyboard until Close.
func NewStepper(m *regmap.Map, out io.Writer) (*Stepper, error) {
	if err := keyboard.Open(); err != nil {
		return nil, err
	}
	return &Stepper{m: m, out: out, getKey: keyboard.GetKey}, nil
}

func (s *Stepper) Close() error {
	return keyboard.Close()
}

var (
	posColor    = color.New(color.FgBlue)
	stmtColor   = color.New(color.FgCyan)
	promptColor = color.New(color.FgYellow)
	warnColor   = color.New(color.FgRed)
)

// Step is a script.Options.Step hook.
func (s *Stepper) Step(ctx context.Context, st *script.Statement) error {
	if s.running {
		return nil
	}

	posColor.Fprintf(s.out, "%s:%d\n", st.Pos.Filename, st.Pos.Line)
	stmtColor.Fprintln(s.out, st.Text)
	promptColor.Fprintln(s.out, stepPrompt)
	for {
		if err := ctx.Err(); err != nil {
			return err
		}
		char, key, err := s.getKey()
		if err != nil {
			return err
		}
		if key == keyboard.KeyEsc || key == keyboard.KeyCtrlC {
			char = 'q'
		}

		switch char {
		case 'n', 'N':
			return nil
		case 'c', 'C':
			s.running = true
			warnColor.Fprintln(s.out, "Running to the end")
			return nil
		case 'q', 'Q':
			return script.ErrStopped
		case 'p', 'P':
			stmtColor.Fprintln(s.out, st.Text)
			promptColor.Fprintln(s.out, stepPrompt)
		case 'v', 'V':
			s.printRegisters()
			promptColor.Fprintln(s.out, stepPrompt)
		}
	}
}

func (s *Stepper) printRegisters() {
	for _, p := range []uint8{0, 1} {
		b, err := s.m.ReadPage(p)
		if err != nil {
			warnColor.Fprintf(s.out, "reading page %d: %v\n", p, err)
			return
		}
		decode.Dump(s.out, p, b)
	}
	fmt.Fprintln(s.out)
}
