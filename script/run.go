package script

import (
	"context"
	"fmt"
	"time"

	"github.com/alecthomas/participle/v2/lexer"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"

	"github.com/handegar/tas2505/regmap"
	"github.com/handegar/tas2505/regs"
)

// ErrStopped is returned by Run when a step hook asks to stop.
var ErrStopped = errors.New("script stopped")

// ExpectError is returned when an expect statement does not hold.
type ExpectError struct {
	Pos  lexer.Position
	Reg  regs.Reg
	Mask uint8
	Want uint8
	Got  uint8
}

func (e *ExpectError) Error() string {
	return fmt.Sprintf("%s: %s & 0x%02x = 0x%02x, expected 0x%02x",
		e.Pos, e.Reg, e.Mask, e.Got&e.Mask, e.Want&e.Mask)
}

type Options struct {
	// Step is called before each statement. Returning ErrStopped ends
	// the run without error.
	Step func(ctx context.Context, s *Statement) error
	// OnRead receives the result of read statements.
	OnRead func(s *Statement, r regs.Reg, v uint8)
	Log    *logrus.Entry
}

// Run executes prog against m in order.
func Run(ctx context.Context, m *regmap.Map, prog *Program, opts Options) error {
	log := opts.Log
	if log == nil {
		log = logrus.NewEntry(logrus.StandardLogger())
	}
	log = log.WithFields(logrus.Fields{"component": "script", "script": prog.Name})

	for _, s := range prog.Statements {
		if err := ctx.Err(); err != nil {
			return err
		}
		if opts.Step != nil {
			err := opts.Step(ctx, s)
			if err == ErrStopped {
				log.Info("stopped")
				return nil
			}
			if err != nil {
				return err
			}
		}
		log.WithField("line", s.Pos.Line).Debug(s.Text)
		if err := exec(ctx, m, s, opts); err != nil {
			return err
		}
	}
	return nil
}

func exec(ctx context.Context, m *regmap.Map, s *Statement, opts Options) error {
	var err error
	switch {
	case s.Reset:
		err = m.Write(regs.Reset, regs.ResetSoft)
	case s.Page != nil:
		err = m.SelectPage(s.page)
	case s.Write != nil:
		err = m.Write(s.Write.Reg.reg, s.Write.value)
	case s.Set != nil:
		err = m.WriteField(s.Set.field, s.Set.value)
	case s.Update != nil:
		_, err = m.Update(s.Update.Reg.reg, s.Update.mask, s.Update.value)
	case s.Delay != nil:
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(s.duration):
		}
	case s.Read != nil:
		var v uint8
		v, err = m.Read(s.Read.reg)
		if err == nil && opts.OnRead != nil {
			opts.OnRead(s, s.Read.reg, v)
		}
	case s.Expect != nil:
		e := s.Expect
		var v uint8
		if v, err = m.Read(e.Reg.reg); err == nil && v&e.mask != e.value&e.mask {
			return &ExpectError{Pos: s.Pos, Reg: e.Reg.reg, Mask: e.mask, Want: e.value, Got: v}
		}
	}
	if err != nil {
		return errors.Wrapf(err, "%s", s.Pos)
	}
	return nil
}
