// Package script runs register scripts, plain text init sequences such as
//
//	reset
//	write DACVOL 0x30
//	set IFACE1.DATALEN 24BITS
//	expect DACFLAG1 0x80 0x80
//
// against a register map.
package script

import (
	"os"
	"strings"
	"time"

	"github.com/alecthomas/participle/v2"
	"github.com/alecthomas/participle/v2/lexer"
	"github.com/pkg/errors"

	"github.com/handegar/tas2505/regs"
	"github.com/handegar/tas2505/utils"
)

var scriptLexer = lexer.MustSimple([]lexer.SimpleRule{
	{Name: "Comment", Pattern: `#[^\n]*`},
	{Name: "EOL", Pattern: `\n`},
	{Name: "Whitespace", Pattern: `[ \t\r]+`},
	{Name: "Duration", Pattern: `[0-9]+(ns|us|ms|s|m)\b`},
	{Name: "Word", Pattern: `[A-Za-z0-9_][A-Za-z0-9_.]*`},
	{Name: "Colon", Pattern: `:`},
})

var parser = participle.MustBuild[Program](
	participle.Lexer(scriptLexer),
	participle.Elide("Comment", "Whitespace"),
	participle.CaseInsensitive("Word"),
)

// Parse parses and resolves a script. Unknown registers, fields and
// values are reported with their position.
func Parse(name, src string) (*Program, error) {
	prog, err := parser.ParseString(name, src)
	if err != nil {
		return nil, errors.Wrap(err, "parse error")
	}
	prog.Name = name
	lines := strings.Split(src, "\n")
	for _, s := range prog.Statements {
		if err := s.resolve(); err != nil {
			return nil, errors.Errorf("%s: %v", s.Pos, err)
		}
		s.Text = sourceText(lines, s.Pos.Line)
	}
	return prog, nil
}

func ParseFile(filename string) (*Program, error) {
	src, err := os.ReadFile(filename)
	if err != nil {
		return nil, errors.Wrap(err, "reading script")
	}
	return Parse(filename, string(src))
}

func sourceText(lines []string, line int) string {
	if line < 1 || line > len(lines) {
		return ""
	}
	l, _, _ := strings.Cut(lines[line-1], "#")
	return strings.TrimSpace(l)
}

func (s *Statement) resolve() error {
	var err error
	switch {
	case s.Page != nil:
		s.page, err = utils.ParseByte(*s.Page)
	case s.Write != nil:
		if err = s.Write.Reg.resolve(); err == nil {
			s.Write.value, err = utils.ParseByte(s.Write.Value)
		}
	case s.Set != nil:
		err = s.Set.resolve()
	case s.Update != nil:
		err = resolveMasked(s.Update.Reg, s.Update.Mask, s.Update.Value, &s.Update.mask, &s.Update.value)
	case s.Delay != nil:
		s.duration, err = time.ParseDuration(*s.Delay)
	case s.Read != nil:
		err = s.Read.resolve()
	case s.Expect != nil:
		err = resolveMasked(s.Expect.Reg, s.Expect.Mask, s.Expect.Value, &s.Expect.mask, &s.Expect.value)
	}
	return err
}

func resolveMasked(r *RegRef, mask, val string, m, v *uint8) error {
	if err := r.resolve(); err != nil {
		return err
	}
	var err error
	if *m, err = utils.ParseByte(mask); err != nil {
		return err
	}
	*v, err = utils.ParseByte(val)
	return err
}

func (r *RegRef) resolve() error {
	name := r.Name
	if r.Offset != nil {
		name += ":" + *r.Offset
	}
	reg, ok := regs.Lookup(name)
	if !ok {
		return errors.Errorf("unknown register %q", name)
	}
	r.reg = reg
	return nil
}

func (r *RegRef) Reg() regs.Reg { return r.reg }

func (s *Set) resolve() error {
	f, ok := regs.LookupField(s.Field)
	if !ok {
		return errors.Errorf("unknown field %q", s.Field)
	}
	s.field = f
	if v, ok := f.Value(s.Value); ok {
		s.value = v
		return nil
	}
	v, err := utils.ParseByte(s.Value)
	if err != nil {
		return errors.Errorf("%s: %q is neither a number nor one of %s",
			f.Name, s.Value, strings.Join(f.Enum, ", "))
	}
	if !f.Fits(v) {
		return errors.Errorf("%s: %d does not fit (max %d)", f.Name, v, f.Max())
	}
	s.value = v
	return nil
}
