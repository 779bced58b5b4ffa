// Package decode turns raw register values into readable listings.
package decode

import (
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"
	"github.com/mattn/go-runewidth"
	"github.com/mitchellh/go-wordwrap"

	"github.com/handegar/tas2505/regs"
	"github.com/handegar/tas2505/utils"
)

const nameColumn = 24
const wrapWidth = 64

var (
	addrColor  = color.New(color.FgBlue)
	nameColor  = color.New(color.FgCyan)
	valueColor = color.New(color.FgYellow)
	fieldColor = color.New(color.FgWhite)
)

// FieldValue is one decoded field of a register value.
type FieldValue struct {
	Field regs.Field
	Value uint8
}

func (fv FieldValue) String() string {
	return fmt.Sprintf("%s = %s", fv.Field.Name, fv.Field.Format(fv.Value))
}

// Fields splits v into the fields defined on r.
func Fields(r regs.Reg, v uint8) []FieldValue {
	var ret []FieldValue
	for _, f := range regs.FieldsOf(r) {
		ret = append(ret, FieldValue{Field: f, Value: f.Get(v)})
	}
	return ret
}

// Annotate gives the physical meaning of registers that hold a level
// rather than fields. Empty when there is nothing to add.
func Annotate(r regs.Reg, v uint8) string {
	switch r {
	case regs.DACVol:
		if int8(v) < -127 || int8(v) > 48 {
			return "reserved"
		}
		return utils.DBString(utils.S8HalfDBToFloat(v))
	case regs.SpkVol1:
		switch {
		case v == 0x7f:
			return "MUTE"
		case v <= 0x74:
			return utils.DBString(-0.5 * float64(v))
		}
		return "reserved"
	case regs.PLLJ:
		return fmt.Sprintf("J=%d", v&0x3f)
	}
	return ""
}

// Line renders one register as NAME value and its decoded fields.
func Line(r regs.Reg, v uint8) string {
	var parts []string
	for _, fv := range Fields(r, v) {
		name := fv.Field.Name[strings.IndexByte(fv.Field.Name, '.')+1:]
		parts = append(parts, fmt.Sprintf("%s=%s", name, fv.Field.Format(fv.Value)))
	}
	if a := Annotate(r, v); a != "" {
		parts = append(parts, a)
	}
	return strings.Join(parts, " ")
}

// Dump prints every named register of a page read back as b.
func Dump(w io.Writer, page uint8, b [regs.PageSize]uint8) {
	fmt.Fprintf(w, ";;\n;; Page %d\n;;\n", page)
	for _, ri := range regs.Registers {
		if ri.Reg.Page() != page || ri.Reg.Offset() == 0 {
			continue
		}
		v := b[ri.Reg.Offset()]
		addrColor.Fprintf(w, "  0x%02x  ", ri.Reg.Offset())
		nameColor.Fprint(w, runewidth.FillRight(ri.Name, nameColumn))
		valueColor.Fprintf(w, "0x%02x", v)
		if s := Line(ri.Reg, v); s != "" {
			fieldColor.Fprintf(w, "  %s", s)
		}
		fmt.Fprintln(w)
	}
}

// Describe prints the documentation of r, wrapped.
func Describe(w io.Writer, r regs.Reg) {
	doc, ok := Docs[r]
	if !ok {
		fmt.Fprintf(w, "%s: undocumented\n", r)
		return
	}
	nameColor.Fprintf(w, "%s", r)
	fmt.Fprintf(w, " (page %d, offset %d, %s): %s\n", r.Page(), r.Offset(), doc.Access, doc.Short)
	for _, l := range strings.Split(wordwrap.WrapString(doc.Long, wrapWidth), "\n") {
		fmt.Fprintf(w, "    %s\n", l)
	}
	for _, f := range regs.FieldsOf(r) {
		fmt.Fprintf(w, "    %s mask 0x%02x", runewidth.FillRight(f.Name, nameColumn+8), f.Mask)
		if len(f.Enum) > 0 {
			fmt.Fprintf(w, "  %s", strings.Join(f.Enum, "|"))
		}
		fmt.Fprintln(w)
	}
}

// HexGrid prints b as rows of 16 bytes. Non-zero bytes are highlighted.
func HexGrid(w io.Writer, b []byte) {
	fmt.Fprint(w, "     ")
	for i := 0; i < 16; i++ {
		fmt.Fprintf(w, "%02x ", i)
	}
	fmt.Fprintln(w)
	for row := 0; row < len(b); row += 16 {
		addrColor.Fprintf(w, "%02x:  ", row)
		for i := row; i < row+16 && i < len(b); i++ {
			if b[i] != 0 {
				valueColor.Fprintf(w, "%02x ", b[i])
			} else {
				fmt.Fprintf(w, "%02x ", b[i])
			}
		}
		fmt.Fprintln(w)
	}
}
