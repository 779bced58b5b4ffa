package regs

import (
	"strconv"
	"strings"
)

const headerPrefix = "TAS2505_"

func trimName(name string) string {
	name = strings.ToUpper(strings.TrimSpace(name))
	return strings.TrimPrefix(name, headerPrefix)
}

// Lookup resolves a register by its header name (with or without the
// TAS2505_ prefix) or by a "page:offset" pair.
func Lookup(name string) (Reg, bool) {
	n := trimName(name)
	for _, ri := range Registers {
		if ri.Name == n {
			return ri.Reg, true
		}
	}
	page, off, ok := strings.Cut(n, ":")
	if !ok {
		return 0, false
	}
	p, err := strconv.ParseUint(page, 0, 8)
	if err != nil {
		return 0, false
	}
	o, err := strconv.ParseUint(off, 0, 8)
	if err != nil || o >= PageSize {
		return 0, false
	}
	return Addr(uint8(p), uint8(o)), true
}

// LookupField resolves a field by its REGISTER.FIELD name.
func LookupField(name string) (Field, bool) {
	n := trimName(name)
	for _, f := range Fields {
		if f.Name == n {
			return f, true
		}
	}
	return Field{}, false
}
