package chip

import "github.com/handegar/tas2505/regs"

// Power-on values of the registers that do not reset to zero.
var defaults = map[regs.Reg]uint8{
	regs.PLLPR:       0x11, // P=1, R=1, PLL powered down
	regs.PLLJ:        0x04,
	regs.NDAC:        0x01,
	regs.MDAC:        0x01,
	regs.DOSRLSB:     0x80, // DOSR = 128
	regs.BCLKNDiv:    0x01,
	regs.DACInstrSet: 0x01, // PRB_P1
	regs.DACSetup2:   0x0c, // muted
	regs.SpkVol1:     0x7f, // speaker volume muted
}

// Default returns the power-on value of r.
func Default(r regs.Reg) uint8 { return defaults[r] }
