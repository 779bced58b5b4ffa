package decode

import "github.com/handegar/tas2505/regs"

type RegDoc struct {
	Short  string
	Long   string
	Access string
}

var Docs = map[regs.Reg]RegDoc{
	regs.PageCtl: {Short: "Page select",
		Long: "Selects the page that the following offsets address. Present at " +
			"offset 0 of every page and reads back the current page.",
		Access: "RW",
	},
	regs.Reset: {Short: "Software reset",
		Long: "Writing 1 to bit 0 resets every register to its default and " +
			"selects page 0. The bit clears itself.",
		Access: "W",
	},
	regs.ClkMux: {Short: "Clock multiplexer",
		Long: "Bits 3:2 pick the PLL reference clock (MCLK, BCLK, GPIO or DIN). " +
			"Bits 1:0 pick CODEC_CLKIN, the clock feeding the DAC dividers.",
		Access: "RW",
	},
	regs.PLLPR: {Short: "PLL power, P and R",
		Long: "Bit 7 powers the PLL. Bits 6:4 hold the P pre-divider and " +
			"bits 3:0 the R multiplier.",
		Access: "RW",
	},
	regs.PLLJ: {Short: "PLL J multiplier",
		Long:   "Integer part of the PLL multiplier, 1 to 63.",
		Access: "RW",
	},
	regs.PLLDMSB: {Short: "PLL D, high byte",
		Long:   "Fractional part of the PLL multiplier, 0 to 9999, high 6 bits.",
		Access: "RW",
	},
	regs.PLLDLSB: {Short: "PLL D, low byte",
		Long: "Fractional part of the PLL multiplier, low 8 bits. The PLL " +
			"only picks up a new D after this byte is written.",
		Access: "RW",
	},
	regs.NDAC: {Short: "NDAC divider",
		Long:   "Bit 7 powers the divider, bits 6:0 divide CODEC_CLKIN into DAC_CLK.",
		Access: "RW",
	},
	regs.MDAC: {Short: "MDAC divider",
		Long:   "Bit 7 powers the divider, bits 6:0 divide DAC_CLK into DAC_MOD_CLK.",
		Access: "RW",
	},
	regs.DOSRMSB: {Short: "DAC oversampling, high bits",
		Long:   "DOSR is a 10 bit value split over DOSRMSB and DOSRLSB.",
		Access: "RW",
	},
	regs.DOSRLSB: {Short: "DAC oversampling, low byte",
		Long:   "Low 8 bits of DOSR.",
		Access: "RW",
	},
	regs.IFace1: {Short: "Audio interface setup",
		Long: "Bits 7:6 select I2S, DSP, RJF or LJF framing. Bits 5:4 hold the " +
			"word length. Bit 3 drives BCLK and bit 2 drives WCLK when set.",
		Access: "RW",
	},
	regs.IFace3: {Short: "BCLK setup",
		Long: "Bit 3 inverts BCLK. Bit 0 selects DAC_CLK or DAC_MOD_CLK as " +
			"the source of the BCLK N divider.",
		Access: "RW",
	},
	regs.BCLKNDiv: {Short: "BCLK N divider",
		Long:   "Bit 7 powers the divider, bits 6:0 set N when BCLK is an output.",
		Access: "RW",
	},
	regs.DACFlag1: {Short: "DAC flags 1",
		Long: "Bit 7 is set while the DAC is powered, bit 0 while the " +
			"speaker driver is powered.",
		Access: "R",
	},
	regs.DACFlag2: {Short: "DAC flags 2",
		Long:   "Bit 4 is set while the DAC PGA has reached its programmed gain.",
		Access: "R",
	},
	regs.StickyFlag1: {Short: "Sticky flags 1",
		Long:   "Latched copies of INTFLAG1. Cleared when read.",
		Access: "R",
	},
	regs.IntFlag1: {Short: "Interrupt flags 1",
		Long:   "Live over-current and DAC overflow flags.",
		Access: "R",
	},
	regs.StickyFlag2: {Short: "Sticky flags 2",
		Long:   "Latched copies of INTFLAG2. Cleared when read.",
		Access: "R",
	},
	regs.IntFlag2: {Short: "Interrupt flags 2",
		Long:   "Live thermal and supply flags.",
		Access: "R",
	},
	regs.DACInstrSet: {Short: "Processing block",
		Long:   "Selects the DAC signal processing block, PRB_P1 to PRB_P25.",
		Access: "RW",
	},
	regs.DACSetup1: {Short: "DAC power and path",
		Long: "Bit 7 powers the DAC. Bits 5:4 route left, right or the mean " +
			"of both channels into it.",
		Access: "RW",
	},
	regs.DACSetup2: {Short: "DAC mute",
		Long:   "Bit 3 mutes the DAC digital volume.",
		Access: "RW",
	},
	regs.DACVol: {Short: "DAC digital volume",
		Long: "Signed value in 0.5 dB steps from -63.5 dB (0x81) to +24 dB " +
			"(0x30).",
		Access: "RW",
	},
	regs.RefPorLdoBgapCtrl: {Short: "Reference and bandgap",
		Long:   "Bit 4 powers the master reference.",
		Access: "RW",
	},
	regs.LDOCtrl: {Short: "LDO control",
		Long:   "Bit 3 sets the PLL and headphone LDO level.",
		Access: "RW",
	},
	regs.PlaybackConf1: {Short: "Playback configuration",
		Long:   "Common mode and power tune settings of the output stage.",
		Access: "RW",
	},
	regs.SpkAmpCtrl1: {Short: "Speaker driver power",
		Long:   "Bit 1 powers the class-D speaker driver.",
		Access: "RW",
	},
	regs.SpkVol1: {Short: "Speaker analog volume",
		Long: "Attenuation in 0.5 dB steps from 0 (0 dB) to 0x74 (-58 dB). " +
			"0x7f mutes.",
		Access: "RW",
	},
	regs.SpkVol2: {Short: "Speaker amplifier gain",
		Long:   "Bits 6:4 select mute or 6, 12, 18, 24 or 32 dB of gain.",
		Access: "RW",
	},
	regs.DACAnlGainFlag: {Short: "Analog gain flag",
		Long:   "Bit 0 is set once the speaker volume has ramped to its target.",
		Access: "R",
	},
}
