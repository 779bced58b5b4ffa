package regs

import (
	"testing"
)

func Test_Addresses(t *testing.T) {
	cases := []struct {
		reg          Reg
		page, offset uint8
	}{
		{PageCtl, 0, 0},
		{Reset, 0, 1},
		{ClkMux, 0, 4},
		{PLLPR, 0, 5},
		{PLLJ, 0, 6},
		{PLLDMSB, 0, 7},
		{PLLDLSB, 0, 8},
		{NDAC, 0, 11},
		{MDAC, 0, 12},
		{DOSRMSB, 0, 13},
		{DOSRLSB, 0, 14},
		{IFace1, 0, 27},
		{IFace3, 0, 29},
		{BCLKNDiv, 0, 30},
		{DACFlag1, 0, 37},
		{DACFlag2, 0, 38},
		{StickyFlag1, 0, 42},
		{IntFlag1, 0, 43},
		{StickyFlag2, 0, 44},
		{IntFlag2, 0, 46},
		{DACInstrSet, 0, 60},
		{DACSetup1, 0, 63},
		{DACSetup2, 0, 64},
		{DACVol, 0, 65},
		{RefPorLdoBgapCtrl, 1, 1},
		{LDOCtrl, 1, 2},
		{PlaybackConf1, 1, 3},
		{SpkAmpCtrl1, 1, 45},
		{SpkVol1, 1, 46},
		{SpkVol2, 1, 48},
		{DACAnlGainFlag, 1, 63},
	}

	if len(cases) != len(Registers) {
		t.Fatalf("%d registers in the table, %d checked", len(Registers), len(cases))
	}

	for _, c := range cases {
		if int(c.reg) != int(c.page)*128+int(c.offset) {
			t.Errorf("%s = %d, expected %d*128+%d", c.reg, c.reg, c.page, c.offset)
		}
		if c.reg.Page() != c.page || c.reg.Offset() != c.offset {
			t.Errorf("%s splits into %d:%d, expected %d:%d",
				c.reg, c.reg.Page(), c.reg.Offset(), c.page, c.offset)
		}
		if Addr(c.page, c.offset) != c.reg {
			t.Errorf("Addr(%d, %d) != %s", c.page, c.offset, c.reg)
		}
	}
}

func Test_AddrRejectsOffset(t *testing.T) {
	if _, ok := Lookup("0:200"); ok {
		t.Fatalf("0:200 resolved to a register")
	}
	panicked := func() (p bool) {
		defer func() { p = recover() != nil }()
		Addr(0, 200)
		return
	}()
	if !panicked {
		t.Fatalf("Addr(0, 200) masked the offset instead of panicking")
	}
}

func Test_KnownValues(t *testing.T) {
	if PageCtl != 0 {
		t.Fatalf("PAGECTL = %d", PageCtl)
	}
	if Reset != 1 {
		t.Fatalf("RESET = %d", Reset)
	}
	if RefPorLdoBgapCtrl != 129 {
		t.Fatalf("REF_POR_LDO_BGAP_CTRL = %d", RefPorLdoBgapCtrl)
	}
	if SpkAmpCtrl1SpkDrvMask != 2 {
		t.Fatalf("SPKAMPCTRL1_SPKDRV_MSK = %d", SpkAmpCtrl1SpkDrvMask)
	}
}

func Test_MasksAndShifts(t *testing.T) {
	masks := map[string]uint8{
		"PLLPR_P":                     0x70,
		"PLLPR_R":                     0xf,
		"PLL_DAC":                     0x7f,
		"BCLKNDIV":                    0x7f,
		"IFACE1_DATALEN":              0x30,
		"IFACE1_WCLKDIR":              0x4,
		"IFACE1_BCLKDIR":              0x8,
		"IFACE1_INTERFACE":            0xc0,
		"IFACE3_BDIVCLKIN":            0x1,
		"IFACE3_BCLKINV":              0x8,
		"DACSETUP1_PATH_CTRL":         0x30,
		"DACSETUP2_MUTE":              0x8,
		"PM":                          0x80,
		"LDO_PLL_HP_LVL":              0x8,
		"REF_POR_LDO_BGAP_MASTER_REF": 0x10,
		"SPKVOL2":                     0x70,
		"CODEC_CLKIN":                 0x3,
		"PLL_INPUT_CLK":               0xc,
		"SPKAMPCTRL1_SPKDRV":          0x2,
	}
	got := map[string]uint8{
		"PLLPR_P":                     PLLPRPMask,
		"PLLPR_R":                     PLLPRRMask,
		"PLL_DAC":                     PLLDACMask,
		"BCLKNDIV":                    BCLKNDivMask,
		"IFACE1_DATALEN":              IFace1DataLenMask,
		"IFACE1_WCLKDIR":              IFace1WCLKDirMask,
		"IFACE1_BCLKDIR":              IFace1BCLKDirMask,
		"IFACE1_INTERFACE":            IFace1InterfaceMask,
		"IFACE3_BDIVCLKIN":            IFace3BDivClkInMask,
		"IFACE3_BCLKINV":              IFace3BCLKInvMask,
		"DACSETUP1_PATH_CTRL":         DACSetup1PathCtrlMask,
		"DACSETUP2_MUTE":              DACSetup2MuteMask,
		"PM":                          PMMask,
		"LDO_PLL_HP_LVL":              LDOPLLHPLvlMask,
		"REF_POR_LDO_BGAP_MASTER_REF": RefPorLdoBgapMasterRefMask,
		"SPKVOL2":                     SpkVol2Mask,
		"CODEC_CLKIN":                 CodecClkInMask,
		"PLL_INPUT_CLK":               PLLInputClkMask,
		"SPKAMPCTRL1_SPKDRV":          SpkAmpCtrl1SpkDrvMask,
	}
	for name, m := range masks {
		if got[name] != m {
			t.Errorf("%s mask = 0x%x, expected 0x%x", name, got[name], m)
		}
	}

	shifts := []struct {
		name      string
		got, want int
	}{
		{"PLLPR_P", PLLPRPShift, 4},
		{"PLL_CLKIN", PLLClkInShift, 2},
		{"IFACE1_DATALEN", IFace1DataLenShift, 4},
		{"IFACE1_INTERFACE", IFace1InterfaceShift, 6},
		{"IFACE3_BCLKINV", IFace3BCLKInvShift, 4},
		{"SPKVOL2_6DB", SpkVol2GainShift, 4},
		{"DACSETUP1_PATH_CTRL", DACSetup1PathCtrlShift, 4},
	}
	for _, s := range shifts {
		if s.got != s.want {
			t.Errorf("%s shift = %d, expected %d", s.name, s.got, s.want)
		}
	}
}

func Test_EnumValues(t *testing.T) {
	if WordLen20Bits != 1 || WordLen24Bits != 2 || WordLen32Bits != 3 {
		t.Fatalf("word length codes are %d/%d/%d", WordLen20Bits, WordLen24Bits, WordLen32Bits)
	}
	if DSPMode != 1 || RJFMode != 2 || LJFMode != 3 {
		t.Fatalf("interface mode codes are %d/%d/%d", DSPMode, RJFMode, LJFMode)
	}
	if PLLClkInMCLK != 0 || PLLClkInBCLK != 1 || PLLClkInGPIO != 2 || PLLClkInDIN != 3 {
		t.Fatalf("PLL clock input codes are wrong")
	}
	if CodecClkInPLL != 3 {
		t.Fatalf("CODEC_CLKIN_PLL = %d", CodecClkInPLL)
	}
	if SpkVol2Mute != 0 || SpkVol26dB != 1 {
		t.Fatalf("SPKVOL2 codes are %d/%d", SpkVol2Mute, SpkVol26dB)
	}
	if DACSetup1PathCtrlLRDiv2 != 3 {
		t.Fatalf("PATH_CTRL_LRDIV2 = %d", DACSetup1PathCtrlLRDiv2)
	}
	if SpkAmpCtrl1SpkDrvPWD != 0 || SpkAmpCtrl1SpkDrvPWU != 1 {
		t.Fatalf("SPKDRV codes are %d/%d", SpkAmpCtrl1SpkDrvPWD, SpkAmpCtrl1SpkDrvPWU)
	}
}

func Test_FieldsHoldTheirValues(t *testing.T) {
	for _, f := range Fields {
		t.Run(f.Name, func(t *testing.T) {
			if f.Shift != shiftOf(f.Mask) {
				t.Fatalf("shift %d does not match mask 0x%02x", f.Shift, f.Mask)
			}
			for v := 0; v <= int(f.Max()); v++ {
				if (uint8(v)<<f.Shift)&^f.Mask != 0 {
					t.Fatalf("%d << %d spills out of 0x%02x", v, f.Shift, f.Mask)
				}
				if got := f.Get(f.Put(0, uint8(v))); got != uint8(v) {
					t.Fatalf("Put/Get of %d gave %d", v, got)
				}
			}
			for i, n := range f.Enum {
				if !f.Fits(uint8(i)) {
					t.Errorf("enum %s (%d) does not fit", n, i)
				}
			}
			if f.Fits(f.Max() + 1) {
				t.Errorf("%d should not fit", f.Max()+1)
			}
		})
	}
}

func Test_PutKeepsOtherBits(t *testing.T) {
	v := FieldIFace1DataLen.Put(0xcf, uint8(WordLen24Bits))
	if v != 0xef {
		t.Fatalf("got 0x%02x, expected 0xef", v)
	}
	if FieldIFace1Interface.Get(v) != uint8(LJFMode) {
		t.Fatalf("interface bits were clobbered: 0x%02x", v)
	}
	v = FieldSpkDrv.Put(0, uint8(SpkAmpCtrl1SpkDrvPWU))
	if v != SpkAmpCtrl1SpkDrvMask {
		t.Fatalf("SPKDRV PWU = 0x%02x, expected 0x%02x", v, SpkAmpCtrl1SpkDrvMask)
	}
}

func Test_Lookup(t *testing.T) {
	for _, ri := range Registers {
		r, ok := Lookup("tas2505_" + ri.Name)
		if !ok || r != ri.Reg {
			t.Errorf("Lookup(%s) = %d, %t", ri.Name, r, ok)
		}
	}
	if r, ok := Lookup("1:0x2e"); !ok || r != SpkVol1 {
		t.Fatalf("Lookup(1:0x2e) = %d, %t", r, ok)
	}
	if _, ok := Lookup("0:128"); ok {
		t.Fatalf("offset 128 should not resolve")
	}
	if _, ok := Lookup("NOPE"); ok {
		t.Fatalf("unknown name resolved")
	}
	f, ok := LookupField("spkvol2.gain")
	if !ok || f.Reg != SpkVol2 {
		t.Fatalf("LookupField(spkvol2.gain) = %v, %t", f, ok)
	}
	if v, ok := f.Value("6db"); !ok || v != uint8(SpkVol26dB) {
		t.Fatalf("6DB resolved to %d, %t", v, ok)
	}
}

func Test_PCMCaps(t *testing.T) {
	want := []int{8000, 11025, 16000, 22050, 32000, 44100, 48000, 64000, 88200, 96000}
	got := Rates.RateList()
	if len(got) != len(want) {
		t.Fatalf("rates %v, expected %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("rates %v, expected %v", got, want)
		}
	}
	if Rates.SupportsRate(5512) || Rates.SupportsRate(192000) || Rates.SupportsRate(44000) {
		t.Fatalf("rate outside 8k-96k accepted")
	}
	if Rates != 0x7fe {
		t.Fatalf("Rates = 0x%x, expected 0x7fe", uint32(Rates))
	}

	if Formats != 1<<2|1<<6|1<<10 {
		t.Fatalf("Formats = 0x%x", uint64(Formats))
	}
	for _, bits := range []int{16, 24, 32} {
		if !Formats.SupportsFormat(bits) {
			t.Errorf("%d bit samples should be supported", bits)
		}
	}
	if Formats.SupportsFormat(8) || Formats.SupportsFormat(20) {
		t.Fatalf("unsupported sample width accepted")
	}
}
