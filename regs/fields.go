package regs

import (
	"fmt"
	"math/bits"
	"strings"
)

// Word length codes of IFace1 DATALEN.
type WordLen uint8

const (
	WordLen16Bits WordLen = 0
	WordLen20Bits WordLen = 1
	WordLen24Bits WordLen = 2
	WordLen32Bits WordLen = 3
)

// Bits returns the sample width selected by w.
func (w WordLen) Bits() int {
	switch w {
	case WordLen20Bits:
		return 20
	case WordLen24Bits:
		return 24
	case WordLen32Bits:
		return 32
	}
	return 16
}

func (w WordLen) String() string { return fmt.Sprintf("%dBITS", w.Bits()) }

// Audio interface modes of IFace1 INTERFACE.
type IfaceMode uint8

const (
	I2SMode IfaceMode = 0
	DSPMode IfaceMode = 1
	RJFMode IfaceMode = 2
	LJFMode IfaceMode = 3
)

func (m IfaceMode) String() string {
	return [...]string{"I2S", "DSP", "RJF", "LJF"}[m&3]
}

// PLL reference clock inputs of ClkMux bits 3:2.
type PLLClkIn uint8

const (
	PLLClkInMCLK PLLClkIn = 0
	PLLClkInBCLK PLLClkIn = 1
	PLLClkInGPIO PLLClkIn = 2
	PLLClkInDIN  PLLClkIn = 3
)

func (c PLLClkIn) String() string {
	return [...]string{"MCLK", "BCLK", "GPIO", "DIN"}[c&3]
}

// CODEC_CLKIN sources of ClkMux bits 1:0.
type CodecClkIn uint8

const (
	CodecClkInMCLK CodecClkIn = 0
	CodecClkInBCLK CodecClkIn = 1
	CodecClkInGPIO CodecClkIn = 2
	CodecClkInPLL  CodecClkIn = 3
)

func (c CodecClkIn) String() string {
	return [...]string{"MCLK", "BCLK", "GPIO", "PLL"}[c&3]
}

// Speaker amplifier gains of SpkVol2.
type SpkGain uint8

const (
	SpkVol2Mute SpkGain = 0
	SpkVol26dB  SpkGain = 1
	SpkVol212dB SpkGain = 2
	SpkVol218dB SpkGain = 3
	SpkVol224dB SpkGain = 4
	SpkVol232dB SpkGain = 5
)

// DB returns the amplifier gain and false when g mutes the speaker
// or is reserved.
func (g SpkGain) DB() (float64, bool) {
	switch g {
	case SpkVol26dB, SpkVol212dB, SpkVol218dB, SpkVol224dB:
		return 6 * float64(g), true
	case SpkVol232dB:
		return 32, true
	}
	return 0, false
}

func (g SpkGain) String() string {
	if db, ok := g.DB(); ok {
		return fmt.Sprintf("%.0fDB", db)
	}
	if g == SpkVol2Mute {
		return "MUTE"
	}
	return fmt.Sprintf("RESERVED(%d)", uint8(g))
}

// DAC data paths of DACSetup1 PATH_CTRL.
type DACPath uint8

const (
	DACSetup1PathCtrlOff    DACPath = 0
	DACSetup1PathCtrlLeft   DACPath = 1
	DACSetup1PathCtrlRight  DACPath = 2
	DACSetup1PathCtrlLRDiv2 DACPath = 3
)

func (p DACPath) String() string {
	return [...]string{"OFF", "LEFT", "RIGHT", "LRDIV2"}[p&3]
}

// Speaker driver power states of SpkAmpCtrl1.
type SpkDrv uint8

const (
	SpkAmpCtrl1SpkDrvPWD SpkDrv = 0
	SpkAmpCtrl1SpkDrvPWU SpkDrv = 1
)

func (s SpkDrv) String() string {
	if s == SpkAmpCtrl1SpkDrvPWU {
		return "PWU"
	}
	return "PWD"
}

// Field is a mask/shift pair bound to the register it lives in.
type Field struct {
	Name  string
	Reg   Reg
	Mask  uint8
	Shift uint
	// Enum names the legal values, indexed by value. Nil for plain numbers.
	Enum []string
}

// Get extracts the field from a register value.
func (f Field) Get(regval uint8) uint8 { return (regval & f.Mask) >> f.Shift }

// Put returns regval with the field replaced by v. Bits of v that do not
// fit the mask are dropped.
func (f Field) Put(regval, v uint8) uint8 {
	return regval&^f.Mask | (v<<f.Shift)&f.Mask
}

// Fits reports whether v can be stored in the field.
func (f Field) Fits(v uint8) bool {
	return uint16(v)<<f.Shift&^uint16(f.Mask) == 0
}

// Max is the largest value the field holds.
func (f Field) Max() uint8 { return f.Mask >> f.Shift }

// Value resolves an enum name of the field, case-insensitively.
func (f Field) Value(name string) (uint8, bool) {
	for i, n := range f.Enum {
		if n != "" && strings.EqualFold(n, name) {
			return uint8(i), true
		}
	}
	return 0, false
}

// Format names v when the field is enumerated.
func (f Field) Format(v uint8) string {
	if int(v) < len(f.Enum) && f.Enum[v] != "" {
		return fmt.Sprintf("%d (%s)", v, f.Enum[v])
	}
	return fmt.Sprint(v)
}

func (f Field) String() string { return f.Name }

func enumNames[T fmt.Stringer](vals ...T) []string {
	names := make([]string, len(vals))
	for i, v := range vals {
		names[i] = v.String()
	}
	return names
}

var (
	FieldPLLPower = Field{Name: "PLLPR.PWR", Reg: PLLPR, Mask: PMMask, Shift: 7}
	FieldPLLP     = Field{Name: "PLLPR.P", Reg: PLLPR, Mask: PLLPRPMask, Shift: PLLPRPShift}
	FieldPLLR     = Field{Name: "PLLPR.R", Reg: PLLPR, Mask: PLLPRRMask}

	FieldPLLClkIn = Field{Name: "CLKMUX.PLL_CLKIN", Reg: ClkMux, Mask: PLLInputClkMask, Shift: PLLClkInShift,
		Enum: enumNames(PLLClkInMCLK, PLLClkInBCLK, PLLClkInGPIO, PLLClkInDIN)}
	FieldCodecClkIn = Field{Name: "CLKMUX.CODEC_CLKIN", Reg: ClkMux, Mask: CodecClkInMask,
		Enum: enumNames(CodecClkInMCLK, CodecClkInBCLK, CodecClkInGPIO, CodecClkInPLL)}

	FieldNDACPower = Field{Name: "NDAC.PWR", Reg: NDAC, Mask: PMMask, Shift: 7}
	FieldNDAC      = Field{Name: "NDAC.DIV", Reg: NDAC, Mask: PLLDACMask}
	FieldMDACPower = Field{Name: "MDAC.PWR", Reg: MDAC, Mask: PMMask, Shift: 7}
	FieldMDAC      = Field{Name: "MDAC.DIV", Reg: MDAC, Mask: PLLDACMask}

	FieldIFace1DataLen = Field{Name: "IFACE1.DATALEN", Reg: IFace1, Mask: IFace1DataLenMask, Shift: IFace1DataLenShift,
		Enum: enumNames(WordLen16Bits, WordLen20Bits, WordLen24Bits, WordLen32Bits)}
	FieldIFace1Interface = Field{Name: "IFACE1.INTERFACE", Reg: IFace1, Mask: IFace1InterfaceMask, Shift: IFace1InterfaceShift,
		Enum: enumNames(I2SMode, DSPMode, RJFMode, LJFMode)}
	FieldIFace1WCLKDir = Field{Name: "IFACE1.WCLKDIR", Reg: IFace1, Mask: IFace1WCLKDirMask, Shift: 2,
		Enum: []string{"INPUT", "OUTPUT"}}
	FieldIFace1BCLKDir = Field{Name: "IFACE1.BCLKDIR", Reg: IFace1, Mask: IFace1BCLKDirMask, Shift: 3,
		Enum: []string{"INPUT", "OUTPUT"}}

	FieldIFace3BDivClkIn = Field{Name: "IFACE3.BDIVCLKIN", Reg: IFace3, Mask: IFace3BDivClkInMask,
		Enum: []string{"DAC_CLK", "DAC_MOD_CLK"}}
	// The shift comes from the mask; IFace3BCLKInvShift places the bit
	// one position too high.
	FieldIFace3BCLKInv = Field{Name: "IFACE3.BCLKINV", Reg: IFace3, Mask: IFace3BCLKInvMask, Shift: 3,
		Enum: []string{"NORMAL", "INVERTED"}}

	FieldBCLKNDivPower = Field{Name: "BCLKNDIV.PWR", Reg: BCLKNDiv, Mask: PMMask, Shift: 7}
	FieldBCLKNDiv      = Field{Name: "BCLKNDIV.DIV", Reg: BCLKNDiv, Mask: BCLKNDivMask}

	FieldDACPower    = Field{Name: "DACSETUP1.PWR", Reg: DACSetup1, Mask: PMMask, Shift: 7}
	FieldDACPathCtrl = Field{Name: "DACSETUP1.PATH_CTRL", Reg: DACSetup1, Mask: DACSetup1PathCtrlMask, Shift: DACSetup1PathCtrlShift,
		Enum: enumNames(DACSetup1PathCtrlOff, DACSetup1PathCtrlLeft, DACSetup1PathCtrlRight, DACSetup1PathCtrlLRDiv2)}
	FieldDACMute = Field{Name: "DACSETUP2.MUTE", Reg: DACSetup2, Mask: DACSetup2MuteMask, Shift: 3,
		Enum: []string{"UNMUTED", "MUTED"}}

	FieldMasterRef = Field{Name: "REF_POR_LDO_BGAP_CTRL.MASTER_REF", Reg: RefPorLdoBgapCtrl, Mask: RefPorLdoBgapMasterRefMask, Shift: 4}
	FieldPLLHPLvl  = Field{Name: "LDO_CTRL.PLL_HP_LVL", Reg: LDOCtrl, Mask: LDOPLLHPLvlMask, Shift: 3}

	FieldSpkDrv = Field{Name: "SPKAMPCTRL1.SPKDRV", Reg: SpkAmpCtrl1, Mask: SpkAmpCtrl1SpkDrvMask, Shift: SpkAmpCtrl1SpkDrvShift,
		Enum: enumNames(SpkAmpCtrl1SpkDrvPWD, SpkAmpCtrl1SpkDrvPWU)}
	FieldSpkGain = Field{Name: "SPKVOL2.GAIN", Reg: SpkVol2, Mask: SpkVol2Mask, Shift: SpkVol2GainShift,
		Enum: enumNames(SpkVol2Mute, SpkVol26dB, SpkVol212dB, SpkVol218dB, SpkVol224dB, SpkVol232dB)}
)

// Fields lists every field descriptor, grouped by register address.
var Fields = []Field{
	FieldCodecClkIn,
	FieldPLLClkIn,
	FieldPLLPower,
	FieldPLLP,
	FieldPLLR,
	FieldNDACPower,
	FieldNDAC,
	FieldMDACPower,
	FieldMDAC,
	FieldIFace1Interface,
	FieldIFace1DataLen,
	FieldIFace1BCLKDir,
	FieldIFace1WCLKDir,
	FieldIFace3BCLKInv,
	FieldIFace3BDivClkIn,
	FieldBCLKNDivPower,
	FieldBCLKNDiv,
	FieldDACPower,
	FieldDACPathCtrl,
	FieldDACMute,
	FieldMasterRef,
	FieldPLLHPLvl,
	FieldSpkDrv,
	FieldSpkGain,
}

// FieldsOf returns the fields defined on r.
func FieldsOf(r Reg) []Field {
	var fs []Field
	for _, f := range Fields {
		if f.Reg == r {
			fs = append(fs, f)
		}
	}
	return fs
}

// shiftOf is the shift a mask implies.
func shiftOf(mask uint8) uint { return uint(bits.TrailingZeros8(mask)) }
