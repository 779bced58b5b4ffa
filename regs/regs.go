// Package regs is the register map of the TAS2505 codec: paged register
// addresses, field masks and shifts, and the enumerated field values.
package regs

import "fmt"

// PageSize is the number of one-byte registers in a page.
const PageSize = 128

// Reg is a register address encoded as page*PageSize + offset.
type Reg uint16

// Addr builds the address of register offset on page. offset must be
// below PageSize; Addr panics otherwise.
func Addr(page, offset uint8) Reg {
	if offset >= PageSize {
		panic(fmt.Sprintf("regs: offset %d outside a %d byte page", offset, PageSize))
	}
	return Reg(page)*PageSize + Reg(offset)
}

func (r Reg) Page() uint8   { return uint8(r / PageSize) }
func (r Reg) Offset() uint8 { return uint8(r % PageSize) }

func (r Reg) String() string {
	if n, ok := regNames[r]; ok {
		return n
	}
	return fmt.Sprintf("%d:%d", r.Page(), r.Offset())
}

// Page 0
const (
	PageCtl     Reg = 0*PageSize + 0
	Reset       Reg = 0*PageSize + 1
	ClkMux      Reg = 0*PageSize + 4
	PLLPR       Reg = 0*PageSize + 5
	PLLJ        Reg = 0*PageSize + 6
	PLLDMSB     Reg = 0*PageSize + 7
	PLLDLSB     Reg = 0*PageSize + 8
	NDAC        Reg = 0*PageSize + 11
	MDAC        Reg = 0*PageSize + 12
	DOSRMSB     Reg = 0*PageSize + 13
	DOSRLSB     Reg = 0*PageSize + 14
	IFace1      Reg = 0*PageSize + 27
	IFace3      Reg = 0*PageSize + 29
	BCLKNDiv    Reg = 0*PageSize + 30
	DACFlag1    Reg = 0*PageSize + 37
	DACFlag2    Reg = 0*PageSize + 38
	StickyFlag1 Reg = 0*PageSize + 42
	IntFlag1    Reg = 0*PageSize + 43
	StickyFlag2 Reg = 0*PageSize + 44
	IntFlag2    Reg = 0*PageSize + 46
	DACInstrSet Reg = 0*PageSize + 60
	DACSetup1   Reg = 0*PageSize + 63
	DACSetup2   Reg = 0*PageSize + 64
	DACVol      Reg = 0*PageSize + 65
)

// Page 1
const (
	RefPorLdoBgapCtrl Reg = 1*PageSize + 1
	LDOCtrl           Reg = 1*PageSize + 2
	PlaybackConf1     Reg = 1*PageSize + 3
	SpkAmpCtrl1       Reg = 1*PageSize + 45
	SpkVol1           Reg = 1*PageSize + 46
	SpkVol2           Reg = 1*PageSize + 48
	DACAnlGainFlag    Reg = 1*PageSize + 63
)

// Masks
const (
	PLLPRPMask                 uint8 = 0x70
	PLLPRRMask                 uint8 = 0x0f
	PLLDACMask                 uint8 = 0x7f
	BCLKNDivMask               uint8 = 0x7f
	IFace1DataLenMask          uint8 = 0x30
	IFace1WCLKDirMask          uint8 = 0x04
	IFace1BCLKDirMask          uint8 = 0x08
	IFace1InterfaceMask        uint8 = 0xc0
	IFace3BDivClkInMask        uint8 = 0x01
	IFace3BCLKInvMask          uint8 = 0x08
	DACSetup1PathCtrlMask      uint8 = 0x30
	DACSetup2MuteMask          uint8 = 0x08
	PMMask                     uint8 = 0x80
	LDOPLLHPLvlMask            uint8 = 0x08
	RefPorLdoBgapMasterRefMask uint8 = 0x10
	SpkVol2Mask                uint8 = 0x70
	CodecClkInMask             uint8 = 0x03
	PLLInputClkMask            uint8 = 0x0c
	SpkAmpCtrl1SpkDrvMask      uint8 = 1 << 1
)

// Shifts
const (
	PLLPRPShift            = 4
	PLLClkInShift          = 2
	IFace1DataLenShift     = 4
	IFace1InterfaceShift   = 6
	IFace3BCLKInvShift     = 4 // does not match IFace3BCLKInvMask, see FieldIFace3BCLKInv
	SpkVol2GainShift       = 4
	DACSetup1PathCtrlShift = 4
	SpkAmpCtrl1SpkDrvShift = 1
)

// ResetSoft is the self-clearing software reset bit of Reset.
const ResetSoft uint8 = 0x01

var regNames = map[Reg]string{}

// RegInfo names a register the way the datasheet and the C header do.
type RegInfo struct {
	Reg      Reg
	Name     string
	Volatile bool // flag registers, never cached
}

// Registers lists every named register, in address order.
var Registers = []RegInfo{
	{PageCtl, "PAGECTL", false},
	{Reset, "RESET", false},
	{ClkMux, "CLKMUX", false},
	{PLLPR, "PLLPR", false},
	{PLLJ, "PLLJ", false},
	{PLLDMSB, "PLLDMSB", false},
	{PLLDLSB, "PLLDLSB", false},
	{NDAC, "NDAC", false},
	{MDAC, "MDAC", false},
	{DOSRMSB, "DOSRMSB", false},
	{DOSRLSB, "DOSRLSB", false},
	{IFace1, "IFACE1", false},
	{IFace3, "IFACE3", false},
	{BCLKNDiv, "BCLKNDIV", false},
	{DACFlag1, "DACFLAG1", true},
	{DACFlag2, "DACFLAG2", true},
	{StickyFlag1, "STICKYFLAG1", true},
	{IntFlag1, "INTFLAG1", true},
	{StickyFlag2, "STICKYFLAG2", true},
	{IntFlag2, "INTFLAG2", true},
	{DACInstrSet, "DACINSTRSET", false},
	{DACSetup1, "DACSETUP1", false},
	{DACSetup2, "DACSETUP2", false},
	{DACVol, "DACVOL", false},
	{RefPorLdoBgapCtrl, "REF_POR_LDO_BGAP_CTRL", false},
	{LDOCtrl, "LDO_CTRL", false},
	{PlaybackConf1, "PLAYBACKCONF1", false},
	{SpkAmpCtrl1, "SPKAMPCTRL1", false},
	{SpkVol1, "SPKVOL1", false},
	{SpkVol2, "SPKVOL2", false},
	{DACAnlGainFlag, "DACANLGAINFLAG", true},
}

func init() {
	for _, ri := range Registers {
		regNames[ri.Reg] = ri.Name
	}
}

// Volatile reports whether r is a status register whose value is owned
// by the chip.
func Volatile(r Reg) bool {
	for _, ri := range Registers {
		if ri.Reg == r {
			return ri.Volatile
		}
	}
	return false
}
