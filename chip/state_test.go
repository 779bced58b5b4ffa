package chip

import (
	"strings"
	"testing"

	"github.com/pkg/errors"

	"github.com/handegar/tas2505/regs"
)

func readOne(t *testing.T, c *Chip, off uint8) uint8 {
	var b [1]byte
	if err := c.ReadReg(off, b[:]); err != nil {
		t.Fatalf("read %d: %v", off, err)
	}
	return b[0]
}

func writeOne(t *testing.T, c *Chip, off, v uint8) {
	if err := c.WriteReg(off, []byte{v}); err != nil {
		t.Fatalf("write %d: %v", off, err)
	}
}

func Test_PowerOnDefaults(t *testing.T) {
	c := New()
	for r, v := range defaults {
		if got := c.Peek(r); got != v {
			t.Errorf("%s = 0x%02x after power on, expected 0x%02x", r, got, v)
		}
	}
	if c.Page() != 0 {
		t.Fatalf("page %d selected after power on", c.Page())
	}
}

func Test_PageSelect(t *testing.T) {
	c := New()

	writeOne(t, c, regs.SpkVol2.Offset(), 0x10) // page 0, offset 48
	writeOne(t, c, 0, 1)
	if readOne(t, c, 0) != 1 {
		t.Fatalf("PAGECTL does not read back the selected page")
	}
	writeOne(t, c, regs.SpkVol2.Offset(), 0x20)

	if c.Peek(regs.SpkVol2) != 0x20 {
		t.Fatalf("SPKVOL2 = 0x%02x, expected 0x20", c.Peek(regs.SpkVol2))
	}
	if c.Peek(regs.Addr(0, 48)) != 0x10 {
		t.Fatalf("page 0 offset 48 = 0x%02x, expected 0x10", c.Peek(regs.Addr(0, 48)))
	}
	if c.DebugFlags.PageSelects != 1 {
		t.Fatalf("PageSelects = %d", c.DebugFlags.PageSelects)
	}
}

func Test_SoftwareReset(t *testing.T) {
	c := New()
	writeOne(t, c, regs.DACVol.Offset(), 0x30)
	writeOne(t, c, 0, 1)
	writeOne(t, c, regs.SpkVol2.Offset(), 0x10)

	// RESET only exists on page 0
	writeOne(t, c, regs.Reset.Offset(), regs.ResetSoft)
	if c.Peek(regs.DACVol) != 0x30 {
		t.Fatalf("page 1 offset 1 acted as a reset")
	}

	writeOne(t, c, 0, 0)
	writeOne(t, c, regs.Reset.Offset(), regs.ResetSoft)

	if c.Peek(regs.DACVol) != 0 || c.Peek(regs.SpkVol2) != 0 {
		t.Fatalf("registers survived the reset")
	}
	if c.Peek(regs.DACSetup2) != 0x0c {
		t.Fatalf("DACSETUP2 = 0x%02x after reset", c.Peek(regs.DACSetup2))
	}
	if readOne(t, c, regs.Reset.Offset()) != 0 {
		t.Fatalf("reset bit does not self-clear")
	}
	if c.DebugFlags.Resets != 2 {
		t.Fatalf("Resets = %d, expected power on plus one", c.DebugFlags.Resets)
	}
}

func Test_ReadOnlyFlags(t *testing.T) {
	c := New()

	writeOne(t, c, regs.DACFlag1.Offset(), 0xff)
	if c.DebugFlags.ReadOnlyWrites != 1 || c.DebugFlags.LastReadOnlyReg != int(regs.DACFlag1) {
		t.Fatalf("dropped write not counted: %+v", *c.DebugFlags)
	}
	if readOne(t, c, regs.DACFlag1.Offset()) != 0 {
		t.Fatalf("DACFLAG1 should read 0 with everything powered down")
	}

	writeOne(t, c, regs.DACSetup1.Offset(), 0x80|0x30)
	if v := readOne(t, c, regs.DACFlag1.Offset()); v != 0x80 {
		t.Fatalf("DACFLAG1 = 0x%02x with the DAC powered", v)
	}
	if v := readOne(t, c, regs.DACFlag2.Offset()); v != 0x10 {
		t.Fatalf("DACFLAG2 = 0x%02x with the DAC powered", v)
	}

	writeOne(t, c, 0, 1)
	writeOne(t, c, regs.SpkAmpCtrl1.Offset(), regs.SpkAmpCtrl1SpkDrvMask)
	if v := readOne(t, c, regs.DACAnlGainFlag.Offset()); v != 0x01 {
		t.Fatalf("DACANLGAINFLAG = 0x%02x with the driver powered", v)
	}
	if v := c.Peek(regs.DACFlag1); v != 0x81 {
		t.Fatalf("DACFLAG1 = 0x%02x with DAC and driver powered", v)
	}
}

func Test_StickyFlags(t *testing.T) {
	c := New()
	if err := c.Raise(regs.IntFlag1, 0x80); err != nil {
		t.Fatal(err)
	}
	c.Clear(regs.IntFlag1, 0x80)

	if v := readOne(t, c, regs.IntFlag1.Offset()); v != 0 {
		t.Fatalf("INTFLAG1 = 0x%02x after clear", v)
	}
	if v := readOne(t, c, regs.StickyFlag1.Offset()); v != 0x80 {
		t.Fatalf("STICKYFLAG1 = 0x%02x, expected latched 0x80", v)
	}
	if v := readOne(t, c, regs.StickyFlag1.Offset()); v != 0 {
		t.Fatalf("STICKYFLAG1 = 0x%02x, expected cleared by the read", v)
	}
	if err := c.Raise(regs.DACVol, 1); err == nil || !strings.Contains(err.Error(), "DACVOL is not an interrupt") {
		t.Fatalf("DACVOL accepted as an interrupt register: %v", err)
	}
}

func Test_BlockTransfers(t *testing.T) {
	c := New()
	if err := c.WriteReg(regs.PLLPR.Offset(), []byte{0x91, 0x08, 0x00, 0x00}); err != nil {
		t.Fatal(err)
	}
	buf := make([]byte, 4)
	if err := c.ReadReg(regs.PLLPR.Offset(), buf); err != nil {
		t.Fatal(err)
	}
	if buf[0] != 0x91 || buf[1] != 0x08 {
		t.Fatalf("block read back %x", buf)
	}

	err := c.ReadReg(120, make([]byte, 9))
	if errors.Cause(err) != ErrPageBoundary {
		t.Fatalf("expected ErrPageBoundary, got %v", err)
	}
	if c.DebugFlags.BoundaryErrors != 1 {
		t.Fatalf("BoundaryErrors = %d", c.DebugFlags.BoundaryErrors)
	}
}

func Test_UnmodelledPages(t *testing.T) {
	c := New()
	writeOne(t, c, 0, 44)
	writeOne(t, c, 8, 0x04)
	if readOne(t, c, 8) != 0x04 {
		t.Fatalf("page 44 does not keep its values")
	}
	if c.DebugFlags.UnmodelledAccess != 2 {
		t.Fatalf("UnmodelledAccess = %d", c.DebugFlags.UnmodelledAccess)
	}
	if _, ok := c.Snapshot()[44]; !ok {
		t.Fatalf("page 44 missing from the snapshot")
	}
}
