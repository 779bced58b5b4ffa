package regmap

import (
	"fmt"
	"testing"

	"github.com/pkg/errors"

	"github.com/handegar/tas2505/chip"
	"github.com/handegar/tas2505/regs"
)

// recorder logs every transfer before handing it to the emulated chip.
type recorder struct {
	*chip.Chip
	log    []string
	failOn int // offset whose writes fail, -1 for none
}

func newRecorder() *recorder {
	return &recorder{Chip: chip.New(), failOn: -1}
}

func (r *recorder) ReadReg(reg byte, buf []byte) error {
	r.log = append(r.log, fmt.Sprintf("r%d/%d", reg, len(buf)))
	return r.Chip.ReadReg(reg, buf)
}

func (r *recorder) WriteReg(reg byte, buf []byte) error {
	r.log = append(r.log, fmt.Sprintf("w%d=%x", reg, buf))
	if int(reg) == r.failOn {
		return errors.New("NACK received")
	}
	return r.Chip.WriteReg(reg, buf)
}

func (r *recorder) reset() { r.log = nil }

func Test_PageSelection(t *testing.T) {
	b := newRecorder()
	m := New(b)

	if err := m.Write(regs.DACVol, 0x30); err != nil {
		t.Fatal(err)
	}
	if err := m.Write(regs.DACSetup1, 0x80); err != nil {
		t.Fatal(err)
	}
	if err := m.Write(regs.SpkVol2, 0x10); err != nil {
		t.Fatal(err)
	}
	if _, err := m.Read(regs.SpkAmpCtrl1); err != nil {
		t.Fatal(err)
	}

	want := []string{"w0=00", "w65=30", "w63=80", "w0=01", "w48=10", "r45/1"}
	if fmt.Sprint(b.log) != fmt.Sprint(want) {
		t.Fatalf("transfers %v, expected %v", b.log, want)
	}
	if b.Peek(regs.DACVol) != 0x30 || b.Peek(regs.SpkVol2) != 0x10 {
		t.Fatalf("values did not land on the right pages")
	}
}

func Test_PageCtlReads(t *testing.T) {
	b := newRecorder()
	b.WriteReg(0, []byte{1})
	b.reset()

	m := New(b)
	p, err := m.Read(regs.PageCtl)
	if err != nil || p != 1 {
		t.Fatalf("PAGECTL = %d, %v", p, err)
	}
	if _, err := m.Read(regs.SpkVol1); err != nil {
		t.Fatal(err)
	}
	want := []string{"r0/1", "r46/1"}
	if fmt.Sprint(b.log) != fmt.Sprint(want) {
		t.Fatalf("transfers %v, expected %v", b.log, want)
	}
}

func Test_Update(t *testing.T) {
	b := newRecorder()
	m := New(b)

	changed, err := m.Update(regs.DACSetup2, regs.DACSetup2MuteMask, 0)
	if err != nil || !changed {
		t.Fatalf("unmute: changed=%t err=%v", changed, err)
	}
	if b.Peek(regs.DACSetup2) != 0x04 {
		t.Fatalf("DACSETUP2 = 0x%02x, expected 0x04", b.Peek(regs.DACSetup2))
	}

	b.reset()
	changed, err = m.Update(regs.DACSetup2, regs.DACSetup2MuteMask, 0)
	if err != nil || changed {
		t.Fatalf("second unmute: changed=%t err=%v", changed, err)
	}
	for _, l := range b.log {
		if l[0] == 'w' {
			t.Fatalf("no-op update wrote: %v", b.log)
		}
	}
}

func Test_Fields(t *testing.T) {
	m := New(chip.New())

	if err := m.WriteField(regs.FieldIFace1DataLen, uint8(regs.WordLen24Bits)); err != nil {
		t.Fatal(err)
	}
	if err := m.WriteField(regs.FieldIFace1Interface, uint8(regs.LJFMode)); err != nil {
		t.Fatal(err)
	}
	v, err := m.Read(regs.IFace1)
	if err != nil {
		t.Fatal(err)
	}
	if v != 0xe0 {
		t.Fatalf("IFACE1 = 0x%02x, expected 0xe0", v)
	}
	wl, err := m.ReadField(regs.FieldIFace1DataLen)
	if err != nil || regs.WordLen(wl) != regs.WordLen24Bits {
		t.Fatalf("DATALEN = %d, %v", wl, err)
	}

	err = m.WriteField(regs.FieldSpkGain, 8)
	if errors.Cause(err) != ErrFieldOverflow {
		t.Fatalf("expected ErrFieldOverflow, got %v", err)
	}
}

func Test_Cache(t *testing.T) {
	b := newRecorder()
	m := New(b, WithCache())

	if err := m.Write(regs.DACVol, 0x10); err != nil {
		t.Fatal(err)
	}
	b.reset()
	v, err := m.Read(regs.DACVol)
	if err != nil || v != 0x10 {
		t.Fatalf("DACVOL = 0x%02x, %v", v, err)
	}
	if len(b.log) != 0 {
		t.Fatalf("cached read reached the bus: %v", b.log)
	}

	// flags always come from the chip
	m.Read(regs.DACFlag1)
	m.Read(regs.DACFlag1)
	if len(b.log) != 2 {
		t.Fatalf("volatile reads %v", b.log)
	}
	if _, err := m.Cached(regs.DACFlag1); errors.Cause(err) != ErrNotCached {
		t.Fatalf("DACFLAG1 was cached")
	}
}

func Test_ResetInvalidates(t *testing.T) {
	b := newRecorder()
	m := New(b, WithCache())

	m.Write(regs.SpkVol2, 0x20)
	if err := m.Write(regs.Reset, regs.ResetSoft); err != nil {
		t.Fatal(err)
	}
	if _, err := m.Cached(regs.SpkVol2); err == nil {
		t.Fatalf("cache survived the reset")
	}

	b.reset()
	v, err := m.Read(regs.DACSetup2)
	if err != nil || v != 0x0c {
		t.Fatalf("DACSETUP2 = 0x%02x, %v", v, err)
	}
	if fmt.Sprint(b.log) != "[r64/1]" {
		t.Fatalf("expected page 0 to be known after reset, got %v", b.log)
	}
}

func Test_Sync(t *testing.T) {
	b := newRecorder()
	m := New(b, WithCache())

	m.Write(regs.DACVol, 0x30)
	m.Write(regs.SpkVol2, 0x10)
	m.Write(regs.SpkAmpCtrl1, 0x02)

	b.Chip.Reset() // behind the map's back
	if err := m.Sync(); err != nil {
		t.Fatal(err)
	}
	if b.Peek(regs.DACVol) != 0x30 || b.Peek(regs.SpkVol2) != 0x10 || b.Peek(regs.SpkAmpCtrl1) != 0x02 {
		t.Fatalf("sync did not restore the registers")
	}
}

func Test_WriteErrorForgetsPage(t *testing.T) {
	b := newRecorder()
	b.failOn = 0
	m := New(b)

	err := m.Write(regs.DACVol, 1)
	if err == nil {
		t.Fatalf("expected the page select to fail")
	}
	b.failOn = -1
	b.reset()
	if err := m.Write(regs.DACVol, 1); err != nil {
		t.Fatal(err)
	}
	if b.log[0] != "w0=00" {
		t.Fatalf("page not reselected after a failure: %v", b.log)
	}
}

func Test_ReadPage(t *testing.T) {
	b := newRecorder()
	m := New(b, WithCache())

	p, err := m.ReadPage(1)
	if err != nil {
		t.Fatal(err)
	}
	if p[0] != 1 || p[regs.SpkVol1.Offset()] != 0x7f {
		t.Fatalf("page 1 read back PAGECTL=%d SPKVOL1=0x%02x", p[0], p[regs.SpkVol1.Offset()])
	}
	if v, err := m.Cached(regs.SpkVol1); err != nil || v != 0x7f {
		t.Fatalf("page read did not fill the cache: 0x%02x, %v", v, err)
	}
}
