// Package chip emulates the register file of a TAS2505 so the rest of
// the tooling can run without hardware.
package chip

import (
	"sync"

	"github.com/pkg/errors"

	"github.com/handegar/tas2505/regs"
)

// ErrPageBoundary is returned for transfers that run past offset 127.
var ErrPageBoundary = errors.New("transfer crosses page boundary")

type page [regs.PageSize]uint8

// Chip is an emulated TAS2505 reachable through the bus.Bus methods.
type Chip struct {
	mu sync.Mutex

	page   uint8           // Currently selected page
	pages  map[uint8]*page // Allocated on first selection
	sticky map[regs.Reg]uint8
	live   map[regs.Reg]uint8

	DebugFlags *DebugFlags // Counters of odd accesses, set at runtime
}

func New() *Chip {
	c := new(Chip)
	c.DebugFlags = new(DebugFlags)
	c.DebugFlags.Reset()
	c.reset()
	return c
}

// Reset performs a software reset, as writing RESET would.
func (c *Chip) Reset() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.reset()
}

func (c *Chip) reset() {
	c.page = 0
	c.pages = map[uint8]*page{0: new(page), 1: new(page)}
	for r, v := range defaults {
		c.pages[r.Page()][r.Offset()] = v
	}
	c.sticky = make(map[regs.Reg]uint8)
	c.live = make(map[regs.Reg]uint8)
	c.DebugFlags.Resets += 1
}

func (c *Chip) selected() *page {
	p, ok := c.pages[c.page]
	if !ok {
		p = new(page)
		c.pages[c.page] = p
	}
	if c.page > 1 {
		c.DebugFlags.UnmodelledAccess += 1
	}
	return p
}

func (c *Chip) checkSpan(reg byte, n int) error {
	if int(reg)+n > regs.PageSize {
		c.DebugFlags.BoundaryErrors += 1
		return errors.Wrapf(ErrPageBoundary, "page %d offset %d length %d", c.page, reg, n)
	}
	return nil
}

func (c *Chip) ReadReg(reg byte, buf []byte) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if err := c.checkSpan(reg, len(buf)); err != nil {
		return err
	}
	p := c.selected()
	for i := range buf {
		buf[i] = c.read(p, regs.Addr(c.page, reg+uint8(i)))
	}
	return nil
}

func (c *Chip) read(p *page, r regs.Reg) uint8 {
	switch r {
	case regs.Addr(c.page, 0):
		return c.page
	case regs.Reset:
		return 0
	case regs.DACFlag1:
		var v uint8
		if c.dacPowered() {
			v |= 0x80
		}
		if c.spkPowered() {
			v |= 0x01
		}
		return v
	case regs.DACFlag2:
		if c.dacPowered() {
			return 0x10
		}
		return 0
	case regs.DACAnlGainFlag:
		if c.spkPowered() {
			return 0x01
		}
		return 0
	case regs.StickyFlag1, regs.StickyFlag2:
		v := c.sticky[r]
		delete(c.sticky, r)
		return v
	case regs.IntFlag1, regs.IntFlag2:
		return c.live[r]
	}
	return p[r.Offset()]
}

func (c *Chip) WriteReg(reg byte, buf []byte) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if err := c.checkSpan(reg, len(buf)); err != nil {
		return err
	}
	for i, v := range buf {
		c.write(regs.Addr(c.page, reg+uint8(i)), v)
	}
	return nil
}

func (c *Chip) write(r regs.Reg, v uint8) {
	switch {
	case r.Offset() == 0:
		c.page = v
		c.DebugFlags.PageSelects += 1
		return
	case r == regs.Reset:
		if v&regs.ResetSoft != 0 {
			c.reset()
		}
		return
	case regs.Volatile(r):
		c.DebugFlags.ReadOnlyWrites += 1
		c.DebugFlags.LastReadOnlyReg = int(r)
		return
	}
	c.selected()[r.Offset()] = v
}

func (c *Chip) Close() error { return nil }

func (c *Chip) dacPowered() bool {
	return regs.FieldDACPower.Get(c.pages[0][regs.DACSetup1.Offset()]) == 1
}

func (c *Chip) spkPowered() bool {
	v := c.pages[1][regs.SpkAmpCtrl1.Offset()]
	return regs.SpkDrv(regs.FieldSpkDrv.Get(v)) == regs.SpkAmpCtrl1SpkDrvPWU
}

// Raise latches interrupt bits in an INTFLAG register and its sticky
// companion, as an over-current or thermal event would.
func (c *Chip) Raise(r regs.Reg, bits uint8) error {
	sticky, ok := map[regs.Reg]regs.Reg{
		regs.IntFlag1: regs.StickyFlag1,
		regs.IntFlag2: regs.StickyFlag2,
	}[r]
	if !ok {
		return errors.Errorf("%s is not an interrupt flag register", r)
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	c.live[r] |= bits
	c.sticky[sticky] |= bits
	return nil
}

// Clear drops live interrupt bits. Sticky bits stay until read.
func (c *Chip) Clear(r regs.Reg, bits uint8) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.live[r] &^= bits
}

// Page returns the currently selected page.
func (c *Chip) Page() uint8 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.page
}

// Peek returns the stored value of r without side effects and without
// changing the selected page. Flag registers report their derived value.
func (c *Chip) Peek(r regs.Reg) uint8 {
	c.mu.Lock()
	defer c.mu.Unlock()
	p, ok := c.pages[r.Page()]
	if !ok {
		return 0
	}
	switch r {
	case regs.StickyFlag1, regs.StickyFlag2:
		return c.sticky[r]
	case regs.Addr(r.Page(), 0):
		return c.page
	}
	saved := c.page
	c.page = r.Page()
	v := c.read(p, r)
	c.page = saved
	return v
}

// Snapshot copies every allocated page.
func (c *Chip) Snapshot() map[uint8][regs.PageSize]uint8 {
	c.mu.Lock()
	defer c.mu.Unlock()
	s := make(map[uint8][regs.PageSize]uint8, len(c.pages))
	for n, p := range c.pages {
		s[n] = *p
	}
	return s
}
