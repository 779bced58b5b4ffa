// Package regmap reads and writes TAS2505 registers by their paged
// address, selecting pages on the bus as needed.
package regmap

import (
	"sort"
	"sync"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"

	"github.com/handegar/tas2505/bus"
	"github.com/handegar/tas2505/regs"
)

var (
	// ErrFieldOverflow is returned when a value does not fit its field.
	ErrFieldOverflow = errors.New("value does not fit field")
	// ErrNotCached is returned by cache-only reads of unknown registers.
	ErrNotCached = errors.New("register not cached")
)

const noPage = -1

// Map is a register map on one chip.
type Map struct {
	mu    sync.Mutex
	bus   bus.Bus
	page  int
	cache map[regs.Reg]uint8
	log   *logrus.Entry
}

type Option func(*Map)

// WithCache keeps the last value of every non-volatile register and
// serves reads from it.
func WithCache() Option {
	return func(m *Map) { m.cache = make(map[regs.Reg]uint8) }
}

func WithLogger(l *logrus.Entry) Option {
	return func(m *Map) { m.log = l }
}

func New(b bus.Bus, opts ...Option) *Map {
	m := &Map{
		bus:  b,
		page: noPage,
		log:  logrus.NewEntry(logrus.StandardLogger()),
	}
	for _, o := range opts {
		o(m)
	}
	m.log = m.log.WithField("component", "regmap")
	return m
}

func (m *Map) Bus() bus.Bus { return m.bus }

func (m *Map) Close() error { return m.bus.Close() }

func (m *Map) selectPage(p uint8) error {
	if m.page == int(p) {
		return nil
	}
	m.log.WithField("page", p).Trace("select page")
	if err := m.bus.WriteReg(0, []byte{p}); err != nil {
		m.page = noPage
		return errors.Wrapf(err, "select page %d", p)
	}
	m.page = int(p)
	return nil
}

// SelectPage writes PAGECTL if p is not already selected.
func (m *Map) SelectPage(p uint8) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.selectPage(p)
}

func (m *Map) read(r regs.Reg) (uint8, error) {
	if v, ok := m.cache[r]; ok {
		return v, nil
	}
	if r.Offset() == 0 {
		return m.readPageCtl()
	}
	if err := m.selectPage(r.Page()); err != nil {
		return 0, err
	}
	var b [1]byte
	if err := m.bus.ReadReg(r.Offset(), b[:]); err != nil {
		return 0, errors.Wrapf(err, "read %s", r)
	}
	m.log.WithFields(logrus.Fields{"reg": r.String(), "val": b[0]}).Debug("read")
	m.store(r, b[0])
	return b[0], nil
}

// readPageCtl answers from the tracked page, or asks the chip, whose
// PAGECTL is visible at offset 0 of every page.
func (m *Map) readPageCtl() (uint8, error) {
	if m.page != noPage {
		return uint8(m.page), nil
	}
	var b [1]byte
	if err := m.bus.ReadReg(0, b[:]); err != nil {
		return 0, errors.Wrap(err, "read PAGECTL")
	}
	m.page = int(b[0])
	return b[0], nil
}

func (m *Map) write(r regs.Reg, v uint8) error {
	if r.Offset() == 0 {
		// PAGECTL of any page selects a page
		m.page = noPage
		return m.selectPage(v)
	}
	if err := m.selectPage(r.Page()); err != nil {
		return err
	}
	m.log.WithFields(logrus.Fields{"reg": r.String(), "val": v}).Debug("write")
	if err := m.bus.WriteReg(r.Offset(), []byte{v}); err != nil {
		return errors.Wrapf(err, "write %s", r)
	}
	if r == regs.Reset && v&regs.ResetSoft != 0 {
		// The chip is back on page 0 with its defaults.
		m.page = 0
		m.invalidate()
		return nil
	}
	m.store(r, v)
	return nil
}

func (m *Map) store(r regs.Reg, v uint8) {
	if m.cache == nil || regs.Volatile(r) || r.Offset() == 0 || r == regs.Reset {
		return
	}
	m.cache[r] = v
}

func (m *Map) invalidate() {
	if m.cache != nil {
		m.cache = make(map[regs.Reg]uint8)
	}
}

func (m *Map) Read(r regs.Reg) (uint8, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.read(r)
}

func (m *Map) Write(r regs.Reg, v uint8) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.write(r, v)
}

// Update replaces the mask bits of r with val and reports whether the
// register changed. Nothing is written when it would not.
func (m *Map) Update(r regs.Reg, mask, val uint8) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.update(r, mask, val)
}

func (m *Map) update(r regs.Reg, mask, val uint8) (bool, error) {
	old, err := m.read(r)
	if err != nil {
		return false, err
	}
	v := old&^mask | val&mask
	if v == old {
		return false, nil
	}
	return true, m.write(r, v)
}

func (m *Map) ReadField(f regs.Field) (uint8, error) {
	v, err := m.Read(f.Reg)
	if err != nil {
		return 0, err
	}
	return f.Get(v), nil
}

// WriteField stores v in f with a read-modify-write of its register.
func (m *Map) WriteField(f regs.Field, v uint8) error {
	if !f.Fits(v) {
		return errors.Wrapf(ErrFieldOverflow, "%s = %d (max %d)", f.Name, v, f.Max())
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	_, err := m.update(f.Reg, f.Mask, v<<f.Shift)
	return err
}

// ReadPage reads all registers of page p in one transfer. The cache is
// bypassed and refreshed.
func (m *Map) ReadPage(p uint8) ([regs.PageSize]uint8, error) {
	var b [regs.PageSize]uint8
	m.mu.Lock()
	defer m.mu.Unlock()
	if err := m.selectPage(p); err != nil {
		return b, err
	}
	if err := m.bus.ReadReg(0, b[:]); err != nil {
		return b, errors.Wrapf(err, "read page %d", p)
	}
	for off := 1; off < regs.PageSize; off++ {
		m.store(regs.Addr(p, uint8(off)), b[off])
	}
	return b, nil
}

// Cached returns the cached value of r without touching the bus.
func (m *Map) Cached(r regs.Reg) (uint8, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	v, ok := m.cache[r]
	if !ok {
		return 0, errors.Wrapf(ErrNotCached, "%s", r)
	}
	return v, nil
}

// Invalidate forgets the cache and the selected page, for when something
// else has touched the chip.
func (m *Map) Invalidate() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.page = noPage
	m.invalidate()
}

// Sync writes every cached register back to the chip, page by page,
// e.g. after a power cycle.
func (m *Map) Sync() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.cache == nil {
		return nil
	}
	m.page = noPage
	regsByPage := make(map[uint8][]regs.Reg)
	var pages []uint8
	for r := range m.cache {
		p := r.Page()
		if _, ok := regsByPage[p]; !ok {
			pages = append(pages, p)
		}
		regsByPage[p] = append(regsByPage[p], r)
	}
	sort.Slice(pages, func(i, j int) bool { return pages[i] < pages[j] })
	for _, p := range pages {
		rs := regsByPage[p]
		sort.Slice(rs, func(i, j int) bool { return rs[i] < rs[j] })
		for _, r := range rs {
			if err := m.write(r, m.cache[r]); err != nil {
				return err
			}
		}
	}
	m.log.WithField("count", len(m.cache)).Info("cache synced")
	return nil
}
