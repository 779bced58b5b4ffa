package bus

import (
	"sync"

	"github.com/pkg/errors"
	"github.com/platinasystems/i2c"
)

// lock serialises SMBus transfers of every handle in the process.
var lock sync.Mutex

// SMBus reaches the chip with SMBus byte-data transfers, one register at
// a time.
type SMBus struct {
	Bus  int
	Addr int
}

// OpenSMBus checks that the bus can be opened and returns a handle for the
// chip at addr on it.
func OpenSMBus(busno, addr int) (Bus, error) {
	var b i2c.Bus
	if err := b.Open(busno); err != nil {
		return nil, errors.Wrapf(ErrNoDevice, "i2c-%d: %v", busno, err)
	}
	b.Close()
	return &SMBus{Bus: busno, Addr: addr}, nil
}

func (h *SMBus) do(rw i2c.RW, reg uint8, data *i2c.SMBusData) (err error) {
	var b i2c.Bus

	lock.Lock()
	defer lock.Unlock()

	if err = b.Open(h.Bus); err != nil {
		return
	}
	defer b.Close()

	if err = b.ForceSlaveAddress(h.Addr); err != nil {
		return
	}
	return b.Do(rw, reg, i2c.ByteData, data)
}

func (h *SMBus) ReadReg(reg byte, buf []byte) error {
	var data i2c.SMBusData
	for i := range buf {
		if err := h.do(i2c.Read, reg+uint8(i), &data); err != nil {
			return errors.Wrapf(err, "i2c-%d@0x%02x: read 0x%02x", h.Bus, h.Addr, reg+uint8(i))
		}
		buf[i] = data[0]
	}
	return nil
}

func (h *SMBus) WriteReg(reg byte, buf []byte) error {
	var data i2c.SMBusData
	for i, v := range buf {
		data[0] = v
		if err := h.do(i2c.Write, reg+uint8(i), &data); err != nil {
			return errors.Wrapf(err, "i2c-%d@0x%02x: write 0x%02x", h.Bus, h.Addr, reg+uint8(i))
		}
	}
	return nil
}

func (h *SMBus) Close() error { return nil }
