package bus

import (
	"os"

	"github.com/pkg/errors"
	"golang.org/x/exp/io/i2c"
)

type i2cDev struct {
	dev  *i2c.Device
	name string
	addr int
}

// OpenI2CDev opens the chip at addr on a Linux i2c-dev node such as
// /dev/i2c-1.
func OpenI2CDev(dev string, addr int) (Bus, error) {
	d, err := i2c.Open(&i2c.Devfs{Dev: dev}, addr)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errors.Wrapf(ErrNoDevice, "%s", dev)
		}
		return nil, errors.Wrapf(err, "open %s@0x%02x", dev, addr)
	}
	return &i2cDev{dev: d, name: dev, addr: addr}, nil
}

func (d *i2cDev) ReadReg(reg byte, buf []byte) error {
	return errors.Wrapf(d.dev.ReadReg(reg, buf), "%s@0x%02x: read 0x%02x", d.name, d.addr, reg)
}

func (d *i2cDev) WriteReg(reg byte, buf []byte) error {
	return errors.Wrapf(d.dev.WriteReg(reg, buf), "%s@0x%02x: write 0x%02x", d.name, d.addr, reg)
}

func (d *i2cDev) Close() error { return d.dev.Close() }
