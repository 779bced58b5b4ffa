// Package bus carries register transfers to a TAS2505 over I2C.
package bus

import (
	"github.com/pkg/errors"
)

// DefaultAddr is the 7-bit I2C address of the TAS2505.
const DefaultAddr = 0x18

// Bus moves bytes to and from consecutive registers of the currently
// selected page. Multi-byte transfers rely on the chip's address
// auto-increment.
type Bus interface {
	ReadReg(reg byte, buf []byte) error
	WriteReg(reg byte, buf []byte) error
	Close() error
}

var (
	// ErrNoDevice signals that nothing answered at the address.
	ErrNoDevice = errors.New("no such device")
	// ErrShortTransfer signals that fewer bytes moved than requested.
	ErrShortTransfer = errors.New("short transfer")
)
