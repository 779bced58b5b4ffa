package bus

import (
	"path/filepath"
	"testing"

	"github.com/pkg/errors"
)

func Test_OpenMissingI2CDev(t *testing.T) {
	dev := filepath.Join(t.TempDir(), "i2c-99")
	b, err := OpenI2CDev(dev, DefaultAddr)
	if err == nil {
		b.Close()
		t.Fatalf("opening %s should fail", dev)
	}
	if errors.Cause(err) != ErrNoDevice {
		t.Fatalf("expected ErrNoDevice, got %T: %v", err, err)
	}
}
