package serial

import (
	"testing"

	qt "github.com/frankban/quicktest"
)

func TestDefaultConfig(t *testing.T) {
	c := qt.New(t)
	cfg := DefaultConfig("/dev/ttyUSB0")
	c.Assert(cfg.Device, qt.Equals, "/dev/ttyUSB0")
	c.Assert(cfg.Baud, qt.Equals, 115200)
	c.Assert(cfg.ReadTimeout > 0, qt.IsTrue)
}

func TestOpenRejectsBadConfig(t *testing.T) {
	c := qt.New(t)

	_, err := Open(nil)
	c.Assert(err, qt.ErrorMatches, "config cannot be nil")

	_, err = Open(&Config{Baud: 115200})
	c.Assert(err, qt.ErrorMatches, "serial device path is empty")
}

func TestOpenMissingDevice(t *testing.T) {
	c := qt.New(t)
	_, err := Open(DefaultConfig("/dev/pulserelay-does-not-exist"))
	c.Assert(err, qt.ErrorMatches, "failed to open serial port /dev/pulserelay-does-not-exist: .*")
}
