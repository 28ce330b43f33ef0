package camera

import (
	"fmt"
	"time"

	"go.uber.org/zap"
)

// Driver names accepted by NewDevice.
const (
	DriverBrowser = "browser"
	DriverPattern = "pattern"
	DriverNone    = "none"
)

// Drivers lists every known driver name.
var Drivers = []string{DriverBrowser, DriverPattern, DriverNone}

// Options configures the device returned by NewDevice.
type Options struct {
	Driver   string
	Browser  string // Chrome/Chromium binary; empty means look it up on PATH
	Headless bool
	Fake     bool // use Chrome's synthetic camera instead of real hardware
	Timeout  time.Duration
}

// NewDevice returns the device for opts.Driver.
func NewDevice(opts Options, logger *zap.Logger) (Device, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	switch opts.Driver {
	case DriverBrowser, "":
		return NewBrowserDevice(opts, logger), nil
	case DriverPattern:
		return NewPatternDevice(), nil
	case DriverNone:
		return Unavailable{}, nil
	default:
		return nil, fmt.Errorf("unknown camera driver %q (valid: %v)", opts.Driver, Drivers)
	}
}
