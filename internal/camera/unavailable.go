package camera

import "context"

// Unavailable is a device that never opens. It models a machine without a
// camera and exercises the capture fallback path.
type Unavailable struct{}

func (Unavailable) Name() string { return DriverNone }

func (Unavailable) Open(context.Context, Constraints) (Stream, error) {
	return nil, ErrNoDevice
}
