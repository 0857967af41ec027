// Package stage wires the static rig: universes owning frame buffers and
// transport handles, and channels holding write windows into them.
package stage

import (
	"fmt"

	"glimmer/internal/driver"
)

// TransportError reports a failed frame transmission for one universe.
type TransportError struct {
	Universe string
	Err      error
}

func (e *TransportError) Error() string {
	return fmt.Sprintf("universe %q: send failed: %v", e.Universe, e.Err)
}

func (e *TransportError) Unwrap() error { return e.Err }

// Universe owns one frame buffer and the driver bound to its destination.
// The buffer length is fixed at the declared channel count for the
// universe's lifetime; only its own channels write into it.
type Universe struct {
	name string
	data []byte
	drv  driver.Driver
}

// NewUniverse binds a driver to a fresh universe. When the driver owns the
// serialized frame memory (sACN packet data), that memory becomes the
// universe buffer so channel writes reach the wire without a copy.
func NewUniverse(name string, channels int, drv driver.Driver) (*Universe, error) {
	if channels <= 0 {
		return nil, fmt.Errorf("universe %q: channel count must be positive, have %d", name, channels)
	}
	data := make([]byte, channels)
	if fb, ok := drv.(driver.FrameBuffer); ok {
		if d := fb.Data(); len(d) == channels {
			data = d
		}
	}
	return &Universe{name: name, data: data, drv: drv}, nil
}

func (u *Universe) Name() string { return u.name }

// Data is the live frame buffer. Channels mutate it in place.
func (u *Universe) Data() []byte { return u.data }

func (u *Universe) Len() int { return len(u.data) }

// Send transmits the current buffer. No retry on failure; the next tick
// sends fresh state.
func (u *Universe) Send() error {
	if err := u.drv.Write(u.data); err != nil {
		return &TransportError{Universe: u.name, Err: err}
	}
	return nil
}

func (u *Universe) Close() error { return u.drv.Close() }
