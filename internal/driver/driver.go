// Package driver abstracts the per-universe output sink: a network protocol
// transmitter, local hardware, or an in-memory sink for tests.
package driver

// Driver pushes one frame of channel data to its destination. len(frame) is
// the universe's declared channel count and never changes between writes.
type Driver interface {
	Write(frame []byte) error
	Close() error
}

// FrameBuffer is implemented by drivers that serialize frames from memory
// they own (e.g. the data region of a persistent protocol packet). The
// universe adopts that memory as its frame buffer so writes need no copy.
type FrameBuffer interface {
	Data() []byte
}
