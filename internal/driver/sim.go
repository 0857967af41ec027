package driver

import "sync"

// Sim captures frames in memory. Useful for headless runs and tests.
type Sim struct {
	mu     sync.Mutex
	last   []byte
	writes int
}

func NewSim() *Sim { return &Sim{} }

func (s *Sim) Write(frame []byte) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if len(s.last) != len(frame) {
		s.last = make([]byte, len(frame))
	}
	copy(s.last, frame)
	s.writes++
	return nil
}

func (s *Sim) Close() error { return nil }

// LastFrame returns a copy of the most recently written frame.
func (s *Sim) LastFrame() []byte {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]byte, len(s.last))
	copy(out, s.last)
	return out
}

// Writes reports how many frames have been written.
func (s *Sim) Writes() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.writes
}
