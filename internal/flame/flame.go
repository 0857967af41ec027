// Package flame simulates candle-like flicker as a bounded random walk with
// exponential smoothing. Each simulator owns its state; nothing is shared.
package flame

import (
	"math/rand"
	"time"
)

const (
	maxIntensity = 255.0
	walkStep     = 48.0 // max raw excursion per step
	smoothing    = 0.35 // pull of the smoothed level toward the raw walk
)

// Sim holds the evolving flame intensity for one channel. State persists for
// the process lifetime and advances only through Step.
type Sim struct {
	rng   *rand.Rand
	walk  float64 // raw random walk, [0,255]
	level float64 // smoothed output, [0,255]
}

// New returns a simulator started mid-range so the first frames are not dark.
func New() *Sim {
	return NewSeeded(time.Now().UnixNano())
}

// NewSeeded is New with a fixed seed, for reproducible sequences in tests.
func NewSeeded(seed int64) *Sim {
	return &Sim{
		rng:   rand.New(rand.NewSource(seed)),
		walk:  maxIntensity / 2,
		level: maxIntensity / 2,
	}
}

// Step advances the simulation by one frame.
func (s *Sim) Step() {
	s.walk += (s.rng.Float64()*2 - 1) * walkStep
	if s.walk < 0 {
		s.walk = 0
	}
	if s.walk > maxIntensity {
		s.walk = maxIntensity
	}
	s.level += (s.walk - s.level) * smoothing
}

// Intensity reports the current smoothed flame level in [0,255].
func (s *Sim) Intensity() float64 {
	if s.level < 0 {
		return 0
	}
	if s.level > maxIntensity {
		return maxIntensity
	}
	return s.level
}
