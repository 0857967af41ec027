// Package engine runs the fixed-rate frame loop: update every channel, send
// every universe, sleep until the next absolute deadline.
package engine

import (
	"sync/atomic"
	"time"

	"github.com/rs/zerolog"
)

// State of the frame loop. Stopped is terminal.
type State int32

const (
	Idle State = iota
	Running
	Stopped
)

func (s State) String() string {
	switch s {
	case Idle:
		return "idle"
	case Running:
		return "running"
	case Stopped:
		return "stopped"
	}
	return "unknown"
}

// Updater computes one element's frame state. Implemented by stage.Channel.
type Updater interface {
	Update() error
}

// Sender transmits one destination's frame. Implemented by stage.Universe.
type Sender interface {
	Send() error
}

// Engine drives ticks at a fixed nominal rate. Deadlines are absolute
// (reference + k*period), so a slow tick compresses the following wait
// instead of shifting the whole schedule; frames are never skipped.
type Engine struct {
	channels  []Updater
	universes []Sender
	period    time.Duration
	log       zerolog.Logger

	stop     atomic.Bool
	state    atomic.Int32
	frames   atomic.Uint64
	overruns atomic.Uint64
}

// New builds an engine ticking at rate frames per second.
func New(channels []Updater, universes []Sender, rate int, log zerolog.Logger) *Engine {
	if rate <= 0 {
		rate = 30
	}
	return &Engine{
		channels:  channels,
		universes: universes,
		period:    time.Second / time.Duration(rate),
		log:       log.With().Str("comp", "engine").Logger(),
	}
}

// RequestStop asks the loop to exit. Safe from any goroutine; the in-flight
// tick completes, no further tick starts.
func (e *Engine) RequestStop() { e.stop.Store(true) }

func (e *Engine) CurrentState() State { return State(e.state.Load()) }

// Frames is the number of completed ticks.
func (e *Engine) Frames() uint64 { return e.frames.Load() }

// Overruns counts ticks that exceeded their wall-clock budget.
func (e *Engine) Overruns() uint64 { return e.overruns.Load() }

// Run executes the tick loop until a stop is requested, then returns. It
// blocks the calling goroutine.
func (e *Engine) Run() {
	e.state.Store(int32(Running))
	e.log.Info().Dur("period", e.period).Msg("frame loop started")

	ref := time.Now()
	for k := 1; ; k++ {
		if e.stop.Load() {
			break
		}
		e.tick()

		// Absolute deadline for the next frame. An overrunning tick gets a
		// zero wait and is reported once; the frame itself is not dropped.
		wait := time.Until(ref.Add(time.Duration(k) * e.period))
		if wait <= 0 {
			e.overruns.Add(1)
			e.log.Warn().
				Uint64("frame", e.frames.Load()).
				Dur("over", -wait).
				Msg("tick overran its budget")
			continue
		}
		time.Sleep(wait)
	}

	e.state.Store(int32(Stopped))
	e.log.Info().Uint64("frames", e.frames.Load()).Msg("frame loop stopped")
}

// tick runs all channel updates, then all universe sends. Failures are local:
// one channel or universe erroring never aborts the rest of the tick.
func (e *Engine) tick() {
	for _, c := range e.channels {
		if err := c.Update(); err != nil {
			e.log.Error().Err(err).Msg("channel update failed")
		}
	}
	for _, u := range e.universes {
		if err := u.Send(); err != nil {
			e.log.Error().Err(err).Msg("universe send failed")
		}
	}
	e.frames.Add(1)
}
