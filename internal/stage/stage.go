package stage

import (
	"fmt"

	"glimmer/internal/config"
	"glimmer/internal/driver"
)

// UnknownUniverseError reports a channel patched into a universe name that
// does not exist. Fatal at startup.
type UnknownUniverseError struct {
	Name string
}

func (e *UnknownUniverseError) Error() string {
	return fmt.Sprintf("channel references unknown universe %q", e.Name)
}

// DriverFactory builds the output driver for one configured universe. The
// protocol switch lives with the caller so the stage stays transport
// agnostic.
type DriverFactory func(config.Universe) (driver.Driver, error)

// Stage is the wired rig. Membership is fixed for the process lifetime.
type Stage struct {
	Universes []*Universe
	Channels  []*Channel
}

// Build constructs all universes, then resolves every channel against them.
// Any failure aborts startup; on error, drivers already opened are closed.
func Build(cfg *config.Config, newDriver DriverFactory) (*Stage, error) {
	s := &Stage{}
	byName := make(map[string]*Universe, len(cfg.Universes))

	for _, uc := range cfg.Universes {
		if _, dup := byName[uc.Name]; dup {
			s.Close()
			return nil, fmt.Errorf("duplicate universe name %q", uc.Name)
		}
		drv, err := newDriver(uc)
		if err != nil {
			s.Close()
			return nil, fmt.Errorf("universe %q: %w", uc.Name, err)
		}
		u, err := NewUniverse(uc.Name, uc.Channels, drv)
		if err != nil {
			_ = drv.Close()
			s.Close()
			return nil, err
		}
		byName[uc.Name] = u
		s.Universes = append(s.Universes, u)
	}

	for _, cc := range cfg.Channels {
		u, ok := byName[cc.Universe]
		if !ok {
			s.Close()
			return nil, &UnknownUniverseError{Name: cc.Universe}
		}
		ch, err := NewChannel(cc, u)
		if err != nil {
			s.Close()
			return nil, err
		}
		s.Channels = append(s.Channels, ch)
	}
	return s, nil
}

// Close releases every universe's transport.
func (s *Stage) Close() {
	for _, u := range s.Universes {
		_ = u.Close()
	}
}
