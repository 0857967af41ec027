package stage

import (
	"fmt"

	"glimmer/internal/color"
	"glimmer/internal/config"
	"glimmer/internal/flame"
)

// Output modes.
const (
	ModeHSV = "hsv"
	ModeRGB = "rgb"
)

// colorWidth is the number of buffer bytes one channel writes.
const colorWidth = 3

// BoundsError reports a channel whose write window does not fit its
// universe's buffer.
type BoundsError struct {
	Universe string
	Offset   int
	Size     int
}

func (e *BoundsError) Error() string {
	return fmt.Sprintf("channel at offset %d writes past universe %q (size %d)", e.Offset, e.Universe, e.Size)
}

// Channel computes one fixture color per tick and writes it into its
// universe's buffer at a fixed offset. The universe is referenced, never
// owned.
type Channel struct {
	uni    *Universe
	offset int
	mode   string
	hue    string

	// candle effect state, nil when no effect is configured
	flick *flame.Sim
	base  float64
	amp   float64
}

// NewChannel validates the patch and builds the channel. The write window is
// bounds-checked here, and effect state is constructed eagerly, so ticks
// carry no hidden initialization.
func NewChannel(cfg config.Channel, uni *Universe) (*Channel, error) {
	if cfg.Channel < 0 || cfg.Channel+colorWidth > uni.Len() {
		return nil, &BoundsError{Universe: uni.Name(), Offset: cfg.Channel, Size: uni.Len()}
	}
	c := &Channel{
		uni:    uni,
		offset: cfg.Channel,
		mode:   cfg.Type,
		hue:    cfg.Hue,
	}
	switch cfg.Effect {
	case "":
	case "candle":
		if len(cfg.Level) != 2 {
			return nil, fmt.Errorf("candle effect on universe %q offset %d: level must be [base, amplitude]", uni.Name(), cfg.Channel)
		}
		c.flick = flame.New()
		c.base = cfg.Level[0]
		c.amp = cfg.Level[1]
	default:
		return nil, fmt.Errorf("unknown effect %q", cfg.Effect)
	}
	return c, nil
}

// Update computes this tick's color and writes it into the universe buffer.
// An error means this channel produced nothing this tick; other channels are
// unaffected.
func (c *Channel) Update() error {
	hsv, err := color.Parse(c.hue)
	if err != nil {
		return err
	}
	if c.flick != nil {
		c.flick.Step()
		v := c.base + c.flick.Intensity()/255*c.amp
		if v < 0 {
			v = 0
		}
		if v > 255 {
			v = 255
		}
		hsv.V = v / 255
	}

	buf := c.uni.Data()
	switch c.mode {
	case ModeHSV:
		buf[c.offset] = scaleByte(hsv.H / 360)
		buf[c.offset+1] = scaleByte(hsv.S)
		buf[c.offset+2] = scaleByte(hsv.V)
	case ModeRGB:
		rgb := hsv.RGB()
		buf[c.offset] = rgb.R
		buf[c.offset+1] = rgb.G
		buf[c.offset+2] = rgb.B
	default:
		return fmt.Errorf("unknown output mode %q", c.mode)
	}
	return nil
}

func scaleByte(f float64) uint8 {
	if f <= 0 {
		return 0
	}
	if f >= 1 {
		return 255
	}
	return uint8(f*255 + 0.5)
}
