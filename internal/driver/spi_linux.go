//go:build linux

package driver

import (
	"fmt"
	"image"
	stdcolor "image/color"

	"periph.io/x/conn/v3/physic"
	"periph.io/x/conn/v3/spi"
	"periph.io/x/conn/v3/spi/spireg"
	"periph.io/x/devices/v3/nrzled"
	"periph.io/x/host/v3"
)

// refreshRate is the NRZ bit rate base for WS2812-style strips.
const refreshRate physic.Frequency = 800

// SPI drives a local WS2812-style strip through spidev, one LED per 3-byte
// RGB pixel of the universe buffer.
type SPI struct {
	port   spi.PortCloser
	strip  *nrzled.Dev
	pixels int
	img    *image.NRGBA
}

func NewSPI(dev string, channels int) (*SPI, error) {
	if channels < 3 {
		return nil, fmt.Errorf("spi driver needs at least 3 channels, have %d", channels)
	}
	if _, err := host.Init(); err != nil {
		return nil, fmt.Errorf("host init: %w", err)
	}
	port, err := spireg.Open(dev)
	if err != nil {
		return nil, fmt.Errorf("open spi port %q: %w", dev, err)
	}
	n := channels / 3
	opts := nrzled.Opts{
		NumPixels: n,
		Channels:  3,
		Freq:      ((refreshRate * 3) + 100) * physic.KiloHertz,
	}
	strip, err := nrzled.NewSPI(port, &opts)
	if err != nil {
		_ = port.Close()
		return nil, fmt.Errorf("nrzled: %w", err)
	}
	_ = strip.Halt()
	return &SPI{
		port:   port,
		strip:  strip,
		pixels: n,
		img:    image.NewNRGBA(image.Rect(0, 0, n, 1)),
	}, nil
}

func (s *SPI) Write(frame []byte) error {
	for i := 0; i < s.pixels; i++ {
		s.img.SetNRGBA(i, 0, stdcolor.NRGBA{R: frame[i*3], G: frame[i*3+1], B: frame[i*3+2], A: 255})
	}
	if err := s.strip.Draw(s.strip.Bounds(), s.img, image.Point{}); err != nil {
		return fmt.Errorf("spi draw: %w", err)
	}
	return nil
}

func (s *SPI) Close() error {
	_ = s.strip.Halt()
	return s.port.Close()
}
