package driver

import (
	"fmt"
	"image"
	stdcolor "image/color"

	"periph.io/x/conn/v3/display"
	"periph.io/x/extra/devices/screen"
)

// Screen renders a universe as a strip of ANSI color cells on the terminal,
// one cell per 3-byte RGB pixel. Meant for previewing a rig without hardware.
type Screen struct {
	drawer display.Drawer
	pixels int
	img    *image.NRGBA
}

func NewScreen(channels int) (*Screen, error) {
	if channels < 3 {
		return nil, fmt.Errorf("screen driver needs at least 3 channels, have %d", channels)
	}
	n := channels / 3
	return &Screen{
		drawer: screen.New(n),
		pixels: n,
		img:    image.NewNRGBA(image.Rect(0, 0, n, 1)),
	}, nil
}

func (s *Screen) Write(frame []byte) error {
	for i := 0; i < s.pixels; i++ {
		s.img.SetNRGBA(i, 0, stdcolor.NRGBA{R: frame[i*3], G: frame[i*3+1], B: frame[i*3+2], A: 255})
	}
	if err := s.drawer.Draw(s.drawer.Bounds(), s.img, image.Point{}); err != nil {
		return err
	}
	fmt.Printf("\n")
	return nil
}

func (s *Screen) Close() error {
	return s.drawer.Halt()
}
