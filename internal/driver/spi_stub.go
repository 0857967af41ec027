//go:build !linux

package driver

import "fmt"

type SPI struct{}

func NewSPI(dev string, channels int) (*SPI, error) {
	return nil, fmt.Errorf("spi driver not supported on this platform")
}

func (s *SPI) Write(frame []byte) error {
	return fmt.Errorf("spi driver not supported on this platform")
}

func (s *SPI) Close() error { return nil }
