// Package artnet transmits ArtDMX frames over UDP to a fixed node address.
// Packets are built with the go-artnet codec; no node discovery runs.
package artnet

import (
	"fmt"
	"net"
	"strconv"

	"github.com/Haba1234/go-artnet/packet"
)

// Port is the registered Art-Net UDP port.
const Port = 6454

const maxChannels = 512

// Sender streams one universe of DMX data as ArtDMX packets. The Art-Net
// packet carries a fixed 512-byte array, so each send copies the frame into
// the packet before marshalling.
type Sender struct {
	conn     *net.UDPConn
	net      uint8
	subUni   uint8
	channels int
	seq      uint8
}

// NewSender dials the node at addr for the given universe. The universe's
// high byte is the Art-Net net, the low byte the sub+universe.
func NewSender(addr string, universe uint16, channels int) (*Sender, error) {
	if channels < 1 || channels > maxChannels {
		return nil, fmt.Errorf("channel count %d outside 1..%d", channels, maxChannels)
	}
	if _, _, err := net.SplitHostPort(addr); err != nil {
		addr = net.JoinHostPort(addr, strconv.Itoa(Port))
	}
	dst, err := net.ResolveUDPAddr("udp", addr)
	if err != nil {
		return nil, fmt.Errorf("resolve %q: %w", addr, err)
	}
	conn, err := net.DialUDP("udp", nil, dst)
	if err != nil {
		return nil, fmt.Errorf("dial %q: %w", addr, err)
	}
	return &Sender{
		conn:     conn,
		net:      uint8(universe >> 8),
		subUni:   uint8(universe),
		channels: channels,
	}, nil
}

func (s *Sender) Write(frame []byte) error {
	if len(frame) != s.channels {
		return fmt.Errorf("frame length %d does not match universe size %d", len(frame), s.channels)
	}
	p := &packet.ArtDMXPacket{
		Sequence: s.seq,
		Net:      s.net,
		SubUni:   s.subUni,
		Length:   uint16(s.channels),
	}
	copy(p.Data[:], frame)
	s.seq++
	b, err := p.MarshalBinary()
	if err != nil {
		return fmt.Errorf("artnet marshal: %w", err)
	}
	if _, err := s.conn.Write(b); err != nil {
		return fmt.Errorf("artnet send: %w", err)
	}
	return nil
}

func (s *Sender) Close() error { return s.conn.Close() }
