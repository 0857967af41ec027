package sacn

import (
	"fmt"
	"net"
	"strconv"

	"github.com/google/uuid"
)

// Options tune a Transmitter. Zero values get sensible defaults.
type Options struct {
	SourceName string
	Priority   uint8
	Preview    bool
	CID        [16]byte // zero means generate one
}

// Transmitter sends E1.31 data frames for a single universe to a fixed
// destination. It owns the UDP socket and the persistent packet; the packet's
// DMX region is exposed through Data so callers mutate exactly the bytes that
// go on the wire.
type Transmitter struct {
	conn *net.UDPConn
	pkt  *packet
	seq  uint8
}

// NewTransmitter dials addr and builds the packet header once. An empty addr
// selects the universe's standard multicast group. A missing port defaults to
// the E1.31 port.
func NewTransmitter(addr string, universe uint16, channels int, o Options) (*Transmitter, error) {
	if o.SourceName == "" {
		o.SourceName = "glimmer"
	}
	if o.CID == ([16]byte{}) {
		o.CID = uuid.New()
	}

	if addr == "" {
		addr = multicastGroup(universe)
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

	pkt, err := newPacket(o.CID, o.SourceName, universe, channels, o.Priority, o.Preview)
	if err != nil {
		_ = conn.Close()
		return nil, err
	}
	return &Transmitter{conn: conn, pkt: pkt}, nil
}

// Data returns the DMX channel region of the outgoing packet.
func (t *Transmitter) Data() []byte { return t.pkt.data() }

// Write stamps the next sequence number and transmits the packet. frame must
// be the slice returned by Data (or an equal-length copy, which is then
// copied in).
func (t *Transmitter) Write(frame []byte) error {
	data := t.pkt.data()
	if len(frame) != len(data) {
		return fmt.Errorf("frame length %d does not match universe size %d", len(frame), len(data))
	}
	if &frame[0] != &data[0] {
		copy(data, frame)
	}
	t.pkt.setSequence(t.seq)
	t.seq++
	if _, err := t.conn.Write(t.pkt.buf); err != nil {
		return fmt.Errorf("sacn send: %w", err)
	}
	return nil
}

func (t *Transmitter) Close() error { return t.conn.Close() }

// multicastGroup returns the standard E1.31 multicast address
// 239.255.hi.lo for a universe.
func multicastGroup(universe uint16) string {
	return fmt.Sprintf("239.255.%d.%d:%d", universe>>8, universe&0xff, Port)
}
