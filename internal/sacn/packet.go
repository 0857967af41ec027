// Package sacn transmits E1.31 (streaming ACN) data packets over UDP. Only
// the sender side is implemented; one Transmitter serves one universe.
package sacn

import (
	"encoding/binary"
	"fmt"
)

// E1.31 wire constants.
const (
	Port        = 5568
	MaxChannels = 512

	headerSize    = 126 // bytes before the DMX data region
	rootVector    = 0x00000004
	framingVector = 0x00000002
	dmpVector     = 0x02

	sourceNameLen = 64
	optPreview    = 0x80 // framing options: preview_data bit

	defaultPriority = 100
)

// acnIdentifier is the fixed packet identifier "ASC-E1.17".
var acnIdentifier = []byte{0x41, 0x53, 0x43, 0x2d, 0x45, 0x31, 0x2e, 0x31, 0x37, 0x00, 0x00, 0x00}

// packet is a persistent E1.31 data packet. The header is written once at
// construction; only the sequence byte changes between sends. The DMX data
// region is exposed for in-place mutation by the owning universe.
type packet struct {
	buf []byte
}

func newPacket(cid [16]byte, source string, universe uint16, channels int, priority uint8, preview bool) (*packet, error) {
	if channels < 1 || channels > MaxChannels {
		return nil, fmt.Errorf("channel count %d outside 1..%d", channels, MaxChannels)
	}
	if priority == 0 {
		priority = defaultPriority
	}

	p := &packet{buf: make([]byte, headerSize+channels)}
	b := p.buf
	total := len(b)

	// Root layer.
	binary.BigEndian.PutUint16(b[0:], 0x0010) // preamble size
	binary.BigEndian.PutUint16(b[2:], 0x0000) // postamble size
	copy(b[4:16], acnIdentifier)
	putFlagsLen(b[16:], total-16)
	binary.BigEndian.PutUint32(b[18:], rootVector)
	copy(b[22:38], cid[:])

	// Framing layer.
	putFlagsLen(b[38:], total-38)
	binary.BigEndian.PutUint32(b[40:], framingVector)
	copy(b[44:44+sourceNameLen], truncName(source))
	b[108] = priority
	binary.BigEndian.PutUint16(b[109:], 0) // sync address: none
	b[111] = 0                             // sequence, set per send
	if preview {
		b[112] = optPreview
	}
	binary.BigEndian.PutUint16(b[113:], universe)

	// DMP layer. Property values are the DMX start code plus channel data.
	putFlagsLen(b[115:], total-115)
	b[117] = dmpVector
	b[118] = 0xa1 // address type & data type
	binary.BigEndian.PutUint16(b[119:], 0)
	binary.BigEndian.PutUint16(b[121:], 1)
	binary.BigEndian.PutUint16(b[123:], uint16(channels+1))
	b[125] = 0x00 // DMX start code

	return p, nil
}

// data is the DMX channel region, aliasing the packet buffer.
func (p *packet) data() []byte { return p.buf[headerSize:] }

func (p *packet) setSequence(seq uint8) { p.buf[111] = seq }

// putFlagsLen writes a flags+length word: 0x7 in the top nibble, the PDU
// length in the low 12 bits.
func putFlagsLen(b []byte, length int) {
	binary.BigEndian.PutUint16(b, 0x7000|uint16(length&0x0fff))
}

// truncName fits a source name into the fixed 64-byte field, always NUL
// terminated.
func truncName(s string) []byte {
	out := make([]byte, sourceNameLen)
	copy(out, s)
	out[sourceNameLen-1] = 0
	return out
}
