// This file is part of Dawstream.
//
// Dawstream is free software: you can redistribute it and/or modify
// it under the terms of the GNU General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// Dawstream is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
// GNU General Public License for more details.
//
// You should have received a copy of the GNU General Public License
// along with Dawstream.  If not, see <https://www.gnu.org/licenses/>.

package packet

import (
	"encoding/binary"
	"fmt"

	"github.com/dawstream/dawstream/curated"
)

// Kind discriminates between the two types of packet.
type Kind byte

// List of valid Kind values. The values are the tag bytes of the encoding.
const (
	End  Kind = 0x00
	Data Kind = 0x01
)

func (k Kind) String() string {
	switch k {
	case End:
		return "end"
	case Data:
		return "data"
	}
	return fmt.Sprintf("kind (%#02x)", byte(k))
}

// MaxResidual is the largest number of samples that can be carried by an End
// packet.
const MaxResidual = 0xffff

// Packet is one unit of the wire format.
type Packet struct {
	Kind Kind

	// the number of samples in each channel of an End packet. always zero for
	// a Data packet
	Length uint16

	// channel data for a Data packet, or an End packet with a non-zero length
	Channels ChannelData
}

// NewData is the preferred method of initialisation for a Data packet.
func NewData(c ChannelData) Packet {
	return Packet{Kind: Data, Channels: c}
}

// NewEnd is the preferred method of initialisation for an End packet. The
// length of the packet is the length of the channel data. Channel data longer
// than MaxResidual samples is truncated to MaxResidual. If the channel data is
// empty then the packet carries no channel data.
func NewEnd(c ChannelData) Packet {
	n := min(c.Len(), MaxResidual)
	if n == 0 {
		return Packet{Kind: End}
	}
	return Packet{Kind: End, Length: uint16(n), Channels: c.truncate(n)}
}

// HasChannels returns true if the packet carries channel data.
func (p Packet) HasChannels() bool {
	return p.Kind == Data || p.Length > 0
}

// Equal returns true if both packets are the same kind and carry the same
// data.
func (p Packet) Equal(q Packet) bool {
	if p.Kind != q.Kind || p.Length != q.Length {
		return false
	}
	if !p.HasChannels() {
		return true
	}
	return p.Channels.Equal(q.Channels)
}

func (p Packet) String() string {
	switch p.Kind {
	case End:
		return fmt.Sprintf("end (%d samples)", p.Length)
	default:
		return fmt.Sprintf("%s (%d samples)", p.Kind, p.Channels.Len())
	}
}

// AppendPacket appends the encoding of the packet to the byte slice and
// returns the extended slice.
func AppendPacket(b []byte, p Packet) []byte {
	b = append(b, byte(p.Kind))
	if p.Kind == End {
		b = binary.LittleEndian.AppendUint16(b, p.Length)
		if p.Length == 0 {
			return b
		}
	}
	return AppendChannelData(b, p.Channels)
}

// Encode returns the encoding of the packet in a new byte slice.
func Encode(p Packet) []byte {
	sz := 1 + 2 + 1 + p.Channels.Len()*sampleSize*2
	return AppendPacket(make([]byte, 0, sz), p)
}

// Decode a packet. The chunkSize argument is the number of samples in each
// channel of a Data packet.
func Decode(b []byte, chunkSize int) (Packet, error) {
	if len(b) == 0 {
		return Packet{}, curated.Errorf(MissingTag)
	}

	var p Packet
	var err error

	switch Kind(b[0]) {
	case Data:
		p.Kind = Data
		p.Channels, b, err = decodeChannelData(b[1:], chunkSize)
		if err != nil {
			return Packet{}, err
		}
	case End:
		p.Kind = End
		if len(b) < 3 {
			return Packet{}, curated.Errorf(TruncatedLength)
		}
		p.Length = binary.LittleEndian.Uint16(b[1:])
		b = b[3:]
		if p.Length > 0 {
			p.Channels, b, err = decodeChannelData(b, int(p.Length))
			if err != nil {
				return Packet{}, err
			}
		}
	default:
		return Packet{}, curated.Errorf(UnknownPacketTag, b[0])
	}

	if len(b) > 0 {
		return Packet{}, curated.Errorf(TrailingBytes, len(b))
	}

	return p, nil
}
