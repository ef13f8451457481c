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

package streamer

import (
	"context"
	"sync"

	"github.com/dawstream/dawstream/packet"
)

// Collector is a Sender that decodes and keeps every packet it is sent.
type Collector struct {
	crit    sync.Mutex
	packets []packet.Packet
}

// NewCollector is the preferred method of initialisation for the Collector
// type.
func NewCollector() *Collector {
	return &Collector{}
}

// Send implements the Sender interface. Returns an error if the message is not
// a valid packet.
func (c *Collector) Send(_ context.Context, msg []byte) error {
	p, err := packet.Decode(msg, ChunkSize)
	if err != nil {
		return err
	}

	c.crit.Lock()
	defer c.crit.Unlock()
	c.packets = append(c.packets, p)

	return nil
}

// Packets returns a copy of the list of packets received.
func (c *Collector) Packets() []packet.Packet {
	c.crit.Lock()
	defer c.crit.Unlock()
	p := make([]packet.Packet, len(c.packets))
	copy(p, c.packets)
	return p
}

// Samples returns the samples of every packet received, in order. Only the
// left channel of a stereo packet is included.
func (c *Collector) Samples() []float32 {
	c.crit.Lock()
	defer c.crit.Unlock()

	var s []float32
	for _, p := range c.packets {
		if p.HasChannels() {
			s = append(s, p.Channels.Left...)
		}
	}
	return s
}

// Ended returns true if an End packet has been received.
func (c *Collector) Ended() bool {
	c.crit.Lock()
	defer c.crit.Unlock()
	for _, p := range c.packets {
		if p.Kind == packet.End {
			return true
		}
	}
	return false
}
