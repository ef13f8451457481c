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
	"fmt"

	"github.com/dawstream/dawstream/curated"
	"github.com/dawstream/dawstream/logger"
	"github.com/dawstream/dawstream/packet"
	"github.com/dawstream/dawstream/sound"
)

// ChunkSize is the number of samples in every Data packet.
const ChunkSize = sound.SampleRate

// List of error patterns returned by Stream().
const (
	SendFailed = "streamer: send failed: %v"
	Cancelled  = "streamer: cancelled: %v"
)

// Sender is implemented by anything that can deliver an encoded packet. The
// msg slice is reused by the caller once Send() returns so implementations
// must copy it if it is to be kept.
type Sender interface {
	Send(ctx context.Context, msg []byte) error
}

// Source is implemented by musicbox.MusicBox.
type Source interface {
	Chunk(size int) ([]float32, bool)
}

// Stats summarises a stream.
type Stats struct {
	// number of full chunks sent
	DataPackets int

	// number of samples in the End packet
	Residual int

	// total number of samples sent
	Samples int

	// true if the End packet was sent
	Complete bool
}

func (s Stats) String() string {
	if !s.Complete {
		return "incomplete stream"
	}
	return fmt.Sprintf("%d samples (%d data packets, %d residual)", s.Samples, s.DataPackets, s.Residual)
}

// Stream pulls chunks from the source and sends them as packets until the
// source is exhausted. A send error or a cancelled context ends the stream
// immediately. Packets are never resent.
func Stream(ctx context.Context, src Source, sender Sender) (Stats, error) {
	var stats Stats

	// the buffer is large enough for any Data packet and is reused for every
	// packet
	buf := make([]byte, 0, 2+ChunkSize*4)

	for {
		if err := ctx.Err(); err != nil {
			logger.Logf(logger.Allow, "streamer", "cancelled after %d samples", stats.Samples)
			return stats, curated.Errorf(Cancelled, err)
		}

		chunk, full := src.Chunk(ChunkSize)

		var p packet.Packet
		if full {
			p = packet.NewData(packet.Mono(chunk))
		} else {
			p = packet.NewEnd(packet.Mono(chunk))
		}

		buf = packet.AppendPacket(buf[:0], p)
		if err := sender.Send(ctx, buf); err != nil {
			logger.Logf(logger.Allow, "streamer", "send failed after %d samples: %v", stats.Samples, err)
			return stats, curated.Errorf(SendFailed, err)
		}

		stats.Samples += len(chunk)
		if !full {
			stats.Residual = len(chunk)
			stats.Complete = true
			logger.Logf(logger.Allow, "streamer", "stream complete: %s", stats)
			return stats, nil
		}
		stats.DataPackets++
	}
}
