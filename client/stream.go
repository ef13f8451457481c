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

package client

import (
	"context"
	"time"

	"github.com/dawstream/dawstream/curated"
	"github.com/dawstream/dawstream/logger"
	"github.com/dawstream/dawstream/packet"
	"github.com/dawstream/dawstream/streamer"
	"github.com/dawstream/dawstream/track"
	"github.com/gorilla/websocket"
)

const streamEndpoint = "/ws"

// Stream renders the track on the server. Each packet received is passed to
// the sender until the End packet has been received.
func (cl *Client) Stream(ctx context.Context, p track.Payload, sender streamer.Sender) (streamer.Stats, error) {
	var stats streamer.Stats

	data, err := p.Encode()
	if err != nil {
		return stats, curated.Errorf(ClientError, err)
	}

	u := cl.server.JoinPath(streamEndpoint)
	switch u.Scheme {
	case "https":
		u.Scheme = "wss"
	default:
		u.Scheme = "ws"
	}

	conn, resp, err := websocket.DefaultDialer.DialContext(ctx, u.String(), nil)
	if resp != nil && resp.Body != nil {
		resp.Body.Close()
	}
	if err != nil {
		return stats, curated.Errorf(ClientError, err)
	}
	defer conn.Close()

	// reads block without regard to the context
	stop := context.AfterFunc(ctx, func() {
		conn.Close()
	})
	defer stop()

	err = conn.WriteMessage(websocket.TextMessage, data)
	if err != nil {
		return stats, curated.Errorf(ClientError, err)
	}

	for !stats.Complete {
		mt, msg, err := conn.ReadMessage()
		if err != nil {
			if ctx.Err() != nil {
				return stats, curated.Errorf(streamer.Cancelled, ctx.Err())
			}
			return stats, curated.Errorf(ClientError, err)
		}

		if mt != websocket.BinaryMessage {
			continue
		}

		pkt, err := packet.Decode(msg, streamer.ChunkSize)
		if err != nil {
			return stats, curated.Errorf(ClientError, err)
		}

		err = sender.Send(ctx, msg)
		if err != nil {
			return stats, curated.Errorf(streamer.SendFailed, err)
		}

		switch pkt.Kind {
		case packet.Data:
			stats.DataPackets++
			stats.Samples += pkt.Channels.Len()
		case packet.End:
			stats.Residual = int(pkt.Length)
			stats.Samples += int(pkt.Length)
			stats.Complete = true
		}
	}

	// the server waits for further tracks so the connection is closed
	// explicitly
	msg := websocket.FormatCloseMessage(websocket.CloseNormalClosure, "")
	_ = conn.WriteControl(websocket.CloseMessage, msg, time.Now().Add(time.Second))

	logger.Logf(logger.Allow, "client", "received %s from %s", stats, cl.server)

	return stats, nil
}
