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

package server

import (
	"context"
	"time"

	"github.com/dawstream/dawstream/logger"
	"github.com/dawstream/dawstream/streamer"
	"github.com/dawstream/dawstream/track"
	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
)

// time allowed for a control message to be written
const controlTimeout = time.Second

// MaxPayloadSize is the largest message, in bytes, accepted from a websocket
// client. A larger message closes the connection.
const MaxPayloadSize = 1 << 20

// socket implements the streamer.Sender interface for a websocket
// connection.
type socket struct {
	conn *websocket.Conn
}

// Send implements the streamer.Sender interface. The message is written as a
// single binary message. The deadline of the context, if there is one, is
// used as the write deadline.
func (s socket) Send(ctx context.Context, msg []byte) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	deadline, _ := ctx.Deadline()
	if err := s.conn.SetWriteDeadline(deadline); err != nil {
		return err
	}
	return s.conn.WriteMessage(websocket.BinaryMessage, msg)
}

// upgrade the request to a websocket connection and stream tracks until the
// connection is closed
func (srv *Server) stream(c *gin.Context) {
	conn, err := srv.upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		// the upgrader has already replied to the client
		logger.Logf(logger.Allow, logTag, "websocket: %v", err)
		return
	}
	defer conn.Close()

	who := conn.RemoteAddr().String()
	logger.Logf(logger.Allow, logTag, "websocket: %s connected (%s)", who, c.Request.UserAgent())

	ctx := c.Request.Context()

	// reads block without regard to the context so the connection is closed
	// to end the read loop
	stop := context.AfterFunc(ctx, func() {
		conn.Close()
	})
	defer stop()

	conn.SetReadLimit(MaxPayloadSize)

	conn.SetPingHandler(func(data string) error {
		logger.Logf(logger.Allow, logTag, "websocket: %s sent ping with %q", who, data)
		err := conn.WriteControl(websocket.PongMessage, []byte(data), time.Now().Add(controlTimeout))
		if err == websocket.ErrCloseSent {
			return nil
		}
		return err
	})

	conn.SetPongHandler(func(data string) error {
		logger.Logf(logger.Allow, logTag, "websocket: %s sent pong with %q", who, data)
		return nil
	})

	for {
		mt, data, err := conn.ReadMessage()
		if err != nil {
			if ce, ok := err.(*websocket.CloseError); ok {
				logger.Logf(logger.Allow, logTag, "websocket: %s sent close with code %d and reason %q", who, ce.Code, ce.Text)
			} else {
				logger.Logf(logger.Allow, logTag, "websocket: %s disconnected: %v", who, err)
			}
			return
		}

		switch mt {
		case websocket.TextMessage:
			if !srv.render(ctx, conn, who, data) {
				return
			}
		case websocket.BinaryMessage:
			logger.Logf(logger.Allow, logTag, "websocket: %s sent %d bytes", who, len(data))
		}
	}
}

// render the track document and stream it to the connection. returns false
// if the connection should be closed
func (srv *Server) render(ctx context.Context, conn *websocket.Conn, who string, data []byte) bool {
	p, err := track.DecodeWithTempo(data, srv.cfg.DefaultTempo)
	if err != nil {
		logger.Logf(logger.Allow, logTag, "websocket: %s sent invalid payload: %v", who, err)
		msg := websocket.FormatCloseMessage(websocket.CloseInvalidFramePayloadData, "invalid payload")
		_ = conn.WriteControl(websocket.CloseMessage, msg, time.Now().Add(controlTimeout))
		return false
	}

	stats, err := streamer.Stream(ctx, p.MusicBox(), socket{conn: conn})
	if err != nil {
		logger.Logf(logger.Allow, logTag, "websocket: %s: %v", who, err)
		return false
	}

	logger.Logf(logger.Allow, logTag, "websocket: %s: %s", who, stats)

	return true
}
