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

// Package server is the HTTP front end. It offers two services:
//
//	/ws      a websocket that streams rendered tracks
//	/tracks  saving and restoring of the default track
//
// A client opens the websocket and sends a track document as a text message.
// The track is rendered and sent back as a series of binary messages, each
// one a packet as defined by the packet package. The connection remains open
// and more tracks can be sent. A malformed track document closes the
// connection.
//
// Each websocket connection renders its own tracks and nothing is shared
// between connections, apart from the track store.
//
// Requests to any other path are served from the assets directory, if one is
// configured.
package server
