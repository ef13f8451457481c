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

// Package client talks to a running server. Tracks can be saved to and
// restored from the server's /tracks service, and rendered remotely through
// the /ws websocket.
//
// A remotely rendered stream is passed packet by packet to a
// streamer.Sender, so the destination can be any of the senders used for a
// locally rendered stream: a WAV file, the SDL audio device or a
// streamer.Collector.
package client
