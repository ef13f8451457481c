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

// Package streamer drives a music box and sends the output as packets. The
// Stream() function pulls fixed size chunks of samples, encodes each chunk as
// a packet and passes the packet to a Sender.
//
// Full chunks are sent as Data packets. The first chunk that is not full is
// sent as an End packet and the stream is complete. The chunk size is
// independent of the tempo of the music.
//
// Implementations of Sender include the websocket connection in the server
// package, the wavwriter and sdlaudio packages, and the Collector type in this
// package.
package streamer
