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

// List of error patterns returned by the decoding functions.
const (
	MissingTag        = "packet: missing tag byte"
	UnknownPacketTag  = "packet: unrecognised packet tag (%#02x)"
	UnknownChannelTag = "packet: unrecognised channel tag (%#02x)"
	TruncatedLength   = "packet: truncated length field"
	MissingChannel    = "packet: missing %s channel data"
	TruncatedChannel  = "packet: truncated %s channel data (%d of %d bytes)"
	TrailingBytes     = "packet: %d unexpected trailing bytes"
	InvalidCount      = "packet: invalid sample count (%d)"
)
