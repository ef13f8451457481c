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

// Package packet is the wire format of the sample stream. A stream is a
// sequence of Data packets followed by exactly one End packet.
//
// A Data packet is the tag byte 0x01 followed by channel data. An End packet
// is the tag byte 0x00, followed by the number of samples in the final
// partial chunk as a 16 bit little-endian value, followed by channel data only
// if that number is not zero.
//
// Channel data is either Mono, the tag byte 0x01 followed by N samples, or
// Stereo, the tag byte 0x02 followed by N samples for the left channel and
// then N samples for the right channel. Samples are 32 bit little-endian IEEE
// 754 floating point values.
//
// The number of samples N is not part of the encoding. For a Data packet it
// is the chunk size agreed by both ends of the stream. For an End packet it is
// the length field.
//
// Errors returned by the decoding functions are curated errors. The patterns
// are exported so callers can test for them with curated.Is().
package packet
