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
	"math"

	"github.com/dawstream/dawstream/curated"
)

// tag bytes for channel data.
const (
	monoTag   = 0x01
	stereoTag = 0x02
)

// the size of an encoded sample in bytes.
const sampleSize = 4

// ChannelData is the sample data carried by a packet. If Stereo is false then
// Right is nil.
type ChannelData struct {
	Stereo bool
	Left   []float32
	Right  []float32
}

// Mono is the preferred method of initialisation for single channel
// ChannelData.
func Mono(samples []float32) ChannelData {
	return ChannelData{Left: samples}
}

// Stereo is the preferred method of initialisation for two channel
// ChannelData. Both channels must be the same length.
func Stereo(left []float32, right []float32) ChannelData {
	return ChannelData{Stereo: true, Left: left, Right: right}
}

// Len returns the number of samples in each channel.
func (c ChannelData) Len() int {
	return len(c.Left)
}

// the first n samples of each channel
func (c ChannelData) truncate(n int) ChannelData {
	if n >= c.Len() {
		return c
	}
	c.Left = c.Left[:n]
	if c.Stereo {
		c.Right = c.Right[:n]
	}
	return c
}

// Equal returns true if both ChannelData instances have the same channel
// layout and the same samples.
func (c ChannelData) Equal(d ChannelData) bool {
	return c.Stereo == d.Stereo && equalSamples(c.Left, d.Left) && equalSamples(c.Right, d.Right)
}

// comparison of the bit patterns rather than the values, so that two NaN
// samples are equal
func equalSamples(a []float32, b []float32) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if math.Float32bits(a[i]) != math.Float32bits(b[i]) {
			return false
		}
	}
	return true
}

func appendSamples(b []byte, samples []float32) []byte {
	for _, s := range samples {
		b = binary.LittleEndian.AppendUint32(b, math.Float32bits(s))
	}
	return b
}

// AppendChannelData appends the encoding of the channel data to the byte
// slice and returns the extended slice.
func AppendChannelData(b []byte, c ChannelData) []byte {
	if c.Stereo {
		b = append(b, stereoTag)
		b = appendSamples(b, c.Left)
		return appendSamples(b, c.Right)
	}
	b = append(b, monoTag)
	return appendSamples(b, c.Left)
}

func decodeSamples(b []byte, n int, channel string) ([]float32, []byte, error) {
	if n < 0 {
		return nil, nil, curated.Errorf(InvalidCount, n)
	}

	sz := n * sampleSize
	if len(b) < sz {
		if len(b) == 0 {
			return nil, nil, curated.Errorf(MissingChannel, channel)
		}
		return nil, nil, curated.Errorf(TruncatedChannel, channel, len(b), sz)
	}

	samples := make([]float32, n)
	for i := range samples {
		samples[i] = math.Float32frombits(binary.LittleEndian.Uint32(b[i*sampleSize:]))
	}

	return samples, b[sz:], nil
}

// decodeChannelData decodes n samples per channel and returns the bytes that
// follow the channel data.
func decodeChannelData(b []byte, n int) (ChannelData, []byte, error) {
	if len(b) == 0 {
		return ChannelData{}, nil, curated.Errorf(MissingTag)
	}

	var c ChannelData
	var err error

	switch b[0] {
	case monoTag:
		c.Left, b, err = decodeSamples(b[1:], n, "mono")
		if err != nil {
			return ChannelData{}, nil, err
		}
	case stereoTag:
		c.Stereo = true
		c.Left, b, err = decodeSamples(b[1:], n, "left")
		if err != nil {
			return ChannelData{}, nil, err
		}
		c.Right, b, err = decodeSamples(b, n, "right")
		if err != nil {
			return ChannelData{}, nil, err
		}
	default:
		return ChannelData{}, nil, curated.Errorf(UnknownChannelTag, b[0])
	}

	return c, b, nil
}

// DecodeChannelData decodes channel data with n samples in each channel. The
// data must be exactly the length of the encoding.
func DecodeChannelData(b []byte, n int) (ChannelData, error) {
	c, rest, err := decodeChannelData(b, n)
	if err != nil {
		return ChannelData{}, err
	}
	if len(rest) > 0 {
		return ChannelData{}, curated.Errorf(TrailingBytes, len(rest))
	}
	return c, nil
}
