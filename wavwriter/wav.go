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

// Package wavwriter allows writing of a packet stream to disk as a WAV file.
// Note that audio data is buffered in memory in its entirety, and written to
// disk when the writer is closed.
package wavwriter

import (
	"context"
	"math"
	"os"

	"github.com/dawstream/dawstream/curated"
	"github.com/dawstream/dawstream/logger"
	"github.com/dawstream/dawstream/packet"
	"github.com/dawstream/dawstream/sound"
	"github.com/dawstream/dawstream/streamer"
	"github.com/go-audio/audio"
	"github.com/go-audio/wav"
)

// WavWriterError is the pattern for all errors returned by the package.
const WavWriterError = "wavwriter: %v"

// the file is always 16 bit PCM
const (
	bitDepth    = 16
	pcmFormat   = 1
	numChannels = 1
)

// WavWriter implements the streamer.Sender interface.
type WavWriter struct {
	filename string
	buffer   []int
	ended    bool
}

// New is the preferred method of initialisation for the WavWriter type.
func New(filename string) (*WavWriter, error) {
	if filename == "" {
		return nil, curated.Errorf(WavWriterError, "no filename specified")
	}

	aw := &WavWriter{
		filename: filename,
		buffer:   make([]int, 0, streamer.ChunkSize),
	}

	return aw, nil
}

// quantise a sample to the 16 bit range. samples outside of the -1 to +1
// range are clamped
func quantise(v float32) int {
	v = min(max(v, -1), 1)
	return int(math.Round(float64(v) * math.MaxInt16))
}

// Send implements the streamer.Sender interface. Only the left channel of
// stereo data is kept.
func (aw *WavWriter) Send(_ context.Context, msg []byte) error {
	if aw.ended {
		return curated.Errorf(WavWriterError, "packet after end of stream")
	}

	p, err := packet.Decode(msg, streamer.ChunkSize)
	if err != nil {
		return curated.Errorf(WavWriterError, err)
	}

	if p.HasChannels() {
		for _, v := range p.Channels.Left {
			aw.buffer = append(aw.buffer, quantise(v))
		}
	}

	aw.ended = p.Kind == packet.End

	return nil
}

// NumSamples returns the number of samples received so far.
func (aw *WavWriter) NumSamples() int {
	return len(aw.buffer)
}

// Close writes the buffered audio to disk. The file is written even if the
// End packet has not been received.
func (aw *WavWriter) Close() (rerr error) {
	f, err := os.Create(aw.filename)
	if err != nil {
		return curated.Errorf(WavWriterError, err)
	}
	defer func() {
		err := f.Close()
		if err != nil && rerr == nil {
			rerr = curated.Errorf(WavWriterError, err)
		}
	}()

	enc := wav.NewEncoder(f, sound.SampleRate, bitDepth, numChannels, pcmFormat)

	if !aw.ended {
		logger.Logf(logger.Allow, "wavwriter", "stream incomplete when writing %s", aw.filename)
	}
	logger.Logf(logger.Allow, "wavwriter", "writing %d samples to %s", len(aw.buffer), aw.filename)

	buf := &audio.IntBuffer{
		Data:           aw.buffer,
		Format:         &audio.Format{SampleRate: sound.SampleRate, NumChannels: numChannels},
		SourceBitDepth: bitDepth,
	}

	err = enc.Write(buf)
	if err != nil {
		return curated.Errorf(WavWriterError, err)
	}

	// the encoder must be closed to finalise the header
	err = enc.Close()
	if err != nil {
		return curated.Errorf(WavWriterError, err)
	}

	return nil
}
