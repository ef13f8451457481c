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

package reference

import (
	"io"
	"math"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/dawstream/dawstream/curated"
	"github.com/dawstream/dawstream/logger"
	"github.com/go-audio/wav"
	"github.com/hajimehoshi/go-mp3"
)

// List of error patterns returned by the package.
const (
	ReferenceError    = "reference: %v"
	UnsupportedFormat = "reference: unsupported file type: %s"
	InvalidFile       = "reference: not a valid %s file"
)

const logTag = "reference"

// Recording is mono PCM data.
type Recording struct {
	SampleRate int
	Data       []float32
}

// Duration of the recording.
func (rec Recording) Duration() time.Duration {
	if rec.SampleRate <= 0 {
		return 0
	}
	return time.Duration(len(rec.Data)) * time.Second / time.Duration(rec.SampleRate)
}

// Resample returns a copy of the recording at a different sample rate, using
// linear interpolation. The recording is returned unchanged if the rates
// already match.
func (rec Recording) Resample(rate int) Recording {
	if rate == rec.SampleRate || rate <= 0 || rec.SampleRate <= 0 || len(rec.Data) == 0 {
		return rec
	}

	ratio := float64(rec.SampleRate) / float64(rate)
	n := int(float64(len(rec.Data)) / ratio)

	out := Recording{
		SampleRate: rate,
		Data:       make([]float32, n),
	}

	last := len(rec.Data) - 1
	for i := range out.Data {
		p := float64(i) * ratio
		j := int(p)
		if j >= last {
			out.Data[i] = rec.Data[last]
			continue
		}
		f := float32(p - float64(j))
		out.Data[i] = rec.Data[j] + (rec.Data[j+1]-rec.Data[j])*f
	}

	return out
}

// Load a recording from the named file. The file type is decided by the
// filename extension.
func Load(filename string) (Recording, error) {
	f, err := os.Open(filename)
	if err != nil {
		return Recording{}, curated.Errorf(ReferenceError, err)
	}
	defer f.Close()

	var rec Recording

	ext := strings.ToLower(filepath.Ext(filename))
	switch ext {
	case ".wav":
		rec, err = LoadWAV(f)
	case ".mp3":
		rec, err = LoadMP3(f)
	default:
		return Recording{}, curated.Errorf(UnsupportedFormat, ext)
	}
	if err != nil {
		return Recording{}, err
	}

	logger.Logf(logger.Allow, logTag, "%s: sample rate: %dHz", filepath.Base(filename), rec.SampleRate)
	logger.Logf(logger.Allow, logTag, "%s: total time: %.02fs", filepath.Base(filename), rec.Duration().Seconds())

	return rec, nil
}

// LoadWAV reads the entirety of a WAV file.
func LoadWAV(r io.ReadSeeker) (Recording, error) {
	dec := wav.NewDecoder(r)
	if dec == nil || !dec.IsValidFile() {
		return Recording{}, curated.Errorf(InvalidFile, "wav")
	}

	// load all data at once
	buf, err := dec.FullPCMBuffer()
	if err != nil {
		return Recording{}, curated.Errorf(ReferenceError, err)
	}

	numChans := int(dec.NumChans)
	if numChans < 1 {
		return Recording{}, curated.Errorf(InvalidFile, "wav")
	}

	// AsFloat32Buffer() scales integer samples by the bit depth of the source
	floatBuf := buf.AsFloat32Buffer()

	rec := Recording{
		SampleRate: int(dec.SampleRate),
		Data:       make([]float32, 0, len(floatBuf.Data)/numChans),
	}

	// first channel only
	for i := 0; i < len(floatBuf.Data); i += numChans {
		rec.Data = append(rec.Data, floatBuf.Data[i])
	}

	return rec, nil
}

// LoadMP3 reads the entirety of an MP3 stream.
func LoadMP3(r io.Reader) (Recording, error) {
	dec, err := mp3.NewDecoder(r)
	if err != nil {
		return Recording{}, curated.Errorf(ReferenceError, err)
	}

	rec := Recording{
		SampleRate: dec.SampleRate(),
	}

	// the decoded stream is always 16bit little endian with two channels, even
	// if the source is single channel. a sample frame is therefore four bytes
	// long and the left channel is the first two bytes
	const frameLen = 4

	chunk := make([]byte, 4096)
	var pending []byte

	for {
		n, err := dec.Read(chunk)
		if n > 0 {
			pending = append(pending, chunk[:n]...)
			i := 0
			for ; i+frameLen <= len(pending); i += frameLen {
				v := int16(uint16(pending[i]) | uint16(pending[i+1])<<8)
				rec.Data = append(rec.Data, float32(v)/-math.MinInt16)
			}
			pending = pending[i:]
		}
		if err == io.EOF {
			break
		}
		if err != nil {
			return Recording{}, curated.Errorf(ReferenceError, err)
		}
	}

	return rec, nil
}
