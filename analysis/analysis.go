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

package analysis

import (
	"fmt"
	"math"
	"math/cmplx"

	"github.com/dawstream/dawstream/curated"
	"github.com/ktye/fft"
)

// DefaultWindow is the largest number of samples used to find the dominant
// frequency of a buffer.
const DefaultWindow = 8192

// smallest window that will be used for a short buffer
const minWindow = 64

// List of error patterns returned by the package.
const (
	AnalysisError = "analysis: %v"
	TooShort      = "analysis: buffer too short (%d samples)"
)

// RMS of the samples in the buffer. An empty buffer has an RMS of zero.
func RMS(samples []float32) float64 {
	if len(samples) == 0 {
		return 0
	}
	var sum float64
	for _, v := range samples {
		sum += float64(v) * float64(v)
	}
	return math.Sqrt(sum / float64(len(samples)))
}

// RMSDifference is the RMS of the sample by sample difference between two
// buffers. The shorter buffer is treated as if it were padded with silence.
func RMSDifference(a []float32, b []float32) float64 {
	n := max(len(a), len(b))
	if n == 0 {
		return 0
	}

	var sum float64
	for i := range n {
		var d float64
		if i < len(a) {
			d = float64(a[i])
		}
		if i < len(b) {
			d -= float64(b[i])
		}
		sum += d * d
	}
	return math.Sqrt(sum / float64(n))
}

// window size for a buffer of length n. always a power of two
func windowSize(n int, largest int) int {
	size := minWindow
	for size*2 <= n && size*2 <= largest {
		size *= 2
	}
	return size
}

// PeakFrequency returns the frequency with the most energy in the buffer. The
// measurement is made over a window taken from the middle of the buffer. The
// window will be no larger than the window argument and will be shortened
// for short buffers.
func PeakFrequency(samples []float32, sampleRate int, window int) (float64, error) {
	if len(samples) < minWindow {
		return 0, curated.Errorf(TooShort, len(samples))
	}

	size := windowSize(len(samples), max(window, minWindow))

	f, err := fft.New(size)
	if err != nil {
		return 0, curated.Errorf(AnalysisError, err)
	}

	// hann window applied to the middle of the buffer
	start := (len(samples) - size) / 2
	buf := make([]complex128, size)
	for i := range buf {
		env := (1 - math.Cos(2*math.Pi*float64(i)/float64(size))) / 2
		buf[i] = complex(float64(samples[start+i])*env, 0)
	}

	buf = f.Transform(buf)

	// magnitudes of the bins up to the nyquist frequency. the DC bin is
	// ignored
	mag := make([]float64, size/2)
	peak := 1
	for i := 1; i < len(mag); i++ {
		mag[i] = cmplx.Abs(buf[i])
		if mag[i] > mag[peak] {
			peak = i
		}
	}

	// parabolic interpolation of the peak between neighbouring bins
	bin := float64(peak)
	if peak > 1 && peak < len(mag)-1 {
		l, c, r := mag[peak-1], mag[peak], mag[peak+1]
		d := l - 2*c + r
		if d != 0 {
			bin += 0.5 * (l - r) / d
		}
	}

	return bin * float64(sampleRate) / float64(size), nil
}

// Report is the result of comparing two buffers.
type Report struct {
	Samples          int
	ReferenceSamples int

	RMS           float64
	ReferenceRMS  float64
	RMSDifference float64

	Peak          float64
	ReferencePeak float64
}

func (r Report) String() string {
	return fmt.Sprintf("samples: %d/%d, rms: %.4f/%.4f (diff %.4f), peak: %.2fHz/%.2fHz",
		r.Samples, r.ReferenceSamples,
		r.RMS, r.ReferenceRMS, r.RMSDifference,
		r.Peak, r.ReferencePeak)
}

// Compare a buffer with a reference buffer. Both buffers must be at the
// sample rate given.
func Compare(samples []float32, reference []float32, sampleRate int) (Report, error) {
	r := Report{
		Samples:          len(samples),
		ReferenceSamples: len(reference),
		RMS:              RMS(samples),
		ReferenceRMS:     RMS(reference),
		RMSDifference:    RMSDifference(samples, reference),
	}

	var err error

	r.Peak, err = PeakFrequency(samples, sampleRate, DefaultWindow)
	if err != nil {
		return r, err
	}

	r.ReferencePeak, err = PeakFrequency(reference, sampleRate, DefaultWindow)
	if err != nil {
		return r, err
	}

	return r, nil
}
