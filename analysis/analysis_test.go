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

package analysis_test

import (
	"math"
	"testing"

	"github.com/dawstream/dawstream/analysis"
	"github.com/dawstream/dawstream/curated"
	"github.com/dawstream/dawstream/pitch"
	"github.com/dawstream/dawstream/sound"
	"github.com/dawstream/dawstream/test"
	"github.com/dawstream/dawstream/track"
)

func render(t *testing.T, doc string) []float32 {
	t.Helper()
	p, err := track.Decode([]byte(doc))
	test.DemandSuccess(t, err)

	mb := p.MusicBox()
	var samples []float32
	for {
		v, ok := mb.NextSample()
		if !ok {
			break
		}
		samples = append(samples, v)
	}
	return samples
}

func TestRMS(t *testing.T) {
	test.ExpectEquality(t, analysis.RMS(nil), 0)
	test.ExpectWithin(t, analysis.RMS([]float32{0.5, -0.5, 0.5, -0.5}), 0.5, 0.000001)

	// the RMS of a full cycle of a sine wave is 1/√2
	s := make([]float32, 1000)
	for i := range s {
		s[i] = float32(math.Sin(2 * math.Pi * float64(i) / float64(len(s))))
	}
	test.ExpectWithin(t, analysis.RMS(s), 1/math.Sqrt2, 0.0001)
}

func TestRMSDifference(t *testing.T) {
	a := []float32{1, 1, 1, 1}
	test.ExpectEquality(t, analysis.RMSDifference(a, a), 0)
	test.ExpectEquality(t, analysis.RMSDifference(nil, nil), 0)

	// missing samples are treated as silence
	test.ExpectWithin(t, analysis.RMSDifference(a, a[:2]), math.Sqrt(0.5), 0.000001)
	test.ExpectWithin(t, analysis.RMSDifference(a[:2], a), math.Sqrt(0.5), 0.000001)
}

func TestPeakOfSine(t *testing.T) {
	s := make([]float32, sound.SampleRate)
	for i := range s {
		s[i] = float32(math.Sin(2 * math.Pi * 1000 * float64(i) / sound.SampleRate))
	}

	f, err := analysis.PeakFrequency(s, sound.SampleRate, analysis.DefaultWindow)
	test.DemandSuccess(t, err)
	test.ExpectApproximate(t, f, 1000, 0.005)
}

func TestPeakOfRenderedTrack(t *testing.T) {
	a4, ok := pitch.Lookup("A4")
	test.DemandSuccess(t, ok)

	s := render(t, `{"tempo": 60, "instruments": [{"name": "sawtooth", "gain": 0, "notes": {"0": ["A4"]}}]}`)
	test.DemandEquality(t, len(s), sound.SampleRate)

	f, err := analysis.PeakFrequency(s, sound.SampleRate, analysis.DefaultWindow)
	test.DemandSuccess(t, err)
	test.ExpectApproximate(t, f, float64(a4.Frequency()), 0.01)
}

func TestShortBuffer(t *testing.T) {
	_, err := analysis.PeakFrequency(make([]float32, 10), sound.SampleRate, analysis.DefaultWindow)
	test.ExpectSuccess(t, curated.Is(err, analysis.TooShort))

	// a short buffer uses a smaller window
	s := make([]float32, 300)
	for i := range s {
		s[i] = float32(math.Sin(2 * math.Pi * 8 * float64(i) / 256))
	}
	f, err := analysis.PeakFrequency(s, 256, analysis.DefaultWindow)
	test.DemandSuccess(t, err)
	test.ExpectApproximate(t, f, 8, 0.05)
}

func TestCompare(t *testing.T) {
	s := render(t, `{"tempo": 120, "instruments": [{"name": "square", "gain": 0, "notes": {"0": ["C4"], "1": ["C4"]}}]}`)

	r, err := analysis.Compare(s, s, sound.SampleRate)
	test.DemandSuccess(t, err)
	test.ExpectEquality(t, r.RMSDifference, 0)
	test.ExpectEquality(t, r.Peak, r.ReferencePeak)
	test.ExpectEquality(t, r.Samples, r.ReferenceSamples)
	test.ExpectEquality(t, r.RMS, r.ReferenceRMS)

	_, err = analysis.Compare(s, nil, sound.SampleRate)
	test.ExpectFailure(t, err)
}
