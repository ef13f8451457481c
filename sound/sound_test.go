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

package sound_test

import (
	"math"
	"testing"

	"github.com/dawstream/dawstream/sound"
	"github.com/dawstream/dawstream/test"
)

// source is a node that returns a predefined list of samples
type source struct {
	samples []float32
	pos     int
}

func newSource(samples ...float32) *source {
	return &source{samples: samples}
}

func (s *source) NextSample() (float32, bool) {
	if s.pos >= len(s.samples) {
		return 0, false
	}
	s.pos++
	return s.samples[s.pos-1], true
}

func (s *source) Ended() bool {
	return s.pos >= len(s.samples)
}

// drain a node and return every sample it produces
func drain(t *testing.T, n sound.Node) []float32 {
	t.Helper()
	var out []float32
	for {
		v, ok := n.NextSample()
		if !ok {
			break
		}
		out = append(out, v)
		if len(out) > sound.SampleRate*10 {
			t.Fatalf("node did not end")
		}
	}
	test.ExpectSuccess(t, n.Ended())
	return out
}

func TestOscillatorLength(t *testing.T) {
	for _, w := range []sound.Waveform{sound.Sawtooth, sound.Sine, sound.Square} {
		osc := sound.NewOscillator(w, 440, sound.SampleRate)
		test.ExpectFailure(t, osc.Ended(), w)
		out := drain(t, osc)
		test.ExpectEquality(t, len(out), sound.SampleRate, w)

		// calling NextSample() after the end is harmless
		_, ok := osc.NextSample()
		test.ExpectFailure(t, ok, w)
	}
}

func TestOscillatorWaveforms(t *testing.T) {
	// at 441Hz there are exactly 100 samples per cycle. samples taken after the
	// envelope has reached full level
	tests := []struct {
		waveform sound.Waveform
		elapsed  int
		expected float64
	}{
		{sound.Sawtooth, 500, 0},
		{sound.Sawtooth, 525, 0.5},
		{sound.Sawtooth, 575, -0.5},
		{sound.Sine, 525, 1},
		{sound.Sine, 575, -1},
		{sound.Square, 510, 1},
		{sound.Square, 560, -1},
	}

	for _, tt := range tests {
		osc := sound.NewOscillator(tt.waveform, 441, sound.SampleRate)
		var v float32
		for range tt.elapsed + 1 {
			v, _ = osc.NextSample()
		}
		test.ExpectWithin(t, float64(v), tt.expected*sound.Attenuation, 1e-5, tt.waveform, tt.elapsed)
	}
}

func TestOscillatorEnvelope(t *testing.T) {
	// a square wave at 1Hz does not change sign until halfway through the
	// oscillator's life, so the magnitude of each sample is the envelope
	const duration = sound.SampleRate
	osc := sound.NewOscillator(sound.Square, 1, duration)
	out := drain(t, osc)
	test.DemandEquality(t, len(out), duration)

	abs := func(v float32) float32 {
		return float32(math.Abs(float64(v)))
	}

	test.ExpectEquality(t, out[0], 0)
	for i := 1; i < sound.EdgeSmooth; i++ {
		test.ExpectSuccess(t, abs(out[i]) > abs(out[i-1]), i)
	}
	test.ExpectWithin(t, abs(out[sound.EdgeSmooth]), sound.Attenuation, 1e-6)

	for i := duration - sound.EdgeSmooth + 1; i < duration; i++ {
		test.ExpectSuccess(t, abs(out[i]) < abs(out[i-1]), i)
	}
	test.ExpectWithin(t, abs(out[duration-1]), sound.Attenuation/sound.EdgeSmooth, 1e-6)

	// full level between the ramps
	test.ExpectWithin(t, abs(out[duration/4]), sound.Attenuation, 1e-6)
}

func TestKick(t *testing.T) {
	k := sound.NewKick()
	out := drain(t, k)
	test.DemandEquality(t, len(out), sound.KickDuration)

	test.ExpectEquality(t, out[0], 0)
	for _, i := range []int{1, 100, 1000, 20000} {
		s := float64(i) / sound.SampleRate
		test.ExpectWithin(t, float64(out[i]), math.Sin(2000*math.Exp(-15*s)*s), 1e-6, i)
	}
}

func TestGain(t *testing.T) {
	test.ExpectEquality(t, sound.GainFactor(0), 1)
	test.ExpectEquality(t, sound.GainFactor(-30), 0)
	test.ExpectEquality(t, sound.GainFactor(30), 2)

	g := sound.NewGain(newSource(0.5, -0.25), 30)
	test.ExpectFailure(t, g.Ended())
	out := drain(t, g)
	test.DemandEquality(t, len(out), 2)
	test.ExpectEquality(t, out[0], 1.0)
	test.ExpectEquality(t, out[1], -0.5)
}

func TestDelayLength(t *testing.T) {
	test.ExpectEquality(t, sound.NewDelay(newSource(), 44100, 0.1).Length(), 4410)
	test.ExpectEquality(t, sound.NewDelay(newSource(), 100, 0.054).Length(), 5)
	test.ExpectEquality(t, sound.NewDelay(newSource(), 100, 0.056).Length(), 6)
	test.ExpectEquality(t, sound.NewDelay(newSource(), 44100, 0).Length(), 1)
}

func TestDelayImpulse(t *testing.T) {
	d := sound.NewDelay(newSource(1), 100, 0.05)
	test.DemandEquality(t, d.Length(), 5)

	var out []float32
	for {
		v, ok := d.NextSample()
		if !ok {
			break
		}
		out = append(out, v)

		// the delay has not ended until the echo has been output
		if len(out) <= d.Length() {
			test.ExpectFailure(t, d.Ended(), len(out))
		}
	}
	test.ExpectSuccess(t, d.Ended())

	test.DemandEquality(t, len(out), 6)
	test.ExpectEquality(t, out[0], 1)
	for i := 1; i < 5; i++ {
		test.ExpectEquality(t, out[i], 0, i)
	}
	test.ExpectWithin(t, out[5], sound.EchoLevel, 1e-7)
}

func TestDelayFill(t *testing.T) {
	in := make([]float32, 10)
	for i := range in {
		in[i] = 1
	}

	out := drain(t, sound.NewDelay(newSource(in...), 100, 0.05))
	test.DemandEquality(t, len(out), 15)

	// input passes through unmodified until the buffer has filled
	for i := range 5 {
		test.ExpectEquality(t, out[i], 1, i)
	}
	for i := 5; i < 10; i++ {
		test.ExpectWithin(t, out[i], 1+sound.EchoLevel, 1e-6, i)
	}

	// the tail
	for i := 10; i < 15; i++ {
		test.ExpectWithin(t, out[i], sound.EchoLevel, 1e-6, i)
	}
}

func TestReverb(t *testing.T) {
	// stages of 10, 20 and 30 samples
	r := sound.NewReverb(newSource(1), 100)
	out := drain(t, r)
	test.DemandEquality(t, len(out), 61)

	expected := map[int]float32{
		0:  1,
		10: 0.4,
		20: 0.4,
		30: 0.16 + 0.4,
		40: 0.16,
		50: 0.16,
		60: 0.064,
	}

	for i, v := range out {
		test.ExpectWithin(t, v, expected[i], 1e-6, i)
	}
}

func TestReverbEnded(t *testing.T) {
	r := sound.NewReverb(sound.NewOscillator(sound.Sine, 440, 100), sound.SampleRate)
	var n int
	for !r.Ended() {
		_, ok := r.NextSample()
		test.DemandSuccess(t, ok, n)
		n++
	}
	test.ExpectEquality(t, n, 100+4410+8820+13230)
}

func TestMixer(t *testing.T) {
	m := sound.NewMixer()
	test.ExpectSuccess(t, m.Ended())
	_, ok := m.NextSample()
	test.ExpectFailure(t, ok)

	m.Add(newSource(1, 2, 3), newSource(10))
	test.ExpectEquality(t, m.Len(), 2)
	test.ExpectFailure(t, m.Ended())

	v, ok := m.NextSample()
	test.ExpectSuccess(t, ok)
	test.ExpectEquality(t, v, 11)

	// the shorter source has ended and contributes nothing
	test.ExpectEquality(t, m.Retire(), 1)
	test.ExpectEquality(t, m.Len(), 1)

	v, _ = m.NextSample()
	test.ExpectEquality(t, v, 2)
	v, _ = m.NextSample()
	test.ExpectEquality(t, v, 3)
	test.ExpectSuccess(t, m.Ended())

	_, ok = m.NextSample()
	test.ExpectFailure(t, ok)
}

func TestMixerAbsentValues(t *testing.T) {
	m := sound.NewMixer(newSource(1), newSource(1, 1))
	out := drain(t, m)
	test.DemandEquality(t, len(out), 2)
	test.ExpectEquality(t, out[0], 2)
	test.ExpectEquality(t, out[1], 1)
}
