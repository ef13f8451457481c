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

package sound

import (
	"fmt"
	"math"
)

// Waveform is the shape of the wave generated by an Oscillator.
type Waveform int

// List of valid Waveform values.
const (
	Sawtooth Waveform = iota
	Sine
	Square
)

func (w Waveform) String() string {
	switch w {
	case Sawtooth:
		return "sawtooth"
	case Sine:
		return "sine"
	case Square:
		return "square"
	}
	return fmt.Sprintf("waveform (%d)", int(w))
}

// EdgeSmooth is the number of samples at the start and end of an oscillator's
// life over which the output is faded in and out.
const EdgeSmooth = 400

// Attenuation is applied to the output of every oscillator so that several
// oscillators can be summed.
const Attenuation = 0.2

// Oscillator generates a periodic waveform for a fixed number of samples.
type Oscillator struct {
	waveform  Waveform
	frequency float64
	duration  int
	elapsed   int
}

// NewOscillator is the preferred method of initialisation for the Oscillator
// type. The duration is the number of samples the oscillator will generate.
// Both frequency and duration must be greater than zero.
func NewOscillator(waveform Waveform, frequency float32, duration int) *Oscillator {
	return &Oscillator{
		waveform:  waveform,
		frequency: float64(frequency),
		duration:  duration,
	}
}

// NextSample implements the Node interface.
func (osc *Oscillator) NextSample() (float32, bool) {
	if osc.elapsed >= osc.duration {
		return 0, false
	}

	phase := float64(osc.elapsed) * osc.frequency / SampleRate

	var v float64
	switch osc.waveform {
	case Sine:
		v = math.Sin(2 * math.Pi * phase)
	case Square:
		if phase-math.Floor(phase) < 0.5 {
			v = 1
		} else {
			v = -1
		}
	default:
		v = 2 * (phase - math.Floor(phase+0.5))
	}

	v *= osc.envelope()
	osc.elapsed++

	return float32(v * Attenuation), true
}

// linear fade over the first and last EdgeSmooth samples
func (osc *Oscillator) envelope() float64 {
	return min(1.0,
		float64(osc.elapsed)/EdgeSmooth,
		float64(osc.duration-osc.elapsed)/EdgeSmooth,
	)
}

// Ended implements the Node interface.
func (osc *Oscillator) Ended() bool {
	return osc.elapsed >= osc.duration
}
