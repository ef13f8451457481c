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

import "math"

// EchoLevel is the level of the delayed signal relative to the input.
const EchoLevel = 0.4

// delayLine is a ring buffer holding the most recent samples of a signal. It
// is shared by the Delay and Reverb nodes.
type delayLine struct {
	buf []float32
	pos int

	// the number of steps remaining before the most recently written sample
	// has been echoed. reset to the length of the buffer every time a sample
	// is written
	tail int
}

func newDelayLine(sampleRate int, seconds float64) delayLine {
	n := int(math.Round(float64(sampleRate) * seconds))
	if n < 1 {
		n = 1
	}
	return delayLine{buf: make([]float32, n)}
}

// step advances the line by one sample. the ok argument is false if there is
// no input this tick, in which case the tail continues to drain. returns false
// once there is no input and the tail has drained.
func (d *delayLine) step(x float32, ok bool) (float32, bool) {
	if !ok && d.tail == 0 {
		return 0, false
	}

	echo := d.buf[d.pos]

	if ok {
		d.buf[d.pos] = x
		d.tail = len(d.buf)
	} else {
		x = 0
		d.buf[d.pos] = 0
		d.tail--
	}

	d.pos++
	if d.pos >= len(d.buf) {
		d.pos = 0
	}

	return x + echo*EchoLevel, true
}

func (d *delayLine) drained() bool {
	return d.tail == 0
}

// Delay adds a single echo of the input signal. The echo is not fed back into
// the delay.
type Delay struct {
	input Node
	line  delayLine
}

// NewDelay is the preferred method of initialisation for the Delay type. The
// length of the delay is rounded to the nearest sample and is never shorter
// than one sample.
func NewDelay(input Node, sampleRate int, seconds float64) *Delay {
	return &Delay{
		input: input,
		line:  newDelayLine(sampleRate, seconds),
	}
}

// Length returns the length of the delay in samples.
func (d *Delay) Length() int {
	return len(d.line.buf)
}

// NextSample implements the Node interface.
func (d *Delay) NextSample() (float32, bool) {
	return d.line.step(d.input.NextSample())
}

// Ended implements the Node interface. The delay ends once the input has ended
// and the last input sample has been echoed.
func (d *Delay) Ended() bool {
	return d.input.Ended() && d.line.drained()
}
