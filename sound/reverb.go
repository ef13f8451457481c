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

// the delay of each reverb stage in seconds.
var reverbStages = [3]float64{0.1, 0.2, 0.3}

// Reverb passes the input through three delay stages. Each stage is fed by the
// output of the previous stage.
type Reverb struct {
	input Node
	lines [len(reverbStages)]delayLine
}

// NewReverb is the preferred method of initialisation for the Reverb type.
func NewReverb(input Node, sampleRate int) *Reverb {
	r := &Reverb{input: input}
	for i, s := range reverbStages {
		r.lines[i] = newDelayLine(sampleRate, s)
	}
	return r
}

// NextSample implements the Node interface.
func (r *Reverb) NextSample() (float32, bool) {
	v, ok := r.input.NextSample()
	for i := range r.lines {
		v, ok = r.lines[i].step(v, ok)
	}
	return v, ok
}

// Ended implements the Node interface. The reverb ends once the input has
// ended and every stage has drained.
func (r *Reverb) Ended() bool {
	if !r.input.Ended() {
		return false
	}
	for i := range r.lines {
		if !r.lines[i].drained() {
			return false
		}
	}
	return true
}
