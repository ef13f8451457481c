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

// GainFactor converts an instrument gain to the linear factor applied by the
// Gain node. A gain of -30 silences the instrument and a gain of zero leaves
// it unchanged.
func GainFactor(gain float64) float32 {
	return float32((gain + 30) / 30)
}

// Gain scales the output of another node by a fixed factor.
type Gain struct {
	input  Node
	factor float32
}

// NewGain is the preferred method of initialisation for the Gain type. The
// gain argument is converted with GainFactor().
func NewGain(input Node, gain float64) *Gain {
	return &Gain{
		input:  input,
		factor: GainFactor(gain),
	}
}

// NextSample implements the Node interface.
func (g *Gain) NextSample() (float32, bool) {
	v, ok := g.input.NextSample()
	if !ok {
		return 0, false
	}
	return v * g.factor, true
}

// Ended implements the Node interface.
func (g *Gain) Ended() bool {
	return g.input.Ended()
}
