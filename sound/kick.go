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

// KickDuration is the length of a Kick in samples. It does not depend on the
// tempo of the music.
const KickDuration = SampleRate

// Kick is a percussive impulse. A decaying chirp lasting exactly one second.
type Kick struct {
	elapsed int
}

// NewKick is the preferred method of initialisation for the Kick type.
func NewKick() *Kick {
	return &Kick{}
}

// NextSample implements the Node interface.
func (k *Kick) NextSample() (float32, bool) {
	if k.elapsed >= KickDuration {
		return 0, false
	}
	t := float64(k.elapsed) / SampleRate
	k.elapsed++
	return float32(math.Sin(2000 * math.Exp(-15*t) * t)), true
}

// Ended implements the Node interface.
func (k *Kick) Ended() bool {
	return k.elapsed >= KickDuration
}
