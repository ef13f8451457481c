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

package musicbox

import (
	"fmt"

	"github.com/dawstream/dawstream/pitch"
	"github.com/dawstream/dawstream/sound"
)

// Voice is the sound of an instrument.
type Voice int

// List of valid Voice values.
const (
	Sawtooth Voice = iota
	Sine
	Square
	Kick
)

var voiceNames = map[Voice]string{
	Sawtooth: "sawtooth",
	Sine:     "sine",
	Square:   "square",
	Kick:     "kick",
}

func (v Voice) String() string {
	if s, ok := voiceNames[v]; ok {
		return s
	}
	return fmt.Sprintf("voice (%d)", int(v))
}

// ParseVoice returns the voice with the specified name.
func ParseVoice(name string) (Voice, bool) {
	for v, s := range voiceNames {
		if s == name {
			return v, true
		}
	}
	return 0, false
}

// Instrument is one part of the music. Notes is keyed by beat index, starting
// from zero, and each entry is the set of keys to play on that beat.
type Instrument struct {
	Voice Voice
	Gain  float64
	Notes map[int][]pitch.Key
}

// node creates the node graph for one note of the instrument. the duration
// argument is ignored by the Kick voice.
func (inst *Instrument) node(key pitch.Key, duration int) sound.Node {
	var n sound.Node
	switch inst.Voice {
	case Kick:
		n = sound.NewKick()
	case Sine:
		n = sound.NewReverb(sound.NewOscillator(sound.Sine, key.Frequency(), duration), sound.SampleRate)
	case Square:
		n = sound.NewReverb(sound.NewOscillator(sound.Square, key.Frequency(), duration), sound.SampleRate)
	default:
		n = sound.NewOscillator(sound.Sawtooth, key.Frequency(), duration)
	}
	return sound.NewGain(n, inst.Gain)
}
