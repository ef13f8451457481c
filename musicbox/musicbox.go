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
	"slices"

	"github.com/dawstream/dawstream/pitch"
	"github.com/dawstream/dawstream/sound"
)

// MusicBox mixes the notes of a list of instruments into a single stream of
// samples.
type MusicBox struct {
	// instruments with notes still to be activated
	instruments []*Instrument

	// nodes that are currently producing sound
	active *sound.Mixer

	// the number of samples produced so far
	t int

	// the number of samples in one beat. fixed on creation
	samplesPerBeat int

	finished bool
}

// SamplesPerBeat returns the number of samples in one beat at the specified
// tempo. A tempo of less than one is treated as a tempo of one.
func SamplesPerBeat(tempo int) int {
	tempo = max(1, tempo)
	return max(1, sound.SampleRate*60/tempo)
}

// NewMusicBox is the preferred method of initialisation for the MusicBox
// type. The notes maps of the instruments are consumed as the music box
// progresses. Callers that need to keep the notes should pass copies.
func NewMusicBox(tempo int, instruments []Instrument) *MusicBox {
	mb := &MusicBox{
		instruments:    make([]*Instrument, 0, len(instruments)),
		active:         sound.NewMixer(),
		samplesPerBeat: SamplesPerBeat(tempo),
	}
	for i := range instruments {
		mb.instruments = append(mb.instruments, &instruments[i])
	}
	return mb
}

// NextSample returns the next sample of the stream. The boolean is false once
// the stream has ended, and every subsequent call will also return false.
func (mb *MusicBox) NextSample() (float32, bool) {
	if mb.finished {
		return 0, false
	}

	if mb.t%mb.samplesPerBeat == 0 {
		mb.activate(mb.t / mb.samplesPerBeat)
	}

	mb.active.Retire()

	if len(mb.instruments) == 0 && mb.active.Len() == 0 {
		mb.finished = true
		return 0, false
	}

	// nodes that do not produce a sample this tick contribute nothing. if no
	// node produces a sample the output is silence
	v, _ := mb.active.NextSample()
	mb.t++

	return v, true
}

// activate the notes for the beat and remove the notes for this and any
// earlier beat from the schedule.
func (mb *MusicBox) activate(beat int) {
	for _, inst := range mb.instruments {
		if keys, ok := inst.Notes[beat]; ok {
			keys = slices.Clone(keys)
			pitch.Sort(keys)
			keys = slices.Compact(keys)
			for _, k := range keys {
				mb.active.Add(inst.node(k, mb.samplesPerBeat))
			}
		}

		for b := range inst.Notes {
			if b <= beat {
				delete(inst.Notes, b)
			}
		}
	}

	mb.instruments = slices.DeleteFunc(mb.instruments, func(inst *Instrument) bool {
		return len(inst.Notes) == 0
	})
}

// Chunk pulls up to size samples from the stream. The boolean is true if the
// chunk is full. A chunk that is not full, including an empty chunk, means
// that the stream has ended. A negative size is treated as zero.
func (mb *MusicBox) Chunk(size int) ([]float32, bool) {
	size = max(size, 0)
	chunk := make([]float32, 0, size)
	for len(chunk) < size {
		v, ok := mb.NextSample()
		if !ok {
			return chunk, false
		}
		chunk = append(chunk, v)
	}
	return chunk, true
}

// Position returns the number of samples produced so far.
func (mb *MusicBox) Position() int {
	return mb.t
}

// SamplesPerBeat returns the number of samples in one beat.
func (mb *MusicBox) SamplesPerBeat() int {
	return mb.samplesPerBeat
}

// Active returns the number of nodes currently producing sound.
func (mb *MusicBox) Active() int {
	return mb.active.Len()
}

// Finished returns true if the stream has ended. Finished will not return
// true until NextSample() has been called and returned false.
func (mb *MusicBox) Finished() bool {
	return mb.finished
}
