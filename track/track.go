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

package track

import (
	"encoding/json"
	"maps"
	"slices"
	"strconv"

	"github.com/dawstream/dawstream/curated"
	"github.com/dawstream/dawstream/musicbox"
	"github.com/dawstream/dawstream/pitch"
)

// MinTempo is the slowest tempo allowed. Slower tempos are clamped to this
// value.
const MinTempo = 20

// DefaultTempo is used when the document does not specify a tempo.
const DefaultTempo = 120

// List of error patterns returned by Decode() and Validate().
const (
	MalformedPayload  = "track: malformed payload: %v"
	UnknownInstrument = "track: unknown instrument (%s)"
	InvalidBeat       = "track: %s: invalid beat index (%s)"
	NegativeBeat      = "track: %s: negative beat index (%d)"
	UnknownKey        = "track: %s: unknown key (%s)"
)

// Payload is a complete track document.
type Payload struct {
	Tempo       int          `json:"tempo"`
	Instruments []Instrument `json:"instruments"`
}

// Instrument is one part of the track.
type Instrument struct {
	Name  string              `json:"name"`
	Gain  float64             `json:"gain"`
	Notes map[int][]pitch.Key `json:"notes"`
}

// the document as it appears on the wire. keys are kept as strings so that
// errors can be reported with the offending value
type document struct {
	Tempo       *int `json:"tempo"`
	Instruments []struct {
		Name  string              `json:"name"`
		Gain  float64             `json:"gain"`
		Notes map[string][]string `json:"notes"`
	} `json:"instruments"`
}

// Decode a JSON track document. A missing tempo is set to DefaultTempo.
func Decode(data []byte) (Payload, error) {
	return DecodeWithTempo(data, DefaultTempo)
}

// DecodeWithTempo is the same as Decode() except that a missing tempo is set
// to the value of the defaultTempo argument.
func DecodeWithTempo(data []byte, defaultTempo int) (Payload, error) {
	var doc document
	if err := json.Unmarshal(data, &doc); err != nil {
		return Payload{}, curated.Errorf(MalformedPayload, err)
	}

	p := Payload{
		Tempo:       defaultTempo,
		Instruments: make([]Instrument, 0, len(doc.Instruments)),
	}
	if doc.Tempo != nil {
		p.Tempo = *doc.Tempo
	}
	p.Tempo = max(p.Tempo, MinTempo)

	for _, d := range doc.Instruments {
		if _, ok := musicbox.ParseVoice(d.Name); !ok {
			return Payload{}, curated.Errorf(UnknownInstrument, d.Name)
		}

		inst := Instrument{
			Name:  d.Name,
			Gain:  d.Gain,
			Notes: make(map[int][]pitch.Key, len(d.Notes)),
		}

		for b, names := range d.Notes {
			beat, err := strconv.Atoi(b)
			if err != nil {
				return Payload{}, curated.Errorf(InvalidBeat, d.Name, b)
			}
			if beat < 0 {
				return Payload{}, curated.Errorf(NegativeBeat, d.Name, beat)
			}

			// "00" and "+0" would otherwise alias beat 0
			if strconv.Itoa(beat) != b {
				return Payload{}, curated.Errorf(InvalidBeat, d.Name, b)
			}

			keys := make([]pitch.Key, 0, len(names))
			for _, n := range names {
				k, ok := pitch.Lookup(n)
				if !ok {
					return Payload{}, curated.Errorf(UnknownKey, d.Name, n)
				}
				keys = append(keys, k)
			}
			inst.Notes[beat] = keys
		}

		p.Instruments = append(p.Instruments, inst)
	}

	return p, nil
}

// Validate checks a Payload that was not created by Decode().
func (p Payload) Validate() error {
	for _, inst := range p.Instruments {
		if _, ok := musicbox.ParseVoice(inst.Name); !ok {
			return curated.Errorf(UnknownInstrument, inst.Name)
		}
		for b, keys := range inst.Notes {
			if b < 0 {
				return curated.Errorf(NegativeBeat, inst.Name, b)
			}
			for _, k := range keys {
				if !k.Valid() {
					return curated.Errorf(UnknownKey, inst.Name, k)
				}
			}
		}
	}
	return nil
}

// Encode the payload as a JSON track document.
func (p Payload) Encode() ([]byte, error) {
	return json.Marshal(p)
}

// EffectiveTempo returns the tempo used by the music box. A payload with a
// zero tempo uses DefaultTempo and tempos below MinTempo are clamped.
func (p Payload) EffectiveTempo() int {
	if p.Tempo == 0 {
		return DefaultTempo
	}
	return max(p.Tempo, MinTempo)
}

// MusicBox creates a new music box for the payload. The notes are copied so
// the payload is not changed as the music box progresses.
//
// Instruments with an unknown name are ignored. Use Validate() first if the
// payload was not created by Decode().
func (p Payload) MusicBox() *musicbox.MusicBox {
	instruments := make([]musicbox.Instrument, 0, len(p.Instruments))
	for _, inst := range p.Instruments {
		v, ok := musicbox.ParseVoice(inst.Name)
		if !ok {
			continue
		}
		notes := make(map[int][]pitch.Key, len(inst.Notes))
		for b, keys := range inst.Notes {
			notes[b] = slices.Clone(keys)
		}
		instruments = append(instruments, musicbox.Instrument{
			Voice: v,
			Gain:  inst.Gain,
			Notes: notes,
		})
	}
	return musicbox.NewMusicBox(p.EffectiveTempo(), instruments)
}

// TotalSamples returns the exact length of the stream created by the payload.
// The music box is run to completion to find the length.
func (p Payload) TotalSamples() int {
	mb := p.MusicBox()
	for {
		if _, ok := mb.NextSample(); !ok {
			return mb.Position()
		}
	}
}

// Beats returns the sorted list of beat indexes with at least one note in any
// instrument.
func (p Payload) Beats() []int {
	seen := make(map[int]bool)
	for _, inst := range p.Instruments {
		for b, keys := range inst.Notes {
			if len(keys) > 0 {
				seen[b] = true
			}
		}
	}
	return slices.Sorted(maps.Keys(seen))
}
