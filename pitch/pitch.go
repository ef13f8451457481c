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

package pitch

import (
	"fmt"
	"math"
	"slices"
)

// the range of MIDI indexes covered by the table.
const (
	First = 21
	Last  = 108
)

// NumKeys is the number of keys in the table.
const NumKeys = Last - First + 1

// Key identifies one of the 88 piano keys. The zero value is not a valid key.
type Key uint8

// names of keys within an octave, starting from A. the boolean indicates a
// step key (a black key on the piano).
var octave = [12]struct {
	name string
	step bool
}{
	{"A", false},
	{"Bb", true},
	{"B", false},
	{"C", false},
	{"Db", true},
	{"D", false},
	{"Eb", true},
	{"E", false},
	{"F", false},
	{"Gb", true},
	{"G", false},
	{"Ab", true},
}

type entry struct {
	name      string
	frequency float32
	step      bool
}

// the table is built once when the package is initialised and never changes
var table [NumKeys]entry

// lookup from key name to key
var names map[string]Key

func init() {
	names = make(map[string]Key, NumKeys)
	for i := First; i <= Last; i++ {
		o := octave[(i-First)%12]
		e := entry{
			name:      fmt.Sprintf("%s%d", o.name, (i-First)/12),
			frequency: float32(440.0 * math.Pow(2, float64(i-69)/12.0)),
			step:      o.step,
		}
		table[i-First] = e
		names[e.name] = Key(i)
	}
}

// Valid returns true if the key is in the table.
func (k Key) Valid() bool {
	return k >= First && k <= Last
}

// Index returns the MIDI index of the key.
func (k Key) Index() int {
	return int(k)
}

// Frequency returns the frequency of the key in Hz. Returns zero for an
// invalid key.
func (k Key) Frequency() float32 {
	if !k.Valid() {
		return 0
	}
	return table[k-First].frequency
}

// IsStepKey returns true if the key is one of the black keys.
func (k Key) IsStepKey() bool {
	if !k.Valid() {
		return false
	}
	return table[k-First].step
}

// String implements the fmt.Stringer interface.
func (k Key) String() string {
	if !k.Valid() {
		return fmt.Sprintf("invalid key (%d)", k)
	}
	return table[k-First].name
}

// Lookup returns the key with the specified name.
func Lookup(name string) (Key, bool) {
	k, ok := names[name]
	return k, ok
}

// Keys returns all the keys in the table in order.
func Keys() []Key {
	k := make([]Key, 0, NumKeys)
	for i := First; i <= Last; i++ {
		k = append(k, Key(i))
	}
	return k
}

// Sort the keys in place by index.
func Sort(keys []Key) {
	slices.Sort(keys)
}

// MarshalText implements the encoding.TextMarshaler interface.
func (k Key) MarshalText() ([]byte, error) {
	if !k.Valid() {
		return nil, fmt.Errorf("pitch: invalid key (%d)", k)
	}
	return []byte(k.String()), nil
}

// UnmarshalText implements the encoding.TextUnmarshaler interface.
func (k *Key) UnmarshalText(text []byte) error {
	v, ok := Lookup(string(text))
	if !ok {
		return fmt.Errorf("pitch: unknown key (%s)", text)
	}
	*k = v
	return nil
}
