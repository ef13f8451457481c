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

package pitch_test

import (
	"encoding/json"
	"testing"

	"github.com/dawstream/dawstream/pitch"
	"github.com/dawstream/dawstream/test"
)

func TestTable(t *testing.T) {
	keys := pitch.Keys()
	test.DemandEquality(t, len(keys), 88)
	test.ExpectEquality(t, keys[0].String(), "A0")
	test.ExpectEquality(t, keys[len(keys)-1].String(), "C7")

	for i := 1; i < len(keys); i++ {
		test.ExpectSuccess(t, keys[i].Frequency() > keys[i-1].Frequency(), keys[i])
	}
}

func TestFrequencies(t *testing.T) {
	tests := []struct {
		name      string
		frequency float32
	}{
		{"A0", 27.5},
		{"A1", 55},
		{"A4", 440},
		{"A5", 880},
		{"C7", 4186.009},
	}

	for _, tt := range tests {
		k, ok := pitch.Lookup(tt.name)
		test.DemandSuccess(t, ok, tt.name)
		test.ExpectApproximate(t, k.Frequency(), tt.frequency, 0.0001, tt.name)
	}
}

func TestNames(t *testing.T) {
	k, ok := pitch.Lookup("A4")
	test.DemandSuccess(t, ok)
	test.ExpectEquality(t, k.Index(), 69)

	k, ok = pitch.Lookup("C0")
	test.DemandSuccess(t, ok)
	test.ExpectEquality(t, k.Index(), 24)

	_, ok = pitch.Lookup("H2")
	test.ExpectFailure(t, ok)

	_, ok = pitch.Lookup("C#4")
	test.ExpectFailure(t, ok)

	test.ExpectFailure(t, pitch.Key(0).Valid())
	test.ExpectEquality(t, pitch.Key(0).Frequency(), 0)
}

func TestStepKeys(t *testing.T) {
	var steps int
	for _, k := range pitch.Keys() {
		if k.IsStepKey() {
			steps++
		}
	}
	test.ExpectEquality(t, steps, 36)

	k, _ := pitch.Lookup("Bb2")
	test.ExpectSuccess(t, k.IsStepKey())
	k, _ = pitch.Lookup("B2")
	test.ExpectFailure(t, k.IsStepKey())
}

func TestText(t *testing.T) {
	var keys []pitch.Key
	err := json.Unmarshal([]byte(`["A4", "Db3"]`), &keys)
	test.DemandSuccess(t, err)
	test.DemandEquality(t, len(keys), 2)
	test.ExpectEquality(t, keys[0].Index(), 69)
	test.ExpectEquality(t, keys[1].String(), "Db3")

	pitch.Sort(keys)
	test.ExpectEquality(t, keys[0].String(), "Db3")

	b, err := json.Marshal(keys)
	test.DemandSuccess(t, err)
	test.ExpectEquality(t, string(b), `["Db3","A4"]`)

	err = json.Unmarshal([]byte(`["Z9"]`), &keys)
	test.ExpectFailure(t, err)
}
