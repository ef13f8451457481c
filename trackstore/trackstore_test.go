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

package trackstore_test

import (
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"

	"github.com/dawstream/dawstream/curated"
	"github.com/dawstream/dawstream/database"
	"github.com/dawstream/dawstream/track"
	"github.com/dawstream/dawstream/trackstore"
	"github.com/dawstream/dawstream/test"
)

func payload(t *testing.T, doc string) track.Payload {
	t.Helper()
	p, err := track.Decode([]byte(doc))
	test.DemandSuccess(t, err)
	return p
}

func TestSaveAndFind(t *testing.T) {
	pth := filepath.Join(t.TempDir(), "tracks.db")

	db, err := database.StartSession(pth, database.ActivityCreating, trackstore.Init)
	test.DemandSuccess(t, err)

	_, ok := trackstore.FindByName(db, "default")
	test.ExpectFailure(t, ok)

	p := payload(t, `{"tempo": 90, "instruments": [{"name": "sine", "gain": -2, "notes": {"0": ["A4"], "1": ["C5"]}}]}`)
	test.DemandSuccess(t, trackstore.Save(db, "default", p))
	test.DemandSuccess(t, db.EndSession(true))

	db, err = database.StartSession(pth, database.ActivityReading, trackstore.Init)
	test.DemandSuccess(t, err)
	defer db.EndSession(false)

	q, ok := trackstore.FindByName(db, "default")
	test.DemandSuccess(t, ok)
	test.ExpectEquality(t, q.Tempo, 90)
	test.DemandEquality(t, len(q.Instruments), 1)
	test.ExpectEquality(t, q.Instruments[0].Name, "sine")
	test.ExpectEquality(t, q.Instruments[0].Gain, -2.0)
	test.ExpectEquality(t, q.Instruments[0].Notes[1][0].String(), "C5")

	_, ok = trackstore.FindByName(db, "other")
	test.ExpectFailure(t, ok)
}

func TestUpdateInPlace(t *testing.T) {
	pth := filepath.Join(t.TempDir(), "tracks.db")

	db, err := database.StartSession(pth, database.ActivityCreating, trackstore.Init)
	test.DemandSuccess(t, err)

	test.DemandSuccess(t, trackstore.Save(db, "first", payload(t, `{"tempo": 60}`)))
	test.DemandSuccess(t, trackstore.Save(db, "second", payload(t, `{"tempo": 70}`)))
	test.DemandSuccess(t, trackstore.Save(db, "first", payload(t, `{"tempo": 80}`)))
	test.ExpectEquality(t, db.NumEntries(), 2)
	test.DemandSuccess(t, db.EndSession(true))

	data, err := os.ReadFile(pth)
	test.DemandSuccess(t, err)
	lines := strings.Split(strings.TrimSpace(string(data)), "\n")
	test.DemandEquality(t, len(lines), 2)
	test.ExpectEquality(t, lines[0], `000,track,first,{"tempo":80,"instruments":[]}`)
	test.ExpectEquality(t, lines[1], `001,track,second,{"tempo":70,"instruments":[]}`)
}

func TestInvalid(t *testing.T) {
	pth := filepath.Join(t.TempDir(), "tracks.db")

	db, err := database.StartSession(pth, database.ActivityCreating, trackstore.Init)
	test.DemandSuccess(t, err)
	defer db.EndSession(false)

	for _, name := range []string{"", "  ", "a,b", "a\nb"} {
		err := trackstore.Save(db, name, track.Payload{})
		test.ExpectSuccess(t, curated.Is(err, trackstore.InvalidName), name)
	}

	err = trackstore.Save(db, "bad", track.Payload{Instruments: []track.Instrument{{Name: "banjo"}}})
	test.ExpectSuccess(t, curated.Has(err, track.UnknownInstrument))
	test.ExpectEquality(t, db.NumEntries(), 0)
}

func TestCorruptEntry(t *testing.T) {
	pth := filepath.Join(t.TempDir(), "tracks.db")
	test.DemandSuccess(t, os.WriteFile(pth, []byte("000,track,default,{\"instruments\":[{\"name\":\"oboe\"}]}\n"), 0600))

	_, err := database.StartSession(pth, database.ActivityReading, trackstore.Init)
	test.ExpectSuccess(t, curated.Has(err, track.UnknownInstrument))

	test.DemandSuccess(t, os.WriteFile(pth, []byte("000,track,default\n"), 0600))
	_, err = database.StartSession(pth, database.ActivityReading, trackstore.Init)
	test.ExpectSuccess(t, curated.Has(err, trackstore.BadEntry))
}

func TestStore(t *testing.T) {
	s := trackstore.NewStore(filepath.Join(t.TempDir(), "tracks.db"))

	// the database file does not exist yet
	_, ok, err := s.Restore("default")
	test.DemandSuccess(t, err)
	test.ExpectFailure(t, ok)

	w := &test.CompareWriter{}
	test.DemandSuccess(t, s.List(w))
	test.ExpectSuccess(t, w.Compare("database is empty\n"))

	p := payload(t, `{"tempo": 100, "instruments": [{"name": "kick", "notes": {"0": ["A0"], "2": ["A0"]}}]}`)
	test.DemandSuccess(t, s.Save("default", p))

	q, ok, err := s.Restore("default")
	test.DemandSuccess(t, err)
	test.DemandSuccess(t, ok)
	test.ExpectEquality(t, q.TotalSamples(), p.TotalSamples())

	w.Clear()
	test.DemandSuccess(t, s.List(w))
	test.ExpectEquality(t, w.String(), "000 default [tempo 100, 1 instruments, 2 beats]\nTotal: 1\n")

	test.DemandSuccess(t, s.Delete("default"))
	_, ok, err = s.Restore("default")
	test.DemandSuccess(t, err)
	test.ExpectFailure(t, ok)

	test.ExpectSuccess(t, curated.Is(s.Delete("default"), trackstore.NotFound))
}

func TestStoreDefaultTempo(t *testing.T) {
	s := trackstore.NewStore(filepath.Join(t.TempDir(), "tracks.db"))
	test.DemandSuccess(t, s.Save("default", track.Payload{}))

	q, ok, err := s.Restore("default")
	test.DemandSuccess(t, err)
	test.DemandSuccess(t, ok)
	test.ExpectEquality(t, q.Tempo, track.DefaultTempo)
}

func TestStoreConcurrency(t *testing.T) {
	s := trackstore.NewStore(filepath.Join(t.TempDir(), "tracks.db"))

	var wg sync.WaitGroup
	for i := range 10 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			p := track.Payload{Tempo: 60 + i}
			if err := s.Save("default", p); err != nil {
				t.Error(err)
			}
			if _, _, err := s.Restore("default"); err != nil {
				t.Error(err)
			}
		}()
	}
	wg.Wait()

	q, ok, err := s.Restore("default")
	test.DemandSuccess(t, err)
	test.DemandSuccess(t, ok)
	test.ExpectSuccess(t, q.Tempo >= 60 && q.Tempo < 70)
}
