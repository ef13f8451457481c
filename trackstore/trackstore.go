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

package trackstore

import (
	"fmt"
	"strings"

	"github.com/dawstream/dawstream/curated"
	"github.com/dawstream/dawstream/database"
	"github.com/dawstream/dawstream/track"
)

// the entry type of a track in the database.
const entryType = "track"

// List of error patterns returned by the package.
const (
	StoreError  = "trackstore: %v"
	InvalidName = "trackstore: invalid track name (%q)"
	BadEntry    = "trackstore: malformed track entry"
	NotFound    = "trackstore: track not found (%s)"
)

// entry implements the database.Entry interface.
type entry struct {
	name    string
	payload track.Payload
}

func (e *entry) EntryType() string {
	return entryType
}

func (e *entry) String() string {
	return fmt.Sprintf("%s [tempo %d, %d instruments, %d beats]", e.name, e.payload.Tempo, len(e.payload.Instruments), len(e.payload.Beats()))
}

func (e *entry) Serialise() ([]string, error) {
	data, err := e.payload.Encode()
	if err != nil {
		return nil, curated.Errorf(StoreError, err)
	}
	return []string{e.name, string(data)}, nil
}

func (e *entry) CleanUp() error {
	return nil
}

func deserialise(fields string) (database.Entry, error) {
	f := strings.SplitN(fields, ",", 2)
	if len(f) != 2 {
		return nil, curated.Errorf(BadEntry)
	}

	p, err := track.Decode([]byte(f[1]))
	if err != nil {
		return nil, curated.Errorf(StoreError, err)
	}

	return &entry{name: f[0], payload: p}, nil
}

// Init registers the track entry type with the database session. Suitable
// for passing directly to database.StartSession().
func Init(db *database.Session) error {
	return db.RegisterEntryType(entryType, deserialise)
}

// ValidName returns an error if the name cannot be used for a track. Names
// cannot be empty or contain commas or newlines.
func ValidName(name string) error {
	if strings.TrimSpace(name) == "" || strings.ContainsAny(name, ",\n\r") {
		return curated.Errorf(InvalidName, name)
	}
	return nil
}

// find the key of the named track. returns false if there is no such track.
func find(db *database.Session, name string) (int, *entry, bool) {
	var key int
	var found *entry

	_ = db.SelectAll(func(k int, ent database.Entry) (bool, error) {
		if e, ok := ent.(*entry); ok && e.name == name {
			key = k
			found = e
			return false, nil
		}
		return true, nil
	})

	return key, found, found != nil
}

// Save the payload under the name. An existing track with the same name is
// replaced in place and keeps its key.
func Save(db *database.Session, name string, payload track.Payload) error {
	if err := ValidName(name); err != nil {
		return err
	}

	if err := payload.Validate(); err != nil {
		return curated.Errorf(StoreError, err)
	}

	payload.Tempo = payload.EffectiveTempo()
	ent := &entry{name: name, payload: payload}

	if key, _, ok := find(db, name); ok {
		if err := db.Update(key, ent); err != nil {
			return curated.Errorf(StoreError, err)
		}
		return nil
	}

	if _, err := db.Add(ent); err != nil {
		return curated.Errorf(StoreError, err)
	}

	return nil
}

// FindByName returns the payload saved under the name.
func FindByName(db *database.Session, name string) (track.Payload, bool) {
	_, e, ok := find(db, name)
	if !ok {
		return track.Payload{}, false
	}
	return e.payload, true
}

// Remove the named track from the database.
func Remove(db *database.Session, name string) error {
	key, _, ok := find(db, name)
	if !ok {
		return curated.Errorf(NotFound, name)
	}
	if err := db.Delete(key); err != nil {
		return curated.Errorf(StoreError, err)
	}
	return nil
}
