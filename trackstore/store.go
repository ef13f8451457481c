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
	"io"
	"sync"

	"github.com/dawstream/dawstream/curated"
	"github.com/dawstream/dawstream/database"
	"github.com/dawstream/dawstream/logger"
	"github.com/dawstream/dawstream/track"
)

// Store is a track database file that is safe for concurrent use. A new
// database session is started for every operation.
type Store struct {
	crit sync.Mutex
	path string
}

// NewStore is the preferred method of initialisation for the Store type. The
// database file is created on the first call to Save() if it does not exist.
func NewStore(path string) *Store {
	return &Store{path: path}
}

// Path returns the path of the database file.
func (s *Store) Path() string {
	return s.path
}

// Save the payload under the name.
func (s *Store) Save(name string, payload track.Payload) (rerr error) {
	s.crit.Lock()
	defer s.crit.Unlock()

	db, err := database.StartSession(s.path, database.ActivityCreating, Init)
	if err != nil {
		return curated.Errorf(StoreError, err)
	}
	defer func() {
		err := db.EndSession(rerr == nil)
		if rerr == nil && err != nil {
			rerr = curated.Errorf(StoreError, err)
		}
	}()

	if err := Save(db, name, payload); err != nil {
		return err
	}

	logger.Logf(logger.Allow, "trackstore", "saved %s to %s", name, s.path)

	return nil
}

// Restore the payload saved under the name. Returns false if there is no
// track with that name, including when the database file does not exist.
func (s *Store) Restore(name string) (track.Payload, bool, error) {
	s.crit.Lock()
	defer s.crit.Unlock()

	db, err := database.StartSession(s.path, database.ActivityReading, Init)
	if err != nil {
		if curated.Is(err, database.NotAvailable) {
			return track.Payload{}, false, nil
		}
		return track.Payload{}, false, curated.Errorf(StoreError, err)
	}
	defer db.EndSession(false)

	p, ok := FindByName(db, name)
	if ok {
		logger.Logf(logger.Allow, "trackstore", "restored %s from %s", name, s.path)
	}

	return p, ok, nil
}

// Delete the named track.
func (s *Store) Delete(name string) (rerr error) {
	s.crit.Lock()
	defer s.crit.Unlock()

	db, err := database.StartSession(s.path, database.ActivityModifying, Init)
	if err != nil {
		if curated.Is(err, database.NotAvailable) {
			return curated.Errorf(NotFound, name)
		}
		return curated.Errorf(StoreError, err)
	}
	defer func() {
		err := db.EndSession(rerr == nil)
		if rerr == nil && err != nil {
			rerr = curated.Errorf(StoreError, err)
		}
	}()

	return Remove(db, name)
}

// List the tracks in the store.
func (s *Store) List(output io.Writer) error {
	s.crit.Lock()
	defer s.crit.Unlock()

	db, err := database.StartSession(s.path, database.ActivityReading, Init)
	if err != nil {
		if curated.Is(err, database.NotAvailable) {
			_, err = io.WriteString(output, "database is empty\n")
			return err
		}
		return curated.Errorf(StoreError, err)
	}
	defer db.EndSession(false)

	return db.List(output)
}
