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

package database

import (
	"fmt"
	"io"
	"os"
	"slices"
	"strconv"
	"strings"

	"github.com/dawstream/dawstream/curated"
)

// Activity is used to specify the general activity of what will be occurring
// during the database session.
type Activity int

// List of valid Activity values.
const (
	ActivityReading Activity = iota
	ActivityModifying
	ActivityCreating
)

// List of error patterns returned by the database.
const (
	SessionError       = "database: %v"
	NotAvailable       = "database: file not available (%s)"
	ReadOnly           = "database: session is read only"
	DuplicateEntryType = "database: duplicate entry type (%s)"
	UnknownEntryType   = "database: line %d: unrecognised entry type (%s)"
	InvalidKey         = "database: line %d: invalid key (%s)"
	DuplicateKey       = "database: line %d: duplicate key (%d)"
	MalformedLine      = "database: line %d: malformed entry"
	KeyNotAvailable    = "database: key not available (%d)"
	TooManyEntries     = "database: maximum entries exceeded (max %d)"
	InvalidField       = "database: invalid field in %s entry"
	SelectEmpty        = "database: select empty"
)

// arbitrary maximum number of entries.
const maxEntries = 1000

const fieldSep = ","
const entrySep = "\n"

const (
	leaderFieldKey int = iota
	leaderFieldID
	numLeaderFields
)

func recordHeader(key int, id string) string {
	return fmt.Sprintf("%03d%s%s", key, fieldSep, id)
}

// Session keeps track of a database session.
type Session struct {
	dbfile   *os.File
	activity Activity

	entries map[int]Entry

	entryTypes map[string]deserialiser
}

// StartSession starts/initialises a new DB session. The init function is
// called once the database file has been opened but before the entries have
// been read and should register the entry types expected in the database.
func StartSession(path string, activity Activity, init func(*Session) error) (*Session, error) {
	var err error

	db := &Session{
		activity:   activity,
		entries:    make(map[int]Entry),
		entryTypes: make(map[string]deserialiser),
	}

	var flags int

	switch activity {
	case ActivityReading:
		flags = os.O_RDONLY
	case ActivityModifying:
		flags = os.O_RDWR
	case ActivityCreating:
		flags = os.O_RDWR | os.O_CREATE
	}

	db.dbfile, err = os.OpenFile(path, flags, 0600)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, curated.Errorf(NotAvailable, path)
		}
		return nil, curated.Errorf(SessionError, err)
	}

	// closing of db.dbfile requires a call to EndSession()

	err = init(db)
	if err != nil {
		db.dbfile.Close()
		return nil, curated.Errorf(SessionError, err)
	}

	err = db.readDBFile()
	if err != nil {
		db.dbfile.Close()
		return nil, err
	}

	return db, nil
}

// EndSession closes the database. Changes are written to the database file
// only if commitChanges is true and the session was not started with
// ActivityReading.
func (db *Session) EndSession(commitChanges bool) error {
	if db.dbfile == nil {
		return nil
	}

	if commitChanges && db.activity != ActivityReading {
		if err := db.writeDBFile(); err != nil {
			db.dbfile.Close()
			db.dbfile = nil
			return err
		}
	}

	// end session by closing file
	err := db.dbfile.Close()
	db.dbfile = nil
	if err != nil {
		return curated.Errorf(SessionError, err)
	}

	return nil
}

func (db *Session) writeDBFile() error {
	err := db.dbfile.Truncate(0)
	if err != nil {
		return curated.Errorf(SessionError, err)
	}

	_, err = db.dbfile.Seek(0, io.SeekStart)
	if err != nil {
		return curated.Errorf(SessionError, err)
	}

	for _, key := range db.SortedKeyList() {
		ent := db.entries[key]

		ser, err := ent.Serialise()
		if err != nil {
			return curated.Errorf(SessionError, err)
		}

		s := strings.Builder{}
		s.WriteString(recordHeader(key, ent.EntryType()))
		for i, f := range ser {
			if strings.Contains(f, entrySep) || (i < len(ser)-1 && strings.Contains(f, fieldSep)) {
				return curated.Errorf(InvalidField, ent.EntryType())
			}
			s.WriteString(fieldSep)
			s.WriteString(f)
		}
		s.WriteString(entrySep)

		_, err = db.dbfile.WriteString(s.String())
		if err != nil {
			return curated.Errorf(SessionError, err)
		}
	}

	return nil
}

func (db *Session) readDBFile() error {
	// make sure we're at the beginning of the file
	if _, err := db.dbfile.Seek(0, io.SeekStart); err != nil {
		return curated.Errorf(SessionError, err)
	}

	buffer, err := io.ReadAll(db.dbfile)
	if err != nil {
		return curated.Errorf(SessionError, err)
	}

	// split entries
	lines := strings.Split(string(buffer), entrySep)

	for i := range lines {
		lines[i] = strings.TrimSpace(lines[i])
		if len(lines[i]) == 0 {
			continue
		}

		fields := strings.SplitN(lines[i], fieldSep, numLeaderFields+1)
		if len(fields) < numLeaderFields {
			return curated.Errorf(MalformedLine, i+1)
		}

		key, err := strconv.Atoi(fields[leaderFieldKey])
		if err != nil || key < 0 {
			return curated.Errorf(InvalidKey, i+1, fields[leaderFieldKey])
		}

		if _, ok := db.entries[key]; ok {
			return curated.Errorf(DuplicateKey, i+1, key)
		}

		des, ok := db.entryTypes[fields[leaderFieldID]]
		if !ok {
			return curated.Errorf(UnknownEntryType, i+1, fields[leaderFieldID])
		}

		var rest string
		if len(fields) > numLeaderFields {
			rest = fields[numLeaderFields]
		}

		ent, err := des(rest)
		if err != nil {
			return curated.Errorf(SessionError, err)
		}

		db.entries[key] = ent
	}

	return nil
}

// NumEntries returns the number of entries in the database.
func (db *Session) NumEntries() int {
	return len(db.entries)
}

// SortedKeyList returns a sorted list of database keys.
func (db *Session) SortedKeyList() []int {
	keyList := make([]int, 0, len(db.entries))
	for k := range db.entries {
		keyList = append(keyList, k)
	}
	slices.Sort(keyList)
	return keyList
}

// List the entries in key order.
func (db *Session) List(output io.Writer) error {
	if db.NumEntries() == 0 {
		if _, err := io.WriteString(output, "database is empty\n"); err != nil {
			return err
		}
		return nil
	}

	for _, key := range db.SortedKeyList() {
		if _, err := fmt.Fprintf(output, "%03d %s\n", key, db.entries[key]); err != nil {
			return err
		}
	}

	if _, err := fmt.Fprintf(output, "Total: %d\n", db.NumEntries()); err != nil {
		return err
	}

	return nil
}

// Add an entry to the db. Returns the key of the new entry.
func (db *Session) Add(ent Entry) (int, error) {
	if db.activity == ActivityReading {
		return 0, curated.Errorf(ReadOnly)
	}

	var key int

	// find spare key
	for key = 0; key < maxEntries; key++ {
		if _, ok := db.entries[key]; !ok {
			break
		}
	}

	if key == maxEntries {
		return 0, curated.Errorf(TooManyEntries, maxEntries)
	}

	db.entries[key] = ent

	return key, nil
}

// Update replaces the entry with the specified key.
func (db *Session) Update(key int, ent Entry) error {
	if db.activity == ActivityReading {
		return curated.Errorf(ReadOnly)
	}

	if _, ok := db.entries[key]; !ok {
		return curated.Errorf(KeyNotAvailable, key)
	}

	db.entries[key] = ent

	return nil
}

// Delete deletes an entry with the specified key.
func (db *Session) Delete(key int) error {
	if db.activity == ActivityReading {
		return curated.Errorf(ReadOnly)
	}

	ent, ok := db.entries[key]
	if !ok {
		return curated.Errorf(KeyNotAvailable, key)
	}

	if err := ent.CleanUp(); err != nil {
		return curated.Errorf(SessionError, err)
	}

	delete(db.entries, key)

	return nil
}
