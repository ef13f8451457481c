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

import "github.com/dawstream/dawstream/curated"

// SelectAll entries in the database in key order. onSelect can be nil.
//
// The select process ends early if onSelect() returns false or an error. The
// error is returned by SelectAll().
func (db *Session) SelectAll(onSelect func(key int, ent Entry) (bool, error)) error {
	if onSelect == nil {
		return nil
	}

	for _, key := range db.SortedKeyList() {
		cont, err := onSelect(key, db.entries[key])
		if err != nil {
			return err
		}
		if !cont {
			break
		}
	}

	return nil
}

// SelectKeys matches entries with the specified key(s). If no keys are
// specified then all keys are matched (SelectAll() maybe more appropriate in
// that case). onSelect can be nil.
//
// Returns the last matched entry or an error if no entry was matched.
func (db *Session) SelectKeys(onSelect func(key int, ent Entry) error, keys ...int) (Entry, error) {
	var entry Entry

	if onSelect == nil {
		onSelect = func(_ int, _ Entry) error { return nil }
	}

	keyList := keys
	if len(keys) == 0 {
		keyList = db.SortedKeyList()
	}

	for _, key := range keyList {
		ent, ok := db.entries[key]
		if !ok {
			continue
		}
		entry = ent
		if err := onSelect(key, entry); err != nil {
			return entry, err
		}
	}

	if entry == nil {
		return nil, curated.Errorf(SelectEmpty)
	}

	return entry, nil
}
