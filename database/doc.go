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

// Package database keeps entries of registered types in a flat text file, one
// entry per line:
//
//	key,id,field1,field2,...
//
// The key is a three digit number that identifies the entry and the id names
// its type.
//
// All access happens inside a session. StartSession() reads the file and
// EndSession() writes it back if the activity allows it and the caller asks
// for the changes to be committed:
//
//	db, err := database.StartSession(path, database.ActivityModifying, trackstore.Init)
//	if err != nil {
//		return err
//	}
//	defer db.EndSession(true)
//
// ActivityReading sessions never write the file. ActivityCreating behaves like
// ActivityModifying except that a missing file is not an error.
//
// The init function passed to StartSession() registers the entry types the
// session understands:
//
//	func Init(db *database.Session) error {
//		return db.RegisterEntryType("track", deserialise)
//	}
//
// The deserialiser receives everything after the id as a single string. The
// fields are not split by the database because the final field of an entry
// may itself contain the separator, as a JSON document does. An error from a
// deserialiser fails the StartSession() call.
package database
