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

// Package trackstore keeps named track documents in a database file. The
// database package is used for the file handling and the package adds a
// "track" entry type to it:
//
//	000,track,default,{"tempo":120,"instruments":[...]}
//
// Functions that take a *database.Session work within a session started by
// the caller. The session must have been initialised with Init(). The Store
// type manages the sessions itself and is safe for concurrent use, which
// makes it suitable for use by HTTP handlers.
package trackstore
