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

package logger

import "sync/atomic"

// Permission is consulted before an entry is added to the log.
type Permission interface {
	AllowLogging() bool
}

type allow struct{}

func (allow) AllowLogging() bool {
	return true
}

// Allow always permits logging.
var Allow Permission = allow{}

// Toggle is a Permission that can be switched on and off while the program is
// running. The zero value prohibits logging. Safe for concurrent use.
type Toggle struct {
	on atomic.Bool
}

// Set whether logging is permitted.
func (t *Toggle) Set(on bool) {
	t.on.Store(on)
}

// AllowLogging implements the Permission interface.
func (t *Toggle) AllowLogging() bool {
	return t.on.Load()
}
