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

// Package version reports the name and version of the application. A release
// build sets the version number with the linker:
//
//	go build -ldflags "-X github.com/dawstream/dawstream/version.number=v0.1.0"
//
// Other builds are described by the VCS information embedded by the Go
// toolchain.
package version

import (
	"fmt"
	"runtime/debug"
)

// ApplicationName is the name to use when referring to the application. Also
// reported by the server's /version service.
const ApplicationName = "Dawstream"

// set by the linker for release builds
var number string

var (
	version  string
	revision string
)

// Version returns the version string, the revision string and whether this is
// a numbered release.
//
// An unnumbered build reports "unreleased" when VCS information is available
// and "local" when it is not (for example, with "go run").
func Version() (string, string, bool) {
	return version, revision, number != "" && version == number
}

// String returns the application name and version in a single line. The
// revision is included for unnumbered builds.
func String() string {
	v, r, release := Version()
	if release {
		return fmt.Sprintf("%s %s", ApplicationName, v)
	}
	return fmt.Sprintf("%s %s (%s)", ApplicationName, v, r)
}

// buildVCS extracts the revision from the build information. A revision with
// uncommitted changes is suffixed with "+dirty".
func buildVCS() (rev string, ok bool) {
	info, found := debug.ReadBuildInfo()
	if !found {
		return "", false
	}

	var dirty bool
	for _, s := range info.Settings {
		switch s.Key {
		case "vcs":
			ok = true
		case "vcs.revision":
			rev = s.Value
		case "vcs.modified":
			dirty = s.Value == "true"
		}
	}

	if rev != "" && dirty {
		rev += "+dirty"
	}
	return rev, ok
}

func init() {
	rev, vcs := buildVCS()

	revision = rev
	if revision == "" {
		revision = "no revision information"
	}

	switch {
	case number != "":
		version = number
	case vcs:
		version = "unreleased"
	default:
		version = "local"
	}
}
