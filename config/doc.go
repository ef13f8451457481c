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

// Package config loads the configuration file. The file is YAML and every
// field is optional:
//
//	addr: localhost:3000
//	store: /home/user/.config/dawstream/tracks.db
//	default_tempo: 120
//	log_echo: false
//	origins:
//	  - http://localhost:8080
//	assets: ""
//
// Fields missing from the file keep their default value. A missing file is not
// an error and results in the default configuration. Values from the command
// line override values from the file.
package config
