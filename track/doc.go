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

// Package track is the document describing a piece of music: the tempo and a
// list of instruments, each with a schedule of notes. The document is
// exchanged as JSON:
//
//	{
//		"tempo": 120,
//		"instruments": [
//			{"name": "sawtooth", "gain": 0, "notes": {"0": ["A4", "C5"], "2": ["E5"]}},
//			{"name": "kick", "gain": -6, "notes": {"0": ["A0"], "1": ["A0"]}}
//		]
//	}
//
// Note keys are beat indexes and values are lists of key names from the pitch
// package. Valid instrument names are "sawtooth", "sine", "square" and "kick".
// The kick instrument ignores the key, but the key must still be valid.
//
// Documents are decoded and validated with Decode(). A valid Payload is turned
// into the input of the engine with Payload.MusicBox().
package track
