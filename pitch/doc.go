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

// Package pitch is the static table of the 88 piano keys, from A0 to C7, with
// their frequencies in standard twelve-tone equal temperament (A4 = 440Hz).
//
// Keys are identified by their MIDI index and are ordered by it. The text
// form of a key is its name, for example "A4" or "Eb3". Key names count the
// octave from A rather than from C, so the key after G#0/Ab0 is A1 and the C
// immediately above A0 is "C0".
package pitch
