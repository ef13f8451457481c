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

// Package sound is the signal graph used to synthesise the output stream. Each
// type in the package implements the Node interface and generates one sample
// each time NextSample() is called. Nodes are composed by wrapping: a Gain
// wraps a Reverb which wraps an Oscillator, for example.
//
// All nodes run at the fixed SampleRate. Nodes have a finite lifetime, after
// which NextSample() returns false and Ended() returns true.
//
// Nodes are not safe for concurrent use. A node graph belongs to a single
// stream and is driven from a single goroutine.
package sound
