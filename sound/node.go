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

package sound

// SampleRate is the rate at which all nodes generate samples.
const SampleRate = 44100

// Node is implemented by every generator in the signal graph.
type Node interface {
	// NextSample advances the node by one tick and returns the sample for
	// that tick. The boolean is false once the node no longer contributes to
	// the output.
	NextSample() (float32, bool)

	// Ended returns true if the node has reached the end of its life. It does
	// not advance the node.
	Ended() bool
}
