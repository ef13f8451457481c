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

// Package musicbox turns a schedule of notes into a stream of samples. The
// MusicBox type owns the schedule, activates nodes from the sound package at
// the start of each beat and mixes the active nodes into a single output
// sample each time NextSample() is called.
//
// Samples are pulled one at a time with NextSample() or in groups with
// Chunk(). The stream ends once every scheduled note has been activated and
// every active node has ended. There is no other way to stop a MusicBox and
// there is nothing to clean up when a MusicBox is abandoned.
//
// A MusicBox is not safe for concurrent use.
package musicbox
