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

// Package reference loads recordings from disk so that they can be compared
// with a rendered stream. WAV and MP3 files are supported.
//
// Recordings are always mono. The left channel is taken from stereo files.
// Sample values are normalised to the range -1 to +1, which is the range of
// the samples produced by the musicbox package.
package reference
