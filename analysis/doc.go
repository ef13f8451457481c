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

// Package analysis measures sample buffers so that a rendered stream can be
// compared with a reference recording. The comparison is made in two ways:
// the RMS difference of the two buffers and the dominant frequency of each.
package analysis
