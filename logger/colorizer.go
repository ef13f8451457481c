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

import (
	"bytes"
	"io"
)

// ANSI sequences used by the Colorizer.
const (
	boldPen   = "\033[1m"
	dimRed    = "\033[2;31m"
	normalPen = "\033[0m"
)

// Colorizer applies basic coloring rules to logging output. The tag of an
// entry is written in bold and any continuation lines are dimmed.
type Colorizer struct {
	out io.Writer
}

// NewColorizer is the preferred method if initialisation for the Colorizer type.
func NewColorizer(out io.Writer) Colorizer {
	return Colorizer{out: out}
}

// Write implements the io.Writer interface. Entries are expected to be
// written one at a time, as they are by a Logger echo.
func (c Colorizer) Write(p []byte) (int, error) {
	var b bytes.Buffer

	first, rest, more := bytes.Cut(bytes.TrimRight(p, "\n"), []byte("\n"))

	if tag, detail, ok := bytes.Cut(first, []byte(": ")); ok {
		b.WriteString(boldPen)
		b.Write(tag)
		b.WriteString(normalPen)
		b.WriteString(": ")
		b.Write(detail)
	} else {
		b.Write(first)
	}
	b.WriteByte('\n')

	if more {
		b.WriteString(dimRed)
		b.Write(rest)
		b.WriteByte('\n')
		b.WriteString(normalPen)
	}

	if _, err := c.out.Write(b.Bytes()); err != nil {
		return 0, err
	}

	return len(p), nil
}
