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

package curated_test

import (
	"errors"
	"io"
	"testing"

	"github.com/dawstream/dawstream/curated"
	"github.com/dawstream/dawstream/test"
)

const testPattern = "test: value is %d"
const wrapPattern = "wrap: %v"

func TestIs(t *testing.T) {
	e := curated.Errorf(testPattern, 10)
	test.ExpectEquality(t, e.Error(), "test: value is 10")
	test.ExpectSuccess(t, curated.Is(e, testPattern))
	test.ExpectSuccess(t, curated.IsAny(e))
	test.ExpectFailure(t, curated.Is(e, wrapPattern))

	f := curated.Errorf(wrapPattern, e)
	test.ExpectFailure(t, curated.Is(f, testPattern))
	test.ExpectSuccess(t, curated.Has(f, testPattern))
	test.ExpectSuccess(t, curated.Has(f, wrapPattern))
}

func TestUncurated(t *testing.T) {
	e := errors.New("plain error")
	test.ExpectFailure(t, curated.IsAny(e))
	test.ExpectFailure(t, curated.Is(e, testPattern))
	test.ExpectFailure(t, curated.Has(e, testPattern))
	test.ExpectFailure(t, curated.IsAny(nil))
}

func TestDuplicateParts(t *testing.T) {
	e := curated.Errorf("trackstore: %v", curated.Errorf("trackstore: %v", "file not found"))
	test.ExpectEquality(t, e.Error(), "trackstore: file not found")

	// duplicates are only removed when adjacent
	e = curated.Errorf("a: b: %v", "a")
	test.ExpectEquality(t, e.Error(), "a: b: a")
}

func TestUnwrap(t *testing.T) {
	e := curated.Errorf("reference: %v", io.ErrUnexpectedEOF)
	test.ExpectSuccess(t, errors.Is(e, io.ErrUnexpectedEOF))
}
