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

package statsview_test

import (
	"bytes"
	"context"
	"testing"

	"github.com/dawstream/dawstream/statsview"
	"github.com/dawstream/dawstream/test"
)

func TestStub(t *testing.T) {
	if statsview.Available() {
		t.Skip("statsview is included in the build")
	}

	var b bytes.Buffer
	statsview.Launch(context.Background(), &b)
	test.ExpectEquality(t, b.Len(), 0)
}
