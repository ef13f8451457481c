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

// Package curated is a helper package for the plain Go language error type.
// Curated errors implement the error interface.
//
// Curated errors are created with the Errorf() function. This is similar to
// the Errorf() function in the fmt package. It takes a formatting pattern and
// placeholder values and returns an error. The pattern is what identifies the
// error, so patterns that callers need to test for are exported as constants
// by the package that creates them. For example, the packet package:
//
//	const UnknownTag = "packet: unrecognised tag byte (%#02x)"
//
//	err := curated.Errorf(UnknownTag, b)
//
//	if curated.Is(err, packet.UnknownTag) {
//		...
//	}
//
// The Has() function is similar but checks if a pattern occurs somewhere in
// the error chain, where the chain is built by passing a curated error as one
// of the values of another:
//
//	e := curated.Errorf(packet.UnknownTag, b)
//	f := curated.Errorf("server: %v", e)
//
//	curated.Has(f, packet.UnknownTag) // true
//	curated.Is(f, packet.UnknownTag)  // false
//
// The IsAny() function answers whether the error was created by
// curated.Errorf(). We can think of the difference as being 'expected' and
// 'unexpected' errors.
//
// The Error() implementation normalises the error chain by removing duplicate
// adjacent parts. This removes the worry of when to add a prefix when
// wrapping. A chain such as:
//
//	trackstore: trackstore: file not found
//
// is printed as:
//
//	trackstore: file not found
//
// Chains are thought of as parts separated by the sub-string ": " as
// suggested on p239 of "The Go Programming Language" (Donovan, Kernighan).
package curated
