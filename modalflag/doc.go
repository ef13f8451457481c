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

// Package modalflag is a wrapper for the flag package in the Go standard
// library. It handles program modes (and sub-modes) and allows different
// flags for each mode.
//
// Arguments are given to NewArgs() and then parsed with Parse(). Parse() can
// be called repeatedly, once for each level of mode:
//
//	md := modalflag.Modes{Output: os.Stdout}
//	md.NewArgs(os.Args[1:])
//	md.AddSubModes("RENDER", "PLAY", "SERVE")
//	_, _ = md.Parse()
//
//	switch md.Mode() {
//	case "SERVE":
//		md.NewMode()
//		addr := md.AddString("addr", "localhost:3000", "address to listen on")
//		p, err := md.Parse()
//		switch p {
//		case modalflag.ParseError:
//			return err
//		case modalflag.ParseHelp:
//			return nil
//		}
//		serve(*addr, md.RemainingArgs())
//	}
//
// The first sub-mode in the list is the default mode. It is selected if the
// first argument after the flags is not one of the listed sub-modes, in which
// case that argument is left for the next call to Parse(). Sub-mode
// comparisons are case insensitive and modes are always reported in upper
// case.
//
// Once the final mode has been parsed, non-flag arguments are retrieved with
// RemainingArgs() or GetArg().
//
// A "-help" flag is handled automatically. The help message lists the flags
// for the current mode and any sub-modes, and is written to the Output field.
package modalflag
