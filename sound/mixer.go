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

import "slices"

// Mixer sums the output of its child nodes.
type Mixer struct {
	nodes []Node
}

// NewMixer is the preferred method of initialisation for the Mixer type.
func NewMixer(nodes ...Node) *Mixer {
	return &Mixer{nodes: nodes}
}

// Add nodes to the mixer.
func (m *Mixer) Add(nodes ...Node) {
	m.nodes = append(m.nodes, nodes...)
}

// Retire removes nodes that have ended. Returns the number of nodes removed.
func (m *Mixer) Retire() int {
	n := len(m.nodes)
	m.nodes = slices.DeleteFunc(m.nodes, func(nd Node) bool {
		return nd.Ended()
	})
	return n - len(m.nodes)
}

// Len returns the number of nodes in the mixer.
func (m *Mixer) Len() int {
	return len(m.nodes)
}

// NextSample implements the Node interface. Nodes that return no sample this
// tick are skipped. The boolean is false only if none of the nodes returned a
// sample.
func (m *Mixer) NextSample() (float32, bool) {
	var sum float32
	var present bool
	for _, n := range m.nodes {
		if v, ok := n.NextSample(); ok {
			sum += v
			present = true
		}
	}
	return sum, present
}

// Ended implements the Node interface. A mixer with no nodes has ended.
func (m *Mixer) Ended() bool {
	for _, n := range m.nodes {
		if !n.Ended() {
			return false
		}
	}
	return true
}
