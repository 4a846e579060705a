// Package dfs: FindCycle extracts one directed cycle for diagnostics.
//
// The oracle never expects a cycle: edges always point from a higher creation
// index to a lower one. When TopologicalSort nevertheless fails, FindCycle
// names the offending vertices so the fault can be reported loudly.
//
// Complexity:
//
//   - Time:   O(V + E)
//   - Memory: O(V)     (state slice + current path)
package dfs

import (
	"github.com/katalvlaran/modgraph/core"
)

// FindCycle returns the vertices of one directed cycle in g, in edge order,
// starting and ending at the same vertex (e.g. [n2 n0 n1 n2]).
// Returns (nil, false, nil) for an acyclic graph.
func FindCycle(g *core.Graph) ([]core.NodeID, bool, error) {
	if g == nil {
		return nil, false, ErrGraphNil
	}
	f := &cycleFinder{
		graph: g,
		state: make([]int, g.VertexCount()),
	}
	for _, v := range g.Vertices() {
		if f.state[v] != White {
			continue
		}
		cycle, err := f.visit(v)
		if err != nil {
			return nil, false, err
		}
		if cycle != nil {
			return cycle, true, nil
		}
	}

	return nil, false, nil
}

type cycleFinder struct {
	graph *core.Graph
	state []int
	path  []core.NodeID
}

// visit returns the first cycle reachable from id, or nil.
func (f *cycleFinder) visit(id core.NodeID) ([]core.NodeID, error) {
	f.state[id] = Gray
	f.path = append(f.path, id)

	succ, err := f.graph.Successors(id)
	if err != nil {
		return nil, err
	}
	for _, next := range succ {
		switch f.state[next] {
		case Gray:
			// back-edge: the cycle is the path suffix starting at next
			start := 0
			for i, v := range f.path {
				if v == next {
					start = i
					break
				}
			}
			cycle := append([]core.NodeID(nil), f.path[start:]...)
			return append(cycle, next), nil
		case White:
			cycle, err := f.visit(next)
			if err != nil || cycle != nil {
				return cycle, err
			}
		}
	}

	f.state[id] = Black
	f.path = f.path[:len(f.path)-1]

	return nil, nil
}
