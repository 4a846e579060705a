// File: methods_adjacent.go
// Role: Neighborhood APIs: OutEdges, Successors, Predecessors, OutDegree, InDegree.
// Determinism:
//   - All results follow edge insertion order.
//   - Parallel edges are reported once per instance (Successors may repeat a NodeID).

package core

// OutEdges returns the outgoing edges of id in insertion order.
//
// Errors:
//   - ErrVertexNotFound: id outside the arena.
//
// Complexity: O(deg⁺(id)).
func (g *Graph) OutEdges(id NodeID) ([]*Edge, error) {
	if !g.HasVertex(id) {
		return nil, ErrVertexNotFound
	}
	out := make([]*Edge, len(g.out[id]))
	for i, eid := range g.out[id] {
		out[i] = g.edges[eid]
	}

	return out, nil
}

// Successors returns the targets of id's outgoing edges, one entry per edge.
// Complexity: O(deg⁺(id)).
func (g *Graph) Successors(id NodeID) ([]NodeID, error) {
	if !g.HasVertex(id) {
		return nil, ErrVertexNotFound
	}
	out := make([]NodeID, len(g.out[id]))
	for i, eid := range g.out[id] {
		out[i] = g.edges[eid].To
	}

	return out, nil
}

// Predecessors returns the sources of id's incoming edges, one entry per edge.
// Complexity: O(deg⁻(id)).
func (g *Graph) Predecessors(id NodeID) ([]NodeID, error) {
	if !g.HasVertex(id) {
		return nil, ErrVertexNotFound
	}
	out := make([]NodeID, len(g.in[id]))
	for i, eid := range g.in[id] {
		out[i] = g.edges[eid].From
	}

	return out, nil
}

// OutDegree returns the number of outgoing edges of id (0 for unknown ids).
func (g *Graph) OutDegree(id NodeID) int {
	if !g.HasVertex(id) {
		return 0
	}

	return len(g.out[id])
}

// InDegree returns the number of incoming edges of id (0 for unknown ids).
func (g *Graph) InDegree(id NodeID) int {
	if !g.HasVertex(id) {
		return 0
	}

	return len(g.in[id])
}
