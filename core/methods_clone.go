// File: methods_clone.go
// Role: Cloning graph instances.
// Determinism:
//   - Clone carries over nextEdgeID so future AddEdge calls on the clone continue the
//     textual sequence and never collide with existing edges.

package core

// Clone returns a deep copy: configuration, arena, edges and adjacency order.
// Complexity: O(V + E).
func (g *Graph) Clone() *Graph {
	clone := &Graph{
		allowMulti: g.allowMulti,
		allowLoops: g.allowLoops,
		nextEdgeID: g.nextEdgeID,
		vertices:   make([]*Vertex, len(g.vertices)),
		edges:      make(map[string]*Edge, len(g.edges)),
		out:        make([][]string, len(g.out)),
		in:         make([][]string, len(g.in)),
	}
	for i, v := range g.vertices {
		clone.vertices[i] = &Vertex{ID: v.ID, Label: v.Label}
		clone.out[i] = append([]string(nil), g.out[i]...)
		clone.in[i] = append([]string(nil), g.in[i]...)
	}
	for eid, e := range g.edges {
		clone.edges[eid] = &Edge{ID: e.ID, From: e.From, To: e.To, seq: e.seq}
	}

	return clone
}
