// File: methods_vertices.go
// Role: Vertex arena: AddVertex, HasVertex, Vertex, Vertices, VertexCount.
//
// Determinism:
//   - Handles are assigned in call order: the k-th AddVertex returns NodeID(k).
//   - Vertices() returns handles ascending.

package core

// AddVertex appends a vertex to the arena and returns its handle.
//
// Errors:
//   - ErrEmptyLabel: label == "".
//
// Complexity: O(1) amortized.
func (g *Graph) AddVertex(label string) (NodeID, error) {
	if label == "" {
		return 0, ErrEmptyLabel
	}
	id := NodeID(len(g.vertices))
	g.vertices = append(g.vertices, &Vertex{ID: id, Label: label})
	g.out = append(g.out, nil)
	g.in = append(g.in, nil)

	return id, nil
}

// HasVertex reports whether id addresses an arena slot.
// Complexity: O(1).
func (g *Graph) HasVertex(id NodeID) bool {
	return id >= 0 && int(id) < len(g.vertices)
}

// Vertex returns the vertex for id, or ErrVertexNotFound.
// The returned pointer is read-only by convention.
func (g *Graph) Vertex(id NodeID) (*Vertex, error) {
	if !g.HasVertex(id) {
		return nil, ErrVertexNotFound
	}

	return g.vertices[id], nil
}

// Vertices returns every handle in ascending order.
// Complexity: O(V).
func (g *Graph) Vertices() []NodeID {
	out := make([]NodeID, len(g.vertices))
	for i := range g.vertices {
		out[i] = NodeID(i)
	}

	return out
}

// VertexCount returns the arena size.
func (g *Graph) VertexCount() int { return len(g.vertices) }
