// Package core provides the arena-indexed directed graph used to model module
// dependency graphs.
//
// The Graph G = (V,E) is deliberately narrow:
//
//   - Vertices are arena slots addressed by NodeID (creation index). Handles are
//     dense, stable and never reused; vertices are never removed.
//   - Edges are always directed. Parallel edges are opt-in (WithMultiEdges),
//     self-loops are opt-in (WithLoops).
//   - Every edge has a monotonic textual ID ("e1", "e2", …), so one instance of a
//     parallel bundle can be removed without touching its siblings.
//   - Adjacency is kept as per-vertex lists of edge IDs in insertion order, which
//     makes every enumeration deterministic without sorting.
//
// Core Methods:
//
//	// Vertex arena
//	AddVertex(label string) (NodeID, error)  // O(1)
//	HasVertex(id NodeID) bool                // O(1)
//	Vertices() []NodeID                      // O(V), ascending
//
//	// Edge lifecycle
//	AddEdge(from, to NodeID) (edgeID string, err error) // O(1)†
//	RemoveEdge(edgeID string) error                      // O(deg)
//	FindEdge(from, to NodeID) (string, bool)             // O(deg⁺(from))
//	Multiplicity(from, to NodeID) int                    // O(deg⁺(from))
//
//	// Neighborhood
//	Successors(id NodeID) ([]NodeID, error)   // one entry per edge
//	Predecessors(id NodeID) ([]NodeID, error) // one entry per edge
//
//	// Cloning
//	Clone() *Graph // O(V+E)
//
// † plus O(deg⁺(from)) when multi-edges are disabled.
//
// Concurrency:
//
//	A Graph is not safe for concurrent mutation; it is owned by exactly one
//	goroutine for its whole lifetime.
package core
