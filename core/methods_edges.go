// File: methods_edges.go
// Role: Edge lifecycle & queries: AddEdge/RemoveEdge/FindEdge/HasEdge/Multiplicity/
//       GetEdge/Edges/EdgeCount, plus nextEdgeID().
// Determinism:
//   - Edges() returns edges in insertion order (numeric part of Edge.ID asc).
//   - FindEdge() returns the oldest surviving edge for the pair.
//   - nextEdgeID() is monotonic and stable ("e" + decimal); IDs are never reused.

package core

import (
	"sort"
	"strconv"
)

// edgeIDPrefix is the textual prefix for edge identifiers.
const edgeIDPrefix = 'e'

// AddEdge creates a new directed edge from→to and returns its ID.
//
// Steps:
//  1. Validate both handles (ErrVertexNotFound).
//  2. Reject loops unless WithLoops (ErrLoopNotAllowed).
//  3. Reject parallel edges unless WithMultiEdges (ErrMultiEdgeNotAllowed).
//  4. Allocate the next ID, store the edge, append to out[from] and in[to].
//
// Complexity: O(1) amortized, plus O(deg(from)) for the multi-edge check
// when multi-edges are disabled.
func (g *Graph) AddEdge(from, to NodeID) (string, error) {
	if !g.HasVertex(from) || !g.HasVertex(to) {
		return "", ErrVertexNotFound
	}
	if from == to && !g.allowLoops {
		return "", ErrLoopNotAllowed
	}
	if !g.allowMulti {
		if _, ok := g.FindEdge(from, to); ok {
			return "", ErrMultiEdgeNotAllowed
		}
	}

	seq, eid := nextEdgeID(g)
	g.edges[eid] = &Edge{ID: eid, From: from, To: to, seq: seq}
	g.out[from] = append(g.out[from], eid)
	g.in[to] = append(g.in[to], eid)

	return eid, nil
}

// RemoveEdge deletes one edge by ID.
// Removing an absent edge returns ErrEdgeNotFound (no silent ignore).
//
// Complexity: O(deg(from) + deg(to)) to splice the adjacency lists while
// keeping the remaining edges in insertion order.
func (g *Graph) RemoveEdge(eid string) error {
	e, ok := g.edges[eid]
	if !ok {
		return ErrEdgeNotFound
	}
	delete(g.edges, eid)
	g.out[e.From] = removeID(g.out[e.From], eid)
	g.in[e.To] = removeID(g.in[e.To], eid)

	return nil
}

// FindEdge returns the ID of the oldest edge from→to, if any.
// Complexity: O(deg(from)).
func (g *Graph) FindEdge(from, to NodeID) (string, bool) {
	if !g.HasVertex(from) || !g.HasVertex(to) {
		return "", false
	}
	for _, eid := range g.out[from] {
		if g.edges[eid].To == to {
			return eid, true
		}
	}

	return "", false
}

// HasEdge reports whether at least one edge from→to exists.
func (g *Graph) HasEdge(from, to NodeID) bool {
	_, ok := g.FindEdge(from, to)
	return ok
}

// Multiplicity counts the parallel edges from→to.
// Complexity: O(deg(from)).
func (g *Graph) Multiplicity(from, to NodeID) int {
	if !g.HasVertex(from) || !g.HasVertex(to) {
		return 0
	}
	n := 0
	for _, eid := range g.out[from] {
		if g.edges[eid].To == to {
			n++
		}
	}

	return n
}

// GetEdge returns the Edge with the given ID or ErrEdgeNotFound.
// The returned *Edge must be treated as read-only.
func (g *Graph) GetEdge(eid string) (*Edge, error) {
	e, ok := g.edges[eid]
	if !ok {
		return nil, ErrEdgeNotFound
	}

	return e, nil
}

// Edges returns all edges in insertion order.
// Complexity: O(E log E).
func (g *Graph) Edges() []*Edge {
	out := make([]*Edge, 0, len(g.edges))
	for _, e := range g.edges {
		out = append(out, e)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].seq < out[j].seq })

	return out
}

// EdgeCount returns the total number of edges, counting parallel edges individually.
func (g *Graph) EdgeCount() int { return len(g.edges) }

// nextEdgeID reserves the next sequence number and renders "e<seq>"
// without fmt allocations.
func nextEdgeID(g *Graph) (uint64, string) {
	g.nextEdgeID++
	buf := make([]byte, 0, 1+20)
	buf = append(buf, edgeIDPrefix)
	buf = strconv.AppendUint(buf, g.nextEdgeID, 10)

	return g.nextEdgeID, string(buf)
}

// removeID drops the first occurrence of eid, preserving order.
func removeID(ids []string, eid string) []string {
	for i, id := range ids {
		if id == eid {
			return append(ids[:i:i], ids[i+1:]...)
		}
	}

	return ids
}
