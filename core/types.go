// Package core defines the arena-indexed Graph, Vertex and Edge types used to
// model module dependency graphs.
//
// Vertices live in an arena and are addressed by NodeID, their creation index.
// Handles are dense (0..V-1), stable for the graph's lifetime and never reused;
// there is no vertex removal. Edges are directed and carry a monotonic textual
// ID ("e1", "e2", ...), so parallel edges between the same endpoints stay
// individually addressable.
//
// Errors:
//
//	ErrEmptyLabel          - vertex label is the empty string.
//	ErrVertexNotFound      - NodeID outside the arena.
//	ErrEdgeNotFound        - requested edge does not exist.
//	ErrLoopNotAllowed      - self-loop when loops are disabled.
//	ErrMultiEdgeNotAllowed - parallel edge when multi-edges are disabled.
package core

import (
	"errors"
	"strconv"
)

// Sentinel errors for core graph operations.
var (
	// ErrEmptyLabel indicates that AddVertex was called with an empty label.
	ErrEmptyLabel = errors.New("core: vertex label is empty")

	// ErrVertexNotFound indicates an operation referenced a handle outside the arena.
	ErrVertexNotFound = errors.New("core: vertex not found")

	// ErrEdgeNotFound indicates an operation referenced a non-existent edge.
	ErrEdgeNotFound = errors.New("core: edge not found")

	// ErrLoopNotAllowed indicates a self-loop was attempted when loops are disabled.
	ErrLoopNotAllowed = errors.New("core: self-loop not allowed")

	// ErrMultiEdgeNotAllowed indicates a parallel edge was attempted when multi-edges are disabled.
	ErrMultiEdgeNotAllowed = errors.New("core: multi-edges not allowed")
)

// NodeID is a stable vertex handle: the vertex's creation index.
type NodeID int

// String renders the handle as "n<index>".
func (id NodeID) String() string { return "n" + strconv.Itoa(int(id)) }

// Vertex is one arena slot.
type Vertex struct {
	// ID is the creation index of this vertex.
	ID NodeID

	// Label is a caller-chosen, non-empty name used in diagnostics.
	Label string
}

// Edge is a directed connection From→To.
type Edge struct {
	// ID uniquely identifies this edge in the Graph ("e" + sequence).
	ID string

	// From is the source vertex (the dependent, in dependency graphs).
	From NodeID

	// To is the destination vertex (the dependency).
	To NodeID

	// seq is the numeric part of ID; it orders edges by insertion.
	seq uint64
}

// GraphOption configures behavior of a Graph before creation.
type GraphOption func(g *Graph)

// WithMultiEdges permits parallel edges between the same vertices.
func WithMultiEdges() GraphOption {
	return func(g *Graph) { g.allowMulti = true }
}

// WithLoops permits self-loops (edges from a vertex to itself).
func WithLoops() GraphOption {
	return func(g *Graph) { g.allowLoops = true }
}

// Graph is a directed graph over an arena of vertices.
//
// out[v] and in[v] hold edge IDs in insertion order, one entry per edge
// instance, so parallel edges appear once each.
//
// A Graph is not safe for concurrent mutation. It is meant to be owned by a
// single goroutine (one randomized test case).
type Graph struct {
	allowMulti bool // allow parallel edges
	allowLoops bool // allow self-loops

	nextEdgeID uint64           // monotonic edge sequence
	vertices   []*Vertex        // arena, indexed by NodeID
	edges      map[string]*Edge // edge ID → Edge
	out        [][]string       // outgoing edge IDs per vertex
	in         [][]string       // incoming edge IDs per vertex
}

// NewGraph creates an empty directed Graph.
// By default: no loops, no multi-edges.
// Complexity: O(len(opts)).
func NewGraph(opts ...GraphOption) *Graph {
	g := &Graph{
		edges: make(map[string]*Edge),
	}
	for _, opt := range opts {
		opt(g)
	}

	return g
}

// Multigraph reports whether parallel edges are permitted.
func (g *Graph) Multigraph() bool { return g.allowMulti }

// Looped reports whether self-loops are permitted.
func (g *Graph) Looped() bool { return g.allowLoops }
