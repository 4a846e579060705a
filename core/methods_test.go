// SPDX-License-Identifier: MIT
// Package core_test verifies core.Graph contracts: arena handles, directed
// multi-edges, deterministic enumeration and cloning.

package core_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/modgraph/core"
)

// newArena builds a graph with n vertices labeled "v0".."v<n-1>".
func newArena(t *testing.T, n int, opts ...core.GraphOption) *core.Graph {
	t.Helper()
	g := core.NewGraph(opts...)
	for i := 0; i < n; i++ {
		id, err := g.AddVertex(core.NodeID(i).String())
		require.NoError(t, err)
		require.Equal(t, core.NodeID(i), id)
	}

	return g
}

// TestGraph_AddVertex checks handle assignment and label validation.
func TestGraph_AddVertex(t *testing.T) {
	g := core.NewGraph()

	_, err := g.AddVertex("")
	require.ErrorIs(t, err, core.ErrEmptyLabel)

	a, err := g.AddVertex("A")
	require.NoError(t, err)
	b, err := g.AddVertex("B")
	require.NoError(t, err)

	assert.Equal(t, core.NodeID(0), a)
	assert.Equal(t, core.NodeID(1), b)
	assert.Equal(t, 2, g.VertexCount())
	assert.Equal(t, []core.NodeID{0, 1}, g.Vertices())
	assert.False(t, g.HasVertex(2))
	assert.False(t, g.HasVertex(-1))

	v, err := g.Vertex(b)
	require.NoError(t, err)
	assert.Equal(t, "B", v.Label)

	_, err = g.Vertex(7)
	require.ErrorIs(t, err, core.ErrVertexNotFound)
}

// TestGraph_AddEdge_Constraints covers loop, multi-edge and missing-vertex guards.
func TestGraph_AddEdge_Constraints(t *testing.T) {
	g := newArena(t, 2)

	_, err := g.AddEdge(0, 5)
	require.ErrorIs(t, err, core.ErrVertexNotFound)

	_, err = g.AddEdge(1, 1)
	require.ErrorIs(t, err, core.ErrLoopNotAllowed)

	eid, err := g.AddEdge(1, 0)
	require.NoError(t, err)
	assert.Equal(t, "e1", eid)

	_, err = g.AddEdge(1, 0)
	require.ErrorIs(t, err, core.ErrMultiEdgeNotAllowed)

	looped := newArena(t, 1, core.WithLoops())
	_, err = looped.AddEdge(0, 0)
	require.NoError(t, err)
	assert.True(t, looped.Looped())
}

// TestGraph_ParallelEdges verifies that every instance is kept, counted and
// removable one at a time.
func TestGraph_ParallelEdges(t *testing.T) {
	g := newArena(t, 3, core.WithMultiEdges())
	require.True(t, g.Multigraph())

	first, err := g.AddEdge(2, 0)
	require.NoError(t, err)
	_, err = g.AddEdge(2, 1)
	require.NoError(t, err)
	second, err := g.AddEdge(2, 0)
	require.NoError(t, err)

	assert.Equal(t, 3, g.EdgeCount())
	assert.Equal(t, 2, g.Multiplicity(2, 0))

	succ, err := g.Successors(2)
	require.NoError(t, err)
	assert.Equal(t, []core.NodeID{0, 1, 0}, succ)

	pred, err := g.Predecessors(0)
	require.NoError(t, err)
	assert.Equal(t, []core.NodeID{2, 2}, pred)

	// FindEdge picks the oldest instance.
	found, ok := g.FindEdge(2, 0)
	require.True(t, ok)
	assert.Equal(t, first, found)

	require.NoError(t, g.RemoveEdge(found))
	assert.Equal(t, 1, g.Multiplicity(2, 0))
	found, ok = g.FindEdge(2, 0)
	require.True(t, ok)
	assert.Equal(t, second, found)

	succ, err = g.Successors(2)
	require.NoError(t, err)
	assert.Equal(t, []core.NodeID{1, 0}, succ, "order of survivors is preserved")
}

// TestGraph_RemoveEdge_Missing returns the sentinel.
func TestGraph_RemoveEdge_Missing(t *testing.T) {
	g := newArena(t, 2)
	require.ErrorIs(t, g.RemoveEdge("e9"), core.ErrEdgeNotFound)

	_, err := g.GetEdge("e9")
	require.ErrorIs(t, err, core.ErrEdgeNotFound)
}

// TestGraph_EdgeIDsNeverReused keeps IDs monotonic across removals.
func TestGraph_EdgeIDsNeverReused(t *testing.T) {
	g := newArena(t, 2)
	eid, err := g.AddEdge(1, 0)
	require.NoError(t, err)
	require.NoError(t, g.RemoveEdge(eid))

	again, err := g.AddEdge(1, 0)
	require.NoError(t, err)
	assert.Equal(t, "e2", again)
	assert.False(t, g.HasEdge(0, 1), "edges are directed")
	assert.True(t, g.HasEdge(1, 0))
}

// TestGraph_EdgesInsertionOrder checks ordering past e9 (numeric, not lexicographic).
func TestGraph_EdgesInsertionOrder(t *testing.T) {
	g := newArena(t, 12, core.WithMultiEdges())
	for i := 1; i < 12; i++ {
		_, err := g.AddEdge(core.NodeID(i), 0)
		require.NoError(t, err)
	}
	edges := g.Edges()
	require.Len(t, edges, 11)
	for i, e := range edges {
		assert.Equal(t, core.NodeID(i+1), e.From)
	}
	assert.Equal(t, "e10", edges[9].ID)
}

// TestGraph_Degrees covers in/out degree including unknown handles.
func TestGraph_Degrees(t *testing.T) {
	g := newArena(t, 3, core.WithMultiEdges())
	_, _ = g.AddEdge(2, 1)
	_, _ = g.AddEdge(2, 0)
	_, _ = g.AddEdge(1, 0)

	assert.Equal(t, 2, g.OutDegree(2))
	assert.Equal(t, 2, g.InDegree(0))
	assert.Zero(t, g.OutDegree(9))
	assert.Zero(t, g.InDegree(-1))

	out, err := g.OutEdges(2)
	require.NoError(t, err)
	require.Len(t, out, 2)
	assert.Equal(t, core.NodeID(1), out[0].To)

	_, err = g.OutEdges(9)
	require.ErrorIs(t, err, core.ErrVertexNotFound)
	_, err = g.Successors(9)
	require.ErrorIs(t, err, core.ErrVertexNotFound)
	_, err = g.Predecessors(9)
	require.ErrorIs(t, err, core.ErrVertexNotFound)
}

// TestGraph_Clone verifies deep copy and edge-ID continuity.
func TestGraph_Clone(t *testing.T) {
	g := newArena(t, 3, core.WithMultiEdges())
	_, _ = g.AddEdge(2, 1)
	_, _ = g.AddEdge(1, 0)

	c := g.Clone()
	assert.Equal(t, g.Edges(), c.Edges())

	eid, err := c.AddEdge(2, 0)
	require.NoError(t, err)
	assert.Equal(t, "e3", eid)
	assert.Equal(t, 2, g.EdgeCount(), "source graph is untouched")
	assert.Equal(t, 3, c.EdgeCount())

	edge, err := g.GetEdge("e1")
	require.NoError(t, err)
	require.NoError(t, c.RemoveEdge("e1"))
	assert.True(t, g.HasEdge(edge.From, edge.To))
}
