// Package bfs provides breadth-first search over a core.Graph.
//
// What
//
//   - Explore vertices in non-decreasing distance (edge count) from a start.
//   - Forward follows edges From -> To, Reverse follows To -> From. On a
//     dependency graph, Reverse from a module yields every module whose
//     value depends on it.
//   - Result carries Order, Depth and Parent; PathTo rebuilds tree paths.
//   - Parallel edges collapse: each vertex is visited once.
//
// Determinism
//
//	core.Successors and core.Predecessors return neighbors in edge-insertion
//	order, so the visit sequence is reproducible.
//
// Complexity (V = |Vertices|, E = |Edges|)
//
//   - Time:   O(V + E)
//   - Memory: O(V)
//
// Errors
//
//   - ErrGraphNil             if the graph pointer is nil.
//   - ErrStartVertexNotFound  if the start vertex does not exist.
//   - ErrOptionViolation      for a negative MaxDepth or unknown Direction.
//   - ErrNeighbors            if neighbor lookup fails.
//   - ctx.Err() on cancellation, and wrapped OnVisit errors.
package bfs
