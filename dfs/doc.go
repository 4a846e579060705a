// Package dfs implements depth-first algorithms on a core.Graph: topological
// sort and cycle extraction.
//
// What:
//
//   - TopologicalSort: a linear ordering of a DAG in which every edge u→v has u
//     before v; returns ErrCycleDetected otherwise. Deterministic for a given
//     graph (roots ascending, successors in insertion order).
//   - FindCycle: one concrete directed cycle, used to explain a failed sort.
//
// Why:
//   - The expected-value oracle settles dependencies before dependents by
//     walking the topological order backwards.
//   - The transaction batch builder publishes in reverse topological order and
//     invokes in forward order.
//
// Complexity:
//
//   - TopologicalSort: Time O(V+E), Memory O(V)
//   - FindCycle:       Time O(V+E), Memory O(V)
//
// Errors:
//
//   - ErrGraphNil        graph pointer is nil
//   - ErrCycleDetected   cycle discovered during TopologicalSort
//   - ErrNeighborFetch   successor lookup failed
//   - context.Canceled   sort canceled via WithCancelContext
package dfs
