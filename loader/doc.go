// Package loader is a randomized dependency-graph oracle for a module loader.
//
// A DependencyGraph is a DAG of modules, one account per module, built from a
// list of node specs and a list of edge attempts. Edges always point from a
// module with a higher creation index (the dependent) to one with a lower
// creation index (the dependency), so the graph is acyclic by construction.
//
// Each module's foo() returns its self value plus foo() of every direct
// dependency, counted once per edge. The oracle recomputes these expected
// values from scratch in reverse topological order, emits publish
// transactions (dependencies first) followed by entry calls carrying the
// expected values, and checks that every transaction succeeds on the executor.
//
// Mutations are drawn 9:1 between Invoke (call a module again) and UpdateEdge
// (toggle one edge instance and upgrade the dependent module). A loader that
// fails to relink after an upgrade shows up as a MoveAbort on a later call.
//
// Parallel edges: edge attempts naming the same pair are not deduplicated. A
// dependency reached through k parallel edges contributes k times, both in the
// oracle and in the generated source. UpdateEdge on such a pair removes one
// instance at a time.
//
// Errors:
//
//   - ErrConstruction / *ConstructionError
//   - ErrSourceGenerationOrBuild / *BuildError
//   - ErrTopologicalSort / *TopologyError
//   - ErrExecutionStatusMismatch / *StatusMismatchError
//
// A DependencyGraph is not safe for concurrent use.
package loader
