// SPDX-License-Identifier: MIT

// Package builder assembles deterministic dependency-graph fixtures.
//
// A Topology is a list of module names, their self values and edges given as
// (dependent, dependency) creation indices with dependent > dependency.
// Constructors grow the node set on demand and append edges, so several
// constructors can be composed in one Build call; overlapping edges become
// parallel edges.
//
// Constructors:
//
//   - Chain(n):          i -> i-1 for i = 1..n-1.
//   - FanIn(n):          every node 1..n-1 depends on node 0.
//   - FanOut(n):         node n-1 depends on every other node.
//   - Diamond():         3 -> {1, 2} -> 0.
//   - Complete(n):       every i depends on every j < i.
//   - RandomSparse(n,p): each pair i > j independently with probability p.
//
// Topology.Specs and Topology.Attempts convert a fixture into the inputs of
// loader.Construct. ByName resolves a constructor from a command-line shape.
//
// Determinism: same options, seed and constructor order give identical
// topologies. Only RandomSparse consumes the RNG.
package builder
