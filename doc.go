// Package modgraph is a randomized test oracle for a module loader that
// publishes, upgrades and links packages of on-chain modules.
//
// A case draws a set of modules and a random dependency DAG, publishes every
// module in dependency order, invokes each one with the value it is expected
// to compute, then mutates the graph (add or drop an edge and upgrade the
// dependent) and invokes again. A loader that serves stale code after an
// upgrade computes the wrong value and the entry function aborts, which the
// oracle reports as a status mismatch.
//
// Layout:
//
//	strategy/   seeded value generators and bounded indices
//	core/       arena multigraph keyed by creation index
//	bfs/, dfs/  traversals: dependents, topological order, cycle witness
//	builder/    deterministic topology fixtures
//	account/    addresses, module ids, payloads, signed transactions
//	modgen/     package manifest and source generation
//	pkgbuild/   package compiler producing code and metadata blobs
//	executor/   in-memory chain with a module cache
//	loader/     dependency graph, expected-value oracle, batches, mutations
//	config/     YAML and environment configuration
//	replay/     badger store of failing seeds
//	harness/    parallel case runner with prometheus metrics
//	cmd/modgraph  command line: run, shape, replay, failures
package modgraph
