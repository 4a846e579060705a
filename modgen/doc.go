// Package modgen writes the on-disk source package for one module of the
// dependency graph.
//
// A generated package is a directory <base>/<address>_<name> holding:
//
//   - package.yaml          manifest: name, version, address, dependencies
//   - sources/<name>.move   the module source
//
// The module exposes
//
//	public fun foo(): u64                       selfValue + Σ dep::foo()
//	public entry fun foo_entry(expected_value)  aborts with 42 on mismatch
//
// foo calls each dependency once per dependency edge, so a dependency reached
// through two parallel edges contributes twice. Its `use` declaration is
// emitted once.
//
// Output is a pure function of (module id, dependency list, self value):
// regenerating a package overwrites the previous files.
package modgen
