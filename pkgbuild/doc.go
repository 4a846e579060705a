// Package pkgbuild compiles a package written by modgen into publishable
// artifacts: one code blob per module plus package metadata.
//
// Build reads package.yaml and the module source, checks that they agree,
// and resolves every call site against the declared `use` aliases. The
// compiled module is a JSON document the executor can load and link; the
// metadata carries the package version the executor's upgrade policy checks.
//
// Errors: every rejection wraps ErrBuild.
package pkgbuild
