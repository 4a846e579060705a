// SPDX-License-Identifier: MIT
// Package: modgraph/strategy
//
// errors.go - sentinel errors for the strategy package.
//
// Error policy:
//   • Only sentinel variables are exposed; callers branch with errors.Is.
//   • Context is attached at the call site with %w.
//   • Strategy constructors validate eagerly and panic on programmer error
//     (inverted ranges, no choices). Generate itself never panics.

package strategy

import "errors"

// ErrEmptyCollection indicates an Index was resolved against a collection of size 0.
var ErrEmptyCollection = errors.New("strategy: index into empty collection")

// ErrBadRange indicates a range whose Min is greater than its Max, or a negative bound
// where only non-negative sizes make sense.
var ErrBadRange = errors.New("strategy: invalid range")

// ErrNoChoices indicates Weighted was given no choice with a positive weight.
var ErrNoChoices = errors.New("strategy: no weighted choices")
