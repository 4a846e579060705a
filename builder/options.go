// SPDX-License-Identifier: MIT
// Package: modgraph/builder
//
// options.go - functional options.
//
// Contract:
//   - Option constructors panic on meaningless input (nil funcs, k < 1).
//     Constructors themselves never panic.
//   - Seeding is explicit via WithSeed or WithRand.

package builder

import (
	"math/rand"
	"strconv"
)

// Option customizes a Build call.
type Option func(*config)

// WithNameScheme sets the module name generator: creation index -> name.
// Names must be valid identifiers and unique. Panics on nil.
func WithNameScheme(fn func(int) string) Option {
	if fn == nil {
		panic("builder: WithNameScheme(nil)")
	}
	return func(c *config) { c.nameFn = fn }
}

// WithNames uses names[i] for node i and falls back to the default scheme
// past the end of the list.
func WithNames(names ...string) Option {
	return func(c *config) {
		c.nameFn = func(i int) string {
			if i < len(names) {
				return names[i]
			}
			return defaultName(i)
		}
	}
}

// WithSelfValue sets the self value generator. The RNG may be nil.
// Panics on nil.
func WithSelfValue(fn func(i int, r *rand.Rand) uint64) Option {
	if fn == nil {
		panic("builder: WithSelfValue(nil)")
	}
	return func(c *config) { c.selfFn = fn }
}

// WithSelfValues uses values[i] for node i and 1 past the end of the list.
func WithSelfValues(values ...uint64) Option {
	return func(c *config) {
		c.selfFn = func(i int, _ *rand.Rand) uint64 {
			if i < len(values) {
				return values[i]
			}
			return defaultSelfValue
		}
	}
}

// WithMultiplicity emits every edge k times. Panics if k < 1.
func WithMultiplicity(k int) Option {
	if k < 1 {
		panic("builder: WithMultiplicity(" + strconv.Itoa(k) + ")")
	}
	return func(c *config) { c.multiplicity = k }
}

// WithRand provides an explicit RNG. Panics on nil.
func WithRand(r *rand.Rand) Option {
	if r == nil {
		panic("builder: WithRand(nil)")
	}
	return func(c *config) { c.rng = r }
}

// WithSeed creates a seeded RNG.
func WithSeed(seed int64) Option {
	return func(c *config) { c.rng = rand.New(rand.NewSource(seed)) }
}
