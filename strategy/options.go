// SPDX-License-Identifier: MIT
// Package: modgraph/strategy
//
// options.go - random source construction.
//
// Contract:
//   • Seeding is explicit: WithSeed or WithRand. Without either, NewRand
//     seeds from DefaultSeed so that no run is accidentally unreproducible.
//   • Option constructors panic on nil input.

package strategy

import "math/rand"

// DefaultSeed is used by NewRand when no option sets a source.
const DefaultSeed int64 = 0

// Option customizes NewRand.
type Option func(*randConfig)

type randConfig struct {
	rng *rand.Rand
}

// WithSeed seeds a fresh generator deterministically.
func WithSeed(seed int64) Option {
	return func(c *randConfig) {
		c.rng = rand.New(rand.NewSource(seed))
	}
}

// WithRand uses r as-is. Panics on nil.
func WithRand(r *rand.Rand) Option {
	if r == nil {
		panic("strategy: WithRand(nil)")
	}
	return func(c *randConfig) {
		c.rng = r
	}
}

// NewRand resolves options into a generator; later options win.
func NewRand(opts ...Option) *rand.Rand {
	cfg := randConfig{}
	for _, opt := range opts {
		opt(&cfg)
	}
	if cfg.rng == nil {
		cfg.rng = rand.New(rand.NewSource(DefaultSeed))
	}

	return cfg.rng
}

// Sample draws a single value from s with a generator seeded by seed.
func Sample[T any](s Strategy[T], seed int64) T {
	return s.Generate(NewRand(WithSeed(seed)))
}
