// SPDX-License-Identifier: MIT
// Package: modgraph/builder
//
// shapes.go - deterministic topology constructors.
//
// Edge emission order is documented per constructor and is part of the
// contract: loader lists dependencies in edge order.

package builder

import "fmt"

const (
	methodChain    = "Chain"
	methodFanIn    = "FanIn"
	methodFanOut   = "FanOut"
	methodComplete = "Complete"
	methodRandom   = "RandomSparse"

	minChainNodes = 1
	minFanNodes   = 2
	diamondNodes  = 4
)

// Chain builds 0 <- 1 <- ... <- n-1: node i depends on node i-1.
// Edges are emitted by increasing i.
func Chain(n int) Constructor {
	return func(t *Topology, cfg config) error {
		if n < minChainNodes {
			return fmt.Errorf("%s: n=%d < min=%d: %w", methodChain, n, minChainNodes, ErrTooFewVertices)
		}
		t.grow(n, cfg)
		for i := 1; i < n; i++ {
			t.link(i, i-1, cfg)
		}
		return nil
	}
}

// FanIn makes every node 1..n-1 depend on node 0, by increasing i.
func FanIn(n int) Constructor {
	return func(t *Topology, cfg config) error {
		if n < minFanNodes {
			return fmt.Errorf("%s: n=%d < min=%d: %w", methodFanIn, n, minFanNodes, ErrTooFewVertices)
		}
		t.grow(n, cfg)
		for i := 1; i < n; i++ {
			t.link(i, 0, cfg)
		}
		return nil
	}
}

// FanOut makes node n-1 depend on every node 0..n-2, by increasing target.
func FanOut(n int) Constructor {
	return func(t *Topology, cfg config) error {
		if n < minFanNodes {
			return fmt.Errorf("%s: n=%d < min=%d: %w", methodFanOut, n, minFanNodes, ErrTooFewVertices)
		}
		t.grow(n, cfg)
		for j := 0; j < n-1; j++ {
			t.link(n-1, j, cfg)
		}
		return nil
	}
}

// Diamond builds 3 -> 1, 3 -> 2, 1 -> 0, 2 -> 0 in that order.
func Diamond() Constructor {
	return func(t *Topology, cfg config) error {
		t.grow(diamondNodes, cfg)
		t.link(3, 1, cfg)
		t.link(3, 2, cfg)
		t.link(1, 0, cfg)
		t.link(2, 0, cfg)
		return nil
	}
}

// Complete makes every i depend on every j < i, ordered by (i, j).
// Emits n(n-1)/2 edges per multiplicity.
func Complete(n int) Constructor {
	return func(t *Topology, cfg config) error {
		if n < minChainNodes {
			return fmt.Errorf("%s: n=%d < min=%d: %w", methodComplete, n, minChainNodes, ErrTooFewVertices)
		}
		t.grow(n, cfg)
		for i := 1; i < n; i++ {
			for j := 0; j < i; j++ {
				t.link(i, j, cfg)
			}
		}
		return nil
	}
}

// RandomSparse includes each pair i > j with probability p, visiting pairs in
// (i, j) order and drawing once per pair. Requires WithSeed or WithRand.
func RandomSparse(n int, p float64) Constructor {
	return func(t *Topology, cfg config) error {
		if n < minChainNodes {
			return fmt.Errorf("%s: n=%d < min=%d: %w", methodRandom, n, minChainNodes, ErrTooFewVertices)
		}
		if p < 0 || p > 1 {
			return fmt.Errorf("%s: p=%g: %w", methodRandom, p, ErrInvalidProbability)
		}
		if cfg.rng == nil {
			return fmt.Errorf("%s: %w", methodRandom, ErrNeedRandSource)
		}
		t.grow(n, cfg)
		for i := 1; i < n; i++ {
			for j := 0; j < i; j++ {
				if cfg.rng.Float64() < p {
					t.link(i, j, cfg)
				}
			}
		}
		return nil
	}
}

// Shapes lists the names ByName accepts.
var Shapes = []string{"chain", "fan-in", "fan-out", "diamond", "complete", "random"}

// randomDensity is the edge probability of the "random" shape.
const randomDensity = 0.3

// ByName returns the constructor for a named shape of n nodes. Diamond
// ignores n.
func ByName(name string, n int) (Constructor, error) {
	switch name {
	case "chain":
		return Chain(n), nil
	case "fan-in":
		return FanIn(n), nil
	case "fan-out":
		return FanOut(n), nil
	case "diamond":
		return Diamond(), nil
	case "complete":
		return Complete(n), nil
	case "random":
		return RandomSparse(n, randomDensity), nil
	default:
		return nil, fmt.Errorf("%w: %q (want one of %v)", ErrUnknownShape, name, Shapes)
	}
}
