// SPDX-License-Identifier: MIT
// Package: modgraph/builder
//
// api.go - Topology, Build and the conversion to loader inputs.
//
// Contract:
//   - Build applies constructors in order on one Topology.
//   - Every edge satisfies From > To, so the fixture is acyclic by
//     construction and loader.Construct keeps every attempt.

package builder

import (
	"fmt"
	"math/rand"

	"github.com/katalvlaran/modgraph/account"
	"github.com/katalvlaran/modgraph/loader"
	"github.com/katalvlaran/modgraph/strategy"
)

// Edge is one dependency instance by creation index.
type Edge struct {
	From, To int
}

// Topology is a dependency-graph fixture.
type Topology struct {
	Names      []string
	SelfValues []uint64
	Edges      []Edge
}

// Constructor mutates t using the resolved configuration.
type Constructor func(t *Topology, cfg config) error

// Build creates an empty Topology, resolves opts and applies cons in order.
// Constructor errors are wrapped with "Build: %w".
func Build(opts []Option, cons ...Constructor) (*Topology, error) {
	cfg := newConfig(opts...)
	t := &Topology{}
	for i, fn := range cons {
		if fn == nil {
			return nil, fmt.Errorf("Build: nil constructor at index %d: %w", i, ErrConstructFailed)
		}
		if err := fn(t, cfg); err != nil {
			return nil, fmt.Errorf("Build: %w", err)
		}
	}

	return t, nil
}

// NodeCount returns the number of modules.
func (t *Topology) NodeCount() int { return len(t.Names) }

// Specs returns one NodeSpec per module, each with a fresh account drawn
// from r holding loader.DefaultBalance.
func (t *Topology) Specs(r *rand.Rand) []loader.NodeSpec {
	out := make([]loader.NodeSpec, len(t.Names))
	for i, name := range t.Names {
		out[i] = loader.NodeSpec{
			Account:   account.NewRandomAccountData(r, loader.DefaultBalance),
			SelfValue: t.SelfValues[i],
			Name:      name,
		}
	}

	return out
}

// Attempts returns the edges as edge attempts. Raw indices equal creation
// indices, so each attempt resolves to exactly its edge.
func (t *Topology) Attempts() []loader.EdgeAttempt {
	out := make([]loader.EdgeAttempt, len(t.Edges))
	for i, e := range t.Edges {
		out[i] = loader.EdgeAttempt{
			A: strategy.NewIndex(uint64(e.From)),
			B: strategy.NewIndex(uint64(e.To)),
		}
	}

	return out
}

// grow extends t to at least n nodes.
func (t *Topology) grow(n int, cfg config) {
	for i := len(t.Names); i < n; i++ {
		t.Names = append(t.Names, cfg.nameFn(i))
		t.SelfValues = append(t.SelfValues, cfg.selfFn(i, cfg.rng))
	}
}

// link appends from -> to cfg.multiplicity times.
func (t *Topology) link(from, to int, cfg config) {
	for k := 0; k < cfg.multiplicity; k++ {
		t.Edges = append(t.Edges, Edge{From: from, To: to})
	}
}
