package loader

import (
	"errors"
	"fmt"

	"github.com/katalvlaran/modgraph/account"
	"github.com/katalvlaran/modgraph/core"
	"github.com/katalvlaran/modgraph/dfs"
)

// ErrInvariant is returned by CheckInvariants.
var ErrInvariant = errors.New("loader: invariant violated")

// topoOrder returns the nodes so that every dependent precedes its
// dependencies.
func (g *DependencyGraph) topoOrder() ([]core.NodeID, error) {
	order, err := dfs.TopologicalSort(g.graph)
	if err == nil {
		return order, nil
	}
	terr := &TopologyError{Err: err}
	if cycle, ok, _ := dfs.FindCycle(g.graph); ok {
		terr.Cycle = make([]account.ModuleID, len(cycle))
		for i, id := range cycle {
			terr.Cycle[i] = g.nodes[id].Name
		}
	}

	return nil, terr
}

// CalculateExpectedValues recomputes every ExpectedValue from scratch:
// nodes are settled in reverse topological order, each as its self value
// plus the expected value of every dependency, once per edge instance.
//
// Complexity: O(V + E).
func (g *DependencyGraph) CalculateExpectedValues() error {
	_, err := g.calculate()
	return err
}

// calculate is CalculateExpectedValues returning the order it used.
func (g *DependencyGraph) calculate() ([]core.NodeID, error) {
	order, err := g.topoOrder()
	if err != nil {
		return nil, err
	}
	for i := len(order) - 1; i >= 0; i-- {
		n := g.nodes[order[i]]
		succ, err := g.graph.Successors(n.Index)
		if err != nil {
			return nil, err
		}
		sum := n.SelfValue
		for _, d := range succ {
			sum += g.nodes[d].ExpectedValue
		}
		n.ExpectedValue = sum
	}

	return order, nil
}

// ExpectedValue returns the cached expected value of node i.
func (g *DependencyGraph) ExpectedValue(i int) (uint64, error) {
	n, err := g.Node(i)
	if err != nil {
		return 0, err
	}

	return n.ExpectedValue, nil
}

// CheckInvariants verifies that every edge runs from a higher creation index
// to a lower one and that every cached expected value equals its self value
// plus its dependencies' expected values.
func (g *DependencyGraph) CheckInvariants() error {
	for _, e := range g.graph.Edges() {
		if e.From <= e.To {
			return fmt.Errorf("%w: edge %s from %s to %s does not descend",
				ErrInvariant, e.ID, g.nodes[e.From].Name.Name, g.nodes[e.To].Name.Name)
		}
	}
	for _, n := range g.nodes {
		succ, err := g.graph.Successors(n.Index)
		if err != nil {
			return err
		}
		want := n.SelfValue
		for _, d := range succ {
			want += g.nodes[d].ExpectedValue
		}
		if n.ExpectedValue != want {
			return fmt.Errorf("%w: %s expected value %d, want %d",
				ErrInvariant, n.Name.Name, n.ExpectedValue, want)
		}
	}

	return nil
}
