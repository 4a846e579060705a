package core_test

import (
	"fmt"

	"github.com/katalvlaran/modgraph/core"
)

// ExampleGraph builds a small dependency bundle with a parallel edge.
func ExampleGraph() {
	g := core.NewGraph(core.WithMultiEdges())

	leaf, _ := g.AddVertex("leaf")
	mid, _ := g.AddVertex("mid")
	root, _ := g.AddVertex("root")

	_, _ = g.AddEdge(mid, leaf)
	_, _ = g.AddEdge(root, mid)
	_, _ = g.AddEdge(root, mid)

	succ, _ := g.Successors(root)
	fmt.Println("root depends on:", succ)
	fmt.Println("root→mid multiplicity:", g.Multiplicity(root, mid))
	fmt.Println("edges:", g.EdgeCount())

	// Output:
	// root depends on: [n1 n1]
	// root→mid multiplicity: 2
	// edges: 3
}
