package dfs_test

import (
	"fmt"

	"github.com/katalvlaran/modgraph/core"
	"github.com/katalvlaran/modgraph/dfs"
)

// ExampleTopologicalSort orders a three-module chain so that every dependent
// precedes its dependency.
func ExampleTopologicalSort() {
	g := core.NewGraph(core.WithMultiEdges())
	leaf, _ := g.AddVertex("leaf")
	mid, _ := g.AddVertex("mid")
	root, _ := g.AddVertex("root")
	_, _ = g.AddEdge(root, mid)
	_, _ = g.AddEdge(mid, leaf)

	order, err := dfs.TopologicalSort(g)
	if err != nil {
		fmt.Println("error:", err)
		return
	}
	fmt.Println(order)
	// Output: [n2 n1 n0]
}
