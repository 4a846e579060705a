package bfs_test

import (
	"fmt"

	"github.com/katalvlaran/modgraph/bfs"
	"github.com/katalvlaran/modgraph/core"
)

// ExampleReachable lists the transitive dependents of the bottom of a chain.
func ExampleReachable() {
	g := core.NewGraph()
	for _, name := range []string{"base", "mid", "top"} {
		_, _ = g.AddVertex(name)
	}
	_, _ = g.AddEdge(1, 0)
	_, _ = g.AddEdge(2, 1)

	dependents, err := bfs.Reachable(g, 0, bfs.Reverse)
	if err != nil {
		fmt.Println("error:", err)
		return
	}
	fmt.Println(dependents)
	// Output:
	// [n1 n2]
}
