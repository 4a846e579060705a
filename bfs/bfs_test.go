package bfs_test

import (
	"context"
	"errors"
	"reflect"
	"testing"

	"github.com/katalvlaran/modgraph/bfs"
	"github.com/katalvlaran/modgraph/core"
)

// build returns a multigraph with n vertices and the given edges.
func build(t *testing.T, n int, edges ...[2]int) *core.Graph {
	t.Helper()
	g := core.NewGraph(core.WithMultiEdges())
	for i := 0; i < n; i++ {
		if _, err := g.AddVertex("v"); err != nil {
			t.Fatalf("AddVertex: %v", err)
		}
	}
	for _, e := range edges {
		if _, err := g.AddEdge(core.NodeID(e[0]), core.NodeID(e[1])); err != nil {
			t.Fatalf("AddEdge(%v): %v", e, err)
		}
	}
	return g
}

// TestBFS_Errors verifies that invalid inputs and options are rejected.
func TestBFS_Errors(t *testing.T) {
	if _, err := bfs.BFS(nil, 0); !errors.Is(err, bfs.ErrGraphNil) {
		t.Errorf("nil graph: want ErrGraphNil, got %v", err)
	}
	g := build(t, 1)
	if _, err := bfs.BFS(g, 3); !errors.Is(err, bfs.ErrStartVertexNotFound) {
		t.Errorf("missing start: want ErrStartVertexNotFound, got %v", err)
	}
	if _, err := bfs.BFS(g, 0, bfs.WithMaxDepth(-1)); !errors.Is(err, bfs.ErrOptionViolation) {
		t.Errorf("negative depth: want ErrOptionViolation, got %v", err)
	}
	if _, err := bfs.BFS(g, 0, bfs.WithDirection(bfs.Direction(9))); !errors.Is(err, bfs.ErrOptionViolation) {
		t.Errorf("bad direction: want ErrOptionViolation, got %v", err)
	}
}

// TestBFS_Directions walks the diamond 3->{1,2}->0 both ways.
func TestBFS_Directions(t *testing.T) {
	g := build(t, 4, [2]int{3, 1}, [2]int{3, 2}, [2]int{1, 0}, [2]int{2, 0})

	res, err := bfs.BFS(g, 3)
	if err != nil {
		t.Fatalf("forward: %v", err)
	}
	if want := []core.NodeID{3, 1, 2, 0}; !reflect.DeepEqual(res.Order, want) {
		t.Errorf("forward Order = %v; want %v", res.Order, want)
	}
	if d := res.Depth[0]; d != 2 {
		t.Errorf("Depth[n0] = %d; want 2", d)
	}
	path, err := res.PathTo(0)
	if err != nil {
		t.Fatalf("PathTo: %v", err)
	}
	if want := []core.NodeID{3, 1, 0}; !reflect.DeepEqual(path, want) {
		t.Errorf("PathTo(n0) = %v; want %v", path, want)
	}

	up, err := bfs.Reachable(g, 0, bfs.Reverse)
	if err != nil {
		t.Fatalf("reverse: %v", err)
	}
	if want := []core.NodeID{1, 2, 3}; !reflect.DeepEqual(up, want) {
		t.Errorf("Reachable reverse = %v; want %v", up, want)
	}
	if _, err = res.PathTo(core.NodeID(7)); err == nil {
		t.Error("PathTo unreachable: want error")
	}
}

// TestBFS_ParallelEdges checks that a doubled edge yields one visit.
func TestBFS_ParallelEdges(t *testing.T) {
	g := build(t, 2, [2]int{1, 0}, [2]int{1, 0})
	got, err := bfs.Reachable(g, 1, bfs.Forward)
	if err != nil {
		t.Fatalf("Reachable: %v", err)
	}
	if want := []core.NodeID{0}; !reflect.DeepEqual(got, want) {
		t.Errorf("Reachable = %v; want %v", got, want)
	}
}

// TestBFS_MaxDepthAndHook limits a chain 3->2->1->0 to depth 1.
func TestBFS_MaxDepthAndHook(t *testing.T) {
	g := build(t, 4, [2]int{3, 2}, [2]int{2, 1}, [2]int{1, 0})
	var seen []core.NodeID
	res, err := bfs.BFS(g, 3,
		bfs.WithMaxDepth(1),
		bfs.WithOnVisit(func(id core.NodeID, _ int) error {
			seen = append(seen, id)
			return nil
		}),
	)
	if err != nil {
		t.Fatalf("BFS: %v", err)
	}
	if want := []core.NodeID{3, 2}; !reflect.DeepEqual(seen, want) {
		t.Errorf("visited %v; want %v", seen, want)
	}
	if res.Reached(1) {
		t.Error("n1 reached beyond MaxDepth")
	}

	stop := errors.New("stop")
	_, err = bfs.BFS(g, 3, bfs.WithOnVisit(func(id core.NodeID, _ int) error {
		if id == 2 {
			return stop
		}
		return nil
	}))
	if !errors.Is(err, stop) {
		t.Errorf("hook error: want stop, got %v", err)
	}
}

// TestBFS_Canceled returns ctx.Err() before visiting anything.
func TestBFS_Canceled(t *testing.T) {
	g := build(t, 2, [2]int{1, 0})
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if _, err := bfs.BFS(g, 1, bfs.WithContext(ctx)); !errors.Is(err, context.Canceled) {
		t.Errorf("want context.Canceled, got %v", err)
	}
}
