package bfs

import (
	"context"
	"fmt"

	"github.com/katalvlaran/modgraph/core"
)

type queueItem struct {
	id    core.NodeID
	depth int
}

// walker encapsulates mutable BFS state.
type walker struct {
	graph   *core.Graph
	opts    Options
	ctx     context.Context
	queue   []queueItem
	visited []bool
	res     *Result
}

// BFS runs breadth-first search on g from start.
// Returns ErrGraphNil, ErrStartVertexNotFound, ErrOptionViolation,
// ErrNeighbors, ctx.Err() or a wrapped OnVisit error.
//
// Parallel edges are followed once: a vertex is enqueued on first sight.
func BFS(g *core.Graph, start core.NodeID, opts ...Option) (*Result, error) {
	if g == nil {
		return nil, ErrGraphNil
	}
	o := DefaultOptions()
	for _, opt := range opts {
		opt(&o)
	}
	if o.err != nil {
		return nil, o.err
	}
	if !g.HasVertex(start) {
		return nil, ErrStartVertexNotFound
	}

	n := g.VertexCount()
	w := &walker{
		graph:   g,
		opts:    o,
		ctx:     o.Ctx,
		queue:   make([]queueItem, 0, n),
		visited: make([]bool, n),
		res: &Result{
			Order:  make([]core.NodeID, 0, n),
			Depth:  make(map[core.NodeID]int, n),
			Parent: make(map[core.NodeID]core.NodeID, n),
		},
	}
	w.enqueue(start, 0)
	w.res.Depth[start] = 0

	return w.res, w.loop()
}

// Reachable returns every vertex reachable from start in direction d,
// excluding start itself, in BFS order.
func Reachable(g *core.Graph, start core.NodeID, d Direction) ([]core.NodeID, error) {
	res, err := BFS(g, start, WithDirection(d))
	if err != nil {
		return nil, err
	}

	return res.Order[1:], nil
}

func (w *walker) enqueue(id core.NodeID, d int) {
	w.visited[id] = true
	w.queue = append(w.queue, queueItem{id: id, depth: d})
}

func (w *walker) loop() error {
	for len(w.queue) > 0 {
		select {
		case <-w.ctx.Done():
			return w.ctx.Err()
		default:
		}

		item := w.queue[0]
		w.queue = w.queue[1:]
		w.res.Order = append(w.res.Order, item.id)
		if err := w.opts.OnVisit(item.id, item.depth); err != nil {
			return fmt.Errorf("bfs: OnVisit error at %s: %w", item.id, err)
		}
		if err := w.enqueueNeighbors(item); err != nil {
			return err
		}
	}
	return nil
}

func (w *walker) neighbors(id core.NodeID) ([]core.NodeID, error) {
	if w.opts.Direction == Reverse {
		return w.graph.Predecessors(id)
	}
	return w.graph.Successors(id)
}

// enqueueNeighbors enqueues each unseen neighbor within MaxDepth.
func (w *walker) enqueueNeighbors(item queueItem) error {
	next := item.depth + 1
	if w.opts.MaxDepth > 0 && next > w.opts.MaxDepth {
		return nil
	}
	nbrs, err := w.neighbors(item.id)
	if err != nil {
		return fmt.Errorf("%w: neighbors of %s: %v", ErrNeighbors, item.id, err)
	}
	for _, nbr := range nbrs {
		if w.visited[nbr] {
			continue
		}
		w.enqueue(nbr, next)
		w.res.Depth[nbr] = next
		w.res.Parent[nbr] = item.id
	}
	return nil
}
