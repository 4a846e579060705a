package loader

import (
	"fmt"
	"log/slog"
	"math/rand"
	"os"

	"github.com/katalvlaran/modgraph/account"
	"github.com/katalvlaran/modgraph/bfs"
	"github.com/katalvlaran/modgraph/core"
	"github.com/katalvlaran/modgraph/modgen"
	"github.com/katalvlaran/modgraph/pkgbuild"
	"github.com/katalvlaran/modgraph/strategy"
)

// Index is the bounded index type used by edge attempts and mutations.
type Index = strategy.Index

// SourceGenerator writes the package for one module and returns its directory.
// deps holds one entry per dependency edge, in edge order.
type SourceGenerator interface {
	Generate(id account.ModuleID, deps []account.ModuleID, selfValue uint64) (string, error)
}

// PackageBuilder compiles a package directory.
type PackageBuilder interface {
	Build(path string) (*pkgbuild.BuiltPackage, error)
}

// Option configures Construct.
type Option func(*graphConfig)

type graphConfig struct {
	baseDir string
	gen     SourceGenerator
	builder PackageBuilder
	logger  *slog.Logger
	sender  *account.AccountData
	rng     *rand.Rand
}

// WithBaseDir sets the directory for generated packages. The graph does not
// remove it on Close. Without this option a temporary directory is created
// and owned by the graph.
func WithBaseDir(dir string) Option {
	return func(c *graphConfig) { c.baseDir = dir }
}

// WithSourceGenerator replaces the default modgen.Generator. Panics on nil.
func WithSourceGenerator(g SourceGenerator) Option {
	if g == nil {
		panic("loader: WithSourceGenerator(nil)")
	}
	return func(c *graphConfig) { c.gen = g }
}

// WithPackageBuilder replaces the default pkgbuild.Builder. Panics on nil.
func WithPackageBuilder(b PackageBuilder) Option {
	if b == nil {
		panic("loader: WithPackageBuilder(nil)")
	}
	return func(c *graphConfig) { c.builder = b }
}

// WithLogger sets the logger. Panics on nil.
func WithLogger(l *slog.Logger) Option {
	if l == nil {
		panic("loader: WithLogger(nil)")
	}
	return func(c *graphConfig) { c.logger = l }
}

// WithSender sets the account that signs entry calls. Panics on nil.
func WithSender(s *account.AccountData) Option {
	if s == nil {
		panic("loader: WithSender(nil)")
	}
	return func(c *graphConfig) { c.sender = s }
}

// WithRand sets the source used to draw the default sender. Panics on nil.
func WithRand(r *rand.Rand) Option {
	if r == nil {
		panic("loader: WithRand(nil)")
	}
	return func(c *graphConfig) { c.rng = r }
}

// DependencyGraph is the module DAG plus everything needed to turn it into
// transactions.
type DependencyGraph struct {
	graph   *core.Graph
	nodes   []*ModuleNode
	sender  *account.AccountData
	baseDir string
	ownsDir bool
	gen     SourceGenerator
	builder PackageBuilder
	logger  *slog.Logger
	history []TransactionGen

	submitted int
	affected  int
}

// Construct creates one node per spec, in order, then resolves every edge
// attempt against the node count and inserts an edge from the higher creation
// index to the lower one. Attempts resolving to a single node are skipped.
// Repeated attempts on the same pair insert parallel edges.
//
// Errors: *ConstructionError for a nil account, an invalid or duplicate name,
// edge attempts on a graph without nodes, or a WithSender account that owns
// a module.
func Construct(specs []NodeSpec, edges []EdgeAttempt, opts ...Option) (*DependencyGraph, error) {
	cfg := graphConfig{logger: slog.Default()}
	for _, opt := range opts {
		opt(&cfg)
	}

	g := &DependencyGraph{
		graph:   core.NewGraph(core.WithMultiEdges()),
		nodes:   make([]*ModuleNode, 0, len(specs)),
		logger:  cfg.logger,
		builder: cfg.builder,
	}

	// 1. nodes
	names := make(map[string]int, len(specs))
	for i, spec := range specs {
		if spec.Account == nil {
			return nil, &ConstructionError{Index: i, Name: spec.Name, Err: fmt.Errorf("nil account")}
		}
		id, err := account.NewModuleID(spec.Account.Address(), spec.Name)
		if err != nil {
			return nil, &ConstructionError{Index: i, Name: spec.Name, Err: err}
		}
		if prev, dup := names[spec.Name]; dup {
			return nil, &ConstructionError{Index: i, Name: spec.Name, Err: fmt.Errorf("name already used by node %d", prev)}
		}
		names[spec.Name] = i
		vid, err := g.graph.AddVertex(spec.Name)
		if err != nil {
			return nil, &ConstructionError{Index: i, Name: spec.Name, Err: err}
		}
		g.nodes = append(g.nodes, &ModuleNode{
			Index:     vid,
			Name:      id,
			SelfValue: spec.SelfValue,
			Account:   spec.Account,
		})
	}

	// 2. edges
	for i, e := range edges {
		a, err := e.A.Resolve(len(g.nodes))
		if err != nil {
			return nil, &ConstructionError{Index: i, Err: err}
		}
		b, err := e.B.Resolve(len(g.nodes))
		if err != nil {
			return nil, &ConstructionError{Index: i, Err: err}
		}
		if a == b {
			continue
		}
		if a < b {
			a, b = b, a
		}
		if _, err = g.graph.AddEdge(core.NodeID(a), core.NodeID(b)); err != nil {
			return nil, &ConstructionError{Index: i, Err: err}
		}
	}

	// 3. collaborators
	if err := g.init(cfg); err != nil {
		return nil, err
	}
	g.logger.Debug("dependency graph constructed",
		slog.Int("nodes", len(g.nodes)),
		slog.Int("edges", g.graph.EdgeCount()),
		slog.Int("attempts", len(edges)),
		slog.String("dir", g.baseDir),
	)

	return g, nil
}

func (g *DependencyGraph) init(cfg graphConfig) error {
	if err := g.resolveSender(cfg); err != nil {
		return err
	}
	g.baseDir = cfg.baseDir
	if g.baseDir == "" && cfg.gen == nil {
		dir, err := os.MkdirTemp("", "modgraph-*")
		if err != nil {
			return &ConstructionError{Index: -1, Err: fmt.Errorf("create working dir: %w", err)}
		}
		g.baseDir, g.ownsDir = dir, true
	}
	g.gen = cfg.gen
	if g.gen == nil {
		gen, err := modgen.NewGenerator(g.baseDir)
		if err != nil {
			return &ConstructionError{Index: -1, Err: err}
		}
		g.gen = gen
	}
	if g.builder == nil {
		g.builder = pkgbuild.NewBuilder()
	}

	return nil
}

// resolveSender installs the configured sender or draws one. A drawn sender
// is redrawn until its address owns no module; a configured one that owns a
// module is rejected with ErrSenderOwnsModule.
func (g *DependencyGraph) resolveSender(cfg graphConfig) error {
	owners := make(map[account.Address]int, len(g.nodes))
	for i, n := range g.nodes {
		if _, seen := owners[n.Account.Address()]; !seen {
			owners[n.Account.Address()] = i
		}
	}

	g.sender = cfg.sender
	if g.sender == nil {
		rng := cfg.rng
		if rng == nil {
			rng = strategy.NewRand()
		}
		for {
			s := account.NewRandomAccountData(rng, DefaultBalance)
			if _, taken := owners[s.Address()]; !taken {
				g.sender = s
				break
			}
		}
	}
	if i, taken := owners[g.sender.Address()]; taken {
		return &ConstructionError{
			Index: i,
			Name:  g.nodes[i].Name.Name,
			Err:   fmt.Errorf("%w: %s", ErrSenderOwnsModule, g.sender.Address().Short()),
		}
	}

	return nil
}

// Close removes the working directory if Construct created it.
func (g *DependencyGraph) Close() error {
	if !g.ownsDir {
		return nil
	}
	g.ownsDir = false

	return os.RemoveAll(g.baseDir)
}

// BaseDir returns the working directory of the source generator.
func (g *DependencyGraph) BaseDir() string { return g.baseDir }

// Sender returns the account that signs entry calls.
func (g *DependencyGraph) Sender() *account.AccountData { return g.sender }

// NodeCount returns the number of modules.
func (g *DependencyGraph) NodeCount() int { return len(g.nodes) }

// EdgeCount returns the number of edge instances.
func (g *DependencyGraph) EdgeCount() int { return g.graph.EdgeCount() }

// Nodes returns the modules in creation order.
func (g *DependencyGraph) Nodes() []*ModuleNode {
	return append([]*ModuleNode(nil), g.nodes...)
}

// Node returns the module with the given creation index.
func (g *DependencyGraph) Node(i int) (*ModuleNode, error) {
	if i < 0 || i >= len(g.nodes) {
		return nil, fmt.Errorf("%w: %d", ErrNodeNotFound, i)
	}

	return g.nodes[i], nil
}

// Dependencies returns the direct dependencies of node i, one entry per edge
// instance, in edge insertion order.
func (g *DependencyGraph) Dependencies(i int) ([]*ModuleNode, error) {
	succ, err := g.graph.Successors(core.NodeID(i))
	if err != nil {
		return nil, fmt.Errorf("%w: %d", ErrNodeNotFound, i)
	}
	out := make([]*ModuleNode, len(succ))
	for k, s := range succ {
		out[k] = g.nodes[s]
	}

	return out, nil
}

// Dependents returns every node whose expected value depends on node i,
// directly or transitively, nearest first. Node i itself is excluded.
func (g *DependencyGraph) Dependents(i int) ([]*ModuleNode, error) {
	ids, err := bfs.Reachable(g.graph, core.NodeID(i), bfs.Reverse)
	if err != nil {
		return nil, fmt.Errorf("%w: %d: %v", ErrNodeNotFound, i, err)
	}
	out := make([]*ModuleNode, len(ids))
	for k, id := range ids {
		out[k] = g.nodes[id]
	}

	return out, nil
}

// Edges returns every edge instance as (dependent, dependency) creation
// indices, in insertion order.
func (g *DependencyGraph) Edges() [][2]int {
	edges := g.graph.Edges()
	out := make([][2]int, len(edges))
	for i, e := range edges {
		out[i] = [2]int{int(e.From), int(e.To)}
	}

	return out
}

// Multiplicity returns the number of edge instances from node a to node b.
func (g *DependencyGraph) Multiplicity(a, b int) int {
	return g.graph.Multiplicity(core.NodeID(a), core.NodeID(b))
}

// History returns the mutations applied so far, in order.
func (g *DependencyGraph) History() []TransactionGen {
	return append([]TransactionGen(nil), g.history...)
}

// Affected returns the number of transitive dependents of every module
// upgraded so far, summed over upgrades. Each of them had its expected value
// recomputed and is re-checked by its next invoke.
func (g *DependencyGraph) Affected() int { return g.affected }

// Submitted returns the number of transactions Execute has submitted.
func (g *DependencyGraph) Submitted() int { return g.submitted }

// Mutate toggles one edge between nodes a and b. The pair is canonicalized so
// that the edge runs from the higher creation index to the lower. If an edge
// exists, its oldest instance is removed; otherwise one is inserted.
// Returns the dependent node and whether the graph changed; a == b changes
// nothing.
func (g *DependencyGraph) Mutate(a, b int) (*ModuleNode, bool, error) {
	if a < 0 || a >= len(g.nodes) || b < 0 || b >= len(g.nodes) {
		return nil, false, fmt.Errorf("%w: (%d, %d)", ErrNodeNotFound, a, b)
	}
	if a < b {
		a, b = b, a
	}
	dependent := g.nodes[a]
	if a == b {
		return dependent, false, nil
	}

	from, to := core.NodeID(a), core.NodeID(b)
	if eid, ok := g.graph.FindEdge(from, to); ok {
		if err := g.graph.RemoveEdge(eid); err != nil {
			return nil, false, err
		}
		g.logger.Debug("edge removed", slog.String("from", dependent.Name.Name), slog.String("to", g.nodes[b].Name.Name))

		return dependent, true, nil
	}
	if _, err := g.graph.AddEdge(from, to); err != nil {
		return nil, false, err
	}
	g.logger.Debug("edge added", slog.String("from", dependent.Name.Name), slog.String("to", g.nodes[b].Name.Name))

	return dependent, true, nil
}
