package loader

import (
	"errors"
	"fmt"
	"log/slog"
	"math/rand"

	"github.com/katalvlaran/modgraph/account"
	"github.com/katalvlaran/modgraph/strategy"
)

// ErrUnknownMutation is returned for a TransactionGen with an unknown Kind.
var ErrUnknownMutation = errors.New("loader: unknown mutation kind")

// GenKind selects a mutation variant.
type GenKind uint8

const (
	// Invoke calls a module again with its cached expected value.
	Invoke GenKind = iota + 1
	// UpdateEdge toggles one edge and upgrades the dependent module.
	UpdateEdge
)

func (k GenKind) String() string {
	switch k {
	case Invoke:
		return "Invoke"
	case UpdateEdge:
		return "UpdateEdge"
	default:
		return fmt.Sprintf("GenKind(%d)", uint8(k))
	}
}

// TransactionGen is one randomly drawn mutation. B is ignored by Invoke.
type TransactionGen struct {
	Kind GenKind
	A    Index
	B    Index
}

// InvokeGen builds an Invoke mutation.
func InvokeGen(a Index) TransactionGen { return TransactionGen{Kind: Invoke, A: a} }

// UpdateEdgeGen builds an UpdateEdge mutation.
func UpdateEdgeGen(a, b Index) TransactionGen { return TransactionGen{Kind: UpdateEdge, A: a, B: b} }

func (t TransactionGen) String() string {
	if t.Kind == UpdateEdge {
		return fmt.Sprintf("UpdateEdge(%d, %d)", t.A.Raw(), t.B.Raw())
	}
	return fmt.Sprintf("%s(%d)", t.Kind, t.A.Raw())
}

// ApplyMutation applies gen to the graph and returns the transaction it
// produces, or nil when it produces none (UpdateEdge on a single node).
//
//   - Invoke: an entry call on the resolved node with its cached expected value.
//   - UpdateEdge: Mutate on the resolved pair; on change every expected value
//     is recomputed and the dependent node is upgraded.
//
// Every gen is recorded in History, including no-ops.
func (g *DependencyGraph) ApplyMutation(gen TransactionGen) (*account.SignedTransaction, error) {
	p, err := g.applyMutation(gen)
	if err != nil || p == nil {
		return nil, err
	}

	return p.txn, nil
}

func (g *DependencyGraph) applyMutation(gen TransactionGen) (*plannedTxn, error) {
	if len(g.nodes) == 0 {
		return nil, ErrEmptyGraph
	}
	g.history = append(g.history, gen)

	switch gen.Kind {
	case Invoke:
		n := strategy.Get(gen.A, g.nodes)
		txn, err := g.invokeTxn(n)
		if err != nil {
			return nil, err
		}
		return &plannedTxn{txn: txn, node: n}, nil

	case UpdateEdge:
		a, b := gen.A.Index(len(g.nodes)), gen.B.Index(len(g.nodes))
		dependent, changed, err := g.Mutate(a, b)
		if err != nil {
			return nil, err
		}
		if !changed {
			return nil, nil
		}
		if err = g.CalculateExpectedValues(); err != nil {
			return nil, err
		}
		txn, err := g.publishTxn(dependent)
		if err != nil {
			return nil, err
		}
		affected, err := g.Dependents(int(dependent.Index))
		if err != nil {
			return nil, err
		}
		g.affected += len(affected)
		g.logger.Debug("module upgraded",
			slog.String("module", dependent.Name.Name),
			slog.Uint64("upgrade", dependent.published-1),
			slog.Uint64("expected", dependent.ExpectedValue),
			slog.Int("affected_dependents", len(affected)),
		)
		return &plannedTxn{txn: txn, node: dependent}, nil

	default:
		return nil, fmt.Errorf("%w: %d", ErrUnknownMutation, gen.Kind)
	}
}

// TransactionGenStrategy draws Invoke and UpdateEdge with weights 9 and 1.
func TransactionGenStrategy() strategy.Strategy[TransactionGen] {
	return strategy.Weighted(
		strategy.Choice[TransactionGen]{
			Weight:   9,
			Strategy: strategy.Map(strategy.AnyIndex(), InvokeGen),
		},
		strategy.Choice[TransactionGen]{
			Weight: 1,
			Strategy: strategy.Map(strategy.Pair(strategy.AnyIndex(), strategy.AnyIndex()),
				func(t strategy.Tuple[Index, Index]) TransactionGen { return UpdateEdgeGen(t.First, t.Second) }),
		},
	)
}

// NodeNameLength is the length of generated module names.
const NodeNameLength = 10

// NodeSpecStrategy draws a fresh account with a balance in
// [DefaultBalance, 2*DefaultBalance), a uint16 self value and a [a-z]{10} name.
func NodeSpecStrategy() strategy.Strategy[NodeSpec] {
	balance := strategy.Uint64Range(DefaultBalance, 2*DefaultBalance)
	self := strategy.Uint16()
	name := strategy.Lowercase(NodeNameLength)

	return strategy.Func[NodeSpec](func(r *rand.Rand) NodeSpec {
		acct := account.NewRandomAccountData(r, balance.Generate(r))
		return NodeSpec{
			Account:   acct,
			SelfValue: uint64(self.Generate(r)),
			Name:      name.Generate(r),
		}
	})
}

// EdgeAttemptStrategy draws a pair of unresolved indices.
func EdgeAttemptStrategy() strategy.Strategy[EdgeAttempt] {
	return strategy.Map(strategy.Pair(strategy.AnyIndex(), strategy.AnyIndex()),
		func(t strategy.Tuple[Index, Index]) EdgeAttempt { return EdgeAttempt{A: t.First, B: t.Second} })
}

// Case is one randomly drawn test case.
type Case struct {
	Nodes     []NodeSpec
	Edges     []EdgeAttempt
	Mutations []TransactionGen
}

// CaseStrategy draws node specs, edge attempts and mutations with counts in
// the given inclusive ranges. Node names within a case are made unique by
// redrawing collisions.
func CaseStrategy(nodes, edges, mutations strategy.SizeRange) strategy.Strategy[Case] {
	specs := strategy.SliceOf(NodeSpecStrategy(), nodes)
	attempts := strategy.SliceOf(EdgeAttemptStrategy(), edges)
	gens := strategy.SliceOf(TransactionGenStrategy(), mutations)
	name := strategy.Lowercase(NodeNameLength)

	return strategy.Func[Case](func(r *rand.Rand) Case {
		c := Case{Nodes: specs.Generate(r)}
		seen := make(map[string]bool, len(c.Nodes))
		for i := range c.Nodes {
			for seen[c.Nodes[i].Name] {
				c.Nodes[i].Name = name.Generate(r)
			}
			seen[c.Nodes[i].Name] = true
		}
		c.Edges = attempts.Generate(r)
		c.Mutations = gens.Generate(r)

		return c
	})
}
