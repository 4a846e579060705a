package loader

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/Masterminds/semver/v3"

	"github.com/katalvlaran/modgraph/account"
	"github.com/katalvlaran/modgraph/executor"
	"github.com/katalvlaran/modgraph/modgen"
)

// Executor runs batches of signed transactions.
type Executor interface {
	AddAccountData(data *account.AccountData) error
	ExecuteBlock(ctx context.Context, txns []*account.SignedTransaction) ([]executor.TransactionOutput, error)
}

// plannedTxn remembers which module a transaction targets, for error reports.
type plannedTxn struct {
	txn  *account.SignedTransaction
	node *ModuleNode
}

// Setup registers every node account and the sender with exec.
func (g *DependencyGraph) Setup(exec Executor) error {
	for _, n := range g.nodes {
		if err := exec.AddAccountData(n.Account); err != nil {
			return fmt.Errorf("loader: setup %s: %w", n.Name.Short(), err)
		}
	}
	if err := exec.AddAccountData(g.sender); err != nil {
		return fmt.Errorf("loader: setup sender: %w", err)
	}

	return nil
}

// BuildInitialBatch recomputes the expected values and returns one publish
// transaction per node in reverse topological order (dependencies first),
// followed by one entry call per node in topological order.
// Each signed transaction advances its signer's sequence number.
func (g *DependencyGraph) BuildInitialBatch() ([]*account.SignedTransaction, error) {
	planned, err := g.initialBatch()
	if err != nil {
		return nil, err
	}

	return unplan(planned), nil
}

func (g *DependencyGraph) initialBatch() ([]plannedTxn, error) {
	order, err := g.calculate()
	if err != nil {
		return nil, err
	}
	out := make([]plannedTxn, 0, 2*len(order))
	for i := len(order) - 1; i >= 0; i-- {
		n := g.nodes[order[i]]
		txn, err := g.publishTxn(n)
		if err != nil {
			return nil, err
		}
		out = append(out, plannedTxn{txn: txn, node: n})
	}
	for _, id := range order {
		n := g.nodes[id]
		txn, err := g.invokeTxn(n)
		if err != nil {
			return nil, err
		}
		out = append(out, plannedTxn{txn: txn, node: n})
	}

	return out, nil
}

// publishTxn regenerates, rebuilds and signs the package of n. The first
// publish carries version 1.0.0; every later one bumps the minor version.
func (g *DependencyGraph) publishTxn(n *ModuleNode) (*account.SignedTransaction, error) {
	succ, err := g.graph.Successors(n.Index)
	if err != nil {
		return nil, err
	}
	deps := make([]account.ModuleID, len(succ))
	for i, s := range succ {
		deps[i] = g.nodes[s].Name
	}

	path, err := g.gen.Generate(n.Name, deps, n.SelfValue)
	if err != nil {
		return nil, &BuildError{Module: n.Name, Stage: "generate", Err: err}
	}
	pkg, err := g.builder.Build(path)
	if err != nil {
		return nil, &BuildError{Module: n.Name, Stage: "build", Err: err}
	}

	meta := pkg.ExtractMetadata()
	version, err := semver.NewVersion(meta.Version)
	if err != nil {
		return nil, &BuildError{Module: n.Name, Stage: "encode", Err: err}
	}
	for i := uint64(0); i < n.published; i++ {
		next := version.IncMinor()
		version = &next
	}
	meta.Version = version.String()
	meta.UpgradeNumber = n.published
	blob, err := meta.Encode()
	if err != nil {
		return nil, &BuildError{Module: n.Name, Stage: "encode", Err: err}
	}

	txn, err := n.Account.Transaction().
		Payload(&account.PublishPackage{Metadata: blob, Code: pkg.ExtractCode()}).
		Sign()
	if err != nil {
		return nil, err
	}
	n.Account.IncrementSequenceNumber()
	n.published++

	return txn, nil
}

// invokeTxn signs an entry call on n asserting its current expected value.
func (g *DependencyGraph) invokeTxn(n *ModuleNode) (*account.SignedTransaction, error) {
	ef, err := account.NewEntryFunction(n.Name, modgen.EntryFunction, nil,
		[][]byte{account.EncodeU64(n.ExpectedValue)})
	if err != nil {
		return nil, err
	}
	txn, err := g.sender.Transaction().Payload(ef).Sign()
	if err != nil {
		return nil, err
	}
	g.sender.IncrementSequenceNumber()

	return txn, nil
}

// Execute builds the initial batch, appends the transactions of every
// mutation in gens, submits everything to exec as one block and requires
// Keep(Success) for each transaction. CheckInvariants runs after every
// mutation.
//
// Errors: *StatusMismatchError for the first failing transaction, ErrInvariant,
// plus any error from building the batch or from exec.
func (g *DependencyGraph) Execute(ctx context.Context, exec Executor, gens []TransactionGen) error {
	planned, err := g.initialBatch()
	if err != nil {
		return err
	}
	for _, gen := range gens {
		p, err := g.applyMutation(gen)
		if err != nil {
			return err
		}
		if p != nil {
			planned = append(planned, *p)
		}
		if err = g.CheckInvariants(); err != nil {
			return fmt.Errorf("after %s: %w", gen, err)
		}
	}
	g.submitted += len(planned)

	outputs, err := exec.ExecuteBlock(ctx, unplan(planned))
	if err != nil {
		return fmt.Errorf("loader: execute block: %w", err)
	}
	if len(outputs) != len(planned) {
		return fmt.Errorf("%w: %d outputs for %d transactions",
			ErrExecutionStatusMismatch, len(outputs), len(planned))
	}
	for i, out := range outputs {
		if out.Status.IsSuccess() {
			continue
		}
		p := planned[i]
		return &StatusMismatchError{
			Position: i,
			Kind:     p.txn.Payload().Kind(),
			Module:   p.node.Name,
			Status:   out.Status,
		}
	}
	g.logger.Debug("batch executed",
		slog.Int("txns", len(planned)),
		slog.Int("mutations", len(gens)),
	)

	return nil
}

func unplan(planned []plannedTxn) []*account.SignedTransaction {
	out := make([]*account.SignedTransaction, len(planned))
	for i, p := range planned {
		out[i] = p.txn
	}

	return out
}
