package loader

import (
	"github.com/katalvlaran/modgraph/account"
	"github.com/katalvlaran/modgraph/core"
)

// DefaultBalance is the sender's balance and the lower bound of node balances.
const DefaultBalance uint64 = 1_000_000_000

// ModuleNode is one module of the graph.
type ModuleNode struct {
	// Index is the creation index, also the node's handle in the graph.
	Index core.NodeID
	// Name identifies the module: owner address + module name.
	Name account.ModuleID
	// SelfValue is this module's own contribution to foo().
	SelfValue uint64
	// ExpectedValue is foo() as computed by the oracle.
	ExpectedValue uint64
	// Account owns the module and signs its publish transactions.
	Account *account.AccountData

	published uint64
}

// Published returns how many publish or upgrade transactions were emitted for the node.
func (n *ModuleNode) Published() uint64 { return n.published }

// NodeSpec describes one node to create.
type NodeSpec struct {
	Account   *account.AccountData
	SelfValue uint64
	Name      string
}

// EdgeAttempt names two nodes by unresolved index. Construct turns it into an
// edge from the higher creation index to the lower one.
type EdgeAttempt struct {
	A Index
	B Index
}
