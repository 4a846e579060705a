package executor

import (
	"context"
	"errors"
	"log/slog"
	"sync"

	"github.com/Masterminds/semver/v3"

	"github.com/katalvlaran/modgraph/account"
	"github.com/katalvlaran/modgraph/pkgbuild"
)

// ErrNilAccount is returned by AddAccountData for a nil argument.
var ErrNilAccount = errors.New("executor: account data is nil")

type accountState struct {
	seq     uint64
	balance uint64
}

type publishedPackage struct {
	meta    *pkgbuild.PackageMetadata
	version *semver.Version
}

// linkedModule is a module whose call sites point at loaded dependencies.
// value caches foo() as computed at link time.
type linkedModule struct {
	module *pkgbuild.CompiledModule
	deps   []*linkedModule
	value  uint64
	calls  uint64 // call sites evaluated to compute value
}

// Option configures a FakeExecutor.
type Option func(*FakeExecutor)

// WithLogger sets the logger. Panics on nil.
func WithLogger(l *slog.Logger) Option {
	if l == nil {
		panic("executor: WithLogger(nil)")
	}
	return func(e *FakeExecutor) { e.logger = l }
}

// WithCacheInvalidation controls whether publishing flushes the module cache.
// Default true.
func WithCacheInvalidation(on bool) Option {
	return func(e *FakeExecutor) { e.invalidate = on }
}

// FakeExecutor is a single-node in-memory ledger. Safe for concurrent use;
// blocks are executed one at a time.
type FakeExecutor struct {
	mu         sync.Mutex
	logger     *slog.Logger
	invalidate bool

	accounts map[account.Address]*accountState
	packages map[account.Address]map[string]*publishedPackage
	modules  map[account.ModuleID]*pkgbuild.CompiledModule
	cache    map[account.ModuleID]*linkedModule
	blocks   uint64
}

// New returns an empty executor.
func New(opts ...Option) *FakeExecutor {
	e := &FakeExecutor{
		logger:     slog.Default(),
		invalidate: true,
		accounts:   make(map[account.Address]*accountState),
		packages:   make(map[account.Address]map[string]*publishedPackage),
		modules:    make(map[account.ModuleID]*pkgbuild.CompiledModule),
		cache:      make(map[account.ModuleID]*linkedModule),
	}
	for _, opt := range opts {
		opt(e)
	}

	return e
}

// AddAccountData registers an account with its current sequence number.
// Registering an existing address overwrites its state.
func (e *FakeExecutor) AddAccountData(data *account.AccountData) error {
	if data == nil {
		return ErrNilAccount
	}
	e.mu.Lock()
	defer e.mu.Unlock()
	e.accounts[data.Address()] = &accountState{seq: data.SequenceNumber(), balance: data.Balance()}

	return nil
}

// SequenceNumber returns the ledger's sequence number for addr.
func (e *FakeExecutor) SequenceNumber(addr account.Address) (uint64, bool) {
	e.mu.Lock()
	defer e.mu.Unlock()
	st, ok := e.accounts[addr]
	if !ok {
		return 0, false
	}

	return st.seq, true
}

// PackageVersion returns the published version of addr's package name.
func (e *FakeExecutor) PackageVersion(addr account.Address, name string) (string, bool) {
	e.mu.Lock()
	defer e.mu.Unlock()
	p, ok := e.packages[addr][name]
	if !ok {
		return "", false
	}

	return p.version.String(), true
}

// CachedModules returns the number of linked modules in the cache.
func (e *FakeExecutor) CachedModules() int {
	e.mu.Lock()
	defer e.mu.Unlock()

	return len(e.cache)
}

// ExecuteBlock runs txns in order and returns one output per transaction.
// ctx is checked between transactions; on cancellation no outputs are returned.
func (e *FakeExecutor) ExecuteBlock(ctx context.Context, txns []*account.SignedTransaction) ([]TransactionOutput, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	e.blocks++
	outputs := make([]TransactionOutput, 0, len(txns))
	var failed int
	for _, txn := range txns {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		out := e.execute(txn)
		if !out.Status.IsSuccess() {
			failed++
		}
		outputs = append(outputs, out)
	}
	e.logger.Debug("block executed",
		slog.Uint64("block", e.blocks),
		slog.Int("txns", len(txns)),
		slog.Int("failed", failed),
		slog.Int("cached_modules", len(e.cache)),
	)

	return outputs, nil
}

func (e *FakeExecutor) execute(txn *account.SignedTransaction) TransactionOutput {
	// 1. prologue: discards never touch state
	if txn == nil || txn.Verify() != nil {
		return TransactionOutput{Status: discard(InvalidSignature)}
	}
	st, ok := e.accounts[txn.Sender()]
	if !ok {
		return TransactionOutput{Status: discard(SendingAccountDoesNotExist)}
	}
	switch {
	case txn.SequenceNumber() < st.seq:
		return TransactionOutput{Status: discard(SequenceNumberTooOld)}
	case txn.SequenceNumber() > st.seq:
		return TransactionOutput{Status: discard(SequenceNumberTooNew)}
	}

	// 2. execution: the sequence number is consumed whatever happens next
	st.seq++
	var out TransactionOutput
	switch p := txn.Payload().(type) {
	case *account.PublishPackage:
		out = e.publish(txn.Sender(), p)
	case *account.EntryFunction:
		out = e.call(p)
	default:
		out = TransactionOutput{Status: keepFailure(UnknownPayload)}
	}
	if !out.Status.IsSuccess() {
		e.logger.Debug("transaction failed",
			slog.String("sender", txn.Sender().Short()),
			slog.Uint64("seq", txn.SequenceNumber()),
			slog.String("kind", txn.Payload().Kind().String()),
			slog.String("status", out.Status.String()),
		)
	}

	return out
}
