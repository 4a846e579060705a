package executor_test

import (
	"context"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/modgraph/account"
	"github.com/katalvlaran/modgraph/executor"
	"github.com/katalvlaran/modgraph/modgen"
	"github.com/katalvlaran/modgraph/pkgbuild"
)

// world holds owners, a sender and package tooling for one test.
type world struct {
	t      *testing.T
	r      *rand.Rand
	gen    *modgen.Generator
	exec   *executor.FakeExecutor
	sender *account.AccountData
}

func newWorld(t *testing.T, opts ...executor.Option) *world {
	t.Helper()
	gen, err := modgen.NewGenerator(t.TempDir())
	require.NoError(t, err)
	w := &world{
		t:    t,
		r:    rand.New(rand.NewSource(99)),
		gen:  gen,
		exec: executor.New(opts...),
	}
	w.sender = w.newAccount()

	return w
}

func (w *world) newAccount() *account.AccountData {
	d := account.NewRandomAccountData(w.r, 1_000)
	require.NoError(w.t, w.exec.AddAccountData(d))
	return d
}

func (w *world) module(owner *account.AccountData, name string) account.ModuleID {
	id, err := account.NewModuleID(owner.Address(), name)
	require.NoError(w.t, err)
	return id
}

// publishTxn signs a publish of id at the given version.
func (w *world) publishTxn(owner *account.AccountData, id account.ModuleID, deps []account.ModuleID, self uint64, version string) *account.SignedTransaction {
	dir, err := w.gen.Generate(id, deps, self)
	require.NoError(w.t, err)
	pkg, err := pkgbuild.NewBuilder().Build(dir)
	require.NoError(w.t, err)
	meta := pkg.ExtractMetadata()
	meta.Version = version
	blob, err := meta.Encode()
	require.NoError(w.t, err)

	txn, err := owner.Transaction().Payload(&account.PublishPackage{Metadata: blob, Code: pkg.ExtractCode()}).Sign()
	require.NoError(w.t, err)
	owner.IncrementSequenceNumber()

	return txn
}

func (w *world) invokeTxn(id account.ModuleID, arg uint64) *account.SignedTransaction {
	ef, err := account.NewEntryFunction(id, modgen.EntryFunction, nil, [][]byte{account.EncodeU64(arg)})
	require.NoError(w.t, err)
	txn, err := w.sender.Transaction().Payload(ef).Sign()
	require.NoError(w.t, err)
	w.sender.IncrementSequenceNumber()

	return txn
}

func (w *world) run(txns ...*account.SignedTransaction) []string {
	out, err := w.exec.ExecuteBlock(context.Background(), txns)
	require.NoError(w.t, err)
	statuses := make([]string, len(out))
	for i, o := range out {
		statuses[i] = o.Status.String()
	}

	return statuses
}

func TestExecuteBlock_Chain(t *testing.T) {
	w := newWorld(t)
	o1, o2, o3 := w.newAccount(), w.newAccount(), w.newAccount()
	m3 := w.module(o3, "mthree")
	m2 := w.module(o2, "mtwo")
	m1 := w.module(o1, "mone")

	got := w.run(
		w.publishTxn(o3, m3, nil, 11, "1.0.0"),
		w.publishTxn(o2, m2, []account.ModuleID{m3}, 7, "1.0.0"),
		w.publishTxn(o1, m1, []account.ModuleID{m2}, 5, "1.0.0"),
		w.invokeTxn(m1, 23),
		w.invokeTxn(m2, 18),
		w.invokeTxn(m3, 11),
		w.invokeTxn(m1, 24),
	)
	assert.Equal(t, []string{
		"Keep(Success)", "Keep(Success)", "Keep(Success)",
		"Keep(Success)", "Keep(Success)", "Keep(Success)",
		"Keep(MoveAbort(42))",
	}, got)

	seq, ok := w.exec.SequenceNumber(w.sender.Address())
	require.True(t, ok)
	assert.Equal(t, uint64(4), seq)
	assert.Equal(t, 3, w.exec.CachedModules())
}

func TestExecuteBlock_ParallelCalls(t *testing.T) {
	w := newWorld(t)
	o1, o2 := w.newAccount(), w.newAccount()
	leaf := w.module(o2, "leaf")
	top := w.module(o1, "top")

	got := w.run(
		w.publishTxn(o2, leaf, nil, 3, "1.0.0"),
		w.publishTxn(o1, top, []account.ModuleID{leaf, leaf}, 1, "1.0.0"),
		w.invokeTxn(top, 7),
	)
	assert.Equal(t, []string{"Keep(Success)", "Keep(Success)", "Keep(Success)"}, got)
}

func TestExecuteBlock_Prologue(t *testing.T) {
	w := newWorld(t)
	owner := w.newAccount()
	leaf := w.module(owner, "leaf")
	stranger := account.NewRandomAccountData(w.r, 1)

	ok := w.publishTxn(owner, leaf, nil, 1, "1.0.0")
	replayed := ok
	future := w.invokeTxn(leaf, 1)
	w.sender.IncrementSequenceNumber()
	tooNew := w.invokeTxn(leaf, 1)
	tampered := w.invokeTxn(leaf, 1)
	tampered.Raw.SequenceNumber = 0
	unknown, err := stranger.Transaction().Payload(&account.PublishPackage{}).Sign()
	require.NoError(t, err)

	got := w.run(ok, replayed, tooNew, tampered, unknown, future)
	assert.Equal(t, []string{
		"Keep(Success)",
		"Discard(SEQUENCE_NUMBER_TOO_OLD)",
		"Discard(SEQUENCE_NUMBER_TOO_NEW)",
		"Discard(INVALID_SIGNATURE)",
		"Discard(SENDING_ACCOUNT_DOES_NOT_EXIST)",
		"Keep(Success)",
	}, got)
}

func TestExecuteBlock_PublishFailures(t *testing.T) {
	w := newWorld(t)
	owner, other := w.newAccount(), w.newAccount()
	leaf := w.module(owner, "leaf")
	ghost := w.module(other, "ghost")
	top := w.module(other, "top")

	got := w.run(
		w.publishTxn(owner, leaf, nil, 1, "1.0.0"),
		w.publishTxn(owner, leaf, nil, 2, "1.0.0"),
		w.publishTxn(other, top, []account.ModuleID{ghost}, 1, "1.0.0"),
		w.publishTxn(owner, leaf, nil, 2, "1.1.0"),
	)
	assert.Equal(t, []string{
		"Keep(Success)",
		"Keep(ExecutionFailure(PACKAGE_UPGRADE_NOT_ALLOWED))",
		"Keep(ExecutionFailure(LINKER_ERROR))",
		"Keep(Success)",
	}, got)

	v, ok := w.exec.PackageVersion(owner.Address(), "leaf")
	require.True(t, ok)
	assert.Equal(t, "1.1.0", v)
}

func TestExecuteBlock_AddressMismatch(t *testing.T) {
	w := newWorld(t)
	owner, other := w.newAccount(), w.newAccount()

	got := w.run(w.publishTxn(owner, w.module(other, "foreign"), nil, 1, "1.0.0"))
	assert.Equal(t, []string{"Keep(ExecutionFailure(MODULE_ADDRESS_DOES_NOT_MATCH_SENDER))"}, got)
}

func TestExecuteBlock_RejectsCycle(t *testing.T) {
	w := newWorld(t)
	o1, o2 := w.newAccount(), w.newAccount()
	a := w.module(o1, "a")
	b := w.module(o2, "b")

	got := w.run(
		w.publishTxn(o1, a, nil, 1, "1.0.0"),
		w.publishTxn(o2, b, []account.ModuleID{a}, 1, "1.0.0"),
		w.publishTxn(o1, a, []account.ModuleID{b}, 1, "1.1.0"),
	)
	assert.Equal(t, []string{
		"Keep(Success)", "Keep(Success)",
		"Keep(ExecutionFailure(CYCLIC_MODULE_DEPENDENCY))",
	}, got)
}

func TestExecuteBlock_UpgradeRelinks(t *testing.T) {
	w := newWorld(t)
	o1, o2 := w.newAccount(), w.newAccount()
	leaf := w.module(o2, "leaf")
	top := w.module(o1, "top")

	got := w.run(
		w.publishTxn(o2, leaf, nil, 3, "1.0.0"),
		w.publishTxn(o1, top, nil, 1, "1.0.0"),
		w.invokeTxn(top, 1),
		w.publishTxn(o1, top, []account.ModuleID{leaf}, 1, "1.1.0"),
		w.invokeTxn(top, 4),
	)
	assert.Equal(t, []string{"Keep(Success)", "Keep(Success)", "Keep(Success)", "Keep(Success)", "Keep(Success)"}, got)
}

func TestExecuteBlock_StaleCache(t *testing.T) {
	w := newWorld(t, executor.WithCacheInvalidation(false))
	o1, o2 := w.newAccount(), w.newAccount()
	leaf := w.module(o2, "leaf")
	top := w.module(o1, "top")

	got := w.run(
		w.publishTxn(o2, leaf, nil, 3, "1.0.0"),
		w.publishTxn(o1, top, nil, 1, "1.0.0"),
		w.invokeTxn(top, 1),
		w.publishTxn(o1, top, []account.ModuleID{leaf}, 1, "1.1.0"),
		w.invokeTxn(top, 4),
	)
	assert.Equal(t, "Keep(MoveAbort(42))", got[4])
}

func TestExecuteBlock_EntryFailures(t *testing.T) {
	w := newWorld(t)
	owner := w.newAccount()
	leaf := w.module(owner, "leaf")
	pub := w.publishTxn(owner, leaf, nil, 1, "1.0.0")

	sign := func(ef *account.EntryFunction) *account.SignedTransaction {
		txn, err := w.sender.Transaction().Payload(ef).Sign()
		require.NoError(t, err)
		w.sender.IncrementSequenceNumber()
		return txn
	}
	got := w.run(
		pub,
		sign(&account.EntryFunction{Module: leaf, Function: "bar"}),
		sign(&account.EntryFunction{Module: leaf, Function: modgen.EntryFunction}),
		sign(&account.EntryFunction{Module: leaf, Function: modgen.EntryFunction, TyArgs: []string{"u8"}, Args: [][]byte{account.EncodeU64(1)}}),
		sign(&account.EntryFunction{Module: w.module(owner, "missing"), Function: modgen.EntryFunction}),
	)
	assert.Equal(t, []string{
		"Keep(Success)",
		"Keep(ExecutionFailure(FUNCTION_RESOLUTION_FAILURE))",
		"Keep(ExecutionFailure(NUMBER_OF_ARGUMENTS_MISMATCH))",
		"Keep(ExecutionFailure(NUMBER_OF_TYPE_ARGUMENTS_MISMATCH))",
		"Keep(ExecutionFailure(LINKER_ERROR))",
	}, got)
}

func TestExecuteBlock_Canceled(t *testing.T) {
	w := newWorld(t)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := w.exec.ExecuteBlock(ctx, []*account.SignedTransaction{w.invokeTxn(account.ModuleID{Name: "x"}, 1)})
	assert.ErrorIs(t, err, context.Canceled)
}

func TestAddAccountData_Nil(t *testing.T) {
	assert.ErrorIs(t, executor.New().AddAccountData(nil), executor.ErrNilAccount)
}
