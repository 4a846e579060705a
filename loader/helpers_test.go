package loader_test

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/modgraph/account"
	"github.com/katalvlaran/modgraph/builder"
	"github.com/katalvlaran/modgraph/loader"
	"github.com/katalvlaran/modgraph/strategy"
)

// specs builds one NodeSpec per (name, self value) with deterministic accounts.
func specs(seed int64, names []string, selfValues []uint64) []loader.NodeSpec {
	r := rand.New(rand.NewSource(seed))
	out := make([]loader.NodeSpec, len(names))
	for i, n := range names {
		out[i] = loader.NodeSpec{
			Account:   account.NewRandomAccountData(r, loader.DefaultBalance),
			SelfValue: selfValues[i],
			Name:      n,
		}
	}

	return out
}

// edge is an attempt with small raw indices.
func edge(a, b uint64) loader.EdgeAttempt {
	return loader.EdgeAttempt{A: strategy.NewIndex(a), B: strategy.NewIndex(b)}
}

func construct(t *testing.T, s []loader.NodeSpec, e []loader.EdgeAttempt) *loader.DependencyGraph {
	t.Helper()
	g, err := loader.Construct(s, e,
		loader.WithBaseDir(t.TempDir()),
		loader.WithRand(rand.New(rand.NewSource(1))),
	)
	require.NoError(t, err)

	return g
}

// chain is M1 → M2 → M3 with self values 5, 7, 11.
// Creation order: mthree (0), mtwo (1), mone (2).
func chain(t *testing.T) *loader.DependencyGraph {
	return fixture(t, 10, builder.Chain(3),
		builder.WithNames("mthree", "mtwo", "mone"),
		builder.WithSelfValues(11, 7, 5),
	)
}

// diamond is M1 → {M2, M3} → M4, every self value 1.
// Creation order: mfour (0), mtwo (1), mthree (2), mone (3).
func diamond(t *testing.T) *loader.DependencyGraph {
	return fixture(t, 20, builder.Diamond(),
		builder.WithNames("mfour", "mtwo", "mthree", "mone"),
	)
}

// fixture constructs a builder topology with accounts drawn from seed.
func fixture(t *testing.T, seed int64, shape builder.Constructor, opts ...builder.Option) *loader.DependencyGraph {
	t.Helper()
	top, err := builder.Build(opts, shape)
	require.NoError(t, err)

	return construct(t, top.Specs(rand.New(rand.NewSource(seed))), top.Attempts())
}

func expected(t *testing.T, g *loader.DependencyGraph) []uint64 {
	t.Helper()
	out := make([]uint64, g.NodeCount())
	for i := range out {
		v, err := g.ExpectedValue(i)
		require.NoError(t, err)
		out[i] = v
	}

	return out
}

func decodeArg(t *testing.T, txn *account.SignedTransaction) (string, uint64) {
	t.Helper()
	ef, ok := txn.Payload().(*account.EntryFunction)
	require.True(t, ok, "payload is %s", txn.Payload().Kind())
	require.Len(t, ef.Args, 1)
	v, err := account.DecodeU64(ef.Args[0])
	require.NoError(t, err)

	return ef.Module.Name, v
}
