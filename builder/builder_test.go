package builder_test

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/modgraph/builder"
)

func edges(t *testing.T, top *builder.Topology) [][2]int {
	t.Helper()
	out := make([][2]int, len(top.Edges))
	for i, e := range top.Edges {
		require.Greater(t, e.From, e.To, "edge %d runs upward", i)
		out[i] = [2]int{e.From, e.To}
	}
	return out
}

func TestShapes(t *testing.T) {
	cases := []struct {
		name  string
		con   builder.Constructor
		nodes int
		want  [][2]int
	}{
		{"chain", builder.Chain(4), 4, [][2]int{{1, 0}, {2, 1}, {3, 2}}},
		{"single", builder.Chain(1), 1, [][2]int{}},
		{"fan-in", builder.FanIn(3), 3, [][2]int{{1, 0}, {2, 0}}},
		{"fan-out", builder.FanOut(3), 3, [][2]int{{2, 0}, {2, 1}}},
		{"diamond", builder.Diamond(), 4, [][2]int{{3, 1}, {3, 2}, {1, 0}, {2, 0}}},
		{"complete", builder.Complete(3), 3, [][2]int{{1, 0}, {2, 0}, {2, 1}}},
	}
	for _, tc := range cases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			top, err := builder.Build(nil, tc.con)
			require.NoError(t, err)
			assert.Equal(t, tc.nodes, top.NodeCount())
			assert.Equal(t, tc.want, edges(t, top))
		})
	}
}

func TestBuild_Errors(t *testing.T) {
	_, err := builder.Build(nil, builder.Chain(0))
	assert.ErrorIs(t, err, builder.ErrTooFewVertices)
	_, err = builder.Build(nil, builder.FanIn(1))
	assert.ErrorIs(t, err, builder.ErrTooFewVertices)
	_, err = builder.Build(nil, builder.RandomSparse(3, 0.5))
	assert.ErrorIs(t, err, builder.ErrNeedRandSource)
	_, err = builder.Build([]builder.Option{builder.WithSeed(1)}, builder.RandomSparse(3, 1.5))
	assert.ErrorIs(t, err, builder.ErrInvalidProbability)
	_, err = builder.Build(nil, nil)
	assert.ErrorIs(t, err, builder.ErrConstructFailed)

	assert.Panics(t, func() { builder.WithMultiplicity(0) })
	assert.Panics(t, func() { builder.WithRand(nil) })
	assert.Panics(t, func() { builder.WithNameScheme(nil) })
}

func TestBuild_ComposeAndOptions(t *testing.T) {
	top, err := builder.Build(
		[]builder.Option{
			builder.WithNames("base", "mid"),
			builder.WithSelfValues(5, 7),
			builder.WithMultiplicity(2),
		},
		builder.Chain(2), builder.FanIn(3),
	)
	require.NoError(t, err)
	assert.Equal(t, []string{"base", "mid", "m2"}, top.Names)
	assert.Equal(t, []uint64{5, 7, 1}, top.SelfValues)
	assert.Equal(t, [][2]int{{1, 0}, {1, 0}, {1, 0}, {1, 0}, {2, 0}, {2, 0}}, edges(t, top))

	attempts := top.Attempts()
	require.Len(t, attempts, len(top.Edges))
	assert.Equal(t, uint64(2), attempts[4].A.Raw())
	assert.Equal(t, uint64(0), attempts[4].B.Raw())

	specs := top.Specs(rand.New(rand.NewSource(1)))
	require.Len(t, specs, 3)
	assert.Equal(t, "mid", specs[1].Name)
	assert.Equal(t, uint64(7), specs[1].SelfValue)
	assert.NotEqual(t, specs[0].Account.Address(), specs[1].Account.Address())
}

func TestRandomSparse_Deterministic(t *testing.T) {
	build := func() *builder.Topology {
		top, err := builder.Build([]builder.Option{builder.WithSeed(42)}, builder.RandomSparse(8, 0.4))
		require.NoError(t, err)
		return top
	}
	a, b := build(), build()
	assert.Equal(t, edges(t, a), edges(t, b))

	full, err := builder.Build([]builder.Option{builder.WithSeed(1)}, builder.RandomSparse(4, 1))
	require.NoError(t, err)
	assert.Len(t, full.Edges, 6)
}

func TestByName(t *testing.T) {
	for _, name := range builder.Shapes {
		con, err := builder.ByName(name, 4)
		require.NoError(t, err, name)
		_, err = builder.Build([]builder.Option{builder.WithSeed(1)}, con)
		require.NoError(t, err, name)
	}
	_, err := builder.ByName("torus", 4)
	assert.ErrorIs(t, err, builder.ErrUnknownShape)
}
