package modgen_test

import (
	"math/rand"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/modgraph/account"
	"github.com/katalvlaran/modgraph/modgen"
)

func moduleID(t *testing.T, r *rand.Rand, name string) account.ModuleID {
	t.Helper()
	id, err := account.NewModuleID(account.NewRandomAccount(r).Address(), name)
	require.NoError(t, err)

	return id
}

func TestNewGenerator_EmptyDir(t *testing.T) {
	_, err := modgen.NewGenerator("")
	assert.ErrorIs(t, err, modgen.ErrEmptyBaseDir)
}

func TestGenerate_Layout(t *testing.T) {
	r := rand.New(rand.NewSource(1))
	self := moduleID(t, r, "top")
	dep := moduleID(t, r, "leaf")

	g, err := modgen.NewGenerator(t.TempDir())
	require.NoError(t, err)
	dir, err := g.Generate(self, []account.ModuleID{dep, dep}, 7)
	require.NoError(t, err)
	assert.Equal(t, g.PackageDir(self), dir)

	m, err := modgen.ReadManifest(filepath.Join(dir, modgen.ManifestFile))
	require.NoError(t, err)
	assert.Equal(t, "top", m.Package.Name)
	assert.Equal(t, modgen.InitialVersion, m.Package.Version)
	assert.Equal(t, self.Address.String(), m.Package.Address)
	assert.Equal(t, []string{dep.String()}, m.Dependencies)

	src, err := os.ReadFile(filepath.Join(dir, modgen.SourcesDir, "top"+modgen.SourceExt))
	require.NoError(t, err)
	text := string(src)
	assert.Equal(t, 1, strings.Count(text, "use "+dep.String()+";"))
	assert.Equal(t, 2, strings.Count(text, "sum = sum + leaf::foo();"))
	assert.Contains(t, text, "let sum: u64 = 7;")
	assert.Contains(t, text, "assert!(foo() == expected_value, 42);")
}

func TestRender_Pure(t *testing.T) {
	r := rand.New(rand.NewSource(2))
	self := moduleID(t, r, "a")
	deps := []account.ModuleID{moduleID(t, r, "b"), moduleID(t, r, "c")}

	first, err := modgen.Render(self, deps, 3)
	require.NoError(t, err)
	second, err := modgen.Render(self, deps, 3)
	require.NoError(t, err)
	assert.Equal(t, first, second)

	other, err := modgen.Render(self, deps[:1], 3)
	require.NoError(t, err)
	assert.NotEqual(t, first, other)
}

func TestGenerate_Overwrites(t *testing.T) {
	r := rand.New(rand.NewSource(3))
	self := moduleID(t, r, "m")
	dep := moduleID(t, r, "d")

	g, err := modgen.NewGenerator(t.TempDir())
	require.NoError(t, err)
	_, err = g.Generate(self, []account.ModuleID{dep}, 1)
	require.NoError(t, err)
	dir, err := g.Generate(self, nil, 1)
	require.NoError(t, err)

	m, err := modgen.ReadManifest(filepath.Join(dir, modgen.ManifestFile))
	require.NoError(t, err)
	assert.Empty(t, m.Dependencies)
}

func TestGenerate_InvalidName(t *testing.T) {
	g, err := modgen.NewGenerator(t.TempDir())
	require.NoError(t, err)
	_, err = g.Generate(account.ModuleID{Name: "9bad"}, nil, 1)
	assert.ErrorIs(t, err, account.ErrInvalidIdentifier)
}
